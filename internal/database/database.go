package database

import (
	"errors"
	"log/slog"
	"strings"

	"estatesite/config"
	"estatesite/internal/models"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/driver/mysql"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func NewDB(cfg *config.DatabaseConfig) (*gorm.DB, error) {
	db, err := gorm.Open(mysql.Open(cfg.DSN), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Error), // Only log errors, not every SQL query
	})
	if err != nil {
		return nil, err
	}
	sqlDB, err := db.DB()
	if err != nil {
		return nil, err
	}
	sqlDB.SetMaxIdleConns(cfg.MaxIdleConns)
	sqlDB.SetMaxOpenConns(cfg.MaxOpenConns)
	sqlDB.SetConnMaxLifetime(cfg.ConnMaxLifetime)
	return db, nil
}

// AutoMigrate runs Gorm auto-migration for all models.
func AutoMigrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&models.Property{},
		&models.Service{},
		&models.CompanyInfo{},
		&models.ContactInfo{},
		&models.AdminUser{},
	)
}

// SeedCompanyInfo makes sure the singleton company row exists.
func SeedCompanyInfo(db *gorm.DB, name string) error {
	var count int64
	if err := db.Model(&models.CompanyInfo{}).Where("id = ?", models.CompanyInfoID).Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		return nil
	}
	return db.Create(&models.CompanyInfo{ID: models.CompanyInfoID, Name: name}).Error
}

// SeedAdmin creates the dashboard account from config when it is missing.
// Nothing happens without both email and password.
func SeedAdmin(db *gorm.DB, cfg config.AdminConfig, log *slog.Logger) error {
	email := strings.ToLower(strings.TrimSpace(cfg.Email))
	if email == "" || cfg.Password == "" {
		log.Warn("admin seed skipped: ADMIN_EMAIL or ADMIN_PASSWORD not set")
		return nil
	}
	var existing models.AdminUser
	err := db.Where("email = ?", email).First(&existing).Error
	if err == nil {
		return nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return err
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(cfg.Password), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	if err := db.Create(&models.AdminUser{Email: email, PasswordHash: string(hash)}).Error; err != nil {
		return err
	}
	log.Info("admin account seeded", slog.String("email", email))
	return nil
}
