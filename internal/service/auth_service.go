package service

import (
	"context"
	"errors"
	"strings"

	"estatesite/config"
	"estatesite/internal/auth"
	"estatesite/internal/domain"
	"estatesite/internal/repository"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

var ErrInvalidCredentials = errors.New("invalid email or password")

type AuthService struct {
	cfg    *config.Config
	admins *repository.AdminUserRepository
}

func NewAuthService(cfg *config.Config, admins *repository.AdminUserRepository) *AuthService {
	return &AuthService{cfg: cfg, admins: admins}
}

// Login checks the dashboard credentials and returns a signed access token.
func (s *AuthService) Login(ctx context.Context, email, password string) (string, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	if email == "" || password == "" {
		return "", ErrInvalidCredentials
	}
	u, err := s.admins.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return "", ErrInvalidCredentials
		}
		return "", err
	}
	if err := bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(password)); err != nil {
		return "", ErrInvalidCredentials
	}
	return auth.GenerateAccessToken(&s.cfg.JWT, u.ID, u.Email, domain.RoleAdmin)
}
