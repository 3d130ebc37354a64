package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"gorm.io/gorm"

	"estatesite/config"
	"estatesite/internal/database"
	"estatesite/internal/logger"
	"estatesite/internal/router"
	"estatesite/internal/storage"
	"estatesite/pkg/cloudinary"
	"estatesite/pkg/localstore"
)

func main() {
	rootCmd := &cobra.Command{
		Use:          "estatesite",
		Short:        "Property listings API",
		SilenceUsage: true,
	}
	rootCmd.AddCommand(serveCmd(), migrateCmd())

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func serveCmd() *cobra.Command {
	var skipMigrate bool
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP server",
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg := config.Load()
			log := logger.New(cfg.Log)
			slog.SetDefault(log)

			db, err := openDB(cfg, log, !skipMigrate)
			if err != nil {
				return err
			}
			store, err := newStorage(cfg)
			if err != nil {
				return fmt.Errorf("storage: %w", err)
			}
			log.Info("storage ready", slog.String("driver", cfg.Storage.Driver), slog.String("bucket", cfg.Storage.Bucket))

			ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()

			srv := &http.Server{
				Addr:         ":" + cfg.Server.Port,
				Handler:      router.Setup(ctx, cfg, db, store, log),
				ReadTimeout:  cfg.Server.ReadTimeout,
				WriteTimeout: cfg.Server.WriteTimeout,
			}
			errCh := make(chan error, 1)
			go func() {
				log.Info("server listening", slog.String("addr", srv.Addr), slog.String("env", cfg.Server.Env))
				if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
					errCh <- err
				}
				close(errCh)
			}()

			select {
			case err := <-errCh:
				if err != nil {
					return fmt.Errorf("listen: %w", err)
				}
			case <-ctx.Done():
			}
			log.Info("shutting down")
			shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
			defer cancel()
			if err := srv.Shutdown(shutdownCtx); err != nil {
				return fmt.Errorf("server shutdown: %w", err)
			}
			log.Info("server stopped")
			return nil
		},
	}
	cmd.Flags().BoolVar(&skipMigrate, "skip-migrate", false, "do not run auto-migration and seeding on start")
	return cmd
}

func migrateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "migrate",
		Short: "Create or update tables and seed the company row and admin account",
		RunE: func(*cobra.Command, []string) error {
			cfg := config.Load()
			log := logger.New(cfg.Log)
			if _, err := openDB(cfg, log, true); err != nil {
				return err
			}
			log.Info("migration complete")
			return nil
		},
	}
}

func openDB(cfg *config.Config, log *slog.Logger, migrate bool) (*gorm.DB, error) {
	db, err := database.NewDB(&cfg.Database)
	if err != nil {
		return nil, fmt.Errorf("database: %w", err)
	}
	if !migrate {
		return db, nil
	}
	if err := database.AutoMigrate(db); err != nil {
		return nil, fmt.Errorf("migrate: %w", err)
	}
	if err := database.SeedCompanyInfo(db, "Company"); err != nil {
		return nil, fmt.Errorf("seed company info: %w", err)
	}
	if err := database.SeedAdmin(db, cfg.Admin, log); err != nil {
		return nil, fmt.Errorf("seed admin: %w", err)
	}
	return db, nil
}

func newStorage(cfg *config.Config) (storage.Gateway, error) {
	switch cfg.Storage.Driver {
	case config.StorageDriverLocal:
		return localstore.New(cfg.Storage.LocalDir, cfg.Storage.Bucket, cfg.Storage.LocalBaseURL)
	case config.StorageDriverCloudinary:
		return cloudinary.NewGateway(cloudinary.Config{
			CloudName: cfg.Cloudinary.CloudName,
			APIKey:    cfg.Cloudinary.APIKey,
			APISecret: cfg.Cloudinary.APISecret,
			Folder:    cfg.Storage.Bucket,
		})
	default:
		return nil, fmt.Errorf("unknown STORAGE_DRIVER %q", cfg.Storage.Driver)
	}
}
