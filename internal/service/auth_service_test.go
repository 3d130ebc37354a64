package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"estatesite/config"
	"estatesite/internal/auth"
	"estatesite/internal/database"
	"estatesite/internal/domain"
	"estatesite/internal/logger"
	"estatesite/internal/repository"
	"estatesite/internal/testutil"
)

func newAuthService(t *testing.T) *AuthService {
	t.Helper()
	db := testutil.NewDB(t)
	cfg := &config.Config{
		JWT:   config.JWTConfig{AccessSecret: "test-secret", AccessExpiry: time.Hour, Issuer: "estatesite"},
		Admin: config.AdminConfig{Email: "Owner@Site.test", Password: "correct horse"},
	}
	require.NoError(t, database.SeedAdmin(db, cfg.Admin, logger.Discard()))
	return NewAuthService(cfg, repository.NewAdminUserRepository(db))
}

func TestLogin_IssuesAdminToken(t *testing.T) {
	svc := newAuthService(t)

	tok, err := svc.Login(context.Background(), " owner@site.test ", "correct horse")
	require.NoError(t, err)

	claims, err := auth.ParseAccessToken(&svc.cfg.JWT, tok)
	require.NoError(t, err)
	assert.Equal(t, "owner@site.test", claims.Email)
	assert.Equal(t, domain.RoleAdmin, claims.Role)
	assert.NotEmpty(t, claims.UserID)
}

func TestLogin_RejectsBadCredentials(t *testing.T) {
	svc := newAuthService(t)
	ctx := context.Background()

	_, err := svc.Login(ctx, "owner@site.test", "wrong")
	assert.ErrorIs(t, err, ErrInvalidCredentials)

	_, err = svc.Login(ctx, "nobody@site.test", "correct horse")
	assert.ErrorIs(t, err, ErrInvalidCredentials)

	_, err = svc.Login(ctx, "", "")
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}
