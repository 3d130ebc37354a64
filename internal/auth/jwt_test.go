package auth

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"estatesite/config"
)

func testJWT() *config.JWTConfig {
	return &config.JWTConfig{AccessSecret: "secret", AccessExpiry: time.Hour, Issuer: "estatesite"}
}

func TestAccessToken_RoundTrip(t *testing.T) {
	cfg := testJWT()
	tok, err := GenerateAccessToken(cfg, "u-1", "admin@site.test", "ADMIN")
	require.NoError(t, err)

	claims, err := ParseAccessToken(cfg, tok)
	require.NoError(t, err)
	assert.Equal(t, "u-1", claims.UserID)
	assert.Equal(t, "admin@site.test", claims.Email)
	assert.Equal(t, "ADMIN", claims.Role)
}

func TestParseAccessToken_Rejects(t *testing.T) {
	cfg := testJWT()
	tok, err := GenerateAccessToken(cfg, "u-1", "a@b.test", "ADMIN")
	require.NoError(t, err)

	other := testJWT()
	other.AccessSecret = "different"
	_, err = ParseAccessToken(other, tok)
	assert.ErrorIs(t, err, ErrInvalidToken)

	wrongIssuer := testJWT()
	wrongIssuer.Issuer = "someone-else"
	_, err = ParseAccessToken(wrongIssuer, tok)
	assert.ErrorIs(t, err, ErrInvalidToken)

	expired := testJWT()
	expired.AccessExpiry = -time.Minute
	old, err := GenerateAccessToken(expired, "u-1", "a@b.test", "ADMIN")
	require.NoError(t, err)
	_, err = ParseAccessToken(cfg, old)
	assert.ErrorIs(t, err, ErrInvalidToken)

	_, err = ParseAccessToken(cfg, "not.a.token")
	assert.ErrorIs(t, err, ErrInvalidToken)
}
