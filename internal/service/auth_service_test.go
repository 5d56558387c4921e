package service

import (
	"context"
	"testing"
	"time"

	"stock-advisor/config"
	"stock-advisor/internal/repository"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newAuthForTest() AuthService {
	cfg := &config.Config{
		Auth: config.Auth{
			SecretKey:     "test-secret",
			TokenDuration: time.Hour,
		},
	}
	return NewAuthService(cfg, testLogger(), repository.NewInMemoryUserRepository())
}

func TestAuthService_Login_Success(t *testing.T) {
	svc := newAuthForTest()

	signed, err := svc.Login(context.Background(), "abu", "password123")
	require.NoError(t, err)
	require.NotEmpty(t, signed)

	claims := &jwt.RegisteredClaims{}
	token, err := jwt.ParseWithClaims(signed, claims, func(*jwt.Token) (interface{}, error) {
		return []byte("test-secret"), nil
	})
	require.NoError(t, err)
	require.True(t, token.Valid)

	assert.Equal(t, "abu", claims.Subject)
	require.NotNil(t, claims.ExpiresAt)
	require.NotNil(t, claims.IssuedAt)
	assert.Equal(t, time.Hour, claims.ExpiresAt.Sub(claims.IssuedAt.Time))
}

func TestAuthService_Login_InvalidCredentials(t *testing.T) {
	svc := newAuthForTest()

	tests := []struct {
		name     string
		username string
		password string
	}{
		{name: "wrong password", username: "abu", password: "letmein"},
		{name: "unknown user", username: "nobody", password: "password123"},
		{name: "empty credentials"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			signed, err := svc.Login(context.Background(), tt.username, tt.password)
			assert.ErrorIs(t, err, ErrInvalidCredentials)
			assert.Empty(t, signed)
		})
	}
}
