package service

import (
	"context"
	"errors"
	"time"

	"stock-advisor/config"
	"stock-advisor/internal/repository"
	"stock-advisor/pkg/logger"

	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"
)

// ErrInvalidCredentials covers both an unknown username and a wrong
// password, deliberately indistinguishable to the caller.
var ErrInvalidCredentials = errors.New("invalid username/password")

// AuthService verifies credentials and mints short-lived bearer tokens.
type AuthService interface {
	Login(ctx context.Context, username, password string) (string, error)
}

type authService struct {
	cfg      *config.Config
	log      *logger.Logger
	userRepo repository.UserRepository
}

func NewAuthService(cfg *config.Config, log *logger.Logger, userRepo repository.UserRepository) AuthService {
	return &authService{cfg: cfg, log: log, userRepo: userRepo}
}

func (s *authService) Login(ctx context.Context, username, password string) (string, error) {
	user, err := s.userRepo.FindByUsername(username)
	if err != nil {
		return "", ErrInvalidCredentials
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.HashedPassword), []byte(password)); err != nil {
		return "", ErrInvalidCredentials
	}

	now := time.Now().UTC()
	claims := jwt.RegisteredClaims{
		Subject:   user.Username,
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(now.Add(s.cfg.Auth.TokenDuration)),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString([]byte(s.cfg.Auth.SecretKey))
	if err != nil {
		s.log.ErrorContext(ctx, "failed to sign access token", logger.ErrorField(err))
		return "", err
	}

	return signed, nil
}
