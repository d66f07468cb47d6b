package usecase

import (
	"context"
	"crypto/subtle"
	"strings"
	"time"

	"github.com/DRSN-tech/rawline/pkg/e"
	"github.com/DRSN-tech/rawline/pkg/logger"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

// AuthUseCase — косметический пароль админки. Успешный вход выдаёт непрозрачный токен с TTL.
// Пароль в конфигурации задаётся открытым текстом или bcrypt-хешем.
type AuthUseCase struct {
	sessionRepo AdminSessionRepository
	password    string
	ttl         time.Duration
	logger      logger.Logger
}

func NewAuthUseCase(sessionRepo AdminSessionRepository, password string, ttl time.Duration, logger logger.Logger) *AuthUseCase {
	return &AuthUseCase{
		sessionRepo: sessionRepo,
		password:    password,
		ttl:         ttl,
		logger:      logger,
	}
}

func (a *AuthUseCase) Login(ctx context.Context, password string) (string, error) {
	const op = "AuthUseCase.Login"

	if !a.passwordMatches(password) {
		a.logger.Warnf("Rejected admin login attempt")
		return "", e.Wrap(op, e.ErrInvalidPassword)
	}

	token := uuid.NewString()
	if err := a.sessionRepo.Save(ctx, token, a.ttl); err != nil {
		return "", e.Wrap(op, err)
	}

	return token, nil
}

func (a *AuthUseCase) Logout(ctx context.Context, token string) error {
	const op = "AuthUseCase.Logout"

	if token == "" {
		return nil
	}
	if err := a.sessionRepo.Delete(ctx, token); err != nil {
		return e.Wrap(op, err)
	}
	return nil
}

// Authorize проверяет, что токен выдан и не истёк.
func (a *AuthUseCase) Authorize(ctx context.Context, token string) error {
	const op = "AuthUseCase.Authorize"

	if token == "" {
		return e.Wrap(op, e.ErrUnauthorized)
	}

	ok, err := a.sessionRepo.Exists(ctx, token)
	if err != nil {
		return e.Wrap(op, err)
	}
	if !ok {
		return e.Wrap(op, e.ErrUnauthorized)
	}
	return nil
}

func (a *AuthUseCase) passwordMatches(password string) bool {
	if isBcryptHash(a.password) {
		return bcrypt.CompareHashAndPassword([]byte(a.password), []byte(password)) == nil
	}
	return subtle.ConstantTimeCompare([]byte(password), []byte(a.password)) == 1
}

func isBcryptHash(s string) bool {
	return strings.HasPrefix(s, "$2a$") || strings.HasPrefix(s, "$2b$") || strings.HasPrefix(s, "$2y$")
}
