package usecase

import (
	"context"
	"testing"
	"time"

	"github.com/DRSN-tech/rawline/pkg/e"
	"github.com/DRSN-tech/rawline/pkg/logger"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func TestAuth_LoginAuthorizeLogout(t *testing.T) {
	sessions := newFakeSessionRepo()
	uc := NewAuthUseCase(sessions, "12345", time.Hour, logger.NewNopLogger())
	ctx := context.Background()

	token, err := uc.Login(ctx, "12345")
	require.NoError(t, err)
	require.NotEmpty(t, token)
	assert.Equal(t, time.Hour, sessions.tokens[token])

	assert.NoError(t, uc.Authorize(ctx, token))

	require.NoError(t, uc.Logout(ctx, token))
	assert.ErrorIs(t, uc.Authorize(ctx, token), e.ErrUnauthorized)
}

func TestAuth_RejectsWrongPassword(t *testing.T) {
	uc := NewAuthUseCase(newFakeSessionRepo(), "12345", time.Hour, logger.NewNopLogger())

	_, err := uc.Login(context.Background(), "1234")
	assert.ErrorIs(t, err, e.ErrInvalidPassword)

	assert.ErrorIs(t, uc.Authorize(context.Background(), ""), e.ErrUnauthorized)
	assert.ErrorIs(t, uc.Authorize(context.Background(), "forged"), e.ErrUnauthorized)
}

func TestAuth_BcryptPassword(t *testing.T) {
	hash, err := bcrypt.GenerateFromPassword([]byte("12345"), bcrypt.MinCost)
	require.NoError(t, err)

	uc := NewAuthUseCase(newFakeSessionRepo(), string(hash), time.Hour, logger.NewNopLogger())

	_, err = uc.Login(context.Background(), "12345")
	assert.NoError(t, err)

	_, err = uc.Login(context.Background(), string(hash))
	assert.ErrorIs(t, err, e.ErrInvalidPassword)
}
