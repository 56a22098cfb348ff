package service

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Alturino/nebula/internal/auth"
	"github.com/Alturino/nebula/internal/config"
	inErrors "github.com/Alturino/nebula/internal/errors"
	"github.com/Alturino/nebula/internal/repository"
	"github.com/Alturino/nebula/user/pkg/request"
)

type memoryUsers struct {
	users map[string]repository.User
}

func (m *memoryUsers) FindUserByEmail(_ context.Context, email string) (repository.User, error) {
	user, ok := m.users[email]
	if !ok {
		return repository.User{}, pgx.ErrNoRows
	}
	return user, nil
}

func (m *memoryUsers) UpsertUser(_ context.Context, arg repository.UpsertUserParams) (repository.User, error) {
	user, ok := m.users[arg.Email]
	if !ok {
		user = repository.User{ID: arg.ID, Email: arg.Email}
	}
	user.Password = arg.Password
	m.users[arg.Email] = user
	return user, nil
}

func TestLogin(t *testing.T) {
	c := context.Background()
	cfg := config.Application{
		SecretKey:     "secret",
		AdminEmail:    "admin@nebula.restaurant",
		AdminPassword: "s3cret-pass",
	}
	users := &memoryUsers{users: map[string]repository.User{}}
	svc := NewUserService(users, cfg)
	require.NoError(t, svc.EnsureAdmin(c))
	require.NoError(t, svc.EnsureAdmin(c))
	assert.Len(t, users.users, 1)

	tests := []struct {
		name        string
		param       request.LoginRequest
		expectedErr error
	}{
		{name: "valid", param: request.LoginRequest{Email: cfg.AdminEmail, Password: cfg.AdminPassword}},
		{name: "wrong password", param: request.LoginRequest{Email: cfg.AdminEmail, Password: "guess"}, expectedErr: inErrors.ErrPasswordMismatch},
		{name: "unknown email", param: request.LoginRequest{Email: "chef@nebula.restaurant", Password: "x"}, expectedErr: inErrors.ErrUserNotFound},
	}
	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			token, err := svc.Login(c, test.param)
			if test.expectedErr != nil {
				assert.ErrorIs(t, err, test.expectedErr)
				return
			}
			require.NoError(t, err)
			assert.WithinDuration(t, time.Now().Add(auth.TokenLifetime), token.ExpiresAt, 5*time.Second)
			_, err = auth.VerifyToken(c, token.Token, cfg.SecretKey)
			assert.NoError(t, err)
		})
	}
}

func TestEnsureAdminSkipsWithoutConfig(t *testing.T) {
	users := &memoryUsers{users: map[string]repository.User{}}
	svc := NewUserService(users, config.Application{})
	require.NoError(t, svc.EnsureAdmin(context.Background()))
	assert.Empty(t, users.users)
}

func TestEnsureAdminRejectsUnhashablePassword(t *testing.T) {
	users := &memoryUsers{users: map[string]repository.User{}}
	svc := NewUserService(users, config.Application{
		AdminEmail:    "admin@nebula.restaurant",
		AdminPassword: strings.Repeat("p", 73),
	})
	err := svc.EnsureAdmin(context.Background())
	assert.ErrorIs(t, err, inErrors.ErrFailedHashPassword)
	assert.Empty(t, users.users)
}
