package controller

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gorilla/mux"
	"github.com/jackc/pgx/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Alturino/nebula/internal/config"
	"github.com/Alturino/nebula/internal/repository"
	"github.com/Alturino/nebula/user/internal/service"
)

type memoryUsers struct {
	user *repository.User
}

func (m *memoryUsers) FindUserByEmail(_ context.Context, email string) (repository.User, error) {
	if m.user == nil || m.user.Email != email {
		return repository.User{}, pgx.ErrNoRows
	}
	return *m.user, nil
}

func (m *memoryUsers) UpsertUser(_ context.Context, arg repository.UpsertUserParams) (repository.User, error) {
	m.user = &repository.User{ID: arg.ID, Email: arg.Email, Password: arg.Password}
	return *m.user, nil
}

func TestLogin(t *testing.T) {
	svc := service.NewUserService(&memoryUsers{}, config.Application{
		SecretKey:     "secret",
		AdminEmail:    "admin@nebula.restaurant",
		AdminPassword: "s3cret-pass",
	})
	require.NoError(t, svc.EnsureAdmin(context.Background()))
	router := mux.NewRouter()
	AttachUserController(router, svc)

	tests := []struct {
		name     string
		body     string
		expected int
	}{
		{name: "success", body: `{"email":"admin@nebula.restaurant","password":"s3cret-pass"}`, expected: http.StatusOK},
		{name: "wrong password", body: `{"email":"admin@nebula.restaurant","password":"nope"}`, expected: http.StatusUnauthorized},
		{name: "unknown user", body: `{"email":"chef@nebula.restaurant","password":"nope"}`, expected: http.StatusUnauthorized},
		{name: "invalid email", body: `{"email":"admin","password":"s3cret-pass"}`, expected: http.StatusBadRequest},
		{name: "malformed body", body: `{"email":`, expected: http.StatusBadRequest},
	}
	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			r := httptest.NewRequest(http.MethodPost, "/users/login", strings.NewReader(test.body))
			w := httptest.NewRecorder()
			router.ServeHTTP(w, r)
			assert.Equal(t, test.expected, w.Code, w.Body.String())
			if test.expected == http.StatusOK {
				assert.Contains(t, w.Body.String(), `"token"`)
			}
		})
	}
}
