package http

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	inErrors "github.com/Alturino/nebula/internal/errors"
)

func TestStatusCode(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		expected int
	}{
		{"validation", inErrors.NewValidationError(map[string]string{"email": "required"}), http.StatusBadRequest},
		{"wrapped invalid code", fmt.Errorf("failed verifying with error=%w", inErrors.ErrInvalidCode), http.StatusUnprocessableEntity},
		{"not sent", inErrors.ErrNotSent, http.StatusGone},
		{"illegal transition", inErrors.ErrIllegalTransition, http.StatusConflict},
		{"empty cart", inErrors.ErrEmptyCart, http.StatusConflict},
		{"rate limited", inErrors.ErrRateLimited, http.StatusTooManyRequests},
		{"persistence", inErrors.ErrPersistence, http.StatusBadGateway},
		{"not found", inErrors.ErrNotFound, http.StatusNotFound},
		{"token", inErrors.ErrTokenInvalid, http.StatusUnauthorized},
		{"unknown", fmt.Errorf("boom"), http.StatusInternalServerError},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, StatusCode(tt.err))
		})
	}
}

func TestWriteErrorResponse(t *testing.T) {
	w := httptest.NewRecorder()
	WriteErrorResponse(
		context.Background(),
		w,
		inErrors.NewValidationError(map[string]string{"phone": "required"}),
	)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, VALUE_HEADER_APPLICATION_JSON, w.Header().Get(KEY_HEADER_CONTENT_TYPE))

	body := map[string]interface{}{}
	require.NoError(t, json.NewDecoder(w.Body).Decode(&body))
	assert.Equal(t, "failed", body["status"])
	assert.Equal(t, map[string]interface{}{
		"fields": map[string]interface{}{"phone": "required"},
	}, body["data"])
}

func TestWriteResultResponseKeepsDataOnFailure(t *testing.T) {
	w := httptest.NewRecorder()
	WriteResultResponse(
		context.Background(),
		w,
		fmt.Errorf("failed verifying with error=%w", inErrors.ErrInvalidCode),
		"",
		map[string]interface{}{"checkout": map[string]string{"step": "email_verification"}},
	)

	assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
	body := map[string]interface{}{}
	require.NoError(t, json.NewDecoder(w.Body).Decode(&body))
	assert.Equal(t, "failed", body["status"])
	data, ok := body["data"].(map[string]interface{})
	require.True(t, ok)
	assert.Contains(t, data, "checkout")
	assert.NotContains(t, data, "fields")
}
