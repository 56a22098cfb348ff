package mailer

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Alturino/nebula/internal/config"
	"github.com/Alturino/nebula/internal/log"
)

func TestHTTPMailerSend(t *testing.T) {
	var received Message
	var requestId string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		requestId = r.Header.Get("X-Request-Id")
		assert.NoError(t, json.NewDecoder(r.Body).Decode(&received))
		w.WriteHeader(http.StatusAccepted)
	}))
	defer server.Close()

	m := NewHTTPMailer(server.URL, "no-reply@nebula.restaurant", time.Second)
	c := log.AttachRequestIDToContext(context.Background(), "req-1")
	require.NoError(t, m.Send(c, "ada@example.com", "123456"))

	assert.Equal(t, "ada@example.com", received.To)
	assert.Equal(t, "no-reply@nebula.restaurant", received.From)
	assert.Contains(t, received.Body, "123456")
	assert.Equal(t, "req-1", requestId)
}

func TestHTTPMailerSendFailure(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusServiceUnavailable)
	}))
	defer server.Close()

	m := NewHTTPMailer(server.URL, "no-reply@nebula.restaurant", time.Second)
	assert.Error(t, m.Send(context.Background(), "ada@example.com", "123456"))
}

func TestNew(t *testing.T) {
	tests := []struct {
		name    string
		cfg     config.Mail
		wantErr bool
	}{
		{name: "given log mode should return log mailer", cfg: config.Mail{Mode: MODE_LOG}},
		{name: "given empty mode should return log mailer", cfg: config.Mail{}},
		{name: "given http mode should return http mailer", cfg: config.Mail{Mode: MODE_HTTP, Endpoint: "http://mail"}},
		{name: "given http mode without endpoint should fail", cfg: config.Mail{Mode: MODE_HTTP}, wantErr: true},
		{name: "given unknown mode should fail", cfg: config.Mail{Mode: "smtp"}, wantErr: true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m, err := New(tt.cfg)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.NotNil(t, m)
		})
	}
}

func TestLogMailerSend(t *testing.T) {
	assert.NoError(t, NewLogMailer("from").Send(context.Background(), "ada@example.com", "123456"))
}
