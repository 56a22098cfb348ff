package mailer

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/rs/zerolog"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"

	"github.com/Alturino/nebula/internal/config"
	"github.com/Alturino/nebula/internal/constants"
	inHttp "github.com/Alturino/nebula/internal/http"
	"github.com/Alturino/nebula/internal/log"
	"github.com/Alturino/nebula/internal/otel"
	"github.com/Alturino/nebula/verification/pkg/verifier"
)

const (
	MODE_LOG  = "log"
	MODE_HTTP = "http"

	subject = "Your Nebula verification code"
)

type Message struct {
	To      string `json:"to"`
	From    string `json:"from"`
	Subject string `json:"subject"`
	Body    string `json:"body"`
}

func NewMessage(from string, to string, code string) Message {
	return Message{
		To:      to,
		From:    from,
		Subject: subject,
		Body:    fmt.Sprintf("Your verification code is %s. It expires in a few minutes.", code),
	}
}

// LogMailer writes codes to the request logger instead of delivering them.
type LogMailer struct {
	from string
}

func NewLogMailer(from string) LogMailer {
	return LogMailer{from: from}
}

func (m LogMailer) Send(c context.Context, email string, code string) error {
	_, span := otel.Tracer.Start(c, "LogMailer Send")
	defer span.End()

	message := NewMessage(m.from, email, code)
	zerolog.Ctx(c).
		Info().
		Str(constants.KEY_TAG, "LogMailer Send").
		Str(constants.KEY_EMAIL, email).
		Str("subject", message.Subject).
		Str("code", code).
		Msg("sent verification code")
	return nil
}

type HTTPMailer struct {
	client   *http.Client
	endpoint string
	from     string
}

func NewHTTPMailer(endpoint string, from string, timeout time.Duration) HTTPMailer {
	return HTTPMailer{
		client: &http.Client{
			Transport: otelhttp.NewTransport(http.DefaultTransport),
			Timeout:   timeout,
		},
		endpoint: endpoint,
		from:     from,
	}
}

func (m HTTPMailer) Send(c context.Context, email string, code string) error {
	c, span := otel.Tracer.Start(c, "HTTPMailer Send")
	defer span.End()

	logger := zerolog.Ctx(c).
		With().
		Str(constants.KEY_TAG, "HTTPMailer Send").
		Str(constants.KEY_EMAIL, email).
		Str(constants.KEY_REQUEST_URL, m.endpoint).
		Logger()

	logger = logger.With().Str(constants.KEY_PROCESS, "encoding message").Logger()
	body, err := json.Marshal(NewMessage(m.from, email, code))
	if err != nil {
		err = fmt.Errorf("failed encoding message with error=%w", err)
		otel.RecordError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		return err
	}

	logger = logger.With().Str(constants.KEY_PROCESS, "posting message").Logger()
	logger.Info().Msg("posting message")
	req, err := http.NewRequestWithContext(c, http.MethodPost, m.endpoint, bytes.NewReader(body))
	if err != nil {
		err = fmt.Errorf("failed creating request with error=%w", err)
		otel.RecordError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		return err
	}
	req.Header.Set(inHttp.KEY_HEADER_CONTENT_TYPE, inHttp.VALUE_HEADER_APPLICATION_JSON)
	if requestId := log.RequestIDFromContext(c); requestId != "" {
		req.Header.Set(inHttp.KEY_HEADER_REQUEST_ID, requestId)
	}
	resp, err := m.client.Do(req)
	if err != nil {
		err = fmt.Errorf("failed posting message with error=%w", err)
		otel.RecordError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		return err
	}
	defer resp.Body.Close()
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		err = fmt.Errorf("failed posting message with statusCode=%d", resp.StatusCode)
		otel.RecordError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		return err
	}
	logger.Info().Msg("posted message")

	return nil
}

// New picks the mailer configured by cfg.Mode.
func New(cfg config.Mail) (verifier.Mailer, error) {
	switch cfg.Mode {
	case "", MODE_LOG:
		return NewLogMailer(cfg.From), nil
	case MODE_HTTP:
		if cfg.Endpoint == "" {
			return nil, fmt.Errorf("failed creating http mailer with empty endpoint")
		}
		return NewHTTPMailer(cfg.Endpoint, cfg.From, cfg.Timeout), nil
	}
	return nil, fmt.Errorf("failed creating mailer with unknown mode=%s", cfg.Mode)
}
