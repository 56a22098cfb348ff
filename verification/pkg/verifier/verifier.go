// Package verifier issues and checks the one-time email codes that gate
// order and reservation confirmation.
package verifier

import (
	"context"
	"crypto/rand"
	"crypto/subtle"
	"errors"
	"fmt"
	"math/big"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"go.opentelemetry.io/otel/attribute"

	"github.com/Alturino/nebula/internal/config"
	"github.com/Alturino/nebula/internal/constants"
	inErrors "github.com/Alturino/nebula/internal/errors"
	"github.com/Alturino/nebula/internal/otel"
	"github.com/Alturino/nebula/internal/otel/metric"
	"github.com/Alturino/nebula/internal/validate"
)

type Mailer interface {
	Send(c context.Context, email string, code string) error
}

type Issued struct {
	Email     string    `json:"email"`
	ExpiresAt time.Time `json:"expires_at"`
}

type Verifier struct {
	store  Store
	mailer Mailer
	cfg    config.Verification
	now    func() time.Time
}

func NewVerifier(store Store, mailer Mailer, cfg config.Verification) *Verifier {
	return &Verifier{store: store, mailer: mailer, cfg: cfg, now: time.Now}
}

func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// IssueCode stores a fresh code for email, replacing any pending one, and
// sends it through the mailer. Only the send result is reported.
func (v *Verifier) IssueCode(c context.Context, email string) (Issued, error) {
	c, span := otel.Tracer.Start(c, "Verifier IssueCode")
	defer span.End()

	email = NormalizeEmail(email)
	logger := zerolog.Ctx(c).
		With().
		Str(constants.KEY_TAG, "Verifier IssueCode").
		Str(constants.KEY_EMAIL, email).
		Logger()

	logger = logger.With().Str(constants.KEY_PROCESS, "counting issued codes").Logger()
	logger.Trace().Msg("counting issued codes")
	count, err := v.store.CountIssue(c, email, v.cfg.RateWindow)
	if err != nil {
		otel.RecordError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		return Issued{}, err
	}
	if v.cfg.RateLimit > 0 && count > int64(v.cfg.RateLimit) {
		err = fmt.Errorf("failed issuing code count=%d with error=%w", count, inErrors.ErrRateLimited)
		otel.RecordError(err, span)
		logger.Warn().Err(err).Msg(err.Error())
		return Issued{}, err
	}
	logger.Trace().Int64("count", count).Msg("counted issued codes")

	logger = logger.With().Str(constants.KEY_PROCESS, "generating code").Logger()
	logger.Trace().Msg("generating code")
	code, err := generateCode()
	if err != nil {
		err = fmt.Errorf("failed generating code with error=%w", err)
		otel.RecordError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		return Issued{}, err
	}
	now := v.now()
	logger.Trace().Msg("generated code")

	logger = logger.With().Str(constants.KEY_PROCESS, "storing code").Logger()
	logger.Trace().Msg("storing code")
	err = v.store.Put(c, email, Entry{Code: code, IssuedAt: now}, v.cfg.CodeTTL)
	if err != nil {
		otel.RecordError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		return Issued{}, err
	}
	logger.Trace().Msg("stored code")

	logger = logger.With().Str(constants.KEY_PROCESS, "sending code").Logger()
	logger.Info().Msg("sending code")
	err = v.mailer.Send(c, email, code)
	if err != nil {
		err = fmt.Errorf("failed sending code with error=%w: %w", inErrors.ErrDelivery, err)
		otel.RecordError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		if delErr := v.store.Delete(c, email); delErr != nil {
			logger.Error().Err(delErr).Msg(delErr.Error())
		}
		return Issued{}, err
	}
	metric.Add(c, metric.VerificationIssued, 1)
	logger.Info().Msg("sent code")

	return Issued{Email: email, ExpiresAt: now.Add(v.cfg.CodeTTL)}, nil
}

func (v *Verifier) Resend(c context.Context, email string) (Issued, error) {
	return v.IssueCode(c, email)
}

// Verify consumes the pending code for email when code matches it.
func (v *Verifier) Verify(c context.Context, email string, code string) error {
	c, span := otel.Tracer.Start(c, "Verifier Verify")
	defer span.End()

	email = NormalizeEmail(email)
	logger := zerolog.Ctx(c).
		With().
		Str(constants.KEY_TAG, "Verifier Verify").
		Str(constants.KEY_EMAIL, email).
		Logger()

	logger = logger.With().Str(constants.KEY_PROCESS, "checking code format").Logger()
	if !validate.IsCode(code) {
		err := fmt.Errorf("failed checking code format with error=%w", inErrors.ErrInvalidCode)
		v.recordFailure(c, "format")
		otel.RecordError(err, span)
		logger.Warn().Err(err).Msg(err.Error())
		return err
	}

	logger = logger.With().Str(constants.KEY_PROCESS, "loading code").Logger()
	logger.Trace().Msg("loading code")
	entry, err := v.store.Get(c, email)
	if err != nil {
		if errors.Is(err, inErrors.ErrNotSent) {
			v.recordFailure(c, "not_sent")
		}
		otel.RecordError(err, span)
		logger.Warn().Err(err).Msg(err.Error())
		return err
	}
	logger.Trace().Msg("loaded code")

	logger = logger.With().Str(constants.KEY_PROCESS, "comparing code").Logger()
	if subtle.ConstantTimeCompare([]byte(entry.Code), []byte(code)) != 1 {
		attempts, fErr := v.store.RecordFailure(c, email, v.cfg.MaxAttempts)
		if fErr != nil && !errors.Is(fErr, inErrors.ErrNotSent) {
			logger.Error().Err(fErr).Msg(fErr.Error())
		}
		v.recordFailure(c, "mismatch")
		err = fmt.Errorf("failed comparing code attempts=%d with error=%w", attempts, inErrors.ErrInvalidCode)
		otel.RecordError(err, span)
		logger.Warn().Err(err).Msg(err.Error())
		return err
	}

	logger = logger.With().Str(constants.KEY_PROCESS, "consuming code").Logger()
	logger.Trace().Msg("consuming code")
	consumed, err := v.store.Consume(c, email)
	if err != nil {
		otel.RecordError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		return err
	}
	if !consumed {
		err = fmt.Errorf("failed consuming code with error=%w", inErrors.ErrNotSent)
		otel.RecordError(err, span)
		logger.Warn().Err(err).Msg(err.Error())
		return err
	}
	logger.Info().Msg("verified code")

	return nil
}

func (v *Verifier) recordFailure(c context.Context, reason string) {
	metric.Add(c, metric.VerificationFailures, 1, attribute.String("reason", reason))
}

func generateCode() (string, error) {
	n, err := rand.Int(rand.Reader, big.NewInt(1_000_000))
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("%06d", n.Int64()), nil
}
