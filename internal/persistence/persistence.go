// Package persistence is the durable side of orders, reservations, menu items
// and events. Every successful write publishes a change notification.
package persistence

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog"
	"go.opentelemetry.io/otel/trace"

	"github.com/Alturino/nebula/internal/constants"
	inErrors "github.com/Alturino/nebula/internal/errors"
	"github.com/Alturino/nebula/internal/notify"
	"github.com/Alturino/nebula/internal/otel"
	"github.com/Alturino/nebula/internal/repository"
	"github.com/Alturino/nebula/internal/workflow"
)

type Notifier interface {
	Publish(c context.Context, entity string, op notify.Op, id string) error
}

type StatusChange[S workflow.Status] struct {
	UpdatedAt time.Time `json:"updated_at"`
	From      S         `json:"from"`
	To        S         `json:"to"`
	ID        uuid.UUID `json:"id"`
}

// wrapError keeps ErrNotFound and workflow errors recognisable and folds every
// other failure into ErrPersistence.
func wrapError(process string, err error) error {
	switch {
	case errors.Is(err, pgx.ErrNoRows), errors.Is(err, inErrors.ErrNotFound):
		return fmt.Errorf("failed %s with error=%w", process, inErrors.ErrNotFound)
	case errors.Is(err, inErrors.ErrIllegalTransition), inErrors.IsValidation(err):
		return fmt.Errorf("failed %s with error=%w", process, err)
	}
	return fmt.Errorf("failed %s with error=%w: %w", process, inErrors.ErrPersistence, err)
}

func inTx(c context.Context, pool *pgxpool.Pool, queries *repository.Queries, fn func(*repository.Queries) error) error {
	span := trace.SpanFromContext(c)
	logger := zerolog.Ctx(c).With().Str(constants.KEY_PROCESS, "initializing transaction").Logger()

	logger.Trace().Msg("initializing transaction")
	tx, err := pool.BeginTx(c, pgx.TxOptions{})
	if err != nil {
		return fmt.Errorf("failed initializing transaction with error=%w", err)
	}
	logger.Trace().Msg("initialized transaction")
	defer func() {
		logger := logger.With().Str(constants.KEY_PROCESS, "rolling back transaction").Logger()
		err := tx.Rollback(c)
		if err != nil {
			if errors.Is(err, pgx.ErrTxClosed) {
				return
			}
			err = fmt.Errorf("failed rolling back transaction with error=%w", err)
			otel.RecordError(err, span)
			logger.Error().Err(err).Msg(err.Error())
			return
		}
		logger.Info().Msg("rolled back transaction")
	}()

	if err = fn(queries.WithTx(tx)); err != nil {
		return err
	}

	logger = logger.With().Str(constants.KEY_PROCESS, "committing transaction").Logger()
	logger.Trace().Msg("committing transaction")
	if err = tx.Commit(c); err != nil {
		return fmt.Errorf("failed committing transaction with error=%w", err)
	}
	logger.Trace().Msg("committed transaction")

	return nil
}

// publish reports a notification failure without failing the committed write.
func publish(c context.Context, notifier Notifier, entity string, op notify.Op, id string) {
	if notifier == nil {
		return
	}
	if err := notifier.Publish(c, entity, op, id); err != nil {
		zerolog.Ctx(c).Error().Err(err).Str(constants.KEY_ENTITY, entity).Msg("failed publishing change")
	}
}
