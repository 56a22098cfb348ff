// Package board keeps the admin view of one entity lifecycle: the last list
// that loaded successfully, refreshed whenever a change notification arrives.
package board

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/Alturino/nebula/internal/constants"
	inErrors "github.com/Alturino/nebula/internal/errors"
	"github.com/Alturino/nebula/internal/notify"
	"github.com/Alturino/nebula/internal/otel"
	"github.com/Alturino/nebula/internal/persistence"
	"github.com/Alturino/nebula/internal/workflow"
)

type Record[S workflow.Status] interface {
	CurrentStatus() S
	RecordID() uuid.UUID
}

type ListFunc[R any] func(c context.Context) ([]R, error)

type UpdateFunc[S workflow.Status] func(c context.Context, id uuid.UUID, to S) (persistence.StatusChange[S], error)

type Subscriber interface {
	Subscribe(c context.Context, entity string) (<-chan notify.Change, error)
}

type Snapshot[R any, S workflow.Status] struct {
	LoadedAt time.Time `json:"loaded_at"`
	Counts   map[S]int `json:"counts"`
	Records  []R       `json:"records"`
	Filter   string    `json:"filter"`
}

type Board[R Record[S], S workflow.Status] struct {
	mu       sync.RWMutex
	machine  workflow.Machine[S]
	entity   string
	list     ListFunc[R]
	update   UpdateFunc[S]
	records  []R
	loadedAt time.Time
}

func New[R Record[S], S workflow.Status](
	machine workflow.Machine[S],
	entity string,
	list ListFunc[R],
	update UpdateFunc[S],
) *Board[R, S] {
	return &Board[R, S]{machine: machine, entity: entity, list: list, update: update}
}

func (b *Board[R, S]) Machine() workflow.Machine[S] {
	return b.machine
}

// Reload replaces the snapshot with a fresh list. On failure the previous
// snapshot stays.
func (b *Board[R, S]) Reload(c context.Context) error {
	c, span := otel.Tracer.Start(c, "Board Reload")
	defer span.End()

	logger := zerolog.Ctx(c).
		With().
		Str(constants.KEY_TAG, "Board Reload").
		Str(constants.KEY_ENTITY, b.machine.Entity()).
		Str(constants.KEY_PROCESS, "reloading board").
		Logger()

	logger.Trace().Msg("reloading board")
	records, err := b.list(c)
	if err != nil {
		err = fmt.Errorf("failed reloading %s board with error=%w", b.machine.Entity(), err)
		otel.RecordError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		return err
	}

	b.mu.Lock()
	b.records = records
	b.loadedAt = time.Now()
	b.mu.Unlock()
	logger.Trace().Int("count", len(records)).Msg("reloaded board")

	return nil
}

// Snapshot returns the records matching filter together with the per status
// counts of the whole board.
func (b *Board[R, S]) Snapshot(c context.Context, filter string) (Snapshot[R, S], error) {
	_, span := otel.Tracer.Start(c, "Board Snapshot")
	defer span.End()

	f, err := workflow.ParseFilter(b.machine, filter)
	if err != nil {
		err = inErrors.NewValidationError(map[string]string{"status": err.Error()})
		otel.RecordError(err, span)
		return Snapshot[R, S]{}, err
	}

	b.mu.RLock()
	defer b.mu.RUnlock()

	snapshot := Snapshot[R, S]{
		LoadedAt: b.loadedAt,
		Counts:   workflow.GroupByStatus(b.machine, b.records, status[R, S]),
		Records:  workflow.FilterByStatus(b.records, f, status[R, S]),
		Filter:   workflow.All,
	}
	if !f.All {
		snapshot.Filter = string(f.Status)
	}
	return snapshot, nil
}

func status[R Record[S], S workflow.Status](r R) S {
	return r.CurrentStatus()
}

func (b *Board[R, S]) find(id uuid.UUID) (R, bool) {
	b.mu.RLock()
	defer b.mu.RUnlock()
	for _, r := range b.records {
		if r.RecordID() == id {
			return r, true
		}
	}
	var zero R
	return zero, false
}

// Transitions lists the statuses the record can move to from its status in
// the current snapshot.
func (b *Board[R, S]) Transitions(c context.Context, id uuid.UUID) ([]S, error) {
	_, span := otel.Tracer.Start(c, "Board Transitions")
	defer span.End()

	record, ok := b.find(id)
	if !ok {
		err := fmt.Errorf("failed finding %s id=%s with error=%w", b.machine.Entity(), id, inErrors.ErrNotFound)
		otel.RecordError(err, span)
		return nil, err
	}
	return b.machine.Allowed(record.CurrentStatus()), nil
}

// ApplyTransition persists id -> to. The snapshot is never patched in place;
// it only changes through the reload that follows a successful update.
func (b *Board[R, S]) ApplyTransition(c context.Context, id uuid.UUID, to S) (persistence.StatusChange[S], error) {
	c, span := otel.Tracer.Start(c, "Board ApplyTransition")
	defer span.End()

	logger := zerolog.Ctx(c).
		With().
		Str(constants.KEY_TAG, "Board ApplyTransition").
		Str(constants.KEY_ENTITY, b.machine.Entity()).
		Str(constants.KEY_STATUS_TO, string(to)).
		Logger()

	logger = logger.With().Str(constants.KEY_PROCESS, "parsing status").Logger()
	if _, err := b.machine.Parse(string(to)); err != nil {
		err = inErrors.NewValidationError(map[string]string{"status": err.Error()})
		otel.RecordError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		return persistence.StatusChange[S]{}, err
	}

	if record, ok := b.find(id); ok {
		if err := b.machine.Check(record.CurrentStatus(), to); err != nil {
			otel.RecordError(err, span)
			logger.Warn().Err(err).Msg(err.Error())
			return persistence.StatusChange[S]{}, err
		}
	}

	logger = logger.With().Str(constants.KEY_PROCESS, "updating status").Logger()
	logger.Info().Msg("updating status")
	c = logger.WithContext(c)
	change, err := b.update(c, id, to)
	if err != nil {
		err = fmt.Errorf("failed updating %s status with error=%w", b.machine.Entity(), err)
		otel.RecordError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		return persistence.StatusChange[S]{}, err
	}
	logger.Info().Str(constants.KEY_STATUS_FROM, string(change.From)).Msg("updated status")

	if err := b.Reload(c); err != nil {
		logger.Warn().Err(err).Msg("status updated but board reload failed")
	}
	return change, nil
}

// Run loads the board and reloads it on every change notification until c is
// done. It returns the subscribe error, nil otherwise.
func (b *Board[R, S]) Run(c context.Context, subscriber Subscriber) error {
	logger := zerolog.Ctx(c).
		With().
		Str(constants.KEY_TAG, "Board Run").
		Str(constants.KEY_ENTITY, b.machine.Entity()).
		Logger()
	c = logger.WithContext(c)

	if err := b.Reload(c); err != nil {
		logger.Warn().Err(err).Msg("initial load failed, waiting for next change")
	}

	logger = logger.With().Str(constants.KEY_PROCESS, "subscribing changes").Logger()
	changes, err := subscriber.Subscribe(c, b.entity)
	if err != nil {
		err = fmt.Errorf("failed subscribing %s changes with error=%w", b.machine.Entity(), err)
		logger.Error().Err(err).Msg(err.Error())
		return err
	}

	logger = logger.With().Str(constants.KEY_PROCESS, "watching changes").Logger()
	logger.Info().Msg("watching changes")
	for {
		select {
		case <-c.Done():
			logger.Info().Msg("stopped watching changes")
			return nil
		case change, ok := <-changes:
			if !ok {
				logger.Info().Msg("change channel closed")
				return nil
			}
			logger.Debug().Str(constants.KEY_PROCESS, "reloading on change").
				Str("op", string(change.Op)).
				Str("id", change.ID).
				Msg("reloading on change")
			_ = b.Reload(c)
		}
	}
}
