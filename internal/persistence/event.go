package persistence

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/Alturino/nebula/event/pkg/request"
	"github.com/Alturino/nebula/event/pkg/response"
	"github.com/Alturino/nebula/internal/constants"
	inErrors "github.com/Alturino/nebula/internal/errors"
	"github.com/Alturino/nebula/internal/notify"
	"github.com/Alturino/nebula/internal/otel"
	"github.com/Alturino/nebula/internal/repository"
	"github.com/Alturino/nebula/internal/validate"
)

type EventStore struct {
	queries  *repository.Queries
	notifier Notifier
}

func NewEventStore(queries *repository.Queries, notifier Notifier) *EventStore {
	return &EventStore{queries: queries, notifier: notifier}
}

func (s *EventStore) ListEvents(c context.Context) ([]response.Event, error) {
	c, span := otel.Tracer.Start(c, "EventStore ListEvents")
	defer span.End()

	logger := zerolog.Ctx(c).
		With().
		Str(constants.KEY_TAG, "EventStore ListEvents").
		Str(constants.KEY_PROCESS, "listing events").
		Logger()

	rows, err := s.queries.ListEvents(c)
	if err != nil {
		err = wrapError("listing events", err)
		otel.RecordError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		return nil, err
	}
	events := make([]response.Event, 0, len(rows))
	for _, row := range rows {
		events = append(events, row.Response())
	}
	return events, nil
}

func (s *EventStore) CreateEvent(c context.Context, param request.Event) (response.Event, error) {
	c, span := otel.Tracer.Start(c, "EventStore CreateEvent")
	defer span.End()

	id := uuid.New()
	logger := zerolog.Ctx(c).
		With().
		Str(constants.KEY_TAG, "EventStore CreateEvent").
		Str(constants.KEY_EVENT_ID, id.String()).
		Str(constants.KEY_PROCESS, "inserting event").
		Logger()

	date, err := time.Parse(validate.DateLayout, param.Date)
	if err != nil {
		err = wrapError("parsing event date", inErrors.NewValidationError(map[string]string{"date": "datetime"}))
		otel.RecordError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		return response.Event{}, err
	}
	eventType := param.Type
	if eventType == "" {
		eventType = request.DefaultType
	}

	logger.Info().Msg("inserting event")
	inserted, err := s.queries.InsertEvent(c, repository.InsertEventParams{
		ID:          id,
		Title:       param.Title,
		Description: param.Description,
		Date:        repository.Date(date),
		Time:        param.Time,
		Type:        eventType,
	})
	if err != nil {
		err = wrapError("inserting event", err)
		otel.RecordError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		return response.Event{}, err
	}
	publish(c, s.notifier, notify.ENTITY_EVENTS, notify.OpInsert, id.String())
	logger.Info().Msg("inserted event")

	return inserted.Response(), nil
}

func (s *EventStore) DeleteEvent(c context.Context, id uuid.UUID) error {
	c, span := otel.Tracer.Start(c, "EventStore DeleteEvent")
	defer span.End()

	logger := zerolog.Ctx(c).
		With().
		Str(constants.KEY_TAG, "EventStore DeleteEvent").
		Str(constants.KEY_EVENT_ID, id.String()).
		Str(constants.KEY_PROCESS, "deleting event").
		Logger()

	logger.Info().Msg("deleting event")
	affected, err := s.queries.DeleteEvent(c, id)
	if err == nil && affected == 0 {
		err = inErrors.ErrNotFound
	}
	if err != nil {
		err = wrapError("deleting event", err)
		otel.RecordError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		return err
	}
	publish(c, s.notifier, notify.ENTITY_EVENTS, notify.OpDelete, id.String())
	logger.Info().Msg("deleted event")

	return nil
}
