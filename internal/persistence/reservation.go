package persistence

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog"
	"go.opentelemetry.io/otel/attribute"

	"github.com/Alturino/nebula/internal/constants"
	inErrors "github.com/Alturino/nebula/internal/errors"
	"github.com/Alturino/nebula/internal/notify"
	"github.com/Alturino/nebula/internal/otel"
	"github.com/Alturino/nebula/internal/otel/metric"
	"github.com/Alturino/nebula/internal/repository"
	"github.com/Alturino/nebula/internal/validate"
	"github.com/Alturino/nebula/internal/workflow"
	"github.com/Alturino/nebula/reservation/pkg/request"
	"github.com/Alturino/nebula/reservation/pkg/response"
)

type ReservationStore struct {
	pool     *pgxpool.Pool
	queries  *repository.Queries
	notifier Notifier
}

func NewReservationStore(pool *pgxpool.Pool, queries *repository.Queries, notifier Notifier) *ReservationStore {
	return &ReservationStore{pool: pool, queries: queries, notifier: notifier}
}

func (s *ReservationStore) CreateReservation(
	c context.Context,
	param request.CreateReservation,
) (response.Reservation, error) {
	c, span := otel.Tracer.Start(c, "ReservationStore CreateReservation")
	defer span.End()

	logger := zerolog.Ctx(c).
		With().
		Str(constants.KEY_TAG, "ReservationStore CreateReservation").
		Str(constants.KEY_RESERVATION_ID, param.ID.String()).
		Str(constants.KEY_PROCESS, "inserting reservation").
		Logger()

	date, err := time.Parse(validate.DateLayout, param.Date)
	if err != nil {
		err = wrapError("parsing reservation date", inErrors.NewValidationError(map[string]string{"date": "datetime"}))
		otel.RecordError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		return response.Reservation{}, err
	}

	logger.Info().Msg("inserting reservation")
	inserted, err := s.queries.InsertReservation(c, repository.InsertReservationParams{
		ID:              param.ID,
		CustomerName:    param.CustomerName,
		Email:           param.Email,
		Phone:           param.Phone,
		Guests:          param.Guests,
		Date:            repository.Date(date),
		Time:            param.Time,
		SpecialRequests: repository.Text(param.SpecialRequests),
		Status:          repository.ReservationStatus(workflow.Reservations.Initial()),
	})
	if err != nil {
		err = wrapError("inserting reservation", err)
		otel.RecordError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		return response.Reservation{}, err
	}
	metric.Add(c, metric.ReservationsCreated, 1)
	publish(c, s.notifier, notify.ENTITY_RESERVATIONS, notify.OpInsert, param.ID.String())
	logger.Info().Msg("inserted reservation")

	return inserted.Response(), nil
}

// ListReservations returns every reservation ordered by date then time.
func (s *ReservationStore) ListReservations(c context.Context) ([]response.Reservation, error) {
	c, span := otel.Tracer.Start(c, "ReservationStore ListReservations")
	defer span.End()

	logger := zerolog.Ctx(c).
		With().
		Str(constants.KEY_TAG, "ReservationStore ListReservations").
		Str(constants.KEY_PROCESS, "listing reservations").
		Logger()

	logger.Trace().Msg("listing reservations")
	rows, err := s.queries.ListReservations(c)
	if err != nil {
		err = wrapError("listing reservations", err)
		otel.RecordError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		return nil, err
	}
	reservations := make([]response.Reservation, 0, len(rows))
	for _, row := range rows {
		reservations = append(reservations, row.Response())
	}
	logger.Trace().Int("count", len(reservations)).Msg("listed reservations")

	return reservations, nil
}

func (s *ReservationStore) UpdateReservationStatus(
	c context.Context,
	id uuid.UUID,
	to workflow.ReservationStatus,
) (StatusChange[workflow.ReservationStatus], error) {
	c, span := otel.Tracer.Start(c, "ReservationStore UpdateReservationStatus")
	defer span.End()

	logger := zerolog.Ctx(c).
		With().
		Str(constants.KEY_TAG, "ReservationStore UpdateReservationStatus").
		Str(constants.KEY_RESERVATION_ID, id.String()).
		Str(constants.KEY_STATUS_TO, to.String()).
		Logger()
	c = logger.WithContext(c)

	change := StatusChange[workflow.ReservationStatus]{ID: id, To: to}
	err := inTx(c, s.pool, s.queries, func(q *repository.Queries) error {
		from, err := q.FindReservationStatusForUpdate(c, id)
		if err != nil {
			return err
		}
		change.From = workflow.ReservationStatus(from)
		if err = workflow.Reservations.Check(change.From, to); err != nil {
			return err
		}
		updated, err := q.UpdateReservationStatus(c, repository.UpdateReservationStatusParams{
			ID:     id,
			Status: repository.ReservationStatus(to),
		})
		if err != nil {
			return err
		}
		change.UpdatedAt = updated.UpdatedAt.Time
		return nil
	})
	if err != nil {
		err = wrapError("updating reservation status", err)
		otel.RecordError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		return StatusChange[workflow.ReservationStatus]{}, err
	}
	metric.Add(c, metric.StatusTransitions, 1,
		attribute.String("entity", workflow.Reservations.Entity()),
		attribute.String("to", to.String()),
	)
	publish(c, s.notifier, notify.ENTITY_RESERVATIONS, notify.OpUpdate, id.String())
	logger.Info().Str(constants.KEY_STATUS_FROM, change.From.String()).Msg("updated reservation status")

	return change, nil
}
