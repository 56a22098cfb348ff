package service

import (
	"context"
	"fmt"
	"sync"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/Alturino/nebula/internal/constants"
	inErrors "github.com/Alturino/nebula/internal/errors"
	"github.com/Alturino/nebula/internal/otel"
	"github.com/Alturino/nebula/internal/validate"
	"github.com/Alturino/nebula/reservation/pkg/request"
	"github.com/Alturino/nebula/reservation/pkg/response"
	"github.com/Alturino/nebula/verification/pkg/verifier"
)

// Draft is the booking form of one session awaiting its code.
type Draft struct {
	mu   sync.Mutex
	form *request.Reservation
}

func NewDraft() *Draft {
	return &Draft{}
}

func (d *Draft) set(form *request.Reservation) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.form = form
}

func (d *Draft) get() (request.Reservation, bool) {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.form == nil {
		return request.Reservation{}, false
	}
	return *d.form, true
}

type Drafts interface {
	Get(sessionID string) *Draft
}

type Verifier interface {
	IssueCode(c context.Context, email string) (verifier.Issued, error)
	Resend(c context.Context, email string) (verifier.Issued, error)
	Verify(c context.Context, email string, code string) error
}

type ReservationCreator interface {
	CreateReservation(c context.Context, param request.CreateReservation) (response.Reservation, error)
}

type ReservationService struct {
	drafts       Drafts
	verifier     Verifier
	reservations ReservationCreator
}

func NewReservationService(drafts Drafts, verifier Verifier, reservations ReservationCreator) ReservationService {
	return ReservationService{drafts: drafts, verifier: verifier, reservations: reservations}
}

func (svc ReservationService) Slots() []string {
	return validate.TimeSlots()
}

// Request validates the form, keeps it as the session draft and sends a code
// to its email. The draft survives a failed send.
func (svc ReservationService) Request(c context.Context, sessionID string, form request.Reservation) (response.Pending, error) {
	c, span := otel.Tracer.Start(c, "ReservationService Request")
	defer span.End()

	logger := zerolog.Ctx(c).
		With().
		Str(constants.KEY_TAG, "ReservationService Request").
		Object(constants.KEY_RESERVATION, form).
		Logger()

	logger = logger.With().Str(constants.KEY_PROCESS, "validating reservation").Logger()
	logger.Info().Msg("validating reservation")
	if err := validate.Struct(c, form); err != nil {
		err = fmt.Errorf("failed validating reservation with error=%w", err)
		otel.RecordError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		return response.Pending{}, err
	}
	logger.Info().Msg("validated reservation")

	svc.drafts.Get(sessionID).set(&form)

	logger = logger.With().Str(constants.KEY_PROCESS, "issuing code").Logger()
	logger.Info().Msg("issuing code")
	c = logger.WithContext(c)
	issued, err := svc.verifier.IssueCode(c, form.Email)
	if err != nil {
		err = fmt.Errorf("failed issuing code with error=%w", err)
		otel.RecordError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		return response.Pending{}, err
	}
	logger.Info().Msg("issued code")

	return response.Pending(issued), nil
}

func (svc ReservationService) Resend(c context.Context, sessionID string) (response.Pending, error) {
	c, span := otel.Tracer.Start(c, "ReservationService Resend")
	defer span.End()

	logger := zerolog.Ctx(c).
		With().
		Str(constants.KEY_TAG, "ReservationService Resend").
		Str(constants.KEY_PROCESS, "resending code").
		Logger()

	form, ok := svc.drafts.Get(sessionID).get()
	if !ok {
		err := fmt.Errorf("failed resending code with error=%w", inErrors.ErrNotSent)
		otel.RecordError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		return response.Pending{}, err
	}

	logger.Info().Msg("resending code")
	c = logger.WithContext(c)
	issued, err := svc.verifier.Resend(c, form.Email)
	if err != nil {
		err = fmt.Errorf("failed resending code with error=%w", err)
		otel.RecordError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		return response.Pending{}, err
	}
	logger.Info().Msg("resent code")

	return response.Pending(issued), nil
}

// Verify checks the code against the draft email and books the reservation in
// pending. A failure leaves the draft in place.
func (svc ReservationService) Verify(c context.Context, sessionID string, code request.Verify) (response.Reservation, error) {
	c, span := otel.Tracer.Start(c, "ReservationService Verify")
	defer span.End()

	logger := zerolog.Ctx(c).
		With().
		Str(constants.KEY_TAG, "ReservationService Verify").
		Logger()
	c = logger.WithContext(c)

	draft := svc.drafts.Get(sessionID)
	form, ok := draft.get()
	if !ok {
		err := fmt.Errorf("failed verifying code with error=%w", inErrors.ErrNotSent)
		otel.RecordError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		return response.Reservation{}, err
	}

	logger = logger.With().Str(constants.KEY_PROCESS, "verifying code").Logger()
	logger.Info().Msg("verifying code")
	if err := svc.verifier.Verify(c, form.Email, code.Code); err != nil {
		err = fmt.Errorf("failed verifying code with error=%w", err)
		otel.RecordError(err, span)
		logger.Warn().Err(err).Msg(err.Error())
		return response.Reservation{}, err
	}
	logger.Info().Msg("verified code")

	logger = logger.With().Str(constants.KEY_PROCESS, "creating reservation").Logger()
	logger.Info().Msg("creating reservation")
	reservation, err := svc.reservations.CreateReservation(c, request.CreateReservation{
		ID:              uuid.New(),
		CustomerName:    form.Name,
		Email:           form.Email,
		Phone:           form.Phone,
		Date:            form.Date,
		Time:            form.Time,
		Guests:          form.Guests,
		SpecialRequests: form.SpecialRequests,
	})
	if err != nil {
		err = fmt.Errorf("failed creating reservation with error=%w", err)
		otel.RecordError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		return response.Reservation{}, err
	}
	draft.set(nil)
	logger.Info().Str(constants.KEY_RESERVATION_ID, reservation.ID.String()).Msg("created reservation")

	return reservation, nil
}
