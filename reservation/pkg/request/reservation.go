package request

import (
	"encoding/json"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

// Reservation is the booking form submitted by a guest.
type Reservation struct {
	SpecialRequests string `json:"special_requests"`
	Name            string `json:"name"             validate:"required"`
	Email           string `json:"email"            validate:"required,email"`
	Phone           string `json:"phone"            validate:"required"`
	Date            string `json:"date"             validate:"required,datetime=2006-01-02,notpast"`
	Time            string `json:"time"             validate:"required,timeslot"`
	Guests          int32  `json:"guests"           validate:"required,gte=1,lte=10"`
}

func (r Reservation) MarshalZerologObject(e *zerolog.Event) {
	e.Str("email", r.Email).
		Str("date", r.Date).
		Str("time", r.Time).
		Int32("guests", r.Guests)
}

type Verify struct {
	Code string `json:"code" validate:"required,code6"`
}

func (v Verify) MarshalZerologObject(e *zerolog.Event) {
	e.Str("code", "***")
}

func (v Verify) MarshalJSON() ([]byte, error) {
	v.Code = "***"
	type V Verify
	return json.Marshal(V(v))
}

// CreateReservation is a verified booking handed to persistence.
type CreateReservation struct {
	SpecialRequests string
	CustomerName    string
	Email           string
	Phone           string
	Date            string
	Time            string
	Guests          int32
	ID              uuid.UUID
}
