package request

import "github.com/rs/zerolog"

type UpdateStatus struct {
	Status string `json:"status" validate:"required"`
}

func (u UpdateStatus) MarshalZerologObject(e *zerolog.Event) {
	e.Str("status", u.Status)
}
