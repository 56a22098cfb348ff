package request

import (
	"context"
	"encoding/json"

	"github.com/rs/zerolog"

	inErrors "github.com/Alturino/nebula/internal/errors"
	"github.com/Alturino/nebula/internal/validate"
)

type DeliveryForm struct {
	Name                string `json:"name"                 validate:"required"`
	Email               string `json:"email"                validate:"required,email"`
	Phone               string `json:"phone"                validate:"required"`
	Address             string `json:"address"              validate:"required"`
	City                string `json:"city"`
	PostalCode          string `json:"postal_code"`
	DeliveryTime        string `json:"delivery_time"`
	SpecialInstructions string `json:"special_instructions"`
}

func (d DeliveryForm) MarshalZerologObject(e *zerolog.Event) {
	e.Str("name", d.Name).
		Str("email", d.Email).
		Str("city", d.City).
		Str("delivery_time", d.DeliveryTime)
}

type CardDetails struct {
	Name   string `json:"name"   validate:"required"`
	Number string `json:"number" validate:"required"`
	Expiry string `json:"expiry" validate:"required"`
	CVV    string `json:"cvv"    validate:"required"`
}

func (c CardDetails) MarshalZerologObject(e *zerolog.Event) {
	e.Str("name", c.Name).Str("number", "***").Str("expiry", c.Expiry).Str("cvv", "***")
}

func (c CardDetails) MarshalJSON() ([]byte, error) {
	c.Number = "***"
	c.CVV = "***"
	type C CardDetails
	return json.Marshal(C(c))
}

// PaymentSelection carries card details only when Method is card.
type PaymentSelection struct {
	Card   *CardDetails `json:"card"`
	Method string       `json:"method" validate:"required,oneof=delivery card"`
}

func (p PaymentSelection) Validate(c context.Context) error {
	if err := validate.Struct(c, p); err != nil {
		return err
	}
	if p.Method == "card" && p.Card == nil {
		return inErrors.NewValidationError(map[string]string{"card": "required"})
	}
	return nil
}

func (p PaymentSelection) MarshalZerologObject(e *zerolog.Event) {
	e.Str("method", p.Method)
	if p.Card != nil {
		e.Object("card", p.Card)
	}
}

type VerifyCode struct {
	Code string `json:"code" validate:"required,code6"`
}

func (v VerifyCode) MarshalZerologObject(e *zerolog.Event) {
	e.Str("code", "***")
}

func (v VerifyCode) MarshalJSON() ([]byte, error) {
	v.Code = "***"
	type V VerifyCode
	return json.Marshal(V(v))
}
