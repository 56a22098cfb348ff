// Package payment prices a checkout. No payment is ever authorized.
package payment

import (
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/Alturino/nebula/internal/config"
)

type Method string

const (
	MethodDelivery Method = "delivery"
	MethodCard     Method = "card"
)

func ParseMethod(raw string) (Method, error) {
	switch Method(raw) {
	case MethodDelivery, MethodCard:
		return Method(raw), nil
	}
	return "", fmt.Errorf("failed parsing payment method=%s", raw)
}

type Quote struct {
	Method      Method          `json:"method"`
	Subtotal    decimal.Decimal `json:"subtotal"`
	DeliveryFee decimal.Decimal `json:"delivery_fee"`
	HandlingFee decimal.Decimal `json:"handling_fee"`
	Total       decimal.Decimal `json:"total"`
}

// QuoteFor adds the delivery fee to every order and the cash handling fee to
// cash on delivery.
func QuoteFor(subtotal decimal.Decimal, method Method, cfg config.Payment) Quote {
	quote := Quote{
		Method:      method,
		Subtotal:    subtotal,
		DeliveryFee: cfg.DeliveryFee,
		HandlingFee: decimal.Zero,
	}
	if method == MethodDelivery {
		quote.HandlingFee = cfg.CashHandlingFee
	}
	quote.Total = subtotal.Add(quote.DeliveryFee).Add(quote.HandlingFee)
	return quote
}
