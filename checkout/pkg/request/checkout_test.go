package request

import (
	"bytes"
	"context"
	"encoding/json"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	inErrors "github.com/Alturino/nebula/internal/errors"
	"github.com/Alturino/nebula/internal/validate"
)

func TestPaymentSelectionValidation(t *testing.T) {
	card := &CardDetails{Name: "Ada", Number: "4242424242424242", Expiry: "12/30", CVV: "123"}
	tests := []struct {
		name    string
		input   PaymentSelection
		invalid bool
	}{
		{name: "cash needs no card", input: PaymentSelection{Method: "delivery"}},
		{name: "card with details", input: PaymentSelection{Method: "card", Card: card}},
		{name: "card without details", input: PaymentSelection{Method: "card"}, invalid: true},
		{name: "card with missing cvv", input: PaymentSelection{Method: "card", Card: &CardDetails{Name: "Ada", Number: "1", Expiry: "1"}}, invalid: true},
		{name: "unknown method", input: PaymentSelection{Method: "paypal"}, invalid: true},
	}
	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			err := test.input.Validate(context.Background())
			if test.invalid {
				assert.True(t, inErrors.IsValidation(err), "%v", err)
				return
			}
			assert.NoError(t, err)
		})
	}
}

func TestDeliveryFormValidation(t *testing.T) {
	err := validate.Struct(context.Background(), DeliveryForm{Name: "Ada", Email: "not-an-email", Phone: "1"})
	require.Error(t, err)
	var v inErrors.ValidationError
	require.ErrorAs(t, err, &v)
	assert.Contains(t, v.Fields, "email")
	assert.Contains(t, v.Fields, "address")
	assert.NotContains(t, v.Fields, "city")
}

func TestSensitiveFieldsMasked(t *testing.T) {
	card := CardDetails{Name: "Ada", Number: "4242424242424242", Expiry: "12/30", CVV: "123"}
	out, err := json.Marshal(card)
	require.NoError(t, err)
	assert.NotContains(t, string(out), "4242")
	assert.NotContains(t, string(out), "123")

	buf := bytes.Buffer{}
	logger := zerolog.New(&buf)
	logger.Info().Object("payment", PaymentSelection{Method: "card", Card: &card}).Object("code", VerifyCode{Code: "987654"}).Send()
	assert.NotContains(t, buf.String(), "4242")
	assert.NotContains(t, buf.String(), "987654")
}
