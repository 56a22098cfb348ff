package metric

import (
	"context"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"

	"github.com/Alturino/nebula/internal/constants"
)

const (
	OrdersCreated        = "orders.created"
	ReservationsCreated  = "reservations.created"
	VerificationIssued   = "verification.codes.issued"
	VerificationFailures = "verification.failures"
	StatusTransitions    = "status.transitions"
	CartMutations        = "cart.mutations"
)

// Add resolves the counter from the global meter provider on every call.
func Add(c context.Context, name string, n int64, attrs ...attribute.KeyValue) {
	counter, err := otel.Meter(constants.APP_NEBULA).Int64Counter(name)
	if err != nil {
		return
	}
	counter.Add(c, n, metric.WithAttributes(attrs...))
}
