package workflow

import (
	"fmt"
	"slices"

	inErrors "github.com/Alturino/nebula/internal/errors"
)

type Status interface {
	~string
}

// Machine is the transition table of one entity lifecycle.
type Machine[S Status] struct {
	entity      string
	initial     S
	states      []S
	transitions map[S][]S
}

var Orders = Machine[OrderStatus]{
	entity:  "order",
	initial: OrderPending,
	states: []OrderStatus{
		OrderPending,
		OrderConfirmed,
		OrderPreparing,
		OrderReady,
		OrderDelivered,
		OrderCancelled,
	},
	transitions: map[OrderStatus][]OrderStatus{
		OrderPending:   {OrderPreparing, OrderCancelled},
		OrderConfirmed: {OrderPreparing, OrderCancelled},
		OrderPreparing: {OrderReady},
		OrderReady:     {OrderDelivered},
	},
}

var Reservations = Machine[ReservationStatus]{
	entity:  "reservation",
	initial: ReservationPending,
	states: []ReservationStatus{
		ReservationPending,
		ReservationConfirmed,
		ReservationCancelled,
		ReservationCompleted,
	},
	transitions: map[ReservationStatus][]ReservationStatus{
		ReservationPending:   {ReservationConfirmed, ReservationCancelled},
		ReservationConfirmed: {ReservationCompleted},
	},
}

func (m Machine[S]) Entity() string {
	return m.entity
}

func (m Machine[S]) Initial() S {
	return m.initial
}

func (m Machine[S]) States() []S {
	return slices.Clone(m.states)
}

func (m Machine[S]) Parse(raw string) (S, error) {
	for _, s := range m.states {
		if string(s) == raw {
			return s, nil
		}
	}
	var zero S
	return zero, fmt.Errorf("failed parsing %s status=%s with error=%w", m.entity, raw, inErrors.ErrUnknownStatus)
}

// Allowed lists the statuses reachable from `from` in one step, in display order.
func (m Machine[S]) Allowed(from S) []S {
	return slices.Clone(m.transitions[from])
}

func (m Machine[S]) CanTransition(from, to S) bool {
	return slices.Contains(m.transitions[from], to)
}

func (m Machine[S]) IsTerminal(s S) bool {
	return slices.Contains(m.states, s) && len(m.transitions[s]) == 0
}

// Check returns ErrIllegalTransition unless from -> to is in the table.
func (m Machine[S]) Check(from, to S) error {
	if !m.CanTransition(from, to) {
		return fmt.Errorf(
			"failed transitioning %s from=%s to=%s with error=%w",
			m.entity,
			from,
			to,
			inErrors.ErrIllegalTransition,
		)
	}
	return nil
}
