package response

import (
	"time"

	"github.com/google/uuid"

	"github.com/Alturino/nebula/internal/workflow"
)

type Reservation struct {
	CreatedAt       time.Time                  `json:"created_at"`
	UpdatedAt       time.Time                  `json:"updated_at"`
	SpecialRequests *string                    `json:"special_requests,omitempty"`
	CustomerName    string                     `json:"customer_name"`
	Email           string                     `json:"email"`
	Phone           string                     `json:"phone"`
	Date            string                     `json:"date"`
	Time            string                     `json:"time"`
	Status          workflow.ReservationStatus `json:"status"`
	Guests          int32                      `json:"guests"`
	ID              uuid.UUID                  `json:"id"`
}

func (r Reservation) CurrentStatus() workflow.ReservationStatus {
	return r.Status
}

func (r Reservation) RecordID() uuid.UUID {
	return r.ID
}

// Pending is what the shop answers while the reservation waits for its
// verification code.
type Pending struct {
	Email     string    `json:"email"`
	ExpiresAt time.Time `json:"expires_at"`
}
