package response

import (
	"time"

	"github.com/google/uuid"
)

type Event struct {
	CreatedAt   time.Time `json:"created_at"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	Date        string    `json:"date"`
	Time        string    `json:"time"`
	Type        string    `json:"type"`
	ID          uuid.UUID `json:"id"`
}
