package validate

import (
	"fmt"
	"slices"
)

const (
	firstSeatingHour = 17
	lastSeatingHour  = 21
)

var timeSlots = func() []string {
	slots := []string{}
	for h := firstSeatingHour; h <= lastSeatingHour; h++ {
		slots = append(slots, fmt.Sprintf("%02d:00", h), fmt.Sprintf("%02d:30", h))
	}
	return slots
}()

// TimeSlots returns the reservation seatings, 17:00 to 21:30 every half hour.
func TimeSlots() []string {
	return slices.Clone(timeSlots)
}

func IsTimeSlot(s string) bool {
	return slices.Contains(timeSlots, s)
}
