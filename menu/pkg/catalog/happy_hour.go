package catalog

import (
	"fmt"
	"time"

	"github.com/Alturino/nebula/menu/pkg/response"
)

const (
	happyHourStart    = 17
	happyHourEnd      = 19
	happyHourDiscount = "25% off all drinks"
)

// HappyHourAt reports the happy hour window relative to now, in now's location.
func HappyHourAt(now time.Time) response.HappyHour {
	y, m, d := now.Date()
	start := time.Date(y, m, d, happyHourStart, 0, 0, 0, now.Location())
	end := time.Date(y, m, d, happyHourEnd, 0, 0, 0, now.Location())

	info := response.HappyHour{
		StartTime: start.Format("15:04"),
		EndTime:   end.Format("15:04"),
		Discount:  happyHourDiscount,
	}
	switch {
	case !now.Before(start) && now.Before(end):
		info.IsActive = true
		info.TimeRemaining = fmt.Sprintf("%s remaining", hoursMinutes(end.Sub(now)))
	case now.Before(start):
		info.TimeRemaining = fmt.Sprintf("Starts in %s", hoursMinutes(start.Sub(now)))
	}
	return info
}

func hoursMinutes(d time.Duration) string {
	return fmt.Sprintf("%dh %dm", int(d.Hours()), int(d.Minutes())%60)
}
