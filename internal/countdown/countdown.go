// Package countdown derives the remaining-time display for the event date.
package countdown

import "time"

// Snapshot holds the whole-unit time remaining until the event.
// Hours, Minutes and Seconds are remainders within the next larger unit,
// not totals.
type Snapshot struct {
	Days    int
	Hours   int
	Minutes int
	Seconds int
}

// IsZero reports whether the event time has been reached.
func (s Snapshot) IsZero() bool {
	return s.Days == 0 && s.Hours == 0 && s.Minutes == 0 && s.Seconds == 0
}

// Remaining computes the countdown from now to target. Once target has
// passed every field is zero; nothing ever goes negative.
func Remaining(now, target time.Time) Snapshot {
	total := target.Sub(now)
	if total <= 0 {
		return Snapshot{}
	}

	totalSeconds := int(total / time.Second)
	return Snapshot{
		Days:    totalSeconds / 86400,
		Hours:   (totalSeconds / 3600) % 24,
		Minutes: (totalSeconds / 60) % 60,
		Seconds: totalSeconds % 60,
	}
}
