package booking

import (
	"fmt"
	"strings"
	"time"

	"github.com/BruksfildServices01/salon-booking/internal/models"
)

const (
	DateLayout  = "2006-01-02"
	ClockLayout = "15:04"
)

// Slot is one busy interval on a salon's day. End wraps past midnight
// without changing the date.
type Slot struct {
	Start    string `json:"start"`
	End      string `json:"end"`
	Duration int    `json:"duration"`
}

// Interval is a booking's reserved span, half open: [Start, End).
type Interval struct {
	Start time.Time
	End   time.Time
}

func ParseDate(s string) (time.Time, error) {
	return time.Parse(DateLayout, strings.TrimSpace(s))
}

// ParseClock accepts HH:MM and the HH:MM:SS form Postgres time columns emit.
func ParseClock(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	if t, err := time.Parse(ClockLayout, s); err == nil {
		return t, nil
	}
	return time.Parse("15:04:05", s)
}

// CanonicalDate returns s as stored: YYYY-MM-DD without padding.
func CanonicalDate(s string) (string, error) {
	t, err := ParseDate(s)
	if err != nil {
		return "", err
	}
	return t.Format(DateLayout), nil
}

// CanonicalClock returns s as stored: zero padded HH:MM.
func CanonicalClock(s string) (string, error) {
	t, err := ParseClock(s)
	if err != nil {
		return "", err
	}
	return t.Format(ClockLayout), nil
}

func IntervalOf(b models.Booking) (Interval, error) {
	day, err := ParseDate(b.BookingDate)
	if err != nil {
		return Interval{}, fmt.Errorf("booking %d: date %q: %w", b.ID, b.BookingDate, err)
	}
	clock, err := ParseClock(b.BookingTime)
	if err != nil {
		return Interval{}, fmt.Errorf("booking %d: time %q: %w", b.ID, b.BookingTime, err)
	}

	start := day.Add(time.Duration(clock.Hour())*time.Hour + time.Duration(clock.Minute())*time.Minute)
	return Interval{
		Start: start,
		End:   start.Add(time.Duration(b.Duration) * time.Minute),
	}, nil
}

// Overlaps uses strict inequalities: back to back intervals do not overlap.
func (i Interval) Overlaps(o Interval) bool {
	return i.Start.Before(o.End) && o.Start.Before(i.End)
}

func SlotFor(b models.Booking) (Slot, error) {
	iv, err := IntervalOf(b)
	if err != nil {
		return Slot{}, err
	}
	return Slot{
		Start:    iv.Start.Format(ClockLayout),
		End:      iv.End.Format(ClockLayout),
		Duration: b.Duration,
	}, nil
}

// FindOverlap returns the first blocking booking in existing whose interval
// overlaps candidate, skipping candidate itself.
func FindOverlap(candidate models.Booking, existing []models.Booking) (*models.Booking, error) {
	want, err := IntervalOf(candidate)
	if err != nil {
		return nil, err
	}

	for i := range existing {
		other := existing[i]
		if other.ID != 0 && other.ID == candidate.ID {
			continue
		}
		if !Status(other.Status).Blocking() {
			continue
		}
		iv, err := IntervalOf(other)
		if err != nil {
			continue
		}
		if want.Overlaps(iv) {
			return &other, nil
		}
	}
	return nil, nil
}
