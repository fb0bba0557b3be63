// Package prayer supplies the two external collaborators of the timeline
// core: the prayer-time provider and the Hijri calendar converter. Times are
// wall-clock HH:MM strings; the core compares them lexicographically.
package prayer

import (
	"fmt"
	"time"

	"github.com/Mohd-Abdelaleem/darbi-salati/internal"
)

// Provider yields the six daily prayer times for a date at a location.
// Real astronomical computation lives outside this service; implementations
// here serve configured schedules.
type Provider interface {
	TimesFor(date time.Time, lat, lon float64) (internal.PrayerTimes, error)
}

// FixedProvider returns the same configured times for every date. The
// schedule is validated once at construction; malformed clock strings are
// rejected rather than defaulted.
type FixedProvider struct {
	times internal.PrayerTimes
}

func NewFixedProvider(times internal.PrayerTimes) (*FixedProvider, error) {
	if err := ValidateTimes(times); err != nil {
		return nil, err
	}
	return &FixedProvider{times: times}, nil
}

func (p *FixedProvider) TimesFor(date time.Time, lat, lon float64) (internal.PrayerTimes, error) {
	return p.times, nil
}

// ValidateTimes checks all six clock strings of a schedule.
func ValidateTimes(t internal.PrayerTimes) error {
	for _, v := range []struct{ name, clock string }{
		{"fajr", t.Fajr}, {"sunrise", t.Sunrise}, {"dhuhr", t.Dhuhr},
		{"asr", t.Asr}, {"maghrib", t.Maghrib}, {"isha", t.Isha},
	} {
		if _, err := ParseClock(v.clock); err != nil {
			return fmt.Errorf("prayer: invalid %s time %q: %w", v.name, v.clock, err)
		}
	}
	return nil
}

// ParseClock converts an HH:MM string to minutes since midnight.
func ParseClock(s string) (int, error) {
	t, err := time.Parse("15:04", s)
	if err != nil {
		return 0, err
	}
	return t.Hour()*60 + t.Minute(), nil
}

// FormatClock is the inverse of ParseClock.
func FormatClock(minutes int) string {
	minutes = ((minutes % 1440) + 1440) % 1440
	return fmt.Sprintf("%02d:%02d", minutes/60, minutes%60)
}

// LastThirdOfNight returns the start of the last third of the night, where
// the night spans maghrib of this day to fajr of the next.
func LastThirdOfNight(maghrib, fajr string) (string, error) {
	m, err := ParseClock(maghrib)
	if err != nil {
		return "", fmt.Errorf("prayer: invalid maghrib time %q: %w", maghrib, err)
	}
	f, err := ParseClock(fajr)
	if err != nil {
		return "", fmt.Errorf("prayer: invalid fajr time %q: %w", fajr, err)
	}
	night := f + 1440 - m // fajr is on the following day
	return FormatClock(m + night*2/3), nil
}
