package mauvelian

import (
	"fmt"

	"github.com/starford/mauvelian/internal/apperr"
)

// Season is one of the four fixed divisions of a Mauvelian year.
// The first three seasons span 90 days each; Colossus spans 95.
type Season int

const (
	Zephyr Season = iota + 1
	Phoenix
	Scion
	Colossus
)

// Seasons returns the four seasons in calendar order.
func Seasons() []Season {
	return []Season{Zephyr, Phoenix, Scion, Colossus}
}

// SeasonOf returns the season containing the given day of year (1..365).
func SeasonOf(dayOfYear int) (Season, error) {
	if dayOfYear < 1 || dayOfYear > DaysPerYear {
		return 0, fmt.Errorf("mauvelian: day of year %d outside 1..%d: %w", dayOfYear, DaysPerYear, apperr.ErrInvalidArgument)
	}
	return seasonOfDay(dayOfYear), nil
}

func seasonOfDay(dayOfYear int) Season {
	switch {
	case dayOfYear <= 90:
		return Zephyr
	case dayOfYear <= 180:
		return Phoenix
	case dayOfYear <= 270:
		return Scion
	default:
		return Colossus
	}
}

// Name returns the bare season name, e.g. "Zephyr".
func (s Season) Name() string {
	switch s {
	case Zephyr:
		return "Zephyr"
	case Phoenix:
		return "Phoenix"
	case Scion:
		return "Scion"
	case Colossus:
		return "Colossus"
	}
	return fmt.Sprintf("%%!Season(%d)", int(s))
}

// String returns the ceremonial form, e.g. "Season of Zephyr".
func (s Season) String() string {
	return "Season of " + s.Name()
}

// FirstDay returns the first day of year covered by the season.
func (s Season) FirstDay() int {
	return 1 + 90*(int(s)-1)
}

// LastDay returns the last day of year covered by the season.
func (s Season) LastDay() int {
	return s.FirstDay() + s.Days() - 1
}

// Days returns the length of the season in days.
func (s Season) Days() int {
	if s == Colossus {
		return 95
	}
	return 90
}
