// Package mauvelian implements the Mauvelian calendar: years of exactly
// 365 days split into four fixed seasons, counted in after-exodus (AE)
// and before-exodus (BE) years with no year zero. A Converter anchored
// by a reference pair maps dates to and from the Gregorian calendar.
package mauvelian

import (
	"fmt"

	"github.com/starford/mauvelian/internal/apperr"
)

// DaysPerYear is the fixed length of every Mauvelian year.
const DaysPerYear = 365

// Date is a single day in the Mauvelian calendar.
//
// A date is canonically the signed offset of its day from the calendar
// epoch: day 1 of year 1 AE is offset 1, BE days carry negative offsets,
// and offset 0 does not exist. Year 0 does not exist either. The zero
// value is not a valid date; IsZero reports it. Dates are ordered and
// compared solely by offset.
type Date struct {
	day int
}

// New returns the date for dayOfYear (1..365) of the given nonzero year.
// Negative years are BE.
func New(year, dayOfYear int) (Date, error) {
	if year == 0 {
		return Date{}, fmt.Errorf("mauvelian: year 0 does not exist: %w", apperr.ErrInvalidArgument)
	}
	if dayOfYear < 1 || dayOfYear > DaysPerYear {
		return Date{}, fmt.Errorf("mauvelian: day of year %d outside 1..%d: %w", dayOfYear, DaysPerYear, apperr.ErrInvalidArgument)
	}
	if year > 0 {
		return Date{day: dayOfYear + DaysPerYear*(year-1)}, nil
	}
	return Date{day: -dayOfYear + DaysPerYear*(year+1)}, nil
}

// NewSeasonDate returns the date for dayOfSeason (1-based, bounded by the
// season's length) of the given season and nonzero year.
func NewSeasonDate(year, dayOfSeason int, season Season) (Date, error) {
	if dayOfSeason < 1 || dayOfSeason > season.Days() {
		return Date{}, fmt.Errorf("mauvelian: day %d outside 1..%d for %s: %w", dayOfSeason, season.Days(), season, apperr.ErrInvalidArgument)
	}
	return New(year, dayOfSeason+season.FirstDay()-1)
}

// IsZero reports whether d is the invalid zero value.
func (d Date) IsZero() bool {
	return d.day == 0
}

// Year returns the signed year. AE years are positive, BE years negative;
// 0 is never returned.
func (d Date) Year() int {
	if d.day > 0 {
		return (d.day + DaysPerYear - 1) / DaysPerYear
	}
	return -((-d.day + DaysPerYear - 1) / DaysPerYear)
}

// DayOfYear returns the day within the year, always in 1..365.
func (d Date) DayOfYear() int {
	r := d.day % DaysPerYear
	if r < 0 {
		r = -r
	}
	if r == 0 {
		return DaysPerYear
	}
	return r
}

// Season returns the season containing the date.
func (d Date) Season() Season {
	return seasonOfDay(d.DayOfYear())
}

// DayOfSeason returns the 1-based day within the date's season.
func (d Date) DayOfSeason() int {
	return d.DayOfYear() - d.Season().FirstDay() + 1
}

// String formats the date as "<dayOfSeason> <season>, <|year|><era>",
// e.g. "76 Season of Scion, 1306AE".
func (d Date) String() string {
	year, era := d.Year(), "AE"
	if year < 0 {
		year, era = -year, "BE"
	}
	return fmt.Sprintf("%d %s, %d%s", d.DayOfSeason(), d.Season(), year, era)
}

// Compare returns -1 if d is before o, +1 if after, and 0 if equal.
func (d Date) Compare(o Date) int {
	switch {
	case d.day < o.day:
		return -1
	case d.day > o.day:
		return 1
	}
	return 0
}

// Before reports whether d is before o.
func (d Date) Before(o Date) bool { return d.day < o.day }

// After reports whether d is after o.
func (d Date) After(o Date) bool { return d.day > o.day }

// Equal reports whether d and o are the same day.
func (d Date) Equal(o Date) bool { return d.day == o.day }

// AddDays advances the date in place by n days (rewinds for negative n).
// A result landing exactly on the nonexistent offset 0 is coerced to
// offset 1, day 1 of year 1 AE, regardless of direction of travel.
func (d *Date) AddDays(n int) {
	d.day += n
	if d.day == 0 {
		d.day = 1
	}
}

// Add returns a copy of the date advanced by n days.
func (d Date) Add(n int) Date {
	d.AddDays(n)
	return d
}

// DaysBetween returns the absolute number of days separating d and o.
// It is symmetric and never negative.
func (d Date) DaysBetween(o Date) int {
	n := d.day - o.day
	if n < 0 {
		n = -n
	}
	return n
}

// Sub returns the day count separating d and o, equal to DaysBetween.
func (d Date) Sub(o Date) int {
	return d.DaysBetween(o)
}

// SubDays returns a copy of the date rewound by n days.
func (d Date) SubDays(n int) Date {
	return d.Add(-n)
}
