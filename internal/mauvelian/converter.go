package mauvelian

import (
	"fmt"
	"time"

	"github.com/starford/mauvelian/internal/apperr"
)

// Reference pairs a Gregorian date with the Mauvelian date naming the
// same day. The zero value means "no reference".
type Reference struct {
	Real      time.Time
	Mauvelian Date
}

// IsZero reports whether neither side of the pair is set.
func (r Reference) IsZero() bool {
	return r.Real.IsZero() && r.Mauvelian.IsZero()
}

// Converter translates dates between the Gregorian and Mauvelian
// calendars. All conversions are day-count arithmetic relative to a
// single stored reference pair; until one is set, conversions fail.
//
// A Converter is single-owner mutable state and is not safe for
// concurrent use; callers sharing one across goroutines must add their
// own locking.
type Converter struct {
	ref    Reference
	refSet bool
}

// NewConverter returns a Converter with no reference set.
func NewConverter() *Converter {
	return &Converter{}
}

// SetReference stores ref as the conversion anchor. Both sides must be
// set together: a pair with exactly one side set fails with
// ErrPartialReference, and a wholly zero pair clears the reference.
// The real side is truncated to its calendar day; time of day and zone
// are not represented.
func (c *Converter) SetReference(ref Reference) error {
	realSet, mauvSet := !ref.Real.IsZero(), !ref.Mauvelian.IsZero()
	switch {
	case !realSet && !mauvSet:
		c.ClearReference()
		return nil
	case realSet != mauvSet:
		return fmt.Errorf("mauvelian: reference needs both a real and a Mauvelian date: %w", apperr.ErrPartialReference)
	}
	c.ref = Reference{Real: midnightUTC(ref.Real), Mauvelian: ref.Mauvelian}
	c.refSet = true
	return nil
}

// ClearReference removes the stored reference pair.
func (c *Converter) ClearReference() {
	c.ref = Reference{}
	c.refSet = false
}

// Reference returns the stored pair and whether one is set.
func (c *Converter) Reference() (Reference, bool) {
	return c.ref, c.refSet
}

// ToMauvelian converts a Gregorian date to its Mauvelian equivalent.
// The delta is the whole-day difference between the two calendar days;
// leap years are absorbed by Gregorian arithmetic. Fails with
// ErrReferenceNotSet before a reference pair is stored.
func (c *Converter) ToMauvelian(real time.Time) (Date, error) {
	if !c.refSet {
		return Date{}, fmt.Errorf("mauvelian: convert real date: %w", apperr.ErrReferenceNotSet)
	}
	return c.ref.Mauvelian.Add(daysBetweenReal(real, c.ref.Real)), nil
}

// ToReal converts a Mauvelian date to its Gregorian equivalent.
// DaysBetween carries no sign, so the delta is re-signed by which side
// of the reference the date falls on. Fails with ErrReferenceNotSet
// before a reference pair is stored.
func (c *Converter) ToReal(d Date) (time.Time, error) {
	if !c.refSet {
		return time.Time{}, fmt.Errorf("mauvelian: convert Mauvelian date: %w", apperr.ErrReferenceNotSet)
	}
	if d.IsZero() {
		return time.Time{}, fmt.Errorf("mauvelian: convert zero date: %w", apperr.ErrInvalidArgument)
	}
	delta := d.DaysBetween(c.ref.Mauvelian)
	if d.Before(c.ref.Mauvelian) {
		delta = -delta
	}
	return c.ref.Real.AddDate(0, 0, delta), nil
}

// midnightUTC pins t to midnight UTC of its calendar day, so deltas
// between two pinned times divide into whole days exactly.
func midnightUTC(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// daysBetweenReal returns the signed whole-day count from b to a.
// Unix seconds rather than a time.Duration, which would saturate for
// spans past ~292 years.
func daysBetweenReal(a, b time.Time) int {
	const daySeconds = 24 * 60 * 60
	return int((midnightUTC(a).Unix() - midnightUTC(b).Unix()) / daySeconds)
}
