package mauvelian

import (
	"errors"
	"testing"
	"time"

	"github.com/starford/mauvelian/internal/apperr"
)

func utcDate(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// anchored returns a converter holding the canonical fixture pair:
// 2016-11-05 names the same day as 35 Season of Colossus, 1328AE.
func anchored(t *testing.T) *Converter {
	t.Helper()
	c := NewConverter()
	ref := Reference{
		Real:      utcDate(2016, time.November, 5),
		Mauvelian: mustSeasonDate(t, 1328, 35, Colossus),
	}
	if err := c.SetReference(ref); err != nil {
		t.Fatalf("SetReference: %v", err)
	}
	return c
}

func TestConverter_RequiresReference(t *testing.T) {
	c := NewConverter()
	if _, err := c.ToMauvelian(utcDate(2016, time.November, 5)); !errors.Is(err, apperr.ErrReferenceNotSet) {
		t.Errorf("ToMauvelian err = %v, want ErrReferenceNotSet", err)
	}
	if _, err := c.ToReal(mustDate(t, 1328, 305)); !errors.Is(err, apperr.ErrReferenceNotSet) {
		t.Errorf("ToReal err = %v, want ErrReferenceNotSet", err)
	}
	if _, ok := c.Reference(); ok {
		t.Errorf("Reference() ok = true on a fresh converter")
	}
}

func TestSetReference_PartialPair(t *testing.T) {
	c := NewConverter()
	err := c.SetReference(Reference{Real: utcDate(2016, time.November, 5)})
	if !errors.Is(err, apperr.ErrPartialReference) {
		t.Errorf("real-only err = %v, want ErrPartialReference", err)
	}
	err = c.SetReference(Reference{Mauvelian: mustDate(t, 1328, 305)})
	if !errors.Is(err, apperr.ErrPartialReference) {
		t.Errorf("mauvelian-only err = %v, want ErrPartialReference", err)
	}
	// A failed set leaves the converter unanchored.
	if _, ok := c.Reference(); ok {
		t.Errorf("Reference() ok = true after failed sets")
	}
}

func TestSetReference_ZeroPairClears(t *testing.T) {
	c := anchored(t)
	if err := c.SetReference(Reference{}); err != nil {
		t.Fatalf("SetReference(zero): %v", err)
	}
	if _, ok := c.Reference(); ok {
		t.Errorf("reference still set after clearing")
	}
	if _, err := c.ToMauvelian(utcDate(2016, time.November, 5)); !errors.Is(err, apperr.ErrReferenceNotSet) {
		t.Errorf("ToMauvelian after clear err = %v, want ErrReferenceNotSet", err)
	}
}

func TestClearReference(t *testing.T) {
	c := anchored(t)
	c.ClearReference()
	if _, ok := c.Reference(); ok {
		t.Errorf("reference still set after ClearReference")
	}
}

func TestToReal_Concrete(t *testing.T) {
	c := anchored(t)
	got, err := c.ToReal(mustSeasonDate(t, 1328, 41, Colossus))
	if err != nil {
		t.Fatalf("ToReal: %v", err)
	}
	if want := utcDate(2016, time.November, 11); !got.Equal(want) {
		t.Errorf("ToReal = %v, want %v", got, want)
	}
}

func TestToMauvelian_Concrete(t *testing.T) {
	c := anchored(t)
	got, err := c.ToMauvelian(utcDate(2016, time.November, 11))
	if err != nil {
		t.Fatalf("ToMauvelian: %v", err)
	}
	if want := mustSeasonDate(t, 1328, 41, Colossus); !got.Equal(want) {
		t.Errorf("ToMauvelian = %v, want %v", got, want)
	}
}

func TestConvert_ReferenceDayMapsToItself(t *testing.T) {
	c := anchored(t)
	ref, _ := c.Reference()
	gotM, err := c.ToMauvelian(ref.Real)
	if err != nil {
		t.Fatalf("ToMauvelian: %v", err)
	}
	if !gotM.Equal(ref.Mauvelian) {
		t.Errorf("ToMauvelian(ref) = %v, want %v", gotM, ref.Mauvelian)
	}
	gotR, err := c.ToReal(ref.Mauvelian)
	if err != nil {
		t.Fatalf("ToReal: %v", err)
	}
	if !gotR.Equal(ref.Real) {
		t.Errorf("ToReal(ref) = %v, want %v", gotR, ref.Real)
	}
}

func TestToReal_BeforeReference(t *testing.T) {
	// DaysBetween is magnitude-only; the conversion has to re-derive the
	// sign for dates on the early side of the anchor.
	c := anchored(t)
	got, err := c.ToReal(mustDate(t, 1328, 300))
	if err != nil {
		t.Fatalf("ToReal: %v", err)
	}
	if want := utcDate(2016, time.October, 31); !got.Equal(want) {
		t.Errorf("ToReal = %v, want %v", got, want)
	}
}

func TestToMauvelian_BeforeReference(t *testing.T) {
	c := anchored(t)
	got, err := c.ToMauvelian(utcDate(2016, time.October, 31))
	if err != nil {
		t.Fatalf("ToMauvelian: %v", err)
	}
	if want := mustDate(t, 1328, 300); !got.Equal(want) {
		t.Errorf("ToMauvelian = %v, want %v", got, want)
	}
}

func TestConvert_RoundTrip(t *testing.T) {
	c := anchored(t)
	ref, _ := c.Reference()
	deltas := []int{-2000, -366, -30, -1, 0, 1, 59, 365, 4252}
	for _, n := range deltas {
		r := ref.Real.AddDate(0, 0, n)
		m, err := c.ToMauvelian(r)
		if err != nil {
			t.Fatalf("ToMauvelian(%v): %v", r, err)
		}
		back, err := c.ToReal(m)
		if err != nil {
			t.Fatalf("ToReal(%v): %v", m, err)
		}
		if !back.Equal(r) {
			t.Errorf("round trip %v -> %v -> %v", r, m, back)
		}

		d := ref.Mauvelian.Add(n)
		r2, err := c.ToReal(d)
		if err != nil {
			t.Fatalf("ToReal(%v): %v", d, err)
		}
		m2, err := c.ToMauvelian(r2)
		if err != nil {
			t.Fatalf("ToMauvelian(%v): %v", r2, err)
		}
		if !m2.Equal(d) {
			t.Errorf("round trip %v -> %v -> %v", d, r2, m2)
		}
	}
}

func TestToMauvelian_LeapDayCrossing(t *testing.T) {
	c := NewConverter()
	ref := Reference{
		Real:      utcDate(2016, time.March, 5),
		Mauvelian: mustDate(t, 100, 50),
	}
	if err := c.SetReference(ref); err != nil {
		t.Fatalf("SetReference: %v", err)
	}
	// 2016 is a leap year: Feb 28 is six days before Mar 5, not five.
	got, err := c.ToMauvelian(utcDate(2016, time.February, 28))
	if err != nil {
		t.Fatalf("ToMauvelian: %v", err)
	}
	if want := mustDate(t, 100, 44); !got.Equal(want) {
		t.Errorf("ToMauvelian = %v, want %v", got, want)
	}

	back, err := c.ToReal(mustDate(t, 100, 44))
	if err != nil {
		t.Fatalf("ToReal: %v", err)
	}
	if want := utcDate(2016, time.February, 28); !back.Equal(want) {
		t.Errorf("ToReal = %v, want %v", back, want)
	}
}

func TestConvert_LongSpan(t *testing.T) {
	// Four Gregorian centuries are exactly 146097 days; spans this long
	// overflow a time.Duration, which the conversion must not rely on.
	c := NewConverter()
	ref := Reference{
		Real:      utcDate(2000, time.January, 1),
		Mauvelian: mustDate(t, 1300, 1),
	}
	if err := c.SetReference(ref); err != nil {
		t.Fatalf("SetReference: %v", err)
	}
	got, err := c.ToMauvelian(utcDate(2400, time.January, 1))
	if err != nil {
		t.Fatalf("ToMauvelian: %v", err)
	}
	if want := mustDate(t, 1300, 1).Add(146097); !got.Equal(want) {
		t.Errorf("ToMauvelian = %v, want %v", got, want)
	}
}

func TestSetReference_NormalizesTime(t *testing.T) {
	zone := time.FixedZone("UTC+9", 9*60*60)
	c := NewConverter()
	ref := Reference{
		Real:      time.Date(2016, time.November, 5, 23, 45, 12, 0, zone),
		Mauvelian: mustSeasonDate(t, 1328, 35, Colossus),
	}
	if err := c.SetReference(ref); err != nil {
		t.Fatalf("SetReference: %v", err)
	}
	stored, _ := c.Reference()
	if want := utcDate(2016, time.November, 5); !stored.Real.Equal(want) {
		t.Errorf("stored real = %v, want %v", stored.Real, want)
	}
	// Any wall-clock instant on the same calendar day converts alike.
	m1, err := c.ToMauvelian(time.Date(2016, time.November, 6, 0, 1, 0, 0, zone))
	if err != nil {
		t.Fatalf("ToMauvelian: %v", err)
	}
	m2, err := c.ToMauvelian(utcDate(2016, time.November, 6))
	if err != nil {
		t.Fatalf("ToMauvelian: %v", err)
	}
	if !m1.Equal(m2) {
		t.Errorf("time of day changed the conversion: %v vs %v", m1, m2)
	}
}

func TestConvert_DoesNotMutateReference(t *testing.T) {
	c := anchored(t)
	before, _ := c.Reference()
	if _, err := c.ToMauvelian(utcDate(2020, time.July, 14)); err != nil {
		t.Fatalf("ToMauvelian: %v", err)
	}
	if _, err := c.ToReal(mustDate(t, 1400, 12)); err != nil {
		t.Fatalf("ToReal: %v", err)
	}
	after, _ := c.Reference()
	if !after.Real.Equal(before.Real) || !after.Mauvelian.Equal(before.Mauvelian) {
		t.Errorf("reference changed: %+v -> %+v", before, after)
	}
}

func TestToReal_ZeroDate(t *testing.T) {
	c := anchored(t)
	if _, err := c.ToReal(Date{}); !errors.Is(err, apperr.ErrInvalidArgument) {
		t.Errorf("ToReal(zero) err = %v, want ErrInvalidArgument", err)
	}
}
