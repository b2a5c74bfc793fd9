package dateparse

import (
	"errors"
	"testing"
	"time"

	"github.com/starford/mauvelian/internal/apperr"
	"github.com/starford/mauvelian/internal/mauvelian"
)

func mustNew(t *testing.T, year, dayOfYear int) mauvelian.Date {
	t.Helper()
	d, err := mauvelian.New(year, dayOfYear)
	if err != nil {
		t.Fatalf("New(%d, %d): %v", year, dayOfYear, err)
	}
	return d
}

func TestReal(t *testing.T) {
	got, err := Real("2016-11-05")
	if err != nil {
		t.Fatalf("Real: %v", err)
	}
	want := time.Date(2016, time.November, 5, 0, 0, 0, 0, time.UTC)
	if !got.Equal(want) {
		t.Errorf("Real = %v, want %v", got, want)
	}
	if _, err := Real("  2016-11-05 "); err != nil {
		t.Errorf("Real with padding: %v", err)
	}
}

func TestReal_Invalid(t *testing.T) {
	for _, s := range []string{"", "2016-13-05", "2016-11-40", "05/11/2016", "yesterday"} {
		if _, err := Real(s); !errors.Is(err, apperr.ErrInvalidArgument) {
			t.Errorf("Real(%q) err = %v, want ErrInvalidArgument", s, err)
		}
	}
}

func TestMauvelian_DayOfYear(t *testing.T) {
	got, err := Mauvelian("1306 256")
	if err != nil {
		t.Fatalf("Mauvelian: %v", err)
	}
	if want := mustNew(t, 1306, 256); !got.Equal(want) {
		t.Errorf("Mauvelian = %v, want %v", got, want)
	}
}

func TestMauvelian_SeasonForm(t *testing.T) {
	got, err := Mauvelian("1306 76 Scion")
	if err != nil {
		t.Fatalf("Mauvelian: %v", err)
	}
	if want := mustNew(t, 1306, 256); !got.Equal(want) {
		t.Errorf("Mauvelian = %v, want %v", got, want)
	}
	// Whitespace runs and lowercase names are tolerated.
	loose, err := Mauvelian("  1306   76   scion ")
	if err != nil {
		t.Fatalf("Mauvelian: %v", err)
	}
	if !loose.Equal(got) {
		t.Errorf("loose form = %v, want %v", loose, got)
	}
}

func TestMauvelian_EraSuffix(t *testing.T) {
	cases := []struct {
		in   string
		year int
		doy  int
	}{
		{"1306AE 256", 1306, 256},
		{"1306ae 256", 1306, 256},
		{"12BE 40", -12, 40},
		{"-12 40", -12, 40},
	}
	for _, c := range cases {
		got, err := Mauvelian(c.in)
		if err != nil {
			t.Fatalf("Mauvelian(%q): %v", c.in, err)
		}
		if want := mustNew(t, c.year, c.doy); !got.Equal(want) {
			t.Errorf("Mauvelian(%q) = %v, want %v", c.in, got, want)
		}
	}
}

func TestMauvelian_Invalid(t *testing.T) {
	cases := []string{
		"",
		"1306",
		"1306 76 Scion extra",
		"year day",
		"1306 day",
		"1306 0",
		"0 40",
		"-12BE 40",
		"1306 366",
		"1306 91 Zephyr",
	}
	for _, s := range cases {
		if _, err := Mauvelian(s); !errors.Is(err, apperr.ErrInvalidArgument) {
			t.Errorf("Mauvelian(%q) err = %v, want ErrInvalidArgument", s, err)
		}
	}
}

func TestSeason_Exact(t *testing.T) {
	for _, s := range []string{"Colossus", "colossus", "COLOSSUS", " colossus "} {
		got, err := Season(s)
		if err != nil {
			t.Fatalf("Season(%q): %v", s, err)
		}
		if got != mauvelian.Colossus {
			t.Errorf("Season(%q) = %v, want Colossus", s, got)
		}
	}
}

func TestSeason_Prefix(t *testing.T) {
	cases := []struct {
		in   string
		want mauvelian.Season
	}{
		{"z", mauvelian.Zephyr},
		{"Zep", mauvelian.Zephyr},
		{"pho", mauvelian.Phoenix},
		{"s", mauvelian.Scion},
		{"col", mauvelian.Colossus},
	}
	for _, c := range cases {
		got, err := Season(c.in)
		if err != nil {
			t.Fatalf("Season(%q): %v", c.in, err)
		}
		if got != c.want {
			t.Errorf("Season(%q) = %v, want %v", c.in, got, c.want)
		}
	}
}

func TestSeason_Fuzzy(t *testing.T) {
	cases := []struct {
		in   string
		want mauvelian.Season
	}{
		{"Colosus", mauvelian.Colossus},
		{"Scoin", mauvelian.Scion},
		{"Zephir", mauvelian.Zephyr},
		{"Pheonix", mauvelian.Phoenix},
	}
	for _, c := range cases {
		got, err := Season(c.in)
		if err != nil {
			t.Fatalf("Season(%q): %v", c.in, err)
		}
		if got != c.want {
			t.Errorf("Season(%q) = %v, want %v", c.in, got, c.want)
		}
	}
}

func TestSeason_Unknown(t *testing.T) {
	for _, s := range []string{"", "winter", "xylophone", "season"} {
		if _, err := Season(s); !errors.Is(err, apperr.ErrInvalidArgument) {
			t.Errorf("Season(%q) err = %v, want ErrInvalidArgument", s, err)
		}
	}
}
