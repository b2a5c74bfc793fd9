// Package dateparse turns the textual date forms accepted by the front
// ends into calendar values. The core packages never parse text; all
// prompt, flag, and request strings come through here.
package dateparse

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/agnivade/levenshtein"

	"github.com/starford/mauvelian/internal/apperr"
	"github.com/starford/mauvelian/internal/mauvelian"
)

const realLayout = "2006-01-02"

// Real parses a Gregorian calendar day in "YYYY-MM-DD" form, pinned to
// midnight UTC.
func Real(s string) (time.Time, error) {
	t, err := time.Parse(realLayout, strings.TrimSpace(s))
	if err != nil {
		return time.Time{}, fmt.Errorf("dateparse: %q is not a real date, want YYYY-MM-DD: %w", s, apperr.ErrInvalidArgument)
	}
	return t, nil
}

// Mauvelian parses a Mauvelian date in "YEAR DAY" day-of-year form or
// "YEAR DAY SEASON" day-of-season form, e.g. "1306 256" or
// "1306 76 Scion". Years may carry an AE or BE suffix; a bare negative
// year means BE.
func Mauvelian(s string) (mauvelian.Date, error) {
	fields := strings.Fields(s)
	if len(fields) != 2 && len(fields) != 3 {
		return mauvelian.Date{}, fmt.Errorf("dateparse: %q is not a Mauvelian date, want \"YEAR DAY\" or \"YEAR DAY SEASON\": %w", s, apperr.ErrInvalidArgument)
	}
	year, err := parseYear(fields[0])
	if err != nil {
		return mauvelian.Date{}, err
	}
	day, err := strconv.Atoi(fields[1])
	if err != nil {
		return mauvelian.Date{}, fmt.Errorf("dateparse: %q is not a day number: %w", fields[1], apperr.ErrInvalidArgument)
	}
	if len(fields) == 2 {
		return mauvelian.New(year, day)
	}
	season, err := Season(fields[2])
	if err != nil {
		return mauvelian.Date{}, err
	}
	return mauvelian.NewSeasonDate(year, day, season)
}

// Season resolves a season name, tolerating case, unambiguous prefixes,
// and small misspellings.
func Season(s string) (mauvelian.Season, error) {
	in := strings.ToLower(strings.TrimSpace(s))
	if in == "" {
		return 0, errUnknownSeason(s)
	}

	var prefixHits []mauvelian.Season
	for _, season := range mauvelian.Seasons() {
		name := strings.ToLower(season.Name())
		if in == name {
			return season, nil
		}
		if strings.HasPrefix(name, in) {
			prefixHits = append(prefixHits, season)
		}
	}
	if len(prefixHits) == 1 {
		return prefixHits[0], nil
	}
	if len(prefixHits) > 1 {
		return 0, errUnknownSeason(s)
	}

	// Fuzzy: closest name within its edit-distance limit, if unique.
	var best mauvelian.Season
	bestDist, tie := -1, false
	for _, season := range mauvelian.Seasons() {
		name := strings.ToLower(season.Name())
		dist := levenshtein.ComputeDistance(in, name)
		if dist > levenshteinLimit(len(name)) {
			continue
		}
		switch {
		case bestDist == -1 || dist < bestDist:
			best, bestDist, tie = season, dist, false
		case dist == bestDist:
			tie = true
		}
	}
	if bestDist >= 0 && !tie {
		return best, nil
	}
	return 0, errUnknownSeason(s)
}

func parseYear(tok string) (int, error) {
	sign, digits := 1, strings.ToUpper(tok)
	hasEra := false
	switch {
	case strings.HasSuffix(digits, "BE"):
		sign, hasEra = -1, true
	case strings.HasSuffix(digits, "AE"):
		hasEra = true
	}
	if hasEra {
		digits = digits[:len(digits)-2]
		if strings.HasPrefix(digits, "-") || strings.HasPrefix(digits, "+") {
			return 0, errYear(tok)
		}
	}
	n, err := strconv.Atoi(digits)
	if err != nil {
		return 0, errYear(tok)
	}
	return sign * n, nil
}

func levenshteinLimit(length int) int {
	switch {
	case length <= 4:
		return 1
	case length <= 8:
		return 2
	default:
		return 3
	}
}

func errYear(tok string) error {
	return fmt.Errorf("dateparse: %q is not a year, want an integer with optional AE/BE suffix: %w", tok, apperr.ErrInvalidArgument)
}

func errUnknownSeason(s string) error {
	names := make([]string, 0, 4)
	for _, season := range mauvelian.Seasons() {
		names = append(names, season.Name())
	}
	return fmt.Errorf("dateparse: unknown season %q, want one of %s: %w", s, strings.Join(names, ", "), apperr.ErrInvalidArgument)
}
