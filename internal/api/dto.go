package api

import (
	"fmt"

	"github.com/starford/mauvelian/internal/apperr"
	"github.com/starford/mauvelian/internal/dateparse"
	"github.com/starford/mauvelian/internal/dateservice"
	"github.com/starford/mauvelian/internal/mauvelian"
)

// DateRequest identifies a Mauvelian date in a request body. Year is
// required. The day is given either as day_of_year, or as the
// day_of_season/season pair; the two forms are mutually exclusive.
type DateRequest struct {
	Year        int    `json:"year" example:"1328" validate:"required"`
	DayOfYear   int    `json:"day_of_year,omitempty" example:"305"`
	DayOfSeason int    `json:"day_of_season,omitempty" example:"35"`
	Season      string `json:"season,omitempty" example:"Colossus"`
}

// date builds the domain date from a request, enforcing the
// one-form-only rule. Range checks live in the constructors.
func (r DateRequest) date() (mauvelian.Date, error) {
	hasDay := r.DayOfYear != 0
	hasSeason := r.DayOfSeason != 0 || r.Season != ""
	switch {
	case hasDay && hasSeason:
		return mauvelian.Date{}, fmt.Errorf("api: day_of_year and day_of_season/season are mutually exclusive: %w", apperr.ErrInvalidArgument)
	case hasDay:
		return mauvelian.New(r.Year, r.DayOfYear)
	case hasSeason:
		season, err := dateparse.Season(r.Season)
		if err != nil {
			return mauvelian.Date{}, err
		}
		return mauvelian.NewSeasonDate(r.Year, r.DayOfSeason, season)
	default:
		return mauvelian.Date{}, fmt.Errorf("api: date needs day_of_year or day_of_season with season: %w", apperr.ErrInvalidArgument)
	}
}

// ConvertRealRequest is the request body for real-to-Mauvelian conversion.
type ConvertRealRequest struct {
	Real string `json:"real" example:"2016-11-05" validate:"required"`
}

// BetweenRequest carries the two dates of a distance query.
type BetweenRequest struct {
	A DateRequest `json:"a" validate:"required"`
	B DateRequest `json:"b" validate:"required"`
}

// BetweenResponse is the absolute distance in days between two dates.
type BetweenResponse struct {
	Days int `json:"days" example:"4252" validate:"required"`
}

// ReferenceRequest is the request body for storing the reference pair.
type ReferenceRequest struct {
	Real      string      `json:"real" example:"2016-11-05" validate:"required"`
	Mauvelian DateRequest `json:"mauvelian" validate:"required"`
}

// CreateEventRequest is the request body for saving an almanac event.
type CreateEventRequest struct {
	Name    string      `json:"name" example:"Harvest Feast" validate:"required"`
	Date    DateRequest `json:"date" validate:"required"`
	Note    string      `json:"note,omitempty" example:"east market closes early"`
	Replace bool        `json:"replace,omitempty"`
}

// SeasonInfo describes one season of the Mauvelian year.
type SeasonInfo struct {
	Name     string `json:"name" example:"Colossus" validate:"required"`
	FirstDay int    `json:"first_day" example:"271" validate:"required"`
	LastDay  int    `json:"last_day" example:"365" validate:"required"`
	Days     int    `json:"days" example:"95" validate:"required"`
}

// DateDetail is the date representation in responses (aliased from the domain layer).
type DateDetail = dateservice.DateDetail

// ConversionDetail is the conversion response type (aliased from the domain layer).
type ConversionDetail = dateservice.ConversionDetail

// ReferenceDetail is the reference response type (aliased from the domain layer).
type ReferenceDetail = dateservice.ReferenceDetail

// EventDetail is the almanac event response type (aliased from the domain layer).
type EventDetail = dateservice.EventDetail

// EventListResponse wraps almanac event listings.
type EventListResponse struct {
	Events []EventDetail `json:"events" validate:"required"`
	Total  int           `json:"total" example:"4" validate:"required"`
}

// SeasonListResponse wraps the season table.
type SeasonListResponse struct {
	Seasons []SeasonInfo `json:"seasons" validate:"required"`
}
