// Package dateservice coordinates the calendar core, the almanac store,
// and change notifications behind a single concurrency-safe service.
package dateservice

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/starford/mauvelian/internal/almanac"
	"github.com/starford/mauvelian/internal/apperr"
	"github.com/starford/mauvelian/internal/mauvelian"
)

// Change kinds passed to ChangeCallback; they double as the SSE event
// types on the wire.
const (
	ChangeReferenceUpdated = "reference.updated"
	ChangeReferenceCleared = "reference.cleared"
	ChangeEventSaved       = "event.saved"
	ChangeEventDeleted     = "event.deleted"
)

// ChangeCallback is called after a state-changing operation.
type ChangeCallback func(kind string, data map[string]string)

// DateDetail is the component representation of a Mauvelian date.
type DateDetail struct {
	Year        int    `json:"year"`
	DayOfYear   int    `json:"day_of_year"`
	Season      string `json:"season"`
	DayOfSeason int    `json:"day_of_season"`
	Display     string `json:"display"`
}

// ConversionDetail pairs a real calendar day with its Mauvelian
// equivalent. Real is empty when no reference is available to derive it.
type ConversionDetail struct {
	Real      string     `json:"real,omitempty"`
	Mauvelian DateDetail `json:"mauvelian"`
}

// ReferenceDetail is the stored reference pair in display form.
type ReferenceDetail struct {
	Real      string     `json:"real"`
	Mauvelian DateDetail `json:"mauvelian"`
}

// EventDetail is the full representation of an almanac event.
type EventDetail struct {
	Name      string     `json:"name"`
	Date      DateDetail `json:"date"`
	Note      string     `json:"note,omitempty"`
	Real      string     `json:"real,omitempty"`
	UpdatedAt time.Time  `json:"updated_at"`
}

// Service owns the shared converter and the almanac store. The
// converter itself is not safe for concurrent use; the service wraps
// every access in a read-write lock.
type Service struct {
	mu   sync.RWMutex
	conv *mauvelian.Converter

	store    almanac.Store
	now      func() time.Time
	onChange ChangeCallback
}

// NewService creates a date service over the given store. A nil now
// defaults to time.Now.
func NewService(store almanac.Store, now func() time.Time) *Service {
	if now == nil {
		now = time.Now
	}
	return &Service{
		conv:  mauvelian.NewConverter(),
		store: store,
		now:   now,
	}
}

// OnChange registers cb to run after every state-changing operation.
// It must be called during wiring, before the service is shared.
func (s *Service) OnChange(cb ChangeCallback) {
	s.onChange = cb
}

// Describe expands a date into its component representation.
func Describe(d mauvelian.Date) DateDetail {
	return DateDetail{
		Year:        d.Year(),
		DayOfYear:   d.DayOfYear(),
		Season:      d.Season().Name(),
		DayOfSeason: d.DayOfSeason(),
		Display:     d.String(),
	}
}

// SetReference stores (or, for a zero pair, clears) the reference pair
// shared by all conversions.
func (s *Service) SetReference(_ context.Context, ref mauvelian.Reference) error {
	s.mu.Lock()
	err := s.conv.SetReference(ref)
	var stored mauvelian.Reference
	var ok bool
	if err == nil {
		stored, ok = s.conv.Reference()
	}
	s.mu.Unlock()
	if err != nil {
		return err
	}
	if !ok {
		s.notify(ChangeReferenceCleared, map[string]string{})
		return nil
	}
	s.notify(ChangeReferenceUpdated, map[string]string{
		"real":      civilDay(stored.Real),
		"mauvelian": stored.Mauvelian.String(),
	})
	return nil
}

// ClearReference removes the stored reference pair.
func (s *Service) ClearReference(_ context.Context) {
	s.mu.Lock()
	s.conv.ClearReference()
	s.mu.Unlock()
	s.notify(ChangeReferenceCleared, map[string]string{})
}

// Reference returns the stored pair and whether one is set.
func (s *Service) Reference(_ context.Context) (ReferenceDetail, bool) {
	s.mu.RLock()
	ref, ok := s.conv.Reference()
	s.mu.RUnlock()
	if !ok {
		return ReferenceDetail{}, false
	}
	return ReferenceDetail{Real: civilDay(ref.Real), Mauvelian: Describe(ref.Mauvelian)}, true
}

// ToMauvelian converts a real calendar day to its Mauvelian equivalent.
func (s *Service) ToMauvelian(_ context.Context, t time.Time) (ConversionDetail, error) {
	s.mu.RLock()
	d, err := s.conv.ToMauvelian(t)
	s.mu.RUnlock()
	if err != nil {
		return ConversionDetail{}, err
	}
	return ConversionDetail{Real: civilDay(t), Mauvelian: Describe(d)}, nil
}

// ToReal converts a Mauvelian date to its real calendar equivalent.
func (s *Service) ToReal(_ context.Context, d mauvelian.Date) (ConversionDetail, error) {
	s.mu.RLock()
	t, err := s.conv.ToReal(d)
	s.mu.RUnlock()
	if err != nil {
		return ConversionDetail{}, err
	}
	return ConversionDetail{Real: civilDay(t), Mauvelian: Describe(d)}, nil
}

// Today converts the current clock reading.
func (s *Service) Today(ctx context.Context) (ConversionDetail, error) {
	return s.ToMauvelian(ctx, s.now())
}

// Between returns the day count separating two Mauvelian dates.
func (s *Service) Between(_ context.Context, a, b mauvelian.Date) int {
	return a.DaysBetween(b)
}

// DescribeDate expands a date and, when a reference is set, derives its
// real calendar equivalent.
func (s *Service) DescribeDate(_ context.Context, d mauvelian.Date) ConversionDetail {
	out := ConversionDetail{Mauvelian: Describe(d)}
	s.mu.RLock()
	if t, err := s.conv.ToReal(d); err == nil {
		out.Real = civilDay(t)
	}
	s.mu.RUnlock()
	return out
}

// SaveEvent stores a named date in the almanac. Unless replace is set,
// saving over an existing name fails with ErrAlreadyExists.
func (s *Service) SaveEvent(_ context.Context, name string, d mauvelian.Date, note string, replace bool) (EventDetail, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return EventDetail{}, fmt.Errorf("dateservice: event name is empty: %w", apperr.ErrInvalidArgument)
	}
	if d.IsZero() {
		return EventDetail{}, fmt.Errorf("dateservice: event date is not set: %w", apperr.ErrInvalidArgument)
	}
	if !replace {
		if _, err := s.store.GetEvent(name); err == nil {
			return EventDetail{}, apperr.ErrAlreadyExists
		} else if !errors.Is(err, apperr.ErrNotFound) {
			return EventDetail{}, err
		}
	}
	row := almanac.EventRow{
		Name:      name,
		Year:      d.Year(),
		DayOfYear: d.DayOfYear(),
		Note:      note,
		UpdatedAt: s.now(),
	}
	if err := s.store.UpsertEvent(row); err != nil {
		return EventDetail{}, err
	}
	s.notify(ChangeEventSaved, map[string]string{"name": name})
	return s.eventDetail(row), nil
}

// GetEvent returns the almanac event with the given name.
func (s *Service) GetEvent(_ context.Context, name string) (EventDetail, error) {
	row, err := s.store.GetEvent(name)
	if err != nil {
		return EventDetail{}, err
	}
	return s.eventDetail(row), nil
}

// EventReal resolves the real calendar day an almanac event falls on.
// It fails with apperr.ErrReferenceNotSet when no reference is stored.
func (s *Service) EventReal(ctx context.Context, name string) (ConversionDetail, error) {
	row, err := s.store.GetEvent(name)
	if err != nil {
		return ConversionDetail{}, err
	}
	d, err := mauvelian.New(row.Year, row.DayOfYear)
	if err != nil {
		return ConversionDetail{}, err
	}
	return s.ToReal(ctx, d)
}

// DeleteEvent removes the almanac event with the given name.
func (s *Service) DeleteEvent(_ context.Context, name string) error {
	if err := s.store.DeleteEvent(name); err != nil {
		return err
	}
	s.notify(ChangeEventDeleted, map[string]string{"name": name})
	return nil
}

// ListEvents returns every almanac event in chronological order.
func (s *Service) ListEvents(_ context.Context) ([]EventDetail, error) {
	rows, err := s.store.ListEvents()
	if err != nil {
		return nil, err
	}
	return s.eventDetails(rows), nil
}

// SearchEvents returns almanac events matching the query.
func (s *Service) SearchEvents(_ context.Context, query string, limit int) ([]EventDetail, error) {
	rows, err := s.store.SearchEvents(query, limit)
	if err != nil {
		return nil, err
	}
	return s.eventDetails(rows), nil
}

func (s *Service) eventDetails(rows []almanac.EventRow) []EventDetail {
	out := make([]EventDetail, len(rows))
	for i, row := range rows {
		out[i] = s.eventDetail(row)
	}
	return out
}

func (s *Service) eventDetail(row almanac.EventRow) EventDetail {
	detail := EventDetail{Name: row.Name, Note: row.Note, UpdatedAt: row.UpdatedAt}
	d, err := mauvelian.New(row.Year, row.DayOfYear)
	if err != nil {
		// A hand-edited row can hold an unconstructible date; surface
		// the raw fields rather than dropping the event.
		detail.Date = DateDetail{Year: row.Year, DayOfYear: row.DayOfYear}
		return detail
	}
	detail.Date = Describe(d)
	s.mu.RLock()
	if t, err := s.conv.ToReal(d); err == nil {
		detail.Real = civilDay(t)
	}
	s.mu.RUnlock()
	return detail
}

func (s *Service) notify(kind string, data map[string]string) {
	if s.onChange != nil {
		s.onChange(kind, data)
	}
}

// civilDay renders the calendar day of t in YYYY-MM-DD form.
func civilDay(t time.Time) string {
	return t.Format("2006-01-02")
}
