// Package habitservice coordinates the record store, calendar logic,
// and event broadcasting for the API and MCP surfaces.
package habitservice

import (
	"context"
	"fmt"
	"time"

	"github.com/starford/jera/internal/apperr"
	"github.com/starford/jera/internal/calendar"
	"github.com/starford/jera/internal/habitstore"
	"github.com/starford/jera/internal/models"
)

// EventPublisher receives change notifications after successful
// mutations. A nil publisher disables broadcasting.
type EventPublisher interface {
	PublishHabitEvent(kind, habitID string)
	PublishEntryEvent(marked bool, habitID, date string)
}

// HabitCount pairs a habit with its completion count for a month.
type HabitCount struct {
	Habit models.Habit `json:"habit"`
	Count int          `json:"count"`
}

// MonthView is the full render model for one month: the Sunday-first
// cell grid plus per-habit monthly totals.
type MonthView struct {
	Year   int             `json:"year"`
	Month  int             `json:"month"`
	Cells  []calendar.Cell `json:"cells"`
	Counts []HabitCount    `json:"counts"`
}

// Service exposes the tracker operations.
type Service struct {
	store  *habitstore.Store
	events EventPublisher
}

// NewService creates a new habit service. events may be nil.
func NewService(store *habitstore.Store, events EventPublisher) *Service {
	return &Service{store: store, events: events}
}

// ListHabits returns all habits in display order.
func (s *Service) ListHabits(_ context.Context) []models.Habit {
	return s.store.Habits()
}

// GetHabit looks up a single habit.
func (s *Service) GetHabit(_ context.Context, id string) (*models.Habit, error) {
	return s.store.GetHabit(id)
}

// CreateHabit adds a habit and broadcasts the change.
func (s *Service) CreateHabit(ctx context.Context, name, icon, color string) (*models.Habit, error) {
	h, err := s.store.AddHabit(ctx, name, icon, color)
	if err != nil {
		return nil, err
	}
	if s.events != nil {
		s.events.PublishHabitEvent("created", h.ID)
	}
	return h, nil
}

// UpdateHabit edits a habit in place and broadcasts the change.
func (s *Service) UpdateHabit(ctx context.Context, id, name, icon, color string) (*models.Habit, error) {
	h, err := s.store.EditHabit(ctx, id, name, icon, color)
	if err != nil {
		return nil, err
	}
	if s.events != nil {
		s.events.PublishHabitEvent("updated", h.ID)
	}
	return h, nil
}

// DeleteHabit removes a habit with its entries and broadcasts the change.
func (s *Service) DeleteHabit(ctx context.Context, id string) error {
	if err := s.store.DeleteHabit(ctx, id); err != nil {
		return err
	}
	if s.events != nil {
		s.events.PublishHabitEvent("deleted", id)
	}
	return nil
}

// ToggleEntry marks or unmarks a habit on a day and broadcasts the
// resulting state.
func (s *Service) ToggleEntry(ctx context.Context, habitID, date string) (bool, error) {
	marked, err := s.store.ToggleEntry(ctx, habitID, date)
	if err != nil {
		return false, err
	}
	if s.events != nil {
		s.events.PublishEntryEvent(marked, habitID, date)
	}
	return marked, nil
}

// EntriesOn returns the entries for one day.
func (s *Service) EntriesOn(_ context.Context, date string) ([]models.Entry, error) {
	if _, err := calendar.ParseDate(date); err != nil {
		return nil, fmt.Errorf("%w: %s", apperr.ErrValidation, err)
	}
	return s.store.EntriesOn(date), nil
}

// EntriesInRange returns the entries within [from, to] inclusive.
func (s *Service) EntriesInRange(_ context.Context, from, to string) ([]models.Entry, error) {
	if _, err := calendar.ParseDate(from); err != nil {
		return nil, fmt.Errorf("%w: %s", apperr.ErrValidation, err)
	}
	if _, err := calendar.ParseDate(to); err != nil {
		return nil, fmt.Errorf("%w: %s", apperr.ErrValidation, err)
	}
	return s.store.EntriesInRange(from, to), nil
}

// Month computes the grid and per-habit totals for one month.
// Recomputed fresh on every call.
func (s *Service) Month(_ context.Context, year int, month time.Month) (*MonthView, error) {
	if err := validateYearMonth(year, month); err != nil {
		return nil, err
	}

	cells := calendar.MonthGrid(year, month, s.store.EntriesOn)

	habits := s.store.Habits()
	counts := make([]HabitCount, len(habits))
	for i, h := range habits {
		counts[i] = HabitCount{
			Habit: h,
			Count: calendar.MonthlyCount(h.ID, year, month, s.store.EntriesInRange),
		}
	}

	return &MonthView{
		Year:   year,
		Month:  int(month),
		Cells:  cells,
		Counts: counts,
	}, nil
}

// MonthlyCount returns the completion count of one habit for one month.
func (s *Service) MonthlyCount(_ context.Context, habitID string, year int, month time.Month) (int, error) {
	if err := validateYearMonth(year, month); err != nil {
		return 0, err
	}
	if _, err := s.store.GetHabit(habitID); err != nil {
		return 0, err
	}
	return calendar.MonthlyCount(habitID, year, month, s.store.EntriesInRange), nil
}

func validateYearMonth(year int, month time.Month) error {
	if year < 1 || year > 9999 {
		return fmt.Errorf("%w: year %d out of range", apperr.ErrValidation, year)
	}
	if month < time.January || month > time.December {
		return fmt.Errorf("%w: month %d out of range", apperr.ErrValidation, month)
	}
	return nil
}
