// Package habitstore implements the in-memory record store for habits
// and completion entries. All mutation funnels through the Store so the
// uniqueness and cascade invariants are enforced in one place, and
// every mutation persists the whole store before it returns.
package habitstore

import (
	"context"
	"fmt"
	"regexp"
	"strings"
	"sync"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/google/uuid"

	"github.com/starford/jera/internal/apperr"
	"github.com/starford/jera/internal/calendar"
	"github.com/starford/jera/internal/models"
	"github.com/starford/jera/internal/storage"
)

var colorPattern = regexp.MustCompile(`^#(?:[0-9a-fA-F]{3}|[0-9a-fA-F]{6})$`)

// Store owns the habit and entry collections. Insertion order is
// preserved in both and is the display order.
type Store struct {
	mu       sync.Mutex
	provider storage.Provider
	habits   []models.Habit
	entries  []models.Entry
}

// Open loads persisted data from the provider over zero-value defaults.
// A provider that has nothing saved yet yields an empty store.
func Open(provider storage.Provider) (*Store, error) {
	s := &Store{provider: provider}
	if err := s.Reload(); err != nil {
		return nil, err
	}
	return s, nil
}

// Reload replaces the in-memory collections with the persisted state.
// Called at startup and when the watcher sees an external rewrite.
func (s *Store) Reload() error {
	data, err := s.provider.Load()
	if err != nil {
		return fmt.Errorf("habitstore: load: %w", err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if data == nil {
		s.habits = nil
		s.entries = nil
		return nil
	}
	s.habits = data.Habits
	s.entries = data.Entries
	return nil
}

// persist writes the whole store through the provider. Caller holds mu.
// On failure the in-memory state has already diverged from disk; that
// stands until the next successful save.
func (s *Store) persist() error {
	data := &models.StoreData{
		Habits:  append([]models.Habit(nil), s.habits...),
		Entries: append([]models.Entry(nil), s.entries...),
	}
	if err := s.provider.Save(data); err != nil {
		return fmt.Errorf("habitstore: save: %w", err)
	}
	return nil
}

// validateHabitInput checks the user-supplied habit fields. Name and
// icon must be non-empty after trimming; color, when present, must be a
// hex RGB string.
func validateHabitInput(name, icon, color string) error {
	err := validation.Errors{
		"name":  validation.Validate(name, validation.Required),
		"icon":  validation.Validate(icon, validation.Required),
		"color": validation.Validate(color, validation.Match(colorPattern)),
	}.Filter()
	if err != nil {
		return fmt.Errorf("%w: %s", apperr.ErrValidation, err)
	}
	return nil
}

// AddHabit creates a habit with a fresh unique id and appends it to the
// end of the collection.
func (s *Store) AddHabit(_ context.Context, name, icon, color string) (*models.Habit, error) {
	name = strings.TrimSpace(name)
	icon = strings.TrimSpace(icon)
	if err := validateHabitInput(name, icon, color); err != nil {
		return nil, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	h := models.Habit{
		ID:    uuid.NewString(),
		Name:  name,
		Icon:  icon,
		Color: color,
	}
	s.habits = append(s.habits, h)
	if err := s.persist(); err != nil {
		return nil, err
	}
	return &h, nil
}

// EditHabit overwrites name, icon, and color of an existing habit in
// place. Identity and position are unchanged; entries reference by id
// and are unaffected.
func (s *Store) EditHabit(_ context.Context, id, name, icon, color string) (*models.Habit, error) {
	name = strings.TrimSpace(name)
	icon = strings.TrimSpace(icon)
	if err := validateHabitInput(name, icon, color); err != nil {
		return nil, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	i := s.indexOf(id)
	if i < 0 {
		return nil, fmt.Errorf("habitstore: habit %s: %w", id, apperr.ErrNotFound)
	}
	s.habits[i].Name = name
	s.habits[i].Icon = icon
	s.habits[i].Color = color
	if err := s.persist(); err != nil {
		return nil, err
	}
	h := s.habits[i]
	return &h, nil
}

// DeleteHabit removes a habit and cascades removal of every entry that
// references it. Both removals happen in one logical operation with a
// single save.
func (s *Store) DeleteHabit(_ context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	i := s.indexOf(id)
	if i < 0 {
		return fmt.Errorf("habitstore: habit %s: %w", id, apperr.ErrNotFound)
	}
	s.habits = append(s.habits[:i], s.habits[i+1:]...)

	kept := s.entries[:0]
	for _, e := range s.entries {
		if e.HabitID != id {
			kept = append(kept, e)
		}
	}
	s.entries = kept

	return s.persist()
}

// ToggleEntry marks the habit complete on the given day, or unmarks it
// when an entry for the exact (habitID, date) pair already exists. The
// returned bool reports whether the day is marked after the call.
func (s *Store) ToggleEntry(_ context.Context, habitID, date string) (bool, error) {
	if _, err := calendar.ParseDate(date); err != nil {
		return false, fmt.Errorf("%w: %s", apperr.ErrValidation, err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if s.indexOf(habitID) < 0 {
		return false, fmt.Errorf("habitstore: habit %s: %w", habitID, apperr.ErrNotFound)
	}

	for i, e := range s.entries {
		if e.HabitID == habitID && e.Date == date {
			s.entries = append(s.entries[:i], s.entries[i+1:]...)
			return false, s.persist()
		}
	}
	s.entries = append(s.entries, models.Entry{HabitID: habitID, Date: date})
	return true, s.persist()
}

// Habits returns the habit collection in display order.
func (s *Store) Habits() []models.Habit {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]models.Habit(nil), s.habits...)
}

// GetHabit looks up a habit by id.
func (s *Store) GetHabit(id string) (*models.Habit, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	i := s.indexOf(id)
	if i < 0 {
		return nil, fmt.Errorf("habitstore: habit %s: %w", id, apperr.ErrNotFound)
	}
	h := s.habits[i]
	return &h, nil
}

// EntriesOn returns every entry for the given date in insertion order.
func (s *Store) EntriesOn(date string) []models.Entry {
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []models.Entry
	for _, e := range s.entries {
		if e.Date == date {
			out = append(out, e)
		}
	}
	return out
}

// EntriesInRange returns every entry whose date falls within
// [start, end], both bounds inclusive. Dates are canonical YYYY-MM-DD
// strings, so lexicographic comparison is chronological.
func (s *Store) EntriesInRange(start, end string) []models.Entry {
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []models.Entry
	for _, e := range s.entries {
		if e.Date >= start && e.Date <= end {
			out = append(out, e)
		}
	}
	return out
}

// Snapshot returns a copy of the full store contents.
func (s *Store) Snapshot() models.StoreData {
	s.mu.Lock()
	defer s.mu.Unlock()
	return models.StoreData{
		Habits:  append([]models.Habit(nil), s.habits...),
		Entries: append([]models.Entry(nil), s.entries...),
	}
}

// indexOf returns the position of the habit with the given id, or -1.
// Caller holds mu.
func (s *Store) indexOf(id string) int {
	for i, h := range s.habits {
		if h.ID == id {
			return i
		}
	}
	return -1
}
