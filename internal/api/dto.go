package api

import (
	"github.com/starford/jera/internal/habitservice"
	"github.com/starford/jera/internal/models"
)

// HabitRequest is the request body for creating or updating a habit.
type HabitRequest struct {
	Name  string `json:"name"`
	Icon  string `json:"icon"`
	Color string `json:"color"`
}

// ToggleRequest is the request body for toggling a completion entry.
type ToggleRequest struct {
	HabitID string `json:"habit_id"`
	Date    string `json:"date"`
}

// ToggleResponse reports the entry state after a toggle.
type ToggleResponse struct {
	HabitID string `json:"habit_id"`
	Date    string `json:"date"`
	Marked  bool   `json:"marked"`
}

// HabitListResponse wraps the habit collection.
type HabitListResponse struct {
	Habits []models.Habit `json:"habits"`
}

// EntryListResponse wraps an entry query result.
type EntryListResponse struct {
	Entries []models.Entry `json:"entries"`
}

// SummaryResponse is the monthly completion count for one habit.
type SummaryResponse struct {
	HabitID string `json:"habit_id"`
	Year    int    `json:"year"`
	Month   int    `json:"month"`
	Count   int    `json:"count"`
}

// MonthView is the calendar response type (aliased from the domain layer).
type MonthView = habitservice.MonthView
