// Package models defines the domain types for Jera.
package models

// Habit is a user-defined trackable activity.
type Habit struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Icon  string `json:"icon"`
	Color string `json:"color"`
}

// Entry records that a habit was completed on a calendar day.
// Date is always "YYYY-MM-DD" with zero-padded month and day, so
// lexicographic comparison on Date is chronological comparison.
type Entry struct {
	HabitID string `json:"habitId"`
	Date    string `json:"date"`
}

// StoreData is the whole-store blob persisted by the host storage layer.
type StoreData struct {
	Habits  []Habit `json:"habits"`
	Entries []Entry `json:"entries"`
}
