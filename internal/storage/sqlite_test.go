package storage

import (
	"os"
	"testing"

	"github.com/starford/jera/internal/models"
)

func tempSQLite(t *testing.T) *SQLite {
	t.Helper()
	f, err := os.CreateTemp("", "jera-test-*.db")
	if err != nil {
		t.Fatal(err)
	}
	f.Close()
	t.Cleanup(func() { os.Remove(f.Name()) })

	s, err := OpenSQLite(f.Name())
	if err != nil {
		t.Fatalf("OpenSQLite: %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return s
}

func TestSQLite_LoadEmpty(t *testing.T) {
	s := tempSQLite(t)
	data, err := s.Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if data != nil {
		t.Errorf("empty db should load as nil, got %+v", data)
	}
}

func TestSQLite_SaveLoadRoundTrip(t *testing.T) {
	s := tempSQLite(t)
	want := sampleData()
	if err := s.Save(want); err != nil {
		t.Fatalf("Save: %v", err)
	}
	got, err := s.Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if len(got.Habits) != 2 || got.Habits[0] != want.Habits[0] {
		t.Errorf("habits = %+v", got.Habits)
	}
	if len(got.Entries) != 2 || got.Entries[1] != want.Entries[1] {
		t.Errorf("entries = %+v", got.Entries)
	}
}

func TestSQLite_SaveUpserts(t *testing.T) {
	s := tempSQLite(t)
	_ = s.Save(sampleData())

	if err := s.Save(&models.StoreData{
		Habits: []models.Habit{{ID: "h3", Name: "Sleep", Icon: "moon", Color: "#000"}},
	}); err != nil {
		t.Fatalf("Save: %v", err)
	}

	got, err := s.Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if len(got.Habits) != 1 || got.Habits[0].ID != "h3" {
		t.Errorf("habits = %+v, want single h3", got.Habits)
	}
}
