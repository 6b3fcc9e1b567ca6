package habitservice

import (
	"context"
	"errors"
	"path/filepath"
	"testing"
	"time"

	"github.com/starford/jera/internal/apperr"
	"github.com/starford/jera/internal/habitstore"
	"github.com/starford/jera/internal/storage"
)

// recorder captures published events for assertions.
type recorder struct {
	habitEvents []string // "kind:habitID"
	entryEvents []string // "marked|unmarked:habitID:date"
}

func (r *recorder) PublishHabitEvent(kind, habitID string) {
	r.habitEvents = append(r.habitEvents, kind+":"+habitID)
}

func (r *recorder) PublishEntryEvent(marked bool, habitID, date string) {
	kind := "unmarked"
	if marked {
		kind = "marked"
	}
	r.entryEvents = append(r.entryEvents, kind+":"+habitID+":"+date)
}

func testService(t *testing.T) (*Service, *recorder) {
	t.Helper()
	provider, err := storage.NewFile(filepath.Join(t.TempDir(), "jera.json"))
	if err != nil {
		t.Fatal(err)
	}
	store, err := habitstore.Open(provider)
	if err != nil {
		t.Fatal(err)
	}
	rec := &recorder{}
	return NewService(store, rec), rec
}

func TestCreateHabit_PublishesEvent(t *testing.T) {
	svc, rec := testService(t)
	h, err := svc.CreateHabit(context.Background(), "Read", "book", "#fff")
	if err != nil {
		t.Fatalf("CreateHabit: %v", err)
	}
	if len(rec.habitEvents) != 1 || rec.habitEvents[0] != "created:"+h.ID {
		t.Errorf("events = %v", rec.habitEvents)
	}
}

func TestCreateHabit_NoEventOnFailure(t *testing.T) {
	svc, rec := testService(t)
	if _, err := svc.CreateHabit(context.Background(), "", "book", "#fff"); err == nil {
		t.Fatal("expected validation error")
	}
	if len(rec.habitEvents) != 0 {
		t.Errorf("events = %v, want none", rec.habitEvents)
	}
}

func TestToggleEntry_PublishesMarkedState(t *testing.T) {
	svc, rec := testService(t)
	ctx := context.Background()
	h, _ := svc.CreateHabit(ctx, "Read", "book", "#fff")

	_, _ = svc.ToggleEntry(ctx, h.ID, "2024-03-05")
	_, _ = svc.ToggleEntry(ctx, h.ID, "2024-03-05")

	want := []string{
		"marked:" + h.ID + ":2024-03-05",
		"unmarked:" + h.ID + ":2024-03-05",
	}
	if len(rec.entryEvents) != 2 || rec.entryEvents[0] != want[0] || rec.entryEvents[1] != want[1] {
		t.Errorf("events = %v, want %v", rec.entryEvents, want)
	}
}

func TestDeleteHabit_PublishesEvent(t *testing.T) {
	svc, rec := testService(t)
	ctx := context.Background()
	h, _ := svc.CreateHabit(ctx, "Read", "book", "#fff")
	if err := svc.DeleteHabit(ctx, h.ID); err != nil {
		t.Fatalf("DeleteHabit: %v", err)
	}
	if last := rec.habitEvents[len(rec.habitEvents)-1]; last != "deleted:"+h.ID {
		t.Errorf("last event = %q", last)
	}
}

func TestMonth_GridAndCounts(t *testing.T) {
	svc, _ := testService(t)
	ctx := context.Background()
	read, _ := svc.CreateHabit(ctx, "Read", "book", "#fff")
	run, _ := svc.CreateHabit(ctx, "Run", "footprints", "#fff")
	_, _ = svc.ToggleEntry(ctx, read.ID, "2024-02-10")
	_, _ = svc.ToggleEntry(ctx, read.ID, "2024-02-29")
	_, _ = svc.ToggleEntry(ctx, run.ID, "2024-02-10")
	_, _ = svc.ToggleEntry(ctx, read.ID, "2024-03-01") // outside the month

	view, err := svc.Month(ctx, 2024, time.February)
	if err != nil {
		t.Fatalf("Month: %v", err)
	}
	if len(view.Cells) != 33 {
		t.Errorf("cells = %d, want 33", len(view.Cells))
	}
	if view.Year != 2024 || view.Month != 2 {
		t.Errorf("view = %d-%d", view.Year, view.Month)
	}

	// Counts follow habit display order.
	if len(view.Counts) != 2 {
		t.Fatalf("counts = %+v", view.Counts)
	}
	if view.Counts[0].Habit.ID != read.ID || view.Counts[0].Count != 2 {
		t.Errorf("read count = %+v, want 2", view.Counts[0])
	}
	if view.Counts[1].Habit.ID != run.ID || view.Counts[1].Count != 1 {
		t.Errorf("run count = %+v, want 1", view.Counts[1])
	}

	// The grid cells carry the day's entries.
	for _, c := range view.Cells {
		if c.Date == "2024-02-10" && len(c.Entries) != 2 {
			t.Errorf("entries on 2024-02-10 = %+v, want 2", c.Entries)
		}
	}
}

func TestMonth_InvalidArgs(t *testing.T) {
	svc, _ := testService(t)
	ctx := context.Background()
	if _, err := svc.Month(ctx, 2024, time.Month(13)); !errors.Is(err, apperr.ErrValidation) {
		t.Errorf("month 13 error = %v", err)
	}
	if _, err := svc.Month(ctx, -5, time.January); !errors.Is(err, apperr.ErrValidation) {
		t.Errorf("negative year error = %v", err)
	}
}

func TestMonthlyCount_UnknownHabit(t *testing.T) {
	svc, _ := testService(t)
	_, err := svc.MonthlyCount(context.Background(), "missing", 2024, time.January)
	if !errors.Is(err, apperr.ErrNotFound) {
		t.Errorf("error = %v, want ErrNotFound", err)
	}
}

func TestEntriesInRange_BadDates(t *testing.T) {
	svc, _ := testService(t)
	ctx := context.Background()
	if _, err := svc.EntriesInRange(ctx, "2024-1-01", "2024-01-31"); !errors.Is(err, apperr.ErrValidation) {
		t.Errorf("bad from error = %v", err)
	}
	if _, err := svc.EntriesInRange(ctx, "2024-01-01", "soon"); !errors.Is(err, apperr.ErrValidation) {
		t.Errorf("bad to error = %v", err)
	}
}
