package storage

import (
	"context"
	"io"
	"log/slog"
	"testing"
	"time"
)

func TestWatch_FiresOnRewrite(t *testing.T) {
	f := tempFile(t)
	_ = f.Save(sampleData())

	changed := make(chan struct{}, 8)
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	done := make(chan error, 1)
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	go func() {
		done <- Watch(ctx, f.Path(), logger, func() {
			changed <- struct{}{}
		})
	}()

	// Give the watcher a moment to register before the write.
	time.Sleep(100 * time.Millisecond)

	if err := f.Save(sampleData()); err != nil {
		t.Fatalf("Save: %v", err)
	}

	select {
	case <-changed:
	case <-time.After(3 * time.Second):
		t.Fatal("watcher did not fire after rewrite")
	}

	cancel()
	select {
	case err := <-done:
		if err != nil {
			t.Fatalf("Watch returned error: %v", err)
		}
	case <-time.After(2 * time.Second):
		t.Fatal("watcher did not stop on cancel")
	}
}

func TestWatch_IgnoresOtherFiles(t *testing.T) {
	f := tempFile(t)
	_ = f.Save(sampleData())

	changed := make(chan struct{}, 8)
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	go func() {
		_ = Watch(ctx, f.Path(), logger, func() {
			changed <- struct{}{}
		})
	}()
	time.Sleep(100 * time.Millisecond)

	// A sibling file in the same directory must not trigger a reload.
	other, err := NewFile(f.Path() + ".other")
	if err != nil {
		t.Fatal(err)
	}
	_ = other.Save(sampleData())

	select {
	case <-changed:
		t.Fatal("watcher fired for unrelated file")
	case <-time.After(500 * time.Millisecond):
	}
}
