package store

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"go.uber.org/zap"

	"github.com/mixmixailov/BRO247/internal/domain"
)

func newTestStore(t *testing.T) *FileStore {
	t.Helper()
	return NewFileStore(filepath.Join(t.TempDir(), "reminders.json"), zap.NewNop())
}

func sampleReminders() []domain.Reminder {
	at := time.Date(2025, time.July, 21, 18, 0, 0, 0, time.UTC)
	return []domain.Reminder{
		{ID: "a1", Owner: 42, DueAt: at, Body: "call mom"},
		{ID: "b2", Owner: 7, DueAt: at.Add(time.Hour), Body: "выпить воды ☕"},
	}
}

func TestFileStore_RoundTrip(t *testing.T) {
	s := newTestStore(t)
	want := sampleReminders()

	if err := s.SaveAll(want); err != nil {
		t.Fatalf("SaveAll: %v", err)
	}
	got := s.LoadAll()
	if len(got) != len(want) {
		t.Fatalf("want %d reminders, got %d", len(want), len(got))
	}
	for i := range want {
		if got[i].ID != want[i].ID || got[i].Owner != want[i].Owner ||
			!got[i].DueAt.Equal(want[i].DueAt) || got[i].Body != want[i].Body {
			t.Fatalf("reminder %d mismatch: want %+v, got %+v", i, want[i], got[i])
		}
	}
}

func TestFileStore_RoundTripEmpty(t *testing.T) {
	s := newTestStore(t)
	if err := s.SaveAll(nil); err != nil {
		t.Fatalf("SaveAll(nil): %v", err)
	}
	if got := s.LoadAll(); len(got) != 0 {
		t.Fatalf("want empty set, got %d", len(got))
	}
}

func TestFileStore_MissingFile(t *testing.T) {
	s := newTestStore(t)
	if got := s.LoadAll(); got != nil {
		t.Fatalf("missing file: want nil, got %v", got)
	}
}

func TestFileStore_CorruptFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "reminders.json")
	if err := os.WriteFile(path, []byte(`[{"id": "a1", "uid": 42, "at`), 0o644); err != nil {
		t.Fatal(err)
	}
	s := NewFileStore(path, zap.NewNop())
	if got := s.LoadAll(); len(got) != 0 {
		t.Fatalf("corrupt file: want empty set, got %v", got)
	}
}

func TestFileStore_NoTempLeftovers(t *testing.T) {
	dir := t.TempDir()
	s := NewFileStore(filepath.Join(dir, "reminders.json"), zap.NewNop())
	if err := s.SaveAll(sampleReminders()); err != nil {
		t.Fatalf("SaveAll: %v", err)
	}

	entries, err := os.ReadDir(dir)
	if err != nil {
		t.Fatal(err)
	}
	for _, e := range entries {
		if strings.HasPrefix(e.Name(), "reminders-") {
			t.Fatalf("temp file left behind: %s", e.Name())
		}
	}
}

func TestFileStore_AddRemove(t *testing.T) {
	s := newTestStore(t)
	for _, r := range sampleReminders() {
		if err := s.Add(r); err != nil {
			t.Fatalf("Add: %v", err)
		}
	}

	removed, err := s.Remove("a1")
	if err != nil {
		t.Fatalf("Remove: %v", err)
	}
	if !removed {
		t.Fatal("Remove(a1): want true")
	}

	removed, err = s.Remove("nope")
	if err != nil {
		t.Fatalf("Remove(nope): %v", err)
	}
	if removed {
		t.Fatal("Remove(nope): want false")
	}

	got := s.LoadAll()
	if len(got) != 1 || got[0].ID != "b2" {
		t.Fatalf("want only b2 left, got %+v", got)
	}
}
