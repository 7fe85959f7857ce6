package store

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"go.uber.org/zap"

	"github.com/mixmixailov/BRO247/internal/domain"
)

// FileStore persists the reminder set as a single JSON file: an array of
// {id, uid, at, msg} records. It keeps no in-memory cache; the scheduler owns
// the authoritative view and pushes full snapshots back on every mutation.
type FileStore struct {
	path string
	log  *zap.Logger
}

// NewFileStore creates a reminder store backed by the given file path.
// The parent directory is created on first save, not here.
func NewFileStore(path string, log *zap.Logger) *FileStore {
	return &FileStore{path: path, log: log}
}

// LoadAll reads the durable reminder set. A missing, empty or corrupt file
// degrades to an empty set: the condition is logged but never surfaced to the
// caller, so startup proceeds regardless.
func (s *FileStore) LoadAll() []domain.Reminder {
	raw, err := os.ReadFile(s.path)
	if err != nil {
		if !errors.Is(err, os.ErrNotExist) {
			s.log.Warn("reminders file unreadable, starting empty",
				zap.String("path", s.path), zap.Error(err))
		}
		return nil
	}
	if len(raw) == 0 {
		return nil
	}

	var reminders []domain.Reminder
	if err := json.Unmarshal(raw, &reminders); err != nil {
		s.log.Warn("reminders file corrupt, starting empty",
			zap.String("path", s.path), zap.Error(err))
		return nil
	}
	return reminders
}

// SaveAll atomically replaces the durable snapshot. The data is written to a
// temporary file in the same directory and renamed over the target, so a
// crash mid-write never leaves a partial snapshot visible to LoadAll.
func (s *FileStore) SaveAll(reminders []domain.Reminder) error {
	if reminders == nil {
		reminders = []domain.Reminder{}
	}
	data, err := json.MarshalIndent(reminders, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal reminders: %w", err)
	}

	dir := filepath.Dir(s.path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("create data dir: %w", err)
	}

	tmp, err := os.CreateTemp(dir, "reminders-*.json")
	if err != nil {
		return fmt.Errorf("create temp file: %w", err)
	}
	tmpName := tmp.Name()

	if _, err := tmp.Write(data); err != nil {
		_ = tmp.Close()
		_ = os.Remove(tmpName)
		return fmt.Errorf("write temp file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		_ = os.Remove(tmpName)
		return fmt.Errorf("close temp file: %w", err)
	}
	if err := os.Rename(tmpName, s.path); err != nil {
		_ = os.Remove(tmpName)
		return fmt.Errorf("replace reminders file: %w", err)
	}
	return nil
}

// Add appends one reminder via load-mutate-save.
func (s *FileStore) Add(r domain.Reminder) error {
	return s.SaveAll(append(s.LoadAll(), r))
}

// Remove deletes the reminder with the given id via load-mutate-save.
// Returns whether a record was removed.
func (s *FileStore) Remove(id string) (bool, error) {
	reminders := s.LoadAll()
	kept := reminders[:0]
	removed := false
	for _, r := range reminders {
		if r.ID == id {
			removed = true
			continue
		}
		kept = append(kept, r)
	}
	if !removed {
		return false, nil
	}
	return true, s.SaveAll(kept)
}
