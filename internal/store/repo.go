package store

import (
	"context"

	"github.com/mixmixailov/BRO247/internal/domain"
)

// Profile holds per-chat personalization used by the AI collaborator and the
// localized UI. Gender is empty when the user skipped the question.
type Profile struct {
	ChatID   int64
	Language domain.Locale
	Style    string // street|psych|coach
	Gender   string // male|female|""
}

// Profiles defines storage operations for per-chat profiles.
type Profiles interface {
	Get(ctx context.Context, chatID int64) (*Profile, error)
	Upsert(ctx context.Context, p *Profile) error
	Clear(ctx context.Context, chatID int64) error
	Close() error
}

// Reminders defines the durable reminder collection the scheduler works
// against. The implementation must degrade read failures to an empty set and
// replace snapshots atomically.
type Reminders interface {
	LoadAll() []domain.Reminder
	SaveAll([]domain.Reminder) error
}
