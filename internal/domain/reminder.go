package domain

import "time"

// Locale selects the language for parsing and user-facing texts.
type Locale string

const (
	LocaleRU Locale = "RU"
	LocaleEN Locale = "EN"
)

// Reminder is a scheduled one-time message.
type Reminder struct {
	ID    string    `json:"id"`
	Owner int64     `json:"uid"`
	DueAt time.Time `json:"at"` // always UTC
	Body  string    `json:"msg"`
}

// RequestKind distinguishes how the user expressed the reminder time.
type RequestKind int

const (
	// RelativeMinutes means "fire N minutes from now".
	RelativeMinutes RequestKind = iota
	// AbsoluteInstant means "fire at this exact instant".
	AbsoluteInstant
)

// Request is a parsed reminder request, not yet resolved against the clock.
type Request struct {
	Kind    RequestKind
	Minutes int       // valid when Kind == RelativeMinutes
	At      time.Time // valid when Kind == AbsoluteInstant, UTC
	Body    string
}

// DueAt resolves the request to an absolute UTC due time.
func (q Request) DueAt(now time.Time) time.Time {
	if q.Kind == AbsoluteInstant {
		return q.At.UTC()
	}
	return now.UTC().Add(time.Duration(q.Minutes) * time.Minute)
}
