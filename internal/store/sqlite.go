package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	// Registers the "sqlite" driver (pure Go).
	_ "modernc.org/sqlite"

	"github.com/mixmixailov/BRO247/internal/domain"
)

// ErrProfileNotFound is returned by Get when no row exists for the chat.
var ErrProfileNotFound = errors.New("profile not found")

// SQLiteProfiles implements Profiles using an embedded SQLite database.
type SQLiteProfiles struct{ db *sql.DB }

// OpenSQLite opens (or creates) the SQLite database at the given path,
// applies recommended PRAGMAs, runs SQL migrations, and returns the
// profile repository.
func OpenSQLite(ctx context.Context, path string) (*SQLiteProfiles, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, err
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, err
	}

	// Reasonable pooling for SQLite; it's a single-writer engine.
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)
	db.SetConnMaxLifetime(0)

	if err := applyPragmas(ctx, db); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("apply pragmas: %w", err)
	}
	if err := RunMigrations(ctx, db); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("migrations: %w", err)
	}

	return &SQLiteProfiles{db: db}, nil
}

// applyPragmas configures the SQLite connection for durability and concurrency.
func applyPragmas(ctx context.Context, db *sql.DB) error {
	pragmas := []string{
		"PRAGMA journal_mode=WAL;",
		"PRAGMA synchronous=NORMAL;",
		"PRAGMA busy_timeout=5000;",
		"PRAGMA foreign_keys=ON;",
	}
	for _, p := range pragmas {
		if _, err := db.ExecContext(ctx, p); err != nil {
			return err
		}
	}
	return nil
}

// Close releases the underlying database resources.
func (r *SQLiteProfiles) Close() error {
	return r.db.Close()
}

// Get returns a chat's profile or ErrProfileNotFound.
func (r *SQLiteProfiles) Get(ctx context.Context, chatID int64) (*Profile, error) {
	row := r.db.QueryRowContext(ctx, `
		SELECT chat_id, language, style, gender
		FROM profiles
		WHERE chat_id = ?`,
		chatID,
	)

	var (
		chatIDOut int64
		language  string
		style     string
		gender    string
	)
	if err := row.Scan(&chatIDOut, &language, &style, &gender); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrProfileNotFound
		}
		return nil, err
	}

	return &Profile{
		ChatID:   chatIDOut,
		Language: domain.Locale(language),
		Style:    style,
		Gender:   gender,
	}, nil
}

// Upsert inserts or updates a chat's profile.
func (r *SQLiteProfiles) Upsert(ctx context.Context, p *Profile) error {
	if p == nil {
		return errors.New("nil profile")
	}

	_, err := r.db.ExecContext(ctx, `
		INSERT INTO profiles (chat_id, created_at, language, style, gender)
		VALUES (?, ?, ?, ?, ?)
		ON CONFLICT(chat_id) DO UPDATE SET
			language = excluded.language,
			style    = excluded.style,
			gender   = excluded.gender`,
		p.ChatID, time.Now().UTC().Unix(), string(p.Language), p.Style, p.Gender,
	)
	return err
}

// Clear removes a chat's profile row entirely.
func (r *SQLiteProfiles) Clear(ctx context.Context, chatID int64) error {
	_, err := r.db.ExecContext(ctx, `DELETE FROM profiles WHERE chat_id = ?`, chatID)
	return err
}
