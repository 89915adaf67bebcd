// Package history keeps the calculations a session has run.
package history

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/Simplici0/gpcalc/internal/pricing"
)

// timeLayout sorts lexically in the same order as chronologically.
const timeLayout = "2006-01-02T15:04:05.000000000Z"

// ErrNotFound is returned when an entry does not belong to the session.
var ErrNotFound = errors.New("history: entry not found")

// Entry is one saved calculation.
type Entry struct {
	ID        string          `json:"id"`
	Family    pricing.Family  `json:"family"`
	Product   string          `json:"product"`
	Details   pricing.Details `json:"details"`
	CreatedAt time.Time       `json:"created_at"`
}

// Store persists entries in the calculations table.
type Store struct {
	db  *sql.DB
	now func() time.Time
}

// NewStore wraps an open, migrated database.
func NewStore(db *sql.DB) *Store {
	return &Store{db: db, now: time.Now}
}

// Add records res under sessionID and returns the saved entry.
func (s *Store) Add(ctx context.Context, sessionID string, res pricing.Result) (Entry, error) {
	if sessionID == "" {
		return Entry{}, errors.New("history: session id is required")
	}
	if res == nil {
		return Entry{}, errors.New("history: result is required")
	}

	entry := Entry{
		ID:        uuid.NewString(),
		Family:    res.Family(),
		Product:   res.ProductName(),
		Details:   res.Details(),
		CreatedAt: s.now().UTC(),
	}

	detailsJSON, err := json.Marshal(entry.Details)
	if err != nil {
		return Entry{}, fmt.Errorf("encode details: %w", err)
	}

	if _, err := s.db.ExecContext(ctx, `
		INSERT INTO calculations (entry_id, session_id, family, product, details_json, created_at)
		VALUES (?, ?, ?, ?, ?, ?)
	`, entry.ID, sessionID, string(entry.Family), entry.Product, string(detailsJSON), entry.CreatedAt.Format(timeLayout)); err != nil {
		return Entry{}, fmt.Errorf("insert calculation: %w", err)
	}

	return entry, nil
}

// List returns the session's entries newest first. A non-empty query keeps
// only entries whose product or family contains it.
func (s *Store) List(ctx context.Context, sessionID, query string) ([]Entry, error) {
	query = strings.TrimSpace(query)
	search := "%" + query + "%"
	rows, err := s.db.QueryContext(ctx, `
		SELECT entry_id, family, product, details_json, created_at
		FROM calculations
		WHERE session_id = ?
		  AND (? = '' OR product LIKE ? OR family LIKE ?)
		ORDER BY created_at DESC, id DESC
	`, sessionID, query, search, search)
	if err != nil {
		return nil, fmt.Errorf("query calculations: %w", err)
	}
	defer rows.Close()

	entries := make([]Entry, 0)
	for rows.Next() {
		var (
			entry       Entry
			family      string
			detailsJSON string
			createdAt   string
		)
		if err := rows.Scan(&entry.ID, &family, &entry.Product, &detailsJSON, &createdAt); err != nil {
			return nil, fmt.Errorf("scan calculation: %w", err)
		}
		entry.Family = pricing.Family(family)
		if err := json.Unmarshal([]byte(detailsJSON), &entry.Details); err != nil {
			return nil, fmt.Errorf("decode details of %s: %w", entry.ID, err)
		}
		if entry.CreatedAt, err = time.Parse(timeLayout, createdAt); err != nil {
			return nil, fmt.Errorf("parse created_at of %s: %w", entry.ID, err)
		}
		entries = append(entries, entry)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate calculations: %w", err)
	}

	return entries, nil
}

// Delete removes one entry of the session.
func (s *Store) Delete(ctx context.Context, sessionID, id string) error {
	res, err := s.db.ExecContext(ctx, `DELETE FROM calculations WHERE session_id = ? AND entry_id = ?`, sessionID, id)
	if err != nil {
		return fmt.Errorf("delete calculation: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("delete calculation: %w", err)
	}
	if affected == 0 {
		return ErrNotFound
	}
	return nil
}

// Clear removes every entry of the session and reports how many went.
func (s *Store) Clear(ctx context.Context, sessionID string) (int64, error) {
	res, err := s.db.ExecContext(ctx, `DELETE FROM calculations WHERE session_id = ?`, sessionID)
	if err != nil {
		return 0, fmt.Errorf("clear calculations: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("clear calculations: %w", err)
	}
	return affected, nil
}
