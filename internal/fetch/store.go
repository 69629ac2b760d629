// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package fetch retrieves author profiles from the OpenReview service
// with a durable, resumable checkpoint.
package fetch

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "github.com/mattn/go-sqlite3"

	"github.com/pdiddy/authorlang/pkg/types"
)

// Fetch outcome per author. A record reaches the store only when its
// transaction commits, so every stored row is checkpointed.
const (
	StatusResolved = "resolved"
	StatusEmpty    = "empty"
	StatusFailed   = "failed"
)

// StoredProfile is a checkpointed profile with its fetch outcome.
type StoredProfile struct {
	types.Profile
	Status    string
	FetchedAt time.Time
}

// Store is the SQLite checkpoint keyed by author name. There is exactly
// one writer per run; WAL journaling keeps committed records intact
// through a crash mid-write.
type Store struct {
	db *sql.DB
}

// OpenStore opens or creates the checkpoint database at path.
func OpenStore(path string) (*Store, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("creating checkpoint directory: %w", err)
	}

	db, err := sql.Open("sqlite3", path+"?_journal_mode=WAL")
	if err != nil {
		return nil, fmt.Errorf("opening checkpoint database: %w", err)
	}

	s := &Store{db: db}
	if err := s.createSchema(); err != nil {
		db.Close()
		return nil, fmt.Errorf("creating checkpoint schema: %w", err)
	}
	return s, nil
}

// Close releases the database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

func (s *Store) createSchema() error {
	_, err := s.db.Exec(`CREATE TABLE IF NOT EXISTS profiles (
		author_name TEXT PRIMARY KEY,
		profile_id TEXT,
		profile_name TEXT,
		email_primary TEXT,
		all_emails TEXT,
		current_position TEXT,
		current_institution TEXT,
		current_country TEXT,
		education_background TEXT,
		total_positions INTEGER NOT NULL DEFAULT 0,
		status TEXT NOT NULL,
		fetched_at TEXT NOT NULL
	)`)
	return err
}

// FetchedNames returns the set of authors already checkpointed. A
// restarted run consults this before any network work.
func (s *Store) FetchedNames(ctx context.Context) (map[string]bool, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT author_name FROM profiles`)
	if err != nil {
		return nil, fmt.Errorf("reading checkpointed names: %w", err)
	}
	defer rows.Close()

	names := make(map[string]bool)
	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			return nil, fmt.Errorf("scanning checkpointed name: %w", err)
		}
		names[name] = true
	}
	return names, rows.Err()
}

// PutBatch commits a batch of records in one transaction. Either the
// whole batch checkpoints or none of it does.
func (s *Store) PutBatch(ctx context.Context, batch []StoredProfile) error {
	if len(batch) == 0 {
		return nil
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("beginning checkpoint transaction: %w", err)
	}
	defer tx.Rollback()

	stmt, err := tx.PrepareContext(ctx,
		`INSERT OR REPLACE INTO profiles
		 (author_name, profile_id, profile_name, email_primary, all_emails,
		  current_position, current_institution, current_country,
		  education_background, total_positions, status, fetched_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`)
	if err != nil {
		return fmt.Errorf("preparing checkpoint insert: %w", err)
	}
	defer stmt.Close()

	for _, rec := range batch {
		emailsJSON, _ := json.Marshal(rec.AllEmails)
		educationJSON, _ := json.Marshal(rec.Education)
		_, err := stmt.ExecContext(ctx,
			rec.AuthorName, rec.ProfileID, rec.ProfileName, rec.PrimaryEmail,
			string(emailsJSON), rec.CurrentPosition, rec.CurrentInstitution,
			rec.CurrentCountry, string(educationJSON), rec.TotalPositions,
			rec.Status, rec.FetchedAt.UTC().Format(time.RFC3339),
		)
		if err != nil {
			return fmt.Errorf("checkpointing %s: %w", rec.AuthorName, err)
		}
	}
	return tx.Commit()
}

// All returns every checkpointed record in insertion order.
func (s *Store) All(ctx context.Context) ([]StoredProfile, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT author_name, profile_id, profile_name, email_primary, all_emails,
			current_position, current_institution, current_country,
			education_background, total_positions, status, fetched_at
		 FROM profiles ORDER BY rowid`)
	if err != nil {
		return nil, fmt.Errorf("reading checkpointed profiles: %w", err)
	}
	defer rows.Close()

	var out []StoredProfile
	for rows.Next() {
		var (
			rec           StoredProfile
			emailsJSON    string
			educationJSON string
			fetchedAt     string
		)
		err := rows.Scan(&rec.AuthorName, &rec.ProfileID, &rec.ProfileName,
			&rec.PrimaryEmail, &emailsJSON, &rec.CurrentPosition,
			&rec.CurrentInstitution, &rec.CurrentCountry, &educationJSON,
			&rec.TotalPositions, &rec.Status, &fetchedAt)
		if err != nil {
			return nil, fmt.Errorf("scanning checkpointed profile: %w", err)
		}
		if emailsJSON != "" {
			json.Unmarshal([]byte(emailsJSON), &rec.AllEmails)
		}
		if educationJSON != "" {
			json.Unmarshal([]byte(educationJSON), &rec.Education)
		}
		if t, parseErr := time.Parse(time.RFC3339, fetchedAt); parseErr == nil {
			rec.FetchedAt = t
		}
		out = append(out, rec)
	}
	return out, rows.Err()
}
