// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package workstore retains every fetched work list in a SQLite database so
// the raw evidence behind each metrics row can be re-examined or exported
// without refetching.
package workstore

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	_ "github.com/mattn/go-sqlite3"

	"github.com/pdiddy/coverage-audit/pkg/types"
)

// Store manages the works SQLite database.
type Store struct {
	db *sql.DB
}

// Open opens or creates the database at path and bootstraps the schema.
func Open(path string) (*Store, error) {
	db, err := sql.Open("sqlite3", path+"?_journal_mode=WAL&_foreign_keys=on")
	if err != nil {
		return nil, fmt.Errorf("opening works database: %w", err)
	}

	s := &Store{db: db}
	if err := s.createSchema(); err != nil {
		db.Close()
		return nil, fmt.Errorf("creating schema: %w", err)
	}
	return s, nil
}

// Close releases the database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

func (s *Store) createSchema() error {
	statements := []string{
		`CREATE TABLE IF NOT EXISTS authors (
			sample_id INTEGER PRIMARY KEY,
			authfull TEXT NOT NULL,
			openalex_id TEXT NOT NULL,
			openalex_name TEXT,
			fetched_at TEXT NOT NULL
		)`,
		`CREATE TABLE IF NOT EXISTS works (
			sample_id INTEGER NOT NULL REFERENCES authors(sample_id),
			work_id TEXT NOT NULL,
			title TEXT,
			year INTEGER,
			type TEXT,
			cited_by_count INTEGER,
			is_oa INTEGER,
			venue TEXT,
			publisher_raw TEXT,
			publisher_group TEXT,
			doi TEXT,
			PRIMARY KEY (sample_id, work_id)
		)`,
		`CREATE INDEX IF NOT EXISTS idx_works_publisher_group ON works(publisher_group)`,
	}
	for _, stmt := range statements {
		if _, err := s.db.Exec(stmt); err != nil {
			return fmt.Errorf("executing schema statement: %w", err)
		}
	}
	return nil
}

// ReplaceAuthorWorks stores an author's full work list, replacing any rows
// from an earlier run of the same roster row. Delete-then-insert in one
// transaction keeps reprocessing after a resume from duplicating works.
func (s *Store) ReplaceAuthorWorks(ctx context.Context, r types.Researcher, author types.ResolvedAuthor, works []types.Work) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("beginning transaction: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, `DELETE FROM works WHERE sample_id = ?`, r.SampleID); err != nil {
		return fmt.Errorf("deleting old works: %w", err)
	}

	_, err = tx.ExecContext(ctx,
		`INSERT INTO authors (sample_id, authfull, openalex_id, openalex_name, fetched_at)
		 VALUES (?, ?, ?, ?, ?)
		 ON CONFLICT(sample_id) DO UPDATE SET
			authfull=excluded.authfull, openalex_id=excluded.openalex_id,
			openalex_name=excluded.openalex_name, fetched_at=excluded.fetched_at`,
		r.SampleID, r.Name, author.ID, author.DisplayName,
		time.Now().UTC().Format(time.RFC3339),
	)
	if err != nil {
		return fmt.Errorf("upserting author: %w", err)
	}

	stmt, err := tx.PrepareContext(ctx,
		`INSERT OR REPLACE INTO works
			(sample_id, work_id, title, year, type, cited_by_count, is_oa, venue, publisher_raw, publisher_group, doi)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`)
	if err != nil {
		return fmt.Errorf("preparing insert: %w", err)
	}
	defer stmt.Close()

	for _, w := range works {
		_, err := stmt.ExecContext(ctx,
			r.SampleID, w.ID, w.Title, w.Year, w.Type, w.CitedByCount,
			w.IsOA, w.Venue, w.PublisherRaw, w.PublisherGroup, w.DOI,
		)
		if err != nil {
			return fmt.Errorf("inserting work %s: %w", w.ID, err)
		}
	}

	return tx.Commit()
}

// AuthorWorks returns one author's stored works ordered by descending
// citation count, then work ID for a stable order.
func (s *Store) AuthorWorks(ctx context.Context, sampleID int) ([]types.Work, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT work_id, title, year, type, cited_by_count, is_oa, venue, publisher_raw, publisher_group, doi
		 FROM works WHERE sample_id = ?
		 ORDER BY cited_by_count DESC, work_id`, sampleID)
	if err != nil {
		return nil, fmt.Errorf("querying works: %w", err)
	}
	defer rows.Close()

	var works []types.Work
	for rows.Next() {
		var w types.Work
		if err := rows.Scan(&w.ID, &w.Title, &w.Year, &w.Type, &w.CitedByCount,
			&w.IsOA, &w.Venue, &w.PublisherRaw, &w.PublisherGroup, &w.DOI); err != nil {
			return nil, fmt.Errorf("scanning work: %w", err)
		}
		works = append(works, w)
	}
	return works, rows.Err()
}

// StoredAuthor identifies one author with retained works.
type StoredAuthor struct {
	SampleID     int
	Name         string
	OpenAlexID   string
	OpenAlexName string
}

// Authors lists all stored authors in roster order.
func (s *Store) Authors(ctx context.Context) ([]StoredAuthor, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT sample_id, authfull, openalex_id, openalex_name FROM authors ORDER BY sample_id`)
	if err != nil {
		return nil, fmt.Errorf("querying authors: %w", err)
	}
	defer rows.Close()

	var authors []StoredAuthor
	for rows.Next() {
		var a StoredAuthor
		if err := rows.Scan(&a.SampleID, &a.Name, &a.OpenAlexID, &a.OpenAlexName); err != nil {
			return nil, fmt.Errorf("scanning author: %w", err)
		}
		authors = append(authors, a)
	}
	return authors, rows.Err()
}
