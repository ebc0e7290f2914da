package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite"
)

// SQLiteStore implements Store on a local SQLite file so history
// survives restarts.
type SQLiteStore struct {
	db *sql.DB
}

// NewSQLite opens (or creates) the database at dbPath.
func NewSQLite(dbPath string) (*SQLiteStore, error) {
	if err := os.MkdirAll(filepath.Dir(dbPath), 0755); err != nil {
		return nil, fmt.Errorf("create database directory: %w", err)
	}

	dsn := dbPath + "?_pragma=journal_mode(WAL)&_pragma=busy_timeout(5000)"
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}
	db.SetMaxOpenConns(1)

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("ping database: %w", err)
	}

	s := &SQLiteStore{db: db}
	if err := s.initSchema(); err != nil {
		db.Close()
		return nil, fmt.Errorf("initialize schema: %w", err)
	}
	return s, nil
}

func (s *SQLiteStore) initSchema() error {
	query := `
	CREATE TABLE IF NOT EXISTS conversations (
		seq INTEGER PRIMARY KEY AUTOINCREMENT,
		id TEXT NOT NULL,
		workspace TEXT NOT NULL,
		created_at INTEGER NOT NULL,
		original TEXT NOT NULL,
		optimized TEXT NOT NULL,
		demographics_json TEXT NOT NULL,
		message_type TEXT NOT NULL
	);
	CREATE INDEX IF NOT EXISTS idx_conversations_workspace ON conversations(workspace, seq);

	CREATE TABLE IF NOT EXISTS profiles (
		workspace TEXT NOT NULL,
		name TEXT NOT NULL,
		demographics_json TEXT NOT NULL,
		cultural_notes TEXT NOT NULL,
		analysis TEXT NOT NULL,
		created_at INTEGER NOT NULL,
		PRIMARY KEY (workspace, name)
	);

	CREATE TABLE IF NOT EXISTS analyses (
		seq INTEGER PRIMARY KEY AUTOINCREMENT,
		id TEXT NOT NULL,
		workspace TEXT NOT NULL,
		created_at INTEGER NOT NULL,
		text TEXT NOT NULL,
		analysis TEXT NOT NULL,
		metrics_json TEXT NOT NULL
	);
	CREATE INDEX IF NOT EXISTS idx_analyses_workspace ON analyses(workspace, seq);
	`
	if _, err := s.db.Exec(query); err != nil {
		return fmt.Errorf("create schema: %w", err)
	}
	return nil
}

func (s *SQLiteStore) AppendConversation(ctx context.Context, workspace string, c Conversation) error {
	demo, err := json.Marshal(c.Demographics)
	if err != nil {
		return fmt.Errorf("encode demographics: %w", err)
	}
	_, err = s.db.ExecContext(ctx, `
		INSERT INTO conversations (id, workspace, created_at, original, optimized, demographics_json, message_type)
		VALUES (?, ?, ?, ?, ?, ?, ?)`,
		c.ID, workspace, c.Timestamp.UnixNano(), c.Original, c.Optimized, string(demo), c.Type)
	if err != nil {
		return fmt.Errorf("insert conversation: %w", err)
	}
	return nil
}

func (s *SQLiteStore) Conversations(ctx context.Context, workspace string) ([]Conversation, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, created_at, original, optimized, demographics_json, message_type
		FROM conversations WHERE workspace = ? ORDER BY seq`, workspace)
	if err != nil {
		return nil, fmt.Errorf("query conversations: %w", err)
	}
	defer rows.Close()

	var out []Conversation
	for rows.Next() {
		var c Conversation
		var created int64
		var demo string
		if err := rows.Scan(&c.ID, &created, &c.Original, &c.Optimized, &demo, &c.Type); err != nil {
			return nil, fmt.Errorf("scan conversation row: %w", err)
		}
		if err := json.Unmarshal([]byte(demo), &c.Demographics); err != nil {
			return nil, fmt.Errorf("decode demographics: %w", err)
		}
		c.Timestamp = time.Unix(0, created)
		out = append(out, c)
	}
	return out, rows.Err()
}

func (s *SQLiteStore) SaveProfile(ctx context.Context, workspace string, p Profile) error {
	if p.Name == "" {
		return fmt.Errorf("profile name is required")
	}
	demo, err := json.Marshal(p.Demographics)
	if err != nil {
		return fmt.Errorf("encode demographics: %w", err)
	}
	_, err = s.db.ExecContext(ctx, `
		INSERT INTO profiles (workspace, name, demographics_json, cultural_notes, analysis, created_at)
		VALUES (?, ?, ?, ?, ?, ?)
		ON CONFLICT(workspace, name) DO UPDATE SET
			demographics_json = excluded.demographics_json,
			cultural_notes = excluded.cultural_notes,
			analysis = excluded.analysis,
			created_at = excluded.created_at`,
		workspace, p.Name, string(demo), p.CulturalNotes, p.Analysis, p.Created.UnixNano())
	if err != nil {
		return fmt.Errorf("upsert profile: %w", err)
	}
	return nil
}

func (s *SQLiteStore) Profile(ctx context.Context, workspace, name string) (Profile, error) {
	row := s.db.QueryRowContext(ctx, `
		SELECT name, demographics_json, cultural_notes, analysis, created_at
		FROM profiles WHERE workspace = ? AND name = ?`, workspace, name)
	p, err := scanProfile(row)
	if errors.Is(err, sql.ErrNoRows) {
		return Profile{}, ErrProfileNotFound
	}
	return p, err
}

func (s *SQLiteStore) Profiles(ctx context.Context, workspace string) ([]Profile, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT name, demographics_json, cultural_notes, analysis, created_at
		FROM profiles WHERE workspace = ? ORDER BY name`, workspace)
	if err != nil {
		return nil, fmt.Errorf("query profiles: %w", err)
	}
	defer rows.Close()

	out := []Profile{}
	for rows.Next() {
		p, err := scanProfile(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, p)
	}
	return out, rows.Err()
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanProfile(row rowScanner) (Profile, error) {
	var p Profile
	var demo string
	var created int64
	if err := row.Scan(&p.Name, &demo, &p.CulturalNotes, &p.Analysis, &created); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return Profile{}, err
		}
		return Profile{}, fmt.Errorf("scan profile row: %w", err)
	}
	if err := json.Unmarshal([]byte(demo), &p.Demographics); err != nil {
		return Profile{}, fmt.Errorf("decode demographics: %w", err)
	}
	p.Created = time.Unix(0, created)
	return p, nil
}

func (s *SQLiteStore) AppendAnalysis(ctx context.Context, workspace string, a AnalysisRecord) error {
	metrics, err := json.Marshal(a.Metrics)
	if err != nil {
		return fmt.Errorf("encode metrics: %w", err)
	}
	_, err = s.db.ExecContext(ctx, `
		INSERT INTO analyses (id, workspace, created_at, text, analysis, metrics_json)
		VALUES (?, ?, ?, ?, ?, ?)`,
		a.ID, workspace, a.Timestamp.UnixNano(), a.Text, a.Analysis, string(metrics))
	if err != nil {
		return fmt.Errorf("insert analysis: %w", err)
	}
	return nil
}

func (s *SQLiteStore) Analyses(ctx context.Context, workspace string) ([]AnalysisRecord, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, created_at, text, analysis, metrics_json
		FROM analyses WHERE workspace = ? ORDER BY seq`, workspace)
	if err != nil {
		return nil, fmt.Errorf("query analyses: %w", err)
	}
	defer rows.Close()

	var out []AnalysisRecord
	for rows.Next() {
		var a AnalysisRecord
		var created int64
		var metrics string
		if err := rows.Scan(&a.ID, &created, &a.Text, &a.Analysis, &metrics); err != nil {
			return nil, fmt.Errorf("scan analysis row: %w", err)
		}
		if err := json.Unmarshal([]byte(metrics), &a.Metrics); err != nil {
			return nil, fmt.Errorf("decode metrics: %w", err)
		}
		a.Timestamp = time.Unix(0, created)
		out = append(out, a)
	}
	return out, rows.Err()
}

// Ping verifies database connectivity.
func (s *SQLiteStore) Ping(ctx context.Context) error {
	return s.db.PingContext(ctx)
}

// Close closes the database connection.
func (s *SQLiteStore) Close() error {
	return s.db.Close()
}
