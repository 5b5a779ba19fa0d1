package storage

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"path/filepath"
	"strings"
	"time"

	_ "modernc.org/sqlite"

	"github.com/aivta/go-adventure/internal/game"
)

// SqliteStore persists sessions and their action log in SQLite. One row per
// session holds the full state; the actions table gets one row per executed
// command and feeds the aggregate stats.
type SqliteStore struct {
	db *sql.DB
}

const sqliteSchema = `
CREATE TABLE IF NOT EXISTS game_sessions (
	session_id   TEXT PRIMARY KEY,
	game_type    TEXT NOT NULL,
	status       TEXT NOT NULL,
	created_at   INTEGER NOT NULL,
	last_command TEXT,
	state        TEXT NOT NULL,
	updated_at   INTEGER NOT NULL
);
CREATE TABLE IF NOT EXISTS game_actions (
	id         INTEGER PRIMARY KEY AUTOINCREMENT,
	session_id TEXT NOT NULL,
	action     TEXT NOT NULL,
	response   TEXT,
	location   TEXT,
	successful INTEGER NOT NULL DEFAULT 1,
	created_at INTEGER NOT NULL
);
CREATE INDEX IF NOT EXISTS idx_game_actions_session ON game_actions(session_id);
`

// OpenSqlite opens (or creates) a SQLite session store at path.
func OpenSqlite(path string) (*SqliteStore, error) {
	if strings.TrimSpace(path) == "" {
		return nil, fmt.Errorf("storage path is required")
	}

	dsn := filepath.Clean(path) + "?_journal_mode=WAL&_busy_timeout=5000&_synchronous=NORMAL"
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("open sqlite db: %w", err)
	}
	if err := db.Ping(); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("ping sqlite db: %w", err)
	}
	if _, err := db.Exec(sqliteSchema); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("create schema: %w", err)
	}

	return &SqliteStore{db: db}, nil
}

// Close closes the database handle.
func (s *SqliteStore) Close() error {
	if s == nil || s.db == nil {
		return nil
	}
	return s.db.Close()
}

func toMillis(t time.Time) int64 {
	return t.UTC().UnixMilli()
}

// SaveSession upserts the session row and appends action rows for any path
// steps written since the last save.
func (s *SqliteStore) SaveSession(ctx context.Context, sess *game.Session) error {
	state, err := json.Marshal(sess)
	if err != nil {
		return fmt.Errorf("encode session %s: %w", sess.ID, err)
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin save: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	now := toMillis(time.Now())
	_, err = tx.ExecContext(ctx,
		`INSERT INTO game_sessions (session_id, game_type, status, created_at, last_command, state, updated_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?)
		 ON CONFLICT(session_id) DO UPDATE SET
		   status = excluded.status,
		   last_command = excluded.last_command,
		   state = excluded.state,
		   updated_at = excluded.updated_at`,
		sess.ID, sess.GameType, string(sess.Status), toMillis(sess.CreatedAt),
		sess.LastCommand, string(state), now)
	if err != nil {
		return fmt.Errorf("upsert session %s: %w", sess.ID, err)
	}

	var persisted int
	err = tx.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM game_actions WHERE session_id = ?`, sess.ID).Scan(&persisted)
	if err != nil {
		return fmt.Errorf("count actions for %s: %w", sess.ID, err)
	}

	for _, step := range sess.Path[min(persisted, len(sess.Path)):] {
		_, err = tx.ExecContext(ctx,
			`INSERT INTO game_actions (session_id, action, response, location, successful, created_at)
			 VALUES (?, ?, ?, ?, ?, ?)`,
			sess.ID, step.Command, step.Narration, step.Location, step.Success, now)
		if err != nil {
			return fmt.Errorf("insert action for %s: %w", sess.ID, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit save: %w", err)
	}
	return nil
}

// LoadSessions returns every persisted session.
func (s *SqliteStore) LoadSessions(ctx context.Context) ([]*game.Session, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT state FROM game_sessions`)
	if err != nil {
		return nil, fmt.Errorf("query sessions: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var sessions []*game.Session
	for rows.Next() {
		var state string
		if err := rows.Scan(&state); err != nil {
			return nil, fmt.Errorf("scan session: %w", err)
		}
		var sess game.Session
		if err := json.Unmarshal([]byte(state), &sess); err != nil {
			return nil, fmt.Errorf("decode session: %w", err)
		}
		sessions = append(sessions, &sess)
	}

	return sessions, rows.Err()
}

// DeleteSession removes the session and its action log.
func (s *SqliteStore) DeleteSession(ctx context.Context, id string) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin delete: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	if _, err := tx.ExecContext(ctx, `DELETE FROM game_actions WHERE session_id = ?`, id); err != nil {
		return fmt.Errorf("delete actions for %s: %w", id, err)
	}
	if _, err := tx.ExecContext(ctx, `DELETE FROM game_sessions WHERE session_id = ?`, id); err != nil {
		return fmt.Errorf("delete session %s: %w", id, err)
	}

	return tx.Commit()
}

// Stats computes play aggregates with SQL.
func (s *SqliteStore) Stats(ctx context.Context) (AgentStats, error) {
	var stats AgentStats

	err := s.db.QueryRowContext(ctx,
		`SELECT COUNT(*),
		        COALESCE(SUM(CASE WHEN status = 'active' THEN 1 ELSE 0 END), 0),
		        COALESCE(SUM(CASE WHEN status != 'active' THEN 1 ELSE 0 END), 0),
		        COALESCE(SUM(CASE WHEN status = 'won' THEN 1 ELSE 0 END), 0)
		 FROM game_sessions`).
		Scan(&stats.TotalSessions, &stats.ActiveSessions, &stats.CompletedGames, &stats.WonGames)
	if err != nil {
		return AgentStats{}, fmt.Errorf("session aggregates: %w", err)
	}

	err = s.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM game_actions`).Scan(&stats.TotalActions)
	if err != nil {
		return AgentStats{}, fmt.Errorf("action count: %w", err)
	}

	if stats.TotalSessions > 0 {
		stats.SuccessRate = float64(stats.WonGames) / float64(stats.TotalSessions)
		stats.AverageActionsPerGame = float64(stats.TotalActions) / float64(stats.TotalSessions)
	}

	return stats, nil
}
