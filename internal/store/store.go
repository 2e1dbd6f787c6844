// Package store keeps an append-only history of scheduler runs and account
// passes. The workflows never read it back; it exists for the history command
// and post-hoc inspection, not to resume progress across restarts.
package store

import (
	"context"
	"database/sql"
	"time"

	"github.com/google/uuid"
	_ "modernc.org/sqlite"

	"github.com/Yanu403/sunkong/internal/models"
)

type Store struct{ db *sql.DB }

func Open(path string) (*Store, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, err
	}
	return &Store{db: db}, nil
}

func (s *Store) Close() { _ = s.db.Close() }

func (s *Store) Migrate(ctx context.Context) error {
	stmt := `
CREATE TABLE IF NOT EXISTS runs (
	id TEXT PRIMARY KEY,
	cycle INTEGER NOT NULL,
	started_at DATETIME NOT NULL,
	ended_at DATETIME
);
CREATE TABLE IF NOT EXISTS account_passes (
	id INTEGER PRIMARY KEY AUTOINCREMENT,
	run_id TEXT NOT NULL,
	project TEXT NOT NULL,
	username TEXT NOT NULL,
	login_ok INTEGER NOT NULL DEFAULT 0,
	quests_total INTEGER NOT NULL DEFAULT 0,
	quests_completed INTEGER NOT NULL DEFAULT 0,
	referral_claimed INTEGER NOT NULL DEFAULT 0,
	points REAL NOT NULL DEFAULT 0,
	created_at DATETIME NOT NULL,
	FOREIGN KEY(run_id) REFERENCES runs(id)
);
`
	_, err := s.db.ExecContext(ctx, stmt)
	return err
}

// BeginRun opens a new cycle record and returns its id.
func (s *Store) BeginRun(ctx context.Context, cycle int) (string, error) {
	id := uuid.NewString()
	_, err := s.db.ExecContext(ctx, `INSERT INTO runs (id, cycle, started_at) VALUES (?, ?, ?)`,
		id, cycle, time.Now())
	if err != nil {
		return "", err
	}
	return id, nil
}

// FinishRun stamps the cycle's end time.
func (s *Store) FinishRun(ctx context.Context, id string) error {
	_, err := s.db.ExecContext(ctx, `UPDATE runs SET ended_at = ? WHERE id = ?`, time.Now(), id)
	return err
}

// RecordPass appends one account's pass outcome.
func (s *Store) RecordPass(ctx context.Context, p *models.PassResult) error {
	p.CreatedAt = time.Now()
	_, err := s.db.ExecContext(ctx, `INSERT INTO account_passes
		(run_id, project, username, login_ok, quests_total, quests_completed, referral_claimed, points, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		p.RunID, p.Project, p.Username, p.LoginOK, p.QuestsTotal, p.QuestsCompleted,
		p.ReferralClaimed, p.Points, p.CreatedAt)
	return err
}

// RecentPasses returns the newest pass records, most recent first.
func (s *Store) RecentPasses(ctx context.Context, limit int) ([]models.PassResult, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT id, run_id, project, username, login_ok,
		quests_total, quests_completed, referral_claimed, points, created_at
		FROM account_passes ORDER BY id DESC LIMIT ?`, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var out []models.PassResult
	for rows.Next() {
		var p models.PassResult
		if err := rows.Scan(&p.ID, &p.RunID, &p.Project, &p.Username, &p.LoginOK,
			&p.QuestsTotal, &p.QuestsCompleted, &p.ReferralClaimed, &p.Points, &p.CreatedAt); err != nil {
			return nil, err
		}
		out = append(out, p)
	}
	return out, rows.Err()
}

// PassCountForRun reports how many account passes a run recorded.
func (s *Store) PassCountForRun(ctx context.Context, runID string) (int, error) {
	var c int
	err := s.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM account_passes WHERE run_id = ?`, runID).Scan(&c)
	return c, err
}
