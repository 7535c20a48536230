package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/aipostbot/newsdraft/pkg/domain"
)

// ErrRunNotFound is returned when a run id is unknown
var ErrRunNotFound = errors.New("run not found")

// RunRepository handles run log storage
type RunRepository struct {
	db *sqlx.DB
}

// NewRunRepository creates a new run repository
func NewRunRepository(db *sqlx.DB) *RunRepository {
	return &RunRepository{db: db}
}

// runSQL is the database row of a run
type runSQL struct {
	ID              string    `db:"id"`
	Timestamp       time.Time `db:"ts"`
	TotalFetched    int       `db:"total_fetched"`
	AfterDedup      int       `db:"after_dedup"`
	DraftsGenerated int       `db:"drafts_generated"`
}

// candidateSQL is the database row of a scored candidate
type candidateSQL struct {
	RunID    string  `db:"run_id"`
	Position int     `db:"position"`
	Title    string  `db:"title"`
	URL      string  `db:"url"`
	Source   string  `db:"source"`
	Score    float64 `db:"score"`
	Selected bool    `db:"selected"`
}

// SourceStat summarizes how often a source made it into candidates and selections
type SourceStat struct {
	Source     string  `db:"source" json:"source"`
	Candidates int     `db:"candidates" json:"candidates"`
	Selected   int     `db:"selected" json:"selected"`
	AvgScore   float64 `db:"avg_score" json:"avg_score"`
}

// SaveRunLog stores a run with its candidates in one transaction
func (r *RunRepository) SaveRunLog(ctx context.Context, runLog domain.RunLog) error {
	if runLog.ID == "" {
		return fmt.Errorf("save run log: empty id")
	}
	return withLockRetry(ctx, func() error {
		tx, err := r.db.BeginTxx(ctx, nil)
		if err != nil {
			return fmt.Errorf("begin transaction: %w", err)
		}
		defer func() { _ = tx.Rollback() }()

		run := runSQL{
			ID:              runLog.ID,
			Timestamp:       runLog.Timestamp.UTC(),
			TotalFetched:    runLog.TotalFetched,
			AfterDedup:      runLog.AfterDedup,
			DraftsGenerated: runLog.DraftsGenerated,
		}
		query := `INSERT INTO runs (id, ts, total_fetched, after_dedup, drafts_generated)
			VALUES (:id, :ts, :total_fetched, :after_dedup, :drafts_generated)`
		if _, err := tx.NamedExecContext(ctx, query, run); err != nil {
			return fmt.Errorf("insert run: %w", err)
		}

		if len(runLog.Candidates) > 0 {
			rows := make([]candidateSQL, 0, len(runLog.Candidates))
			for i, c := range runLog.Candidates {
				rows = append(rows, candidateSQL{
					RunID: runLog.ID, Position: i, Title: c.Title, URL: c.URL, Source: c.Source, Score: c.Score, Selected: c.Selected,
				})
			}
			query = `INSERT INTO candidates (run_id, position, title, url, source, score, selected)
				VALUES (:run_id, :position, :title, :url, :source, :score, :selected)`
			if _, err := tx.NamedExecContext(ctx, query, rows); err != nil {
				return fmt.Errorf("insert candidates: %w", err)
			}
		}

		if err := tx.Commit(); err != nil {
			return fmt.Errorf("commit: %w", err)
		}
		return nil
	})
}

// ListRuns returns the latest runs without candidates, newest first
func (r *RunRepository) ListRuns(ctx context.Context, limit int) ([]domain.RunLog, error) {
	var rows []runSQL
	query := `SELECT id, ts, total_fetched, after_dedup, drafts_generated FROM runs ORDER BY ts DESC LIMIT ?`
	if err := r.db.SelectContext(ctx, &rows, query, limit); err != nil {
		return nil, fmt.Errorf("list runs: %w", err)
	}
	res := make([]domain.RunLog, 0, len(rows))
	for _, row := range rows {
		res = append(res, row.toDomain())
	}
	return res, nil
}

// GetRun returns a run with its candidates
func (r *RunRepository) GetRun(ctx context.Context, id string) (domain.RunLog, error) {
	var row runSQL
	err := r.db.GetContext(ctx, &row, `SELECT id, ts, total_fetched, after_dedup, drafts_generated FROM runs WHERE id = ?`, id)
	if errors.Is(err, sql.ErrNoRows) {
		return domain.RunLog{}, ErrRunNotFound
	}
	if err != nil {
		return domain.RunLog{}, fmt.Errorf("get run: %w", err)
	}

	var cands []candidateSQL
	query := `SELECT run_id, position, title, url, source, score, selected FROM candidates WHERE run_id = ? ORDER BY position`
	if err := r.db.SelectContext(ctx, &cands, query, id); err != nil {
		return domain.RunLog{}, fmt.Errorf("get candidates: %w", err)
	}

	res := row.toDomain()
	res.Candidates = make([]domain.ScoredCandidate, 0, len(cands))
	for _, c := range cands {
		res.Candidates = append(res.Candidates, domain.ScoredCandidate{
			Title: c.Title, URL: c.URL, Source: c.Source, Score: c.Score, Selected: c.Selected,
		})
	}
	return res, nil
}

// SourceStats aggregates candidates per source over all stored runs
func (r *RunRepository) SourceStats(ctx context.Context) ([]SourceStat, error) {
	var res []SourceStat
	query := `SELECT source, COUNT(*) AS candidates, SUM(CASE WHEN selected THEN 1 ELSE 0 END) AS selected,
		AVG(score) AS avg_score FROM candidates GROUP BY source ORDER BY selected DESC, candidates DESC, source`
	if err := r.db.SelectContext(ctx, &res, query); err != nil {
		return nil, fmt.Errorf("source stats: %w", err)
	}
	return res, nil
}

// DeleteOlderThan removes runs and their candidates recorded before the cutoff
func (r *RunRepository) DeleteOlderThan(ctx context.Context, cutoff time.Time) (int64, error) {
	var deleted int64
	err := withLockRetry(ctx, func() error {
		res, err := r.db.ExecContext(ctx, `DELETE FROM runs WHERE ts < ?`, cutoff.UTC())
		if err != nil {
			return fmt.Errorf("delete runs: %w", err)
		}
		deleted, err = res.RowsAffected()
		if err != nil {
			return fmt.Errorf("rows affected: %w", err)
		}
		return nil
	})
	return deleted, err
}

func (r runSQL) toDomain() domain.RunLog {
	return domain.RunLog{
		ID:              r.ID,
		Timestamp:       r.Timestamp,
		TotalFetched:    r.TotalFetched,
		AfterDedup:      r.AfterDedup,
		DraftsGenerated: r.DraftsGenerated,
	}
}
