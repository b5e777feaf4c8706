package db

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/gwtool/gwt/internal/run"
)

// RunSummary is one row of the runs table plus aggregate counts.
type RunSummary struct {
	ID        int64
	Feature   string
	Env       string
	StartedAt time.Time
	Duration  time.Duration
	Passed    int
	Failed    int
	Skipped   int
}

// ResultRow is one scenario outcome from a past run.
type ResultRow struct {
	Title  string
	State  string
	Reason string
	Detail string
}

// SaveReport records a run and its per-scenario results. Returns the run ID.
func SaveReport(sqlDB *sql.DB, report *run.Report) (int64, error) {
	tx, err := sqlDB.Begin()
	if err != nil {
		return 0, fmt.Errorf("beginning save: %w", err)
	}

	res, err := tx.Exec(
		`INSERT INTO runs (feature, env, started_at, duration_ms) VALUES (?, ?, ?, ?)`,
		report.Feature, report.Env,
		report.StartedAt.UTC().Format(time.DateTime),
		report.Duration.Milliseconds(),
	)
	if err != nil {
		tx.Rollback()
		return 0, fmt.Errorf("inserting run: %w", err)
	}
	runID, err := res.LastInsertId()
	if err != nil {
		tx.Rollback()
		return 0, fmt.Errorf("reading run id: %w", err)
	}

	for i, sc := range report.Scenarios {
		_, err := tx.Exec(
			`INSERT INTO results (run_id, position, title, state, reason, detail) VALUES (?, ?, ?, ?, ?, ?)`,
			runID, i+1, sc.Title, sc.State.String(), sc.Reason, sc.Error,
		)
		if err != nil {
			tx.Rollback()
			return 0, fmt.Errorf("inserting result for %q: %w", sc.Title, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("committing save: %w", err)
	}
	return runID, nil
}

// RecentRuns returns up to limit runs, newest first.
func RecentRuns(sqlDB *sql.DB, limit int) ([]RunSummary, error) {
	rows, err := sqlDB.Query(`
		SELECT r.id, r.feature, r.env, r.started_at, r.duration_ms,
			COUNT(CASE WHEN res.state = 'passed' THEN 1 END),
			COUNT(CASE WHEN res.state = 'failed' THEN 1 END),
			COUNT(CASE WHEN res.state = 'skipped' THEN 1 END)
		FROM runs r
		LEFT JOIN results res ON res.run_id = r.id
		GROUP BY r.id
		ORDER BY r.id DESC
		LIMIT ?
	`, limit)
	if err != nil {
		return nil, fmt.Errorf("querying runs: %w", err)
	}
	defer rows.Close()

	var summaries []RunSummary
	for rows.Next() {
		var s RunSummary
		var startedAt string
		var durationMs int64
		if err := rows.Scan(&s.ID, &s.Feature, &s.Env, &startedAt, &durationMs, &s.Passed, &s.Failed, &s.Skipped); err != nil {
			return nil, fmt.Errorf("scanning run row: %w", err)
		}
		s.StartedAt, _ = time.Parse(time.DateTime, startedAt)
		s.Duration = time.Duration(durationMs) * time.Millisecond
		summaries = append(summaries, s)
	}
	return summaries, rows.Err()
}

// RunResults returns the scenario outcomes of one run in execution order.
func RunResults(sqlDB *sql.DB, runID int64) ([]ResultRow, error) {
	var exists int64
	if err := sqlDB.QueryRow(`SELECT id FROM runs WHERE id = ?`, runID).Scan(&exists); err != nil {
		return nil, fmt.Errorf("run %d not found", runID)
	}

	rows, err := sqlDB.Query(
		`SELECT title, state, reason, detail FROM results WHERE run_id = ? ORDER BY position`,
		runID,
	)
	if err != nil {
		return nil, fmt.Errorf("querying results: %w", err)
	}
	defer rows.Close()

	var results []ResultRow
	for rows.Next() {
		var r ResultRow
		if err := rows.Scan(&r.Title, &r.State, &r.Reason, &r.Detail); err != nil {
			return nil, fmt.Errorf("scanning result row: %w", err)
		}
		results = append(results, r)
	}
	return results, rows.Err()
}
