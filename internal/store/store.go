// Package store handles SQLite persistence.
package store

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/verte-zerg/keylab/internal/model"

	_ "modernc.org/sqlite" // SQLite driver.
)

// Store wraps SQLite access for run history.
type Store struct {
	db *sql.DB
}

// Open opens or creates the SQLite database and applies migrations.
func Open(path string) (*Store, error) {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, err
	}
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, err
	}
	store := &Store{db: db}
	if err := store.migrate(); err != nil {
		if cerr := db.Close(); cerr != nil {
			// Best-effort close on migration failure.
			_ = cerr
		}
		return nil, err
	}
	return store, nil
}

// Close closes the underlying database.
func (s *Store) Close() error {
	return s.db.Close()
}

func (s *Store) migrate() error {
	stmts := []string{
		`CREATE TABLE IF NOT EXISTS runs (
			id INTEGER PRIMARY KEY,
			started_at TEXT NOT NULL,
			ended_at TEXT NOT NULL,
			corpus_path TEXT NOT NULL,
			base_layout TEXT NOT NULL,
			workers INTEGER NOT NULL,
			swaps INTEGER NOT NULL,
			rounds INTEGER NOT NULL,
			temperature REAL NOT NULL,
			cooling REAL NOT NULL,
			accepted INTEGER NOT NULL,
			best_name TEXT NOT NULL,
			best_score REAL NOT NULL
		);`,
		`CREATE TABLE IF NOT EXISTS run_layouts (
			run_id INTEGER NOT NULL,
			rank INTEGER NOT NULL,
			name TEXT NOT NULL,
			score REAL NOT NULL,
			grid TEXT NOT NULL,
			PRIMARY KEY (run_id, rank)
		);`,
		`CREATE INDEX IF NOT EXISTS idx_runs_ended_at ON runs(ended_at);`,
		`CREATE INDEX IF NOT EXISTS idx_run_layouts_score ON run_layouts(score);`,
	}
	for _, stmt := range stmts {
		if _, err := s.db.Exec(stmt); err != nil {
			return err
		}
	}
	return nil
}

// InsertRun stores a finished run together with its ranked layouts.
func (s *Store) InsertRun(ctx context.Context, run model.Run, layouts []model.RunLayout) (int64, error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return 0, err
	}
	defer func() {
		if err != nil {
			if rerr := tx.Rollback(); rerr != nil {
				// Best-effort rollback.
				_ = rerr
			}
		}
	}()

	res, err := tx.ExecContext(ctx,
		`INSERT INTO runs (started_at, ended_at, corpus_path, base_layout, workers, swaps, rounds, temperature, cooling, accepted, best_name, best_score)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		run.StartedAt.Format(time.RFC3339Nano),
		run.EndedAt.Format(time.RFC3339Nano),
		run.CorpusPath,
		run.BaseLayout,
		run.Workers,
		run.Swaps,
		run.Rounds,
		run.Temperature,
		run.Cooling,
		run.Accepted,
		run.BestName,
		run.BestScore,
	)
	if err != nil {
		return 0, err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, err
	}

	if len(layouts) > 0 {
		stmt, err := tx.PrepareContext(ctx,
			`INSERT INTO run_layouts (run_id, rank, name, score, grid)
			 VALUES (?, ?, ?, ?, ?)`)
		if err != nil {
			return 0, err
		}
		defer func() {
			if cerr := stmt.Close(); cerr != nil {
				// Best-effort statement close.
				_ = cerr
			}
		}()
		for _, rl := range layouts {
			if _, err := stmt.ExecContext(ctx, id, rl.Rank, rl.Name, rl.Score, rl.Grid); err != nil {
				return 0, err
			}
		}
	}

	if err := tx.Commit(); err != nil {
		return 0, err
	}
	return id, nil
}

// ListRuns returns runs matching the filter, oldest first.
func (s *Store) ListRuns(ctx context.Context, filter model.HistoryFilter) ([]model.Run, error) {
	clauses := []string{"1=1"}
	args := []any{}
	if filter.Corpus != "" {
		clauses = append(clauses, "corpus_path = ?")
		args = append(args, filter.Corpus)
	}
	if filter.Since != nil {
		clauses = append(clauses, "ended_at >= ?")
		args = append(args, filter.Since.Format(time.RFC3339Nano))
	}
	query := fmt.Sprintf(`SELECT id, started_at, ended_at, corpus_path, base_layout, workers, swaps, rounds, temperature, cooling, accepted, best_name, best_score
		FROM runs
		WHERE %s
		ORDER BY ended_at ASC`, strings.Join(clauses, " AND "))
	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer func() {
		if cerr := rows.Close(); cerr != nil {
			// Best-effort rows close.
			_ = cerr
		}
	}()

	var runs []model.Run
	for rows.Next() {
		var run model.Run
		var startedAt, endedAt string
		if err := rows.Scan(&run.ID, &startedAt, &endedAt, &run.CorpusPath, &run.BaseLayout,
			&run.Workers, &run.Swaps, &run.Rounds, &run.Temperature, &run.Cooling,
			&run.Accepted, &run.BestName, &run.BestScore); err != nil {
			return nil, err
		}
		if run.StartedAt, err = time.Parse(time.RFC3339Nano, startedAt); err != nil {
			return nil, err
		}
		if run.EndedAt, err = time.Parse(time.RFC3339Nano, endedAt); err != nil {
			return nil, err
		}
		runs = append(runs, run)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	if filter.Last > 0 && len(runs) > filter.Last {
		runs = runs[len(runs)-filter.Last:]
	}
	return runs, nil
}

// GetRun returns one run by id.
func (s *Store) GetRun(ctx context.Context, id int64) (model.Run, error) {
	runs, err := s.ListRuns(ctx, model.HistoryFilter{})
	if err != nil {
		return model.Run{}, err
	}
	for _, run := range runs {
		if run.ID == id {
			return run, nil
		}
	}
	return model.Run{}, fmt.Errorf("run %d not found", id)
}

// ListRunLayouts returns a run's ranked layouts, best first.
func (s *Store) ListRunLayouts(ctx context.Context, runID int64) ([]model.RunLayout, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT run_id, rank, name, score, grid
		 FROM run_layouts
		 WHERE run_id = ?
		 ORDER BY rank ASC`, runID)
	if err != nil {
		return nil, err
	}
	defer func() {
		if cerr := rows.Close(); cerr != nil {
			// Best-effort rows close.
			_ = cerr
		}
	}()

	var layouts []model.RunLayout
	for rows.Next() {
		var rl model.RunLayout
		if err := rows.Scan(&rl.RunID, &rl.Rank, &rl.Name, &rl.Score, &rl.Grid); err != nil {
			return nil, err
		}
		layouts = append(layouts, rl)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return layouts, nil
}

// BestLayout returns the highest-scoring stored layout across all runs
// for a corpus. An empty corpus matches every run.
func (s *Store) BestLayout(ctx context.Context, corpus string) (model.RunLayout, error) {
	query := `SELECT rl.run_id, rl.rank, rl.name, rl.score, rl.grid
		FROM run_layouts rl
		JOIN runs r ON r.id = rl.run_id
		WHERE (? = '' OR r.corpus_path = ?)
		ORDER BY rl.score DESC
		LIMIT 1`
	row := s.db.QueryRowContext(ctx, query, corpus, corpus)
	var rl model.RunLayout
	if err := row.Scan(&rl.RunID, &rl.Rank, &rl.Name, &rl.Score, &rl.Grid); err != nil {
		if err == sql.ErrNoRows {
			return model.RunLayout{}, fmt.Errorf("no stored layouts")
		}
		return model.RunLayout{}, err
	}
	return rl, nil
}
