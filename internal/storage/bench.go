package storage

import (
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
)

// BenchRun is a persisted benchmark result.
type BenchRun struct {
	ID          string // UUID, assigned on save when empty
	Bodies      int
	Rounds      int
	Seed        int64
	Parallel    bool
	Sweep       time.Duration
	Brute       time.Duration
	Pairs       int
	CandidatesX int // X-axis records, summed over rounds
	CandidatesY int // Y-axis records, summed over rounds
	Mismatches  int
	Verified    bool
	StartedAt   time.Time
}

// SaveBenchRun records a benchmark run and returns its ID.
func (s *Store) SaveBenchRun(run BenchRun) (string, error) {
	if run.ID == "" {
		run.ID = uuid.NewString()
	} else if _, err := uuid.Parse(run.ID); err != nil {
		return "", fmt.Errorf("storage: invalid bench run id %q: %w", run.ID, err)
	}
	if run.StartedAt.IsZero() {
		run.StartedAt = time.Now()
	}

	_, err := s.db.Exec(
		`INSERT INTO bench_runs
		 (id, bodies, rounds, seed, parallel, sweep_ns, brute_ns, pairs, candidates_x, candidates_y, mismatches, verified, started_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		run.ID,
		run.Bodies,
		run.Rounds,
		run.Seed,
		boolInt(run.Parallel),
		run.Sweep.Nanoseconds(),
		run.Brute.Nanoseconds(),
		run.Pairs,
		run.CandidatesX,
		run.CandidatesY,
		run.Mismatches,
		boolInt(run.Verified),
		run.StartedAt.UnixNano(),
	)
	if err != nil {
		return "", fmt.Errorf("storage: cannot save bench run: %w", err)
	}
	return run.ID, nil
}

// BenchRunByID retrieves a run by its ID. Returns nil if it does not exist.
func (s *Store) BenchRunByID(id string) (*BenchRun, error) {
	row := s.db.QueryRow(
		`SELECT id, bodies, rounds, seed, parallel, sweep_ns, brute_ns, pairs, candidates_x, candidates_y, mismatches, verified, started_at
		 FROM bench_runs
		 WHERE id = ?`,
		id,
	)
	run, err := scanBenchRun(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query bench run: %w", err)
	}
	return &run, nil
}

// RecentBenchRuns retrieves the most recent runs, newest first.
func (s *Store) RecentBenchRuns(limit int) ([]BenchRun, error) {
	if limit <= 0 {
		limit = 20
	}

	rows, err := s.db.Query(
		`SELECT id, bodies, rounds, seed, parallel, sweep_ns, brute_ns, pairs, candidates_x, candidates_y, mismatches, verified, started_at
		 FROM bench_runs
		 ORDER BY started_at DESC
		 LIMIT ?`,
		limit,
	)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query bench runs: %w", err)
	}
	defer rows.Close()

	var runs []BenchRun
	for rows.Next() {
		run, err := scanBenchRun(rows)
		if err != nil {
			return nil, fmt.Errorf("storage: cannot scan row: %w", err)
		}
		runs = append(runs, run)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("storage: row iteration error: %w", err)
	}

	return runs, nil
}

// ClearBenchRuns deletes all benchmark history.
func (s *Store) ClearBenchRuns() error {
	if _, err := s.db.Exec("DELETE FROM bench_runs"); err != nil {
		return fmt.Errorf("storage: cannot clear bench runs: %w", err)
	}
	return nil
}

// scanner is satisfied by *sql.Row and *sql.Rows.
type scanner interface {
	Scan(dest ...any) error
}

func scanBenchRun(sc scanner) (BenchRun, error) {
	var run BenchRun
	var parallel, verified int
	var sweepNS, bruteNS, startedNS int64
	err := sc.Scan(
		&run.ID,
		&run.Bodies,
		&run.Rounds,
		&run.Seed,
		&parallel,
		&sweepNS,
		&bruteNS,
		&run.Pairs,
		&run.CandidatesX,
		&run.CandidatesY,
		&run.Mismatches,
		&verified,
		&startedNS,
	)
	if err != nil {
		return run, err
	}
	run.Parallel = parallel != 0
	run.Verified = verified != 0
	run.Sweep = time.Duration(sweepNS)
	run.Brute = time.Duration(bruteNS)
	run.StartedAt = time.Unix(0, startedNS)
	return run, nil
}

func boolInt(b bool) int {
	if b {
		return 1
	}
	return 0
}
