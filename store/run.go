package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/katalvlaran/voxwfc/grid3"
	"github.com/katalvlaran/voxwfc/pattern"
)

// Status is the outcome of a run.
type Status string

const (
	// StatusSolved means every cell was collapsed.
	StatusSolved Status = "solved"
	// StatusFailed means the run ended in a contradiction or another error.
	StatusFailed Status = "failed"
)

// timeLayout is fixed-width so that text order matches time order.
const timeLayout = "2006-01-02T15:04:05.000000000Z07:00"

// Run is one persisted solve.
type Run struct {
	ID        string
	CreatedAt time.Time
	Name      string
	Seed      int64 // base seed passed to the solver
	Retries   int
	Policy    string
	Size      grid3.Dims
	Status    Status
	Attempt   int // winning attempt, for solved runs
	Steps     int
	Document  []byte           // exemplar document as YAML
	Result    [][][]pattern.ID // nil unless solved
	Error     string           // empty unless failed
}

// Save inserts r. An empty ID is replaced with NewID() and a zero
// CreatedAt with the current time; the stored values are written back to r.
func (s *Store) Save(ctx context.Context, r *Run) error {
	if r.ID == "" {
		r.ID = NewID()
	}
	if r.CreatedAt.IsZero() {
		r.CreatedAt = time.Now().UTC()
	}
	var result sql.NullString
	if r.Result != nil {
		data, err := json.Marshal(r.Result)
		if err != nil {
			return fmt.Errorf("failed to encode result: %w", err)
		}
		result = sql.NullString{String: string(data), Valid: true}
	}
	var errText sql.NullString
	if r.Error != "" {
		errText = sql.NullString{String: r.Error, Valid: true}
	}

	_, err := s.db.ExecContext(ctx, `
		INSERT INTO runs (id, created_at, name, seed, retries, policy,
			size_x, size_y, size_z, status, attempt, steps, document, result, error)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		r.ID, r.CreatedAt.Format(timeLayout), r.Name, r.Seed, r.Retries, r.Policy,
		r.Size.X, r.Size.Y, r.Size.Z, string(r.Status), r.Attempt, r.Steps, r.Document, result, errText,
	)
	if err != nil {
		return fmt.Errorf("failed to insert run %s: %w", r.ID, err)
	}
	return nil
}

const selectRun = `
	SELECT id, created_at, name, seed, retries, policy,
		size_x, size_y, size_z, status, attempt, steps, document, result, error
	FROM runs`

// Get returns the run with the given ID, or ErrNotFound.
func (s *Store) Get(ctx context.Context, id string) (*Run, error) {
	row := s.db.QueryRowContext(ctx, selectRun+" WHERE id = ?", id)
	r, err := scanRun(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("%w: %s", ErrNotFound, id)
	}
	if err != nil {
		return nil, err
	}
	return r, nil
}

// List returns up to limit runs, newest first. limit <= 0 means no limit.
func (s *Store) List(ctx context.Context, limit int) ([]*Run, error) {
	if limit <= 0 {
		limit = -1
	}
	rows, err := s.db.QueryContext(ctx, selectRun+" ORDER BY created_at DESC, id DESC LIMIT ?", limit)
	if err != nil {
		return nil, fmt.Errorf("failed to list runs: %w", err)
	}
	defer rows.Close()

	var runs []*Run
	for rows.Next() {
		r, err := scanRun(rows)
		if err != nil {
			return nil, err
		}
		runs = append(runs, r)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate runs: %w", err)
	}
	return runs, nil
}

type scanner interface {
	Scan(dest ...any) error
}

func scanRun(sc scanner) (*Run, error) {
	var (
		r         Run
		createdAt string
		status    string
		result    sql.NullString
		errText   sql.NullString
	)
	err := sc.Scan(&r.ID, &createdAt, &r.Name, &r.Seed, &r.Retries, &r.Policy,
		&r.Size.X, &r.Size.Y, &r.Size.Z, &status, &r.Attempt, &r.Steps, &r.Document, &result, &errText)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, err
		}
		return nil, fmt.Errorf("failed to scan run: %w", err)
	}
	r.CreatedAt, err = time.Parse(timeLayout, createdAt)
	if err != nil {
		return nil, fmt.Errorf("run %s: bad timestamp %q: %w", r.ID, createdAt, err)
	}
	r.Status = Status(status)
	if result.Valid {
		if err := json.Unmarshal([]byte(result.String), &r.Result); err != nil {
			return nil, fmt.Errorf("run %s: failed to decode result: %w", r.ID, err)
		}
	}
	r.Error = errText.String
	return &r, nil
}
