package corpus

import (
	"context"
	"database/sql"
	_ "embed"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	_ "modernc.org/sqlite"

	"gamematch/internal/signal"
)

//go:embed schema.sql
var schemaSQL string

// schemaVersion is the current schema version. Bump this when the schema
// changes; users need to re-import their corpus after a bump.
const schemaVersion = 1

// ErrSchemaMismatch indicates the database schema version doesn't match the
// expected version.
var ErrSchemaMismatch = errors.New("schema version mismatch")

// Sample is one labeled candidate-versus-reference pair.
type Sample struct {
	ID             int64
	GameName       string
	CandidateTitle string
	Reasons        []string
	// Label is 1 for a confirmed match, 0 for a confirmed mismatch.
	Label     int
	Score     int
	CreatedAt time.Time
	UpdatedAt time.Time
}

// EvaluationRun records the outcome of one threshold evaluation over the
// labeled set.
type EvaluationRun struct {
	ID          string
	CreatedAt   time.Time
	Policy      string
	Threshold   float64
	Precision   float64
	Recall      float64
	F1          float64
	SampleCount int
}

// Store manages corpus persistence backed by SQLite.
type Store struct {
	db   *sql.DB
	path string
}

// Open initializes or connects to the corpus database.
func Open(path string) (*Store, error) {
	if dir := filepath.Dir(path); dir != "" && dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("ensure corpus directory: %w", err)
		}
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open sqlite db: %w", err)
	}

	pragmas := []string{
		"PRAGMA journal_mode=WAL",
		"PRAGMA foreign_keys = ON",
		"PRAGMA busy_timeout = 5000",
	}
	for _, pragma := range pragmas {
		if _, execErr := db.Exec(pragma); execErr != nil {
			_ = db.Close()
			return nil, fmt.Errorf("apply pragma %q: %w", pragma, execErr)
		}
	}

	store := &Store{db: db, path: path}
	if err := store.initSchema(context.Background()); err != nil {
		_ = db.Close()
		return nil, err
	}
	return store, nil
}

// Close closes the underlying database connection.
func (s *Store) Close() error {
	if s == nil || s.db == nil {
		return nil
	}
	return s.db.Close()
}

// Path returns the database file location.
func (s *Store) Path() string {
	return s.path
}

func (s *Store) initSchema(ctx context.Context) error {
	var tableExists int
	err := s.db.QueryRowContext(ctx,
		"SELECT COUNT(1) FROM sqlite_master WHERE type='table' AND name='schema_version'",
	).Scan(&tableExists)
	if err != nil {
		return fmt.Errorf("check schema_version table: %w", err)
	}

	if tableExists == 0 {
		return s.createSchema(ctx)
	}

	var version int
	err = s.db.QueryRowContext(ctx, "SELECT version FROM schema_version LIMIT 1").Scan(&version)
	if err != nil {
		return fmt.Errorf("read schema version: %w", err)
	}
	if version != schemaVersion {
		return fmt.Errorf("%w: database has version %d, expected %d (delete the database and re-import)",
			ErrSchemaMismatch, version, schemaVersion)
	}
	return nil
}

func (s *Store) createSchema(ctx context.Context) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin schema tx: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	if _, err := tx.ExecContext(ctx, schemaSQL); err != nil {
		return fmt.Errorf("create schema: %w", err)
	}
	if _, err := tx.ExecContext(ctx, "INSERT INTO schema_version (version) VALUES (?)", schemaVersion); err != nil {
		return fmt.Errorf("record schema version: %w", err)
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit schema: %w", err)
	}
	return nil
}

// Upsert inserts a sample or refreshes the label, reasons, and score of an
// existing (game, title) pair.
func (s *Store) Upsert(ctx context.Context, sample Sample) (int64, error) {
	now := time.Now().UTC().Format(time.RFC3339Nano)
	res, err := s.db.ExecContext(
		ctx,
		`INSERT INTO samples (game_name, candidate_title, reasons, label, score, created_at, updated_at)
         VALUES (?, ?, ?, ?, ?, ?, ?)
         ON CONFLICT (game_name, candidate_title) DO UPDATE SET
             reasons = excluded.reasons,
             label = excluded.label,
             score = excluded.score,
             updated_at = excluded.updated_at`,
		sample.GameName,
		sample.CandidateTitle,
		signal.Join(sample.Reasons),
		sample.Label,
		sample.Score,
		now,
		now,
	)
	if err != nil {
		return 0, fmt.Errorf("upsert sample: %w", err)
	}
	return res.LastInsertId()
}

// GetByPair fetches a sample by its (game, title) key.
func (s *Store) GetByPair(ctx context.Context, gameName, candidateTitle string) (*Sample, error) {
	row := s.db.QueryRowContext(
		ctx,
		`SELECT `+sampleColumns+` FROM samples WHERE game_name = ? AND candidate_title = ?`,
		gameName,
		candidateTitle,
	)
	sample, err := scanSample(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get sample: %w", err)
	}
	return sample, nil
}

// List returns samples ordered by insertion. A non-positive limit returns
// everything.
func (s *Store) List(ctx context.Context, limit int) ([]Sample, error) {
	query := `SELECT ` + sampleColumns + ` FROM samples ORDER BY id`
	var (
		rows *sql.Rows
		err  error
	)
	if limit > 0 {
		rows, err = s.db.QueryContext(ctx, query+` LIMIT ?`, limit)
	} else {
		rows, err = s.db.QueryContext(ctx, query)
	}
	if err != nil {
		return nil, fmt.Errorf("list samples: %w", err)
	}
	defer rows.Close()

	var samples []Sample
	for rows.Next() {
		sample, err := scanSample(rows)
		if err != nil {
			return nil, err
		}
		samples = append(samples, *sample)
	}
	return samples, rows.Err()
}

// Stats returns sample counts keyed by label.
func (s *Store) Stats(ctx context.Context) (map[int]int, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT label, COUNT(1) FROM samples GROUP BY label`)
	if err != nil {
		return nil, fmt.Errorf("corpus stats: %w", err)
	}
	defer rows.Close()

	stats := make(map[int]int)
	for rows.Next() {
		var label, count int
		if err := rows.Scan(&label, &count); err != nil {
			return nil, err
		}
		stats[label] = count
	}
	return stats, rows.Err()
}

// Clear removes all samples.
func (s *Store) Clear(ctx context.Context) (int64, error) {
	res, err := s.db.ExecContext(ctx, `DELETE FROM samples`)
	if err != nil {
		return 0, fmt.Errorf("clear corpus: %w", err)
	}
	return res.RowsAffected()
}

// RecordRun persists an evaluation run. A blank ID gets a fresh UUID.
func (s *Store) RecordRun(ctx context.Context, run EvaluationRun) (EvaluationRun, error) {
	if run.ID == "" {
		run.ID = uuid.NewString()
	}
	if run.CreatedAt.IsZero() {
		run.CreatedAt = time.Now().UTC()
	}
	_, err := s.db.ExecContext(
		ctx,
		`INSERT INTO evaluation_runs (id, created_at, policy, threshold, precision, recall, f1, sample_count)
         VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		run.ID,
		run.CreatedAt.Format(time.RFC3339Nano),
		run.Policy,
		run.Threshold,
		run.Precision,
		run.Recall,
		run.F1,
		run.SampleCount,
	)
	if err != nil {
		return EvaluationRun{}, fmt.Errorf("record run: %w", err)
	}
	return run, nil
}

// ListRuns returns evaluation runs, newest first.
func (s *Store) ListRuns(ctx context.Context, limit int) ([]EvaluationRun, error) {
	query := `SELECT id, created_at, policy, threshold, precision, recall, f1, sample_count
              FROM evaluation_runs ORDER BY created_at DESC`
	var (
		rows *sql.Rows
		err  error
	)
	if limit > 0 {
		rows, err = s.db.QueryContext(ctx, query+` LIMIT ?`, limit)
	} else {
		rows, err = s.db.QueryContext(ctx, query)
	}
	if err != nil {
		return nil, fmt.Errorf("list runs: %w", err)
	}
	defer rows.Close()

	var runs []EvaluationRun
	for rows.Next() {
		var (
			run        EvaluationRun
			createdRaw string
		)
		if err := rows.Scan(&run.ID, &createdRaw, &run.Policy, &run.Threshold, &run.Precision, &run.Recall, &run.F1, &run.SampleCount); err != nil {
			return nil, err
		}
		if created, err := time.Parse(time.RFC3339Nano, createdRaw); err == nil {
			run.CreatedAt = created
		}
		runs = append(runs, run)
	}
	return runs, rows.Err()
}

const sampleColumns = "id, game_name, candidate_title, reasons, label, score, created_at, updated_at"

func scanSample(scanner interface{ Scan(dest ...any) error }) (*Sample, error) {
	var (
		id         int64
		gameName   string
		title      string
		reasonsRaw string
		label      int
		score      sql.NullInt64
		createdRaw string
		updatedRaw string
	)
	if err := scanner.Scan(&id, &gameName, &title, &reasonsRaw, &label, &score, &createdRaw, &updatedRaw); err != nil {
		return nil, err
	}

	sample := &Sample{
		ID:             id,
		GameName:       gameName,
		CandidateTitle: title,
		Reasons:        signal.Split(reasonsRaw),
		Label:          label,
	}
	if score.Valid {
		sample.Score = int(score.Int64)
	}
	if created, err := time.Parse(time.RFC3339Nano, createdRaw); err == nil {
		sample.CreatedAt = created
	}
	if updated, err := time.Parse(time.RFC3339Nano, updatedRaw); err == nil {
		sample.UpdatedAt = updated
	}
	return sample, nil
}
