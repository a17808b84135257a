/*
Package sqlite provides a SQLite-backed implementation of contract.Store.

PURPOSE:
  Persists contracts and worker ratings for the single-node deployment.
  The postgres package implements the same interface through gorm for
  hosted environments.

KEY TABLES:
  contracts: one row per contract, terms flattened into columns
  ratings:   at most one rating per contract, replaced on re-rate

COLUMN ENCODING:
  - Enums (status, wage_type, business_size) are stored by name and parsed
    back through the domain parsers, so a legacy 'signed' row reads as
    pending.
  - Clocks are stored as "HH:MM".
  - Inclusive rates are optional and stored as a JSON object (NULL = absent).
  - Timestamps are UTC with a fixed nine-digit fraction, so text order is
    time order and sub-second precision survives a round trip. Rows
    written without a fraction still parse.

INDEXES:
  - idx_contracts_worker:   worker contract list and career (hot path)
  - idx_contracts_employer: employer contract list
  - idx_ratings_worker:     career rating lookup

CONCURRENCY:
  Uses sync.RWMutex for thread-safety. SQLite is opened in WAL mode so
  readers don't block the single writer.

USAGE:
  store, err := sqlite.New("./data/contracts.db")
  if err != nil {
      log.Fatal(err)
  }
  defer store.Close()

  svc := contract.NewService(store, contract.DefaultGracePeriodDays, log)

MIGRATION:
  Schema is auto-migrated on New().

SEE ALSO:
  - contract/store.go: Store interface
  - store/memory: in-memory implementation for tests
  - store/postgres: gorm implementation
*/
package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/goccy/go-json"
	_ "github.com/mattn/go-sqlite3"

	"github.com/warp/contract-engine/contract"
	"github.com/warp/contract-engine/wage"
)

// Store implements contract.Store using SQLite.
type Store struct {
	db *sql.DB
	mu sync.RWMutex
}

// New creates a new SQLite store with the given database path.
// Use ":memory:" for an in-memory database.
func New(dbPath string) (*Store, error) {
	db, err := sql.Open("sqlite3", dbPath+"?_foreign_keys=on&_journal_mode=WAL")
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	if dbPath == ":memory:" {
		// Each connection to :memory: is its own database.
		db.SetMaxOpenConns(1)
	}

	store := &Store{db: db}
	if err := store.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to migrate database: %w", err)
	}

	return store, nil
}

// Close closes the database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

// migrate creates the database schema.
func (s *Store) migrate() error {
	schema := `
	CREATE TABLE IF NOT EXISTS contracts (
		id TEXT PRIMARY KEY,
		employer_id TEXT NOT NULL,
		worker_id TEXT NOT NULL DEFAULT '',
		status TEXT NOT NULL DEFAULT 'draft',
		title TEXT NOT NULL DEFAULT '',
		workplace_name TEXT NOT NULL,
		workplace_address TEXT NOT NULL DEFAULT '',
		job_description TEXT NOT NULL DEFAULT '',
		start_date TEXT NOT NULL,
		end_date TEXT,
		wage_type TEXT NOT NULL,
		wage INTEGER NOT NULL,
		work_days_per_week INTEGER NOT NULL,
		start_time TEXT NOT NULL,
		end_time TEXT NOT NULL,
		break_minutes INTEGER NOT NULL DEFAULT 0,
		business_size TEXT NOT NULL,
		inclusive_rates_json TEXT,
		employer_signature TEXT,
		worker_signature TEXT,
		signed_at TEXT,
		deleted_by_employer BOOLEAN DEFAULT FALSE,
		deleted_by_worker BOOLEAN DEFAULT FALSE,
		created_at TEXT NOT NULL,
		updated_at TEXT NOT NULL
	);

	CREATE INDEX IF NOT EXISTS idx_contracts_worker
		ON contracts(worker_id, created_at DESC);
	CREATE INDEX IF NOT EXISTS idx_contracts_employer
		ON contracts(employer_id, created_at DESC);

	CREATE TABLE IF NOT EXISTS ratings (
		contract_id TEXT PRIMARY KEY REFERENCES contracts(id),
		worker_id TEXT NOT NULL,
		score INTEGER NOT NULL CHECK (score BETWEEN 1 AND 5),
		comment TEXT,
		created_at TEXT NOT NULL
	);

	CREATE INDEX IF NOT EXISTS idx_ratings_worker
		ON ratings(worker_id);
	`

	_, err := s.db.Exec(schema)
	return err
}

// =============================================================================
// CONTRACTS (contract.Store interface)
// =============================================================================

const contractColumns = `
	id, employer_id, worker_id, status, title, workplace_name, workplace_address,
	job_description, start_date, end_date, wage_type, wage, work_days_per_week,
	start_time, end_time, break_minutes, business_size, inclusive_rates_json,
	employer_signature, worker_signature, signed_at,
	deleted_by_employer, deleted_by_worker, created_at, updated_at`

// Create inserts a new contract.
func (s *Store) Create(ctx context.Context, c contract.Contract) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	args, err := contractArgs(c)
	if err != nil {
		return err
	}

	query := `INSERT INTO contracts (` + contractColumns + `)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`

	if _, err := s.db.ExecContext(ctx, query, args...); err != nil {
		if isUniqueConstraintError(err) {
			return fmt.Errorf("contract %s already exists", c.ID)
		}
		return fmt.Errorf("failed to insert contract: %w", err)
	}
	return nil
}

// Get returns a contract by ID.
func (s *Store) Get(ctx context.Context, id string) (contract.Contract, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	row := s.db.QueryRowContext(ctx,
		`SELECT `+contractColumns+` FROM contracts WHERE id = ?`, id)

	c, err := scanContract(row)
	if errors.Is(err, sql.ErrNoRows) {
		return contract.Contract{}, contract.ErrNotFound
	}
	return c, err
}

// Update replaces every column of an existing contract whose status is
// still expected.
func (s *Store) Update(ctx context.Context, c contract.Contract, expected contract.Status) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	args, err := contractArgs(c)
	if err != nil {
		return err
	}
	names := expected.StoredNames()

	query := `
		UPDATE contracts SET
			employer_id = ?, worker_id = ?, status = ?, title = ?, workplace_name = ?,
			workplace_address = ?, job_description = ?, start_date = ?, end_date = ?,
			wage_type = ?, wage = ?, work_days_per_week = ?, start_time = ?, end_time = ?,
			break_minutes = ?, business_size = ?, inclusive_rates_json = ?,
			employer_signature = ?, worker_signature = ?, signed_at = ?,
			deleted_by_employer = ?, deleted_by_worker = ?, created_at = ?, updated_at = ?
		WHERE id = ? AND status IN (` + placeholders(len(names)) + `)
	`
	// id moves from first to last position
	args = append(args[1:], c.ID)
	for _, name := range names {
		args = append(args, name)
	}

	result, err := s.db.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("failed to update contract: %w", err)
	}
	n, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return s.missOrStale(ctx, c.ID)
	}
	return nil
}

func placeholders(n int) string {
	return strings.TrimSuffix(strings.Repeat("?, ", n), ", ")
}

// missOrStale explains a conditional update that matched no row.
func (s *Store) missOrStale(ctx context.Context, id string) error {
	var exists bool
	err := s.db.QueryRowContext(ctx,
		`SELECT EXISTS(SELECT 1 FROM contracts WHERE id = ?)`, id).Scan(&exists)
	if err != nil {
		return fmt.Errorf("failed to check contract %s: %w", id, err)
	}
	if !exists {
		return contract.ErrNotFound
	}
	return contract.ErrStaleWrite
}

// ListByWorker returns the worker's visible contracts, newest first.
func (s *Store) ListByWorker(ctx context.Context, workerID string) ([]contract.Contract, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	query := `SELECT ` + contractColumns + ` FROM contracts
		WHERE worker_id = ? AND deleted_by_worker = FALSE
		ORDER BY created_at DESC`

	return s.queryContracts(ctx, query, workerID)
}

// ListByEmployer returns the employer's visible contracts, newest first.
func (s *Store) ListByEmployer(ctx context.Context, employerID string) ([]contract.Contract, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	query := `SELECT ` + contractColumns + ` FROM contracts
		WHERE employer_id = ? AND deleted_by_employer = FALSE
		ORDER BY created_at DESC`

	return s.queryContracts(ctx, query, employerID)
}

func (s *Store) queryContracts(ctx context.Context, query string, args ...any) ([]contract.Contract, error) {
	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query contracts: %w", err)
	}
	defer rows.Close()

	var contracts []contract.Contract
	for rows.Next() {
		c, err := scanContract(rows)
		if err != nil {
			return nil, err
		}
		contracts = append(contracts, c)
	}

	return contracts, rows.Err()
}

// =============================================================================
// RATINGS
// =============================================================================

// SaveRating inserts or replaces the rating for a contract.
func (s *Store) SaveRating(ctx context.Context, r contract.Rating) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	var exists int
	if err := s.db.QueryRowContext(ctx,
		"SELECT COUNT(*) FROM contracts WHERE id = ?", r.ContractID,
	).Scan(&exists); err != nil {
		return fmt.Errorf("failed to check contract: %w", err)
	}
	if exists == 0 {
		return contract.ErrNotFound
	}

	query := `
		INSERT INTO ratings (contract_id, worker_id, score, comment, created_at)
		VALUES (?, ?, ?, ?, ?)
		ON CONFLICT(contract_id) DO UPDATE SET
			worker_id = excluded.worker_id,
			score = excluded.score,
			comment = excluded.comment,
			created_at = excluded.created_at
	`

	_, err := s.db.ExecContext(ctx, query,
		r.ContractID,
		r.WorkerID,
		r.Score,
		nullString(r.Comment),
		formatTime(r.CreatedAt),
	)
	if err != nil {
		return fmt.Errorf("failed to save rating: %w", err)
	}
	return nil
}

// RatingsForWorker returns every rating the worker has left.
func (s *Store) RatingsForWorker(ctx context.Context, workerID string) ([]contract.Rating, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	rows, err := s.db.QueryContext(ctx, `
		SELECT contract_id, worker_id, score, comment, created_at
		FROM ratings WHERE worker_id = ?
		ORDER BY created_at DESC
	`, workerID)
	if err != nil {
		return nil, fmt.Errorf("failed to query ratings: %w", err)
	}
	defer rows.Close()

	var ratings []contract.Rating
	for rows.Next() {
		var (
			r         contract.Rating
			comment   sql.NullString
			createdAt string
		)
		if err := rows.Scan(&r.ContractID, &r.WorkerID, &r.Score, &comment, &createdAt); err != nil {
			return nil, fmt.Errorf("failed to scan rating: %w", err)
		}
		r.Comment = comment.String
		if r.CreatedAt, err = parseTime(createdAt); err != nil {
			return nil, fmt.Errorf("rating for contract %s: created_at: %w", r.ContractID, err)
		}
		ratings = append(ratings, r)
	}

	return ratings, rows.Err()
}

// =============================================================================
// ROW MAPPING
// =============================================================================

// contractArgs returns the column values in contractColumns order.
func contractArgs(c contract.Contract) ([]any, error) {
	var ratesJSON sql.NullString
	if c.Terms.InclusiveRates != nil {
		b, err := json.Marshal(ratesRecord{
			OvertimePerHour:   c.Terms.InclusiveRates.OvertimePerHour,
			HolidayPerDay:     c.Terms.InclusiveRates.HolidayPerDay,
			AnnualLeavePerDay: c.Terms.InclusiveRates.AnnualLeavePerDay,
		})
		if err != nil {
			return nil, fmt.Errorf("failed to encode inclusive rates: %w", err)
		}
		ratesJSON = sql.NullString{String: string(b), Valid: true}
	}

	return []any{
		c.ID,
		c.EmployerID,
		c.WorkerID,
		string(c.Status),
		c.Title,
		c.WorkplaceName,
		c.WorkplaceAddress,
		c.JobDescription,
		formatTime(c.StartDate),
		nullTime(c.EndDate),
		c.Terms.WageType.String(),
		c.Terms.Wage,
		c.Terms.WorkDaysPerWeek,
		c.Terms.StartTime.String(),
		c.Terms.EndTime.String(),
		c.Terms.BreakMinutes,
		c.Terms.BusinessSize.String(),
		ratesJSON,
		nullStringPtr(c.EmployerSignature),
		nullStringPtr(c.WorkerSignature),
		nullTime(c.SignedAt),
		c.DeletedByEmployer,
		c.DeletedByWorker,
		formatTime(c.CreatedAt),
		formatTime(c.UpdatedAt),
	}, nil
}

// ratesRecord is the stored JSON shape of wage.InclusiveRates.
type ratesRecord struct {
	OvertimePerHour   int64 `json:"overtime_per_hour"`
	HolidayPerDay     int64 `json:"holiday_per_day"`
	AnnualLeavePerDay int64 `json:"annual_leave_per_day"`
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanContract(row rowScanner) (contract.Contract, error) {
	var (
		c                             contract.Contract
		status, wageType, size        string
		startDate, createdAt, updated string
		startTime, endTime            string
		endDate, signedAt             sql.NullString
		ratesJSON                     sql.NullString
		employerSig, workerSig        sql.NullString
	)

	err := row.Scan(
		&c.ID, &c.EmployerID, &c.WorkerID, &status, &c.Title, &c.WorkplaceName,
		&c.WorkplaceAddress, &c.JobDescription, &startDate, &endDate, &wageType,
		&c.Terms.Wage, &c.Terms.WorkDaysPerWeek, &startTime, &endTime,
		&c.Terms.BreakMinutes, &size, &ratesJSON, &employerSig, &workerSig,
		&signedAt, &c.DeletedByEmployer, &c.DeletedByWorker, &createdAt, &updated,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return c, err
		}
		return c, fmt.Errorf("failed to scan contract: %w", err)
	}

	if c.Status, err = contract.ParseStatus(status); err != nil {
		return c, fmt.Errorf("contract %s: %w", c.ID, err)
	}
	if c.Terms.WageType, err = wage.ParseWageType(wageType); err != nil {
		return c, fmt.Errorf("contract %s: %w", c.ID, err)
	}
	if c.Terms.BusinessSize, err = wage.ParseBusinessSize(size); err != nil {
		return c, fmt.Errorf("contract %s: %w", c.ID, err)
	}
	if c.Terms.StartTime, err = wage.ParseClock(startTime); err != nil {
		return c, fmt.Errorf("contract %s: %w", c.ID, err)
	}
	if c.Terms.EndTime, err = wage.ParseClock(endTime); err != nil {
		return c, fmt.Errorf("contract %s: %w", c.ID, err)
	}

	if ratesJSON.Valid && ratesJSON.String != "" {
		var rec ratesRecord
		if err := json.Unmarshal([]byte(ratesJSON.String), &rec); err != nil {
			return c, fmt.Errorf("contract %s: failed to decode inclusive rates: %w", c.ID, err)
		}
		c.Terms.InclusiveRates = &wage.InclusiveRates{
			OvertimePerHour:   rec.OvertimePerHour,
			HolidayPerDay:     rec.HolidayPerDay,
			AnnualLeavePerDay: rec.AnnualLeavePerDay,
		}
	}

	if c.StartDate, err = parseTime(startDate); err != nil {
		return c, fmt.Errorf("contract %s: start_date: %w", c.ID, err)
	}
	if c.EndDate, err = parseNullTime(endDate); err != nil {
		return c, fmt.Errorf("contract %s: end_date: %w", c.ID, err)
	}
	if c.SignedAt, err = parseNullTime(signedAt); err != nil {
		return c, fmt.Errorf("contract %s: signed_at: %w", c.ID, err)
	}
	if c.CreatedAt, err = parseTime(createdAt); err != nil {
		return c, fmt.Errorf("contract %s: created_at: %w", c.ID, err)
	}
	if c.UpdatedAt, err = parseTime(updated); err != nil {
		return c, fmt.Errorf("contract %s: updated_at: %w", c.ID, err)
	}
	if employerSig.Valid {
		c.EmployerSignature = &employerSig.String
	}
	if workerSig.Valid {
		c.WorkerSignature = &workerSig.String
	}

	return c, nil
}

// =============================================================================
// UTILITIES
// =============================================================================

// Reset clears all data (for testing/demo).
func (s *Store) Reset(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	// ratings first, they reference contracts
	tables := []string{"ratings", "contracts"}
	for _, table := range tables {
		if _, err := s.db.ExecContext(ctx, "DELETE FROM "+table); err != nil {
			return err
		}
	}
	return nil
}

const timeLayout = "2006-01-02T15:04:05.000000000Z07:00"

func formatTime(t time.Time) string {
	return t.UTC().Format(timeLayout)
}

// parseTime accepts both timeLayout and plain RFC3339.
func parseTime(s string) (time.Time, error) {
	return time.Parse(time.RFC3339Nano, s)
}

func nullTime(t *time.Time) sql.NullString {
	if t == nil {
		return sql.NullString{}
	}
	return sql.NullString{String: formatTime(*t), Valid: true}
}

func parseNullTime(s sql.NullString) (*time.Time, error) {
	if !s.Valid || s.String == "" {
		return nil, nil
	}
	t, err := parseTime(s.String)
	if err != nil {
		return nil, err
	}
	return &t, nil
}

func nullString(s string) sql.NullString {
	if s == "" {
		return sql.NullString{}
	}
	return sql.NullString{String: s, Valid: true}
}

func nullStringPtr(s *string) sql.NullString {
	if s == nil {
		return sql.NullString{}
	}
	return sql.NullString{String: *s, Valid: true}
}

func isUniqueConstraintError(err error) bool {
	return err != nil && (strings.Contains(err.Error(), "UNIQUE constraint failed") ||
		strings.Contains(err.Error(), "duplicate key"))
}

var _ contract.Store = (*Store)(nil)
