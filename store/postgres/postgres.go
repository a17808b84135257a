/*
Package postgres provides a PostgreSQL implementation of contract.Store
on top of gorm.

PURPOSE:
  Hosted deployments keep contracts in Postgres. The schema mirrors the
  sqlite package column for column, so the same row mapping rules apply:
  enums by name, clocks as "HH:MM", inclusive rates as JSONB.

MIGRATION:
  New() runs an ordered list of idempotent statements. Add new statements
  to the end of migrationStatements; never edit an existing one.

SEE ALSO:
  - contract/store.go: Store interface
  - store/sqlite: single-node implementation
*/
package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/goccy/go-json"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
	"gorm.io/gorm/logger"

	"github.com/warp/contract-engine/contract"
	"github.com/warp/contract-engine/wage"
)

var migrationStatements = []string{
	`CREATE TABLE IF NOT EXISTS contracts (
		id TEXT PRIMARY KEY,
		employer_id TEXT NOT NULL,
		worker_id TEXT NOT NULL DEFAULT '',
		status VARCHAR(16) NOT NULL DEFAULT 'draft',
		title TEXT NOT NULL DEFAULT '',
		workplace_name TEXT NOT NULL,
		workplace_address TEXT NOT NULL DEFAULT '',
		job_description TEXT NOT NULL DEFAULT '',
		start_date TIMESTAMPTZ NOT NULL,
		end_date TIMESTAMPTZ,
		wage_type VARCHAR(16) NOT NULL,
		wage BIGINT NOT NULL,
		work_days_per_week INTEGER NOT NULL,
		start_time VARCHAR(5) NOT NULL,
		end_time VARCHAR(5) NOT NULL,
		break_minutes INTEGER NOT NULL DEFAULT 0,
		business_size VARCHAR(16) NOT NULL,
		inclusive_rates JSONB,
		employer_signature TEXT,
		worker_signature TEXT,
		signed_at TIMESTAMPTZ,
		deleted_by_employer BOOLEAN NOT NULL DEFAULT FALSE,
		deleted_by_worker BOOLEAN NOT NULL DEFAULT FALSE,
		created_at TIMESTAMPTZ NOT NULL,
		updated_at TIMESTAMPTZ NOT NULL
	);`,
	`CREATE INDEX IF NOT EXISTS idx_contracts_worker ON contracts (worker_id, created_at DESC);`,
	`CREATE INDEX IF NOT EXISTS idx_contracts_employer ON contracts (employer_id, created_at DESC);`,
	`CREATE TABLE IF NOT EXISTS ratings (
		contract_id TEXT PRIMARY KEY REFERENCES contracts(id),
		worker_id TEXT NOT NULL,
		score SMALLINT NOT NULL CHECK (score BETWEEN 1 AND 5),
		comment TEXT,
		created_at TIMESTAMPTZ NOT NULL
	);`,
	`CREATE INDEX IF NOT EXISTS idx_ratings_worker ON ratings (worker_id);`,
}

// Store implements contract.Store using gorm.
type Store struct {
	db *gorm.DB
}

// New connects to dsn and applies migrations.
func New(dsn string) (*Store, error) {
	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{
		Logger:         logger.Default.LogMode(logger.Silent),
		TranslateError: true,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to connect database: %w", err)
	}
	if err := runMigrations(db); err != nil {
		return nil, err
	}
	return &Store{db: db}, nil
}

func runMigrations(db *gorm.DB) error {
	for i, stmt := range migrationStatements {
		if err := db.Exec(stmt).Error; err != nil {
			return fmt.Errorf("migration %d failed: %w", i+1, err)
		}
	}
	return nil
}

// Close releases the underlying connection pool.
func (s *Store) Close() error {
	sqlDB, err := s.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}

// =============================================================================
// ROW MODELS
// =============================================================================

type contractRow struct {
	ID                string `gorm:"primaryKey"`
	EmployerID        string
	WorkerID          string
	Status            string
	Title             string
	WorkplaceName     string
	WorkplaceAddress  string
	JobDescription    string
	StartDate         time.Time
	EndDate           *time.Time
	WageType          string
	Wage              int64
	WorkDaysPerWeek   int
	StartTime         string
	EndTime           string
	BreakMinutes      int
	BusinessSize      string
	InclusiveRates    []byte `gorm:"type:jsonb"`
	EmployerSignature *string
	WorkerSignature   *string
	SignedAt          *time.Time
	DeletedByEmployer bool
	DeletedByWorker   bool
	CreatedAt         time.Time `gorm:"autoCreateTime:false"`
	UpdatedAt         time.Time `gorm:"autoUpdateTime:false"`
}

func (contractRow) TableName() string { return "contracts" }

type ratingRow struct {
	ContractID string `gorm:"primaryKey"`
	WorkerID   string
	Score      int
	Comment    *string
	CreatedAt  time.Time `gorm:"autoCreateTime:false"`
}

func (ratingRow) TableName() string { return "ratings" }

type ratesJSON struct {
	OvertimePerHour   int64 `json:"overtime_per_hour"`
	HolidayPerDay     int64 `json:"holiday_per_day"`
	AnnualLeavePerDay int64 `json:"annual_leave_per_day"`
}

func toRow(c contract.Contract) (contractRow, error) {
	row := contractRow{
		ID:                c.ID,
		EmployerID:        c.EmployerID,
		WorkerID:          c.WorkerID,
		Status:            string(c.Status),
		Title:             c.Title,
		WorkplaceName:     c.WorkplaceName,
		WorkplaceAddress:  c.WorkplaceAddress,
		JobDescription:    c.JobDescription,
		StartDate:         c.StartDate.UTC(),
		EndDate:           c.EndDate,
		WageType:          c.Terms.WageType.String(),
		Wage:              c.Terms.Wage,
		WorkDaysPerWeek:   c.Terms.WorkDaysPerWeek,
		StartTime:         c.Terms.StartTime.String(),
		EndTime:           c.Terms.EndTime.String(),
		BreakMinutes:      c.Terms.BreakMinutes,
		BusinessSize:      c.Terms.BusinessSize.String(),
		EmployerSignature: c.EmployerSignature,
		WorkerSignature:   c.WorkerSignature,
		SignedAt:          c.SignedAt,
		DeletedByEmployer: c.DeletedByEmployer,
		DeletedByWorker:   c.DeletedByWorker,
		CreatedAt:         c.CreatedAt.UTC(),
		UpdatedAt:         c.UpdatedAt.UTC(),
	}
	if r := c.Terms.InclusiveRates; r != nil {
		b, err := json.Marshal(ratesJSON{
			OvertimePerHour:   r.OvertimePerHour,
			HolidayPerDay:     r.HolidayPerDay,
			AnnualLeavePerDay: r.AnnualLeavePerDay,
		})
		if err != nil {
			return row, fmt.Errorf("failed to encode inclusive rates: %w", err)
		}
		row.InclusiveRates = b
	}
	return row, nil
}

func (row contractRow) toContract() (contract.Contract, error) {
	c := contract.Contract{
		ID:                row.ID,
		EmployerID:        row.EmployerID,
		WorkerID:          row.WorkerID,
		Title:             row.Title,
		WorkplaceName:     row.WorkplaceName,
		WorkplaceAddress:  row.WorkplaceAddress,
		JobDescription:    row.JobDescription,
		StartDate:         row.StartDate,
		EndDate:           row.EndDate,
		EmployerSignature: row.EmployerSignature,
		WorkerSignature:   row.WorkerSignature,
		SignedAt:          row.SignedAt,
		DeletedByEmployer: row.DeletedByEmployer,
		DeletedByWorker:   row.DeletedByWorker,
		CreatedAt:         row.CreatedAt,
		UpdatedAt:         row.UpdatedAt,
	}
	c.Terms.Wage = row.Wage
	c.Terms.WorkDaysPerWeek = row.WorkDaysPerWeek
	c.Terms.BreakMinutes = row.BreakMinutes

	var err error
	if c.Status, err = contract.ParseStatus(row.Status); err != nil {
		return c, fmt.Errorf("contract %s: %w", row.ID, err)
	}
	if c.Terms.WageType, err = wage.ParseWageType(row.WageType); err != nil {
		return c, fmt.Errorf("contract %s: %w", row.ID, err)
	}
	if c.Terms.BusinessSize, err = wage.ParseBusinessSize(row.BusinessSize); err != nil {
		return c, fmt.Errorf("contract %s: %w", row.ID, err)
	}
	if c.Terms.StartTime, err = wage.ParseClock(row.StartTime); err != nil {
		return c, fmt.Errorf("contract %s: %w", row.ID, err)
	}
	if c.Terms.EndTime, err = wage.ParseClock(row.EndTime); err != nil {
		return c, fmt.Errorf("contract %s: %w", row.ID, err)
	}
	if len(row.InclusiveRates) > 0 {
		var r ratesJSON
		if err := json.Unmarshal(row.InclusiveRates, &r); err != nil {
			return c, fmt.Errorf("contract %s: failed to decode inclusive rates: %w", row.ID, err)
		}
		c.Terms.InclusiveRates = &wage.InclusiveRates{
			OvertimePerHour:   r.OvertimePerHour,
			HolidayPerDay:     r.HolidayPerDay,
			AnnualLeavePerDay: r.AnnualLeavePerDay,
		}
	}
	return c, nil
}

// =============================================================================
// CONTRACTS (contract.Store interface)
// =============================================================================

func (s *Store) Create(ctx context.Context, c contract.Contract) error {
	row, err := toRow(c)
	if err != nil {
		return err
	}
	if err := s.db.WithContext(ctx).Create(&row).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return fmt.Errorf("contract %s already exists", c.ID)
		}
		return fmt.Errorf("failed to insert contract: %w", err)
	}
	return nil
}

func (s *Store) Get(ctx context.Context, id string) (contract.Contract, error) {
	var row contractRow
	err := s.db.WithContext(ctx).Where("id = ?", id).First(&row).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return contract.Contract{}, contract.ErrNotFound
	}
	if err != nil {
		return contract.Contract{}, fmt.Errorf("failed to load contract: %w", err)
	}
	return row.toContract()
}

// Update writes c only while the stored status is still expected.
func (s *Store) Update(ctx context.Context, c contract.Contract, expected contract.Status) error {
	row, err := toRow(c)
	if err != nil {
		return err
	}
	// Select("*") writes zero values too (false flags, empty strings).
	result := s.db.WithContext(ctx).
		Model(&contractRow{ID: c.ID}).
		Where("status IN ?", expected.StoredNames()).
		Select("*").
		Updates(&row)
	if result.Error != nil {
		return fmt.Errorf("failed to update contract: %w", result.Error)
	}
	if result.RowsAffected > 0 {
		return nil
	}

	var count int64
	if err := s.db.WithContext(ctx).Model(&contractRow{}).Where("id = ?", c.ID).Count(&count).Error; err != nil {
		return fmt.Errorf("failed to check contract %s: %w", c.ID, err)
	}
	if count == 0 {
		return contract.ErrNotFound
	}
	return contract.ErrStaleWrite
}

func (s *Store) ListByWorker(ctx context.Context, workerID string) ([]contract.Contract, error) {
	return s.list(ctx, "worker_id = ? AND deleted_by_worker = FALSE", workerID)
}

func (s *Store) ListByEmployer(ctx context.Context, employerID string) ([]contract.Contract, error) {
	return s.list(ctx, "employer_id = ? AND deleted_by_employer = FALSE", employerID)
}

func (s *Store) list(ctx context.Context, where string, arg any) ([]contract.Contract, error) {
	var rows []contractRow
	err := s.db.WithContext(ctx).
		Where(where, arg).
		Order("created_at DESC").
		Find(&rows).Error
	if err != nil {
		return nil, fmt.Errorf("failed to query contracts: %w", err)
	}

	contracts := make([]contract.Contract, 0, len(rows))
	for _, row := range rows {
		c, err := row.toContract()
		if err != nil {
			return nil, err
		}
		contracts = append(contracts, c)
	}
	return contracts, nil
}

// =============================================================================
// RATINGS
// =============================================================================

func (s *Store) SaveRating(ctx context.Context, r contract.Rating) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var count int64
		if err := tx.Model(&contractRow{}).Where("id = ?", r.ContractID).Count(&count).Error; err != nil {
			return fmt.Errorf("failed to check contract: %w", err)
		}
		if count == 0 {
			return contract.ErrNotFound
		}

		row := ratingRow{
			ContractID: r.ContractID,
			WorkerID:   r.WorkerID,
			Score:      r.Score,
			CreatedAt:  r.CreatedAt.UTC(),
		}
		if r.Comment != "" {
			row.Comment = &r.Comment
		}
		return tx.Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "contract_id"}},
			DoUpdates: clause.AssignmentColumns([]string{"worker_id", "score", "comment", "created_at"}),
		}).Create(&row).Error
	})
}

func (s *Store) RatingsForWorker(ctx context.Context, workerID string) ([]contract.Rating, error) {
	var rows []ratingRow
	err := s.db.WithContext(ctx).
		Where("worker_id = ?", workerID).
		Order("created_at DESC").
		Find(&rows).Error
	if err != nil {
		return nil, fmt.Errorf("failed to query ratings: %w", err)
	}

	ratings := make([]contract.Rating, 0, len(rows))
	for _, row := range rows {
		r := contract.Rating{
			ContractID: row.ContractID,
			WorkerID:   row.WorkerID,
			Score:      row.Score,
			CreatedAt:  row.CreatedAt,
		}
		if row.Comment != nil {
			r.Comment = *row.Comment
		}
		ratings = append(ratings, r)
	}
	return ratings, nil
}

// Reset clears all data (for demo scenarios).
func (s *Store) Reset(ctx context.Context) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		for _, table := range []string{"ratings", "contracts"} {
			if err := tx.Exec("DELETE FROM " + table).Error; err != nil {
				return err
			}
		}
		return nil
	})
}

var _ contract.Store = (*Store)(nil)
