/*
store.go - Persistence interface for contracts and ratings

PURPOSE:
  Defines the boundary between contract rules and the database. The core
  functions never call a Store; the Service does, after the rules have
  produced the values to write.

IMPLEMENTATIONS:
  - store/memory:   in-memory, for tests and dev
  - store/sqlite:   default embedded database
  - store/postgres: gorm-backed PostgreSQL

CONTRACT:
  - Get returns ErrNotFound for unknown IDs
  - Update replaces the whole record only while the stored status still
    equals expected (the status the caller read); otherwise ErrStaleWrite
  - List* return contracts the party has not soft-deleted, newest first
*/
package contract

import "context"

type Store interface {
	Create(ctx context.Context, c Contract) error
	Get(ctx context.Context, id string) (Contract, error)
	Update(ctx context.Context, c Contract, expected Status) error
	ListByWorker(ctx context.Context, workerID string) ([]Contract, error)
	ListByEmployer(ctx context.Context, employerID string) ([]Contract, error)

	SaveRating(ctx context.Context, r Rating) error
	RatingsForWorker(ctx context.Context, workerID string) ([]Rating, error)
}
