package store

import (
	"context"
	"errors"

	"github.com/bodytraq/imctrack/internal/imctrack/domain"
)

var (
	ErrNotFound      = errors.New("store: not found")
	ErrAlreadyExists = errors.New("store: already exists")
)

// SortOrder selects the direction history listings are returned in.
type SortOrder string

const (
	SortAsc  SortOrder = "asc"
	SortDesc SortOrder = "desc"
)

// Store is the root data access interface. Concrete drivers (sqlite today)
// implement this. Sub-repositories keep concerns tidy and individually
// mockable in tests.
type Store interface {
	Users() Users
	BmiRecords() BmiRecords

	ApplyMigrations() error

	// Tx starts a read/write transaction and returns a Tx-scoped Store.
	// The caller MUST call Commit() or Rollback() on the returned Tx.
	Tx(ctx context.Context) (Tx, error)

	// WithTx executes fn within a transaction, rolling back when fn returns
	// an error and committing otherwise. Prefer this over Tx directly.
	WithTx(ctx context.Context, fn func(tx Tx) error) error

	// Close releases any underlying resources.
	Close() error

	// Ping verifies the database connection is still alive.
	Ping(ctx context.Context) error
}

// Tx is a transactional store. It embeds the same repos but adds
// Commit/Rollback.
type Tx interface {
	Store
	Commit() error
	Rollback() error
}

type Users interface {
	// GetUserByID returns a user by id.
	GetUserByID(ctx context.Context, id string) (domain.User, error)

	// GetUserByEmail is the lookup used by login and by request
	// authentication (the token's subject is an email).
	GetUserByEmail(ctx context.Context, email string) (domain.User, error)

	// CreateUser inserts a new user. A duplicate email returns
	// ErrAlreadyExists.
	CreateUser(ctx context.Context, u domain.User) error

	// UpdateUser overwrites email, password hash and names, and bumps
	// updated_at. Missing target returns ErrNotFound.
	UpdateUser(ctx context.Context, u domain.User) error

	// DeleteUser removes a user; BMI records cascade per schema.
	DeleteUser(ctx context.Context, userID string) error

	// ListUsers returns all users ordered by creation (oldest first).
	ListUsers(ctx context.Context) ([]domain.User, error)

	// CountUsers returns the total number of users.
	CountUsers(ctx context.Context) (int64, error)
}

type BmiRecords interface {
	// CreateRecord stores one immutable calculation result.
	CreateRecord(ctx context.Context, rec domain.BmiRecord) error

	// GetRecordByID returns a single record.
	GetRecordByID(ctx context.Context, id string) (domain.BmiRecord, error)

	// ListByUser returns a page of a user's records ordered by computed_at
	// in the given direction.
	ListByUser(ctx context.Context, userID string, order SortOrder, limit, offset int64) ([]domain.BmiRecord, error)

	// ListAllByUserAsc returns the full history oldest-first, the shape the
	// dashboard aggregation wants.
	ListAllByUserAsc(ctx context.Context, userID string) ([]domain.BmiRecord, error)

	// CountByUser returns how many records a user has.
	CountByUser(ctx context.Context, userID string) (int64, error)
}
