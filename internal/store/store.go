// Package store defines the persistence interfaces consumed by the HTTP
// handlers and business logic. Concrete implementations live in subpackages
// (currently mongodb).
package store

import (
	"context"
	"errors"
	"time"

	"github.com/fintrackr/fintrackr/internal/domain"
)

// ErrNotFound is returned when a record does not exist. Callers use it to
// distinguish "nothing to show" from a storage failure.
var ErrNotFound = errors.New("not found")

// TransactionFilter narrows a transaction listing. Zero values mean "no
// constraint" for that field.
type TransactionFilter struct {
	Category  domain.Category
	StartDate time.Time
	EndDate   time.Time
	Limit     int
}

// TransactionStore persists transactions. Records are never updated; only
// inserted, listed, aggregated and deleted.
type TransactionStore interface {
	Insert(ctx context.Context, tx *domain.Transaction) error

	// InsertMany writes a batch in a single bulk operation. An error means
	// the batch was not fully persisted and the caller should treat the
	// import as failed.
	InsertMany(ctx context.Context, txs []*domain.Transaction) error

	List(ctx context.Context, userID string, filter TransactionFilter) ([]*domain.Transaction, error)

	ListByMonth(ctx context.Context, userID, month string) ([]*domain.Transaction, error)

	// SumByCategory returns per-category spend totals for the month.
	SumByCategory(ctx context.Context, userID, month string) (map[domain.Category]float64, error)

	// Delete removes a transaction if it exists and is owned by userID;
	// otherwise it returns ErrNotFound.
	Delete(ctx context.Context, userID, id string) error
}

// BudgetStore persists monthly budgets keyed by (user, month).
type BudgetStore interface {
	// Upsert atomically inserts or replaces the budget for (user, month).
	Upsert(ctx context.Context, b *domain.Budget) error

	Get(ctx context.Context, userID, month string) (*domain.Budget, error)
}

// AnalysisStore persists spending analyses keyed by (user, month).
type AnalysisStore interface {
	// Upsert atomically inserts or replaces the analysis for (user, month).
	Upsert(ctx context.Context, a *domain.Analysis) error

	Get(ctx context.Context, userID, month string) (*domain.Analysis, error)

	// List returns every analysis for the user, most recent month first.
	List(ctx context.Context, userID string) ([]*domain.Analysis, error)
}

// UserStore persists user accounts.
type UserStore interface {
	Insert(ctx context.Context, u *domain.User) (string, error)
	GetByID(ctx context.Context, id string) (*domain.User, error)
	GetByEmail(ctx context.Context, email string) (*domain.User, error)
	GetByResetToken(ctx context.Context, token string, now time.Time) (*domain.User, error)
	SetResetToken(ctx context.Context, id, token string, expires time.Time) error
	UpdatePassword(ctx context.Context, id, passwordHash string) error
}
