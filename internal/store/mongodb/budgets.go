package mongodb

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/fintrackr/fintrackr/internal/domain"
	"github.com/fintrackr/fintrackr/internal/store"
)

// BudgetStore persists monthly budgets keyed by (user, month).
type BudgetStore struct {
	coll *mongo.Collection
}

// Upsert inserts or replaces the budget for (user, month) in a single atomic
// storage operation, so concurrent writers cannot race into duplicates.
func (s *BudgetStore) Upsert(ctx context.Context, b *domain.Budget) error {
	b.UpdatedAt = time.Now().UTC()

	filter := bson.M{"user_id": b.UserID, "month": b.Month}
	update := bson.M{
		"$set": bson.M{
			"total_budget":     b.TotalBudget,
			"category_budgets": b.CategoryBudgets,
			"updated_at":       b.UpdatedAt,
		},
		"$setOnInsert": bson.M{
			"_id":     uuid.NewString(),
			"user_id": b.UserID,
			"month":   b.Month,
		},
	}

	if _, err := s.coll.UpdateOne(ctx, filter, update, options.Update().SetUpsert(true)); err != nil {
		return fmt.Errorf("mongodb: upsert budget %s/%s: %w", b.UserID, b.Month, err)
	}
	return nil
}

// Get returns the budget for (user, month), or store.ErrNotFound.
func (s *BudgetStore) Get(ctx context.Context, userID, month string) (*domain.Budget, error) {
	var b domain.Budget
	err := s.coll.FindOne(ctx, bson.M{"user_id": userID, "month": month}).Decode(&b)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, store.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("mongodb: get budget %s/%s: %w", userID, month, err)
	}
	return &b, nil
}

var _ store.BudgetStore = (*BudgetStore)(nil)
