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

// AnalysisStore persists spending analyses keyed by (user, month).
type AnalysisStore struct {
	coll *mongo.Collection
}

// Upsert inserts or replaces the analysis for (user, month). Re-analyzing a
// month overwrites the summary rather than duplicating the record.
func (s *AnalysisStore) Upsert(ctx context.Context, a *domain.Analysis) error {
	filter := bson.M{"user_id": a.UserID, "month": a.Month}
	update := bson.M{
		"$set": bson.M{"summary": a.Summary},
		"$setOnInsert": bson.M{
			"_id":        uuid.NewString(),
			"user_id":    a.UserID,
			"month":      a.Month,
			"created_at": time.Now().UTC(),
		},
	}

	if _, err := s.coll.UpdateOne(ctx, filter, update, options.Update().SetUpsert(true)); err != nil {
		return fmt.Errorf("mongodb: upsert analysis %s/%s: %w", a.UserID, a.Month, err)
	}
	return nil
}

// Get returns the analysis for (user, month), or store.ErrNotFound.
func (s *AnalysisStore) Get(ctx context.Context, userID, month string) (*domain.Analysis, error) {
	var a domain.Analysis
	err := s.coll.FindOne(ctx, bson.M{"user_id": userID, "month": month}).Decode(&a)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, store.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("mongodb: get analysis %s/%s: %w", userID, month, err)
	}
	return &a, nil
}

// List returns all of the user's analyses, most recent month first.
func (s *AnalysisStore) List(ctx context.Context, userID string) ([]*domain.Analysis, error) {
	opts := options.Find().SetSort(bson.D{{Key: "month", Value: -1}})
	cursor, err := s.coll.Find(ctx, bson.M{"user_id": userID}, opts)
	if err != nil {
		return nil, fmt.Errorf("mongodb: list analyses: %w", err)
	}
	defer cursor.Close(ctx)

	var analyses []*domain.Analysis
	if err := cursor.All(ctx, &analyses); err != nil {
		return nil, fmt.Errorf("mongodb: decode analyses: %w", err)
	}
	return analyses, nil
}

var _ store.AnalysisStore = (*AnalysisStore)(nil)
