package mongodb

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/fintrackr/fintrackr/internal/domain"
	"github.com/fintrackr/fintrackr/internal/store"
)

// TransactionStore persists transactions in the transactions collection.
type TransactionStore struct {
	coll *mongo.Collection
}

// Insert writes a single transaction, assigning an ID and creation time.
func (s *TransactionStore) Insert(ctx context.Context, tx *domain.Transaction) error {
	if tx.ID == "" {
		tx.ID = uuid.NewString()
	}
	if tx.CreatedAt.IsZero() {
		tx.CreatedAt = time.Now().UTC()
	}
	if _, err := s.coll.InsertOne(ctx, tx); err != nil {
		return fmt.Errorf("mongodb: insert transaction: %w", err)
	}
	return nil
}

// InsertMany writes an accepted import batch in one ordered bulk insert.
func (s *TransactionStore) InsertMany(ctx context.Context, txs []*domain.Transaction) error {
	if len(txs) == 0 {
		return nil
	}

	now := time.Now().UTC()
	docs := make([]interface{}, 0, len(txs))
	for _, tx := range txs {
		if tx.ID == "" {
			tx.ID = uuid.NewString()
		}
		if tx.CreatedAt.IsZero() {
			tx.CreatedAt = now
		}
		docs = append(docs, tx)
	}

	if _, err := s.coll.InsertMany(ctx, docs, options.InsertMany().SetOrdered(true)); err != nil {
		return fmt.Errorf("mongodb: bulk insert %d transactions: %w", len(txs), err)
	}
	return nil
}

// List returns the user's transactions matching the filter, newest first.
func (s *TransactionStore) List(ctx context.Context, userID string, filter store.TransactionFilter) ([]*domain.Transaction, error) {
	query := bson.M{"user_id": userID}
	if filter.Category != "" {
		query["category"] = filter.Category
	}
	if !filter.StartDate.IsZero() && !filter.EndDate.IsZero() {
		query["date"] = bson.M{"$gte": filter.StartDate, "$lte": filter.EndDate}
	}

	opts := options.Find().SetSort(bson.D{{Key: "date", Value: -1}})
	if filter.Limit > 0 {
		opts.SetLimit(int64(filter.Limit))
	}

	cursor, err := s.coll.Find(ctx, query, opts)
	if err != nil {
		return nil, fmt.Errorf("mongodb: list transactions: %w", err)
	}
	defer cursor.Close(ctx)

	var txs []*domain.Transaction
	if err := cursor.All(ctx, &txs); err != nil {
		return nil, fmt.Errorf("mongodb: decode transactions: %w", err)
	}
	return txs, nil
}

// ListByMonth returns every transaction for the user in the given month key.
func (s *TransactionStore) ListByMonth(ctx context.Context, userID, month string) ([]*domain.Transaction, error) {
	start, end, err := domain.MonthRange(month)
	if err != nil {
		return nil, err
	}
	return s.List(ctx, userID, store.TransactionFilter{StartDate: start, EndDate: end})
}

// SumByCategory aggregates the user's spend per category for the month.
func (s *TransactionStore) SumByCategory(ctx context.Context, userID, month string) (map[domain.Category]float64, error) {
	start, end, err := domain.MonthRange(month)
	if err != nil {
		return nil, err
	}

	pipeline := mongo.Pipeline{
		{{Key: "$match", Value: bson.M{
			"user_id": userID,
			"date":    bson.M{"$gte": start, "$lte": end},
		}}},
		{{Key: "$group", Value: bson.M{
			"_id":   "$category",
			"total": bson.M{"$sum": "$amount"},
		}}},
	}

	cursor, err := s.coll.Aggregate(ctx, pipeline)
	if err != nil {
		return nil, fmt.Errorf("mongodb: aggregate category spend: %w", err)
	}
	defer cursor.Close(ctx)

	var rows []struct {
		Category domain.Category `bson:"_id"`
		Total    float64         `bson:"total"`
	}
	if err := cursor.All(ctx, &rows); err != nil {
		return nil, fmt.Errorf("mongodb: decode category spend: %w", err)
	}

	sums := make(map[domain.Category]float64, len(rows))
	for _, row := range rows {
		sums[row.Category] = row.Total
	}
	return sums, nil
}

// Delete removes the transaction only if it belongs to userID.
func (s *TransactionStore) Delete(ctx context.Context, userID, id string) error {
	res, err := s.coll.DeleteOne(ctx, bson.M{"_id": id, "user_id": userID})
	if err != nil {
		return fmt.Errorf("mongodb: delete transaction: %w", err)
	}
	if res.DeletedCount == 0 {
		return store.ErrNotFound
	}
	return nil
}

var _ store.TransactionStore = (*TransactionStore)(nil)
