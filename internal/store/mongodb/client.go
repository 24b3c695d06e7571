// Package mongodb implements the store interfaces on top of MongoDB.
package mongodb

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const (
	collTransactions = "transactions"
	collBudgets      = "budgets"
	collAnalyses     = "analyses"
	collUsers        = "users"
)

// DB wraps a connected MongoDB database and hands out the per-collection
// stores. It holds one shared client; Close releases it.
type DB struct {
	client *mongo.Client
	db     *mongo.Database
}

// Connect dials MongoDB, pings it, and ensures the uniqueness indexes the
// upsert keys rely on.
func Connect(ctx context.Context, uri, name string) (*DB, error) {
	client, err := mongo.Connect(ctx, options.Client().ApplyURI(uri))
	if err != nil {
		return nil, fmt.Errorf("mongodb: connect: %w", err)
	}

	pingCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()
	if err := client.Ping(pingCtx, nil); err != nil {
		return nil, fmt.Errorf("mongodb: ping: %w", err)
	}

	d := &DB{client: client, db: client.Database(name)}
	if err := d.ensureIndexes(ctx); err != nil {
		return nil, err
	}
	return d, nil
}

// Close disconnects the underlying client.
func (d *DB) Close(ctx context.Context) error {
	return d.client.Disconnect(ctx)
}

// ensureIndexes creates the indexes backing the (user, month) upsert keys and
// the common query paths. Index creation is idempotent.
func (d *DB) ensureIndexes(ctx context.Context) error {
	unique := options.Index().SetUnique(true)

	userMonth := bson.D{{Key: "user_id", Value: 1}, {Key: "month", Value: 1}}

	specs := map[string][]mongo.IndexModel{
		collUsers: {
			{Keys: bson.D{{Key: "email", Value: 1}}, Options: unique},
		},
		collBudgets: {
			{Keys: userMonth, Options: unique},
		},
		collAnalyses: {
			{Keys: userMonth, Options: unique},
		},
		collTransactions: {
			{Keys: bson.D{{Key: "user_id", Value: 1}, {Key: "date", Value: -1}}},
		},
	}

	for coll, models := range specs {
		if _, err := d.db.Collection(coll).Indexes().CreateMany(ctx, models); err != nil {
			return fmt.Errorf("mongodb: ensure indexes on %s: %w", coll, err)
		}
	}
	return nil
}

// Transactions returns the transaction store.
func (d *DB) Transactions() *TransactionStore {
	return &TransactionStore{coll: d.db.Collection(collTransactions)}
}

// Budgets returns the budget store.
func (d *DB) Budgets() *BudgetStore {
	return &BudgetStore{coll: d.db.Collection(collBudgets)}
}

// Analyses returns the analysis store.
func (d *DB) Analyses() *AnalysisStore {
	return &AnalysisStore{coll: d.db.Collection(collAnalyses)}
}

// Users returns the user store.
func (d *DB) Users() *UserStore {
	return &UserStore{coll: d.db.Collection(collUsers)}
}
