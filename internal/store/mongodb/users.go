package mongodb

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/fintrackr/fintrackr/internal/domain"
	"github.com/fintrackr/fintrackr/internal/store"
)

// UserStore persists user accounts.
type UserStore struct {
	coll *mongo.Collection
}

// Insert creates a user and returns its ID. The unique index on email turns
// duplicate signups into an error.
func (s *UserStore) Insert(ctx context.Context, u *domain.User) (string, error) {
	if u.ID == "" {
		u.ID = uuid.NewString()
	}
	if u.CreatedAt.IsZero() {
		u.CreatedAt = time.Now().UTC()
	}
	if _, err := s.coll.InsertOne(ctx, u); err != nil {
		return "", fmt.Errorf("mongodb: insert user: %w", err)
	}
	return u.ID, nil
}

// GetByID returns the user with the given ID, or store.ErrNotFound.
func (s *UserStore) GetByID(ctx context.Context, id string) (*domain.User, error) {
	return s.findOne(ctx, bson.M{"_id": id})
}

// GetByEmail returns the user with the given email, or store.ErrNotFound.
func (s *UserStore) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	return s.findOne(ctx, bson.M{"email": email})
}

// GetByResetToken returns the user holding an unexpired reset token.
func (s *UserStore) GetByResetToken(ctx context.Context, token string, now time.Time) (*domain.User, error) {
	return s.findOne(ctx, bson.M{
		"reset_password_token":   token,
		"reset_password_expires": bson.M{"$gt": now},
	})
}

// SetResetToken stores a password-reset token and its expiry on the user.
func (s *UserStore) SetResetToken(ctx context.Context, id, token string, expires time.Time) error {
	update := bson.M{"$set": bson.M{
		"reset_password_token":   token,
		"reset_password_expires": expires,
	}}
	res, err := s.coll.UpdateOne(ctx, bson.M{"_id": id}, update)
	if err != nil {
		return fmt.Errorf("mongodb: set reset token: %w", err)
	}
	if res.MatchedCount == 0 {
		return store.ErrNotFound
	}
	return nil
}

// UpdatePassword replaces the password hash and clears any reset token.
func (s *UserStore) UpdatePassword(ctx context.Context, id, passwordHash string) error {
	update := bson.M{
		"$set":   bson.M{"password_hash": passwordHash},
		"$unset": bson.M{"reset_password_token": "", "reset_password_expires": ""},
	}
	res, err := s.coll.UpdateOne(ctx, bson.M{"_id": id}, update)
	if err != nil {
		return fmt.Errorf("mongodb: update password: %w", err)
	}
	if res.MatchedCount == 0 {
		return store.ErrNotFound
	}
	return nil
}

func (s *UserStore) findOne(ctx context.Context, filter bson.M) (*domain.User, error) {
	var u domain.User
	err := s.coll.FindOne(ctx, filter).Decode(&u)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, store.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("mongodb: find user: %w", err)
	}
	return &u, nil
}

var _ store.UserStore = (*UserStore)(nil)
