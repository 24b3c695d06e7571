package domain

import (
	"time"
)

// Transaction represents one financial event owned by a user.
// Amount is always strictly positive; sign is normalized on import.
// Records are immutable after creation.
type Transaction struct {
	ID          string    `bson:"_id,omitempty" json:"id"`
	UserID      string    `bson:"user_id" json:"userId"`
	Amount      float64   `bson:"amount" json:"amount"`
	Description string    `bson:"description" json:"description"`
	Category    Category  `bson:"category" json:"category"`
	Date        time.Time `bson:"date" json:"date"`
	CreatedAt   time.Time `bson:"created_at" json:"createdAt"`
}

// Budget is one user's spending plan for one calendar month.
// Re-submitting for the same (user, month) overwrites in place.
type Budget struct {
	ID              string               `bson:"_id,omitempty" json:"id"`
	UserID          string               `bson:"user_id" json:"userId"`
	Month           string               `bson:"month" json:"month"`
	TotalBudget     float64              `bson:"total_budget" json:"totalBudget"`
	CategoryBudgets map[Category]float64 `bson:"category_budgets,omitempty" json:"categoryBudgets,omitempty"`
	UpdatedAt       time.Time            `bson:"updated_at" json:"updatedAt"`
}

// Analysis is the persisted natural-language spending summary for one
// (user, month). There is at most one per key; re-analysis overwrites.
type Analysis struct {
	ID        string    `bson:"_id,omitempty" json:"id"`
	UserID    string    `bson:"user_id" json:"userId"`
	Month     string    `bson:"month" json:"month"`
	Summary   string    `bson:"summary" json:"summary"`
	CreatedAt time.Time `bson:"created_at" json:"createdAt"`
}

// User is an account holder.
type User struct {
	ID                   string     `bson:"_id,omitempty" json:"id"`
	FirstName            string     `bson:"first_name" json:"firstName"`
	LastName             string     `bson:"last_name" json:"lastName"`
	Email                string     `bson:"email" json:"email"`
	PasswordHash         string     `bson:"password_hash" json:"-"`
	ResetPasswordToken   string     `bson:"reset_password_token,omitempty" json:"-"`
	ResetPasswordExpires *time.Time `bson:"reset_password_expires,omitempty" json:"-"`
	CreatedAt            time.Time  `bson:"created_at" json:"createdAt"`
}
