package models

import "time"

type TransactionStatus string

const (
	TransactionPending   TransactionStatus = "pending"
	TransactionCompleted TransactionStatus = "completed"
	TransactionFailed    TransactionStatus = "failed"
	TransactionRefunded  TransactionStatus = "refunded"
)

// Transaction records a charge for a plan. Amount is in whole currency units.
type Transaction struct {
	ID        string            `json:"id"`
	UserID    string            `json:"user_id"`
	PlanID    string            `json:"plan_id"`
	Amount    int               `json:"amount"`
	Currency  string            `json:"currency"`
	Status    TransactionStatus `json:"status"`
	CreatedAt time.Time         `json:"created_at"`
	UpdatedAt time.Time         `json:"updated_at"`
}

type SubscriptionStatus string

const (
	SubscriptionActive   SubscriptionStatus = "active"
	SubscriptionPending  SubscriptionStatus = "pending"
	SubscriptionCanceled SubscriptionStatus = "canceled"
	SubscriptionExpired  SubscriptionStatus = "expired"
)

// UserSubscription is the plan a user is on. A user has at most one.
type UserSubscription struct {
	ID        string             `json:"id"`
	UserID    string             `json:"user_id"`
	PlanID    string             `json:"plan_id"`
	Status    SubscriptionStatus `json:"status"`
	StartedAt time.Time          `json:"started_at"`
	ExpiresAt *time.Time         `json:"expires_at,omitempty"`
	UpdatedAt time.Time          `json:"updated_at"`
}
