package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/aadarsha10/saahitt-guest-manager-sub001/internal/models"
)

// GetSubscription returns the user's subscription, or ErrSubscriptionNotFound.
func (s *Storage) GetSubscription(ctx context.Context, userID string) (models.UserSubscription, error) {
	var (
		sub       models.UserSubscription
		status    string
		startedAt string
		expiresAt sql.NullString
		updatedAt string
	)
	err := s.db.QueryRowContext(ctx, `
		SELECT id, user_id, plan_id, status, started_at, expires_at, updated_at
		FROM subscriptions WHERE user_id = ?`, userID,
	).Scan(&sub.ID, &sub.UserID, &sub.PlanID, &status, &startedAt, &expiresAt, &updatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return models.UserSubscription{}, ErrSubscriptionNotFound
	}
	if err != nil {
		return models.UserSubscription{}, fmt.Errorf("failed to get subscription: %w", err)
	}

	sub.Status = models.SubscriptionStatus(status)
	if sub.StartedAt, err = parseTime(startedAt); err != nil {
		return models.UserSubscription{}, fmt.Errorf("subscription %s: bad start: %w", sub.ID, err)
	}
	if sub.UpdatedAt, err = parseTime(updatedAt); err != nil {
		return models.UserSubscription{}, fmt.Errorf("subscription %s: bad update time: %w", sub.ID, err)
	}
	if sub.ExpiresAt, err = parseNullTime(expiresAt); err != nil {
		return models.UserSubscription{}, fmt.Errorf("subscription %s: bad expiry: %w", sub.ID, err)
	}
	return sub, nil
}

// UpsertSubscription stores the user's subscription, replacing any previous one.
// A missing id is generated.
func (s *Storage) UpsertSubscription(ctx context.Context, sub models.UserSubscription) (models.UserSubscription, error) {
	if sub.ID == "" {
		sub.ID = newID()
	}
	if sub.UpdatedAt.IsZero() {
		sub.UpdatedAt = s.now()
	}
	if sub.StartedAt.IsZero() {
		sub.StartedAt = sub.UpdatedAt
	}

	_, err := s.db.ExecContext(ctx, `
		INSERT INTO subscriptions (user_id, id, plan_id, status, started_at, expires_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT (user_id) DO UPDATE SET
			id = excluded.id,
			plan_id = excluded.plan_id,
			status = excluded.status,
			started_at = excluded.started_at,
			expires_at = excluded.expires_at,
			updated_at = excluded.updated_at`,
		sub.UserID, sub.ID, sub.PlanID, string(sub.Status), formatTime(sub.StartedAt),
		nullTime(sub.ExpiresAt), formatTime(sub.UpdatedAt),
	)
	if err != nil {
		return models.UserSubscription{}, fmt.Errorf("failed to save subscription: %w", err)
	}
	return sub, nil
}

// InsertTransaction records a new transaction. A missing id is generated.
func (s *Storage) InsertTransaction(ctx context.Context, t models.Transaction) (models.Transaction, error) {
	if t.ID == "" {
		t.ID = newID()
	}
	if t.CreatedAt.IsZero() {
		t.CreatedAt = s.now()
	}
	if t.UpdatedAt.IsZero() {
		t.UpdatedAt = t.CreatedAt
	}

	_, err := s.db.ExecContext(ctx, `
		INSERT INTO transactions (id, user_id, plan_id, amount, currency, status, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		t.ID, t.UserID, t.PlanID, t.Amount, t.Currency, string(t.Status),
		formatTime(t.CreatedAt), formatTime(t.UpdatedAt),
	)
	if err != nil {
		return models.Transaction{}, fmt.Errorf("failed to insert transaction: %w", err)
	}
	return t, nil
}

// GetTransaction returns a transaction by id, or ErrTransactionNotFound.
func (s *Storage) GetTransaction(ctx context.Context, id string) (models.Transaction, error) {
	t, err := scanTransaction(s.db.QueryRowContext(ctx, `
		SELECT id, user_id, plan_id, amount, currency, status, created_at, updated_at
		FROM transactions WHERE id = ?`, id))
	if errors.Is(err, sql.ErrNoRows) {
		return models.Transaction{}, ErrTransactionNotFound
	}
	return t, err
}

// UpdateTransactionStatus moves a transaction to status.
func (s *Storage) UpdateTransactionStatus(ctx context.Context, id string, status models.TransactionStatus) error {
	res, err := s.db.ExecContext(ctx,
		`UPDATE transactions SET status = ?, updated_at = ? WHERE id = ?`,
		string(status), formatTime(s.now()), id,
	)
	if err != nil {
		return fmt.Errorf("failed to update transaction: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to update transaction: %w", err)
	}
	if n == 0 {
		return ErrTransactionNotFound
	}
	return nil
}

// ListTransactions returns the user's transactions, oldest first.
func (s *Storage) ListTransactions(ctx context.Context, userID string) ([]models.Transaction, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, user_id, plan_id, amount, currency, status, created_at, updated_at
		FROM transactions WHERE user_id = ? ORDER BY created_at, id`, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list transactions: %w", err)
	}
	defer rows.Close()

	out := make([]models.Transaction, 0)
	for rows.Next() {
		t, err := scanTransaction(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, t)
	}
	return out, rows.Err()
}

func scanTransaction(row scanner) (models.Transaction, error) {
	var (
		t         models.Transaction
		status    string
		createdAt string
		updatedAt string
	)
	if err := row.Scan(&t.ID, &t.UserID, &t.PlanID, &t.Amount, &t.Currency, &status, &createdAt, &updatedAt); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return models.Transaction{}, err
		}
		return models.Transaction{}, fmt.Errorf("failed to scan transaction: %w", err)
	}
	t.Status = models.TransactionStatus(status)

	var err error
	if t.CreatedAt, err = parseTime(createdAt); err != nil {
		return models.Transaction{}, fmt.Errorf("transaction %s: bad creation time: %w", t.ID, err)
	}
	if t.UpdatedAt, err = parseTime(updatedAt); err != nil {
		return models.Transaction{}, fmt.Errorf("transaction %s: bad update time: %w", t.ID, err)
	}
	return t, nil
}
