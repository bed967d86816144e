// Package billing moves users between plans and records what they are charged.
// Payment collection itself happens elsewhere; the payment backend reports back
// through ConfirmPayment and FailPayment.
package billing

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"github.com/aadarsha10/saahitt-guest-manager-sub001/internal/models"
	"github.com/aadarsha10/saahitt-guest-manager-sub001/internal/plans"
	"github.com/aadarsha10/saahitt-guest-manager-sub001/internal/storage"
)

// ErrTransactionSettled is returned when a payment result arrives for a transaction
// that is no longer pending.
var ErrTransactionSettled = errors.New("transaction already settled")

// billingPeriod is how long a confirmed paid subscription lasts.
const billingPeriod = 1 // months

// Repository is the persistence the service needs. *storage.Storage satisfies it.
type Repository interface {
	GetSubscription(ctx context.Context, userID string) (models.UserSubscription, error)
	UpsertSubscription(ctx context.Context, sub models.UserSubscription) (models.UserSubscription, error)
	InsertTransaction(ctx context.Context, t models.Transaction) (models.Transaction, error)
	GetTransaction(ctx context.Context, id string) (models.Transaction, error)
	UpdateTransactionStatus(ctx context.Context, id string, status models.TransactionStatus) error
}

type Service struct {
	repo Repository
	log  zerolog.Logger
	now  func() time.Time
}

func NewService(repo Repository, log zerolog.Logger) *Service {
	return &Service{
		repo: repo,
		log:  log.With().Str("component", "billing").Logger(),
		now:  time.Now,
	}
}

// Subscribe moves the user to planID and records the charge for it. Unknown plan ids
// are treated as the free plan. The returned transaction is nil when the user is
// already active on that plan and nothing changes.
//
// Free plans take effect immediately. Paid plans create a pending transaction; the
// user keeps any active plan until the payment is confirmed.
func (s *Service) Subscribe(ctx context.Context, userID, planID string) (models.UserSubscription, *models.Transaction, error) {
	plan := plans.GetPlanByID(planID)
	if !plans.IsKnown(planID) {
		s.log.Warn().Str("user_id", userID).Str("plan_id", planID).Msg("Unknown plan requested, using free plan")
	}

	existing, found, err := s.subscription(ctx, userID)
	if err != nil {
		return models.UserSubscription{}, nil, err
	}
	if found && s.isActive(existing) && existing.PlanID == plan.ID {
		return existing, nil, nil
	}

	now := s.now()
	txStatus := models.TransactionPending
	if plan.IsFree() {
		txStatus = models.TransactionCompleted
	}
	t, err := s.repo.InsertTransaction(ctx, models.Transaction{
		UserID:    userID,
		PlanID:    plan.ID,
		Amount:    plans.GetPlanNumericPrice(plan.ID),
		Currency:  plans.Currency,
		Status:    txStatus,
		CreatedAt: now,
	})
	if err != nil {
		return models.UserSubscription{}, nil, fmt.Errorf("failed to record charge: %w", err)
	}

	sub := existing
	switch {
	case plan.IsFree():
		sub = models.UserSubscription{
			ID:        existing.ID,
			UserID:    userID,
			PlanID:    plan.ID,
			Status:    models.SubscriptionActive,
			StartedAt: now,
			UpdatedAt: now,
		}
	case !found || !s.isActive(existing):
		sub = models.UserSubscription{
			ID:        existing.ID,
			UserID:    userID,
			PlanID:    plan.ID,
			Status:    models.SubscriptionPending,
			StartedAt: now,
			UpdatedAt: now,
		}
	default:
		s.log.Info().Str("user_id", userID).Str("plan_id", plan.ID).Str("transaction_id", t.ID).
			Msg("Plan change awaiting payment")
		return existing, &t, nil
	}

	if sub, err = s.repo.UpsertSubscription(ctx, sub); err != nil {
		return models.UserSubscription{}, nil, err
	}

	s.log.Info().
		Str("user_id", userID).
		Str("plan_id", plan.ID).
		Int("amount", t.Amount).
		Str("status", string(sub.Status)).
		Msg("Subscription updated")
	return sub, &t, nil
}

// ConfirmPayment activates the plan of a pending transaction for one billing period
// and then settles the transaction. The transaction stays pending until the plan is
// active, so a failed confirmation can be retried.
func (s *Service) ConfirmPayment(ctx context.Context, transactionID string) (models.UserSubscription, error) {
	t, err := s.pendingTransaction(ctx, transactionID)
	if err != nil {
		return models.UserSubscription{}, err
	}

	existing, _, err := s.subscription(ctx, t.UserID)
	if err != nil {
		return models.UserSubscription{}, err
	}
	now := s.now()
	expires := now.AddDate(0, billingPeriod, 0)
	sub, err := s.repo.UpsertSubscription(ctx, models.UserSubscription{
		ID:        existing.ID,
		UserID:    t.UserID,
		PlanID:    t.PlanID,
		Status:    models.SubscriptionActive,
		StartedAt: now,
		ExpiresAt: &expires,
		UpdatedAt: now,
	})
	if err != nil {
		return models.UserSubscription{}, err
	}
	if err := s.repo.UpdateTransactionStatus(ctx, t.ID, models.TransactionCompleted); err != nil {
		return models.UserSubscription{}, err
	}

	s.log.Info().Str("user_id", t.UserID).Str("plan_id", t.PlanID).Str("transaction_id", t.ID).
		Time("expires_at", expires).Msg("Payment confirmed")
	return sub, nil
}

// FailPayment marks a pending transaction as failed. A subscription still waiting on
// that payment falls back to the free plan; an active one is left alone.
func (s *Service) FailPayment(ctx context.Context, transactionID string) error {
	t, err := s.pendingTransaction(ctx, transactionID)
	if err != nil {
		return err
	}
	if err := s.repo.UpdateTransactionStatus(ctx, t.ID, models.TransactionFailed); err != nil {
		return err
	}

	existing, found, err := s.subscription(ctx, t.UserID)
	if err != nil {
		return err
	}
	if found && existing.Status == models.SubscriptionPending {
		now := s.now()
		if _, err := s.repo.UpsertSubscription(ctx, models.UserSubscription{
			ID:        existing.ID,
			UserID:    t.UserID,
			PlanID:    plans.Free,
			Status:    models.SubscriptionActive,
			StartedAt: now,
			UpdatedAt: now,
		}); err != nil {
			return err
		}
	}

	s.log.Warn().Str("user_id", t.UserID).Str("plan_id", t.PlanID).Str("transaction_id", t.ID).Msg("Payment failed")
	return nil
}

// Cancel ends the user's subscription; they are left on the free plan.
func (s *Service) Cancel(ctx context.Context, userID string) (models.UserSubscription, error) {
	existing, _, err := s.subscription(ctx, userID)
	if err != nil {
		return models.UserSubscription{}, err
	}
	now := s.now()
	sub, err := s.repo.UpsertSubscription(ctx, models.UserSubscription{
		ID:        existing.ID,
		UserID:    userID,
		PlanID:    plans.Free,
		Status:    models.SubscriptionCanceled,
		StartedAt: now,
		UpdatedAt: now,
	})
	if err != nil {
		return models.UserSubscription{}, err
	}

	s.log.Info().Str("user_id", userID).Str("previous_plan", existing.PlanID).Msg("Subscription canceled")
	return sub, nil
}

// CurrentPlan returns the plan the user is entitled to right now. Users without an
// active, unexpired subscription are on the free plan.
func (s *Service) CurrentPlan(ctx context.Context, userID string) (plans.Plan, error) {
	sub, found, err := s.subscription(ctx, userID)
	if err != nil {
		return plans.Plan{}, err
	}
	if !found || !s.isActive(sub) {
		return plans.GetPlanByID(plans.Free), nil
	}
	return plans.GetPlanByID(sub.PlanID), nil
}

func (s *Service) isActive(sub models.UserSubscription) bool {
	if sub.Status != models.SubscriptionActive {
		return false
	}
	return sub.ExpiresAt == nil || s.now().Before(*sub.ExpiresAt)
}

func (s *Service) subscription(ctx context.Context, userID string) (models.UserSubscription, bool, error) {
	sub, err := s.repo.GetSubscription(ctx, userID)
	if errors.Is(err, storage.ErrSubscriptionNotFound) {
		return models.UserSubscription{}, false, nil
	}
	if err != nil {
		return models.UserSubscription{}, false, err
	}
	return sub, true, nil
}

func (s *Service) pendingTransaction(ctx context.Context, id string) (models.Transaction, error) {
	t, err := s.repo.GetTransaction(ctx, id)
	if err != nil {
		return models.Transaction{}, err
	}
	if t.Status != models.TransactionPending {
		return models.Transaction{}, fmt.Errorf("transaction %s is %s: %w", t.ID, t.Status, ErrTransactionSettled)
	}
	return t, nil
}
