package storage

import (
	"context"
	"errors"
	"path/filepath"
	"testing"
	"time"

	"github.com/aadarsha10/saahitt-guest-manager-sub001/internal/models"
)

func newTestStorage(t *testing.T) *Storage {
	t.Helper()
	s, err := Open(filepath.Join(t.TempDir(), "data", "guests.db"))
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return s
}

func TestAddGuest_DefaultsAndReinvite(t *testing.T) {
	ctx := context.Background()
	s := newTestStorage(t)
	invited := time.Date(2026, 1, 5, 10, 0, 0, 0, time.UTC)
	s.now = func() time.Time { return invited }

	g, err := s.AddGuest(ctx, models.Guest{
		Name:         "Sita",
		PhoneNumber:  "9779800000000",
		CustomFields: []models.CustomFieldValue{{FieldID: "meal", Value: "veg"}},
	})
	if err != nil {
		t.Fatalf("add guest: %v", err)
	}
	if g.ID == "" || g.RSVPStatus != models.RSVPPending || !g.InvitedDate.Equal(invited) {
		t.Fatalf("unexpected guest: %+v", g)
	}

	s.now = func() time.Time { return invited.Add(time.Hour) }
	if err := s.UpdateRSVP(ctx, g.PhoneNumber, models.RSVPAccepted, "bringing a gift"); err != nil {
		t.Fatalf("update rsvp: %v", err)
	}

	s.now = func() time.Time { return invited.Add(48 * time.Hour) }
	again, err := s.AddGuest(ctx, models.Guest{Name: "Sita Sharma", PhoneNumber: g.PhoneNumber})
	if err != nil {
		t.Fatalf("re-add guest: %v", err)
	}
	if again.ID != g.ID {
		t.Fatalf("expected id %s to be kept, got %s", g.ID, again.ID)
	}

	got, err := s.GetGuest(ctx, g.PhoneNumber)
	if err != nil {
		t.Fatalf("get guest: %v", err)
	}
	if got.Name != "Sita Sharma" {
		t.Fatalf("expected name update, got %q", got.Name)
	}
	if got.RSVPStatus != models.RSVPAccepted {
		t.Fatalf("expected RSVP status kept, got %q", got.RSVPStatus)
	}
	if !got.InvitedDate.Equal(invited) {
		t.Fatalf("expected invited date kept, got %s", got.InvitedDate)
	}
	if !got.RSVPDate.Equal(invited.Add(time.Hour)) {
		t.Fatalf("expected RSVP date %s, got %s", invited.Add(time.Hour), got.RSVPDate)
	}
}

func TestGetGuest_NotFound(t *testing.T) {
	s := newTestStorage(t)
	if _, err := s.GetGuest(context.Background(), "123"); !errors.Is(err, ErrGuestNotFound) {
		t.Fatalf("expected ErrGuestNotFound, got %v", err)
	}
	if err := s.UpdateRSVP(context.Background(), "123", models.RSVPDeclined, ""); !errors.Is(err, ErrGuestNotFound) {
		t.Fatalf("expected ErrGuestNotFound, got %v", err)
	}
}

func TestGuestsByStatusAndSummary(t *testing.T) {
	ctx := context.Background()
	s := newTestStorage(t)

	for _, phone := range []string{"1", "2", "3", "4"} {
		if _, err := s.AddGuest(ctx, models.Guest{Name: "guest " + phone, PhoneNumber: phone}); err != nil {
			t.Fatalf("add guest: %v", err)
		}
	}
	if err := s.UpdateRSVP(ctx, "1", models.RSVPAccepted, ""); err != nil {
		t.Fatal(err)
	}
	if err := s.UpdateRSVP(ctx, "2", models.RSVPAccepted, ""); err != nil {
		t.Fatal(err)
	}
	if err := s.UpdateRSVP(ctx, "3", models.RSVPDeclined, "travelling"); err != nil {
		t.Fatal(err)
	}

	accepted, err := s.GetGuestsByStatus(ctx, models.RSVPAccepted)
	if err != nil {
		t.Fatal(err)
	}
	if len(accepted) != 2 {
		t.Fatalf("expected 2 accepted guests, got %d", len(accepted))
	}

	all, err := s.GetAllGuests(ctx)
	if err != nil {
		t.Fatal(err)
	}
	if len(all) != 4 {
		t.Fatalf("expected 4 guests, got %d", len(all))
	}

	summary, err := s.RSVPSummary(ctx)
	if err != nil {
		t.Fatal(err)
	}
	want := map[models.RSVPStatus]int{
		models.RSVPAccepted: 2,
		models.RSVPPending:  1,
		models.RSVPDeclined: 1,
	}
	for status, n := range want {
		if summary[status] != n {
			t.Errorf("summary[%s] = %d, want %d", status, summary[status], n)
		}
	}
}

func TestRSVPSummary_Empty(t *testing.T) {
	summary, err := newTestStorage(t).RSVPSummary(context.Background())
	if err != nil {
		t.Fatal(err)
	}
	if len(summary) != 3 {
		t.Fatalf("expected all three statuses, got %v", summary)
	}
}

func TestSubscriptionsAndTransactions(t *testing.T) {
	ctx := context.Background()
	s := newTestStorage(t)

	if _, err := s.GetSubscription(ctx, "user-1"); !errors.Is(err, ErrSubscriptionNotFound) {
		t.Fatalf("expected ErrSubscriptionNotFound, got %v", err)
	}

	expires := time.Date(2026, 2, 1, 0, 0, 0, 0, time.UTC)
	sub, err := s.UpsertSubscription(ctx, models.UserSubscription{
		UserID:    "user-1",
		PlanID:    "pro",
		Status:    models.SubscriptionActive,
		ExpiresAt: &expires,
	})
	if err != nil {
		t.Fatalf("upsert: %v", err)
	}
	got, err := s.GetSubscription(ctx, "user-1")
	if err != nil {
		t.Fatalf("get subscription: %v", err)
	}
	if got.ID != sub.ID || got.PlanID != "pro" || got.ExpiresAt == nil || !got.ExpiresAt.Equal(expires) {
		t.Fatalf("unexpected subscription: %+v", got)
	}

	tx, err := s.InsertTransaction(ctx, models.Transaction{
		UserID: "user-1", PlanID: "pro", Amount: 1500, Currency: "NPR", Status: models.TransactionPending,
	})
	if err != nil {
		t.Fatalf("insert transaction: %v", err)
	}
	if err := s.UpdateTransactionStatus(ctx, tx.ID, models.TransactionCompleted); err != nil {
		t.Fatalf("update transaction: %v", err)
	}
	stored, err := s.GetTransaction(ctx, tx.ID)
	if err != nil {
		t.Fatalf("get transaction: %v", err)
	}
	if stored.Status != models.TransactionCompleted || stored.Amount != 1500 {
		t.Fatalf("unexpected transaction: %+v", stored)
	}

	list, err := s.ListTransactions(ctx, "user-1")
	if err != nil {
		t.Fatal(err)
	}
	if len(list) != 1 {
		t.Fatalf("expected 1 transaction, got %d", len(list))
	}

	if _, err := s.GetTransaction(ctx, "missing"); !errors.Is(err, ErrTransactionNotFound) {
		t.Fatalf("expected ErrTransactionNotFound, got %v", err)
	}
	if err := s.UpdateTransactionStatus(ctx, "missing", models.TransactionFailed); !errors.Is(err, ErrTransactionNotFound) {
		t.Fatalf("expected ErrTransactionNotFound, got %v", err)
	}
}
