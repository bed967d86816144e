package storage

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/aadarsha10/saahitt-guest-manager-sub001/internal/models"
)

const guestColumns = `id, event_id, category_id, name, phone_number, email, rsvp_status, rsvp_date, invited_date, notes, custom_fields`

// AddGuest adds a new guest or updates the existing guest with the same phone number.
// Re-inviting a guest keeps their id, invitation date and RSVP status.
func (s *Storage) AddGuest(ctx context.Context, guest models.Guest) (models.Guest, error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return models.Guest{}, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	existing, err := scanGuest(tx.QueryRowContext(ctx,
		`SELECT `+guestColumns+` FROM guests WHERE phone_number = ?`, guest.PhoneNumber))
	switch {
	case err == nil:
		guest.ID = existing.ID
		guest.InvitedDate = existing.InvitedDate
		guest.RSVPStatus = existing.RSVPStatus
		guest.RSVPDate = existing.RSVPDate
	case errors.Is(err, ErrGuestNotFound):
		guest.ID = newID()
		if guest.InvitedDate.IsZero() {
			guest.InvitedDate = s.now()
		}
		if guest.RSVPStatus == "" {
			guest.RSVPStatus = models.RSVPPending
		}
	default:
		return models.Guest{}, err
	}

	fields, err := json.Marshal(guest.CustomFields)
	if err != nil {
		return models.Guest{}, fmt.Errorf("failed to marshal custom fields: %w", err)
	}
	if existing.ID != "" {
		_, err = tx.ExecContext(ctx, `
			UPDATE guests
			SET event_id = ?, category_id = ?, name = ?, email = ?, notes = ?, custom_fields = ?
			WHERE id = ?`,
			guest.EventID, guest.CategoryID, guest.Name, guest.Email, guest.Notes, string(fields), guest.ID,
		)
	} else {
		var rsvpDate *time.Time
		if !guest.RSVPDate.IsZero() {
			rsvpDate = &guest.RSVPDate
		}
		_, err = tx.ExecContext(ctx, `
			INSERT INTO guests (`+guestColumns+`)
			VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
			guest.ID, guest.EventID, guest.CategoryID, guest.Name, guest.PhoneNumber, guest.Email,
			string(guest.RSVPStatus), nullTime(rsvpDate), formatTime(guest.InvitedDate), guest.Notes, string(fields),
		)
	}
	if err != nil {
		return models.Guest{}, fmt.Errorf("failed to save guest: %w", err)
	}
	if err := tx.Commit(); err != nil {
		return models.Guest{}, fmt.Errorf("failed to commit guest: %w", err)
	}
	return guest, nil
}

// GetGuest retrieves a guest by phone number
func (s *Storage) GetGuest(ctx context.Context, phoneNumber string) (models.Guest, error) {
	return scanGuest(s.db.QueryRowContext(ctx,
		`SELECT `+guestColumns+` FROM guests WHERE phone_number = ?`, phoneNumber))
}

// UpdateRSVP sets a guest's canonical RSVP status and stamps the response time.
// Empty notes leave the existing notes untouched.
func (s *Storage) UpdateRSVP(ctx context.Context, phoneNumber string, status models.RSVPStatus, notes string) error {
	res, err := s.db.ExecContext(ctx, `
		UPDATE guests
		SET rsvp_status = ?, rsvp_date = ?, notes = CASE WHEN ? = '' THEN notes ELSE ? END
		WHERE phone_number = ?`,
		string(status), formatTime(s.now()), notes, notes, phoneNumber,
	)
	if err != nil {
		return fmt.Errorf("failed to update RSVP: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to update RSVP: %w", err)
	}
	if n == 0 {
		return ErrGuestNotFound
	}
	return nil
}

// GetAllGuests returns all guests in invitation order
func (s *Storage) GetAllGuests(ctx context.Context) ([]models.Guest, error) {
	return s.queryGuests(ctx, `SELECT `+guestColumns+` FROM guests ORDER BY invited_date, name`)
}

// GetGuestsByStatus returns guests filtered by RSVP status
func (s *Storage) GetGuestsByStatus(ctx context.Context, status models.RSVPStatus) ([]models.Guest, error) {
	return s.queryGuests(ctx,
		`SELECT `+guestColumns+` FROM guests WHERE rsvp_status = ? ORDER BY invited_date, name`, string(status))
}

// RSVPSummary counts guests per canonical status. Every status is present in the result.
func (s *Storage) RSVPSummary(ctx context.Context) (map[models.RSVPStatus]int, error) {
	summary := make(map[models.RSVPStatus]int, len(models.RSVPStatuses))
	for _, status := range models.RSVPStatuses {
		summary[status] = 0
	}

	rows, err := s.db.QueryContext(ctx, `SELECT rsvp_status, COUNT(*) FROM guests GROUP BY rsvp_status`)
	if err != nil {
		return nil, fmt.Errorf("failed to summarise RSVPs: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var status string
		var count int
		if err := rows.Scan(&status, &count); err != nil {
			return nil, fmt.Errorf("failed to scan summary: %w", err)
		}
		summary[models.RSVPStatus(status)] += count
	}
	return summary, rows.Err()
}

func (s *Storage) queryGuests(ctx context.Context, query string, args ...any) ([]models.Guest, error) {
	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query guests: %w", err)
	}
	defer rows.Close()

	guests := make([]models.Guest, 0)
	for rows.Next() {
		g, err := scanGuest(rows)
		if err != nil {
			return nil, err
		}
		guests = append(guests, g)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read guests: %w", err)
	}
	return guests, nil
}

type scanner interface {
	Scan(dest ...any) error
}

func scanGuest(row scanner) (models.Guest, error) {
	var (
		g           models.Guest
		status      string
		rsvpDate    sql.NullString
		invitedDate string
		fields      string
	)
	err := row.Scan(&g.ID, &g.EventID, &g.CategoryID, &g.Name, &g.PhoneNumber, &g.Email,
		&status, &rsvpDate, &invitedDate, &g.Notes, &fields)
	if errors.Is(err, sql.ErrNoRows) {
		return models.Guest{}, ErrGuestNotFound
	}
	if err != nil {
		return models.Guest{}, fmt.Errorf("failed to scan guest: %w", err)
	}

	g.RSVPStatus = models.RSVPStatus(status)
	if g.InvitedDate, err = parseTime(invitedDate); err != nil {
		return models.Guest{}, fmt.Errorf("guest %s: bad invited date: %w", g.ID, err)
	}
	answered, err := parseNullTime(rsvpDate)
	if err != nil {
		return models.Guest{}, fmt.Errorf("guest %s: bad RSVP date: %w", g.ID, err)
	}
	if answered != nil {
		g.RSVPDate = *answered
	}
	if err := json.Unmarshal([]byte(fields), &g.CustomFields); err != nil {
		return models.Guest{}, fmt.Errorf("guest %s: bad custom fields: %w", g.ID, err)
	}
	return g, nil
}
