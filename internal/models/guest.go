package models

import "time"

// Guest represents an invited guest of an event
type Guest struct {
	ID           string             `json:"id"`
	EventID      string             `json:"event_id,omitempty"`
	CategoryID   string             `json:"category_id,omitempty"`
	Name         string             `json:"name"`
	PhoneNumber  string             `json:"phone_number"`
	Email        string             `json:"email,omitempty"`
	RSVPStatus   RSVPStatus         `json:"rsvp_status"`
	RSVPDate     time.Time          `json:"rsvp_date,omitempty"`
	InvitedDate  time.Time          `json:"invited_date"`
	Notes        string             `json:"notes,omitempty"`
	CustomFields []CustomFieldValue `json:"custom_fields,omitempty"`
}

// RSVPStatus is the canonical attendance status used for storage and aggregation
type RSVPStatus string

const (
	RSVPAccepted RSVPStatus = "accepted"
	RSVPPending  RSVPStatus = "pending"
	RSVPDeclined RSVPStatus = "declined"
)

// RSVPStatuses lists the canonical statuses in display order
var RSVPStatuses = []RSVPStatus{RSVPAccepted, RSVPPending, RSVPDeclined}

// ExternalStatus is the attendance vocabulary shown to and entered by people
type ExternalStatus string

const (
	StatusConfirmed   ExternalStatus = "Confirmed"
	StatusMaybe       ExternalStatus = "Maybe"
	StatusUnavailable ExternalStatus = "Unavailable"
	StatusPending     ExternalStatus = "Pending"
)

// ExternalStatuses lists the external statuses in display order
var ExternalStatuses = []ExternalStatus{StatusConfirmed, StatusMaybe, StatusUnavailable, StatusPending}
