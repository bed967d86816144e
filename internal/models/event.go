package models

import "time"

// Event is a gathering guests are invited to
type Event struct {
	ID          string    `json:"id"`
	UserID      string    `json:"user_id"`
	Name        string    `json:"name"`
	Date        string    `json:"date"`
	Location    string    `json:"location"`
	Description string    `json:"description,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
}

// Category groups guests of an event, e.g. "Family" or "Colleagues"
type Category struct {
	ID      string `json:"id"`
	EventID string `json:"event_id"`
	Name    string `json:"name"`
	Color   string `json:"color,omitempty"`
}

type CustomFieldType string

const (
	FieldText    CustomFieldType = "text"
	FieldNumber  CustomFieldType = "number"
	FieldBoolean CustomFieldType = "boolean"
	FieldSelect  CustomFieldType = "select"
)

// CustomField is a host-defined attribute collected for every guest of an event
type CustomField struct {
	ID       string          `json:"id"`
	EventID  string          `json:"event_id"`
	Name     string          `json:"name"`
	Type     CustomFieldType `json:"type"`
	Options  []string        `json:"options,omitempty"`
	Required bool            `json:"required"`
}

// CustomFieldValue is a guest's answer for one custom field
type CustomFieldValue struct {
	FieldID string `json:"field_id"`
	Value   string `json:"value"`
}
