// Package rsvp translates attendance answers into the canonical RSVP status.
package rsvp

import (
	"strings"

	"github.com/aadarsha10/saahitt-guest-manager-sub001/internal/models"
)

// MapStatusToRSVP maps an external status to its canonical status.
// Anything it does not recognise is treated as undecided.
func MapStatusToRSVP(status models.ExternalStatus) models.RSVPStatus {
	switch status {
	case models.StatusConfirmed:
		return models.RSVPAccepted
	case models.StatusUnavailable:
		return models.RSVPDeclined
	case models.StatusMaybe, models.StatusPending:
		return models.RSVPPending
	default:
		return models.RSVPPending
	}
}

// ParseExternalStatus matches s case-insensitively against the external vocabulary.
// Unmatched input is returned as-is so MapStatusToRSVP can default it.
func ParseExternalStatus(s string) models.ExternalStatus {
	s = strings.TrimSpace(s)
	for _, status := range models.ExternalStatuses {
		if strings.EqualFold(s, string(status)) {
			return status
		}
	}
	return models.ExternalStatus(s)
}
