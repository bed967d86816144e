package handler

import (
	"fmt"

	"github.com/aadarsha10/saahitt-guest-manager-sub001/internal/models"
)

func (h *RSVPHandler) invitationMessage(name string) string {
	return fmt.Sprintf(
		"🎉 *You're Invited*\n\n"+
			"Dear %s,\n\n"+
			"%s warmly invite you to *%s*.\n\n"+
			"📅 Date: %s\n"+
			"📍 Location: %s\n\n"+
			"Reply with:\n✅ *YES* to accept\n❌ *NO* to decline\n🤔 *MAYBE* if you're not sure yet",
		name, h.config.HostNames, h.config.EventName, h.config.EventDate, h.config.EventLocation,
	)
}

func (h *RSVPHandler) confirmationMessage(name string, status models.RSVPStatus) string {
	switch status {
	case models.RSVPAccepted:
		return fmt.Sprintf(
			"🎉 Wonderful, %s! We're so excited to celebrate with you.\n\n"+
				"Your attendance at %s on %s is confirmed.\n\n"+
				"See you there! 💕",
			name, h.config.EventName, h.config.EventDate,
		)
	case models.RSVPDeclined:
		return fmt.Sprintf(
			"Thank you for letting us know, %s. We're sorry you won't be able to join us for %s.\n\n"+
				"We'll miss you! 💕",
			name, h.config.EventName,
		)
	default:
		return fmt.Sprintf(
			"Thanks, %s! We've noted that you're not sure yet.\n\n"+
				"Reply *YES* or *NO* whenever you know.",
			name,
		)
	}
}
