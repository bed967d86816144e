package handler

import (
	"context"
	"errors"
	"fmt"

	"github.com/rs/zerolog"
	"go.mau.fi/whatsmeow/types"
	"go.mau.fi/whatsmeow/types/events"

	"github.com/aadarsha10/saahitt-guest-manager-sub001/internal/models"
	"github.com/aadarsha10/saahitt-guest-manager-sub001/internal/rsvp"
	"github.com/aadarsha10/saahitt-guest-manager-sub001/internal/storage"
	"github.com/aadarsha10/saahitt-guest-manager-sub001/internal/whatsapp"
)

// GuestStore is the guest persistence the handler needs
type GuestStore interface {
	AddGuest(ctx context.Context, guest models.Guest) (models.Guest, error)
	GetGuest(ctx context.Context, phoneNumber string) (models.Guest, error)
	UpdateRSVP(ctx context.Context, phoneNumber string, status models.RSVPStatus, notes string) error
}

// Messenger delivers a text message to a phone number
type Messenger interface {
	Send(ctx context.Context, phoneNumber, text string) error
}

type Config struct {
	EventName     string
	EventDate     string
	EventLocation string
	HostNames     string
	CountryCode   string
}

type RSVPHandler struct {
	messenger Messenger
	store     GuestStore
	config    *Config
	log       zerolog.Logger
}

// NewRSVPHandler creates a new RSVP handler
func NewRSVPHandler(messenger Messenger, store GuestStore, cfg *Config, log zerolog.Logger) *RSVPHandler {
	return &RSVPHandler{
		messenger: messenger,
		store:     store,
		config:    cfg,
		log:       log.With().Str("component", "rsvp").Logger(),
	}
}

// HandleMessage processes incoming WhatsApp messages for RSVP responses
func (h *RSVPHandler) HandleMessage(msg *events.Message) error {
	if msg.Message == nil {
		return nil
	}
	text := msg.Message.GetConversation()
	if text == "" {
		text = msg.Message.GetExtendedTextMessage().GetText()
	}
	if text == "" {
		return nil
	}

	_, _, err := h.HandleReply(context.Background(), senderPhone(msg.Info.MessageSource), text)
	return err
}

// senderPhone returns the sender's phone number. Messages addressed by LID carry the
// phone number JID in SenderAlt.
func senderPhone(src types.MessageSource) string {
	if src.Sender.Server == types.HiddenUserServer && !src.SenderAlt.IsEmpty() {
		return src.SenderAlt.User
	}
	return src.Sender.User
}

// HandleReply records the RSVP expressed by text from phoneNumber and confirms it to
// the guest. Messages from unknown numbers and messages that are not an attendance
// answer are ignored; handled reports whether anything was recorded.
func (h *RSVPHandler) HandleReply(ctx context.Context, phoneNumber, text string) (status models.RSVPStatus, handled bool, err error) {
	phoneNumber = whatsapp.NormalizePhoneNumber(phoneNumber, h.config.CountryCode)

	// only invited guests can RSVP
	guest, err := h.store.GetGuest(ctx, phoneNumber)
	if errors.Is(err, storage.ErrGuestNotFound) {
		return "", false, nil
	}
	if err != nil {
		return "", false, fmt.Errorf("failed to look up guest: %w", err)
	}

	answer, ok := rsvp.ClassifyReply(text)
	if !ok {
		h.log.Debug().Str("phone", phoneNumber).Msg("Message is not an RSVP answer")
		return "", false, nil
	}
	status = rsvp.MapStatusToRSVP(answer)

	if err := h.store.UpdateRSVP(ctx, phoneNumber, status, ""); err != nil {
		return "", false, fmt.Errorf("failed to update RSVP: %w", err)
	}
	h.log.Info().
		Str("phone", phoneNumber).
		Str("answer", string(answer)).
		Str("status", string(status)).
		Msg("RSVP recorded")

	if err := h.messenger.Send(ctx, phoneNumber, h.confirmationMessage(guest.Name, status)); err != nil {
		return status, true, fmt.Errorf("failed to send confirmation: %w", err)
	}
	return status, true, nil
}

// RecordStatus stores an RSVP entered by the host in the external vocabulary
func (h *RSVPHandler) RecordStatus(ctx context.Context, phoneNumber string, answer models.ExternalStatus, notes string) (models.RSVPStatus, error) {
	phoneNumber = whatsapp.NormalizePhoneNumber(phoneNumber, h.config.CountryCode)
	status := rsvp.MapStatusToRSVP(answer)
	if err := h.store.UpdateRSVP(ctx, phoneNumber, status, notes); err != nil {
		return "", fmt.Errorf("failed to update RSVP: %w", err)
	}
	h.log.Info().
		Str("phone", phoneNumber).
		Str("answer", string(answer)).
		Str("status", string(status)).
		Msg("RSVP recorded by host")
	return status, nil
}

// SendInvitation stores the guest as pending and sends them an invitation
func (h *RSVPHandler) SendInvitation(ctx context.Context, phoneNumber, name string) error {
	phoneNumber = whatsapp.NormalizePhoneNumber(phoneNumber, h.config.CountryCode)

	if _, err := h.store.AddGuest(ctx, models.Guest{
		Name:        name,
		PhoneNumber: phoneNumber,
		RSVPStatus:  models.RSVPPending,
	}); err != nil {
		return fmt.Errorf("failed to add guest: %w", err)
	}

	if err := h.messenger.Send(ctx, phoneNumber, h.invitationMessage(name)); err != nil {
		return fmt.Errorf("failed to send invitation: %w", err)
	}
	h.log.Info().Str("phone", phoneNumber).Str("name", name).Msg("Invitation sent")
	return nil
}
