package whatsapp

import (
	"context"
	"fmt"
	"strings"
	"unicode"

	_ "github.com/mattn/go-sqlite3"
	"github.com/rs/zerolog"
	"github.com/skip2/go-qrcode"
	"go.mau.fi/whatsmeow"
	"go.mau.fi/whatsmeow/proto/waE2E"
	"go.mau.fi/whatsmeow/store/sqlstore"
	"go.mau.fi/whatsmeow/types"
	"go.mau.fi/whatsmeow/types/events"
)

// MessageHandler is called for every incoming message not sent by us
type MessageHandler func(*events.Message) error

type Config struct {
	DataDir     string
	CountryCode string
}

// Service sends and receives guest messages over a linked WhatsApp device
type Service struct {
	client         *whatsmeow.Client
	cfg            *Config
	log            zerolog.Logger
	messageHandler MessageHandler
}

// NewService opens the device store in cfg.DataDir and prepares a client
func NewService(ctx context.Context, cfg *Config, log zerolog.Logger) (*Service, error) {
	container, err := sqlstore.New(ctx, "sqlite3", fmt.Sprintf("file:%s/whatsmeow.db?_foreign_keys=on", cfg.DataDir), nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create device store: %w", err)
	}

	deviceStore, err := container.GetFirstDevice(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to get device: %w", err)
	}

	service := &Service{
		client: whatsmeow.NewClient(deviceStore, nil),
		cfg:    cfg,
		log:    log.With().Str("component", "whatsapp").Logger(),
	}
	service.client.AddEventHandler(service.eventHandler)

	return service, nil
}

// NormalizePhoneNumber strips formatting from a phone number and converts local
// numbers to international form using countryCode: a 10-digit number with a trunk 0
// (05XXXXXXXX) and a 10-digit number without one (98XXXXXXXX) both get the prefix.
func NormalizePhoneNumber(phoneNumber, countryCode string) string {
	phoneNumber = strings.Map(func(r rune) rune {
		if unicode.IsDigit(r) {
			return r
		}
		return -1
	}, phoneNumber)

	if countryCode == "" {
		return phoneNumber
	}
	if len(phoneNumber) == 10 {
		switch {
		case strings.HasPrefix(phoneNumber, "0"):
			phoneNumber = countryCode + phoneNumber[1:]
		case !strings.HasPrefix(phoneNumber, countryCode):
			phoneNumber = countryCode + phoneNumber
		}
	}
	// country code followed by the trunk 0
	if strings.HasPrefix(phoneNumber, countryCode+"0") {
		phoneNumber = countryCode + phoneNumber[len(countryCode)+1:]
	}
	return phoneNumber
}

// Connect connects to WhatsApp, printing a pairing QR code on first use
func (s *Service) Connect(ctx context.Context) error {
	if s.client.Store.ID != nil {
		if err := s.client.Connect(); err != nil {
			return fmt.Errorf("failed to connect: %w", err)
		}
		return nil
	}

	qrChan, err := s.client.GetQRChannel(ctx)
	if err != nil {
		return fmt.Errorf("failed to get QR channel: %w", err)
	}
	if err := s.client.Connect(); err != nil {
		return fmt.Errorf("failed to connect: %w", err)
	}
	for evt := range qrChan {
		if evt.Event != "code" {
			s.log.Info().Str("event", evt.Event).Msg("Login event")
			continue
		}
		q, err := qrcode.New(evt.Code, qrcode.Medium)
		if err != nil {
			s.log.Warn().Err(err).Msg("Could not render QR code")
			fmt.Printf("QR Code: %s\n", evt.Code)
			continue
		}
		fmt.Println("\n" + q.ToSmallString(false))
		fmt.Println("📱 Scan the QR code above in WhatsApp > Settings > Linked Devices > Link a Device")
	}
	return nil
}

// Disconnect disconnects from WhatsApp
func (s *Service) Disconnect() {
	s.client.Disconnect()
}

// Send delivers a text message to phoneNumber after checking the number is on WhatsApp
func (s *Service) Send(ctx context.Context, phoneNumber, text string) error {
	phoneNumber = NormalizePhoneNumber(phoneNumber, s.cfg.CountryCode)

	jid, err := s.resolveJID(ctx, phoneNumber)
	if err != nil {
		return err
	}

	sent, err := s.client.SendMessage(ctx, jid, &waE2E.Message{
		Conversation: &text,
	})
	if err != nil {
		return fmt.Errorf("failed to send message to %s: %w", phoneNumber, err)
	}

	s.log.Debug().
		Str("jid", jid.String()).
		Str("message_id", sent.ID).
		Time("timestamp", sent.Timestamp).
		Msg("Message sent")
	return nil
}

func (s *Service) resolveJID(ctx context.Context, phoneNumber string) (types.JID, error) {
	resp, err := s.client.IsOnWhatsApp(ctx, []string{"+" + phoneNumber})
	if err != nil {
		return types.JID{}, fmt.Errorf("failed to verify number on WhatsApp: %w", err)
	}
	if len(resp) == 0 || !resp[0].IsIn {
		return types.JID{}, fmt.Errorf("number %s is not registered on WhatsApp", phoneNumber)
	}
	return resp[0].JID, nil
}

// SetMessageHandler sets the handler for incoming messages
func (s *Service) SetMessageHandler(handler MessageHandler) {
	s.messageHandler = handler
}

func (s *Service) eventHandler(evt interface{}) {
	switch evt := evt.(type) {
	case *events.Message:
		s.handleMessage(evt)
	case *events.Connected:
		s.log.Info().Msg("Connected to WhatsApp")
	case *events.Disconnected:
		s.log.Info().Msg("Disconnected from WhatsApp")
	case *events.LoggedOut:
		s.log.Warn().Msg("Logged out from WhatsApp")
	}
}

func (s *Service) handleMessage(msg *events.Message) {
	if msg.Info.IsFromMe {
		return
	}
	if s.messageHandler == nil {
		s.log.Info().Str("sender", msg.Info.Sender.String()).Msg("Received message")
		return
	}
	if err := s.messageHandler(msg); err != nil {
		s.log.Error().Err(err).Str("sender", msg.Info.Sender.String()).Msg("Error handling message")
	}
}
