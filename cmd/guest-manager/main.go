package main

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/rs/zerolog"

	"github.com/aadarsha10/saahitt-guest-manager-sub001/internal/billing"
	"github.com/aadarsha10/saahitt-guest-manager-sub001/internal/config"
	"github.com/aadarsha10/saahitt-guest-manager-sub001/internal/handler"
	"github.com/aadarsha10/saahitt-guest-manager-sub001/internal/models"
	"github.com/aadarsha10/saahitt-guest-manager-sub001/internal/plans"
	"github.com/aadarsha10/saahitt-guest-manager-sub001/internal/rsvp"
	"github.com/aadarsha10/saahitt-guest-manager-sub001/internal/storage"
	"github.com/aadarsha10/saahitt-guest-manager-sub001/internal/whatsapp"
)

func main() {
	fmt.Println("🎉 Guest Manager")
	fmt.Println("================")

	if err := run(); err != nil {
		fmt.Printf("Error: %v\n", err)
		os.Exit(1)
	}
	fmt.Println("Goodbye! 👋")
}

func run() error {
	cfg, err := config.LoadConfig()
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}
	logger := newLogger(cfg.LogLevel)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	store, err := storage.Open(cfg.DatabasePath)
	if err != nil {
		return fmt.Errorf("failed to initialize storage: %w", err)
	}
	defer store.Close()

	whatsappService, err := whatsapp.NewService(ctx, &whatsapp.Config{
		DataDir:     cfg.DataDir,
		CountryCode: cfg.CountryCode,
	}, logger)
	if err != nil {
		return fmt.Errorf("failed to initialize WhatsApp service: %w", err)
	}

	rsvpHandler := handler.NewRSVPHandler(whatsappService, store, &handler.Config{
		EventName:     cfg.EventName,
		EventDate:     cfg.EventDate,
		EventLocation: cfg.EventLocation,
		HostNames:     cfg.HostNames,
		CountryCode:   cfg.CountryCode,
	}, logger)
	whatsappService.SetMessageHandler(rsvpHandler.HandleMessage)

	billingService := billing.NewService(store, logger)

	logger.Info().Msg("Connecting to WhatsApp...")
	if err := whatsappService.Connect(ctx); err != nil {
		return fmt.Errorf("failed to connect to WhatsApp: %w", err)
	}
	defer whatsappService.Disconnect()
	fmt.Println("\n✅ Connected! Listening for RSVP replies.")

	cli := &cli{
		scanner: bufio.NewScanner(os.Stdin),
		rsvp:    rsvpHandler,
		store:   store,
		billing: billingService,
		userID:  cfg.UserID,
	}
	go func() {
		cli.run(ctx)
		stop()
	}()

	<-ctx.Done()
	fmt.Println("\n\nShutting down...")
	return nil
}

func newLogger(level string) zerolog.Logger {
	lvl, err := zerolog.ParseLevel(level)
	if err != nil || lvl == zerolog.NoLevel {
		lvl = zerolog.InfoLevel
	}
	return zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.Kitchen}).
		Level(lvl).
		With().
		Timestamp().
		Logger()
}

type cli struct {
	scanner *bufio.Scanner
	rsvp    *handler.RSVPHandler
	store   *storage.Storage
	billing *billing.Service
	userID  string
}

func (c *cli) run(ctx context.Context) {
	for {
		fmt.Println("\nCommands:")
		fmt.Println("  1. Send invitation")
		fmt.Println("  2. View all guests")
		fmt.Println("  3. View guests by status")
		fmt.Println("  4. Record RSVP")
		fmt.Println("  5. RSVP summary")
		fmt.Println("  6. View plans")
		fmt.Println("  7. Subscribe to a plan")
		fmt.Println("  8. Confirm payment")
		fmt.Println("  9. Cancel subscription")
		fmt.Println(" 10. Current plan")
		fmt.Println("  0. Exit")

		command, ok := c.prompt("\nEnter command: ")
		if !ok {
			return
		}

		var err error
		switch command {
		case "1":
			err = c.sendInvitation(ctx)
		case "2":
			err = c.viewAllGuests(ctx)
		case "3":
			err = c.viewGuestsByStatus(ctx)
		case "4":
			err = c.recordRSVP(ctx)
		case "5":
			err = c.summary(ctx)
		case "6":
			viewPlans()
		case "7":
			err = c.subscribe(ctx)
		case "8":
			err = c.confirmPayment(ctx)
		case "9":
			err = c.cancel(ctx)
		case "10":
			err = c.currentPlan(ctx)
		case "0":
			fmt.Println("Exiting...")
			return
		default:
			fmt.Println("Invalid command. Please try again.")
		}
		if err != nil {
			fmt.Printf("❌ %v\n", err)
		}
	}
}

func (c *cli) prompt(label string) (string, bool) {
	fmt.Print(label)
	if !c.scanner.Scan() {
		return "", false
	}
	return strings.TrimSpace(c.scanner.Text()), true
}

func (c *cli) sendInvitation(ctx context.Context) error {
	name, ok := c.prompt("Enter guest name: ")
	if !ok {
		return nil
	}
	phoneNumber, ok := c.prompt("Enter phone number (with country code, e.g. +977 98XXXXXXXX): ")
	if !ok {
		return nil
	}

	fmt.Printf("\nSending invitation to %s (%s)...\n", name, phoneNumber)
	if err := c.rsvp.SendInvitation(ctx, phoneNumber, name); err != nil {
		return err
	}
	fmt.Println("✅ Invitation sent successfully!")
	return nil
}

func (c *cli) viewAllGuests(ctx context.Context) error {
	guests, err := c.store.GetAllGuests(ctx)
	if err != nil {
		return err
	}
	if len(guests) == 0 {
		fmt.Println("\nNo guests found.")
		return nil
	}
	fmt.Printf("\n📋 All Guests (%d total):\n", len(guests))
	printGuests(guests)
	return nil
}

func (c *cli) viewGuestsByStatus(ctx context.Context) error {
	fmt.Println("\nSelect status:")
	for i, status := range models.RSVPStatuses {
		fmt.Printf("  %d. %s\n", i+1, status)
	}
	choice, ok := c.prompt(fmt.Sprintf("Enter choice (1-%d): ", len(models.RSVPStatuses)))
	if !ok {
		return nil
	}
	var n int
	if _, err := fmt.Sscan(choice, &n); err != nil || n < 1 || n > len(models.RSVPStatuses) {
		fmt.Println("Invalid choice.")
		return nil
	}
	status := models.RSVPStatuses[n-1]

	guests, err := c.store.GetGuestsByStatus(ctx, status)
	if err != nil {
		return err
	}
	if len(guests) == 0 {
		fmt.Printf("\nNo guests with status '%s'.\n", status)
		return nil
	}
	fmt.Printf("\n📋 Guests with status '%s' (%d total):\n", status, len(guests))
	printGuests(guests)
	return nil
}

func (c *cli) recordRSVP(ctx context.Context) error {
	phoneNumber, ok := c.prompt("Enter guest phone number: ")
	if !ok {
		return nil
	}
	names := make([]string, len(models.ExternalStatuses))
	for i, s := range models.ExternalStatuses {
		names[i] = string(s)
	}
	answer, ok := c.prompt(fmt.Sprintf("Enter status (%s): ", strings.Join(names, ", ")))
	if !ok {
		return nil
	}
	notes, ok := c.prompt("Notes (optional): ")
	if !ok {
		return nil
	}

	status, err := c.rsvp.RecordStatus(ctx, phoneNumber, rsvp.ParseExternalStatus(answer), notes)
	if err != nil {
		return err
	}
	fmt.Printf("✅ Recorded as '%s'\n", status)
	return nil
}

func (c *cli) summary(ctx context.Context) error {
	summary, err := c.store.RSVPSummary(ctx)
	if err != nil {
		return err
	}
	fmt.Println("\n📊 RSVP Summary")
	for _, status := range models.RSVPStatuses {
		fmt.Printf("  %-9s %d\n", status, summary[status])
	}
	return nil
}

func viewPlans() {
	fmt.Println("\n💳 Plans")
	for _, p := range plans.All() {
		marker := " "
		if p.Highlighted {
			marker = "★"
		}
		fmt.Printf("%s %-9s %s %s/month (id: %s)\n", marker, p.Name, plans.Currency, p.Price, p.ID)
		for _, f := range p.Features {
			fmt.Printf("      - %s\n", f)
		}
	}
}

func (c *cli) subscribe(ctx context.Context) error {
	planID, ok := c.prompt("Enter plan id: ")
	if !ok {
		return nil
	}
	sub, tx, err := c.billing.Subscribe(ctx, c.userID, planID)
	if err != nil {
		return err
	}
	if tx == nil {
		fmt.Printf("You are already on the %s plan.\n", plans.GetPlanByID(sub.PlanID).Name)
		return nil
	}
	if tx.Status == models.TransactionPending {
		fmt.Printf("Payment of %s %d pending (transaction %s).\n", tx.Currency, tx.Amount, tx.ID)
		return nil
	}
	fmt.Printf("✅ Subscribed to the %s plan.\n", plans.GetPlanByID(sub.PlanID).Name)
	return nil
}

func (c *cli) confirmPayment(ctx context.Context) error {
	txID, ok := c.prompt("Enter transaction id: ")
	if !ok {
		return nil
	}
	sub, err := c.billing.ConfirmPayment(ctx, txID)
	if err != nil {
		return err
	}
	fmt.Printf("✅ %s plan active until %s\n", plans.GetPlanByID(sub.PlanID).Name, sub.ExpiresAt.Format("2006-01-02"))
	return nil
}

func (c *cli) cancel(ctx context.Context) error {
	if _, err := c.billing.Cancel(ctx, c.userID); err != nil {
		return err
	}
	fmt.Println("Subscription canceled. You are on the Free plan.")
	return nil
}

func (c *cli) currentPlan(ctx context.Context) error {
	plan, err := c.billing.CurrentPlan(ctx, c.userID)
	if err != nil {
		return err
	}
	fmt.Printf("\nCurrent plan: %s (%s %d/month)\n", plan.Name, plans.Currency, plans.GetPlanNumericPrice(plan.ID))
	return nil
}

func printGuests(guests []models.Guest) {
	fmt.Println(strings.Repeat("-", 60))
	for _, guest := range guests {
		fmt.Printf("Name: %s\n", guest.Name)
		fmt.Printf("Phone: %s\n", guest.PhoneNumber)
		fmt.Printf("Status: %s\n", guest.RSVPStatus)
		if !guest.RSVPDate.IsZero() {
			fmt.Printf("RSVP Date: %s\n", guest.RSVPDate.Local().Format("2006-01-02 15:04:05"))
		}
		if guest.Notes != "" {
			fmt.Printf("Notes: %s\n", guest.Notes)
		}
		fmt.Println(strings.Repeat("-", 60))
	}
}
