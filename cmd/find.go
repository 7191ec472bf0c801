package cmd

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/teemow/slotfinder/internal/calendar"
	"github.com/teemow/slotfinder/internal/instrumentation"
	"github.com/teemow/slotfinder/internal/logging"
	"github.com/teemow/slotfinder/internal/report"
	"github.com/teemow/slotfinder/internal/schedule"
)

func newFindCmd() *cobra.Command {
	var (
		attendees       []string
		durationMinutes int
		startDay        string
		horizonDays     int
		maxSlots        int
		account         string
		debugMode       bool
	)

	cmd := &cobra.Command{
		Use:   "find",
		Short: "Find common free meeting slots for a group of attendees",
		Long: `Scan the Google calendars of the given attendees and suggest meeting
slots where everyone is free.

Slots are bounded by your working hours as configured in Google Calendar
(or 09:00-17:00 Monday-Friday if none are configured). The scan starts
today and covers the given horizon, stopping as soon as enough slots
have been found.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runFind(attendees, durationMinutes, startDay, horizonDays, maxSlots, account, debugMode)
		},
	}

	cmd.Flags().StringSliceVar(&attendees, "attendees", nil, "Attendee email addresses whose calendars must all be free (comma-separated or repeated)")
	cmd.Flags().IntVar(&durationMinutes, "duration", 60, "Meeting length in minutes")
	cmd.Flags().StringVar(&startDay, "start", "", "First day to scan in YYYY-MM-DD format (default: today)")
	cmd.Flags().IntVar(&horizonDays, "horizon", schedule.DefaultHorizonDays, "How many days to scan before giving up")
	cmd.Flags().IntVar(&maxSlots, "max-slots", schedule.DefaultMaxSlots, "Maximum number of candidate slots to suggest")
	cmd.Flags().StringVar(&account, "account", "default", "Google account name to use (default: 'default')")
	cmd.Flags().BoolVar(&debugMode, "debug", false, "Enable debug logging")

	_ = cmd.MarkFlagRequired("attendees")

	return cmd
}

func runFind(attendees []string, durationMinutes int, startDay string, horizonDays, maxSlots int, account string, debugMode bool) error {
	ctx := context.Background()

	level := slog.LevelInfo
	if debugMode {
		level = slog.LevelDebug
	}
	logger := logging.WithOperation(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level})), "find")
	logger = logging.WithAccount(logger, account)

	if durationMinutes <= 0 {
		return fmt.Errorf("duration must be positive, got %d minutes", durationMinutes)
	}

	start := time.Now()
	if startDay != "" {
		parsed, err := time.ParseInLocation("2006-01-02", startDay, time.Local)
		if err != nil {
			return fmt.Errorf("invalid start day %q, expected YYYY-MM-DD", startDay)
		}
		start = parsed
	}

	if !calendar.HasTokenForAccount(account) {
		return fmt.Errorf("no OAuth token found for account %q; run 'slotfinder auth --account %s' first", account, account)
	}

	client, err := calendar.NewClientForAccount(ctx, account)
	if err != nil {
		return fmt.Errorf("failed to create calendar client for account %s: %w", account, err)
	}

	instrConfig := instrumentation.DefaultConfig()
	instrConfig.ServiceVersion = version

	provider, err := instrumentation.NewProvider(ctx, instrConfig)
	if err != nil {
		return fmt.Errorf("failed to create instrumentation provider: %w", err)
	}
	defer func() {
		if err := provider.Shutdown(ctx); err != nil {
			logger.Debug("instrumentation shutdown failed", logging.Err(err))
		}
	}()

	printer := report.NewPrinter(os.Stdout)

	hours, isDefault, err := loadWorkingHours(ctx, client)
	if err != nil {
		return fmt.Errorf("failed to load working hours: %w", err)
	}
	printer.WorkingHours(hours, isDefault)

	duration := time.Duration(durationMinutes) * time.Minute
	printer.Searching(attendees, duration)

	finder := schedule.NewFinder(client, hours, schedule.Config{
		HorizonDays: horizonDays,
		MaxSlots:    maxSlots,
	}, logger)

	searchStart := time.Now()
	slots, err := finder.Search(ctx, schedule.Request{
		Start:        start,
		Participants: attendees,
		Duration:     duration,
	})
	if err != nil {
		provider.Metrics().RecordSearch(ctx, instrumentation.StatusError, time.Since(searchStart), 0)
		logger.Error("slot search aborted", logging.Err(err))
		printer.Slots(nil, duration, horizonDays)
		return nil
	}
	provider.Metrics().RecordSearch(ctx, instrumentation.StatusSuccess, time.Since(searchStart), len(slots))

	printer.Slots(slots, duration, horizonDays)
	return nil
}

// loadWorkingHours fetches the account's working hours, falling back to the
// built-in default when none are configured in Google Calendar.
func loadWorkingHours(ctx context.Context, client *calendar.Client) (schedule.WorkingHours, bool, error) {
	hours, err := client.WorkingHours(ctx)
	if err != nil {
		if errors.Is(err, calendar.ErrNotConfigured) {
			return schedule.DefaultWorkingHours(), true, nil
		}
		return schedule.WorkingHours{}, false, err
	}
	return hours, false, nil
}
