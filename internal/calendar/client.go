package calendar

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/codeGROOVE-dev/retry"
	"golang.org/x/oauth2"
	calendar "google.golang.org/api/calendar/v3"
	"google.golang.org/api/googleapi"
	"google.golang.org/api/option"

	"github.com/teemow/slotfinder/internal/google"
	"github.com/teemow/slotfinder/internal/logging"
	"github.com/teemow/slotfinder/internal/schedule"
)

// ErrCalendarUnavailable indicates that a participant's calendar could not
// be read. Slot correctness requires every participant's data, so callers
// must abort the search on this error instead of trusting partial results.
var ErrCalendarUnavailable = errors.New("calendar unavailable")

// ErrNotConfigured indicates the user has no working-hours setting. Callers
// substitute schedule.DefaultWorkingHours.
var ErrNotConfigured = errors.New("working hours not configured")

// Client wraps the Google Calendar service.
type Client struct {
	svc     *calendar.Service
	account string
	logger  *slog.Logger
}

// Account returns the account name this client is associated with.
func (c *Client) Account() string {
	return c.account
}

// HasTokenForAccount checks if a valid OAuth token exists for the account.
func HasTokenForAccount(account string) bool {
	return google.NewFileTokenProvider().HasTokenForAccount(account)
}

// HasToken checks if a valid OAuth token exists for the default account.
func HasToken() bool {
	return HasTokenForAccount("default")
}

// GetAuthURLForAccount returns the OAuth authorization URL for an account.
func GetAuthURLForAccount(account string) string {
	return google.GetAuthURLForAccount(account)
}

// NewClientForAccountWithProvider creates a Calendar client authenticated
// for a specific account, with the OAuth token retrieved from the given
// provider.
func NewClientForAccountWithProvider(ctx context.Context, account string, tokenProvider google.TokenProvider) (*Client, error) {
	if tokenProvider == nil {
		return nil, fmt.Errorf("token provider cannot be nil")
	}

	token, err := tokenProvider.GetTokenForAccount(ctx, account)
	if err != nil {
		return nil, fmt.Errorf("failed to get Google OAuth token for account %s: %w", account, err)
	}

	conf := google.GetOAuthConfig()
	tokenSource := conf.TokenSource(ctx, token)

	client := oauth2.NewClient(ctx, tokenSource)

	// Force HTTP/1.1 by disabling HTTP/2
	transport := client.Transport.(*oauth2.Transport)
	transport.Base = &http.Transport{
		ForceAttemptHTTP2: false,
	}

	svc, err := calendar.NewService(ctx, option.WithHTTPClient(client))
	if err != nil {
		return nil, fmt.Errorf("failed to create Calendar service: %w", err)
	}

	return &Client{
		svc:     svc,
		account: account,
		logger:  logging.WithAccount(slog.Default(), account),
	}, nil
}

// NewClientForAccount creates a Calendar client for a specific account
// using the default file-based token provider.
func NewClientForAccount(ctx context.Context, account string) (*Client, error) {
	return NewClientForAccountWithProvider(ctx, account, google.NewFileTokenProvider())
}

// NewClient creates a Calendar client for the default account.
func NewClient(ctx context.Context) (*Client, error) {
	return NewClientForAccount(ctx, "default")
}

// BusyIntervals queries the free/busy API for all participants within
// [timeMin, timeMax) and returns their combined busy intervals,
// UTC-normalized and unmerged.
//
// Any per-participant error in the response, or a participant missing from
// it entirely, is returned as ErrCalendarUnavailable. The search layer
// treats that as fatal for the whole run.
func (c *Client) BusyIntervals(ctx context.Context, timeMin, timeMax time.Time, participants []string) ([]schedule.Interval, error) {
	items := make([]*calendar.FreeBusyRequestItem, len(participants))
	for i, id := range participants {
		items[i] = &calendar.FreeBusyRequestItem{Id: id}
	}

	query := &calendar.FreeBusyRequest{
		TimeMin:  timeMin.UTC().Format(time.RFC3339),
		TimeMax:  timeMax.UTC().Format(time.RFC3339),
		TimeZone: "UTC",
		Items:    items,
	}

	var result *calendar.FreeBusyResponse
	err := c.doWithRetry(ctx, "freebusy.query", func() error {
		var err error
		result, err = c.svc.Freebusy.Query(query).Context(ctx).Do()
		return err
	})
	if err != nil {
		return nil, fmt.Errorf("failed to query freebusy: %w", err)
	}

	var all []schedule.Interval
	for _, id := range participants {
		cal, ok := result.Calendars[id]
		if !ok {
			return nil, fmt.Errorf("%w: no data for %s", ErrCalendarUnavailable, id)
		}
		if len(cal.Errors) > 0 {
			c.logger.Warn("calendar returned an error",
				logging.Operation("freebusy.query"),
				logging.AttendeeHash(id),
				slog.String("reason", cal.Errors[0].Reason))
			return nil, fmt.Errorf("%w: %s: %s", ErrCalendarUnavailable, id, cal.Errors[0].Reason)
		}

		intervals, err := busyIntervals(cal.Busy)
		if err != nil {
			return nil, fmt.Errorf("%w: %s: %v", ErrCalendarUnavailable, id, err)
		}
		all = append(all, intervals...)
	}

	return all, nil
}

// WorkingHours fetches the authenticated user's working-hours setting.
// Returns ErrNotConfigured when the setting does not exist or is empty.
func (c *Client) WorkingHours(ctx context.Context) (schedule.WorkingHours, error) {
	var setting *calendar.Setting
	err := c.doWithRetry(ctx, "settings.get", func() error {
		var err error
		setting, err = c.svc.Settings.Get(workingHoursSettingID).Context(ctx).Do()
		return err
	})
	if err != nil {
		var gerr *googleapi.Error
		if errors.As(err, &gerr) && gerr.Code == http.StatusNotFound {
			// The user never touched the setting.
			return schedule.WorkingHours{}, ErrNotConfigured
		}
		return schedule.WorkingHours{}, fmt.Errorf("failed to fetch working hours: %w", err)
	}

	if setting == nil || setting.Value == "" {
		return schedule.WorkingHours{}, ErrNotConfigured
	}

	hours, err := parseWorkingHours(setting.Value)
	if err != nil {
		return schedule.WorkingHours{}, fmt.Errorf("failed to parse working hours: %w", err)
	}
	return hours, nil
}

// doWithRetry runs one API call with exponential backoff and jitter.
// Rate limits and non-404 client errors are not retried; the search layer
// has no retry policy of its own, so this is the only place transient
// failures get a second chance.
func (c *Client) doWithRetry(ctx context.Context, op string, call func() error) error {
	start := time.Now()

	err := retry.Do(
		func() error {
			err := call()
			if err == nil {
				return nil
			}

			var gerr *googleapi.Error
			if errors.As(err, &gerr) {
				if gerr.Code == http.StatusTooManyRequests {
					return retry.Unrecoverable(fmt.Errorf("rate limited: %w", err))
				}
				if gerr.Code >= 400 && gerr.Code < 500 {
					return retry.Unrecoverable(err)
				}
			}
			return err
		},
		retry.Attempts(4),
		retry.Delay(time.Second),
		retry.MaxDelay(30*time.Second),
		retry.DelayType(retry.CombineDelay(retry.BackOffDelay, retry.RandomDelay)),
		retry.OnRetry(func(n uint, err error) {
			c.logger.Info("retrying calendar API call",
				logging.Operation(op),
				slog.Uint64("attempt", uint64(n)+1),
				logging.Err(err))
		}),
		retry.Context(ctx),
		retry.LastErrorOnly(true),
	)

	if err != nil {
		c.logger.Error("calendar API call failed",
			logging.Operation(op),
			logging.Status(logging.StatusError),
			slog.Duration("duration", time.Since(start)),
			logging.Err(err))
		return err
	}

	c.logger.Debug("calendar API call completed",
		logging.Operation(op),
		logging.Status(logging.StatusSuccess),
		slog.Duration("duration", time.Since(start)))
	return nil
}
