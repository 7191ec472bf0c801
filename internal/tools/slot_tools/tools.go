package slot_tools

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/mark3labs/mcp-go/mcp"
	mcpserver "github.com/mark3labs/mcp-go/server"

	"github.com/teemow/slotfinder/internal/calendar"
	"github.com/teemow/slotfinder/internal/google"
	"github.com/teemow/slotfinder/internal/instrumentation"
	"github.com/teemow/slotfinder/internal/schedule"
	"github.com/teemow/slotfinder/internal/server"
)

// getAccountFromArgs extracts the account name from request arguments, defaulting to "default"
func getAccountFromArgs(args map[string]interface{}) string {
	account := "default"
	if accountVal, ok := args["account"].(string); ok && accountVal != "" {
		account = accountVal
	}
	return account
}

// getIntFromArgs extracts an integer argument. JSON numbers arrive as float64.
func getIntFromArgs(args map[string]interface{}, key string, defaultValue int) int {
	if v, ok := args[key].(float64); ok {
		return int(v)
	}
	return defaultValue
}

// getCalendarClient retrieves or creates a calendar client for the specified account
func getCalendarClient(ctx context.Context, account string, sc *server.ServerContext) (*calendar.Client, error) {
	client := sc.CalendarClientForAccount(account)
	if client == nil {
		// Check if token exists before trying to create client
		if !calendar.HasTokenForAccount(account) {
			authURL := google.GetAuthURLForAccount(account)
			return nil, fmt.Errorf(`Google OAuth token not found for account "%s". To authorize access:

1. Visit this URL in your browser:
   %s

2. Sign in with your Google account
3. Grant read access to Google Calendar
4. Copy the authorization code

5. Run 'slotfinder auth --account %s' and paste the code to complete authentication.

Note: You only need to authorize once. The tokens will be automatically refreshed.`, account, authURL, account)
		}

		var err error
		client, err = calendar.NewClientForAccount(ctx, account)
		if err != nil {
			return nil, fmt.Errorf("failed to create calendar client for account %s: %w", account, err)
		}
		sc.SetCalendarClientForAccount(account, client)
	}

	return client, nil
}

// workingHoursForClient loads the account's working hours, falling back to
// the 09:00-17:00 Mon-Fri default when none are configured.
func workingHoursForClient(ctx context.Context, client *calendar.Client) (schedule.WorkingHours, bool, error) {
	hours, err := client.WorkingHours(ctx)
	if err != nil {
		if errors.Is(err, calendar.ErrNotConfigured) {
			return schedule.DefaultWorkingHours(), false, nil
		}
		return schedule.WorkingHours{}, false, err
	}
	return hours, true, nil
}

// RegisterSlotTools registers all slot-finding tools with the MCP server
func RegisterSlotTools(s *mcpserver.MCPServer, sc *server.ServerContext, metrics *instrumentation.Metrics) error {
	if metrics == nil {
		metrics = &instrumentation.Metrics{}
	}

	findTool := mcp.NewTool("slots_find",
		mcp.WithDescription("Find common free meeting slots for a group of attendees within the user's working hours"),
		mcp.WithString("account",
			mcp.Description("Account name (default: 'default'). Used to manage multiple Google accounts."),
		),
		mcp.WithString("attendees",
			mcp.Required(),
			mcp.Description("Comma-separated attendee email addresses whose calendars must all be free"),
		),
		mcp.WithNumber("duration_minutes",
			mcp.Description("Meeting length in minutes (default: 60)"),
		),
		mcp.WithString("start",
			mcp.Description("First day to scan in YYYY-MM-DD format (default: today)"),
		),
		mcp.WithNumber("horizon_days",
			mcp.Description(fmt.Sprintf("How many days to scan before giving up (default: %d)", schedule.DefaultHorizonDays)),
		),
		mcp.WithNumber("max_slots",
			mcp.Description(fmt.Sprintf("Maximum number of candidate slots to return (default: %d)", schedule.DefaultMaxSlots)),
		),
	)

	s.AddTool(findTool, func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		start := time.Now()
		result, err := handleFindSlots(ctx, request, sc)
		status := instrumentation.StatusSuccess
		if err != nil || (result != nil && result.IsError) {
			status = instrumentation.StatusError
		}
		metrics.RecordToolInvocation(ctx, "slots_find", status, time.Since(start))
		return result, err
	})

	workingHoursTool := mcp.NewTool("slots_working_hours",
		mcp.WithDescription("Show the working hours that constrain slot searches for an account"),
		mcp.WithString("account",
			mcp.Description("Account name (default: 'default'). Used to manage multiple Google accounts."),
		),
	)

	s.AddTool(workingHoursTool, func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		start := time.Now()
		result, err := handleWorkingHours(ctx, request, sc)
		status := instrumentation.StatusSuccess
		if err != nil || (result != nil && result.IsError) {
			status = instrumentation.StatusError
		}
		metrics.RecordToolInvocation(ctx, "slots_working_hours", status, time.Since(start))
		return result, err
	})

	return nil
}

func handleFindSlots(ctx context.Context, request mcp.CallToolRequest, sc *server.ServerContext) (*mcp.CallToolResult, error) {
	args := request.GetArguments()
	account := getAccountFromArgs(args)

	attendeesArg, ok := args["attendees"].(string)
	if !ok || attendeesArg == "" {
		return mcp.NewToolResultError("attendees is required"), nil
	}

	var attendees []string
	for _, a := range strings.Split(attendeesArg, ",") {
		if a = strings.TrimSpace(a); a != "" {
			attendees = append(attendees, a)
		}
	}
	if len(attendees) == 0 {
		return mcp.NewToolResultError("attendees is required"), nil
	}

	durationMinutes := getIntFromArgs(args, "duration_minutes", 60)
	if durationMinutes <= 0 {
		return mcp.NewToolResultError("duration_minutes must be positive"), nil
	}

	startDay := time.Now()
	if startArg, ok := args["start"].(string); ok && startArg != "" {
		parsed, err := time.ParseInLocation("2006-01-02", startArg, time.Local)
		if err != nil {
			return mcp.NewToolResultError(fmt.Sprintf("Invalid start day %q, expected YYYY-MM-DD", startArg)), nil
		}
		startDay = parsed
	}

	client, err := getCalendarClient(ctx, account, sc)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	hours, _, err := workingHoursForClient(ctx, client)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("Failed to load working hours: %v", err)), nil
	}

	cfg := schedule.Config{
		HorizonDays: getIntFromArgs(args, "horizon_days", schedule.DefaultHorizonDays),
		MaxSlots:    getIntFromArgs(args, "max_slots", schedule.DefaultMaxSlots),
	}

	finder := schedule.NewFinder(client, hours, cfg, nil)
	slots, err := finder.Search(ctx, schedule.Request{
		Start:        startDay,
		Participants: attendees,
		Duration:     time.Duration(durationMinutes) * time.Minute,
	})
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("Slot search failed: %v", err)), nil
	}

	if len(slots) == 0 {
		return mcp.NewToolResultText(fmt.Sprintf(
			"No common %d-minute slots found for %d attendee(s) in the next %d days",
			durationMinutes, len(attendees), cfg.HorizonDays)), nil
	}

	result := fmt.Sprintf("Found %d potential slot(s) for %d attendee(s):\n\n", len(slots), len(attendees))
	for i, slot := range slots {
		result += fmt.Sprintf("%d. %s to %s\n", i+1,
			slot.Start.Format("Monday, Jan 2 2006 15:04"),
			slot.End.Format("15:04 MST"))
	}
	result += fmt.Sprintf("\nWorking hours: %s\n", hours)

	return mcp.NewToolResultText(result), nil
}

func handleWorkingHours(ctx context.Context, request mcp.CallToolRequest, sc *server.ServerContext) (*mcp.CallToolResult, error) {
	args := request.GetArguments()
	account := getAccountFromArgs(args)

	client, err := getCalendarClient(ctx, account, sc)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	hours, configured, err := workingHoursForClient(ctx, client)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("Failed to load working hours: %v", err)), nil
	}

	source := "configured in Google Calendar"
	if !configured {
		source = "default, not configured in Google Calendar"
	}

	return mcp.NewToolResultText(fmt.Sprintf("Working hours for account %q: %s (%s)", account, hours, source)), nil
}
