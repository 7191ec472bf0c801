// Package calendar provides the Google Calendar collaborators for the slot
// search: the free/busy source and the working-hours settings source.
//
// The client wraps the Google Calendar API with OAuth2 authentication and
// retries transient failures with exponential backoff. Per-participant
// errors in a free/busy response are surfaced as ErrCalendarUnavailable so
// the search can abort rather than trust a partial view of the group.
//
// Example usage:
//
//	ctx := context.Background()
//	client, err := calendar.NewClient(ctx)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	hours, err := client.WorkingHours(ctx)
//	if errors.Is(err, calendar.ErrNotConfigured) {
//	    hours = schedule.DefaultWorkingHours()
//	}
package calendar
