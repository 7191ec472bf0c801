package google

// DefaultOAuthScopes are the Google OAuth scopes slotfinder needs.
//
// Both scopes are read-only: free/busy lookups require calendar read
// access, and the user's working-hours setting lives behind the calendar
// settings scope.
var DefaultOAuthScopes = []string{
	"https://www.googleapis.com/auth/calendar.readonly",
	"https://www.googleapis.com/auth/calendar.settings.readonly",
}
