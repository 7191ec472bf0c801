// Package slot_tools provides MCP tools for finding common meeting slots
// across multiple attendees' Google calendars.
//
// Available tools:
//
//   - slots_find - Find common free slots for a group of attendees within
//     the user's working hours
//   - slots_working_hours - Show the working hours the search uses
//
// All tools support multi-account authentication via the "account" parameter.
//
// Example usage:
//
//	# Find three 60-minute slots for two attendees
//	slots_find(
//	    attendees="alice@example.com,bob@example.com",
//	    duration_minutes=60
//	)
//
//	# Search a shorter horizon from a specific day
//	slots_find(
//	    attendees="alice@example.com",
//	    start="2026-09-01",
//	    horizon_days=7,
//	    max_slots=1
//	)
package slot_tools
