// Package logging provides slog attribute helpers used across slotfinder.
//
// The helpers enforce consistent attribute names and keep personally
// identifiable information out of log output: attendee email addresses are
// only ever logged as short hashes or as their domain part.
package logging
