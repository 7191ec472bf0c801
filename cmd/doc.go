// Package cmd implements the command-line interface for slotfinder.
//
// This package provides the following commands:
//   - find: Find common free meeting slots for a group of attendees
//   - auth: Authorize access to Google Calendar for an account
//   - serve: Start the MCP server to provide slot-finding tools for AI assistants
//   - version: Display version information
//   - generate-docs: Generate markdown documentation for all MCP tools
//
// The find command is the default command when no subcommand is specified.
package cmd
