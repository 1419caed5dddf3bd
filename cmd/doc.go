// Package cmd implements the command-line interface for mailops.
//
// This package provides the following commands:
//   - send: Send an email or a reply, or save it as a draft
//   - notify-designer: Email the designer about an instant print booking
//   - add-event: Put a booking on the administration or main calendar
//   - capture: Fetch emails matching a Gmail search and cache them
//   - auth: Authorize an account and store its credential
//   - version: Display version information
//
// Every outbound command previews what it is about to do and waits for
// confirmation unless --yes is given. Results are printed as text or, with
// --json, as a single JSON object; the exit status is 0 only on success.
package cmd
