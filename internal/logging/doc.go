// Package logging provides structured logging utilities for mailops.
//
// All packages log through log/slog using the attribute helpers defined here
// so keys stay consistent (operation, service, command, run_id, ...).
//
// # Usage Patterns
//
//	logger := logging.WithOperation(slog.Default(), "gmail.send")
//	logger.Info("message sent", logging.Status(logging.StatusSuccess))
//
// # Security Considerations
//
//   - Account and recipient emails are hashed with UserHash
//   - Addresses that must stay correlatable by organisation are reduced to
//     their domain with ExtractDomain
//   - Tokens are never logged
package logging
