// Package config holds the process-wide settings for mailops.
//
// Calendar ids, sender addresses, reminder offsets and file locations used to
// be constants scattered over the individual tools. They now live in a single
// Config value that is built once by the root command and passed explicitly
// into every workflow, so tests can substitute fake destinations.
//
// Values come from three layers, last one wins:
//   - built-in defaults (Default)
//   - an optional dotenv file (--env-file)
//   - MAILOPS_* and GOOGLE_* environment variables
package config
