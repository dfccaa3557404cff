// Package logging provides structured logging for the provisioner.
//
// It wraps the standard library slog package with shared defaults: JSON
// output to stderr, module and version attributes on every record, log level
// taken from the LOG_LEVEL environment variable (case-insensitive, defaults
// to INFO), and source location tracking when the level is DEBUG.
//
// Set the default logger early in main:
//
//	logging.SetDefaultStructuredLogger("promprov", version)
//	slog.Info("starting run", "specPath", path)
package logging
