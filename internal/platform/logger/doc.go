// Package logger sets up the process-wide JSON slog logger and carries
// request-scoped loggers (tagged with trace IDs) through context.Context.
package logger
