// Package logging builds slog loggers whose records pick up attributes
// carried by the context.
package logging
