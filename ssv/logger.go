package ssv

import "log/slog"

// noopLogger discards everything; the repository logs only when the caller
// opts in via WithLogger.
func noopLogger() *slog.Logger {
	return slog.New(slog.DiscardHandler)
}
