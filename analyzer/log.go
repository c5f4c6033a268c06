package analyzer

import (
	"context"
	"log/slog"
)

// logger wraps slog.Logger with nil-safe helpers.
type logger struct {
	l *slog.Logger
}

func (l logger) log(level slog.Level, msg string, attrs ...slog.Attr) {
	ctx := context.Background()
	if l.l != nil && l.l.Enabled(ctx, level) {
		l.l.LogAttrs(ctx, level, msg, attrs...)
	}
}

func (l logger) debug(msg string, attrs ...slog.Attr) {
	l.log(slog.LevelDebug, msg, attrs...)
}
