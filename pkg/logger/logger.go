package logger

import (
	"log/slog"
	"os"
)

var log *slog.Logger = slog.Default()

// Init sets up the global logger. Production gets JSON output, everything
// else gets the readable text handler.
func Init(environment string) {
	opts := &slog.HandlerOptions{Level: slog.LevelInfo}

	var handler slog.Handler
	if environment == "production" {
		handler = slog.NewJSONHandler(os.Stdout, opts)
	} else {
		opts.Level = slog.LevelDebug
		handler = slog.NewTextHandler(os.Stdout, opts)
	}

	log = slog.New(handler)
}

func Info(msg string, args ...any) {
	log.Info(msg, normalize(args)...)
}

func Warn(msg string, args ...any) {
	log.Warn(msg, normalize(args)...)
}

func Error(msg string, args ...any) {
	log.Error(msg, normalize(args)...)
}

func Fatal(msg string, args ...any) {
	log.Error(msg, normalize(args)...)
	os.Exit(1)
}

// normalize tolerates call sites that pass a bare error (or any single
// value) instead of key-value pairs.
func normalize(args []any) []any {
	if len(args) == 1 {
		return []any{slog.Any("error", args[0])}
	}

	return args
}
