package logger

import (
	"log/slog"
	"os"
)

var std = slog.New(slog.NewJSONHandler(os.Stdout, nil))

// Init configures the process-wide logger. Development gets readable text
// output with debug enabled, everything else JSON at info level.
func Init(environment string) {
	level := slog.LevelInfo
	if environment == "development" {
		level = slog.LevelDebug
	}

	opts := &slog.HandlerOptions{Level: level}

	if environment == "development" {
		std = slog.New(slog.NewTextHandler(os.Stdout, opts))
	} else {
		std = slog.New(slog.NewJSONHandler(os.Stdout, opts))
	}
}

func Debug(msg string, args ...any) {
	std.Debug(msg, normalize(args)...)
}

func Info(msg string, args ...any) {
	std.Info(msg, normalize(args)...)
}

func Warn(msg string, args ...any) {
	std.Warn(msg, normalize(args)...)
}

func Error(msg string, args ...any) {
	std.Error(msg, normalize(args)...)
}

func Fatal(msg string, args ...any) {
	std.Error(msg, normalize(args)...)
	os.Exit(1)
}

// normalize lets call sites pass a bare error as the only argument.
func normalize(args []any) []any {
	if len(args) == 1 {
		if err, ok := args[0].(error); ok {
			return []any{"error", err}
		}
	}
	return args
}
