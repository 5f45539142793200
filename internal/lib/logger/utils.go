package logger

import (
	"io"
	"log"
	"log/slog"
	"moviedeck/proj/internal/lib/logger/handlers/slogpretty"
	"os"
	"strings"
)

func SetupLogger(debug bool) *slog.Logger {
	return New(os.Stdout, debug)
}

// New builds the application logger: colourised lines in debug mode,
// JSON at info level otherwise.
func New(w io.Writer, debug bool) *slog.Logger {
	var handler slog.Handler
	if debug {
		handler = slogpretty.NewPrettyHandler(w, &slog.HandlerOptions{Level: slog.LevelDebug})
	} else {
		handler = slog.NewJSONHandler(w, &slog.HandlerOptions{Level: slog.LevelInfo})
	}
	return slog.New(handler)
}

type out struct {
	stdLog *slog.Logger
}

func (l out) Write(p []byte) (n int, err error) {
	l.stdLog.Error(strings.TrimRight(string(p), "\n"))
	return len(p), nil
}

// LogAdapter lets http.Server report its internal errors through slog.
func LogAdapter(logger *slog.Logger) *log.Logger {
	return log.New(&out{logger}, "", 0)
}
