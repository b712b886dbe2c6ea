package logger

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"
	"time"

	"github.com/lmittmann/tint"
	"golang.org/x/term"
)

// ANSI codes used for the level column when writing to a terminal
const (
	codeReset  = "\033[0m"
	codeBlue   = "\033[34m"
	codeGreen  = "\033[32m"
	codeYellow = "\033[33m"
	codeRed    = "\033[31m"
)

// Custom log levels
const (
	LevelTrace  = slog.Level(-8)
	LevelDebug  = slog.LevelDebug
	LevelInfo   = slog.Level(-2)
	LevelNotice = slog.LevelInfo
	LevelWarn   = slog.LevelWarn
	LevelError  = slog.LevelError
)

// LevelVar allows dynamic changing of the log level
var LevelVar = new(slog.LevelVar)

func init() {
	LevelVar.Set(LevelNotice)
}

func SetLevel(level slog.Level) {
	LevelVar.Set(level)
}

// ParseLevel maps a level name from config or the environment to a level.
func ParseLevel(name string) (slog.Level, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "trace":
		return LevelTrace, nil
	case "debug":
		return LevelDebug, nil
	case "info", "verbose":
		return LevelInfo, nil
	case "", "notice":
		return LevelNotice, nil
	case "warn", "warning":
		return LevelWarn, nil
	case "error":
		return LevelError, nil
	}
	return LevelNotice, fmt.Errorf("unknown log level %q", name)
}

func levelLabel(level slog.Level, color bool) string {
	var label, code string
	switch level {
	case LevelTrace:
		label, code = "[TRACE ]", codeBlue
	case LevelDebug:
		label, code = "[DEBUG ]", codeBlue
	case LevelInfo:
		label, code = "[INFO  ]", codeBlue
	case LevelNotice:
		label, code = "[NOTICE]", codeGreen
	case LevelWarn:
		label, code = "[WARN  ]", codeYellow
	case LevelError:
		label, code = "[ERROR ]", codeRed
	default:
		return "[" + level.String() + "]"
	}
	if color {
		return code + label + codeReset + "  "
	}
	return label + "  "
}

// NewLogger returns a logger writing to w. Colors are enabled only when w is a terminal.
func NewLogger(w io.Writer) *slog.Logger {
	isTTY := false
	if f, ok := w.(*os.File); ok {
		isTTY = term.IsTerminal(int(f.Fd()))
	}

	replaceAttr := func(groups []string, a slog.Attr) slog.Attr {
		if a.Key == slog.LevelKey {
			a.Value = slog.StringValue(levelLabel(a.Value.Any().(slog.Level), isTTY))
		}
		return a
	}

	return slog.New(tint.NewHandler(w, &tint.Options{
		Level:       LevelVar,
		TimeFormat:  "2006-01-02 15:04:05",
		NoColor:     !isTTY,
		ReplaceAttr: replaceAttr,
	}))
}

// Internal helper to format and emit one record, splitting multi-line messages
func log(ctx context.Context, level slog.Level, msg string, args ...any) {
	h := slog.Default().Handler()
	if !h.Enabled(ctx, level) {
		return
	}

	if len(args) > 0 && strings.Contains(msg, "%") {
		msg = fmt.Sprintf(msg, args...)
		args = nil
	}

	now := time.Now()
	for i, line := range strings.Split(msg, "\n") {
		r := slog.NewRecord(now, level, line, 0)
		if i == 0 {
			r.Add(args...)
		}
		_ = h.Handle(ctx, r)
	}
}

func Trace(ctx context.Context, msg string, args ...any) {
	log(ctx, LevelTrace, msg, args...)
}

func Debug(ctx context.Context, msg string, args ...any) {
	log(ctx, LevelDebug, msg, args...)
}

func Info(ctx context.Context, msg string, args ...any) {
	log(ctx, LevelInfo, msg, args...)
}

func Notice(ctx context.Context, msg string, args ...any) {
	log(ctx, LevelNotice, msg, args...)
}

func Warn(ctx context.Context, msg string, args ...any) {
	log(ctx, LevelWarn, msg, args...)
}

func Error(ctx context.Context, msg string, args ...any) {
	log(ctx, LevelError, msg, args...)
}
