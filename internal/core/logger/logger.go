// Package logger provides the structured logging engine for QuantumCalc.
// Uses log/slog with a file sink, an optional stderr sink and an append-only
// audit log of completed runs.
package logger

import (
	"encoding/json"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"time"
)

// Logger wraps slog.Logger with QuantumCalc-specific utilities.
type Logger struct {
	*slog.Logger
	auditW io.Writer // append-only audit log writer (nil = disabled)
}

// Options controls Init.
type Options struct {
	Level   string // debug | info | warn | error
	Format  string // json | text
	LogFile string // empty disables the file sink
	Home    string // directory for audit.log; empty disables auditing
	Debug   bool   // forces debug level, source info and the stderr sink
}

// ParseLevel maps a config level string to a slog.Level. Unknown values map to info.
func ParseLevel(level string) slog.Level {
	switch level {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

// Init builds the process logger and installs it as the slog default.
// stderr is only a sink in debug mode so report output on stdout/stderr stays clean.
func Init(opts Options) (*Logger, error) {
	lvl := ParseLevel(opts.Level)
	if opts.Debug {
		lvl = slog.LevelDebug
	}

	var writers []io.Writer
	if opts.Debug {
		writers = append(writers, os.Stderr)
	}

	if opts.LogFile != "" {
		if err := os.MkdirAll(filepath.Dir(opts.LogFile), 0750); err != nil {
			return nil, err
		}
		f, err := os.OpenFile(opts.LogFile, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0640)
		if err != nil {
			return nil, err
		}
		writers = append(writers, f)
	}

	out := io.Discard
	if len(writers) > 0 {
		out = io.MultiWriter(writers...)
	}

	base := slog.New(newHandler(out, opts.Format, &slog.HandlerOptions{Level: lvl, AddSource: opts.Debug}))
	slog.SetDefault(base)

	var auditW io.Writer
	if opts.Home != "" {
		auditPath := filepath.Join(opts.Home, "audit.log")
		if af, err := os.OpenFile(auditPath, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0640); err == nil {
			auditW = af
		}
	}

	return &Logger{Logger: base, auditW: auditW}, nil
}

// New returns a Logger writing to w, without audit output.
func New(w io.Writer, format string, level slog.Level) *Logger {
	return &Logger{Logger: slog.New(newHandler(w, format, &slog.HandlerOptions{Level: level}))}
}

// Nop returns a Logger that discards everything.
func Nop() *Logger {
	return New(io.Discard, "text", slog.LevelError)
}

// WithAudit returns a copy of l whose audit entries go to w.
func (l *Logger) WithAudit(w io.Writer) *Logger {
	return &Logger{Logger: l.Logger, auditW: w}
}

func newHandler(w io.Writer, format string, opts *slog.HandlerOptions) slog.Handler {
	if format == "json" {
		return slog.NewJSONHandler(w, opts)
	}
	return slog.NewTextHandler(w, opts)
}

// ─────────────────────────────────────────────────────────────────────────────
// Audit logging
// ─────────────────────────────────────────────────────────────────────────────

// AuditEntry represents a single audit log event.
type AuditEntry struct {
	Timestamp time.Time `json:"ts"`
	Op        string    `json:"op"`
	User      string    `json:"user"`
	Suite     string    `json:"suite,omitempty"`
	RunID     string    `json:"run_id,omitempty"`
	Result    string    `json:"result"` // success | failure
}

// Audit writes an append-only audit log entry.
func (l *Logger) Audit(entry AuditEntry) {
	l.Info("audit",
		"op", entry.Op,
		"user", entry.User,
		"suite", entry.Suite,
		"run_id", entry.RunID,
		"result", entry.Result,
	)
	if l.auditW == nil {
		return
	}
	entry.Timestamp = entry.Timestamp.UTC()
	line, err := json.Marshal(entry)
	if err != nil {
		return
	}
	_, _ = l.auditW.Write(append(line, '\n'))
}

// CurrentUser returns the login name recorded in audit entries.
func CurrentUser() string {
	for _, k := range []string{"USER", "USERNAME"} {
		if u := os.Getenv(k); u != "" {
			return u
		}
	}
	return "unknown"
}
