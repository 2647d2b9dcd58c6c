// Package tuilog is the lightbox's file logger. The terminal belongs to the
// TUI while it runs, so diagnostics go to a file named by --log or
// LIGHTBOX_LOG_FILE, or nowhere at all.
package tuilog

import (
	"fmt"
	"io"
	"os"
	"strings"
	"sync"
	"time"
)

// Environment variables consulted when no flag is given.
const (
	EnvLogFile  = "LIGHTBOX_LOG_FILE"
	EnvLogLevel = "LIGHTBOX_LOG_LEVEL"
)

// Level orders log severities.
type Level int

const (
	LevelDebug Level = iota
	LevelInfo
	LevelWarn
	LevelError
)

func (l Level) String() string {
	switch l {
	case LevelDebug:
		return "DEBUG"
	case LevelInfo:
		return "INFO"
	case LevelWarn:
		return "WARN"
	default:
		return "ERROR"
	}
}

// ParseLevel accepts debug, info, warn or error in any case.
func ParseLevel(s string) (Level, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "debug":
		return LevelDebug, nil
	case "info", "":
		return LevelInfo, nil
	case "warn", "warning":
		return LevelWarn, nil
	case "error":
		return LevelError, nil
	}
	return LevelInfo, fmt.Errorf("unknown log level %q", s)
}

// Logger writes timestamped key=value lines. The zero value discards
// everything.
type Logger struct {
	mu    sync.Mutex
	out   io.Writer
	close func() error
	level Level
}

// Log is the process-wide logger.
var Log = &Logger{level: LevelInfo}

// Init points the global logger at path, falling back to LIGHTBOX_LOG_FILE.
// With neither set logging stays disabled.
func Init(path string, level Level) error {
	if path == "" {
		path = os.Getenv(EnvLogFile)
	}
	if path == "" {
		Log.Close()
		Log.SetOutput(nil)
		Log.SetLevel(level)
		return nil
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return fmt.Errorf("open log file: %w", err)
	}
	Log.mu.Lock()
	if Log.close != nil {
		_ = Log.close()
	}
	Log.out, Log.close, Log.level = f, f.Close, level
	Log.mu.Unlock()
	Log.Info("logger initialized", "path", path, "level", level)
	return nil
}

// SetOutput redirects the logger. A nil writer disables it.
func (l *Logger) SetOutput(w io.Writer) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.out = w
}

// SetLevel drops messages below level.
func (l *Logger) SetLevel(level Level) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.level = level
}

// Close closes the log file, if one was opened by Init.
func (l *Logger) Close() error {
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.close == nil {
		return nil
	}
	err := l.close()
	l.out, l.close = nil, nil
	return err
}

// Enabled reports whether anything is written at all.
func (l *Logger) Enabled() bool {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.out != nil
}

// Writer exposes the destination for libraries that want an io.Writer,
// such as the HTTP request logger.
func (l *Logger) Writer() io.Writer {
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.out == nil {
		return io.Discard
	}
	return l.out
}

func (l *Logger) log(level Level, msg string, keyvals ...any) {
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.out == nil || level < l.level {
		return
	}

	var b strings.Builder
	b.WriteString(time.Now().Format("15:04:05.000"))
	fmt.Fprintf(&b, " [%s] %s", level, msg)
	for i := 0; i+1 < len(keyvals); i += 2 {
		fmt.Fprintf(&b, " %v=%v", keyvals[i], keyvals[i+1])
	}
	if len(keyvals)%2 == 1 {
		fmt.Fprintf(&b, " %v=<missing>", keyvals[len(keyvals)-1])
	}
	b.WriteByte('\n')
	_, _ = io.WriteString(l.out, b.String())
}

func (l *Logger) Debug(msg string, keyvals ...any) { l.log(LevelDebug, msg, keyvals...) }
func (l *Logger) Info(msg string, keyvals ...any)  { l.log(LevelInfo, msg, keyvals...) }
func (l *Logger) Warn(msg string, keyvals ...any)  { l.log(LevelWarn, msg, keyvals...) }
func (l *Logger) Error(msg string, keyvals ...any) { l.log(LevelError, msg, keyvals...) }

// Timed logs the duration of an operation at debug level:
//
//	defer tuilog.Log.Timed("scan")()
func (l *Logger) Timed(operation string, keyvals ...any) func() {
	start := time.Now()
	return func() {
		l.Debug(operation, append(keyvals, "duration", time.Since(start))...)
	}
}
