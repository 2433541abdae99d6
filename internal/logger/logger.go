// Package logger configures the process-wide slog logger: JSON lines to a
// rotating file, plus an in-memory record of recent warnings and errors that
// the editor status bar can show.
package logger

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"gopkg.in/natefinch/lumberjack.v2"
)

// Entry is a captured WARN or ERROR record.
type Entry struct {
	Time    time.Time
	Level   slog.Level
	Message string
	Err     string
}

// Format renders the entry as a single status line.
func (e Entry) Format() string {
	s := fmt.Sprintf("%s %-5s %s", e.Time.Format("15:04:05"), e.Level.String(), e.Message)
	if e.Err != "" {
		s += ": " + e.Err
	}
	return s
}

type ring struct {
	mu      sync.RWMutex
	entries []Entry
	head    int
	count   int

	warns  int
	errors int
}

func newRing(size int) *ring {
	return &ring{entries: make([]Entry, size)}
}

func (r *ring) add(e Entry) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.entries[r.head] = e
	r.head = (r.head + 1) % len(r.entries)
	if r.count < len(r.entries) {
		r.count++
	}
	if e.Level >= slog.LevelError {
		r.errors++
	} else {
		r.warns++
	}
}

// all returns entries oldest first.
func (r *ring) all() []Entry {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]Entry, r.count)
	size := len(r.entries)
	for i := range out {
		out[i] = r.entries[(r.head-r.count+i+size)%size]
	}
	return out
}

func (r *ring) counts() (warn, err int) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.warns, r.errors
}

func (r *ring) reset() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.warns, r.errors = 0, 0
}

// recordingHandler keeps WARN and ERROR records in a ring before passing them
// on.
type recordingHandler struct {
	inner slog.Handler
	ring  *ring
}

func (h *recordingHandler) Enabled(ctx context.Context, level slog.Level) bool {
	return h.inner.Enabled(ctx, level)
}

func (h *recordingHandler) Handle(ctx context.Context, r slog.Record) error {
	if r.Level >= slog.LevelWarn {
		e := Entry{Time: r.Time, Level: r.Level, Message: r.Message}
		r.Attrs(func(a slog.Attr) bool {
			if a.Key == "error" {
				e.Err = a.Value.String()
				return false
			}
			return true
		})
		h.ring.add(e)
	}
	return h.inner.Handle(ctx, r)
}

func (h *recordingHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	return &recordingHandler{inner: h.inner.WithAttrs(attrs), ring: h.ring}
}

func (h *recordingHandler) WithGroup(name string) slog.Handler {
	return &recordingHandler{inner: h.inner.WithGroup(name), ring: h.ring}
}

const recentSize = 100

var (
	mu     sync.Mutex
	log    *slog.Logger
	writer *lumberjack.Logger
	recent *ring
	// Path is the file the logger writes to after Init.
	Path string
)

// ParseLevel maps debug, info, warn and error (any case) to a slog level.
func ParseLevel(s string) (slog.Level, error) {
	var l slog.Level
	if err := l.UnmarshalText([]byte(strings.TrimSpace(s))); err != nil {
		return slog.LevelInfo, fmt.Errorf("invalid log level %q", s)
	}
	return l, nil
}

// DefaultPath is ~/.config/orusplay/orusplay.log, or the same name under the
// temp dir when there is no home.
func DefaultPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		home = os.TempDir()
	}
	return filepath.Join(home, ".config", "orusplay", "orusplay.log")
}

// Init installs the logger as slog's default. An empty path means
// DefaultPath.
func Init(level slog.Level, path string) *slog.Logger {
	mu.Lock()
	defer mu.Unlock()

	if path == "" {
		path = DefaultPath()
	}
	_ = os.MkdirAll(filepath.Dir(path), 0o755)
	Path = path

	if writer != nil {
		_ = writer.Close()
	}
	writer = &lumberjack.Logger{
		Filename:   path,
		MaxSize:    10, // MB
		MaxBackups: 3,
		MaxAge:     7, // days
		Compress:   true,
	}
	recent = newRing(recentSize)

	h := &recordingHandler{
		inner: slog.NewJSONHandler(writer, &slog.HandlerOptions{Level: level}),
		ring:  recent,
	}
	log = slog.New(h)
	slog.SetDefault(log)
	return log
}

// Close flushes and closes the log file.
func Close() {
	mu.Lock()
	defer mu.Unlock()
	if writer != nil {
		_ = writer.Close()
		writer = nil
	}
}

// L returns the installed logger, or slog.Default before Init.
func L() *slog.Logger {
	mu.Lock()
	defer mu.Unlock()
	if log != nil {
		return log
	}
	return slog.Default()
}

func Debug(msg string, args ...any) { L().Debug(msg, args...) }
func Info(msg string, args ...any)  { L().Info(msg, args...) }
func Warn(msg string, args ...any)  { L().Warn(msg, args...) }
func Error(msg string, args ...any) { L().Error(msg, args...) }

// With returns a logger carrying args on every record.
func With(args ...any) *slog.Logger { return L().With(args...) }

// Recent returns the captured WARN and ERROR entries, oldest first.
func Recent() []Entry {
	mu.Lock()
	r := recent
	mu.Unlock()
	if r == nil {
		return nil
	}
	return r.all()
}

// Counts returns how many warnings and errors were logged since Init or the
// last ClearCounts.
func Counts() (warn, err int) {
	mu.Lock()
	r := recent
	mu.Unlock()
	if r == nil {
		return 0, 0
	}
	return r.counts()
}

func ClearCounts() {
	mu.Lock()
	r := recent
	mu.Unlock()
	if r != nil {
		r.reset()
	}
}
