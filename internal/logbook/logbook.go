package logbook

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
)

// Level represents the severity of a journal entry.
type Level string

const (
	LevelInfo  Level = "INFO"
	LevelWarn  Level = "WARN"
	LevelError Level = "ERROR"
)

// DefaultCapacity bounds how many entries are kept in memory.
const DefaultCapacity = 256

// Logbook journals command outcomes for one session. Recent entries are kept
// in a ring buffer; when a path is set every entry is also appended to disk.
type Logbook struct {
	path    string
	session string
	now     func() time.Time

	mu      sync.Mutex
	entries []string
	start   int
	total   int
}

// New creates a logbook. An empty path keeps the journal in memory only.
func New(path string) (*Logbook, error) {
	path = strings.TrimSpace(path)
	if path != "" {
		if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
			return nil, fmt.Errorf("logbook: ensure dir: %w", err)
		}
	}
	return &Logbook{
		path:    path,
		session: uuid.NewString(),
		now:     time.Now,
		entries: make([]string, 0, DefaultCapacity),
	}, nil
}

// Path returns the file backing this logbook, if any.
func (l *Logbook) Path() string {
	if l == nil {
		return ""
	}
	return l.path
}

// Session identifies the process run that wrote the entries.
func (l *Logbook) Session() string {
	if l == nil {
		return ""
	}
	return l.session
}

// Append records a single entry.
func (l *Logbook) Append(level Level, message string) {
	if l == nil {
		return
	}
	l.mu.Lock()
	defer l.mu.Unlock()
	line := fmt.Sprintf("%s %-5s %s",
		l.now().UTC().Format(time.RFC3339),
		string(level),
		strings.TrimSpace(message),
	)
	l.push(line)
	if l.path == "" {
		return
	}
	file, err := os.OpenFile(l.path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return
	}
	defer file.Close()
	_, _ = fmt.Fprintf(file, "%s %s\n", l.session[:8], line)
}

func (l *Logbook) push(line string) {
	l.total++
	if len(l.entries) < cap(l.entries) {
		l.entries = append(l.entries, line)
		return
	}
	l.entries[l.start] = line
	l.start = (l.start + 1) % len(l.entries)
}

// Tail returns up to maxLines of the most recent entries, oldest first,
// along with the number of entries appended this session.
func (l *Logbook) Tail(maxLines int) ([]string, int) {
	if l == nil {
		return nil, 0
	}
	l.mu.Lock()
	defer l.mu.Unlock()
	if maxLines <= 0 || len(l.entries) == 0 {
		return nil, l.total
	}
	if maxLines > len(l.entries) {
		maxLines = len(l.entries)
	}
	lines := make([]string, 0, maxLines)
	for i := len(l.entries) - maxLines; i < len(l.entries); i++ {
		lines = append(lines, l.entries[(l.start+i)%len(l.entries)])
	}
	return lines, l.total
}

// Info appends an informational entry.
func (l *Logbook) Info(format string, args ...any) {
	l.Append(LevelInfo, fmt.Sprintf(format, args...))
}

// Warn appends a warning entry.
func (l *Logbook) Warn(format string, args ...any) {
	l.Append(LevelWarn, fmt.Sprintf(format, args...))
}

// Error appends an error entry.
func (l *Logbook) Error(format string, args ...any) {
	l.Append(LevelError, fmt.Sprintf(format, args...))
}
