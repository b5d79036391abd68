// Package report implements the engine's operation log.
//
// The log is the engine's only output channel besides filesystem side
// effects: an append-only, ordered sequence of timestamped entries that the
// presentation layer renders as it is produced. Entries are never dropped;
// every recoverable condition during a run lands here.
package report

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/danieljhkim/foldmerge/internal/clock"
	"github.com/danieljhkim/foldmerge/internal/fsops"
)

// Severity classifies a log entry.
type Severity string

const (
	SeverityInfo  Severity = "INFO"
	SeverityWarn  Severity = "WARN"
	SeverityError Severity = "ERROR"
)

// Entry is a single operation-log record.
type Entry struct {
	Time     time.Time
	Severity Severity
	Message  string
}

// String formats the entry the way the exported log file does.
func (e Entry) String() string {
	return fmt.Sprintf("%s %-5s %s", e.Time.Format("2006-01-02 15:04:05"), e.Severity, e.Message)
}

// Sink receives each entry as it is appended. The engine is single-threaded
// and calls the sink inline, so sinks should not block.
type Sink func(Entry)

// Log is an append-only ordered operation log for one run.
type Log struct {
	entries []Entry
	clock   clock.Clock
	sink    Sink
}

// NewLog creates an empty Log. sink may be nil.
func NewLog(clk clock.Clock, sink Sink) *Log {
	return &Log{clock: clk, sink: sink}
}

// Infof appends an INFO entry.
func (l *Log) Infof(format string, args ...interface{}) {
	l.append(SeverityInfo, fmt.Sprintf(format, args...))
}

// Warnf appends a WARN entry.
func (l *Log) Warnf(format string, args ...interface{}) {
	l.append(SeverityWarn, fmt.Sprintf(format, args...))
}

// Errorf appends an ERROR entry.
func (l *Log) Errorf(format string, args ...interface{}) {
	l.append(SeverityError, fmt.Sprintf(format, args...))
}

func (l *Log) append(sev Severity, msg string) {
	e := Entry{Time: l.clock.Now(), Severity: sev, Message: msg}
	l.entries = append(l.entries, e)
	if l.sink != nil {
		l.sink(e)
	}
}

// Entries returns the entries in append order.
func (l *Log) Entries() []Entry {
	return l.entries
}

// CountSeverity returns the number of entries with the given severity.
func (l *Log) CountSeverity(s Severity) int {
	n := 0
	for _, e := range l.entries {
		if e.Severity == s {
			n++
		}
	}
	return n
}

// Export writes the log as plain text, one entry per line, atomically.
func (l *Log) Export(fs fsops.FS, path string) error {
	var b strings.Builder
	for _, e := range l.entries {
		b.WriteString(e.String())
		b.WriteString("\n")
	}
	if err := fs.AtomicWrite(path, []byte(b.String()), os.FileMode(0644)); err != nil {
		return fmt.Errorf("failed to export log: %w", err)
	}
	return nil
}
