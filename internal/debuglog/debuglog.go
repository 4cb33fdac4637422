// Package debuglog holds the operator-facing diagnostic log: a bounded
// ring of timestamped messages that is only populated while diagnostic
// mode is enabled. It is separate from the process log so operators can
// inspect upstream trouble without tailing server output.
package debuglog

import (
	"fmt"
	"sync"
	"time"
)

// maxEntries bounds the ring; the oldest entries are discarded first.
const maxEntries = 100

// Entry is one diagnostic log line.
type Entry struct {
	Time    time.Time `json:"time"`
	Message string    `json:"message"`
}

// Log is a mutex-guarded bounded ring of diagnostic entries.
type Log struct {
	mu      sync.Mutex
	enabled bool
	entries []Entry
}

func New() *Log {
	return &Log{}
}

// SetEnabled turns diagnostic mode on or off.
func (l *Log) SetEnabled(on bool) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.enabled = on
}

func (l *Log) Enabled() bool {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.enabled
}

// Printf appends a formatted message when diagnostic mode is enabled.
// It is a no-op otherwise.
func (l *Log) Printf(format string, args ...any) {
	l.mu.Lock()
	defer l.mu.Unlock()
	if !l.enabled {
		return
	}
	l.entries = append(l.entries, Entry{
		Time:    time.Now(),
		Message: fmt.Sprintf(format, args...),
	})
	if len(l.entries) > maxEntries {
		l.entries = l.entries[len(l.entries)-maxEntries:]
	}
}

// Entries returns a copy of the current ring contents, oldest first.
func (l *Log) Entries() []Entry {
	l.mu.Lock()
	defer l.mu.Unlock()
	out := make([]Entry, len(l.entries))
	copy(out, l.entries)
	return out
}

func (l *Log) Clear() {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.entries = nil
}
