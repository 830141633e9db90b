// Package history records admin mutations in a bounded in-memory log.
package history

import (
	"sync"
	"time"
)

const DefaultCapacity = 200

type Entry struct {
	At       time.Time `json:"at"`
	Kind     string    `json:"kind"`
	Action   string    `json:"action"`
	EntityID int       `json:"entityId"`
	Name     string    `json:"name"`
	Actor    string    `json:"actor,omitempty"`
}

// Log is safe for concurrent use. Once full, the oldest entry is dropped.
type Log struct {
	mu      sync.Mutex
	entries []Entry // ring buffer
	next    int
	full    bool
	now     func() time.Time
}

func New(capacity int) *Log {
	if capacity <= 0 {
		capacity = DefaultCapacity
	}
	return &Log{entries: make([]Entry, capacity), now: time.Now}
}

func (l *Log) Add(e Entry) {
	if e.At.IsZero() {
		e.At = l.now().UTC()
	}

	l.mu.Lock()
	defer l.mu.Unlock()
	l.entries[l.next] = e
	l.next = (l.next + 1) % len(l.entries)
	if l.next == 0 {
		l.full = true
	}
}

// Recent returns up to limit entries, newest first. limit <= 0 means all.
func (l *Log) Recent(limit int) []Entry {
	l.mu.Lock()
	defer l.mu.Unlock()

	n := l.next
	if l.full {
		n = len(l.entries)
	}
	if limit <= 0 || limit > n {
		limit = n
	}

	out := make([]Entry, 0, limit)
	for i := 1; i <= limit; i++ {
		idx := (l.next - i + len(l.entries)) % len(l.entries)
		out = append(out, l.entries[idx])
	}
	return out
}

func (l *Log) Len() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.full {
		return len(l.entries)
	}
	return l.next
}
