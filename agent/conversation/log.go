package conversation

import (
	"sync"

	contractx "github.com/worapol/shop-multiagent/agent/contract"
)

// Log is the append-only transcript shared by both assistant roles. Entries
// are never mutated, removed, or reordered within a session. Appends may come
// from concurrent tool-result goroutines, so the slice is guarded.
type Log struct {
	mu      sync.Mutex
	entries []contractx.Message
}

func NewLog() *Log {
	return &Log{}
}

// Append adds a message to the end of the transcript.
func (l *Log) Append(msg contractx.Message) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.entries = append(l.entries, msg)
}

// Snapshot returns a copy of the ordered transcript for use as model input.
func (l *Log) Snapshot() []contractx.Message {
	l.mu.Lock()
	defer l.mu.Unlock()
	out := make([]contractx.Message, len(l.entries))
	copy(out, l.entries)
	return out
}

// Len reports the number of turns recorded so far.
func (l *Log) Len() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.entries)
}

// Last returns the most recent turn, if any.
func (l *Log) Last() (contractx.Message, bool) {
	l.mu.Lock()
	defer l.mu.Unlock()
	if len(l.entries) == 0 {
		return contractx.Message{}, false
	}
	return l.entries[len(l.entries)-1], true
}
