package engine

import "time"

// LogEntry is one line of the rolling activity feed shown in the terminal.
type LogEntry struct {
	Time    time.Time `json:"time"`
	Message string    `json:"message"`
}

// logRing keeps the most recent activity lines, newest last. Not safe for
// concurrent use; the engine mutex guards it.
type logRing struct {
	entries  []LogEntry
	capacity int
}

func newLogRing(capacity int) *logRing {
	return &logRing{capacity: capacity}
}

func (r *logRing) add(at time.Time, message string) {
	if len(r.entries) >= r.capacity {
		copy(r.entries, r.entries[1:])
		r.entries = r.entries[:len(r.entries)-1]
	}
	r.entries = append(r.entries, LogEntry{Time: at, Message: message})
}

func (r *logRing) list() []LogEntry {
	out := make([]LogEntry, len(r.entries))
	copy(out, r.entries)
	return out
}
