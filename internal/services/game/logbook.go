package game

import "fmt"

// logbook keeps the most recent player-facing messages, newest first
type logbook struct {
	entries  []string
	capacity int
}

func newLogbook(capacity int) *logbook {
	return &logbook{capacity: max(capacity, 1)}
}

func (l *logbook) add(format string, args ...any) {
	msg := fmt.Sprintf(format, args...)
	l.entries = append([]string{msg}, l.entries...)
	if len(l.entries) > l.capacity {
		l.entries = l.entries[:l.capacity]
	}
}

func (l *logbook) snapshot() []string {
	out := make([]string, len(l.entries))
	copy(out, l.entries)
	return out
}
