package session

import "fmt"

// DefaultLogCapacity bounds the message log when no capacity is configured.
const DefaultLogCapacity = 100

// LogBuffer keeps the most recent messages, evicting the oldest first.
type LogBuffer struct {
	capacity int
	lines    []string
	total    int
}

// NewLogBuffer constructs a buffer holding at most capacity lines.
func NewLogBuffer(capacity int) *LogBuffer {
	if capacity <= 0 {
		capacity = DefaultLogCapacity
	}
	return &LogBuffer{capacity: capacity}
}

// Append adds line, evicting the oldest line when full.
func (b *LogBuffer) Append(line string) {
	if len(b.lines) == b.capacity {
		copy(b.lines, b.lines[1:])
		b.lines = b.lines[:b.capacity-1]
	}
	b.lines = append(b.lines, line)
	b.total++
}

// Logf formats and appends a message.
func (b *LogBuffer) Logf(format string, args ...any) {
	b.Append(fmt.Sprintf(format, args...))
}

// Clear drops every line.
func (b *LogBuffer) Clear() {
	b.lines = b.lines[:0]
}

// Len returns the number of buffered lines.
func (b *LogBuffer) Len() int { return len(b.lines) }

// Total counts every line ever appended. It is not reset by Clear.
func (b *LogBuffer) Total() int { return b.total }

// Lines returns a copy of the buffered lines, oldest first.
func (b *LogBuffer) Lines() []string {
	return append([]string(nil), b.lines...)
}
