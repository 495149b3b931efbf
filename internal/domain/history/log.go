// Package history implements the append-only audit trail carried by every
// post state.
//
// A Log is a persistent list: Add never touches the receiver, it returns a
// new Log that shares all earlier entries with it. Two logs derived from the
// same ancestor therefore never observe each other's entries, and a Log value
// may be copied freely.
package history

import (
	"fmt"
	"strings"
)

// entry is one immutable node of the list; prev points towards the oldest entry
type entry struct {
	prev  *entry
	text  string
	index int
}

// Log is an ordered, append-only sequence of event descriptions.
// The zero value is an empty log.
type Log struct {
	last *entry
}

// New returns an empty log
func New() Log {
	return Log{}
}

// Add returns a new log with event appended after all existing entries
func (l Log) Add(event string) Log {
	return Log{last: &entry{prev: l.last, text: event, index: l.Len()}}
}

// Len returns the number of entries
func (l Log) Len() int {
	if l.last == nil {
		return 0
	}
	return l.last.index + 1
}

// Entries returns the entries in creation order. The returned slice is a
// fresh copy.
func (l Log) Entries() []string {
	out := make([]string, l.Len())
	for e := l.last; e != nil; e = e.prev {
		out[e.index] = e.text
	}
	return out
}

// Last returns the most recent entry, or false for an empty log
func (l Log) Last() (string, bool) {
	if l.last == nil {
		return "", false
	}
	return l.last.text, true
}

// Render formats the log as "<index> -> <entry>" lines joined by newlines,
// starting at index 0. An empty log renders as "".
func (l Log) Render() string {
	entries := l.Entries()
	lines := make([]string, len(entries))
	for i, text := range entries {
		lines[i] = fmt.Sprintf("%d -> %s", i, text)
	}
	return strings.Join(lines, "\n")
}

// String implements fmt.Stringer
func (l Log) String() string {
	return l.Render()
}
