// Package history keeps the session's conversation log. The log grows for
// the whole session; only a bounded window of it ever reaches a prompt.
package history

import (
	"sync"

	"docchat/internal/domain"
)

// Log is an append-only record of conversation turns, in chronological
// order. Safe for concurrent use.
type Log struct {
	mu    sync.RWMutex
	turns []domain.Turn
}

func NewLog() *Log { return &Log{} }

func (l *Log) Append(turns ...domain.Turn) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.turns = append(l.turns, turns...)
}

// All returns a snapshot of the full log, oldest first.
func (l *Log) All() []domain.Turn {
	l.mu.RLock()
	defer l.mu.RUnlock()
	out := make([]domain.Turn, len(l.turns))
	copy(out, l.turns)
	return out
}

// Window returns a snapshot of the most recent n turns, oldest first.
// n <= 0 returns nothing.
func (l *Log) Window(n int) []domain.Turn {
	l.mu.RLock()
	defer l.mu.RUnlock()
	if n <= 0 {
		return nil
	}
	start := len(l.turns) - n
	if start < 0 {
		start = 0
	}
	out := make([]domain.Turn, len(l.turns)-start)
	copy(out, l.turns[start:])
	return out
}

// Len reports how many turns have been recorded.
func (l *Log) Len() int {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return len(l.turns)
}
