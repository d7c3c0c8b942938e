// Package scoreboard keeps the best final scores across sessions.
package scoreboard

import (
	"sort"
	"sync"
	"time"
)

// Entry is a single recorded final score.
type Entry struct {
	Name  string
	Score int
	At    time.Time
}

// Board is a fixed-size, concurrency-safe high score table.
type Board struct {
	mu      sync.RWMutex
	size    int
	entries []Entry
	now     func() time.Time
}

// New returns a board that keeps the best size entries.
func New(size int) *Board {
	if size < 1 {
		size = 1
	}
	return &Board{
		size:    size,
		entries: make([]Entry, 0, size+1),
		now:     time.Now,
	}
}

// Record adds a final score and reports the rank it reached (1-based), or 0
// if it did not make the table. Ties keep the earlier entry ahead.
func (b *Board) Record(name string, score int) int {
	b.mu.Lock()
	defer b.mu.Unlock()

	rank := sort.Search(len(b.entries), func(i int) bool {
		return b.entries[i].Score < score
	})
	if rank >= b.size {
		return 0
	}

	b.entries = append(b.entries, Entry{})
	copy(b.entries[rank+1:], b.entries[rank:])
	b.entries[rank] = Entry{Name: name, Score: score, At: b.now()}
	if len(b.entries) > b.size {
		b.entries = b.entries[:b.size]
	}
	return rank + 1
}

// Top returns up to n entries, best first. n <= 0 returns the whole table.
func (b *Board) Top(n int) []Entry {
	b.mu.RLock()
	defer b.mu.RUnlock()

	if n <= 0 || n > len(b.entries) {
		n = len(b.entries)
	}
	out := make([]Entry, n)
	copy(out, b.entries[:n])
	return out
}

// Best returns the highest recorded score, or 0 for an empty board.
func (b *Board) Best() int {
	b.mu.RLock()
	defer b.mu.RUnlock()
	if len(b.entries) == 0 {
		return 0
	}
	return b.entries[0].Score
}
