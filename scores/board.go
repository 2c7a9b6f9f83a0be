package scores

import (
	"sort"
	"sync"
)

// Board keeps the best entries per category.
type Board struct {
	mu      sync.Mutex
	halls   map[string][]Entry
	maxSize int
}

// NewBoard creates a board holding maxSize entries per category.
func NewBoard(maxSize int) *Board {
	if maxSize < 1 {
		maxSize = 1
	}
	return &Board{
		halls:   make(map[string][]Entry),
		maxSize: maxSize,
	}
}

// Consider offers an entry to its category. Returns the entry's zero-based
// rank and whether it made the board.
func (b *Board) Consider(e Entry) (int, bool) {
	b.mu.Lock()
	defer b.mu.Unlock()

	hall, rank := b.insertEntry(b.halls[e.Category], e)
	b.halls[e.Category] = hall
	return rank, rank >= 0
}

// insertEntry adds an entry to the hall, keeping it sorted best first.
// Ties keep the earlier entry in front. If the hall is full, the worst entry
// is dropped. Returns the new hall and the entry's rank, or -1.
func (b *Board) insertEntry(hall []Entry, entry Entry) ([]Entry, int) {
	s := entry.Score()
	idx := sort.Search(len(hall), func(i int) bool {
		return s.Better(hall[i].Score())
	})

	if len(hall) >= b.maxSize && idx >= b.maxSize {
		return hall, -1
	}

	hall = append(hall, Entry{})
	copy(hall[idx+1:], hall[idx:])
	hall[idx] = entry

	if len(hall) > b.maxSize {
		hall = hall[:b.maxSize]
	}
	return hall, idx
}

// Top returns a copy of a category's entries, best first.
func (b *Board) Top(category string) []Entry {
	b.mu.Lock()
	defer b.mu.Unlock()

	hall := b.halls[category]
	out := make([]Entry, len(hall))
	copy(out, hall)
	return out
}

// All returns every entry, grouped by category in name order.
func (b *Board) All() []Entry {
	b.mu.Lock()
	defer b.mu.Unlock()

	names := make([]string, 0, len(b.halls))
	for name := range b.halls {
		names = append(names, name)
	}
	sort.Strings(names)

	var out []Entry
	for _, name := range names {
		out = append(out, b.halls[name]...)
	}
	return out
}

// Size returns the number of entries in a category.
func (b *Board) Size(category string) int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return len(b.halls[category])
}
