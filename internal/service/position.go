package service

import (
	"sort"
	"sync"
)

// PositionGuard serializes sibling-scope renumbering. Every operation that
// rewrites a scope's position sequence (move, delete, cascade) locks the
// affected scope IDs for the duration of its read-modify-write; operations
// on disjoint scopes run in parallel. Reads never take these locks.
type PositionGuard struct {
	mu     sync.Mutex
	scopes map[string]*sync.Mutex
}

// NewPositionGuard creates an empty guard.
func NewPositionGuard() *PositionGuard {
	return &PositionGuard{scopes: make(map[string]*sync.Mutex)}
}

// Lock acquires the locks for the given scope IDs and returns the matching
// unlock function. IDs are deduplicated and locked in sorted order so two
// operations touching the same pair of scopes cannot deadlock.
func (g *PositionGuard) Lock(scopeIDs ...string) func() {
	seen := make(map[string]bool, len(scopeIDs))
	ids := make([]string, 0, len(scopeIDs))
	for _, id := range scopeIDs {
		if id == "" || seen[id] {
			continue
		}
		seen[id] = true
		ids = append(ids, id)
	}
	sort.Strings(ids)

	locks := make([]*sync.Mutex, 0, len(ids))
	for _, id := range ids {
		locks = append(locks, g.scopeLock(id))
	}
	for _, l := range locks {
		l.Lock()
	}
	return func() {
		for i := len(locks) - 1; i >= 0; i-- {
			locks[i].Unlock()
		}
	}
}

func (g *PositionGuard) scopeLock(id string) *sync.Mutex {
	g.mu.Lock()
	defer g.mu.Unlock()
	l, ok := g.scopes[id]
	if !ok {
		l = &sync.Mutex{}
		g.scopes[id] = l
	}
	return l
}
