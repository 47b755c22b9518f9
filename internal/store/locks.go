package store

import "sync"

// routeLocks hands out one mutex per route id. Every route mutation runs its
// full read-mutate-write cycle inside that mutex, so two writers against the
// same route can never overwrite each other with stale copies.
type routeLocks struct {
	mu sync.Mutex
	m  map[uint]*sync.Mutex
}

func (l *routeLocks) get(id uint) *sync.Mutex {
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.m == nil {
		l.m = make(map[uint]*sync.Mutex)
	}
	if _, ok := l.m[id]; !ok {
		l.m[id] = &sync.Mutex{}
	}
	return l.m[id]
}

// WithRouteLock serializes fn against all other mutations of the same route.
func (s *Store) WithRouteLock(routeID uint, fn func() error) error {
	mu := s.locks.get(routeID)
	mu.Lock()
	defer mu.Unlock()
	return fn()
}
