package cache

import (
	"sync"

	"golang.org/x/sync/singleflight"
)

// OnceMap memoizes one value per key. The first Get for a key runs fn;
// concurrent callers for the same key join that call and share its result.
type OnceMap[V any] struct {
	mu   sync.RWMutex
	vals map[string]V
	sf   singleflight.Group
}

// Get returns the memoized value for key, computing it with fn on first use.
func (m *OnceMap[V]) Get(key string, fn func(string) V) V {
	if v, ok := m.lookup(key); ok {
		return v
	}

	v, _, _ := m.sf.Do(key, func() (any, error) {
		// a call that finished between lookup and Do already stored it
		if v, ok := m.lookup(key); ok {
			return v, nil
		}
		v := fn(key)
		m.mu.Lock()
		if m.vals == nil {
			m.vals = make(map[string]V)
		}
		m.vals[key] = v
		m.mu.Unlock()
		return v, nil
	})
	return v.(V)
}

// Len returns the number of keys computed so far.
func (m *OnceMap[V]) Len() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.vals)
}

func (m *OnceMap[V]) lookup(key string) (V, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	v, ok := m.vals[key]
	return v, ok
}
