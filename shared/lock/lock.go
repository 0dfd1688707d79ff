// Package lock provides a mutex keyed by an arbitrary string, used to make
// the per-hotel overlap check and insert a single critical section. Guest
// registration volume is human-paced, so an in-process lock is sufficient;
// the service runs as a single instance.
package lock

import "sync"

type Keyed struct {
	mu    sync.Mutex
	locks map[string]*entry
}

type entry struct {
	mu   sync.Mutex
	refs int
}

func NewKeyed() *Keyed {
	return &Keyed{
		locks: map[string]*entry{},
	}
}

// Lock acquires the mutex for the given key, blocking until it is free.
func (k *Keyed) Lock(key string) {
	k.mu.Lock()
	e, ok := k.locks[key]
	if !ok {
		e = &entry{}
		k.locks[key] = e
	}
	e.refs++
	k.mu.Unlock()

	e.mu.Lock()
}

// Unlock releases the mutex for the given key. The entry is dropped once no
// goroutine holds or waits on it, so the map does not grow with hotel count.
func (k *Keyed) Unlock(key string) {
	k.mu.Lock()
	e, ok := k.locks[key]
	if ok {
		e.refs--
		if e.refs == 0 {
			delete(k.locks, key)
		}
	}
	k.mu.Unlock()

	if ok {
		e.mu.Unlock()
	}
}
