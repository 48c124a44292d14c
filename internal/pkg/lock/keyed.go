package lock

import "sync"

// Keyed provides one mutex per string key. Shift transitions lock on the
// employee id so that validate-then-append for one employee never interleaves,
// while different employees proceed in parallel. Entries are never evicted;
// the key space is the active roster, which is small.
type Keyed struct {
	mu    sync.Mutex
	locks map[string]*sync.Mutex
}

func NewKeyed() *Keyed {
	return &Keyed{locks: make(map[string]*sync.Mutex)}
}

func (k *Keyed) get(key string) *sync.Mutex {
	k.mu.Lock()
	defer k.mu.Unlock()
	m, ok := k.locks[key]
	if !ok {
		m = &sync.Mutex{}
		k.locks[key] = m
	}
	return m
}

func (k *Keyed) Lock(key string) {
	k.get(key).Lock()
}

func (k *Keyed) Unlock(key string) {
	k.get(key).Unlock()
}
