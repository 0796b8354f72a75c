package keymutex

import "sync"

// KeyMutex serializes operations per key. The registry, prediction and
// maintenance services share one instance so that writes touching the same
// equipment id are mutually exclusive without a global lock.
type KeyMutex struct {
	mu    sync.Mutex
	locks map[int64]*sync.Mutex
}

func New() *KeyMutex {
	return &KeyMutex{
		locks: make(map[int64]*sync.Mutex),
	}
}

func (k *KeyMutex) Lock(key int64) {
	k.mu.Lock()
	m, ok := k.locks[key]
	if !ok {
		m = &sync.Mutex{}
		k.locks[key] = m
	}
	k.mu.Unlock()

	m.Lock()
}

// Unlock panics when the key was never locked, matching sync.Mutex.
func (k *KeyMutex) Unlock(key int64) {
	k.mu.Lock()
	m, ok := k.locks[key]
	k.mu.Unlock()

	if !ok {
		panic("keymutex: unlock of unheld key")
	}
	m.Unlock()
}
