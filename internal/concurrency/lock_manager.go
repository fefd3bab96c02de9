package concurrency

import (
	"sort"
	"sync"
)

// LockManager handles named per-user locks
type LockManager struct {
	locks sync.Map
}

// NewLockManager creates a new LockManager
func NewLockManager() *LockManager {
	return &LockManager{}
}

// GetLock returns a mutex for the given key
func (lm *LockManager) GetLock(key string) *sync.Mutex {
	lock, _ := lm.locks.LoadOrStore(key, &sync.Mutex{})
	return lock.(*sync.Mutex)
}

// Lock acquires the locks for every key in lexical order and returns a func that
// releases them in reverse. Duplicate keys are locked once. Argument order is irrelevant.
func (lm *LockManager) Lock(keys ...string) (unlock func()) {
	ordered := OrderKeys(keys...)
	held := make([]*sync.Mutex, 0, len(ordered))
	for _, k := range ordered {
		mu := lm.GetLock(k)
		mu.Lock()
		held = append(held, mu)
	}
	return func() {
		for i := len(held) - 1; i >= 0; i-- {
			held[i].Unlock()
		}
	}
}

// OrderKeys returns the distinct keys in lexical order
func OrderKeys(keys ...string) []string {
	out := make([]string, 0, len(keys))
	seen := make(map[string]struct{}, len(keys))
	for _, k := range keys {
		if _, dup := seen[k]; dup {
			continue
		}
		seen[k] = struct{}{}
		out = append(out, k)
	}
	sort.Strings(out)
	return out
}
