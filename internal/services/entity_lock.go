package services

import (
	"fmt"
	"sync"
)

// entityLock tracks one in-flight holder per key with a reference count so
// idle entries can be dropped from the map.
type entityLock struct {
	mu   sync.Mutex
	refs int
}

// EntityLocker serializes allocator operations per queue or topic. The store
// transaction alone is not enough on every backend: the read-check-write
// sequence (count entries, compute max position, insert) must not interleave
// for the same entity, so each operation holds the entity's lock for the full
// transaction.
type EntityLocker struct {
	mu    sync.Mutex
	locks map[string]*entityLock
}

func NewEntityLocker() *EntityLocker {
	return &EntityLocker{locks: make(map[string]*entityLock)}
}

// Lock acquires the lock for key and returns the release function.
func (l *EntityLocker) Lock(key string) func() {
	l.mu.Lock()
	e, ok := l.locks[key]
	if !ok {
		e = &entityLock{}
		l.locks[key] = e
	}
	e.refs++
	l.mu.Unlock()

	e.mu.Lock()

	return func() {
		e.mu.Unlock()

		l.mu.Lock()
		e.refs--
		if e.refs == 0 {
			delete(l.locks, key)
		}
		l.mu.Unlock()
	}
}

func queueKey(queueID uint) string { return fmt.Sprintf("queue:%d", queueID) }
func topicKey(topicID uint) string { return fmt.Sprintf("topic:%d", topicID) }
