// Package lock serializes check-then-write sequences on named scopes such as
// "director" or "unit:U1".
package lock

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"sync"
)

// ErrTimeout is returned when a scope could not be taken before the context
// expired.
var ErrTimeout = errors.New("lock: timed out waiting for scope")

// Release frees every scope taken by one Acquire call.
type Release func()

type Locker interface {
	Acquire(ctx context.Context, keys ...string) (Release, error)
}

// sortedKeys dedups and orders keys so that two callers asking for the same
// scopes always take them in the same order.
func sortedKeys(keys []string) []string {
	seen := map[string]bool{}
	out := make([]string, 0, len(keys))
	for _, k := range keys {
		if k == "" || seen[k] {
			continue
		}
		seen[k] = true
		out = append(out, k)
	}
	sort.Strings(out)
	return out
}

// MemoryLocker guards scopes inside one process. A key's slot lives only while
// someone holds or waits for it.
type MemoryLocker struct {
	mu    sync.Mutex
	slots map[string]*memorySlot
}

type memorySlot struct {
	ch   chan struct{}
	refs int
}

func NewMemoryLocker() *MemoryLocker {
	return &MemoryLocker{slots: map[string]*memorySlot{}}
}

func (l *MemoryLocker) join(key string) *memorySlot {
	l.mu.Lock()
	defer l.mu.Unlock()
	s, ok := l.slots[key]
	if !ok {
		s = &memorySlot{ch: make(chan struct{}, 1)}
		l.slots[key] = s
	}
	s.refs++
	return s
}

func (l *MemoryLocker) leave(key string, s *memorySlot) {
	l.mu.Lock()
	defer l.mu.Unlock()
	s.refs--
	if s.refs == 0 {
		delete(l.slots, key)
	}
}

func (l *MemoryLocker) Acquire(ctx context.Context, keys ...string) (Release, error) {
	type hold struct {
		key  string
		slot *memorySlot
	}
	var held []hold
	release := func() {
		for i := len(held) - 1; i >= 0; i-- {
			<-held[i].slot.ch
			l.leave(held[i].key, held[i].slot)
		}
	}

	for _, k := range sortedKeys(keys) {
		s := l.join(k)
		select {
		case s.ch <- struct{}{}:
			held = append(held, hold{key: k, slot: s})
		case <-ctx.Done():
			l.leave(k, s)
			release()
			return nil, fmt.Errorf("%w: %s: %v", ErrTimeout, k, ctx.Err())
		}
	}

	var once sync.Once
	return func() { once.Do(release) }, nil
}
