package keylock

import (
	"context"
	"errors"
	"sync"
	"time"
)

// ErrTimeout is returned when a lock could not be acquired within the caller's
// wait budget. Nothing is held when it is returned.
var ErrTimeout = errors.New("keylock: acquisition timed out")

type entry struct {
	ch   chan struct{} // capacity 1, holding the token means holding the lock
	refs int
}

// Locker hands out exclusive in-process locks keyed by string. Balance and
// request workflows use it to serialize check-then-mutate sections per
// (employee, leave type, year) key.
type Locker struct {
	mu    sync.Mutex
	locks map[string]*entry
}

func New() *Locker {
	return &Locker{locks: make(map[string]*entry)}
}

// Acquire blocks until the key's lock is held, the wait budget expires, or ctx
// is done. On success it returns a release func that must be called exactly
// once.
func (l *Locker) Acquire(ctx context.Context, key string, wait time.Duration) (func(), error) {
	l.mu.Lock()
	e, ok := l.locks[key]
	if !ok {
		e = &entry{ch: make(chan struct{}, 1)}
		l.locks[key] = e
	}
	e.refs++
	l.mu.Unlock()

	timer := time.NewTimer(wait)
	defer timer.Stop()

	select {
	case e.ch <- struct{}{}:
		return func() { l.release(key, e) }, nil
	case <-timer.C:
		l.unref(key, e)
		return nil, ErrTimeout
	case <-ctx.Done():
		l.unref(key, e)
		return nil, ctx.Err()
	}
}

func (l *Locker) release(key string, e *entry) {
	<-e.ch
	l.unref(key, e)
}

func (l *Locker) unref(key string, e *entry) {
	l.mu.Lock()
	e.refs--
	if e.refs == 0 {
		delete(l.locks, key)
	}
	l.mu.Unlock()
}
