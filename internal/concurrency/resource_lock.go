// Package concurrency provides a bounded pool of named resource locks so
// the bridge can serialize access to a single house's order packet, or to
// the whole world state during a turn advance, without taking one global
// mutex for every request.
//
// Grounded on the teacher's `locker.ConcurrentLocker`
// (internal/locker/concurrent_lock.go): a fixed-size pool of reusable
// locks, handed out per named resource and reference-counted so that
// concurrent callers on the same resource share one lock instead of
// deadlocking on distinct ones.
package concurrency

import (
	"fmt"
	"sync"

	"ec4x_engine/internal/logging"
)

// ResourceLocker hands out a Lock per named resource from a fixed-size
// pool, blocking Acquire once every slot is in use.
type ResourceLocker struct {
	locker         sync.Mutex
	locks          []*Lock
	availableLocks chan int
	registered     map[string]int
	log            logging.Logger
}

// Lock protects concurrent access to a single named resource. Multiple
// Acquire calls for the same resource share the same Lock and its usage
// count; only the Lock itself serializes callers via Lock()/Release().
type Lock struct {
	id     int
	res    string
	use    int
	waiter chan struct{}
}

// NewResourceLocker builds a pool of poolSize reusable locks.
func NewResourceLocker(poolSize int, log logging.Logger) *ResourceLocker {
	if poolSize < 1 {
		poolSize = 1
	}

	allLocks := make([]*Lock, poolSize)
	ids := make(chan int, poolSize)

	for id := range allLocks {
		allLocks[id] = &Lock{id: -1, waiter: make(chan struct{}, 1)}
		allLocks[id].waiter <- struct{}{}
		ids <- id
	}

	return &ResourceLocker{
		locks:          allLocks,
		availableLocks: ids,
		registered:     make(map[string]int),
		log:            log,
	}
}

// Acquire returns the shared Lock for resource, creating one from the
// pool if none exists yet. Blocks if the pool is exhausted by other
// resources until one is Release'd.
func (cl *ResourceLocker) Acquire(resource string) *Lock {
	var l *Lock

	func() {
		cl.locker.Lock()
		defer cl.locker.Unlock()

		if id, ok := cl.registered[resource]; ok {
			l = cl.locks[id]
			l.use++
			cl.log.Trace(logging.Debug, "concurrency", fmt.Sprintf("joining lock on %q (users: %d)", resource, l.use))
		}
	}()
	if l != nil {
		return l
	}

	id := <-cl.availableLocks

	cl.locker.Lock()
	defer cl.locker.Unlock()
	cl.registered[resource] = id
	l = cl.locks[id]
	l.id = id
	l.res = resource
	l.use++
	cl.log.Trace(logging.Debug, "concurrency", fmt.Sprintf("assigned lock on %q (id: %d)", resource, id))

	return l
}

// Release decrements resource's usage count and returns the Lock to the
// pool once no caller still references it.
func (cl *ResourceLocker) Release(lock *Lock) {
	if lock == nil {
		return
	}

	cl.locker.Lock()
	defer cl.locker.Unlock()

	lock.use--
	if lock.use > 0 {
		return
	}

	delete(cl.registered, lock.res)
	cl.availableLocks <- lock.id
	lock.id = -1
	lock.res = ""
}

// Lock blocks until this Lock's sole permit is available.
func (l *Lock) Lock() {
	<-l.waiter
}

// Unlock returns the permit, allowing the next waiter through.
func (l *Lock) Unlock() error {
	if len(l.waiter) > 0 {
		return fmt.Errorf("lock on resource %q already released", l.res)
	}
	l.waiter <- struct{}{}
	return nil
}

// WithLock acquires the named resource's lock, runs f while holding it,
// then releases it — the common case for bridge handlers.
func (cl *ResourceLocker) WithLock(resource string, f func()) {
	lock := cl.Acquire(resource)
	lock.Lock()
	defer func() {
		_ = lock.Unlock()
		cl.Release(lock)
	}()
	f()
}
