package service

import "sync"

// keyedLock serializes mutations per session id: at most one holder per key,
// waiters queue on a one-slot channel semaphore. Different keys never contend.
//
// pending counts the holder plus everyone queued; when it exceeds maxPending
// acquire fails fast instead of queueing without bound. A key's entry is
// dropped once the last holder releases, so the map only holds ids with
// in-flight work.
type keyedLock struct {
	mu         sync.Mutex
	maxPending int
	entries    map[string]*lockEntry
}

type lockEntry struct {
	sem     chan struct{}
	pending int
}

func newKeyedLock(maxPending int) *keyedLock {
	if maxPending <= 0 {
		maxPending = 64
	}
	return &keyedLock{
		maxPending: maxPending,
		entries:    make(map[string]*lockEntry),
	}
}

// acquire blocks until the caller holds the key, then returns a release
// function. Callers must release exactly once; release is safe in a defer
// even when the guarded operation fails, so a failed mutation never wedges
// the queue behind it.
func (l *keyedLock) acquire(key string) (func(), error) {
	l.mu.Lock()
	e, ok := l.entries[key]
	if !ok {
		e = &lockEntry{sem: make(chan struct{}, 1)}
		l.entries[key] = e
	}
	if e.pending >= l.maxPending {
		l.mu.Unlock()
		return nil, ErrBusy
	}
	e.pending++
	l.mu.Unlock()

	e.sem <- struct{}{}

	var once sync.Once
	release := func() {
		once.Do(func() {
			l.mu.Lock()
			<-e.sem
			e.pending--
			if e.pending == 0 {
				delete(l.entries, key)
			}
			l.mu.Unlock()
		})
	}
	return release, nil
}
