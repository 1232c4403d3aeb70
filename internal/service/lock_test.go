package service

import (
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"
)

func TestKeyedLock_MutualExclusion(t *testing.T) {
	l := newKeyedLock(100)

	var active int32
	var wg sync.WaitGroup
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			release, err := l.acquire("s1")
			if err != nil {
				t.Errorf("acquire error = %v", err)
				return
			}
			defer release()

			if n := atomic.AddInt32(&active, 1); n != 1 {
				t.Errorf("found %d holders inside critical section, want 1", n)
			}
			time.Sleep(time.Millisecond)
			atomic.AddInt32(&active, -1)
		}()
	}
	wg.Wait()
}

func TestKeyedLock_IndependentKeys(t *testing.T) {
	l := newKeyedLock(10)

	releaseA, err := l.acquire("a")
	if err != nil {
		t.Fatalf("acquire a: %v", err)
	}
	defer releaseA()

	done := make(chan struct{})
	go func() {
		releaseB, err := l.acquire("b")
		if err != nil {
			t.Errorf("acquire b: %v", err)
			return
		}
		releaseB()
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("acquiring key b blocked behind held key a")
	}
}

func TestKeyedLock_Backpressure(t *testing.T) {
	l := newKeyedLock(2)

	release, err := l.acquire("s1")
	if err != nil {
		t.Fatalf("acquire: %v", err)
	}

	// second caller queues up
	queued := make(chan struct{})
	go func() {
		r, err := l.acquire("s1")
		if err != nil {
			t.Errorf("queued acquire: %v", err)
			return
		}
		r()
		close(queued)
	}()

	// wait until the waiter is counted
	deadline := time.Now().Add(time.Second)
	for {
		l.mu.Lock()
		pending := 0
		if e, ok := l.entries["s1"]; ok {
			pending = e.pending
		}
		l.mu.Unlock()
		if pending == 2 {
			break
		}
		if time.Now().After(deadline) {
			t.Fatal("waiter never queued")
		}
		time.Sleep(time.Millisecond)
	}

	// third caller overflows the bound
	if _, err := l.acquire("s1"); !errors.Is(err, ErrBusy) {
		t.Fatalf("overflow acquire error = %v, want ErrBusy", err)
	}

	release()
	select {
	case <-queued:
	case <-time.After(time.Second):
		t.Fatal("queued caller never got the lock")
	}
}

func TestKeyedLock_EntryCleanup(t *testing.T) {
	l := newKeyedLock(10)

	release, err := l.acquire("s1")
	if err != nil {
		t.Fatalf("acquire: %v", err)
	}
	release()

	l.mu.Lock()
	n := len(l.entries)
	l.mu.Unlock()
	if n != 0 {
		t.Errorf("entries after release = %d, want 0", n)
	}
}

func TestKeyedLock_ReleaseIdempotent(t *testing.T) {
	l := newKeyedLock(10)

	release, err := l.acquire("s1")
	if err != nil {
		t.Fatalf("acquire: %v", err)
	}
	release()
	release() // second call must be a no-op

	if _, err := l.acquire("s1"); err != nil {
		t.Fatalf("re-acquire after double release: %v", err)
	}
}
