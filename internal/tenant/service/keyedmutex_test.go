package service

import (
	"sync"
	"testing"
)

func TestKeyedMutex_SerializesSameKey(t *testing.T) {
	km := newKeyedMutex()
	var counter int

	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			unlock := km.Lock("acme inc")
			defer unlock()
			counter++
		}()
	}
	wg.Wait()

	if counter != 50 {
		t.Errorf("counter = %d, want 50", counter)
	}
}

func TestKeyedMutex_ReleasesEntries(t *testing.T) {
	km := newKeyedMutex()
	unlock := km.Lock("a")
	unlock()

	km.mu.Lock()
	n := len(km.entries)
	km.mu.Unlock()
	if n != 0 {
		t.Errorf("entries = %d, want 0 after unlock", n)
	}
}

func TestKeyedMutex_LockAllDeduplicatesAndOrders(t *testing.T) {
	km := newKeyedMutex()

	// Same key twice must not self-deadlock.
	unlock := km.LockAll("a", "a")
	unlock()

	// Opposite orderings of the same pair must not deadlock each other.
	var wg sync.WaitGroup
	for i := 0; i < 20; i++ {
		wg.Add(2)
		go func() {
			defer wg.Done()
			u := km.LockAll("a", "b")
			u()
		}()
		go func() {
			defer wg.Done()
			u := km.LockAll("b", "a")
			u()
		}()
	}
	wg.Wait()
}
