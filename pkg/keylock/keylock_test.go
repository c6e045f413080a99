package keylock_test

import (
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/xcursi322/prakt/pkg/keylock"
)

func TestSortedDeduplicates(t *testing.T) {
	assert.Equal(t, []uint{1, 3, 7}, keylock.Sorted([]uint{7, 3, 1, 3}))
}

func TestLockSerialisesOverlappingSets(t *testing.T) {
	var locks keylock.Set[uint]
	var inside, maxInside int32
	var wg sync.WaitGroup

	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			keys := []uint{1, 2}
			if i%2 == 0 {
				keys = []uint{2, 1}
			}
			unlock := locks.Lock(keys...)
			n := atomic.AddInt32(&inside, 1)
			for {
				cur := atomic.LoadInt32(&maxInside)
				if n <= cur || atomic.CompareAndSwapInt32(&maxInside, cur, n) {
					break
				}
			}
			time.Sleep(time.Millisecond)
			atomic.AddInt32(&inside, -1)
			unlock()
		}(i)
	}
	wg.Wait()

	assert.Equal(t, int32(1), maxInside)
	assert.Equal(t, 0, locks.Len())
}

func TestDisjointSetsDoNotBlock(t *testing.T) {
	var locks keylock.Set[uint]
	unlock := locks.Lock(1)
	defer unlock()

	done := make(chan struct{})
	go func() {
		locks.Lock(2)()
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("lock on a disjoint key blocked")
	}
}

func TestUnlockIsIdempotent(t *testing.T) {
	var locks keylock.Set[string]
	unlock := locks.Lock("a")
	unlock()
	unlock()
	assert.Equal(t, 0, locks.Len())
}
