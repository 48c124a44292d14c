package lock

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestKeyed_SerializesSameKey(t *testing.T) {
	t.Parallel()
	k := NewKeyed()

	const iterations = 200
	counter := 0
	var wg sync.WaitGroup

	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < iterations; j++ {
				k.Lock("emp-1")
				counter++
				k.Unlock("emp-1")
			}
		}()
	}
	wg.Wait()

	assert.Equal(t, 8*iterations, counter)
}

func TestKeyed_IndependentKeysDoNotBlock(t *testing.T) {
	t.Parallel()
	k := NewKeyed()

	k.Lock("emp-1")
	done := make(chan struct{})
	go func() {
		k.Lock("emp-2")
		k.Unlock("emp-2")
		close(done)
	}()

	<-done // would deadlock if keys shared a mutex
	k.Unlock("emp-1")
}
