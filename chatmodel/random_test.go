package chatmodel

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"

	"mindcare/support-chat/types"
)

func TestLockedRandIsReproducible(t *testing.T) {
	a, b := NewLockedRand(42), NewLockedRand(42)
	for i := 0; i < 10; i++ {
		assert.Equal(t, a.Intn(100), b.Intn(100))
		assert.Equal(t, a.Float64(), b.Float64())
	}
}

func TestLockedRandConcurrentUse(t *testing.T) {
	rng := NewLockedRand(7)

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < 100; j++ {
				n := rng.Intn(5)
				assert.True(t, n >= 0 && n < 5)
			}
		}()
	}
	wg.Wait()
}

func TestSeededGateIsReproducible(t *testing.T) {
	history := []types.ChatMessage{user("I feel so sad")}

	first := decide(NewClarifyGate(nil, NewLockedRand(3)), history)
	second := decide(NewClarifyGate(nil, NewLockedRand(3)), history)
	assert.Equal(t, first, second)
}
