package market

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWalkReproducibleWithFixedSeed(t *testing.T) {
	a := NewWalk(1.0850, 0.0004, 0.0002, 90, rand.New(rand.NewSource(42)))
	b := NewWalk(1.0850, 0.0004, 0.0002, 90, rand.New(rand.NewSource(42)))

	for i := 0; i < 500; i++ {
		pa, va := a.Next()
		pb, vb := b.Next()
		require.Equal(t, pa, pb, "price diverged at tick %d", i)
		require.Equal(t, va, vb, "volume diverged at tick %d", i)
	}
}

func TestWalkDifferentSeedsDiverge(t *testing.T) {
	a := NewWalk(1.0850, 0.0004, 0.0002, 90, rand.New(rand.NewSource(1)))
	b := NewWalk(1.0850, 0.0004, 0.0002, 90, rand.New(rand.NewSource(2)))

	diverged := false
	for i := 0; i < 50; i++ {
		pa, _ := a.Next()
		pb, _ := b.Next()
		if pa != pb {
			diverged = true
			break
		}
	}
	assert.True(t, diverged)
}

func TestWalkVolumeBounds(t *testing.T) {
	w := NewWalk(2352.40, 0.0004, 0.0002, 90, rand.New(rand.NewSource(7)))

	for i := 0; i < 1000; i++ {
		_, vol := w.Next()
		assert.GreaterOrEqual(t, vol, int64(volumeFloor))
		assert.Less(t, vol, int64(volumeFloor+volumeSpan))
	}
}

func TestWalkStaysNearInitialForTinyVolatility(t *testing.T) {
	w := NewWalk(100, 0.000001, 0, 90, rand.New(rand.NewSource(3)))

	for i := 0; i < 100; i++ {
		p, _ := w.Next()
		assert.InDelta(t, 100.0, p, 0.01)
	}
}
