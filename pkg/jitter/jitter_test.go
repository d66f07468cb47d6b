package jitter

import (
	"context"
	"math/rand"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestExponential(t *testing.T) {
	base := 100 * time.Millisecond
	max := time.Second

	assert.Equal(t, base, Exponential(base, max, 0))
	assert.Equal(t, 200*time.Millisecond, Exponential(base, max, 1))
	assert.Equal(t, 800*time.Millisecond, Exponential(base, max, 3))
	assert.Equal(t, max, Exponential(base, max, 4))
	assert.Equal(t, max, Exponential(base, max, 40))
}

func TestDurationStaysInRange(t *testing.T) {
	d := time.Second
	for i := 0; i < 100; i++ {
		got := Duration(d, DefaultJitter)
		assert.GreaterOrEqual(t, got, d)
		assert.LessOrEqual(t, got, d+d/2)
	}
}

func TestDurationWithSeedIsDeterministic(t *testing.T) {
	a := DurationWithSeed(time.Second, 0.5, rand.New(rand.NewSource(42)))
	b := DurationWithSeed(time.Second, 0.5, rand.New(rand.NewSource(42)))
	assert.Equal(t, a, b)
}

func TestSleepCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	err := Sleep(ctx, time.Hour)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestSleepElapses(t *testing.T) {
	assert.NoError(t, Sleep(context.Background(), time.Millisecond))
}
