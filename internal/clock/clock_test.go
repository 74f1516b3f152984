package clock_test

import (
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/vytor/vocabflash/internal/clock"
)

func TestSystem_UTC(t *testing.T) {
	now := clock.System{}.Now()
	assert.Equal(t, time.UTC, now.Location())
	assert.WithinDuration(t, time.Now(), now, time.Second)
}

func TestSimulated(t *testing.T) {
	c := clock.NewSimulated()
	assert.False(t, c.IsSet())
	assert.WithinDuration(t, time.Now(), c.Now(), time.Second)

	start := time.Date(2026, 1, 1, 9, 0, 0, 0, time.FixedZone("BRT", -3*3600))
	c.Set(start)
	assert.True(t, c.IsSet())
	assert.True(t, start.Equal(c.Now()))
	assert.Equal(t, time.UTC, c.Now().Location())

	got := c.Advance(36 * time.Hour)
	assert.True(t, start.Add(36*time.Hour).Equal(got))
	assert.Equal(t, got, c.Now())

	c.Reset()
	assert.False(t, c.IsSet())
	assert.WithinDuration(t, time.Now(), c.Now(), time.Second)
}

func TestSimulated_AdvanceUnpinned(t *testing.T) {
	c := clock.NewSimulated()
	got := c.Advance(time.Hour)
	assert.True(t, c.IsSet())
	assert.WithinDuration(t, time.Now().Add(time.Hour), got, time.Second)
}

func TestSimulated_ConcurrentAdvance(t *testing.T) {
	c := clock.NewSimulated()
	start := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	c.Set(start)

	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			c.Advance(time.Minute)
			_ = c.Now()
		}()
	}
	wg.Wait()

	assert.Equal(t, start.Add(50*time.Minute), c.Now())
}
