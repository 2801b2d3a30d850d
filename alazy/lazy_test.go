package alazy_test

import (
	"errors"
	"sync"
	"sync/atomic"
	"testing"

	"github.com/mverleg/tel/alazy"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGetOrInitRunsFactoryOnce(t *testing.T) {
	c := alazy.New[int]()
	var calls atomic.Int32

	var wg sync.WaitGroup
	results := make([]*alazy.Result[int], 20)
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			results[i] = c.GetOrInit(func() (int, error) {
				calls.Add(1)
				return 42, nil
			})
		}(i)
	}
	wg.Wait()

	assert.EqualValues(t, 1, calls.Load())
	for _, r := range results {
		require.NoError(t, r.Err)
		assert.Equal(t, 42, r.Value)
	}
}

func TestFailureIsCachedPermanently(t *testing.T) {
	c := alazy.New[int]()
	boom := errors.New("boom")

	r1 := c.GetOrInit(func() (int, error) { return 0, boom })
	require.ErrorIs(t, r1.Err, boom)

	r2 := c.GetOrInit(func() (int, error) { return 99, nil })
	assert.ErrorIs(t, r2.Err, boom)
	assert.Equal(t, r1, r2)
}

func TestIsInitializingReflectsInFlightFactory(t *testing.T) {
	c := alazy.New[int]()
	started := make(chan struct{})
	release := make(chan struct{})

	go c.GetOrInit(func() (int, error) {
		close(started)
		<-release
		return 1, nil
	})

	<-started
	assert.True(t, c.IsInitializing())
	close(release)
}

func TestFastPathAfterInit(t *testing.T) {
	c := alazy.New[string]()
	c.GetOrInit(func() (string, error) { return "ok", nil })

	r, ok := c.Get()
	require.True(t, ok)
	assert.Equal(t, "ok", r.Value)
}
