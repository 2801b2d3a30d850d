package cache_test

import (
	"errors"
	"sync"
	"sync/atomic"
	"testing"

	"github.com/mverleg/tel/cache"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGetRunsFactoryOncePerKey(t *testing.T) {
	c := cache.New[string, int]()
	var calls atomic.Int32

	var wg sync.WaitGroup
	results := make([]*int, 20)
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			r := c.Get("x", func() (int, error) {
				calls.Add(1)
				return 7, nil
			})
			v := r.Value
			results[i] = &v
		}(i)
	}
	wg.Wait()

	assert.EqualValues(t, 1, calls.Load())
	for _, v := range results {
		require.NotNil(t, v)
		assert.Equal(t, 7, *v)
	}
	assert.Equal(t, 1, c.Len())
}

func TestGetIsolatesDistinctKeys(t *testing.T) {
	c := cache.New[string, int]()

	r1 := c.Get("a", func() (int, error) { return 1, nil })
	r2 := c.Get("b", func() (int, error) { return 2, nil })

	assert.Equal(t, 1, r1.Value)
	assert.Equal(t, 2, r2.Value)
	assert.Equal(t, 2, c.Len())
}

func TestGetCachesErrorPerKey(t *testing.T) {
	c := cache.New[string, int]()
	boom := errors.New("boom")

	r1 := c.Get("k", func() (int, error) { return 0, boom })
	require.ErrorIs(t, r1.Err, boom)

	r2 := c.Get("k", func() (int, error) { return 99, nil })
	assert.ErrorIs(t, r2.Err, boom)
}

func TestPeekReflectsInFlightFactory(t *testing.T) {
	c := cache.New[string, int]()
	started := make(chan struct{})
	release := make(chan struct{})

	go c.Get("x", func() (int, error) {
		close(started)
		<-release
		return 1, nil
	})
	<-started

	cell, ok := c.Peek("x")
	require.True(t, ok)
	assert.True(t, cell.IsInitializing())
	close(release)

	_, missing := c.Peek("never-demanded")
	assert.False(t, missing)
}

func TestGetConcurrentDistinctKeysDoNotBlockEachOther(t *testing.T) {
	c := cache.New[int, int]()
	started := make(chan struct{})
	release := make(chan struct{})

	go c.Get(1, func() (int, error) {
		close(started)
		<-release
		return 1, nil
	})
	<-started

	r := c.Get(2, func() (int, error) { return 2, nil })
	assert.Equal(t, 2, r.Value)
	close(release)
}
