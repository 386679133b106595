package main

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSourceCacheMemoizes(t *testing.T) {
	cache := newSourceCache()
	calls := 0
	fetch := func() ([]byte, error) {
		calls++
		return []byte("payload"), nil
	}

	for i := 0; i < 3; i++ {
		data, err := cache.bytes("drive:abc", fetch)
		require.NoError(t, err)
		assert.Equal(t, []byte("payload"), data)
	}
	assert.Equal(t, 1, calls)
}

func TestSourceCacheDoesNotCacheErrors(t *testing.T) {
	cache := newSourceCache()
	calls := 0
	fetch := func() ([]byte, error) {
		calls++
		if calls == 1 {
			return nil, errors.New("transient")
		}
		return []byte("ok"), nil
	}

	_, err := cache.bytes("file:x", fetch)
	require.Error(t, err)

	data, err := cache.bytes("file:x", fetch)
	require.NoError(t, err)
	assert.Equal(t, []byte("ok"), data)
	assert.Equal(t, 2, calls)
}

func TestSourceCacheKeysAreIndependent(t *testing.T) {
	cache := newSourceCache()
	a, err := cache.bytes("a", func() ([]byte, error) { return []byte("a"), nil })
	require.NoError(t, err)
	b, err := cache.bytes("b", func() ([]byte, error) { return []byte("b"), nil })
	require.NoError(t, err)
	assert.NotEqual(t, a, b)
}

func TestSourceCacheClear(t *testing.T) {
	cache := newSourceCache()
	calls := 0
	fetch := func() ([]byte, error) {
		calls++
		return []byte("x"), nil
	}

	_, _ = cache.bytes("k", fetch)
	cache.clear()
	_, _ = cache.bytes("k", fetch)
	assert.Equal(t, 2, calls)
}
