package motor

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDocumentCache(t *testing.T) {
	cache, err := NewDocumentCache(2)
	require.NoError(t, err)

	a := &Document{Hash: "a"}
	b := &Document{Hash: "b"}
	c := &Document{Hash: "c"}

	cache.Put(a)
	cache.Put(b)
	got, ok := cache.Get("a")
	require.True(t, ok)
	assert.Same(t, a, got)

	// b is now least recently used
	cache.Put(c)
	assert.Equal(t, 2, cache.Size())
	_, ok = cache.Get("b")
	assert.False(t, ok)

	cache.Clear()
	assert.Equal(t, 0, cache.Size())
}

func TestDocumentCache_DefaultSize(t *testing.T) {
	cache, err := NewDocumentCache(0)
	require.NoError(t, err)
	for i := 0; i < DefaultCacheSize+3; i++ {
		cache.Put(&Document{Hash: fmt.Sprintf("doc-%d", i)})
	}
	assert.Equal(t, DefaultCacheSize, cache.Size())
}

func TestNoOpCache(t *testing.T) {
	var cache Cache = NewNoOpCache()
	cache.Put(&Document{Hash: "a"})
	_, ok := cache.Get("a")
	assert.False(t, ok)
	assert.Equal(t, 0, cache.Size())
}
