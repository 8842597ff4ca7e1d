package motor

import (
	lru "github.com/hashicorp/golang-lru/v2"
)

// DefaultCacheSize is the number of parsed documents kept by NewDocumentCache
// when given a non-positive size.
const DefaultCacheSize = 8

// DocumentCache keeps recently parsed documents so that loading identical
// text twice skips the parse.
type DocumentCache struct {
	cache *lru.Cache[string, *Document]
}

// NewDocumentCache creates an LRU cache holding up to size documents.
func NewDocumentCache(size int) (*DocumentCache, error) {
	if size <= 0 {
		size = DefaultCacheSize
	}
	c, err := lru.New[string, *Document](size)
	if err != nil {
		return nil, err
	}
	return &DocumentCache{cache: c}, nil
}

func (c *DocumentCache) Get(hash string) (*Document, bool) {
	return c.cache.Get(hash)
}

func (c *DocumentCache) Put(doc *Document) {
	c.cache.Add(doc.Hash, doc)
}

func (c *DocumentCache) Clear() {
	c.cache.Purge()
}

func (c *DocumentCache) Size() int {
	return c.cache.Len()
}

// NoOpCache never stores anything.
type NoOpCache struct{}

func NewNoOpCache() *NoOpCache {
	return &NoOpCache{}
}

func (c *NoOpCache) Get(hash string) (*Document, bool) {
	return nil, false
}

func (c *NoOpCache) Put(doc *Document) {}

func (c *NoOpCache) Clear() {}

func (c *NoOpCache) Size() int {
	return 0
}
