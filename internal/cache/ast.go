package cache

import (
	"container/list"
	"crypto/sha256"
	"encoding/hex"
	"sync"
	"sync/atomic"
	"time"

	"github.com/HueCodes/vuelint/internal/parser"
)

// ASTEntry is a parsed template together with the hash of the text it came from
type ASTEntry struct {
	Document     *parser.Document
	ParseErrors  []parser.ParseError
	Hash         string
	LastAccessed time.Time
}

// ASTCache is an LRU cache of parsed templates keyed by filename.
// A lookup only hits when the content hash still matches, so the fix loop can
// reuse the tree of a pass whose fixes were all dropped.
type ASTCache struct {
	mu         sync.Mutex
	cache      map[string]*list.Element
	lru        *list.List
	maxEntries int
	maxAge     time.Duration

	hits   atomic.Int64
	misses atomic.Int64
}

type entry struct {
	key   string
	value *ASTEntry
}

// Option configures the ASTCache
type Option func(*ASTCache)

// NewASTCache creates a new AST cache
func NewASTCache(opts ...Option) *ASTCache {
	c := &ASTCache{
		cache:      make(map[string]*list.Element),
		lru:        list.New(),
		maxEntries: 256,
		maxAge:     5 * time.Minute,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// WithMaxEntries sets the maximum number of cached entries
func WithMaxEntries(n int) Option {
	return func(c *ASTCache) {
		if n > 0 {
			c.maxEntries = n
		}
	}
}

// WithMaxAge sets how long an unused entry stays valid
func WithMaxAge(d time.Duration) Option {
	return func(c *ASTCache) {
		if d > 0 {
			c.maxAge = d
		}
	}
}

// Get returns the cached tree for filename if content is unchanged
func (c *ASTCache) Get(filename, content string) (*ASTEntry, bool) {
	hash := HashContent(content)

	c.mu.Lock()
	defer c.mu.Unlock()

	elem, ok := c.cache[filename]
	if !ok {
		c.misses.Add(1)
		return nil, false
	}

	ent := elem.Value.(*entry)
	if ent.value.Hash != hash || time.Since(ent.value.LastAccessed) > c.maxAge {
		c.removeElement(elem)
		c.misses.Add(1)
		return nil, false
	}

	c.lru.MoveToFront(elem)
	ent.value.LastAccessed = time.Now()
	c.hits.Add(1)
	return ent.value, true
}

// Put stores a parsed tree, replacing any older entry for filename
func (c *ASTCache) Put(filename, content string, doc *parser.Document, parseErrors []parser.ParseError) {
	value := &ASTEntry{
		Document:     doc,
		ParseErrors:  parseErrors,
		Hash:         HashContent(content),
		LastAccessed: time.Now(),
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	if elem, ok := c.cache[filename]; ok {
		c.lru.MoveToFront(elem)
		elem.Value.(*entry).value = value
		return
	}

	c.cache[filename] = c.lru.PushFront(&entry{key: filename, value: value})
	for c.lru.Len() > c.maxEntries {
		c.removeElement(c.lru.Back())
	}
}

// Invalidate removes an entry from the cache
func (c *ASTCache) Invalidate(filename string) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if elem, ok := c.cache[filename]; ok {
		c.removeElement(elem)
	}
}

// Clear removes all entries and resets the counters
func (c *ASTCache) Clear() {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.cache = make(map[string]*list.Element)
	c.lru.Init()
	c.hits.Store(0)
	c.misses.Store(0)
}

// Size returns the number of entries in the cache
func (c *ASTCache) Size() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.cache)
}

// Stats returns cache statistics
func (c *ASTCache) Stats() CacheStats {
	c.mu.Lock()
	defer c.mu.Unlock()
	return CacheStats{
		Entries:    len(c.cache),
		MaxEntries: c.maxEntries,
		Hits:       c.hits.Load(),
		Misses:     c.misses.Load(),
	}
}

// CacheStats contains cache statistics
type CacheStats struct {
	Entries    int
	MaxEntries int
	Hits       int64
	Misses     int64
}

func (c *ASTCache) removeElement(elem *list.Element) {
	c.lru.Remove(elem)
	delete(c.cache, elem.Value.(*entry).key)
}

// HashContent returns the hex SHA-256 of content
func HashContent(content string) string {
	h := sha256.Sum256([]byte(content))
	return hex.EncodeToString(h[:])
}
