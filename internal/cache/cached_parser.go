package cache

import (
	"github.com/HueCodes/vuelint/internal/parser"
)

// CachedParser parses templates through an ASTCache
type CachedParser struct {
	cache *ASTCache
}

// NewCachedParser creates a cached parser. A nil cache parses every time.
func NewCachedParser(cache *ASTCache) *CachedParser {
	return &CachedParser{cache: cache}
}

// Parse returns the tree for content, reusing a cached one when possible
func (p *CachedParser) Parse(filename, content string) (*parser.Document, []parser.ParseError) {
	if p.cache == nil {
		return parser.Parse(content)
	}
	if entry, ok := p.cache.Get(filename, content); ok {
		return entry.Document, entry.ParseErrors
	}

	doc, parseErrors := parser.Parse(content)
	p.cache.Put(filename, content, doc, parseErrors)
	return doc, parseErrors
}

// Invalidate removes a file from the cache
func (p *CachedParser) Invalidate(filename string) {
	if p.cache != nil {
		p.cache.Invalidate(filename)
	}
}
