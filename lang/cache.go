package lang

import (
	"sync"

	"github.com/zeebo/xxh3"
)

// Cache memoizes the compiled form of expressions keyed by source text.
// A Cache is safe for concurrent use.
//
// Only successful compilations are stored. Each [Expression] built from a
// cached entry gets its own operand table.
type Cache struct {
	entries sync.Map // uint64 -> *compiled
}

// compiled is the immutable result of validating and converting source text.
type compiled struct {
	infix   string
	postfix string
	names   []string // sorted operand names
	tokens  []Token
}

// NewCache returns an empty cache.
func NewCache() *Cache { return &Cache{} }

// load returns the entry for text. Entries whose hash collides with text but
// whose source differs are treated as misses.
func (c *Cache) load(text string) (*compiled, bool) {
	v, ok := c.entries.Load(xxh3.HashString(text))
	if !ok {
		return nil, false
	}

	entry, ok := v.(*compiled)
	if !ok || entry.infix != text {
		return nil, false
	}

	return entry, true
}

// store records entry, replacing any entry with the same hash.
func (c *Cache) store(entry *compiled) {
	c.entries.Store(xxh3.HashString(entry.infix), entry)
}

// Len returns the number of cached expressions.
func (c *Cache) Len() int {
	n := 0

	c.entries.Range(func(_, _ any) bool {
		n++

		return true
	})

	return n
}

// Clear removes all cached expressions.
func (c *Cache) Clear() { c.entries.Clear() }
