// Package cache memoizes Compile results so watch mode and the language
// server never recompile a file whose source and options haven't
// changed. Adapted from gnana997/uispec, which keys a golang-lru cache
// by file path for its symbol index; here the key is a content hash
// instead, since the same file path can be asked about with different
// Options (e.g. the LSP server's default pragma vs. a `--pragma`
// override from the CLI watching the same tree).
package cache

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"strconv"

	lru "github.com/hashicorp/golang-lru/v2"

	"github.com/jsx-go/jsxc"
)

// Entry is a cached compile outcome: either Output is set, or Err is,
// never both.
type Entry struct {
	Output string
	Err    error
}

// Cache memoizes jsxc.Compile by a hash of (source, options).
type Cache struct {
	lru *lru.Cache[string, Entry]
}

// New creates a Cache holding at most size entries. size <= 0 is
// rejected by golang-lru; callers should use DefaultSize when unsure.
func New(size int) (*Cache, error) {
	l, err := lru.New[string, Entry](size)
	if err != nil {
		return nil, fmt.Errorf("cache: %w", err)
	}
	return &Cache{lru: l}, nil
}

// DefaultSize is the number of distinct (source, options) pairs kept
// before the least recently used entry is evicted.
const DefaultSize = 256

// Key hashes source and the pragma/fragment/strict/recursion-limit
// settings in opts that affect Compile's outcome; MaxRecursiveCalls is
// included because a lower limit can turn a successful compile into a
// failure. EntityDecoder is excluded because it is not comparable.
func Key(source string, opts *jsxc.Options) string {
	h := sha256.New()
	h.Write([]byte(source))
	h.Write([]byte{0})
	if opts != nil {
		h.Write([]byte(opts.Pragma))
		h.Write([]byte{0})
		h.Write([]byte(opts.PragmaFrag))
		h.Write([]byte{0})
		h.Write([]byte(strconv.Itoa(opts.MaxRecursiveCalls)))
		h.Write([]byte{0})
		if opts.DisableUseStrict {
			h.Write([]byte{1})
		}
	}
	return hex.EncodeToString(h.Sum(nil))
}

// Compile returns the cached result for (source, opts) if present,
// otherwise runs jsxc.Compile, caches, and returns the outcome.
func (c *Cache) Compile(source string, opts *jsxc.Options) (string, error) {
	key := Key(source, opts)
	if e, ok := c.lru.Get(key); ok {
		return e.Output, e.Err
	}

	output, err := jsxc.Compile(source, opts)
	c.lru.Add(key, Entry{Output: output, Err: err})
	return output, err
}

// Invalidate drops the cached entry for (source, opts), so the next
// Compile with the same arguments runs jsxc.Compile again. Entries for
// the same source under other options are kept. Changed file contents
// need no invalidation, since they hash to a new key.
func (c *Cache) Invalidate(source string, opts *jsxc.Options) {
	c.lru.Remove(Key(source, opts))
}

// Len reports the number of cached entries.
func (c *Cache) Len() int {
	return c.lru.Len()
}
