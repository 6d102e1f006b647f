// Package chain selects the best validated chain from the block index and answers height and membership queries on it.
package chain

import (
	"github.com/goodnatureofminers/blockinsight7000-blockreader/internal/blockindex"
)

// Chain is an immutable genesis-to-tip path of entries where entries[i].Height == i.
// A nil *Chain behaves as an empty chain.
type Chain struct {
	entries []*blockindex.Entry
}

// NewChain wraps entries ordered by height starting at genesis.
func NewChain(entries []*blockindex.Entry) *Chain {
	return &Chain{entries: entries}
}

// Height returns the tip height, or -1 for an empty chain.
func (c *Chain) Height() int32 {
	if c == nil {
		return -1
	}
	return int32(len(c.entries)) - 1
}

// EntryAt returns the entry at height, false when height is outside [0, Height()].
func (c *Chain) EntryAt(height int32) (*blockindex.Entry, bool) {
	if height < 0 || height > c.Height() {
		return nil, false
	}
	return c.entries[height], true
}

// Tip returns the last entry of the chain.
func (c *Chain) Tip() (*blockindex.Entry, bool) {
	return c.EntryAt(c.Height())
}

// Genesis returns the entry at height 0.
func (c *Chain) Genesis() (*blockindex.Entry, bool) {
	return c.EntryAt(0)
}

// Contains reports whether e is the entry selected at its height, not merely a known hash.
func (c *Chain) Contains(e *blockindex.Entry) bool {
	if e == nil {
		return false
	}
	at, ok := c.EntryAt(e.Height)
	return ok && at.Hash == e.Hash
}

// Next returns the chain successor of e when e is on the chain and not the tip.
func (c *Chain) Next(e *blockindex.Entry) (*blockindex.Entry, bool) {
	if !c.Contains(e) {
		return nil, false
	}
	return c.EntryAt(e.Height + 1)
}

// Range returns up to count entries starting at start, stopping at the tip.
func (c *Chain) Range(start int32, count int) []*blockindex.Entry {
	if start < 0 || start > c.Height() || count <= 0 {
		return nil
	}
	if left := len(c.entries) - int(start); count > left {
		count = left
	}
	out := make([]*blockindex.Entry, count)
	copy(out, c.entries[start:])
	return out
}
