package chain

import (
	"context"
	"errors"
	"fmt"
	"math/big"

	"github.com/btcsuite/btcd/chaincfg/chainhash"

	"github.com/goodnatureofminers/blockinsight7000-blockreader/internal/blockindex"
)

// Result is the outcome of one load pass over the block index.
type Result struct {
	Chain *Chain
	// HeaderHeight is the highest height among all entries regardless of validity, 0 when there are none.
	HeaderHeight int32
	// Entries holds every enumerated entry by hash, including side branches and unvalidated headers.
	Entries map[chainhash.Hash]*blockindex.Entry
}

// LoadBestValidatedChain enumerates the index once and selects the most-work tip with fully validated scripts.
// Equal work is resolved in favour of the lexicographically smaller hash. The path from the tip back to
// genesis must be complete, otherwise the load fails with blockindex.ErrIndexCorruption.
func LoadBestValidatedChain(ctx context.Context, source EntrySource) (Result, error) {
	entries, err := source.EnumerateAllEntries(ctx)
	if err != nil {
		if errors.Is(err, blockindex.ErrIndexCorruption) {
			return Result{}, fmt.Errorf("enumerate entries: %w", err)
		}
		return Result{}, fmt.Errorf("enumerate entries: %w: %w", blockindex.ErrStoreUnavailable, err)
	}
	if err := ctx.Err(); err != nil {
		return Result{}, err
	}

	byHash := make(map[chainhash.Hash]*blockindex.Entry, len(entries))
	var (
		headerHeight int32
		best         *blockindex.Entry
	)
	for _, e := range entries {
		byHash[e.Hash] = e
		if e.Height > headerHeight {
			headerHeight = e.Height
		}
		if !e.IsValid(blockindex.ValidScripts) {
			continue
		}
		if best == nil || betterTip(e, best) {
			best = e
		}
	}

	res := Result{HeaderHeight: headerHeight, Entries: byHash}
	if best == nil {
		res.Chain = NewChain(nil)
		return res, nil
	}

	path, err := ancestorPath(best, byHash)
	if err != nil {
		return Result{}, err
	}
	res.Chain = NewChain(path)
	return res, nil
}

func ancestorPath(tip *blockindex.Entry, byHash map[chainhash.Hash]*blockindex.Entry) ([]*blockindex.Entry, error) {
	if tip.Height < 0 {
		return nil, fmt.Errorf("tip %s has negative height %d: %w", tip.Hash, tip.Height, blockindex.ErrIndexCorruption)
	}
	if int(tip.Height) >= len(byHash) {
		return nil, fmt.Errorf("tip %s at height %d above %d indexed entries: %w",
			tip.Hash, tip.Height, len(byHash), blockindex.ErrIndexCorruption)
	}
	path := make([]*blockindex.Entry, tip.Height+1)
	cur := tip
	for {
		path[cur.Height] = cur
		if cur.Height == 0 {
			return path, nil
		}
		parent, ok := byHash[cur.PrevHash]
		if !ok {
			return nil, fmt.Errorf("ancestor %s of %s at height %d missing: %w",
				cur.PrevHash, cur.Hash, cur.Height, blockindex.ErrIndexCorruption)
		}
		if parent.Height != cur.Height-1 {
			return nil, fmt.Errorf("parent %s at height %d of %s at height %d: %w",
				parent.Hash, parent.Height, cur.Hash, cur.Height, blockindex.ErrIndexCorruption)
		}
		cur = parent
	}
}

func betterTip(a, b *blockindex.Entry) bool {
	if c := workOf(a).Cmp(workOf(b)); c != 0 {
		return c > 0
	}
	return hashLess(a.Hash, b.Hash)
}

var zeroWork = new(big.Int)

func workOf(e *blockindex.Entry) *big.Int {
	if e.ChainWork == nil {
		return zeroWork
	}
	return e.ChainWork
}

// hashLess compares hashes in their displayed (byte-reversed) order.
func hashLess(a, b chainhash.Hash) bool {
	for i := chainhash.HashSize - 1; i >= 0; i-- {
		if a[i] != b[i] {
			return a[i] < b[i]
		}
	}
	return false
}
