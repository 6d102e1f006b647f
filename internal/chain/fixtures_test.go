package chain

import (
	"math/big"

	"github.com/btcsuite/btcd/chaincfg/chainhash"

	"github.com/goodnatureofminers/blockinsight7000-blockreader/internal/blockindex"
)

var (
	validated = blockindex.NewStatus(
		blockindex.HasBlockData, blockindex.HasUndoData,
		blockindex.ValidTransactions, blockindex.ValidChain, blockindex.ValidScripts,
	)
	headerOnly = blockindex.Status(0)
)

func testEntry(branch byte, height int32, parent *blockindex.Entry, work int64, status blockindex.Status) *blockindex.Entry {
	var hash chainhash.Hash
	hash[0], hash[1], hash[31] = byte(height), byte(height>>8), branch
	e := &blockindex.Entry{
		Hash:      hash,
		Height:    height,
		ChainWork: big.NewInt(work),
		Status:    status,
	}
	if parent != nil {
		e.PrevHash = parent.Hash
	}
	return e
}

// testBranch extends parent by n entries, each adding one unit of work.
func testBranch(branch byte, parent *blockindex.Entry, n int, status blockindex.Status) []*blockindex.Entry {
	out := make([]*blockindex.Entry, 0, n)
	prev := parent
	for i := 0; i < n; i++ {
		height, work := int32(0), int64(1)
		if prev != nil {
			height = prev.Height + 1
			work = prev.ChainWork.Int64() + 1
		}
		e := testEntry(branch, height, prev, work, status)
		out = append(out, e)
		prev = e
	}
	return out
}
