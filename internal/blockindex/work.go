package blockindex

import (
	"math/big"
	"sort"

	"github.com/btcsuite/btcd/blockchain"
	"github.com/btcsuite/btcd/chaincfg/chainhash"
)

// ComputeChainWork fills ChainWork on every entry as the parent's work plus the
// entry's own proof. Entries whose parent is unknown start from their own proof.
func ComputeChainWork(entries []*Entry) {
	byHash := make(map[chainhash.Hash]*Entry, len(entries))
	ordered := make([]*Entry, len(entries))
	copy(ordered, entries)
	for _, e := range entries {
		byHash[e.Hash] = e
		e.ChainWork = nil
	}
	sort.SliceStable(ordered, func(i, j int) bool {
		return ordered[i].Height < ordered[j].Height
	})

	for _, e := range ordered {
		proof := blockchain.CalcWork(e.Bits)
		if parent, ok := byHash[e.PrevHash]; ok && e.HasParent() && parent.ChainWork != nil {
			e.ChainWork = new(big.Int).Add(parent.ChainWork, proof)
			continue
		}
		e.ChainWork = proof
	}
}
