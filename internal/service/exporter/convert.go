package exporter

import (
	"fmt"
	"math/big"

	"github.com/btcsuite/btcd/blockchain"

	"github.com/goodnatureofminers/blockinsight7000-blockreader/internal/blockindex"
	"github.com/goodnatureofminers/blockinsight7000-blockreader/internal/model"
	"github.com/goodnatureofminers/blockinsight7000-blockreader/pkg/safe"
)

func toBlock(network model.Network, e *blockindex.Entry, size int) (model.Block, error) {
	height, err := safe.Uint64(e.Height)
	if err != nil {
		return model.Block{}, fmt.Errorf("height of %s: %w", e.Hash, err)
	}
	blockSize, err := safe.Uint32(size)
	if err != nil {
		return model.Block{}, fmt.Errorf("size of %s: %w", e.Hash, err)
	}

	return model.Block{
		Coin:       model.BTC,
		Network:    network,
		Height:     height,
		Hash:       e.Hash.String(),
		PrevHash:   e.PrevHash.String(),
		Timestamp:  e.Time(),
		Version:    e.Version,
		MerkleRoot: e.MerkleRoot.String(),
		Bits:       e.Bits,
		Nonce:      e.Nonce,
		Difficulty: difficulty(e.Bits),
		ChainWork:  chainWorkHex(e.ChainWork),
		Status:     e.Status.String(),
		Size:       blockSize,
		TXCount:    e.TxCount,
	}, nil
}

// difficulty is the ratio of the reference target to the block target.
func difficulty(bits uint32) float64 {
	target := blockchain.CompactToBig(bits)
	if target.Sign() <= 0 {
		return 0
	}
	ratio := new(big.Float).Quo(
		new(big.Float).SetInt(blockchain.CompactToBig(referenceBits)),
		new(big.Float).SetInt(target),
	)
	f, _ := ratio.Float64()
	return f
}

func chainWorkHex(work *big.Int) string {
	if work == nil {
		work = new(big.Int)
	}
	return fmt.Sprintf("%064x", work)
}
