package clickhouse

import (
	"context"
	"fmt"
	"time"

	"github.com/goodnatureofminers/blockinsight7000-blockreader/internal/model"
)

const insertBlocksQuery = `
INSERT INTO blockreader_blocks (
	coin,
	network,
	height,
	hash,
	prev_hash,
	timestamp,
	version,
	merkleroot,
	bits,
	nonce,
	difficulty,
	chainwork,
	status,
	size,
	tx_count
) VALUES`

// InsertBlocks stores block rows in ClickHouse. Rows for an already exported height replace the older row.
func (r *Repository) InsertBlocks(ctx context.Context, blocks []model.Block) (err error) {
	start := time.Now()
	coin, network := firstCoinNetwork(blocks)
	defer func() {
		r.metrics.Observe("insert_blocks", coin, network, err, start)
	}()

	if len(blocks) == 0 {
		return nil
	}

	batch, err := r.conn.PrepareBatch(ctx, insertBlocksQuery)
	if err != nil {
		return fmt.Errorf("prepare blocks batch: %w", err)
	}

	for _, block := range blocks {
		if err = batch.Append(
			string(block.Coin),
			string(block.Network),
			block.Height,
			block.Hash,
			block.PrevHash,
			block.Timestamp,
			block.Version,
			block.MerkleRoot,
			block.Bits,
			block.Nonce,
			block.Difficulty,
			block.ChainWork,
			block.Status,
			block.Size,
			block.TXCount,
		); err != nil {
			if abortErr := batch.Abort(); abortErr != nil {
				err = fmt.Errorf("%w (abort: %v)", err, abortErr)
			}
			return fmt.Errorf("append block %d: %w", block.Height, err)
		}
	}

	if err = batch.Send(); err != nil {
		return fmt.Errorf("insert blocks: %w", err)
	}
	r.metrics.ObserveRows(blocksTable, coin, network, len(blocks))
	return nil
}

func firstCoinNetwork(blocks []model.Block) (model.Coin, model.Network) {
	if len(blocks) == 0 {
		return "", ""
	}
	return blocks[0].Coin, blocks[0].Network
}
