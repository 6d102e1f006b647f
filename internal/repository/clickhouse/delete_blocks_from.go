package clickhouse

import (
	"context"
	"fmt"
	"time"

	"github.com/goodnatureofminers/blockinsight7000-blockreader/internal/model"
)

const deleteBlocksFromQuery = `
DELETE FROM blockreader_blocks
WHERE coin = ? AND network = ? AND height >= ?`

// DeleteBlocksFrom removes every exported row at or above height, used to rewind after a reorg.
func (r *Repository) DeleteBlocksFrom(ctx context.Context, coin model.Coin, network model.Network, height uint64) (err error) {
	start := time.Now()
	defer func() {
		r.metrics.Observe("delete_blocks_from", coin, network, err, start)
	}()

	if err = r.conn.Exec(ctx, deleteBlocksFromQuery, coin, network, height); err != nil {
		return fmt.Errorf("delete blocks from %d: %w", height, err)
	}
	return nil
}
