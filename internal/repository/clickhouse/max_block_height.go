package clickhouse

import (
	"context"
	"fmt"
	"time"

	"github.com/goodnatureofminers/blockinsight7000-blockreader/internal/model"
)

const maxBlockHeightQuery = `
SELECT count() AS blocks, coalesce(max(height), toUInt64(0)) AS max_height
FROM blockreader_blocks
WHERE coin = ? AND network = ?`

// MaxBlockHeight returns the highest exported height for a coin/network. ok is false when nothing was exported.
func (r *Repository) MaxBlockHeight(ctx context.Context, coin model.Coin, network model.Network) (height uint64, ok bool, err error) {
	start := time.Now()
	defer func() {
		r.metrics.Observe("max_block_height", coin, network, err, start)
	}()

	rows, err := r.conn.Query(ctx, maxBlockHeightQuery, coin, network)
	if err != nil {
		return 0, false, fmt.Errorf("query max block height: %w", err)
	}
	defer closeRows(rows, &err)

	if !rows.Next() {
		return 0, false, fmt.Errorf("max block height not found")
	}

	var count uint64
	if err = rows.Scan(&count, &height); err != nil {
		return 0, false, fmt.Errorf("scan max block height: %w", err)
	}
	if err = rows.Err(); err != nil {
		return 0, false, fmt.Errorf("iterate max block height: %w", err)
	}

	return height, count > 0, nil
}
