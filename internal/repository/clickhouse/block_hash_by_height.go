package clickhouse

import (
	"context"
	"fmt"
	"time"

	"github.com/goodnatureofminers/blockinsight7000-blockreader/internal/model"
)

const blockHashByHeightQuery = `
SELECT argMax(hash, updated_at) AS hash
FROM blockreader_blocks
WHERE coin = ? AND network = ? AND height = ?
GROUP BY height`

// BlockHashByHeight returns the latest exported hash at height. ok is false when the height was not exported.
func (r *Repository) BlockHashByHeight(ctx context.Context, coin model.Coin, network model.Network, height uint64) (hash string, ok bool, err error) {
	start := time.Now()
	defer func() {
		r.metrics.Observe("block_hash_by_height", coin, network, err, start)
	}()

	rows, err := r.conn.Query(ctx, blockHashByHeightQuery, coin, network, height)
	if err != nil {
		return "", false, fmt.Errorf("query block hash at %d: %w", height, err)
	}
	defer closeRows(rows, &err)

	if !rows.Next() {
		if err = rows.Err(); err != nil {
			return "", false, fmt.Errorf("iterate block hash at %d: %w", height, err)
		}
		return "", false, nil
	}
	if err = rows.Scan(&hash); err != nil {
		return "", false, fmt.Errorf("scan block hash at %d: %w", height, err)
	}
	if err = rows.Err(); err != nil {
		return "", false, fmt.Errorf("iterate block hash at %d: %w", height, err)
	}
	return hash, true, nil
}
