package reader

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/btcsuite/btcd/chaincfg"
	"github.com/btcsuite/btcd/chaincfg/chainhash"
	"github.com/btcsuite/btcd/wire"
	"github.com/golang/mock/gomock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/goodnatureofminers/blockinsight7000-blockreader/internal/blockindex"
	"github.com/goodnatureofminers/blockinsight7000-blockreader/internal/model"
)

var (
	validated = blockindex.NewStatus(
		blockindex.HasBlockData, blockindex.HasUndoData,
		blockindex.ValidTransactions, blockindex.ValidChain, blockindex.ValidScripts,
	)
	headerOnly = blockindex.Status(0)
)

func genesisEntry() *blockindex.Entry {
	return blockindex.NewEntry(chaincfg.RegressionNetParams.GenesisBlock.Header, 0,
		blockindex.NewStatus(blockindex.HasBlockData, blockindex.ValidTransactions, blockindex.ValidChain, blockindex.ValidScripts), 1)
}

func childEntry(parent *blockindex.Entry, tag uint32, status blockindex.Status) *blockindex.Entry {
	header := wire.BlockHeader{
		Version:    4,
		PrevBlock:  parent.Hash,
		MerkleRoot: chainhash.Hash{byte(tag), byte(tag >> 8)},
		Timestamp:  parent.Time().Add(10 * time.Minute),
		Bits:       parent.Bits,
		Nonce:      tag,
	}
	return blockindex.NewEntry(header, parent.Height+1, status, 1)
}

// extend appends n children to the last entry of base.
func extend(base []*blockindex.Entry, n int, tag uint32, status blockindex.Status) []*blockindex.Entry {
	out := append([]*blockindex.Entry{}, base...)
	for i := 0; i < n; i++ {
		out = append(out, childEntry(out[len(out)-1], tag+uint32(i), status))
	}
	return out
}

// regtestChain is genesis plus n validated blocks with chain work filled in.
func regtestChain(n int) []*blockindex.Entry {
	entries := extend([]*blockindex.Entry{genesisEntry()}, n, 1, validated)
	blockindex.ComputeChainWork(entries)
	return entries
}

func withWork(entries ...[]*blockindex.Entry) []*blockindex.Entry {
	seen := make(map[chainhash.Hash]bool)
	var all []*blockindex.Entry
	for _, part := range entries {
		for _, e := range part {
			if !seen[e.Hash] {
				seen[e.Hash] = true
				all = append(all, e)
			}
		}
	}
	blockindex.ComputeChainWork(all)
	return all
}

func regtestConfig(t *testing.T) Config {
	t.Helper()
	dataDir := t.TempDir()
	require.NoError(t, os.MkdirAll(filepath.Join(dataDir, "regtest", "blocks"), 0o755))
	return Config{Network: model.Regtest, DataDir: dataDir, ReadOnly: true}
}

type harness struct {
	reader  *Reader
	store   *MockBlockStore
	metrics *MockMetrics
}

// newReadyReader initializes a reader whose first load returns entries.
func newReadyReader(t *testing.T, ctrl *gomock.Controller, entries []*blockindex.Entry) harness {
	t.Helper()

	store := NewMockBlockStore(ctrl)
	opener := NewMockStoreOpener(ctrl)
	metrics := NewMockMetrics(ctrl)
	metrics.EXPECT().ObserveLoad(gomock.Any(), gomock.Any(), gomock.Any()).AnyTimes()
	metrics.EXPECT().ObserveChain(gomock.Any(), gomock.Any(), gomock.Any()).AnyTimes()
	opener.EXPECT().Open(gomock.Any()).Return(store, nil)
	store.EXPECT().EnumerateAllEntries(gomock.Any()).Return(entries, nil)

	r := New(zap.NewNop(), opener, metrics)
	require.NoError(t, r.Initialize(context.Background(), regtestConfig(t)))
	return harness{reader: r, store: store, metrics: metrics}
}
