package reader

//go:generate mockgen -source=$GOFILE -destination=mocks_test.go -package=$GOPACKAGE

import (
	"context"
	"time"

	"github.com/btcsuite/btcd/chaincfg/chainhash"

	"github.com/goodnatureofminers/blockinsight7000-blockreader/internal/blockindex"
	"github.com/goodnatureofminers/blockinsight7000-blockreader/internal/chain"
)

type (
	// BlockStore is the read-only view of the node's index and block files.
	BlockStore interface {
		EnumerateAllEntries(ctx context.Context) ([]*blockindex.Entry, error)
		LookupByHash(ctx context.Context, hash chainhash.Hash) (*blockindex.Entry, error)
		ReadBlock(ctx context.Context, e *blockindex.Entry) ([]byte, error)
		ReadUndo(ctx context.Context, e *blockindex.Entry) ([]byte, error)
		Close() error
	}
	StoreOpener interface {
		Open(layout Layout) (BlockStore, error)
	}
	Metrics interface {
		ObserveLoad(operation string, err error, started time.Time)
		ObserveChain(headerHeight, validatedHeight int32, status chain.IBDStatus)
	}
)
