package exporter

import (
	"context"
	"time"

	"github.com/goodnatureofminers/blockinsight7000-blockreader/internal/blockindex"
	"github.com/goodnatureofminers/blockinsight7000-blockreader/internal/model"
	"github.com/goodnatureofminers/blockinsight7000-blockreader/internal/reader"
)

//go:generate mockgen -source=$GOFILE -destination=mocks_test.go -package=$GOPACKAGE

type (
	Reader interface {
		Refresh(ctx context.Context) (bool, error)
		Status() (reader.Status, error)
		EntryRange(start int32, count int) ([]*blockindex.Entry, error)
		Block(ctx context.Context, e *blockindex.Entry) ([]byte, error)
	}
	Repository interface {
		MaxBlockHeight(ctx context.Context, coin model.Coin, network model.Network) (uint64, bool, error)
		BlockHashByHeight(ctx context.Context, coin model.Coin, network model.Network, height uint64) (string, bool, error)
		InsertBlocks(ctx context.Context, blocks []model.Block) error
		DeleteBlocksFrom(ctx context.Context, coin model.Coin, network model.Network, height uint64) error
	}
	Metrics interface {
		ObserveSync(err error, started time.Time)
		ObserveProcessBatch(err error, heights int, started time.Time)
		ObserveReorg(depth int)
	}
)
