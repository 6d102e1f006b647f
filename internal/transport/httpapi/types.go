package httpapi

import (
	"context"
	"time"

	"github.com/btcsuite/btcd/chaincfg/chainhash"

	"github.com/goodnatureofminers/blockinsight7000-blockreader/internal/blockindex"
	"github.com/goodnatureofminers/blockinsight7000-blockreader/internal/model"
	"github.com/goodnatureofminers/blockinsight7000-blockreader/internal/reader"
)

//go:generate mockgen -source=$GOFILE -destination=mocks_test.go -package=$GOPACKAGE

type (
	Reader interface {
		Status() (reader.Status, error)
		EntryByHeight(height int32) (*blockindex.Entry, error)
		EntryByHash(ctx context.Context, hash chainhash.Hash) (*blockindex.Entry, error)
		IsOnBestChain(e *blockindex.Entry) (bool, error)
		MedianTimePast(ctx context.Context, e *blockindex.Entry) (time.Time, error)
		Block(ctx context.Context, e *blockindex.Entry) ([]byte, error)
		SpentOutputs(ctx context.Context, e *blockindex.Entry) ([]model.SpentOutput, error)
		EntryRange(start int32, count int) ([]*blockindex.Entry, error)
		HeadersRaw(start int32, count int) ([]byte, error)
	}
	Metrics interface {
		ObserveRequest(route, method string, code int, started time.Time)
	}
)
