// Package store holds wrappers shared by block store implementations.
package store

//go:generate mockgen -source=$GOFILE -destination=mocks_test.go -package=$GOPACKAGE

import (
	"context"
	"time"

	"github.com/btcsuite/btcd/chaincfg/chainhash"

	"github.com/goodnatureofminers/blockinsight7000-blockreader/internal/blockindex"
)

type (
	Backend interface {
		EnumerateAllEntries(ctx context.Context) ([]*blockindex.Entry, error)
		LookupByHash(ctx context.Context, hash chainhash.Hash) (*blockindex.Entry, error)
		ReadBlock(ctx context.Context, e *blockindex.Entry) ([]byte, error)
		ReadUndo(ctx context.Context, e *blockindex.Entry) ([]byte, error)
		Close() error
	}
	Metrics interface {
		Observe(operation string, err error, started time.Time)
	}
)

// Observed reports the outcome and latency of every backend call.
type Observed struct {
	backend Backend
	metrics Metrics
}

func NewObserved(backend Backend, metrics Metrics) *Observed {
	return &Observed{
		backend: backend,
		metrics: metrics,
	}
}

func (o *Observed) EnumerateAllEntries(ctx context.Context) (entries []*blockindex.Entry, err error) {
	started := time.Now()
	defer func() {
		o.metrics.Observe("enumerate_all_entries", err, started)
	}()
	return o.backend.EnumerateAllEntries(ctx)
}

func (o *Observed) LookupByHash(ctx context.Context, hash chainhash.Hash) (entry *blockindex.Entry, err error) {
	started := time.Now()
	defer func() {
		o.metrics.Observe("lookup_by_hash", err, started)
	}()
	return o.backend.LookupByHash(ctx, hash)
}

func (o *Observed) ReadBlock(ctx context.Context, e *blockindex.Entry) (raw []byte, err error) {
	started := time.Now()
	defer func() {
		o.metrics.Observe("read_block", err, started)
	}()
	return o.backend.ReadBlock(ctx, e)
}

func (o *Observed) ReadUndo(ctx context.Context, e *blockindex.Entry) (raw []byte, err error) {
	started := time.Now()
	defer func() {
		o.metrics.Observe("read_undo", err, started)
	}()
	return o.backend.ReadUndo(ctx, e)
}

func (o *Observed) Close() error {
	return o.backend.Close()
}
