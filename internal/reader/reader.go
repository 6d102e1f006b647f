// Package reader exposes a node's block index and block files to another process without running validation.
//
// A Reader starts uninitialized. Initialize opens the store and performs the first load; Refresh repeats the
// load against whatever the node has written since. Each load swaps the chain view in one step, and a failed
// load leaves the previous view in place.
package reader

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"sync/atomic"
	"time"

	"github.com/btcsuite/btcd/chaincfg/chainhash"
	"go.uber.org/zap"

	"github.com/goodnatureofminers/blockinsight7000-blockreader/internal/blockindex"
	"github.com/goodnatureofminers/blockinsight7000-blockreader/internal/chain"
	"github.com/goodnatureofminers/blockinsight7000-blockreader/internal/undo"
)

var errAlreadyInitialized = errors.New("reader already initialized")

// session is the store and settings fixed by Initialize.
type session struct {
	store     BlockStore
	layout    Layout
	threshold int32
	scripts   *undo.ScriptDecoder
}

// snapshot is one successful load. It is never mutated after being published.
type snapshot struct {
	session      *session
	chain        *chain.Chain
	headerHeight int32
	entries      map[chainhash.Hash]*blockindex.Entry
	loadedAt     time.Time
}

// Reader answers block index queries from the latest successful load.
type Reader struct {
	logger  *zap.Logger
	opener  StoreOpener
	metrics Metrics

	// mu serializes Initialize, Refresh and Close.
	mu      sync.Mutex
	session *session

	current atomic.Pointer[snapshot]
}

// New creates an uninitialized reader.
func New(logger *zap.Logger, opener StoreOpener, metrics Metrics) *Reader {
	return &Reader{
		logger:  logger.Named("reader"),
		opener:  opener,
		metrics: metrics,
	}
}

// Initialize opens the store read-only and performs the first load. On failure the store is released and the
// reader stays uninitialized.
func (r *Reader) Initialize(ctx context.Context, cfg Config) (err error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	started := time.Now()
	defer func() {
		r.metrics.ObserveLoad("initialize", err, started)
	}()

	if r.current.Load() != nil {
		return errAlreadyInitialized
	}
	layout, err := cfg.Resolve()
	if err != nil {
		return fmt.Errorf("resolve config: %w", err)
	}
	logger := r.logger.With(zap.String("network", string(layout.Network.Name)))
	logger.Info("initializing",
		zap.String("data_dir", cfg.DataDir),
		zap.String("blocks_dir", layout.BlocksDir),
		zap.String("index_dir", layout.IndexDir),
	)

	store, err := r.opener.Open(layout)
	if err != nil {
		if !errors.Is(err, blockindex.ErrStoreUnavailable) && !errors.Is(err, blockindex.ErrConfiguration) {
			err = fmt.Errorf("%w: %w", blockindex.ErrStoreUnavailable, err)
		}
		logger.Error("open store failed", zap.Error(err))
		return fmt.Errorf("open store: %w", err)
	}

	snap, err := load(ctx, store, layout)
	if err != nil {
		if closeErr := store.Close(); closeErr != nil {
			logger.Warn("close store after failed load", zap.Error(closeErr))
		}
		logger.Error("initial load failed", zap.Error(err))
		return err
	}

	r.session = &session{
		store:     store,
		layout:    layout,
		threshold: cfg.threshold(),
		scripts:   undo.NewScriptDecoder(layout.Network.Params),
	}
	r.publish(snap)

	logger.Info("initialized",
		zap.Int32("header_height", snap.headerHeight),
		zap.Int32("validated_height", snap.chain.Height()),
		zap.Int("entries", len(snap.entries)),
	)
	return nil
}

// Refresh reloads the index and reports whether the validated tip changed. On failure the previous view is kept.
func (r *Reader) Refresh(ctx context.Context) (changed bool, err error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	prev := r.current.Load()
	if prev == nil {
		return false, blockindex.ErrNotReady
	}

	started := time.Now()
	defer func() {
		r.metrics.ObserveLoad("refresh", err, started)
	}()

	snap, err := load(ctx, r.session.store, r.session.layout)
	if err != nil {
		r.logger.Warn("refresh failed, keeping previous chain",
			zap.String("network", string(r.session.layout.Network.Name)),
			zap.Int32("validated_height", prev.chain.Height()),
			zap.Error(err),
		)
		return false, err
	}
	r.publish(snap)

	prevTip, _ := prev.chain.Tip()
	tip, _ := snap.chain.Tip()
	changed = tipHash(prevTip) != tipHash(tip)
	r.logger.Info("refresh complete",
		zap.String("network", string(r.session.layout.Network.Name)),
		zap.Int32("header_height", snap.headerHeight),
		zap.Int32("validated_height", snap.chain.Height()),
		zap.Int32("validated_delta", snap.chain.Height()-prev.chain.Height()),
		zap.Bool("tip_changed", changed),
		zap.Duration("took", time.Since(started)),
	)
	return changed, nil
}

// Close releases the store. The reader answers ErrNotReady afterwards.
func (r *Reader) Close() error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.current.Store(nil)
	if r.session == nil {
		return nil
	}
	err := r.session.store.Close()
	r.session = nil
	return err
}

func (r *Reader) publish(snap *snapshot) {
	snap.session = r.session
	r.current.Store(snap)
	r.metrics.ObserveChain(snap.headerHeight, snap.chain.Height(),
		chain.Classify(snap.headerHeight, snap.chain.Height(), r.session.threshold))
}

func (r *Reader) snapshot() (*snapshot, error) {
	snap := r.current.Load()
	if snap == nil {
		return nil, blockindex.ErrNotReady
	}
	return snap, nil
}

func load(ctx context.Context, store BlockStore, layout Layout) (*snapshot, error) {
	res, err := chain.LoadBestValidatedChain(ctx, store)
	if err != nil {
		return nil, fmt.Errorf("load best validated chain: %w", err)
	}
	if genesis, ok := res.Chain.Genesis(); ok && genesis.Hash != *layout.Network.Params.GenesisHash {
		return nil, fmt.Errorf("index genesis %s does not match %s genesis %s: %w",
			genesis.Hash, layout.Network.Name, layout.Network.Params.GenesisHash, blockindex.ErrConfiguration)
	}
	return &snapshot{
		chain:        res.Chain,
		headerHeight: res.HeaderHeight,
		entries:      res.Entries,
		loadedAt:     time.Now(),
	}, nil
}

func tipHash(e *blockindex.Entry) chainhash.Hash {
	if e == nil {
		return chainhash.Hash{}
	}
	return e.Hash
}
