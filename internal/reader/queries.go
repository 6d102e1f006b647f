package reader

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"sort"
	"time"

	"github.com/btcsuite/btcd/chaincfg/chainhash"
	"github.com/btcsuite/btcd/wire"
	"go.uber.org/zap"

	"github.com/goodnatureofminers/blockinsight7000-blockreader/internal/blockindex"
	"github.com/goodnatureofminers/blockinsight7000-blockreader/internal/chain"
	"github.com/goodnatureofminers/blockinsight7000-blockreader/internal/model"
	"github.com/goodnatureofminers/blockinsight7000-blockreader/internal/undo"
)

// medianTimeSpan is the number of blocks whose timestamps form the median time past.
const medianTimeSpan = 11

// ErrInvalidRange is returned for header ranges with a negative start or count.
var ErrInvalidRange = errors.New("invalid range")

var errNilEntry = fmt.Errorf("nil entry: %w", blockindex.ErrEntryNotFound)

// Status summarizes the latest load.
type Status struct {
	Network         model.Network
	HeaderHeight    int32
	ValidatedHeight int32
	IBD             chain.IBDStatus
	Tip             *blockindex.Entry
	LoadedAt        time.Time
}

// Status reports heights, sync state and tip of the latest load.
func (r *Reader) Status() (Status, error) {
	snap, err := r.snapshot()
	if err != nil {
		return Status{}, err
	}
	tip, _ := snap.chain.Tip()
	return Status{
		Network:         snap.session.layout.Network.Name,
		HeaderHeight:    snap.headerHeight,
		ValidatedHeight: snap.chain.Height(),
		IBD:             chain.Classify(snap.headerHeight, snap.chain.Height(), snap.session.threshold),
		Tip:             tip,
		LoadedAt:        snap.loadedAt,
	}, nil
}

// IBDStatus classifies how far validation trails the known headers. It performs no I/O.
func (r *Reader) IBDStatus() (chain.IBDStatus, error) {
	snap, err := r.snapshot()
	if err != nil {
		return chain.NoData, err
	}
	return chain.Classify(snap.headerHeight, snap.chain.Height(), snap.session.threshold), nil
}

// HeaderHeight is the greatest height among all known headers.
func (r *Reader) HeaderHeight() (int32, error) {
	snap, err := r.snapshot()
	if err != nil {
		return 0, err
	}
	return snap.headerHeight, nil
}

// ValidatedHeight is the height of the best validated tip, -1 when nothing is validated.
func (r *Reader) ValidatedHeight() (int32, error) {
	snap, err := r.snapshot()
	if err != nil {
		return -1, err
	}
	return snap.chain.Height(), nil
}

// BestValidatedEntry returns the tip of the best validated chain.
func (r *Reader) BestValidatedEntry() (*blockindex.Entry, error) {
	snap, err := r.snapshot()
	if err != nil {
		return nil, err
	}
	tip, ok := snap.chain.Tip()
	if !ok {
		return nil, fmt.Errorf("best validated entry: %w", blockindex.ErrEntryNotFound)
	}
	return tip, nil
}

// EntryByHeight returns the best-chain entry at height.
func (r *Reader) EntryByHeight(height int32) (*blockindex.Entry, error) {
	snap, err := r.snapshot()
	if err != nil {
		return nil, err
	}
	e, ok := snap.chain.EntryAt(height)
	if !ok {
		r.logger.Debug("height outside validated chain",
			zap.Int32("height", height),
			zap.Int32("validated_height", snap.chain.Height()),
		)
		return nil, fmt.Errorf("height %d: %w", height, blockindex.ErrEntryNotFound)
	}
	return e, nil
}

// EntryByHash finds any indexed entry, on or off the best chain. Entries written after the latest load are
// looked up in the store.
func (r *Reader) EntryByHash(ctx context.Context, hash chainhash.Hash) (*blockindex.Entry, error) {
	snap, err := r.snapshot()
	if err != nil {
		return nil, err
	}
	if e, ok := snap.entries[hash]; ok {
		return e, nil
	}
	return snap.session.store.LookupByHash(ctx, hash)
}

// GenesisHash returns the genesis of the loaded chain, or of the configured network while nothing is validated.
func (r *Reader) GenesisHash() (chainhash.Hash, error) {
	snap, err := r.snapshot()
	if err != nil {
		return chainhash.Hash{}, err
	}
	if genesis, ok := snap.chain.Genesis(); ok {
		return genesis.Hash, nil
	}
	return *snap.session.layout.Network.Params.GenesisHash, nil
}

// IsOnBestChain reports whether e is the entry selected at its height.
func (r *Reader) IsOnBestChain(e *blockindex.Entry) (bool, error) {
	snap, err := r.snapshot()
	if err != nil {
		return false, err
	}
	return snap.chain.Contains(e), nil
}

// Previous returns the parent of e.
func (r *Reader) Previous(ctx context.Context, e *blockindex.Entry) (*blockindex.Entry, error) {
	if e == nil {
		return nil, errNilEntry
	}
	if !e.HasParent() {
		return nil, fmt.Errorf("previous of %s: %w", e.Hash, blockindex.ErrEntryNotFound)
	}
	return r.EntryByHash(ctx, e.PrevHash)
}

// Next returns the best-chain successor of e. Entries off the best chain have no successor.
func (r *Reader) Next(e *blockindex.Entry) (*blockindex.Entry, error) {
	snap, err := r.snapshot()
	if err != nil {
		return nil, err
	}
	if e == nil {
		return nil, errNilEntry
	}
	next, ok := snap.chain.Next(e)
	if !ok {
		return nil, fmt.Errorf("next of %s: %w", e.Hash, blockindex.ErrEntryNotFound)
	}
	return next, nil
}

// MedianTimePast is the median timestamp of e and up to ten of its ancestors.
func (r *Reader) MedianTimePast(ctx context.Context, e *blockindex.Entry) (time.Time, error) {
	if e == nil {
		return time.Time{}, errNilEntry
	}
	times := make([]uint32, 0, medianTimeSpan)
	cur := e
	for len(times) < medianTimeSpan {
		times = append(times, cur.Timestamp)
		if !cur.HasParent() {
			break
		}
		parent, err := r.Previous(ctx, cur)
		if err != nil {
			return time.Time{}, fmt.Errorf("median time past of %s: %w", e.Hash, err)
		}
		cur = parent
	}
	sort.Slice(times, func(i, j int) bool { return times[i] < times[j] })
	return time.Unix(int64(times[len(times)/2]), 0).UTC(), nil
}

// Block returns the serialized block of e. Entries without stored data fail with blockindex.ErrNoBlockData;
// read failures are returned as other errors.
func (r *Reader) Block(ctx context.Context, e *blockindex.Entry) ([]byte, error) {
	snap, err := r.snapshot()
	if err != nil {
		return nil, err
	}
	if e == nil {
		return nil, errNilEntry
	}
	if !e.Status.Has(blockindex.HasBlockData) {
		return nil, fmt.Errorf("block %s: %w", e.Hash, blockindex.ErrNoBlockData)
	}
	return snap.session.store.ReadBlock(ctx, e)
}

// BlockByHeight returns the serialized best-chain block at height. A height outside the chain fails with
// blockindex.ErrEntryNotFound, a known entry without data with blockindex.ErrNoBlockData.
func (r *Reader) BlockByHeight(ctx context.Context, height int32) ([]byte, error) {
	e, err := r.EntryByHeight(height)
	if err != nil {
		return nil, err
	}
	return r.Block(ctx, e)
}

// BlockByHash returns the serialized block with the given hash, on or off the best chain.
func (r *Reader) BlockByHash(ctx context.Context, hash chainhash.Hash) ([]byte, error) {
	e, err := r.EntryByHash(ctx, hash)
	if err != nil {
		return nil, err
	}
	return r.Block(ctx, e)
}

// MsgBlock returns the decoded block of e.
func (r *Reader) MsgBlock(ctx context.Context, e *blockindex.Entry) (*wire.MsgBlock, error) {
	raw, err := r.Block(ctx, e)
	if err != nil {
		return nil, err
	}
	var block wire.MsgBlock
	if err := block.Deserialize(bytes.NewReader(raw)); err != nil {
		return nil, fmt.Errorf("decode block %s: %w: %w", e.Hash, blockindex.ErrIndexCorruption, err)
	}
	return &block, nil
}

// UndoData returns the serialized undo record of e. Genesis has none and fails with blockindex.ErrNotApplicable
// without touching the store.
func (r *Reader) UndoData(ctx context.Context, e *blockindex.Entry) ([]byte, error) {
	snap, err := r.snapshot()
	if err != nil {
		return nil, err
	}
	if e == nil {
		return nil, errNilEntry
	}
	if e.Height == 0 {
		r.logger.Debug("undo data requested for genesis", zap.Stringer("hash", e.Hash))
		return nil, fmt.Errorf("undo data of genesis: %w", blockindex.ErrNotApplicable)
	}
	if !e.Status.Has(blockindex.HasUndoData) {
		return nil, fmt.Errorf("undo %s: %w", e.Hash, blockindex.ErrNoUndoData)
	}
	return snap.session.store.ReadUndo(ctx, e)
}

// SpentOutputs decodes the undo record of e into the outputs its transactions consumed.
func (r *Reader) SpentOutputs(ctx context.Context, e *blockindex.Entry) ([]model.SpentOutput, error) {
	snap, err := r.snapshot()
	if err != nil {
		return nil, err
	}
	raw, err := r.UndoData(ctx, e)
	if err != nil {
		return nil, err
	}
	u, err := undo.Decode(raw)
	if err != nil {
		return nil, fmt.Errorf("undo %s: %w", e.Hash, err)
	}
	return snap.session.scripts.SpentOutputs(u), nil
}

// HeaderBytes returns the 80-byte serialized header of e.
func (r *Reader) HeaderBytes(e *blockindex.Entry) ([]byte, error) {
	if _, err := r.snapshot(); err != nil {
		return nil, err
	}
	if e == nil {
		return nil, errNilEntry
	}
	return blockindex.EncodeHeader(e)
}

// EntryRange returns up to count best-chain entries from start. Fewer entries mean the tip was reached.
func (r *Reader) EntryRange(start int32, count int) ([]*blockindex.Entry, error) {
	if start < 0 || count < 0 {
		return nil, fmt.Errorf("start %d count %d: %w", start, count, ErrInvalidRange)
	}
	snap, err := r.snapshot()
	if err != nil {
		return nil, err
	}
	return snap.chain.Range(start, count), nil
}

// HeadersRaw concatenates the serialized headers of EntryRange(start, count) in height order.
func (r *Reader) HeadersRaw(start int32, count int) ([]byte, error) {
	entries, err := r.EntryRange(start, count)
	if err != nil {
		return nil, err
	}
	out := make([]byte, 0, len(entries)*blockindex.HeaderSize)
	for _, e := range entries {
		header, err := blockindex.EncodeHeader(e)
		if err != nil {
			return nil, err
		}
		out = append(out, header...)
	}
	return out, nil
}
