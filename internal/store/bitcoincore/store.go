// Package bitcoincore reads a Bitcoin Core data directory: the LevelDB block index and the blk/rev flat files.
// It never writes; the node may keep running while the store is open.
package bitcoincore

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os"
	"sync"

	"github.com/btcsuite/btcd/chaincfg"
	"github.com/btcsuite/btcd/chaincfg/chainhash"
	"github.com/btcsuite/goleveldb/leveldb"
	"github.com/btcsuite/goleveldb/leveldb/opt"
	"github.com/btcsuite/goleveldb/leveldb/util"
	lru "github.com/hashicorp/golang-lru"

	"github.com/goodnatureofminers/blockinsight7000-blockreader/internal/blockindex"
)

// DefaultCacheSize is the number of raw blocks kept in memory.
const DefaultCacheSize = 16

// undoChecksumSize is the double-SHA256 stored after every undo record.
const undoChecksumSize = chainhash.HashSize

// Options locate the node's files.
type Options struct {
	// IndexDir holds the LevelDB block index, usually <blocks>/index.
	IndexDir string
	// BlocksDir holds blk/rev files and the optional xor.dat.
	BlocksDir string
	Params    *chaincfg.Params
	CacheSize int
}

// Store is a read-only view over a node data directory.
type Store struct {
	opts  Options
	files flatFileReader

	mu     sync.RWMutex
	db     *leveldb.DB
	closed bool

	blocks *lru.Cache
}

// Open validates the directories and opens the block index read-only. Missing directories and
// index failures wrap blockindex.ErrStoreUnavailable.
func Open(opts Options) (*Store, error) {
	if opts.Params == nil {
		return nil, fmt.Errorf("open store: chain params required: %w", blockindex.ErrConfiguration)
	}
	for _, dir := range []string{opts.IndexDir, opts.BlocksDir} {
		info, err := os.Stat(dir)
		if err != nil {
			return nil, fmt.Errorf("open store: %w: %w", blockindex.ErrStoreUnavailable, err)
		}
		if !info.IsDir() {
			return nil, fmt.Errorf("open store: %s is not a directory: %w", dir, blockindex.ErrStoreUnavailable)
		}
	}
	if opts.CacheSize <= 0 {
		opts.CacheSize = DefaultCacheSize
	}

	key, err := loadXORKey(opts.BlocksDir)
	if err != nil {
		return nil, fmt.Errorf("open store: %w: %w", blockindex.ErrStoreUnavailable, err)
	}
	cache, err := lru.New(opts.CacheSize)
	if err != nil {
		return nil, fmt.Errorf("create block cache: %w", err)
	}
	db, err := openIndex(opts.IndexDir)
	if err != nil {
		return nil, err
	}

	return &Store{
		opts: opts,
		files: flatFileReader{
			dir:   opts.BlocksDir,
			magic: opts.Params.Net,
			key:   key,
		},
		db:     db,
		blocks: cache,
	}, nil
}

func openIndex(dir string) (*leveldb.DB, error) {
	db, err := leveldb.OpenFile(dir, &opt.Options{
		ReadOnly:       true,
		ErrorIfMissing: true,
		Compression:    opt.NoCompression,
	})
	if err != nil {
		return nil, fmt.Errorf("open block index %s: %w: %w", dir, blockindex.ErrStoreUnavailable, err)
	}
	return db, nil
}

// Close releases the index handle.
func (s *Store) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.closed = true
	if s.db == nil {
		return nil
	}
	err := s.db.Close()
	s.db = nil
	return err
}

// reopen replaces the index handle so records flushed by the node since the last open become visible.
// The old handle is released first; on failure the store stays closed until the next reopen succeeds.
func (s *Store) reopen() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return fmt.Errorf("reopen index: store closed: %w", blockindex.ErrStoreUnavailable)
	}
	if s.db != nil {
		_ = s.db.Close()
		s.db = nil
	}
	db, err := openIndex(s.opts.IndexDir)
	if err != nil {
		return err
	}
	s.db = db
	return nil
}

// EnumerateAllEntries reads every block index record from a single snapshot and fills in chain work.
func (s *Store) EnumerateAllEntries(ctx context.Context) ([]*blockindex.Entry, error) {
	if err := s.reopen(); err != nil {
		return nil, err
	}

	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.db == nil {
		return nil, fmt.Errorf("enumerate entries: store closed: %w", blockindex.ErrStoreUnavailable)
	}
	snap, err := s.db.GetSnapshot()
	if err != nil {
		return nil, fmt.Errorf("index snapshot: %w: %w", blockindex.ErrStoreUnavailable, err)
	}
	defer snap.Release()

	iter := snap.NewIterator(util.BytesPrefix([]byte{blockIndexPrefix}), nil)
	defer iter.Release()

	var entries []*blockindex.Entry
	for iter.Next() {
		if len(entries)%4096 == 0 {
			if err := ctx.Err(); err != nil {
				return nil, err
			}
		}
		entry, err := decodeIndexRecord(iter.Key(), iter.Value())
		if err != nil {
			return nil, err
		}
		entries = append(entries, entry)
	}
	if err := iter.Error(); err != nil {
		return nil, fmt.Errorf("iterate index: %w: %w", blockindex.ErrStoreUnavailable, err)
	}

	blockindex.ComputeChainWork(entries)
	return entries, nil
}

// LookupByHash reads a single record from the index, on or off the best chain. Chain work is not known
// for a point lookup and is left nil.
func (s *Store) LookupByHash(_ context.Context, hash chainhash.Hash) (*blockindex.Entry, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.db == nil {
		return nil, fmt.Errorf("lookup %s: store closed: %w", hash, blockindex.ErrStoreUnavailable)
	}
	key := indexKey(hash)
	value, err := s.db.Get(key, nil)
	if errors.Is(err, leveldb.ErrNotFound) {
		return nil, fmt.Errorf("lookup %s: %w", hash, blockindex.ErrEntryNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("lookup %s: %w: %w", hash, blockindex.ErrStoreUnavailable, err)
	}
	return decodeIndexRecord(key, value)
}

// ReadBlock returns the serialized block of e. The caller owns the returned slice.
func (s *Store) ReadBlock(_ context.Context, e *blockindex.Entry) ([]byte, error) {
	if !e.Status.Has(blockindex.HasBlockData) {
		return nil, fmt.Errorf("block %s at height %d: %w", e.Hash, e.Height, blockindex.ErrNoBlockData)
	}
	if cached, ok := s.blocks.Get(e.Hash); ok {
		return bytes.Clone(cached.([]byte)), nil
	}

	raw, _, err := s.files.readRecord(blockFileName(e.Pos.File), e.Pos.DataPos, 0, blockindex.ErrNoBlockData)
	if err != nil {
		return nil, fmt.Errorf("read block %s: %w", e.Hash, err)
	}
	if len(raw) < blockindex.HeaderSize {
		return nil, fmt.Errorf("read block %s: %d bytes: %w", e.Hash, len(raw), blockindex.ErrIndexCorruption)
	}
	if got := chainhash.DoubleHashH(raw[:blockindex.HeaderSize]); got != e.Hash {
		return nil, fmt.Errorf("read block %s: data hashes to %s: %w", e.Hash, got, blockindex.ErrIndexCorruption)
	}

	s.blocks.Add(e.Hash, raw)
	return bytes.Clone(raw), nil
}

// ReadUndo returns the serialized undo record of e after checking its trailing checksum.
func (s *Store) ReadUndo(_ context.Context, e *blockindex.Entry) ([]byte, error) {
	if !e.Status.Has(blockindex.HasUndoData) {
		return nil, fmt.Errorf("undo %s at height %d: %w", e.Hash, e.Height, blockindex.ErrNoUndoData)
	}

	raw, checksum, err := s.files.readRecord(undoFileName(e.Pos.File), e.Pos.UndoPos, undoChecksumSize, blockindex.ErrNoUndoData)
	if err != nil {
		return nil, fmt.Errorf("read undo %s: %w", e.Hash, err)
	}
	hashed := make([]byte, 0, chainhash.HashSize+len(raw))
	hashed = append(hashed, e.PrevHash[:]...)
	hashed = append(hashed, raw...)
	if sum := chainhash.DoubleHashB(hashed); !bytes.Equal(sum, checksum) {
		return nil, fmt.Errorf("read undo %s: checksum mismatch: %w", e.Hash, blockindex.ErrIndexCorruption)
	}
	return raw, nil
}
