// Package exporter copies the best validated chain of a block index reader into ClickHouse.
package exporter

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/goodnatureofminers/blockinsight7000-blockreader/internal/blockindex"
	"github.com/goodnatureofminers/blockinsight7000-blockreader/internal/chain"
	"github.com/goodnatureofminers/blockinsight7000-blockreader/internal/clock"
	"github.com/goodnatureofminers/blockinsight7000-blockreader/internal/model"
	"github.com/goodnatureofminers/blockinsight7000-blockreader/pkg/batcher"
	"github.com/goodnatureofminers/blockinsight7000-blockreader/pkg/safe"
	"github.com/goodnatureofminers/blockinsight7000-blockreader/pkg/workerpool"
)

// ErrReorgTooDeep is returned when the exported rows diverge from the best chain further back than allowed.
var ErrReorgTooDeep = errors.New("exported chain diverges deeper than the reorg limit")

// Options tunes the exporter. Zero values select defaults.
type Options struct {
	BatchSize     int
	WorkerCount   int
	SleepDuration time.Duration
	MaxReorgDepth int32
}

// Service follows a reader and mirrors its best validated chain as block rows.
type Service struct {
	logger        *zap.Logger
	reader        Reader
	repo          Repository
	metrics       Metrics
	coin          model.Coin
	network       model.Network
	blockSignal   <-chan struct{}
	sleep         func(context.Context, time.Duration, <-chan struct{}) (bool, error)
	sleepDuration time.Duration
	batchSize     int
	workerCount   int
	maxReorgDepth int32
}

// NewService builds an exporter for an initialized reader.
func NewService(
	r Reader,
	repo Repository,
	metrics Metrics,
	network model.Network,
	logger *zap.Logger,
	blockSignal <-chan struct{},
	opts Options,
) (*Service, error) {
	if r == nil {
		return nil, errors.New("exporter reader is required")
	}
	if repo == nil {
		return nil, errors.New("exporter repository is required")
	}
	if metrics == nil {
		return nil, errors.New("exporter metrics is required")
	}
	if opts.BatchSize <= 0 {
		opts.BatchSize = defaultBatchSize
	}
	if opts.WorkerCount <= 0 {
		opts.WorkerCount = defaultWorkerCount
	}
	if opts.SleepDuration <= 0 {
		opts.SleepDuration = defaultSleepDuration
	}
	if opts.MaxReorgDepth <= 0 {
		opts.MaxReorgDepth = chain.DefaultIBDThreshold
	}

	return &Service{
		logger: logger.Named("exporter").With(
			zap.String("coin", string(model.BTC)),
			zap.String("network", string(network)),
		),
		reader:        r,
		repo:          repo,
		metrics:       metrics,
		coin:          model.BTC,
		network:       network,
		blockSignal:   blockSignal,
		sleep:         clock.SleepOrWake,
		sleepDuration: opts.SleepDuration,
		batchSize:     opts.BatchSize,
		workerCount:   opts.WorkerCount,
		maxReorgDepth: opts.MaxReorgDepth,
	}, nil
}

// Run exports until the context is canceled. It only sleeps once the exported rows reach the validated tip
// or a pass fails.
func (s *Service) Run(ctx context.Context) error {
	for {
		if ctx.Err() != nil {
			return ctx.Err()
		}
		caughtUp, err := s.Sync(ctx)
		if err != nil {
			if errors.Is(err, ErrReorgTooDeep) {
				return err
			}
			s.logger.Warn("sync failed, backing off", zap.Error(err), zap.Duration("sleep", s.sleepDuration))
		}
		if err == nil && !caughtUp {
			continue
		}
		woken, err := s.sleep(ctx, s.sleepDuration, s.blockSignal)
		if err != nil {
			return err
		}
		if woken {
			s.logger.Debug("woken by block signal")
		}
	}
}

// Sync refreshes the reader and exports at most one batch of heights. It reports whether the exported rows
// reached the validated tip.
func (s *Service) Sync(ctx context.Context) (caughtUp bool, err error) {
	started := time.Now()
	defer func() {
		s.metrics.ObserveSync(err, started)
	}()

	if _, err = s.reader.Refresh(ctx); err != nil {
		return false, fmt.Errorf("refresh reader: %w", err)
	}
	status, err := s.reader.Status()
	if err != nil {
		return false, fmt.Errorf("reader status: %w", err)
	}
	if status.ValidatedHeight < 0 {
		s.logger.Debug("nothing validated yet", zap.Stringer("ibd", status.IBD))
		return true, nil
	}

	next, err := s.resumeHeight(ctx, status.ValidatedHeight)
	if err != nil {
		return false, err
	}
	if next > status.ValidatedHeight {
		return true, nil
	}

	count := s.batchSize
	if remaining := int(status.ValidatedHeight-next) + 1; remaining < count {
		count = remaining
	}
	if err = s.export(ctx, next, count); err != nil {
		return false, err
	}
	last := next + int32(count) - 1
	s.logger.Info("exported blocks",
		zap.Int32("from", next),
		zap.Int32("to", last),
		zap.Int32("validated_height", status.ValidatedHeight),
		zap.Stringer("ibd", status.IBD),
	)
	return last >= status.ValidatedHeight, nil
}

// resumeHeight returns the first height to export. Exported rows that no longer match the best chain are
// deleted first.
func (s *Service) resumeHeight(ctx context.Context, validatedHeight int32) (int32, error) {
	maxHeight, ok, err := s.repo.MaxBlockHeight(ctx, s.coin, s.network)
	if err != nil {
		return 0, fmt.Errorf("max exported height: %w", err)
	}
	if !ok {
		return 0, nil
	}
	top, err := safe.Int32(maxHeight)
	if err != nil {
		return 0, fmt.Errorf("max exported height: %w", err)
	}

	for height := top; height >= 0; height-- {
		depth := top - height
		if depth > s.maxReorgDepth {
			return 0, fmt.Errorf("no match between heights %d and %d: %w", height+1, top, ErrReorgTooDeep)
		}
		matches, err := s.matches(ctx, height, validatedHeight)
		if err != nil {
			return 0, err
		}
		if !matches {
			continue
		}
		if depth > 0 {
			if err := s.rewind(ctx, height+1, int(depth)); err != nil {
				return 0, err
			}
		}
		return height + 1, nil
	}

	if err := s.rewind(ctx, 0, int(top)+1); err != nil {
		return 0, err
	}
	return 0, nil
}

func (s *Service) matches(ctx context.Context, height, validatedHeight int32) (bool, error) {
	if height > validatedHeight {
		return false, nil
	}
	entries, err := s.reader.EntryRange(height, 1)
	if err != nil {
		return false, fmt.Errorf("entry at %d: %w", height, err)
	}
	if len(entries) == 0 {
		return false, nil
	}
	hash, ok, err := s.repo.BlockHashByHeight(ctx, s.coin, s.network, uint64(height))
	if err != nil {
		return false, fmt.Errorf("exported hash at %d: %w", height, err)
	}
	return ok && hash == entries[0].Hash.String(), nil
}

func (s *Service) rewind(ctx context.Context, from int32, depth int) error {
	s.logger.Warn("exported rows left the best chain, rewinding",
		zap.Int32("from", from),
		zap.Int("depth", depth),
	)
	if err := s.repo.DeleteBlocksFrom(ctx, s.coin, s.network, uint64(from)); err != nil {
		return fmt.Errorf("rewind to %d: %w", from, err)
	}
	s.metrics.ObserveReorg(depth)
	return nil
}

func (s *Service) export(ctx context.Context, start int32, count int) (err error) {
	started := time.Now()
	defer func() {
		s.metrics.ObserveProcessBatch(err, count, started)
	}()

	entries, err := s.reader.EntryRange(start, count)
	if err != nil {
		return fmt.Errorf("entries from %d: %w", start, err)
	}
	blocks, err := workerpool.Map(ctx, s.workerCount, entries, s.convert)
	if err != nil {
		return fmt.Errorf("read blocks from %d: %w", start, err)
	}

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()
	b := batcher.New[model.Block](
		s.logger.Named("blockBatcher"),
		s.repo.InsertBlocks,
		blockBatcherCapacity,
		blockBatcherFlushInterval,
		blockBatcherRPS,
	)
	b.Start(ctx)
	defer b.Stop()

	for _, block := range blocks {
		if err = b.Add(ctx, block); err != nil {
			break
		}
	}
	if err == nil {
		err = b.Flush(ctx)
	}
	if err != nil {
		// earlier chunks may have landed; drop them so the next pass resumes from start
		if delErr := s.repo.DeleteBlocksFrom(context.WithoutCancel(ctx), s.coin, s.network, uint64(start)); delErr != nil {
			s.logger.Error("drop partial batch failed", zap.Int32("from", start), zap.Error(delErr))
		}
		return fmt.Errorf("insert blocks from %d: %w", start, err)
	}
	return nil
}

func (s *Service) convert(ctx context.Context, e *blockindex.Entry) (model.Block, error) {
	raw, err := s.reader.Block(ctx, e)
	switch {
	case err == nil:
	case errors.Is(err, blockindex.ErrNoBlockData):
		s.logger.Debug("block data pruned, exporting header only", zap.Int32("height", e.Height))
	default:
		return model.Block{}, fmt.Errorf("block %d: %w", e.Height, err)
	}
	return toBlock(s.network, e, len(raw))
}
