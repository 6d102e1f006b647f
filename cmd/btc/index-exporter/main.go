package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/jessevdk/go-flags"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"github.com/goodnatureofminers/blockinsight7000-blockreader/internal/blocksignal"
	"github.com/goodnatureofminers/blockinsight7000-blockreader/internal/metrics"
	"github.com/goodnatureofminers/blockinsight7000-blockreader/internal/model"
	"github.com/goodnatureofminers/blockinsight7000-blockreader/internal/reader"
	"github.com/goodnatureofminers/blockinsight7000-blockreader/internal/repository/clickhouse"
	"github.com/goodnatureofminers/blockinsight7000-blockreader/internal/service/exporter"
)

type config struct {
	ClickhouseDSN  string        `long:"clickhouse-dsn" env:"BTC_EXPORTER_CLICKHOUSE_DSN" description:"ClickHouse DSN" required:"true"`
	Network        string        `long:"network" env:"BTC_EXPORTER_NETWORK" description:"network name" default:"mainnet"`
	DataDir        string        `long:"data-dir" env:"BTC_EXPORTER_DATA_DIR" description:"node data directory" required:"true"`
	BlocksDir      string        `long:"blocks-dir" env:"BTC_EXPORTER_BLOCKS_DIR" description:"directory with blk/rev files, defaults to <data-dir>/<network>/blocks"`
	IBDThreshold   int32         `long:"ibd-threshold" env:"BTC_EXPORTER_IBD_THRESHOLD" description:"header lead that counts as initial block download" default:"144"`
	BlockCacheSize int           `long:"block-cache-size" env:"BTC_EXPORTER_BLOCK_CACHE_SIZE" description:"raw blocks kept in memory" default:"16"`
	BatchSize      int           `long:"batch-size" env:"BTC_EXPORTER_BATCH_SIZE" description:"heights exported per pass" default:"500"`
	WorkerCount    int           `long:"worker-count" env:"BTC_EXPORTER_WORKER_COUNT" description:"parallel block reads" default:"8"`
	SleepDuration  time.Duration `long:"sleep" env:"BTC_EXPORTER_SLEEP" description:"pause between passes at the tip" default:"5s"`
	MaxReorgDepth  int32         `long:"max-reorg-depth" env:"BTC_EXPORTER_MAX_REORG_DEPTH" description:"deepest divergence rewound automatically" default:"144"`
	ZMQAddr        string        `long:"zmq-addr" env:"BTC_EXPORTER_ZMQ_ADDR" description:"node zmqpubhashblock endpoint"`
	MetricsAddr    string        `long:"metrics-addr" env:"BTC_EXPORTER_METRICS_ADDR" description:"prometheus listen address" default:":9102"`
}

func main() {
	cfg := config{}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	logger, err := zap.NewDevelopment()
	if err != nil {
		panic("can't initialize zap logger: " + err.Error())
	}
	defer func() {
		_ = logger.Sync()
	}()

	if _, err := flags.ParseArgs(&cfg, os.Args); err != nil {
		var ferr *flags.Error
		if errors.As(err, &ferr) && ferr.Type == flags.ErrHelp {
			return
		}
		logger.Fatal("failed to parse flags", zap.Error(err))
	}

	if err := run(ctx, cfg, logger); err != nil && !errors.Is(err, context.Canceled) {
		logger.Fatal("btc index exporter failed", zap.Error(err))
	}
}

func run(ctx context.Context, cfg config, logger *zap.Logger) error {
	network := model.Network(cfg.Network)

	repo, err := clickhouse.NewRepository(cfg.ClickhouseDSN, metrics.NewClickhouseRepository())
	if err != nil {
		return fmt.Errorf("init repository: %w", err)
	}
	defer func() {
		if err := repo.Close(); err != nil {
			logger.Error("close repository", zap.Error(err))
		}
	}()

	r := reader.New(
		logger,
		reader.CoreOpener{Metrics: metrics.NewBlockStore(model.BTC, network)},
		metrics.NewReader(model.BTC, network),
	)
	err = r.Initialize(ctx, reader.Config{
		Network:        network,
		DataDir:        cfg.DataDir,
		BlocksDir:      cfg.BlocksDir,
		ReadOnly:       true,
		IBDThreshold:   cfg.IBDThreshold,
		BlockCacheSize: cfg.BlockCacheSize,
	})
	if err != nil {
		return fmt.Errorf("initialize reader: %w", err)
	}
	defer func() {
		if err := r.Close(); err != nil {
			logger.Error("close reader", zap.Error(err))
		}
	}()

	blockSignal, err := blocksignal.Subscribe(ctx, cfg.ZMQAddr, logger)
	if err != nil {
		return err
	}

	svc, err := exporter.NewService(
		r,
		repo,
		metrics.NewExporter(model.BTC, network),
		network,
		logger,
		blockSignal,
		exporter.Options{
			BatchSize:     cfg.BatchSize,
			WorkerCount:   cfg.WorkerCount,
			SleepDuration: cfg.SleepDuration,
			MaxReorgDepth: cfg.MaxReorgDepth,
		},
	)
	if err != nil {
		return err
	}

	go serveMetrics(ctx, cfg.MetricsAddr, logger)

	return svc.Run(ctx)
}

func serveMetrics(ctx context.Context, addr string, logger *zap.Logger) {
	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.Handler())
	s := &http.Server{
		Addr:              addr,
		Handler:           mux,
		ReadHeaderTimeout: 5 * time.Second,
	}
	go func() {
		<-ctx.Done()
		if err := s.Shutdown(context.Background()); err != nil {
			logger.Error("Failed to shutdown metrics server", zap.Error(err))
		}
	}()
	if err := s.ListenAndServe(); !errors.Is(err, http.ErrServerClosed) {
		logger.Error("metrics server stopped", zap.Error(err))
	}
}
