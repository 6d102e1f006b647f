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
	"github.com/rs/cors"
	"go.uber.org/zap"

	"github.com/goodnatureofminers/blockinsight7000-blockreader/internal/blocksignal"
	"github.com/goodnatureofminers/blockinsight7000-blockreader/internal/clock"
	"github.com/goodnatureofminers/blockinsight7000-blockreader/internal/metrics"
	"github.com/goodnatureofminers/blockinsight7000-blockreader/internal/model"
	"github.com/goodnatureofminers/blockinsight7000-blockreader/internal/reader"
	"github.com/goodnatureofminers/blockinsight7000-blockreader/internal/transport/httpapi"
)

type config struct {
	Network         string        `long:"network" env:"BTC_READER_NETWORK" description:"network name" default:"mainnet"`
	DataDir         string        `long:"data-dir" env:"BTC_READER_DATA_DIR" description:"node data directory" required:"true"`
	BlocksDir       string        `long:"blocks-dir" env:"BTC_READER_BLOCKS_DIR" description:"directory with blk/rev files, defaults to <data-dir>/<network>/blocks"`
	IBDThreshold    int32         `long:"ibd-threshold" env:"BTC_READER_IBD_THRESHOLD" description:"header lead that counts as initial block download" default:"144"`
	BlockCacheSize  int           `long:"block-cache-size" env:"BTC_READER_BLOCK_CACHE_SIZE" description:"raw blocks kept in memory" default:"64"`
	RefreshInterval time.Duration `long:"refresh-interval" env:"BTC_READER_REFRESH_INTERVAL" description:"block index reload interval" default:"10s"`
	ZMQAddr         string        `long:"zmq-addr" env:"BTC_READER_ZMQ_ADDR" description:"node zmqpubhashblock endpoint"`
	Addr            string        `long:"addr" env:"BTC_READER_ADDR" description:"http listen address" default:":8002"`
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

	if err := run(ctx, cfg, logger); err != nil {
		logger.Fatal("btc reader api failed", zap.Error(err))
	}
}

func run(ctx context.Context, cfg config, logger *zap.Logger) error {
	network := model.Network(cfg.Network)
	r := reader.New(
		logger,
		reader.CoreOpener{Metrics: metrics.NewBlockStore(model.BTC, network)},
		metrics.NewReader(model.BTC, network),
	)
	err := r.Initialize(ctx, reader.Config{
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
	go refreshLoop(ctx, r, cfg.RefreshInterval, blockSignal, logger)

	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.Handler())
	mux.Handle("/", httpapi.NewHandler(logger, r, metrics.NewHTTPAPI()))

	s := &http.Server{
		Addr:              cfg.Addr,
		Handler:           cors.Default().Handler(mux),
		ReadTimeout:       15 * time.Second,
		ReadHeaderTimeout: 5 * time.Second,
		WriteTimeout:      60 * time.Second,
		IdleTimeout:       60 * time.Second,
		MaxHeaderBytes:    http.DefaultMaxHeaderBytes,
	}
	go func() {
		<-ctx.Done()
		logger.Info("Shutting down the http server")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := s.Shutdown(shutdownCtx); err != nil {
			logger.Error("Failed to shutdown http server", zap.Error(err))
		}
	}()

	logger.Info("Starting HTTP server", zap.String("addr", cfg.Addr))
	if err := s.ListenAndServe(); !errors.Is(err, http.ErrServerClosed) {
		return fmt.Errorf("listen and serve: %w", err)
	}
	return nil
}

func refreshLoop(ctx context.Context, r *reader.Reader, interval time.Duration, blockSignal <-chan struct{}, logger *zap.Logger) {
	for {
		if _, err := clock.SleepOrWake(ctx, interval, blockSignal); err != nil {
			return
		}
		changed, err := r.Refresh(ctx)
		if err != nil {
			logger.Warn("refresh failed, serving previous load", zap.Error(err))
			continue
		}
		if changed {
			status, err := r.Status()
			if err != nil {
				continue
			}
			logger.Info("best validated chain changed",
				zap.Int32("validated_height", status.ValidatedHeight),
				zap.Int32("header_height", status.HeaderHeight),
				zap.Stringer("ibd", status.IBD),
			)
		}
	}
}
