package main

import (
	"bufio"
	"context"
	"encoding/hex"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/jessevdk/go-flags"
	jsoniter "github.com/json-iterator/go"
	"go.uber.org/zap"

	"github.com/goodnatureofminers/blockinsight7000-blockreader/internal/metrics"
	"github.com/goodnatureofminers/blockinsight7000-blockreader/internal/model"
	"github.com/goodnatureofminers/blockinsight7000-blockreader/internal/reader"
)

// chunk bounds the headers held in memory at once.
const chunk = 2000

var json = jsoniter.ConfigCompatibleWithStandardLibrary

type config struct {
	Network   string `long:"network" env:"BTC_DUMP_NETWORK" description:"network name" default:"mainnet"`
	DataDir   string `long:"data-dir" env:"BTC_DUMP_DATA_DIR" description:"node data directory" required:"true"`
	BlocksDir string `long:"blocks-dir" env:"BTC_DUMP_BLOCKS_DIR" description:"directory with blk/rev files"`
	Start     int32  `long:"start" description:"first height" default:"0"`
	Count     int    `long:"count" description:"number of headers, 0 dumps to the validated tip" default:"0"`
	Format    string `long:"format" description:"output format" choice:"binary" choice:"hex" choice:"json" default:"binary"`
	Output    string `long:"output" short:"o" description:"output file, stdout when empty"`
}

type headerLine struct {
	Height int32  `json:"height"`
	Hash   string `json:"hash"`
	Header string `json:"header"`
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
		logger.Fatal("headers dump failed", zap.Error(err))
	}
}

func run(ctx context.Context, cfg config, logger *zap.Logger) (err error) {
	network := model.Network(cfg.Network)
	r := reader.New(
		logger,
		reader.CoreOpener{Metrics: metrics.NewBlockStore(model.BTC, network)},
		metrics.NewReader(model.BTC, network),
	)
	if err := r.Initialize(ctx, reader.Config{
		Network:   network,
		DataDir:   cfg.DataDir,
		BlocksDir: cfg.BlocksDir,
		ReadOnly:  true,
	}); err != nil {
		return fmt.Errorf("initialize reader: %w", err)
	}
	defer func() {
		err = errors.Join(err, r.Close())
	}()

	status, err := r.Status()
	if err != nil {
		return err
	}
	logger.Info("loaded block index",
		zap.Int32("header_height", status.HeaderHeight),
		zap.Int32("validated_height", status.ValidatedHeight),
		zap.Stringer("ibd", status.IBD),
	)

	var out io.Writer = os.Stdout
	if cfg.Output != "" {
		f, createErr := os.Create(cfg.Output)
		if createErr != nil {
			return fmt.Errorf("create output: %w", createErr)
		}
		defer func() {
			err = errors.Join(err, f.Close())
		}()
		out = f
	}
	w := bufio.NewWriter(out)

	remaining := cfg.Count
	if remaining <= 0 {
		remaining = int(status.ValidatedHeight-cfg.Start) + 1
	}
	written, err := dump(ctx, r, w, cfg.Format, cfg.Start, remaining)
	if err != nil {
		return err
	}
	if err := w.Flush(); err != nil {
		return fmt.Errorf("flush output: %w", err)
	}
	logger.Info("headers written", zap.Int("count", written))
	return nil
}

func dump(ctx context.Context, r *reader.Reader, w io.Writer, format string, start int32, remaining int) (int, error) {
	written := 0
	enc := json.NewEncoder(w)
	for remaining > 0 {
		if err := ctx.Err(); err != nil {
			return written, err
		}
		n := min(remaining, chunk)
		entries, err := r.EntryRange(start, n)
		if err != nil {
			return written, err
		}
		if len(entries) == 0 {
			break
		}
		for _, e := range entries {
			header, err := r.HeaderBytes(e)
			if err != nil {
				return written, err
			}
			switch format {
			case "hex":
				_, err = fmt.Fprintln(w, hex.EncodeToString(header))
			case "json":
				err = enc.Encode(headerLine{Height: e.Height, Hash: e.Hash.String(), Header: hex.EncodeToString(header)})
			default:
				_, err = w.Write(header)
			}
			if err != nil {
				return written, fmt.Errorf("write header %d: %w", e.Height, err)
			}
			written++
		}
		start += int32(len(entries))
		remaining -= len(entries)
	}
	return written, nil
}
