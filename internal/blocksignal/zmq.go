// Package blocksignal turns a node's ZMQ hashblock feed into wake-ups.
package blocksignal

import (
	"context"
	"encoding/hex"
	"errors"
	"fmt"
	"time"

	"github.com/go-zeromq/zmq4"
	"go.uber.org/zap"

	"github.com/goodnatureofminers/blockinsight7000-blockreader/internal/clock"
)

const (
	topicHashBlock = "hashblock"
	hashSize       = 32
	retryDelay     = time.Second
)

// Subscribe connects to the node's ZMQ publisher and signals once per announced block. Signals coalesce:
// at most one is pending while the consumer is busy. An empty addr disables the feed and returns a nil
// channel, which never fires.
func Subscribe(ctx context.Context, addr string, logger *zap.Logger) (<-chan struct{}, error) {
	if addr == "" {
		return nil, nil
	}

	sub := zmq4.NewSub(ctx)
	if err := sub.Dial(addr); err != nil {
		_ = sub.Close()
		return nil, fmt.Errorf("dial zmq %s: %w", addr, err)
	}
	if err := sub.SetOption(zmq4.OptionSubscribe, topicHashBlock); err != nil {
		_ = sub.Close()
		return nil, fmt.Errorf("subscribe %s: %w", topicHashBlock, err)
	}

	logger = logger.Named("blocksignal").With(zap.String("addr", addr))
	notify := make(chan struct{}, 1)

	go func() {
		defer func() {
			_ = sub.Close()
		}()
		for {
			msg, err := sub.Recv()
			if err != nil {
				if ctx.Err() != nil || errors.Is(err, context.Canceled) {
					return
				}
				logger.Warn("zmq recv failed", zap.Error(err))
				if err := clock.SleepWithContext(ctx, retryDelay); err != nil {
					return
				}
				continue
			}
			if len(msg.Frames) < 2 || len(msg.Frames[1]) != hashSize {
				logger.Warn("skip malformed zmq message", zap.Int("parts", len(msg.Frames)))
				continue
			}
			logger.Debug("block announced", zap.String("hash", hex.EncodeToString(msg.Frames[1])))

			select {
			case notify <- struct{}{}:
			default:
			}
		}
	}()

	return notify, nil
}
