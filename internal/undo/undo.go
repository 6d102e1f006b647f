// Package undo decodes the node's per-block undo records into the outputs each block spent.
package undo

import (
	"bytes"
	"fmt"

	"github.com/btcsuite/btcd/btcutil"
	"github.com/btcsuite/btcd/wire"

	"github.com/goodnatureofminers/blockinsight7000-blockreader/internal/blockindex"
	"github.com/goodnatureofminers/blockinsight7000-blockreader/internal/store/bitcoincore"
)

// Coin is an output as it existed before being spent.
type Coin struct {
	Height   uint32
	Coinbase bool
	Amount   btcutil.Amount
	PkScript []byte
}

// TxUndo lists the coins spent by one non-coinbase transaction, in input order.
type TxUndo struct {
	Spent []Coin
}

// BlockUndo holds one TxUndo per non-coinbase transaction; Txs[i] belongs to block transaction i+1.
type BlockUndo struct {
	Txs []TxUndo
}

// minCoinSize bounds list lengths against the remaining input: code, amount and script size take a byte each.
const minCoinSize = 3

// Decode parses a serialized undo record. Malformed input wraps blockindex.ErrIndexCorruption.
func Decode(raw []byte) (*BlockUndo, error) {
	r := bytes.NewReader(raw)
	txCount, err := readCount(r, 1)
	if err != nil {
		return nil, decodeErr("read tx count", err)
	}

	out := &BlockUndo{Txs: make([]TxUndo, txCount)}
	for i := range out.Txs {
		coinCount, err := readCount(r, minCoinSize)
		if err != nil {
			return nil, decodeErr(fmt.Sprintf("tx %d: read coin count", i), err)
		}
		coins := make([]Coin, coinCount)
		for j := range coins {
			if err := readCoin(r, &coins[j]); err != nil {
				return nil, decodeErr(fmt.Sprintf("tx %d coin %d", i, j), err)
			}
		}
		out.Txs[i].Spent = coins
	}
	if r.Len() != 0 {
		return nil, decodeErr("trailing data", fmt.Errorf("%d bytes", r.Len()))
	}
	return out, nil
}

func readCount(r *bytes.Reader, minItemSize int) (int, error) {
	n, err := wire.ReadVarInt(r, 0)
	if err != nil {
		return 0, err
	}
	if n > uint64(r.Len()/minItemSize) {
		return 0, fmt.Errorf("count %d exceeds remaining %d bytes", n, r.Len())
	}
	return int(n), nil
}

func readCoin(r *bytes.Reader, c *Coin) error {
	code, err := bitcoincore.ReadVarInt(r)
	if err != nil {
		return fmt.Errorf("read code: %w", err)
	}
	if code>>1 > uint64(^uint32(0)) {
		return fmt.Errorf("height %d out of range", code>>1)
	}
	c.Height = uint32(code >> 1)
	c.Coinbase = code&1 == 1
	if c.Height > 0 {
		// legacy transaction version, always zero since 0.15
		if _, err := bitcoincore.ReadVarInt(r); err != nil {
			return fmt.Errorf("read version: %w", err)
		}
	}

	compressed, err := bitcoincore.ReadVarInt(r)
	if err != nil {
		return fmt.Errorf("read amount: %w", err)
	}
	c.Amount = btcutil.Amount(DecompressAmount(compressed))

	script, err := readCompressedScript(r)
	if err != nil {
		return err
	}
	c.PkScript = script
	return nil
}

func decodeErr(step string, err error) error {
	return fmt.Errorf("decode undo: %s: %w: %w", step, blockindex.ErrIndexCorruption, err)
}
