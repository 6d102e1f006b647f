package undo

import (
	"bytes"
	"fmt"
	"io"

	"github.com/btcsuite/btcd/btcec/v2"
	"github.com/btcsuite/btcd/txscript"

	"github.com/goodnatureofminers/blockinsight7000-blockreader/internal/store/bitcoincore"
)

const (
	specialScripts = 6
	maxScriptSize  = txscript.MaxScriptSize
)

// DecompressAmount reverses the node's amount compression, which strips trailing decimal zeros.
func DecompressAmount(x uint64) uint64 {
	if x == 0 {
		return 0
	}
	x--
	e := x % 10
	x /= 10
	var n uint64
	if e < 9 {
		d := x%9 + 1
		x /= 9
		n = x*10 + d
	} else {
		n = x + 1
	}
	for ; e > 0; e-- {
		n *= 10
	}
	return n
}

// CompressAmount is the inverse of DecompressAmount.
func CompressAmount(n uint64) uint64 {
	if n == 0 {
		return 0
	}
	var e uint64
	for n%10 == 0 && e < 9 {
		n /= 10
		e++
	}
	if e < 9 {
		d := n % 10
		n /= 10
		return 1 + (n*9+d-1)*10 + e
	}
	return 1 + (n-1)*10 + 9
}

func specialScriptSize(kind uint64) int {
	if kind == 0 || kind == 1 {
		return 20
	}
	return 32
}

func readCompressedScript(r *bytes.Reader) ([]byte, error) {
	kind, err := bitcoincore.ReadVarInt(r)
	if err != nil {
		return nil, fmt.Errorf("read script size: %w", err)
	}
	if kind < specialScripts {
		payload, err := readN(r, uint64(specialScriptSize(kind)))
		if err != nil {
			return nil, fmt.Errorf("read compressed script: %w", err)
		}
		return decompressScript(kind, payload)
	}

	size := kind - specialScripts
	if size > maxScriptSize {
		// oversized scripts are unspendable and stored as a bare OP_RETURN
		if size > uint64(r.Len()) {
			return nil, fmt.Errorf("skip oversized script: %w", io.ErrUnexpectedEOF)
		}
		if _, err := r.Seek(int64(size), io.SeekCurrent); err != nil {
			return nil, fmt.Errorf("skip oversized script: %w", err)
		}
		return []byte{txscript.OP_RETURN}, nil
	}
	script, err := readN(r, size)
	if err != nil {
		return nil, fmt.Errorf("read script: %w", err)
	}
	return script, nil
}

func readN(r *bytes.Reader, n uint64) ([]byte, error) {
	if n > uint64(r.Len()) {
		return nil, io.ErrUnexpectedEOF
	}
	buf := make([]byte, n)
	if _, err := io.ReadFull(r, buf); err != nil {
		return nil, err
	}
	return buf, nil
}

func decompressScript(kind uint64, payload []byte) ([]byte, error) {
	b := txscript.NewScriptBuilder()
	switch kind {
	case 0:
		b.AddOp(txscript.OP_DUP).AddOp(txscript.OP_HASH160).AddData(payload).
			AddOp(txscript.OP_EQUALVERIFY).AddOp(txscript.OP_CHECKSIG)
	case 1:
		b.AddOp(txscript.OP_HASH160).AddData(payload).AddOp(txscript.OP_EQUAL)
	case 2, 3:
		pubKey := append([]byte{byte(kind)}, payload...)
		b.AddData(pubKey).AddOp(txscript.OP_CHECKSIG)
	case 4, 5:
		key, err := btcec.ParsePubKey(append([]byte{byte(kind - 2)}, payload...))
		if err != nil {
			return nil, fmt.Errorf("decompress pubkey: %w", err)
		}
		b.AddData(key.SerializeUncompressed()).AddOp(txscript.OP_CHECKSIG)
	default:
		return nil, fmt.Errorf("unknown compressed script kind %d", kind)
	}
	return b.Script()
}
