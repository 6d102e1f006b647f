package bitcoincore

import (
	"bytes"
	"fmt"
	"math"

	"github.com/btcsuite/btcd/chaincfg/chainhash"
	"github.com/btcsuite/btcd/wire"

	"github.com/goodnatureofminers/blockinsight7000-blockreader/internal/blockindex"
)

// blockIndexPrefix prefixes every block index key; the rest of the key is the block hash.
const blockIndexPrefix = 'b'

func indexKey(hash chainhash.Hash) []byte {
	key := make([]byte, 0, 1+chainhash.HashSize)
	key = append(key, blockIndexPrefix)
	return append(key, hash[:]...)
}

// decodeIndexRecord parses one block index value. Bytes after the header are ignored since
// some node forks append fields there.
func decodeIndexRecord(key, value []byte) (*blockindex.Entry, error) {
	if len(key) != 1+chainhash.HashSize || key[0] != blockIndexPrefix {
		return nil, fmt.Errorf("unexpected index key %x: %w", key, blockindex.ErrIndexCorruption)
	}
	var keyHash chainhash.Hash
	copy(keyHash[:], key[1:])

	r := bytes.NewReader(value)
	fields := make([]uint64, 4)
	for i := range fields {
		v, err := ReadVarInt(r)
		if err != nil {
			return nil, recordErr(keyHash, "read fields", err)
		}
		fields[i] = v
	}
	// fields: client version, height, status, tx count
	height, status, txCount := fields[1], fields[2], fields[3]
	if height > math.MaxInt32 || txCount > math.MaxUint32 {
		return nil, recordErr(keyHash, "range check", fmt.Errorf("height %d tx count %d", height, txCount))
	}

	var pos blockindex.DiskPos
	if status&(statusHaveData|statusHaveUndo) != 0 {
		file, err := ReadVarInt(r)
		if err != nil {
			return nil, recordErr(keyHash, "read file number", err)
		}
		if file > math.MaxInt32 {
			return nil, recordErr(keyHash, "range check", fmt.Errorf("file %d", file))
		}
		pos.File = int32(file)
	}
	if status&statusHaveData != 0 {
		dataPos, err := readUint32VarInt(r)
		if err != nil {
			return nil, recordErr(keyHash, "read data position", err)
		}
		pos.DataPos = dataPos
	}
	if status&statusHaveUndo != 0 {
		undoPos, err := readUint32VarInt(r)
		if err != nil {
			return nil, recordErr(keyHash, "read undo position", err)
		}
		pos.UndoPos = undoPos
	}

	var header wire.BlockHeader
	if err := header.Deserialize(r); err != nil {
		return nil, recordErr(keyHash, "read header", err)
	}

	entry := blockindex.NewEntry(header, int32(height), decodeStatus(status), uint32(txCount))
	entry.Pos = pos
	if entry.Hash != keyHash {
		return nil, recordErr(keyHash, "verify hash", fmt.Errorf("header hashes to %s", entry.Hash))
	}
	return entry, nil
}

func readUint32VarInt(r *bytes.Reader) (uint32, error) {
	v, err := ReadVarInt(r)
	if err != nil {
		return 0, err
	}
	if v > math.MaxUint32 {
		return 0, fmt.Errorf("value %d exceeds uint32", v)
	}
	return uint32(v), nil
}

func recordErr(hash chainhash.Hash, step string, err error) error {
	return fmt.Errorf("decode index record %s: %s: %w: %w", hash, step, blockindex.ErrIndexCorruption, err)
}
