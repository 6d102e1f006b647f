package bitcoincore

import (
	"bytes"
	"encoding/binary"
	"math"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/btcsuite/btcd/chaincfg"
	"github.com/btcsuite/btcd/chaincfg/chainhash"
	"github.com/btcsuite/btcd/wire"
	"github.com/btcsuite/goleveldb/leveldb"
	"github.com/stretchr/testify/require"

	"github.com/goodnatureofminers/blockinsight7000-blockreader/internal/blockindex"
)

const (
	rawHeaderOnly = 2
	rawGenesis    = validScripts | statusHaveData
	rawFull       = validScripts | statusHaveData | statusHaveUndo
)

// coreDir is a synthetic node data directory written the way the node lays it out.
type coreDir struct {
	t         *testing.T
	params    *chaincfg.Params
	blocksDir string
	indexDir  string
	key       xorKey
	db        *leveldb.DB
}

func newCoreDir(t *testing.T, params *chaincfg.Params, key xorKey) *coreDir {
	t.Helper()

	blocksDir := filepath.Join(t.TempDir(), "blocks")
	indexDir := filepath.Join(blocksDir, "index")
	require.NoError(t, os.MkdirAll(indexDir, 0o755))
	if key != nil {
		require.NoError(t, os.WriteFile(filepath.Join(blocksDir, xorKeyFile), key, 0o600))
	}
	db, err := leveldb.OpenFile(indexDir, nil)
	require.NoError(t, err)

	d := &coreDir{t: t, params: params, blocksDir: blocksDir, indexDir: indexDir, key: key, db: db}
	t.Cleanup(func() {
		if d.db != nil {
			_ = d.db.Close()
		}
	})
	return d
}

// release closes the writer so a read-only handle can be taken.
func (d *coreDir) release() {
	require.NoError(d.t, d.db.Close())
	d.db = nil
}

func (d *coreDir) options() Options {
	return Options{IndexDir: d.indexDir, BlocksDir: d.blocksDir, Params: d.params}
}

func (d *coreDir) open() *Store {
	d.t.Helper()
	d.release()
	s, err := Open(d.options())
	require.NoError(d.t, err)
	d.t.Cleanup(func() { _ = s.Close() })
	return s
}

func (d *coreDir) appendRecord(name string, payload, trailer []byte) uint32 {
	d.t.Helper()

	f, err := os.OpenFile(filepath.Join(d.blocksDir, name), os.O_CREATE|os.O_RDWR|os.O_APPEND, 0o644)
	require.NoError(d.t, err)
	defer f.Close()
	info, err := f.Stat()
	require.NoError(d.t, err)

	buf := make([]byte, recordHeaderSize, recordHeaderSize+len(payload)+len(trailer))
	binary.LittleEndian.PutUint32(buf[:4], uint32(d.params.Net))
	binary.LittleEndian.PutUint32(buf[4:], uint32(len(payload)))
	buf = append(buf, payload...)
	buf = append(buf, trailer...)
	d.key.apply(buf, info.Size())
	_, err = f.Write(buf)
	require.NoError(d.t, err)
	return uint32(info.Size()) + recordHeaderSize
}

// putBlock stores the block body and undo payload according to rawStatus and indexes it.
func (d *coreDir) putBlock(block *wire.MsgBlock, height int32, rawStatus uint64, undo []byte) *blockindex.Entry {
	d.t.Helper()

	e := blockindex.NewEntry(block.Header, height, decodeStatus(rawStatus), uint32(len(block.Transactions)))
	if rawStatus&statusHaveData != 0 {
		var buf bytes.Buffer
		require.NoError(d.t, block.Serialize(&buf))
		e.Pos.DataPos = d.appendRecord(blockFileName(0), buf.Bytes(), nil)
	}
	if rawStatus&statusHaveUndo != 0 {
		checksum := chainhash.DoubleHashB(append(append([]byte{}, e.PrevHash[:]...), undo...))
		e.Pos.UndoPos = d.appendRecord(undoFileName(0), undo, checksum)
	}
	d.putEntry(e, rawStatus)
	return e
}

func (d *coreDir) putEntry(e *blockindex.Entry, rawStatus uint64) {
	d.t.Helper()
	value, err := encodeIndexRecord(e, rawStatus)
	require.NoError(d.t, err)
	require.NoError(d.t, d.db.Put(indexKey(e.Hash), value, nil))
}

// encodeIndexRecord serializes an entry the way the node stores it.
func encodeIndexRecord(e *blockindex.Entry, rawStatus uint64) ([]byte, error) {
	buf := make([]byte, 0, 128)
	buf = AppendVarInt(buf, 259900)
	buf = AppendVarInt(buf, uint64(e.Height))
	buf = AppendVarInt(buf, rawStatus)
	buf = AppendVarInt(buf, uint64(e.TxCount))
	if rawStatus&(statusHaveData|statusHaveUndo) != 0 {
		buf = AppendVarInt(buf, uint64(e.Pos.File))
	}
	if rawStatus&statusHaveData != 0 {
		buf = AppendVarInt(buf, uint64(e.Pos.DataPos))
	}
	if rawStatus&statusHaveUndo != 0 {
		buf = AppendVarInt(buf, uint64(e.Pos.UndoPos))
	}
	header, err := blockindex.EncodeHeader(e)
	if err != nil {
		return nil, err
	}
	return append(buf, header...), nil
}

func childBlock(parent *wire.MsgBlock, tag byte) *wire.MsgBlock {
	coinbase := wire.NewMsgTx(1)
	coinbase.AddTxIn(&wire.TxIn{
		PreviousOutPoint: wire.OutPoint{Index: math.MaxUint32},
		SignatureScript:  []byte{0x51, tag},
		Sequence:         math.MaxUint32,
	})
	coinbase.AddTxOut(wire.NewTxOut(50_0000_0000, []byte{0x51}))

	block := wire.NewMsgBlock(&wire.BlockHeader{
		Version:    4,
		PrevBlock:  parent.BlockHash(),
		MerkleRoot: coinbase.TxHash(),
		Timestamp:  parent.Header.Timestamp.Add(10 * time.Minute),
		Bits:       parent.Header.Bits,
		Nonce:      uint32(tag),
	})
	_ = block.AddTransaction(coinbase)
	return block
}
