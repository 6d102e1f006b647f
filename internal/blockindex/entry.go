package blockindex

import (
	"math/big"
	"time"

	"github.com/btcsuite/btcd/chaincfg/chainhash"
	"github.com/btcsuite/btcd/wire"
)

// DiskPos locates an entry's block and undo records inside the node's flat files.
type DiskPos struct {
	File    int32
	DataPos uint32
	UndoPos uint32
}

// Entry is the metadata of one known block header, whether or not its body is stored locally.
// Entries are read-only views; a Refresh replaces them wholesale.
type Entry struct {
	Hash       chainhash.Hash
	PrevHash   chainhash.Hash
	Height     int32
	Version    int32
	MerkleRoot chainhash.Hash
	Timestamp  uint32
	Bits       uint32
	Nonce      uint32
	ChainWork  *big.Int
	Status     Status
	TxCount    uint32
	Pos        DiskPos
}

// NewEntry builds an entry from a decoded header. The hash is derived from the header.
func NewEntry(header wire.BlockHeader, height int32, status Status, txCount uint32) *Entry {
	return &Entry{
		Hash:       header.BlockHash(),
		PrevHash:   header.PrevBlock,
		Height:     height,
		Version:    header.Version,
		MerkleRoot: header.MerkleRoot,
		Timestamp:  uint32(header.Timestamp.Unix()),
		Bits:       header.Bits,
		Nonce:      header.Nonce,
		Status:     status,
		TxCount:    txCount,
	}
}

// HasParent reports whether the entry references a previous block.
func (e *Entry) HasParent() bool {
	return e.PrevHash != (chainhash.Hash{})
}

// IsValid reports whether the entry reached the validity level f.
func (e *Entry) IsValid(f Flag) bool {
	return e.Status.IsValid(f)
}

// Time returns the header timestamp.
func (e *Entry) Time() time.Time {
	return time.Unix(int64(e.Timestamp), 0).UTC()
}

// Header rebuilds the wire header of the entry.
func (e *Entry) Header() wire.BlockHeader {
	return wire.BlockHeader{
		Version:    e.Version,
		PrevBlock:  e.PrevHash,
		MerkleRoot: e.MerkleRoot,
		Timestamp:  time.Unix(int64(e.Timestamp), 0),
		Bits:       e.Bits,
		Nonce:      e.Nonce,
	}
}
