// Package model defines rows exported from the block index.
package model

import "time"

// Block is one best-chain block index entry persisted to ClickHouse.
type Block struct {
	Coin       Coin
	Network    Network
	Height     uint64
	Hash       string
	PrevHash   string
	Timestamp  time.Time
	Version    int32
	MerkleRoot string
	Bits       uint32
	Nonce      uint32
	Difficulty float64
	ChainWork  string
	Status     string
	Size       uint32
	TXCount    uint32
}
