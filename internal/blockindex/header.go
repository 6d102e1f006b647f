package blockindex

import (
	"bytes"
	"fmt"

	"github.com/btcsuite/btcd/wire"
)

// HeaderSize is the length of a serialized block header.
const HeaderSize = 80

// EncodeHeader serializes the entry's header in network byte layout.
func EncodeHeader(e *Entry) ([]byte, error) {
	header := e.Header()
	var buf bytes.Buffer
	buf.Grow(HeaderSize)
	if err := header.Serialize(&buf); err != nil {
		return nil, fmt.Errorf("serialize header %s: %w", e.Hash, err)
	}
	return buf.Bytes(), nil
}

// DecodeHeader parses exactly HeaderSize bytes into a wire header.
func DecodeHeader(raw []byte) (wire.BlockHeader, error) {
	var header wire.BlockHeader
	if len(raw) != HeaderSize {
		return header, fmt.Errorf("decode header: got %d bytes, want %d", len(raw), HeaderSize)
	}
	if err := header.Deserialize(bytes.NewReader(raw)); err != nil {
		return header, fmt.Errorf("decode header: %w", err)
	}
	return header, nil
}
