package bitcoincore

import (
	"errors"
	"io"
	"math"
)

var errVarIntOverflow = errors.New("varint overflows uint64")

// ReadVarInt decodes the node's base-128 VARINT, where each continuation byte adds one to the accumulated value.
func ReadVarInt(r io.ByteReader) (uint64, error) {
	var n uint64
	for {
		b, err := r.ReadByte()
		if err != nil {
			return 0, err
		}
		if n > math.MaxUint64>>7 {
			return 0, errVarIntOverflow
		}
		n = n<<7 | uint64(b&0x7f)
		if b&0x80 == 0 {
			return n, nil
		}
		if n == math.MaxUint64 {
			return 0, errVarIntOverflow
		}
		n++
	}
}

// AppendVarInt encodes n in the node's VARINT form.
func AppendVarInt(dst []byte, n uint64) []byte {
	var tmp [10]byte
	i := len(tmp) - 1
	tmp[i] = byte(n & 0x7f)
	for n > 0x7f {
		n = n>>7 - 1
		i--
		tmp[i] = byte(n&0x7f) | 0x80
	}
	return append(dst, tmp[i:]...)
}
