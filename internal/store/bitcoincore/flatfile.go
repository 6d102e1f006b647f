package bitcoincore

import (
	"encoding/binary"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/btcsuite/btcd/wire"
)

const (
	// recordHeaderSize covers the network magic and the little-endian payload length preceding every record.
	recordHeaderSize = 8
	xorKeyFile       = "xor.dat"
	xorKeySize       = 8
)

func blockFileName(file int32) string {
	return fmt.Sprintf("blk%05d.dat", file)
}

func undoFileName(file int32) string {
	return fmt.Sprintf("rev%05d.dat", file)
}

// xorKey is the obfuscation key applied to block and undo files; nil means plain files.
type xorKey []byte

// loadXORKey reads the optional key next to the block files. A missing or all-zero key disables obfuscation.
func loadXORKey(blocksDir string) (xorKey, error) {
	raw, err := os.ReadFile(filepath.Join(blocksDir, xorKeyFile))
	if errors.Is(err, os.ErrNotExist) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", xorKeyFile, err)
	}
	if len(raw) != xorKeySize {
		return nil, fmt.Errorf("read %s: got %d bytes, want %d", xorKeyFile, len(raw), xorKeySize)
	}
	for _, b := range raw {
		if b != 0 {
			return raw, nil
		}
	}
	return nil, nil
}

// apply deobfuscates buf read from file offset off in place.
func (k xorKey) apply(buf []byte, off int64) {
	if len(k) == 0 {
		return
	}
	for i := range buf {
		buf[i] ^= k[(off+int64(i))%int64(len(k))]
	}
}

type flatFileReader struct {
	dir   string
	magic wire.BitcoinNet
	key   xorKey
}

// readRecord returns the payload at pos in the named file along with the trailer bytes following it.
// A file that no longer exists, such as one pruned by the node, fails with missing.
func (f flatFileReader) readRecord(name string, pos uint32, trailer int, missing error) (payload, tail []byte, err error) {
	if pos < recordHeaderSize {
		return nil, nil, fmt.Errorf("%s: position %d precedes record header", name, pos)
	}
	file, err := os.Open(filepath.Join(f.dir, name))
	if errors.Is(err, os.ErrNotExist) {
		return nil, nil, fmt.Errorf("open %s: %w: %w", name, missing, err)
	}
	if err != nil {
		return nil, nil, fmt.Errorf("open %s: %w", name, err)
	}
	defer file.Close()

	hdrOff := int64(pos) - recordHeaderSize
	var hdr [recordHeaderSize]byte
	if _, err := file.ReadAt(hdr[:], hdrOff); err != nil {
		return nil, nil, fmt.Errorf("read %s record header at %d: %w", name, hdrOff, err)
	}
	f.key.apply(hdr[:], hdrOff)

	if magic := wire.BitcoinNet(binary.LittleEndian.Uint32(hdr[:4])); magic != f.magic {
		return nil, nil, fmt.Errorf("%s at %d: network magic %s, want %s", name, pos, magic, f.magic)
	}
	size := binary.LittleEndian.Uint32(hdr[4:])
	if size > wire.MaxMessagePayload {
		return nil, nil, fmt.Errorf("%s at %d: record size %d exceeds %d", name, pos, size, wire.MaxMessagePayload)
	}

	buf := make([]byte, int(size)+trailer)
	if _, err := file.ReadAt(buf, int64(pos)); err != nil {
		if errors.Is(err, io.EOF) {
			err = io.ErrUnexpectedEOF
		}
		return nil, nil, fmt.Errorf("read %s record at %d: %w", name, pos, err)
	}
	f.key.apply(buf, int64(pos))
	return buf[:size], buf[size:], nil
}
