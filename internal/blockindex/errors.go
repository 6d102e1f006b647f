package blockindex

import (
	"errors"
	"fmt"
)

var (
	// ErrConfiguration is returned for a bad network, missing data directory, or a store that does not match the network.
	ErrConfiguration = errors.New("configuration error")
	// ErrStoreUnavailable is returned when the index store cannot be opened or read.
	ErrStoreUnavailable = errors.New("block index store unavailable")
	// ErrIndexCorruption is returned when the index is internally inconsistent.
	ErrIndexCorruption = errors.New("block index corrupted")
	// ErrNotFound is returned for lookups with no result.
	ErrNotFound = errors.New("not found")
	// ErrNotApplicable is returned for requests that have no meaning for the target, like undo data of genesis.
	ErrNotApplicable = errors.New("not applicable")
	// ErrNotReady is returned by queries issued before a successful Initialize.
	ErrNotReady = errors.New("reader not initialized")
)

var (
	ErrEntryNotFound = fmt.Errorf("entry %w", ErrNotFound)
	ErrNoBlockData   = fmt.Errorf("block data %w", ErrNotFound)
	ErrNoUndoData    = fmt.Errorf("undo data %w", ErrNotFound)
)
