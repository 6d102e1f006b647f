package bitcoincore

import "github.com/goodnatureofminers/blockinsight7000-blockreader/internal/blockindex"

// Raw status bits of the node's block index.
const (
	statusValidMask   = 0x07
	statusHaveData    = 0x08
	statusHaveUndo    = 0x10
	statusFailedValid = 0x20
	statusFailedChild = 0x40
	statusOptWitness  = 0x80

	validTransactions = 3
	validChain        = 4
	validScripts      = 5
)

// decodeStatus maps the node's status word onto flags. Validity levels are cumulative.
func decodeStatus(raw uint64) blockindex.Status {
	var s blockindex.Status
	level := raw & statusValidMask
	if level >= validTransactions {
		s = s.With(blockindex.ValidTransactions)
	}
	if level >= validChain {
		s = s.With(blockindex.ValidChain)
	}
	if level >= validScripts {
		s = s.With(blockindex.ValidScripts)
	}
	if raw&statusHaveData != 0 {
		s = s.With(blockindex.HasBlockData)
	}
	if raw&statusHaveUndo != 0 {
		s = s.With(blockindex.HasUndoData)
	}
	if raw&(statusFailedValid|statusFailedChild) != 0 {
		s = s.With(blockindex.Failed)
	}
	if raw&statusOptWitness != 0 {
		s = s.With(blockindex.HasWitness)
	}
	return s
}
