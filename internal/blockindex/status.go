// Package blockindex defines the in-memory block index model shared by the loader, the chain view and the reader.
package blockindex

import "strings"

// Flag is a single block index status flag.
type Flag uint8

const (
	// HasBlockData marks an entry whose full block is stored in a block file.
	HasBlockData Flag = iota
	// HasUndoData marks an entry whose undo record is stored in an undo file.
	HasUndoData
	// ValidTransactions marks an entry whose transactions passed context-free checks.
	ValidTransactions
	// ValidChain marks an entry whose outputs do not overspend and whose coinbase is mature.
	ValidChain
	// ValidScripts marks an entry whose scripts and signatures verified.
	ValidScripts
	// Failed marks an entry that failed validation or descends from one that did.
	Failed
	// HasWitness marks an entry that was stored with witness data.
	HasWitness

	flagCount
)

var flagNames = [flagCount]string{
	HasBlockData:      "data",
	HasUndoData:       "undo",
	ValidTransactions: "transactions",
	ValidChain:        "chain",
	ValidScripts:      "scripts",
	Failed:            "failed",
	HasWitness:        "witness",
}

func (f Flag) String() string {
	if f < flagCount {
		return flagNames[f]
	}
	return "unknown"
}

// implies lists the flags each validity flag guarantees under normal operation.
var implies = map[Flag][]Flag{
	ValidScripts: {ValidChain},
	ValidChain:   {ValidTransactions},
}

// Implies returns f followed by every flag it transitively implies.
func Implies(f Flag) []Flag {
	out := []Flag{f}
	for i := 0; i < len(out); i++ {
		out = append(out, implies[out[i]]...)
	}
	return out
}

// Status is the set of flags recorded for an entry.
type Status uint16

// NewStatus builds a Status holding exactly the given flags.
func NewStatus(flags ...Flag) Status {
	var s Status
	for _, f := range flags {
		s = s.With(f)
	}
	return s
}

// Has reports whether f itself is set, ignoring implications.
func (s Status) Has(f Flag) bool {
	return s&(1<<f) != 0
}

// With returns a copy of s with f set.
func (s Status) With(f Flag) Status {
	return s | 1<<f
}

// IsValid reports whether f and every flag it implies are set on an entry that is not marked failed.
func (s Status) IsValid(f Flag) bool {
	if s.Has(Failed) {
		return false
	}
	for _, g := range Implies(f) {
		if !s.Has(g) {
			return false
		}
	}
	return true
}

// Flags lists the set flags in declaration order.
func (s Status) Flags() []Flag {
	out := make([]Flag, 0, flagCount)
	for f := Flag(0); f < flagCount; f++ {
		if s.Has(f) {
			out = append(out, f)
		}
	}
	return out
}

func (s Status) String() string {
	flags := s.Flags()
	names := make([]string, len(flags))
	for i, f := range flags {
		names[i] = f.String()
	}
	return strings.Join(names, ",")
}
