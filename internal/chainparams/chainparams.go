// Package chainparams maps configured network names to btcd chain parameters and node data layout.
package chainparams

import (
	"fmt"
	"strings"

	"github.com/btcsuite/btcd/chaincfg"

	"github.com/goodnatureofminers/blockinsight7000-blockreader/internal/blockindex"
	"github.com/goodnatureofminers/blockinsight7000-blockreader/internal/model"
)

// Network couples chain parameters with the directory the node keeps that network's data in.
type Network struct {
	Name   model.Network
	Params *chaincfg.Params
	// Subdir is relative to the node data directory; empty for mainnet.
	Subdir string
}

// Lookup resolves a configured network name. Unknown names wrap blockindex.ErrConfiguration.
func Lookup(network model.Network) (Network, error) {
	switch strings.ToLower(string(network)) {
	case "main", "mainnet", "bitcoin":
		return Network{Name: model.Mainnet, Params: &chaincfg.MainNetParams}, nil
	case "testnet", "testnet3":
		return Network{Name: model.Testnet, Params: &chaincfg.TestNet3Params, Subdir: "testnet3"}, nil
	case "regtest":
		return Network{Name: model.Regtest, Params: &chaincfg.RegressionNetParams, Subdir: "regtest"}, nil
	case "signet":
		return Network{Name: model.Signet, Params: &chaincfg.SigNetParams, Subdir: "signet"}, nil
	case "simnet":
		return Network{Name: model.Simnet, Params: &chaincfg.SimNetParams, Subdir: "simnet"}, nil
	default:
		return Network{}, fmt.Errorf("unsupported network %q: %w", network, blockindex.ErrConfiguration)
	}
}
