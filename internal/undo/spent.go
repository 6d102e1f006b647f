package undo

import (
	"encoding/hex"

	"github.com/btcsuite/btcd/chaincfg"
	"github.com/btcsuite/btcd/txscript"

	"github.com/goodnatureofminers/blockinsight7000-blockreader/internal/model"
)

// ScriptDecoder classifies spent output scripts and extracts their addresses for one network.
type ScriptDecoder struct {
	params *chaincfg.Params
}

// NewScriptDecoder creates a decoder for the given chain parameters.
func NewScriptDecoder(params *chaincfg.Params) *ScriptDecoder {
	return &ScriptDecoder{params: params}
}

// SpentOutputs flattens the undo record in block order. Scripts that do not parse are reported as nonstandard
// without addresses.
func (d *ScriptDecoder) SpentOutputs(u *BlockUndo) []model.SpentOutput {
	var out []model.SpentOutput
	for i, tx := range u.Txs {
		for j, coin := range tx.Spent {
			class, addrs := d.decode(coin.PkScript)
			out = append(out, model.SpentOutput{
				TxIndex:    i + 1,
				InputIndex: j,
				Height:     coin.Height,
				Coinbase:   coin.Coinbase,
				Value:      int64(coin.Amount),
				ScriptHex:  hex.EncodeToString(coin.PkScript),
				ScriptType: class,
				Addresses:  addrs,
			})
		}
	}
	return out
}

func (d *ScriptDecoder) decode(script []byte) (string, []string) {
	class, addrs, _, err := txscript.ExtractPkScriptAddrs(script, d.params)
	if err != nil {
		return txscript.NonStandardTy.String(), nil
	}
	if len(addrs) == 0 {
		return class.String(), nil
	}
	result := make([]string, 0, len(addrs))
	for _, addr := range addrs {
		result = append(result, addr.EncodeAddress())
	}
	return class.String(), result
}
