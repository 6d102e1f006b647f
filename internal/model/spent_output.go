package model

// SpentOutput is one coin consumed by a block, as recorded in its undo data.
type SpentOutput struct {
	TxIndex    int      `json:"txIndex"`
	InputIndex int      `json:"inputIndex"`
	Height     uint32   `json:"height"`
	Coinbase   bool     `json:"coinbase"`
	Value      int64    `json:"value"`
	ScriptHex  string   `json:"scriptHex"`
	ScriptType string   `json:"scriptType"`
	Addresses  []string `json:"addresses,omitempty"`
}
