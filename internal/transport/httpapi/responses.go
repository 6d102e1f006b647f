package httpapi

import (
	"fmt"
	"time"

	"github.com/goodnatureofminers/blockinsight7000-blockreader/internal/blockindex"
	"github.com/goodnatureofminers/blockinsight7000-blockreader/internal/chain"
	"github.com/goodnatureofminers/blockinsight7000-blockreader/internal/model"
	"github.com/goodnatureofminers/blockinsight7000-blockreader/internal/reader"
)

type statusResponse struct {
	Network         model.Network   `json:"network"`
	HeaderHeight    int32           `json:"headerHeight"`
	ValidatedHeight int32           `json:"validatedHeight"`
	IBD             chain.IBDStatus `json:"ibd"`
	Tip             *entryResponse  `json:"tip,omitempty"`
	LoadedAt        time.Time       `json:"loadedAt"`
}

type entryResponse struct {
	Hash        string   `json:"hash"`
	PrevHash    string   `json:"prevHash"`
	Height      int32    `json:"height"`
	Version     int32    `json:"version"`
	MerkleRoot  string   `json:"merkleRoot"`
	Time        int64    `json:"time"`
	MedianTime  int64    `json:"medianTime,omitempty"`
	Bits        string   `json:"bits"`
	Nonce       uint32   `json:"nonce"`
	ChainWork   string   `json:"chainWork"`
	Status      []string `json:"status"`
	TxCount     uint32   `json:"txCount"`
	OnBestChain bool     `json:"onBestChain"`
}

type spentOutputsResponse struct {
	Hash    string              `json:"hash"`
	Height  int32               `json:"height"`
	Outputs []model.SpentOutput `json:"outputs"`
}

type errorResponse struct {
	Error string `json:"error"`
}

func newStatusResponse(s reader.Status) statusResponse {
	resp := statusResponse{
		Network:         s.Network,
		HeaderHeight:    s.HeaderHeight,
		ValidatedHeight: s.ValidatedHeight,
		IBD:             s.IBD,
		LoadedAt:        s.LoadedAt,
	}
	if s.Tip != nil {
		tip := newEntryResponse(s.Tip)
		tip.OnBestChain = true
		resp.Tip = &tip
	}
	return resp
}

func newEntryResponse(e *blockindex.Entry) entryResponse {
	flags := e.Status.Flags()
	status := make([]string, len(flags))
	for i, f := range flags {
		status[i] = f.String()
	}
	var work string
	if e.ChainWork != nil {
		work = fmt.Sprintf("%064x", e.ChainWork)
	}
	return entryResponse{
		Hash:       e.Hash.String(),
		PrevHash:   e.PrevHash.String(),
		Height:     e.Height,
		Version:    e.Version,
		MerkleRoot: e.MerkleRoot.String(),
		Time:       e.Time().Unix(),
		Bits:       fmt.Sprintf("%08x", e.Bits),
		Nonce:      e.Nonce,
		ChainWork:  work,
		Status:     status,
		TxCount:    e.TxCount,
	}
}
