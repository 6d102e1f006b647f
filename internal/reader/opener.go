package reader

import (
	"github.com/goodnatureofminers/blockinsight7000-blockreader/internal/store"
	"github.com/goodnatureofminers/blockinsight7000-blockreader/internal/store/bitcoincore"
)

// CoreOpener opens Bitcoin Core data directories, optionally reporting store metrics.
type CoreOpener struct {
	Metrics store.Metrics
}

func (o CoreOpener) Open(layout Layout) (BlockStore, error) {
	s, err := bitcoincore.Open(bitcoincore.Options{
		IndexDir:  layout.IndexDir,
		BlocksDir: layout.BlocksDir,
		Params:    layout.Network.Params,
		CacheSize: layout.CacheSize,
	})
	if err != nil {
		return nil, err
	}
	if o.Metrics == nil {
		return s, nil
	}
	return store.NewObserved(s, o.Metrics), nil
}
