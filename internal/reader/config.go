package reader

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/goodnatureofminers/blockinsight7000-blockreader/internal/blockindex"
	"github.com/goodnatureofminers/blockinsight7000-blockreader/internal/chain"
	"github.com/goodnatureofminers/blockinsight7000-blockreader/internal/chainparams"
	"github.com/goodnatureofminers/blockinsight7000-blockreader/internal/model"
)

// Config selects the node data directory to read.
type Config struct {
	Network model.Network
	// DataDir is the node's base data directory; network subdirectories are resolved below it.
	DataDir string
	// BlocksDir, when set, is the directory holding blk/rev files instead of <network dir>/blocks.
	BlocksDir string
	// ReadOnly must be true; the reader never writes.
	ReadOnly     bool
	IBDThreshold int32
	// BlockCacheSize is the number of raw blocks cached in memory.
	BlockCacheSize int
}

// Layout is a Config resolved against the filesystem.
type Layout struct {
	Network   chainparams.Network
	IndexDir  string
	BlocksDir string
	CacheSize int
}

func (c Config) threshold() int32 {
	if c.IBDThreshold <= 0 {
		return chain.DefaultIBDThreshold
	}
	return c.IBDThreshold
}

// Resolve validates the config and derives the on-disk layout. Every failure wraps blockindex.ErrConfiguration.
func (c Config) Resolve() (Layout, error) {
	if !c.ReadOnly {
		return Layout{}, fmt.Errorf("read-only mode is required: %w", blockindex.ErrConfiguration)
	}
	network, err := chainparams.Lookup(c.Network)
	if err != nil {
		return Layout{}, err
	}
	if c.DataDir == "" {
		return Layout{}, fmt.Errorf("data directory is required: %w", blockindex.ErrConfiguration)
	}

	root := filepath.Join(c.DataDir, network.Subdir)
	if err := requireDir(root); err != nil {
		return Layout{}, err
	}
	blocksRoot := filepath.Join(root, "blocks")
	blocksDir := blocksRoot
	if c.BlocksDir != "" {
		if err := requireDir(c.BlocksDir); err != nil {
			return Layout{}, err
		}
		blocksDir = c.BlocksDir
	}

	return Layout{
		Network:   network,
		IndexDir:  filepath.Join(blocksRoot, "index"),
		BlocksDir: blocksDir,
		CacheSize: c.BlockCacheSize,
	}, nil
}

func requireDir(path string) error {
	info, err := os.Stat(path)
	if err != nil {
		return fmt.Errorf("stat %s: %w: %w", path, blockindex.ErrConfiguration, err)
	}
	if !info.IsDir() {
		return fmt.Errorf("%s is not a directory: %w", path, blockindex.ErrConfiguration)
	}
	return nil
}
