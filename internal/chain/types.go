package chain

//go:generate mockgen -source=$GOFILE -destination=mocks_test.go -package=$GOPACKAGE

import (
	"context"

	"github.com/goodnatureofminers/blockinsight7000-blockreader/internal/blockindex"
)

type (
	// EntrySource enumerates every entry currently known to the block index, validated or not.
	EntrySource interface {
		EnumerateAllEntries(ctx context.Context) ([]*blockindex.Entry, error)
	}
)
