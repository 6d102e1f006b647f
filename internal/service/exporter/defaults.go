package exporter

import "time"

const (
	defaultBatchSize     = 500
	defaultWorkerCount   = 8
	defaultSleepDuration = 5 * time.Second

	blockBatcherCapacity      = 200
	blockBatcherFlushInterval = time.Second
	blockBatcherRPS           = 20

	// referenceBits is the mainnet proof-of-work limit that difficulty 1 is defined against on every network.
	referenceBits = 0x1d00ffff
)
