package reorg

import "time"

const (
	defaultMaxReorgDepth = 256
	defaultLockWait      = 10 * time.Second
	defaultRenewEvery    = 20 * time.Second
)
