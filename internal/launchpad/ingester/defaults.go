package ingester

import "time"

const (
	defaultWorkerCount          = 8
	defaultBatchLimit           = 100
	defaultMaxBlockRange uint64 = 2_000
	defaultMaxRangeAttempts     = 5
	defaultRunBudget            = 25 * time.Second
	defaultRenewEvery           = 10 * time.Second
	defaultBackfillWait         = 30 * time.Second
	defaultCarryForward         = time.Hour

	globalScope = "global"
)
