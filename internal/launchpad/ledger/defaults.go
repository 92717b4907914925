package ledger

const (
	defaultRPS          = 20
	defaultBurst        = 5
	defaultFeedDecimals = 8
	rateCacheSize       = 10_000
)
