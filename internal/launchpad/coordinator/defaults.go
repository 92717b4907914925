package coordinator

import "time"

const (
	defaultLeaseTTL     = 60 * time.Second
	defaultPollInterval = 500 * time.Millisecond
	defaultRetention    = 24 * time.Hour

	pollJitter = 0.2
)
