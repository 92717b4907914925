package chart

import "time"

const (
	defaultNoiseThreshold = 0.001
	defaultMaxPoints      = 1000
	defaultMaxHours       = 24 * 30
	defaultCacheTTL       = 30 * time.Second
)
