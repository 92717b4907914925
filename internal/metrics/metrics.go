// Package metrics exposes application metrics collectors.
package metrics

import "strings"

const namespace = "launchpad"

var durationBuckets = []float64{.005, .01, .025, .05, .1, .25, .5, 1, 2.5, 5, 10, 15, 20, 30}

func status(err error) string {
	if err != nil {
		return "error"
	}
	return "success"
}

// resourceClass strips the variable suffix from a lock key ("backfill:0xabc" -> "backfill")
// so per-token keys do not explode label cardinality.
func resourceClass(key string) string {
	if i := strings.IndexByte(key, ':'); i > 0 {
		return key[:i]
	}
	return key
}
