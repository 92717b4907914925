package coordinator

import (
	"strings"

	"github.com/goodnatureofminers/launchpad-indexer/internal/launchpad/model"
)

// IngestKey guards ingestion runs of one tier.
func IngestKey(tier model.Tier) string {
	return "ingest:" + string(tier)
}

// ReorgKey guards the cursor of an ingestion partition.
func ReorgKey(partition string) string {
	return "reorg_scan:" + partition
}

// BackfillKey guards the full-history re-ingestion of a token.
func BackfillKey(address string) string {
	return "backfill:" + strings.ToLower(address)
}
