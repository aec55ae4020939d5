package ingest

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/julienmorel/caisse-backend/pkg/enums"
)

// Transaction is the canonical record every source normalizes into
// before it reaches the merge step. The core never creates or mutates
// transactions; it only filters and supersedes them.
type Transaction struct {
	ID            string               `json:"id"`
	VendorRawName string               `json:"vendor_raw_name"`
	VendorID      string               `json:"vendor_id"`
	Label         string               `json:"label,omitempty"`
	Timestamp     time.Time            `json:"timestamp"`
	TotalAmount   decimal.Decimal      `json:"total_amount"`
	Channel       enums.PaymentChannel `json:"channel"`
	Origin        enums.SourceOrigin   `json:"origin"`
	Canceled      bool                 `json:"canceled"`
}

// SourceSet carries the already-fetched inputs of one pipeline run.
// Fetching happens outside the engine; by the time the pipeline runs
// these are plain resolved values.
type SourceSet struct {
	Local    []Transaction
	Synced   []Transaction
	External []Transaction
}
