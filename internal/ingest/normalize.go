package ingest

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	"github.com/julienmorel/caisse-backend/pkg/enums"
	"github.com/julienmorel/caisse-backend/pkg/logger"
	"github.com/julienmorel/caisse-backend/pkg/metrics"
)

// VendorResolver maps a free-text vendor name to a canonical vendor id.
// fallback is true when no alias matched and the default vendor was used.
type VendorResolver interface {
	Resolve(ctx context.Context, rawName string) (vendorID string, fallback bool)
}

// NormalizerParams configures a Normalizer.
type NormalizerParams struct {
	Logger   *logger.Logger
	Metrics  *metrics.PipelineMetrics
	Resolver VendorResolver
	Now      func() time.Time
}

// Normalizer converts each source's record schema into the canonical
// Transaction type. A record that cannot be normalized is skipped and
// logged; it never aborts the rest of the batch.
type Normalizer struct {
	logg     *logger.Logger
	metrics  *metrics.PipelineMetrics
	resolver VendorResolver
	now      func() time.Time
}

// NewNormalizer builds a Normalizer.
func NewNormalizer(params NormalizerParams) *Normalizer {
	now := params.Now
	if now == nil {
		now = time.Now
	}
	return &Normalizer{
		logg:     params.Logger,
		metrics:  params.Metrics,
		resolver: params.Resolver,
		now:      now,
	}
}

// NormalizeLocal converts register ledger rows.
func (n *Normalizer) NormalizeLocal(ctx context.Context, records []LocalRecord) []Transaction {
	out := make([]Transaction, 0, len(records))
	for _, rec := range records {
		if rec.ID == "" {
			n.skip(ctx, "local", "missing id")
			continue
		}
		ts := n.now()
		if rec.DateMs != nil && *rec.DateMs > 0 {
			ts = time.UnixMilli(*rec.DateMs)
		}
		out = append(out, Transaction{
			ID:            rec.ID,
			VendorRawName: rec.VendorName,
			VendorID:      n.vendorID(ctx, rec.VendorID, rec.VendorName),
			Label:         rec.Label,
			Timestamp:     ts,
			TotalAmount:   amountOrZero(rec.TotalAmount),
			Channel:       enums.NormalizePaymentChannel(rec.PaymentMethod),
			Origin:        enums.SourceOriginLocal,
			Canceled:      rec.Canceled,
		})
	}
	return out
}

// NormalizeSynced converts cloud ledger rows.
func (n *Normalizer) NormalizeSynced(ctx context.Context, records []SyncedRecord) []Transaction {
	out := make([]Transaction, 0, len(records))
	for _, rec := range records {
		if rec.ID == "" {
			n.skip(ctx, "synced", "missing id")
			continue
		}
		out = append(out, Transaction{
			ID:            rec.ID,
			VendorRawName: rec.VendorName,
			VendorID:      n.vendorID(ctx, rec.VendorID, rec.VendorName),
			Label:         rec.Label,
			Timestamp:     n.parseTimestamp(rec.CreatedAt),
			TotalAmount:   amountOrZero(rec.TotalAmount),
			Channel:       enums.NormalizePaymentChannel(rec.PaymentMethod),
			Origin:        enums.SourceOriginSynced,
			Canceled:      rec.Canceled,
		})
	}
	return out
}

// NormalizeExternal converts external invoice feed rows. Canceled
// invoices are dropped here so they never reach the merge step.
func (n *Normalizer) NormalizeExternal(ctx context.Context, records []ExternalRecord) []Transaction {
	out := make([]Transaction, 0, len(records))
	for _, rec := range records {
		if rec.IsCanceled() {
			continue
		}
		if rec.InvoiceNumber == "" {
			n.skip(ctx, "external", "missing invoice number")
			continue
		}
		out = append(out, Transaction{
			ID:            rec.InvoiceNumber,
			VendorRawName: rec.VendorName,
			VendorID:      n.vendorID(ctx, "", rec.VendorName),
			Label:         rec.Product,
			Timestamp:     n.parseTimestamp(rec.CreatedAt),
			TotalAmount:   amountOrZero(rec.TotalTTC),
			Channel:       enums.NormalizePaymentChannel(rec.PaymentMethod),
			Origin:        enums.SourceOriginExternal,
		})
	}
	return out
}

func (n *Normalizer) vendorID(ctx context.Context, explicit, rawName string) string {
	if explicit != "" {
		return explicit
	}
	if n.resolver == nil {
		return ""
	}
	id, _ := n.resolver.Resolve(ctx, rawName)
	return id
}

var timestampLayouts = []string{
	time.RFC3339Nano,
	time.RFC3339,
	"2006-01-02 15:04:05",
	"2006-01-02",
}

// parseTimestamp defaults to "now" on malformed dates. A sale with a
// broken date must still appear in the ledger.
func (n *Normalizer) parseTimestamp(value string) time.Time {
	for _, layout := range timestampLayouts {
		if ts, err := time.Parse(layout, value); err == nil {
			return ts
		}
	}
	return n.now()
}

func (n *Normalizer) skip(ctx context.Context, source, reason string) {
	n.metrics.IncSkipped(source)
	if n.logg != nil {
		fields := map[string]any{"source": source, "reason": reason}
		n.logg.Warn(n.logg.WithFields(ctx, fields), "skipping unparseable source record")
	}
}

// amountOrZero treats a missing amount as zero so the sale still shows
// up for audit without distorting totals.
func amountOrZero(value *float64) decimal.Decimal {
	if value == nil {
		return decimal.Zero
	}
	return decimal.NewFromFloat(*value)
}
