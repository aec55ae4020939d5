package recon

import (
	"context"
	"sort"
	"time"

	"github.com/julienmorel/caisse-backend/internal/ingest"
	"github.com/julienmorel/caisse-backend/internal/session"
	"github.com/julienmorel/caisse-backend/pkg/enums"
	"github.com/julienmorel/caisse-backend/pkg/logger"
	"github.com/julienmorel/caisse-backend/pkg/metrics"
)

// EngineParams configures an Engine.
type EngineParams struct {
	Logger  *logger.Logger
	Metrics *metrics.PipelineMetrics
}

// Engine runs the synchronous reconciliation pipeline: filter, merge,
// aggregate, commission. It holds no mutable state between runs; each
// Recompute works entirely from its inputs, so re-running it with the
// same inputs is idempotent and the caller may trigger it as often as
// it likes.
type Engine struct {
	logg    *logger.Logger
	metrics *metrics.PipelineMetrics
}

// NewEngine builds an Engine.
func NewEngine(params EngineParams) *Engine {
	return &Engine{logg: params.Logger, metrics: params.Metrics}
}

// Recompute produces one fully computed table per vendor named in the
// session's rule map. trigger labels the run for metrics ("timer",
// "manual", "override", ...).
func (e *Engine) Recompute(ctx context.Context, sources ingest.SourceSet, sctx session.Context, trigger string) []VendorTable {
	start := time.Now()

	merged := ingest.Merge(sources.Local, sources.Synced, sources.External)
	filtered := ingest.FilterAfterCheckpoint(merged.Transactions, sctx.Checkpoint, sctx.Window())

	e.metrics.AddMerged(len(merged.Transactions))
	e.metrics.AddDuplicates(merged.DuplicatesDropped)

	vendorIDs := make([]string, 0, len(sctx.Rules))
	for vendorID := range sctx.Rules {
		vendorIDs = append(vendorIDs, vendorID)
	}
	sort.Strings(vendorIDs)

	tables := make([]VendorTable, 0, len(vendorIDs))
	for _, vendorID := range vendorIDs {
		tables = append(tables, e.buildTable(filtered, vendorID, sctx))
	}

	e.metrics.ObserveRun(trigger, time.Since(start), nil)
	if e.logg != nil {
		fields := map[string]any{
			"trigger":      trigger,
			"transactions": len(filtered),
			"vendors":      len(tables),
		}
		e.logg.Debug(e.logg.WithFields(ctx, fields), "pipeline run complete")
	}
	return tables
}

func (e *Engine) buildTable(transactions []ingest.Transaction, vendorID string, sctx session.Context) VendorTable {
	rule := sctx.RuleFor(vendorID)
	buckets := Aggregate(transactions, vendorID, sctx.Dates)

	for i := range buckets {
		bucket := &buckets[i]
		ov := sctx.Overrides

		bucket.Cheque = ov.Effective(vendorID, bucket.DayIndex, enums.OverrideFieldCheque, bucket.Cheque)
		bucket.Card = ov.Effective(vendorID, bucket.DayIndex, enums.OverrideFieldCard, bucket.Card)
		bucket.Cash = ov.Effective(vendorID, bucket.DayIndex, enums.OverrideFieldCash, bucket.Cash)

		// The derived figures always follow the effective channel
		// values. A salary override wins over the recomputed salary
		// no matter what the channels now sum to.
		bucket.Total = bucket.Cheque.Add(bucket.Card).Add(bucket.Cash).Round(2)
		bucket.AboveThreshold = AboveThreshold(bucket.Total, rule)
		bucket.Salary = ov.Effective(vendorID, bucket.DayIndex, enums.OverrideFieldSalary,
			ComputeSalary(bucket.Total, rule))
	}

	return VendorTable{
		VendorID:   vendorID,
		VendorName: sctx.NameFor(vendorID),
		Rule:       rule,
		Buckets:    buckets,
		Sales:      saleLines(transactions, vendorID),
	}
}

func saleLines(transactions []ingest.Transaction, vendorID string) []SaleLine {
	var out []SaleLine
	for _, txn := range transactions {
		if txn.Canceled || txn.VendorID != vendorID {
			continue
		}
		out = append(out, SaleLine{
			Date:    txn.Timestamp,
			Label:   txn.Label,
			Amount:  txn.TotalAmount,
			Channel: txn.Channel,
		})
	}
	return out
}
