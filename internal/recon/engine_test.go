package recon

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"

	"github.com/julienmorel/caisse-backend/internal/ingest"
	"github.com/julienmorel/caisse-backend/internal/overrides"
	"github.com/julienmorel/caisse-backend/internal/session"
	"github.com/julienmorel/caisse-backend/pkg/db/models"
	"github.com/julienmorel/caisse-backend/pkg/enums"
)

func sylvieContext(ov overrides.Set) session.Context {
	if ov == nil {
		ov = overrides.Set{}
	}
	return session.Context{
		SessionID: "S1",
		Dates:     []time.Time{day(14)},
		Rules: map[string]models.CommissionRule{
			"sylvie": sylvieRule(),
		},
		Overrides: ov,
	}
}

func TestRecomputeSylvieScenario(t *testing.T) {
	engine := NewEngine(EngineParams{})
	sources := ingest.SourceSet{
		Local: []ingest.Transaction{sale("a", 14, 790, enums.PaymentChannelCard)},
	}

	tables := engine.Recompute(context.Background(), sources, sylvieContext(nil), "test")

	if len(tables) != 1 {
		t.Fatalf("expected one vendor table, got %d", len(tables))
	}
	bucket := tables[0].Buckets[0]
	if !bucket.Total.Equal(decimal.NewFromInt(790)) {
		t.Fatalf("expected total 790, got %s", bucket.Total)
	}
	if bucket.AboveThreshold {
		t.Fatal("790 is under the 1500 threshold")
	}
	if !bucket.Salary.Equal(decimal.NewFromInt(140)) {
		t.Fatalf("expected floor salary 140, got %s", bucket.Salary)
	}
}

func TestRecomputeUsesCanonicalVendorName(t *testing.T) {
	engine := NewEngine(EngineParams{})
	sources := ingest.SourceSet{
		Local: []ingest.Transaction{sale("a", 14, 790, enums.PaymentChannelCard)},
	}
	sctx := sylvieContext(nil)
	sctx.Names = map[string]string{"sylvie": "Sylvie"}

	tables := engine.Recompute(context.Background(), sources, sctx, "test")

	if tables[0].VendorName != "Sylvie" {
		t.Fatalf("expected the canonical name, got %q", tables[0].VendorName)
	}

	// Without a registry entry the table falls back to the id rather
	// than showing an empty name.
	tables = engine.Recompute(context.Background(), sources, sylvieContext(nil), "test")
	if tables[0].VendorName != "sylvie" {
		t.Fatalf("expected the id fallback, got %q", tables[0].VendorName)
	}
}

func TestRecomputeCardOverrideCascades(t *testing.T) {
	engine := NewEngine(EngineParams{})
	sources := ingest.SourceSet{
		Local: []ingest.Transaction{sale("a", 14, 790, enums.PaymentChannelCard)},
	}
	ov := overrides.Set{
		{VendorID: "sylvie", DayIndex: 0, Field: enums.OverrideFieldCard}: decimal.NewFromInt(2000),
	}

	tables := engine.Recompute(context.Background(), sources, sylvieContext(ov), "test")

	bucket := tables[0].Buckets[0]
	if !bucket.Card.Equal(decimal.NewFromInt(2000)) {
		t.Fatalf("expected overridden card amount, got %s", bucket.Card)
	}
	if !bucket.Total.Equal(decimal.NewFromInt(2000)) {
		t.Fatalf("total must follow the effective channel values, got %s", bucket.Total)
	}
	if !bucket.AboveThreshold {
		t.Fatal("overridden total crosses the threshold")
	}
	if !bucket.Salary.Equal(decimal.NewFromInt(340)) {
		t.Fatalf("expected 2000 * 17%% = 340, got %s", bucket.Salary)
	}
}

func TestRecomputeSalaryOverrideWinsUnconditionally(t *testing.T) {
	engine := NewEngine(EngineParams{})
	sources := ingest.SourceSet{
		Local: []ingest.Transaction{sale("a", 14, 790, enums.PaymentChannelCard)},
	}
	ov := overrides.Set{
		{VendorID: "sylvie", DayIndex: 0, Field: enums.OverrideFieldSalary}: decimal.NewFromInt(500),
		{VendorID: "sylvie", DayIndex: 0, Field: enums.OverrideFieldCard}:   decimal.NewFromInt(9000),
	}

	tables := engine.Recompute(context.Background(), sources, sylvieContext(ov), "test")

	bucket := tables[0].Buckets[0]
	if !bucket.Total.Equal(decimal.NewFromInt(9000)) {
		t.Fatalf("total still follows channels, got %s", bucket.Total)
	}
	if !bucket.Salary.Equal(decimal.NewFromInt(500)) {
		t.Fatalf("salary override must win over the recomputed value, got %s", bucket.Salary)
	}
}

func TestRecomputeTotalConservation(t *testing.T) {
	engine := NewEngine(EngineParams{})
	sources := ingest.SourceSet{
		Local: []ingest.Transaction{
			sale("a", 14, 100, enums.PaymentChannelCheque),
			sale("b", 14, 200, enums.PaymentChannelCard),
			sale("c", 14, 300, enums.PaymentChannelCash),
		},
	}
	sequences := []overrides.Set{
		{},
		{{VendorID: "sylvie", DayIndex: 0, Field: enums.OverrideFieldCheque}: decimal.NewFromInt(150)},
		{
			{VendorID: "sylvie", DayIndex: 0, Field: enums.OverrideFieldCheque}: decimal.NewFromInt(150),
			{VendorID: "sylvie", DayIndex: 0, Field: enums.OverrideFieldCash}:   decimal.Zero,
		},
	}

	for _, ov := range sequences {
		tables := engine.Recompute(context.Background(), sources, sylvieContext(ov), "test")
		bucket := tables[0].Buckets[0]
		sum := bucket.Cheque.Add(bucket.Card).Add(bucket.Cash)
		if !bucket.Total.Equal(sum) {
			t.Fatalf("total %s != effective channel sum %s after overrides %v", bucket.Total, sum, ov)
		}
	}
}

func TestRecomputeAppliesCheckpointAndMerge(t *testing.T) {
	engine := NewEngine(EngineParams{})
	checkpoint := time.Date(2025, 6, 14, 12, 0, 0, 0, time.UTC)

	before := sale("old", 14, 1000, enums.PaymentChannelCard)
	before.Timestamp = checkpoint

	after := sale("dup", 14, 400, enums.PaymentChannelCard)
	after.Timestamp = checkpoint.Add(time.Hour)
	syncedDup := after
	syncedDup.TotalAmount = decimal.NewFromInt(450)

	sctx := sylvieContext(nil)
	sctx.Checkpoint = &checkpoint

	tables := engine.Recompute(context.Background(), ingest.SourceSet{
		Local:  []ingest.Transaction{before, after},
		Synced: []ingest.Transaction{syncedDup},
	}, sctx, "test")

	bucket := tables[0].Buckets[0]
	// "old" is on the checkpoint (excluded); "dup" keeps only its
	// synced version.
	if !bucket.Total.Equal(decimal.NewFromInt(450)) {
		t.Fatalf("expected only the synced post-checkpoint amount, got %s", bucket.Total)
	}
}

func TestRecomputeIsDeterministicAcrossRuns(t *testing.T) {
	engine := NewEngine(EngineParams{})
	sources := ingest.SourceSet{
		Local: []ingest.Transaction{sale("a", 14, 790, enums.PaymentChannelCard)},
	}
	sctx := sylvieContext(nil)
	sctx.Rules["marc"] = models.CommissionRule{VendorID: "marc", Threshold: decimal.NewFromInt(1500), FixedFloor: decimal.NewFromInt(140)}

	first := engine.Recompute(context.Background(), sources, sctx, "test")
	second := engine.Recompute(context.Background(), sources, sctx, "test")

	if len(first) != len(second) {
		t.Fatalf("vendor count changed between runs: %d vs %d", len(first), len(second))
	}
	for i := range first {
		if first[i].VendorID != second[i].VendorID {
			t.Fatalf("vendor order not stable: %s vs %s", first[i].VendorID, second[i].VendorID)
		}
	}
}
