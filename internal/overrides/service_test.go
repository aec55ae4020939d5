package overrides

import (
	"context"
	"testing"

	"github.com/shopspring/decimal"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/julienmorel/caisse-backend/pkg/db/models"
	"github.com/julienmorel/caisse-backend/pkg/enums"
	pkgerrors "github.com/julienmorel/caisse-backend/pkg/errors"
)

func newTestService(t *testing.T) Service {
	t.Helper()
	conn, err := gorm.Open(sqlite.Open("file::memory:"), &gorm.Config{TranslateError: true})
	if err != nil {
		t.Fatalf("failed to open sqlite: %v", err)
	}
	if err := conn.AutoMigrate(&models.Override{}); err != nil {
		t.Fatalf("failed to migrate: %v", err)
	}
	svc, err := NewService(NewRepository(conn))
	if err != nil {
		t.Fatalf("unexpected service error: %v", err)
	}
	return svc
}

func TestSetIsLastWriteWinsPerCell(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()
	key := Key{VendorID: "sylvie", DayIndex: 0, Field: enums.OverrideFieldCard}

	if err := svc.Set(ctx, key, decimal.NewFromInt(100)); err != nil {
		t.Fatalf("first set: %v", err)
	}
	if err := svc.Set(ctx, key, decimal.NewFromInt(2000)); err != nil {
		t.Fatalf("second set: %v", err)
	}

	set, err := svc.Load(ctx)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	got, ok := set.Get("sylvie", 0, enums.OverrideFieldCard)
	if !ok {
		t.Fatal("expected override present")
	}
	if !got.Equal(decimal.NewFromInt(2000)) {
		t.Fatalf("expected last write to win, got %s", got)
	}
	if len(set) != 1 {
		t.Fatalf("expected a single row per cell, got %d", len(set))
	}
}

func TestSetDoesNotTouchOtherCells(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	if err := svc.Set(ctx, Key{VendorID: "sylvie", DayIndex: 0, Field: enums.OverrideFieldCard}, decimal.NewFromInt(50)); err != nil {
		t.Fatalf("set card: %v", err)
	}
	if err := svc.Set(ctx, Key{VendorID: "sylvie", DayIndex: 0, Field: enums.OverrideFieldCash}, decimal.NewFromInt(70)); err != nil {
		t.Fatalf("set cash: %v", err)
	}
	if err := svc.Set(ctx, Key{VendorID: "marc", DayIndex: 0, Field: enums.OverrideFieldCard}, decimal.NewFromInt(90)); err != nil {
		t.Fatalf("set other vendor: %v", err)
	}

	set, err := svc.Load(ctx)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if len(set) != 3 {
		t.Fatalf("expected three independent cells, got %d", len(set))
	}
}

func TestClearRevertsToComputed(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()
	key := Key{VendorID: "sylvie", DayIndex: 2, Field: enums.OverrideFieldSalary}

	if err := svc.Set(ctx, key, decimal.NewFromInt(300)); err != nil {
		t.Fatalf("set: %v", err)
	}
	if err := svc.Clear(ctx, key); err != nil {
		t.Fatalf("clear: %v", err)
	}

	set, err := svc.Load(ctx)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	computed := decimal.NewFromInt(140)
	if got := set.Effective("sylvie", 2, enums.OverrideFieldSalary, computed); !got.Equal(computed) {
		t.Fatalf("cleared cell must fall back to computed value, got %s", got)
	}
}

func TestClearMissingCellIsANoop(t *testing.T) {
	svc := newTestService(t)
	key := Key{VendorID: "sylvie", DayIndex: 0, Field: enums.OverrideFieldCheque}

	if err := svc.Clear(context.Background(), key); err != nil {
		t.Fatalf("clearing an absent override must not error: %v", err)
	}
}

func TestSetRejectsInvalidKeys(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	cases := []Key{
		{VendorID: "", DayIndex: 0, Field: enums.OverrideFieldCard},
		{VendorID: "sylvie", DayIndex: -1, Field: enums.OverrideFieldCard},
		{VendorID: "sylvie", DayIndex: 0, Field: enums.OverrideField("total")},
	}
	for _, key := range cases {
		err := svc.Set(ctx, key, decimal.NewFromInt(1))
		typed := pkgerrors.As(err)
		if typed == nil || typed.Code() != pkgerrors.CodeValidation {
			t.Fatalf("expected validation error for key %+v, got %v", key, err)
		}
	}
}
