package controllers

import (
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/shopspring/decimal"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/julienmorel/caisse-backend/internal/overrides"
	"github.com/julienmorel/caisse-backend/pkg/db/models"
	"github.com/julienmorel/caisse-backend/pkg/enums"
	"github.com/julienmorel/caisse-backend/pkg/logger"
)

func newOverrideService(t *testing.T) overrides.Service {
	t.Helper()
	conn, err := gorm.Open(sqlite.Open("file::memory:"), &gorm.Config{TranslateError: true})
	if err != nil {
		t.Fatalf("failed to open sqlite: %v", err)
	}
	if err := conn.AutoMigrate(&models.Override{}); err != nil {
		t.Fatalf("failed to migrate: %v", err)
	}
	svc, err := overrides.NewService(overrides.NewRepository(conn))
	if err != nil {
		t.Fatalf("unexpected service error: %v", err)
	}
	return svc
}

func testLogg() *logger.Logger {
	return logger.New(logger.Options{ServiceName: "test", Output: io.Discard})
}

func TestOverrideSetWritesCell(t *testing.T) {
	svc := newOverrideService(t)
	handler := OverrideSet(svc, testLogg())

	body := `{"vendorId":"sylvie","dayIndex":0,"field":"card","amount":"2000"}`
	req := httptest.NewRequest(http.MethodPut, "/api/v1/overrides", strings.NewReader(body))
	rec := httptest.NewRecorder()
	handler(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}

	set, err := svc.Load(req.Context())
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	amount, ok := set.Get("sylvie", 0, enums.OverrideFieldCard)
	if !ok || !amount.Equal(decimal.NewFromInt(2000)) {
		t.Fatalf("expected stored override 2000, got %v (ok=%v)", amount, ok)
	}
}

func TestOverrideSetRejectsUnknownField(t *testing.T) {
	handler := OverrideSet(newOverrideService(t), testLogg())

	body := `{"vendorId":"sylvie","dayIndex":0,"field":"total","amount":"2000"}`
	req := httptest.NewRequest(http.MethodPut, "/api/v1/overrides", strings.NewReader(body))
	rec := httptest.NewRecorder()
	handler(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d: %s", rec.Code, rec.Body.String())
	}
}

func TestOverrideClearRemovesCell(t *testing.T) {
	svc := newOverrideService(t)
	key := overrides.Key{VendorID: "sylvie", DayIndex: 1, Field: enums.OverrideFieldCash}
	if err := svc.Set(t.Context(), key, decimal.NewFromInt(50)); err != nil {
		t.Fatalf("seed: %v", err)
	}

	handler := OverrideClear(svc, testLogg())
	body := `{"vendorId":"sylvie","dayIndex":1,"field":"cash"}`
	req := httptest.NewRequest(http.MethodDelete, "/api/v1/overrides", strings.NewReader(body))
	rec := httptest.NewRecorder()
	handler(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}
	set, err := svc.Load(req.Context())
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if _, ok := set.Get("sylvie", 1, enums.OverrideFieldCash); ok {
		t.Fatal("expected the cell to be cleared")
	}
}

func TestOverrideSetRejectsMalformedBody(t *testing.T) {
	handler := OverrideSet(newOverrideService(t), testLogg())

	req := httptest.NewRequest(http.MethodPut, "/api/v1/overrides", strings.NewReader(`{"vendorId":`))
	rec := httptest.NewRecorder()
	handler(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rec.Code)
	}
}
