package controllers

import (
	"net/http"

	"github.com/shopspring/decimal"

	"github.com/julienmorel/caisse-backend/api/responses"
	"github.com/julienmorel/caisse-backend/api/validators"
	"github.com/julienmorel/caisse-backend/internal/overrides"
	"github.com/julienmorel/caisse-backend/pkg/enums"
	pkgerrors "github.com/julienmorel/caisse-backend/pkg/errors"
	"github.com/julienmorel/caisse-backend/pkg/logger"
)

type overrideSetRequest struct {
	VendorID string          `json:"vendorId" validate:"required"`
	DayIndex int             `json:"dayIndex" validate:"min=0"`
	Field    string          `json:"field" validate:"required,oneof=cheque card cash salary"`
	Amount   decimal.Decimal `json:"amount"`
}

type overrideClearRequest struct {
	VendorID string `json:"vendorId" validate:"required"`
	DayIndex int    `json:"dayIndex" validate:"min=0"`
	Field    string `json:"field" validate:"required,oneof=cheque card cash salary"`
}

// OverrideSet writes one manual cell value. Setting the same cell
// again replaces the previous value.
func OverrideSet(svc overrides.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "override service unavailable"))
			return
		}
		var req overrideSetRequest
		if err := validators.DecodeJSONBody(r, &req); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		key := overrides.Key{
			VendorID: req.VendorID,
			DayIndex: req.DayIndex,
			Field:    enums.OverrideField(req.Field),
		}
		if err := svc.Set(r.Context(), key, req.Amount); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, map[string]any{"applied": true})
	}
}

// OverrideClear removes one manual cell value so the computed figure
// shows again.
func OverrideClear(svc overrides.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "override service unavailable"))
			return
		}
		var req overrideClearRequest
		if err := validators.DecodeJSONBody(r, &req); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		key := overrides.Key{
			VendorID: req.VendorID,
			DayIndex: req.DayIndex,
			Field:    enums.OverrideField(req.Field),
		}
		if err := svc.Clear(r.Context(), key); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, map[string]any{"cleared": true})
	}
}
