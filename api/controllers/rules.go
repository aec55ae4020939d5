package controllers

import (
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/shopspring/decimal"

	"github.com/julienmorel/caisse-backend/api/responses"
	"github.com/julienmorel/caisse-backend/api/validators"
	"github.com/julienmorel/caisse-backend/internal/vendors"
	"github.com/julienmorel/caisse-backend/pkg/db/models"
	pkgerrors "github.com/julienmorel/caisse-backend/pkg/errors"
	"github.com/julienmorel/caisse-backend/pkg/logger"
)

type ruleUpdateRequest struct {
	RatePercent  decimal.Decimal `json:"ratePercent"`
	Threshold    decimal.Decimal `json:"threshold"`
	FixedFloor   decimal.Decimal `json:"fixedIfUnder"`
	HousingFee   decimal.Decimal `json:"housingFee"`
	TransportFee decimal.Decimal `json:"transportFee"`
}

// RuleUpdate replaces the commission parameters for one vendor. The
// next recompute picks the new rule up; stored overrides are left
// alone.
func RuleUpdate(svc vendors.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "vendor service unavailable"))
			return
		}
		vendorID := strings.TrimSpace(chi.URLParam(r, "vendorId"))
		if vendorID == "" {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeValidation, "vendor id is required"))
			return
		}
		var req ruleUpdateRequest
		if err := validators.DecodeJSONBody(r, &req); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		rule := models.CommissionRule{
			VendorID:     vendorID,
			RatePercent:  req.RatePercent,
			Threshold:    req.Threshold,
			FixedFloor:   req.FixedFloor,
			HousingFee:   req.HousingFee,
			TransportFee: req.TransportFee,
		}
		if err := svc.UpdateRule(r.Context(), rule); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, map[string]any{"updated": true})
	}
}
