package controllers

import (
	"net/http"

	"github.com/julienmorel/caisse-backend/api/responses"
	"github.com/julienmorel/caisse-backend/internal/pushqueue"
	pkgerrors "github.com/julienmorel/caisse-backend/pkg/errors"
	"github.com/julienmorel/caisse-backend/pkg/logger"
)

// QueueStatus reports how many payloads are waiting for delivery.
func QueueStatus(svc *pushqueue.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "queue service unavailable"))
			return
		}
		pending, err := svc.PendingCount(r.Context())
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, map[string]any{"pending": pending})
	}
}

// QueueDrain runs one drain cycle right now, without waiting for the
// connectivity signal. Items that fail stay queued.
func QueueDrain(svc *pushqueue.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "queue service unavailable"))
			return
		}
		drainErr := svc.Drain(r.Context())
		pending, err := svc.PendingCount(r.Context())
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		result := map[string]any{"pending": pending}
		if drainErr != nil {
			result["failures"] = drainErr.Error()
		}
		responses.WriteSuccess(w, result)
	}
}
