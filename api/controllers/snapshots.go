package controllers

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/julienmorel/caisse-backend/api/responses"
	"github.com/julienmorel/caisse-backend/internal/register"
	"github.com/julienmorel/caisse-backend/pkg/enums"
	pkgerrors "github.com/julienmorel/caisse-backend/pkg/errors"
	"github.com/julienmorel/caisse-backend/pkg/logger"
)

// SnapshotArchive stores the current tables under the lifecycle tag
// in the URL. Archiving the same tag again overwrites in place.
func SnapshotArchive(svc *register.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "register service unavailable"))
			return
		}
		tag, err := enums.ParseLifecycleTag(chi.URLParam(r, "tag"))
		if err != nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid lifecycle tag"))
			return
		}
		id, err := svc.Archive(r.Context(), tag)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccessStatus(w, http.StatusCreated, map[string]any{"snapshotId": id})
	}
}

// SnapshotFetch returns the archived tables for the active session
// under the lifecycle tag in the URL.
func SnapshotFetch(svc *register.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "register service unavailable"))
			return
		}
		tag, err := enums.ParseLifecycleTag(chi.URLParam(r, "tag"))
		if err != nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid lifecycle tag"))
			return
		}
		tables, err := svc.Snapshot(r.Context(), tag)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, map[string]any{"tables": tables})
	}
}
