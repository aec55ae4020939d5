package snapshots

import (
	"context"
	"encoding/json"
	"time"

	"github.com/google/uuid"

	"github.com/julienmorel/caisse-backend/internal/recon"
	"github.com/julienmorel/caisse-backend/internal/session"
	dbpkg "github.com/julienmorel/caisse-backend/pkg/db"
	"github.com/julienmorel/caisse-backend/pkg/db/models"
	"github.com/julienmorel/caisse-backend/pkg/enums"
	pkgerrors "github.com/julienmorel/caisse-backend/pkg/errors"
	"github.com/julienmorel/caisse-backend/pkg/logger"
)

// Service archives and retrieves computed vendor tables.
type Service interface {
	Archive(ctx context.Context, sctx session.Context, tag enums.LifecycleTag, tables []recon.VendorTable) (uuid.UUID, error)
	Retrieve(ctx context.Context, sessionID string, tag enums.LifecycleTag) ([]recon.VendorTable, error)
}

// ServiceParams configures a snapshot service.
type ServiceParams struct {
	Repo   Repository
	Logger *logger.Logger
	Now    func() time.Time
}

type service struct {
	repo Repository
	logg *logger.Logger
	now  func() time.Time
}

// NewService wires a snapshot service.
func NewService(params ServiceParams) (Service, error) {
	if params.Repo == nil {
		return nil, pkgerrors.New(pkgerrors.CodeInternal, "snapshot repository required")
	}
	now := params.Now
	if now == nil {
		now = time.Now
	}
	return &service{repo: params.Repo, logg: params.Logger, now: now}, nil
}

// Archive persists the tables under (session, tag). A failed write is
// returned to the caller in full: losing a snapshot is a data-loss
// event the operator has to know about.
func (s *service) Archive(ctx context.Context, sctx session.Context, tag enums.LifecycleTag, tables []recon.VendorTable) (uuid.UUID, error) {
	if sctx.SessionID == "" {
		return uuid.Nil, pkgerrors.New(pkgerrors.CodeValidation, "session id is required")
	}
	if !tag.IsValid() {
		return uuid.Nil, pkgerrors.New(pkgerrors.CodeValidation, "unknown lifecycle tag")
	}

	serialized, err := json.Marshal(tables)
	if err != nil {
		return uuid.Nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "serializing tables")
	}

	row := &models.Snapshot{
		ID:           uuid.New(),
		SessionID:    sctx.SessionID,
		SessionName:  sctx.SessionName,
		SessionStart: sctx.Start,
		SessionEnd:   sctx.End,
		LifecycleTag: tag,
		ArchivedAt:   s.now(),
		Tables:       serialized,
	}
	if err := s.repo.Upsert(ctx, row); err != nil {
		return uuid.Nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "writing snapshot")
	}

	// Re-archiving an existing (session, tag) pair keeps the original
	// row's id, so read the persisted row back rather than trusting the
	// one we just minted.
	stored, err := s.repo.FindBySessionAndTag(ctx, sctx.SessionID, tag)
	if err != nil {
		return uuid.Nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "reading snapshot after write")
	}

	if s.logg != nil {
		fields := map[string]any{
			"session_id": sctx.SessionID,
			"tag":        tag,
			"vendors":    len(tables),
		}
		s.logg.Info(s.logg.WithFields(ctx, fields), "snapshot archived")
	}
	return stored.ID, nil
}

// Retrieve returns the most recently archived tables for the pair.
func (s *service) Retrieve(ctx context.Context, sessionID string, tag enums.LifecycleTag) ([]recon.VendorTable, error) {
	row, err := s.repo.FindBySessionAndTag(ctx, sessionID, tag)
	if err != nil {
		if dbpkg.IsNotFound(err) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "no snapshot for session and tag")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "reading snapshot")
	}

	var tables []recon.VendorTable
	if err := json.Unmarshal(row.Tables, &tables); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "deserializing tables")
	}
	return tables, nil
}
