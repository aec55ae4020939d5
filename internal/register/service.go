package register

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/julienmorel/caisse-backend/internal/ingest"
	"github.com/julienmorel/caisse-backend/internal/pushqueue"
	"github.com/julienmorel/caisse-backend/internal/recon"
	"github.com/julienmorel/caisse-backend/internal/session"
	"github.com/julienmorel/caisse-backend/internal/snapshots"
	"github.com/julienmorel/caisse-backend/pkg/enums"
	"github.com/julienmorel/caisse-backend/pkg/logger"
)

// SourceProvider hands the pipeline its three raw feeds.
type SourceProvider interface {
	Load(ctx context.Context) (ingest.SourceSet, error)
}

// ServiceParams configures the register service.
type ServiceParams struct {
	Builder   *session.Builder
	Engine    *recon.Engine
	Sources   SourceProvider
	Sessions  session.Repository
	Snapshots snapshots.Service
	Queue     *pushqueue.Service
	Logger    *logger.Logger
	Now       func() time.Time
}

// Service orchestrates full pipeline runs for the operator surface:
// recompute, remise à zéro, snapshot archiving and end-of-day close.
type Service struct {
	builder   *session.Builder
	engine    *recon.Engine
	sources   SourceProvider
	sessions  session.Repository
	snapshots snapshots.Service
	queue     *pushqueue.Service
	logg      *logger.Logger
	now       func() time.Time
}

// NewService wires a register service.
func NewService(params ServiceParams) (*Service, error) {
	if params.Builder == nil {
		return nil, fmt.Errorf("session builder required")
	}
	if params.Engine == nil {
		return nil, fmt.Errorf("engine required")
	}
	if params.Sources == nil {
		return nil, fmt.Errorf("source provider required")
	}
	if params.Sessions == nil {
		return nil, fmt.Errorf("session repository required")
	}
	now := params.Now
	if now == nil {
		now = time.Now
	}
	return &Service{
		builder:   params.Builder,
		engine:    params.Engine,
		sources:   params.Sources,
		sessions:  params.Sessions,
		snapshots: params.Snapshots,
		queue:     params.Queue,
		logg:      params.Logger,
		now:       now,
	}, nil
}

// TablesResult is one full recompute, ready for the register UI.
type TablesResult struct {
	SessionID   string              `json:"sessionId"`
	SessionName string              `json:"sessionName"`
	Dates       []time.Time         `json:"dates"`
	Checkpoint  *time.Time          `json:"checkpoint,omitempty"`
	Tables      []recon.VendorTable `json:"tables"`
}

// Tables rebuilds the session context from the stores, loads the
// feeds and recomputes every vendor table.
func (s *Service) Tables(ctx context.Context, trigger string) (TablesResult, error) {
	sctx, err := s.builder.Build(ctx)
	if err != nil {
		return TablesResult{}, err
	}
	sources, err := s.sources.Load(ctx)
	if err != nil {
		return TablesResult{}, fmt.Errorf("loading sources: %w", err)
	}
	tables := s.engine.Recompute(ctx, sources, sctx, trigger)
	return TablesResult{
		SessionID:   sctx.SessionID,
		SessionName: sctx.SessionName,
		Dates:       sctx.Dates,
		Checkpoint:  sctx.Checkpoint,
		Tables:      tables,
	}, nil
}

// Reset performs a remise à zéro: from now on only transactions
// strictly after this moment count toward the session figures.
func (s *Service) Reset(ctx context.Context) (time.Time, error) {
	sctx, err := s.builder.Build(ctx)
	if err != nil {
		return time.Time{}, err
	}
	resetAt := s.now()
	if err := s.sessions.SetCheckpoint(ctx, sctx.SessionID, resetAt); err != nil {
		return time.Time{}, fmt.Errorf("recording reset: %w", err)
	}
	if s.logg != nil {
		logCtx := s.logg.WithSessionID(ctx, sctx.SessionID)
		s.logg.Info(logCtx, "remise à zéro recorded")
	}
	return resetAt, nil
}

// Archive recomputes the current tables and stores them under the
// given lifecycle tag.
func (s *Service) Archive(ctx context.Context, tag enums.LifecycleTag) (uuid.UUID, error) {
	if s.snapshots == nil {
		return uuid.Nil, fmt.Errorf("snapshot service not configured")
	}
	sctx, err := s.builder.Build(ctx)
	if err != nil {
		return uuid.Nil, err
	}
	sources, err := s.sources.Load(ctx)
	if err != nil {
		return uuid.Nil, fmt.Errorf("loading sources: %w", err)
	}
	tables := s.engine.Recompute(ctx, sources, sctx, "archive")
	return s.snapshots.Archive(ctx, sctx, tag, tables)
}

// Snapshot returns the archived tables for the active session under tag.
func (s *Service) Snapshot(ctx context.Context, tag enums.LifecycleTag) ([]recon.VendorTable, error) {
	if s.snapshots == nil {
		return nil, fmt.Errorf("snapshot service not configured")
	}
	sctx, err := s.builder.Build(ctx)
	if err != nil {
		return nil, err
	}
	return s.snapshots.Retrieve(ctx, sctx.SessionID, tag)
}

// CloseResult reports what an end-of-day close produced.
type CloseResult struct {
	SnapshotID uuid.UUID `json:"snapshotId"`
	Enqueued   int       `json:"enqueued"`
}

// CloseDay archives a closing snapshot and buffers one sync payload
// per session day for delivery. Re-closing the same day is harmless:
// the snapshot is overwritten in place and the queue deduplicates on
// the idempotency key.
func (s *Service) CloseDay(ctx context.Context) (CloseResult, error) {
	if s.snapshots == nil || s.queue == nil {
		return CloseResult{}, fmt.Errorf("close requires snapshot and queue services")
	}
	sctx, err := s.builder.Build(ctx)
	if err != nil {
		return CloseResult{}, err
	}
	sources, err := s.sources.Load(ctx)
	if err != nil {
		return CloseResult{}, fmt.Errorf("loading sources: %w", err)
	}
	tables := s.engine.Recompute(ctx, sources, sctx, "close")

	snapshotID, err := s.snapshots.Archive(ctx, sctx, enums.LifecycleTagClosing, tables)
	if err != nil {
		return CloseResult{}, err
	}

	enqueued := 0
	for _, date := range sctx.Dates {
		payload := pushqueue.BuildSyncPayload(sctx, tables, date)
		if err := s.queue.Enqueue(ctx, payload); err != nil {
			return CloseResult{SnapshotID: snapshotID, Enqueued: enqueued}, err
		}
		enqueued++
	}

	if s.logg != nil {
		logCtx := s.logg.WithSessionID(ctx, sctx.SessionID)
		logCtx = s.logg.WithField(logCtx, "enqueued", enqueued)
		s.logg.Info(logCtx, "day closed")
	}
	return CloseResult{SnapshotID: snapshotID, Enqueued: enqueued}, nil
}
