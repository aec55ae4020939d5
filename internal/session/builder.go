package session

import (
	"context"
	"fmt"
	"time"

	"github.com/julienmorel/caisse-backend/internal/overrides"
	"github.com/julienmorel/caisse-backend/internal/vendors"
	dbpkg "github.com/julienmorel/caisse-backend/pkg/db"
)

// BuilderParams configures a Builder.
type BuilderParams struct {
	Sessions  Repository
	Vendors   vendors.Service
	Overrides overrides.Service
	Now       func() time.Time
}

// Builder assembles the per-run Context from the stores. Every
// pipeline run gets a fresh Context so rate edits, overrides and RAZ
// changes are picked up without any listener bookkeeping.
type Builder struct {
	sessions  Repository
	vendors   vendors.Service
	overrides overrides.Service
	now       func() time.Time
}

// NewBuilder wires a Builder.
func NewBuilder(params BuilderParams) (*Builder, error) {
	if params.Sessions == nil {
		return nil, fmt.Errorf("session repository required")
	}
	if params.Vendors == nil {
		return nil, fmt.Errorf("vendor service required")
	}
	if params.Overrides == nil {
		return nil, fmt.Errorf("override service required")
	}
	now := params.Now
	if now == nil {
		now = time.Now
	}
	return &Builder{
		sessions:  params.Sessions,
		vendors:   params.Vendors,
		overrides: params.Overrides,
		now:       now,
	}, nil
}

// Build loads the active session and its companions. Without an
// active session the context covers today only, under an ad hoc
// session id, so the register keeps working between fairs.
func (b *Builder) Build(ctx context.Context) (Context, error) {
	out := Context{}

	active, err := b.sessions.GetActive(ctx)
	switch {
	case err == nil:
		out.SessionID = active.ID
		out.SessionName = active.Name
		out.Start = active.StartDate
		out.End = active.EndDate
	case dbpkg.IsNotFound(err):
		today := b.now()
		out.SessionID = "adhoc-" + today.Format("2006-01-02")
		out.SessionName = "journée courante"
	default:
		return Context{}, fmt.Errorf("loading active session: %w", err)
	}

	if out.Start != nil && out.End != nil {
		out.Dates = DatesBetween(*out.Start, *out.End)
	} else {
		out.Dates = []time.Time{startOfDay(b.now())}
	}

	checkpoint, err := b.sessions.GetCheckpoint(ctx, out.SessionID)
	switch {
	case err == nil:
		resetAt := checkpoint.ResetAt
		out.Checkpoint = &resetAt
	case dbpkg.IsNotFound(err):
		// No RAZ ever performed; every transaction passes.
	default:
		return Context{}, fmt.Errorf("loading checkpoint: %w", err)
	}

	rules, err := b.vendors.RulesByVendor(ctx)
	if err != nil {
		return Context{}, err
	}
	out.Rules = rules

	names, err := b.vendors.NamesByVendor(ctx)
	if err != nil {
		return Context{}, err
	}
	out.Names = names

	set, err := b.overrides.Load(ctx)
	if err != nil {
		return Context{}, err
	}
	out.Overrides = set

	return out, nil
}
