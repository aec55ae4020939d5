package vendors

import (
	"context"
	"fmt"

	"github.com/shopspring/decimal"

	dbpkg "github.com/julienmorel/caisse-backend/pkg/db"
	"github.com/julienmorel/caisse-backend/pkg/db/models"
	"github.com/julienmorel/caisse-backend/pkg/enums"
	pkgerrors "github.com/julienmorel/caisse-backend/pkg/errors"
)

// Default commission parameters. Regular vendors earn 17% above the
// 1500 threshold with a 140 guaranteed minimum; the shop manager runs
// on a reduced rate because part of their pay is fixed salary.
var (
	defaultRatePercent = decimal.NewFromInt(17)
	managerRatePercent = decimal.NewFromInt(10)
	defaultThreshold   = decimal.NewFromInt(1500)
	defaultFixedFloor  = decimal.NewFromInt(140)
)

// Service exposes vendor configuration to the rest of the engine.
type Service interface {
	LoadIdentities(ctx context.Context) ([]Identity, error)
	NamesByVendor(ctx context.Context) (map[string]string, error)
	RuleFor(ctx context.Context, vendorID string) (models.CommissionRule, error)
	RulesByVendor(ctx context.Context) (map[string]models.CommissionRule, error)
	UpdateRule(ctx context.Context, rule models.CommissionRule) error
}

type service struct {
	repo Repository
}

// NewService wires a vendor service with the provided repository.
func NewService(repo Repository) (Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("vendor repository required")
	}
	return &service{repo: repo}, nil
}

func (s *service) LoadIdentities(ctx context.Context) ([]Identity, error) {
	rows, err := s.repo.ListVendors(ctx)
	if err != nil {
		return nil, fmt.Errorf("listing vendors: %w", err)
	}
	out := make([]Identity, 0, len(rows))
	for _, row := range rows {
		identity := Identity{ID: row.ID, CanonicalName: row.CanonicalName}
		for _, alias := range row.Aliases {
			identity.Aliases = append(identity.Aliases, Alias{Pattern: alias.Pattern, Kind: alias.Kind})
		}
		// The canonical name always matches itself, even when no
		// aliases were configured.
		identity.Aliases = append(identity.Aliases, Alias{
			Pattern: row.CanonicalName,
			Kind:    enums.AliasKindExact,
		})
		out = append(out, identity)
	}
	return out, nil
}

// NamesByVendor maps vendor ids to their display names. Anything
// shown to the operator or pushed upstream uses the canonical name,
// never the internal id.
func (s *service) NamesByVendor(ctx context.Context) (map[string]string, error) {
	rows, err := s.repo.ListVendors(ctx)
	if err != nil {
		return nil, fmt.Errorf("listing vendors: %w", err)
	}
	out := make(map[string]string, len(rows))
	for _, row := range rows {
		out[row.ID] = row.CanonicalName
	}
	return out, nil
}

func (s *service) RuleFor(ctx context.Context, vendorID string) (models.CommissionRule, error) {
	rule, err := s.repo.GetRule(ctx, vendorID)
	if err == nil {
		return *rule, nil
	}
	if !dbpkg.IsNotFound(err) {
		return models.CommissionRule{}, fmt.Errorf("loading rule for %s: %w", vendorID, err)
	}
	return DefaultRule(vendorID, false), nil
}

func (s *service) RulesByVendor(ctx context.Context) (map[string]models.CommissionRule, error) {
	vendorRows, err := s.repo.ListVendors(ctx)
	if err != nil {
		return nil, fmt.Errorf("listing vendors: %w", err)
	}
	stored, err := s.repo.ListRules(ctx)
	if err != nil {
		return nil, fmt.Errorf("listing rules: %w", err)
	}
	byVendor := make(map[string]models.CommissionRule, len(vendorRows))
	for _, vendor := range vendorRows {
		byVendor[vendor.ID] = DefaultRule(vendor.ID, vendor.IsManager)
	}
	for _, rule := range stored {
		byVendor[rule.VendorID] = rule
	}
	return byVendor, nil
}

func (s *service) UpdateRule(ctx context.Context, rule models.CommissionRule) error {
	if rule.VendorID == "" {
		return pkgerrors.New(pkgerrors.CodeValidation, "vendor id is required")
	}
	if rule.RatePercent.IsNegative() || rule.Threshold.IsNegative() || rule.FixedFloor.IsNegative() {
		return pkgerrors.New(pkgerrors.CodeValidation, "rule amounts must not be negative")
	}
	if err := s.repo.UpsertRule(ctx, &rule); err != nil {
		return fmt.Errorf("upserting rule for %s: %w", rule.VendorID, err)
	}
	return nil
}

// DefaultRule returns the commission parameters a vendor starts a
// session with before any operator edits.
func DefaultRule(vendorID string, isManager bool) models.CommissionRule {
	rate := defaultRatePercent
	if isManager {
		rate = managerRatePercent
	}
	return models.CommissionRule{
		VendorID:     vendorID,
		RatePercent:  rate,
		Threshold:    defaultThreshold,
		FixedFloor:   defaultFixedFloor,
		HousingFee:   decimal.Zero,
		TransportFee: decimal.Zero,
	}
}
