package overrides

import (
	"context"
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/julienmorel/caisse-backend/pkg/db/models"
	pkgerrors "github.com/julienmorel/caisse-backend/pkg/errors"
)

// Service stores and clears operator cell corrections. Overrides
// survive recomputation triggers (rate edits, refresh cycles) until
// cleared explicitly; nothing here auto-expires.
type Service interface {
	Set(ctx context.Context, key Key, amount decimal.Decimal) error
	Clear(ctx context.Context, key Key) error
	Load(ctx context.Context) (Set, error)
}

type service struct {
	repo Repository
}

// NewService wires an override service with the provided repository.
func NewService(repo Repository) (Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("override repository required")
	}
	return &service{repo: repo}, nil
}

func (s *service) Set(ctx context.Context, key Key, amount decimal.Decimal) error {
	if err := validateKey(key); err != nil {
		return err
	}
	row := &models.Override{
		VendorID: key.VendorID,
		DayIndex: key.DayIndex,
		Field:    key.Field,
		Amount:   amount,
	}
	if err := s.repo.Upsert(ctx, row); err != nil {
		return fmt.Errorf("storing override %s/%d/%s: %w", key.VendorID, key.DayIndex, key.Field, err)
	}
	return nil
}

func (s *service) Clear(ctx context.Context, key Key) error {
	if err := validateKey(key); err != nil {
		return err
	}
	if err := s.repo.Delete(ctx, key); err != nil {
		return fmt.Errorf("clearing override %s/%d/%s: %w", key.VendorID, key.DayIndex, key.Field, err)
	}
	return nil
}

func (s *service) Load(ctx context.Context) (Set, error) {
	rows, err := s.repo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("listing overrides: %w", err)
	}
	set := make(Set, len(rows))
	for _, row := range rows {
		set[Key{VendorID: row.VendorID, DayIndex: row.DayIndex, Field: row.Field}] = row.Amount
	}
	return set, nil
}

func validateKey(key Key) error {
	if key.VendorID == "" {
		return pkgerrors.New(pkgerrors.CodeValidation, "vendor id is required")
	}
	if key.DayIndex < 0 {
		return pkgerrors.New(pkgerrors.CodeValidation, "day index must not be negative")
	}
	if !key.Field.IsValid() {
		return pkgerrors.New(pkgerrors.CodeValidation, "unknown override field")
	}
	return nil
}
