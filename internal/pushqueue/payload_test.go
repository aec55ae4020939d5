package pushqueue

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/julienmorel/caisse-backend/internal/recon"
	"github.com/julienmorel/caisse-backend/internal/session"
	"github.com/julienmorel/caisse-backend/pkg/db/models"
	"github.com/julienmorel/caisse-backend/pkg/enums"
)

func TestIdempotencyKeyIsDeterministic(t *testing.T) {
	day := time.Date(2025, 9, 5, 23, 30, 0, 0, time.UTC)
	assert.Equal(t, "foire-sept_2025-09-05", IdempotencyKey("foire-sept", day))
	assert.Equal(t, IdempotencyKey("foire-sept", day), IdempotencyKey("foire-sept", day))
	assert.NotEqual(t, IdempotencyKey("foire-sept", day), IdempotencyKey("foire-sept", day.AddDate(0, 0, 1)))
}

func TestBuildSyncPayload(t *testing.T) {
	day := time.Date(2025, 9, 5, 0, 0, 0, 0, time.UTC)
	sctx := session.Context{SessionID: "foire-sept"}
	rule := models.CommissionRule{
		VendorID:    "sylvie",
		RatePercent: decimal.NewFromInt(17),
		Threshold:   decimal.NewFromInt(1500),
		FixedFloor:  decimal.NewFromInt(140),
	}
	tables := []recon.VendorTable{{
		VendorID:   "sylvie",
		VendorName: "sylvie",
		Rule:       rule,
		Buckets: []recon.DailyBucket{{
			DayIndex: 0,
			Date:     day,
			Cheque:   decimal.NewFromInt(700),
			Card:     decimal.NewFromInt(900),
			Cash:     decimal.NewFromInt(100),
			Total:    decimal.NewFromInt(1700),
			Salary:   decimal.NewFromInt(289),
		}},
		Sales: []recon.SaleLine{
			{Date: day.Add(11 * time.Hour), Label: "veste", Amount: decimal.NewFromInt(700), Channel: enums.PaymentChannelCheque},
			{Date: day.Add(12 * time.Hour), Label: "robe", Amount: decimal.NewFromInt(900), Channel: enums.PaymentChannelCard},
		},
	}}

	payload := BuildSyncPayload(sctx, tables, day)

	assert.Equal(t, "foire-sept", payload.SessionID)
	assert.Equal(t, "2025-09-05", payload.Date)
	assert.Equal(t, "foire-sept_2025-09-05", payload.IdempotencyKey)
	require.Len(t, payload.Vendors, 1)

	vendor := payload.Vendors[0]
	assert.Equal(t, "sylvie", vendor.Name)
	assert.True(t, vendor.Rules.Rate.Equal(decimal.NewFromInt(17)))
	assert.True(t, vendor.Rules.FixedIfUnder.Equal(decimal.NewFromInt(140)))

	require.Len(t, vendor.Lines, 1)
	line := vendor.Lines[0]
	assert.Equal(t, "2025-09-05", line.Date)
	assert.True(t, line.Total.Equal(decimal.NewFromInt(1700)))
	assert.True(t, line.Salary.Equal(decimal.NewFromInt(289)))

	require.Len(t, vendor.Sales, 2)
	cheque := vendor.Sales[0]
	assert.Equal(t, "cheque", cheque.Payment)
	assert.Equal(t, 1, cheque.ChecksCount)
	assert.True(t, cheque.CheckAmount.Equal(decimal.NewFromInt(700)))
	card := vendor.Sales[1]
	assert.Equal(t, "card", card.Payment)
	assert.Equal(t, 0, card.ChecksCount)
}
