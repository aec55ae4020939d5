package recon

import (
	"github.com/shopspring/decimal"

	"github.com/julienmorel/caisse-backend/pkg/db/models"
)

var oneHundred = decimal.NewFromInt(100)

// ComputeSalary applies a vendor's tiered rule to a daily total.
//
// Below the threshold the vendor earns the fixed floor, even on a zero
// day: the floor is a guaranteed minimum, not a commission. At or
// above the threshold the salary is the rate percentage of the total.
// Both branches test against the same boundary value so exactly one
// applies to any total.
func ComputeSalary(bucketTotal decimal.Decimal, rule models.CommissionRule) decimal.Decimal {
	if bucketTotal.LessThan(rule.Threshold) {
		return rule.FixedFloor.Round(2)
	}
	return bucketTotal.Mul(rule.RatePercent).Div(oneHundred).Round(2)
}

// AboveThreshold mirrors the salary branch boundary: >= here, < in
// ComputeSalary's floor branch.
func AboveThreshold(bucketTotal decimal.Decimal, rule models.CommissionRule) bool {
	return bucketTotal.GreaterThanOrEqual(rule.Threshold)
}
