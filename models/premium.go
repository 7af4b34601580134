package models

import (
	"fmt"

	"github.com/motorsure/motorsure-api/api"
)

// Underwriting rates in basis points of the vehicle market value (the base
// rate) or of the base premium (stamp duty and motor levy).
const (
	baseRateComprehensive  = 600 // 6.00%
	baseRateThirdParty     = 300 // 3.00%
	stampDutyRate          = 500 // 5.00% of base
	motorLevyComprehensive = 225 // 2.25% of base
	motorLevyThirdParty    = 150 // 1.50% of base

	basisPointDivisor = 10000
	termsPerYear      = 3
)

// roundDiv divides n by d rounding half up. n and d must be non-negative.
func roundDiv(n, d int) int {
	return (n + d/2) / d
}

// applyRate charges a basis-point rate against an amount in cents,
// rounding half up on the cent.
func applyRate(amount api.Currency, rateBasisPoints int) api.Currency {
	return api.Currency(roundDiv(int(amount)*rateBasisPoints, basisPointDivisor))
}

// CalculatePremium computes the full premium breakdown for a coverage type
// and a vehicle market value. It is a pure function: identical inputs always
// produce identical output, and nothing is persisted or notified, so it also
// serves the quote preview path.
func CalculatePremium(coverageType api.CoverageType, marketValue api.Currency) (api.PremiumBreakdown, error) {
	if marketValue <= 0 {
		return api.PremiumBreakdown{}, api.NewAppError(
			fmt.Errorf("market value must be positive, got %s", marketValue),
			api.ErrorVehicleMarketValue, api.CategoryUser)
	}

	var baseRate, levyRate int
	switch coverageType {
	case api.CoverageTypeComprehensive:
		baseRate, levyRate = baseRateComprehensive, motorLevyComprehensive
	case api.CoverageTypeThirdParty:
		baseRate, levyRate = baseRateThirdParty, motorLevyThirdParty
	default:
		return api.PremiumBreakdown{}, api.NewAppError(
			fmt.Errorf("unknown coverage type %q", coverageType),
			api.ErrorPolicyCoverage, api.CategoryUser)
	}

	base := applyRate(marketValue, baseRate)
	stamp := applyRate(base, stampDutyRate)
	levy := applyRate(base, levyRate)
	annual := base + stamp + levy

	return api.PremiumBreakdown{
		BasePremium:    base,
		StampDuty:      stamp,
		GovernmentLevy: levy,
		AnnualPremium:  annual,
		TermlyPremium:  api.Currency(roundDiv(int(annual), termsPerYear)),
	}, nil
}
