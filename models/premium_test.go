package models

import (
	"testing"

	"github.com/motorsure/motorsure-api/api"
)

func (ms *ModelSuite) TestCalculatePremium() {
	tests := []struct {
		name         string
		coverageType api.CoverageType
		marketValue  api.Currency
		want         api.PremiumBreakdown
		wantErrKey   api.ErrorKey
	}{
		{
			name:         "comprehensive on 100,000.00",
			coverageType: api.CoverageTypeComprehensive,
			marketValue:  10_000_000,
			want: api.PremiumBreakdown{
				BasePremium:    600_000,
				StampDuty:      30_000,
				GovernmentLevy: 13_500,
				AnnualPremium:  643_500,
				TermlyPremium:  214_500,
			},
		},
		{
			name:         "third party on 100,000.00",
			coverageType: api.CoverageTypeThirdParty,
			marketValue:  10_000_000,
			want: api.PremiumBreakdown{
				BasePremium:    300_000,
				StampDuty:      15_000,
				GovernmentLevy: 4_500,
				AnnualPremium:  319_500,
				TermlyPremium:  106_500,
			},
		},
		{
			name:         "termly installment rounds half up",
			coverageType: api.CoverageTypeComprehensive,
			marketValue:  1_000_001,
			want: api.PremiumBreakdown{
				BasePremium:    60_000,
				StampDuty:      3_000,
				GovernmentLevy: 1_350,
				AnnualPremium:  64_350,
				TermlyPremium:  21_450,
			},
		},
		{
			name:         "zero market value",
			coverageType: api.CoverageTypeComprehensive,
			marketValue:  0,
			wantErrKey:   api.ErrorVehicleMarketValue,
		},
		{
			name:         "negative market value",
			coverageType: api.CoverageTypeThirdParty,
			marketValue:  -100,
			wantErrKey:   api.ErrorVehicleMarketValue,
		},
		{
			name:         "unknown coverage type",
			coverageType: api.CoverageType("life"),
			marketValue:  10_000_000,
			wantErrKey:   api.ErrorPolicyCoverage,
		},
	}

	for _, tt := range tests {
		ms.T().Run(tt.name, func(t *testing.T) {
			got, err := CalculatePremium(tt.coverageType, tt.marketValue)

			if tt.wantErrKey != "" {
				ms.Error(err)
				ms.EqualAppError(api.AppError{Key: tt.wantErrKey, Category: api.CategoryUser}, err)
				return
			}

			ms.NoError(err)
			ms.Equal(tt.want, got)
		})
	}
}

func (ms *ModelSuite) TestCalculatePremium_deterministic() {
	first, err := CalculatePremium(api.CoverageTypeComprehensive, 7_654_321)
	ms.NoError(err)

	for i := 0; i < 10; i++ {
		again, err := CalculatePremium(api.CoverageTypeComprehensive, 7_654_321)
		ms.NoError(err)
		ms.Equal(first, again, "same inputs must always price the same")
	}

	ms.Equal(first.AnnualPremium, first.BasePremium+first.StampDuty+first.GovernmentLevy)
}

func (ms *ModelSuite) Test_roundDiv() {
	tests := []struct {
		n, d, want int
	}{
		{9, 3, 3},
		{10, 3, 3},
		{11, 3, 4},
		{64_350, 3, 21_450},
		{100, 3, 33},
		{0, 3, 0},
	}
	for _, tt := range tests {
		ms.Equal(tt.want, roundDiv(tt.n, tt.d), "roundDiv(%d, %d)", tt.n, tt.d)
	}
}
