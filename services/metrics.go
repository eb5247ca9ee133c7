package services

import (
	"fmt"

	"ubi-analysis/models"
	"ubi-analysis/utils"
)

// Variable stems shared by the baseline and reform columns.
const (
	VarCapital         = "b"
	VarLabor           = "n"
	VarConsumption     = "c"
	VarBeforeTaxIncome = "y_before_tax"
	VarBequests        = "bq"
	VarTransfers       = "tr"
	VarNetTax          = "net_tax"
)

// Derived column names.
const (
	ColNetTaxReformRates = "net_tax_reform_rates"
	ColUBI               = "ubi"
	ColAfterTaxIncome    = "after_tax_income"
	ColLaborDiff         = "n_diff"
	ColConsumptionDiff   = "c_diff"
	ColIncomeEffect      = "income_effect"
	ColLaborPctChange    = "n_pct_change"
	ColConsPctChange     = "c_pct_change"
	ColElasticity        = "elasticity"
	displaySuffix        = "_display"
)

// Naming builds scenario column names from variable stems.
type Naming struct {
	BaseSuffix   string
	ReformSuffix string
}

func (n Naming) Base(stem string) string { return stem + n.BaseSuffix }
func (n Naming) Reform(stem string) string { return stem + n.ReformSuffix }

// LevelColumns are the per-person quantities that aggregate by weighted sum,
// in export order.
func (n Naming) LevelColumns() []string {
	return []string{
		n.Base(VarCapital),
		n.Base(VarLabor), n.Reform(VarLabor),
		n.Base(VarConsumption), n.Reform(VarConsumption),
		n.Base(VarBeforeTaxIncome),
		n.Base(VarBequests),
		n.Base(VarTransfers),
		n.Base(VarNetTax), ColNetTaxReformRates,
		ColUBI,
		ColAfterTaxIncome,
	}
}

// RatioCalculator appends the change, ratio and elasticity columns to a
// table holding baseline and reform levels.
type RatioCalculator struct {
	naming   Naming
	decimals int
}

// NewRatioCalculator creates a calculator rounding display columns to the
// given number of decimals.
func NewRatioCalculator(naming Naming, decimals int) *RatioCalculator {
	return &RatioCalculator{naming: naming, decimals: decimals}
}

// Apply adds the derived columns to t in place. Zero denominators follow
// IEEE division: a zero income effect with a labor change gives an infinite
// elasticity, and 0/0 gives NaN.
func (rc *RatioCalculator) Apply(t *models.Table) error {
	n := rc.naming
	src, err := t.Indices(
		n.Base(VarLabor), n.Reform(VarLabor),
		n.Base(VarConsumption), n.Reform(VarConsumption),
		ColUBI, ColAfterTaxIncome,
	)
	if err != nil {
		return fmt.Errorf("ratios: %w", err)
	}
	nBase, nReform, cBase, cReform, ubi, ati := src[0], src[1], src[2], src[3], src[4], src[5]

	derived := []string{
		ColLaborDiff, ColConsumptionDiff,
		ColIncomeEffect, ColLaborPctChange, ColConsPctChange, ColElasticity,
		ColUBI + displaySuffix, ColLaborPctChange + displaySuffix,
		ColConsPctChange + displaySuffix, ColElasticity + displaySuffix,
	}
	dst := make([]int, len(derived))
	for k, name := range derived {
		if dst[k], err = t.AddColumn(name); err != nil {
			return fmt.Errorf("ratios: %w", err)
		}
	}

	for _, r := range t.Rows {
		v := r.Values
		incomeEffect := v[ubi] / v[ati]
		laborChange := v[nReform]/v[nBase] - 1
		consChange := v[cReform]/v[cBase] - 1
		elasticity := laborChange / incomeEffect

		v[dst[0]] = v[nReform] - v[nBase]
		v[dst[1]] = v[cReform] - v[cBase]
		v[dst[2]] = incomeEffect
		v[dst[3]] = laborChange
		v[dst[4]] = consChange
		v[dst[5]] = elasticity
		v[dst[6]] = utils.Round(v[ubi], rc.decimals)
		v[dst[7]] = utils.Round(laborChange*100, rc.decimals)
		v[dst[8]] = utils.Round(consChange*100, rc.decimals)
		v[dst[9]] = utils.Round(elasticity, rc.decimals+1)
	}
	return nil
}
