package services

import (
	"fmt"

	"gonum.org/v1/gonum/mat"

	"ubi-analysis/models"
	"ubi-analysis/utils"
)

// TableNames are the output names of the four result tables.
type TableNames struct {
	Persons string
	ByAge   string
	ByGroup string
	Total   string
}

// Options carries the settings the pipeline would otherwise read from
// package state.
type Options struct {
	IncomeGroupLabels []string
	Naming            Naming
	ShareTolerance    float64
	CompareTolerance  float64
	DisplayDecimals   int
	Tables            TableNames
}

// DefaultOptions returns the settings used when nothing is configured.
func DefaultOptions() Options {
	return Options{
		IncomeGroupLabels: models.DefaultIncomeGroupLabels,
		Naming:            Naming{BaseSuffix: "_base", ReformSuffix: "_reform"},
		ShareTolerance:    1e-6,
		CompareTolerance:  1e-9,
		DisplayDecimals:   2,
		Tables: TableNames{
			Persons: "ss_by_age_income",
			ByAge:   "ss_by_age",
			ByGroup: "ss_by_income_group",
			Total:   "ss_economy_wide",
		},
	}
}

// Analysis is the output of one pipeline run.
type Analysis struct {
	Lookups *models.Lookups
	Persons *models.Table
	ByAge   *models.Table
	ByGroup *models.Table
	Total   *models.Table
}

// Tables returns the four result tables in export order.
func (a *Analysis) Tables() []*models.Table {
	return []*models.Table{a.Persons, a.ByAge, a.ByGroup, a.Total}
}

// Pipeline compares a baseline and a reform steady state.
type Pipeline struct {
	opts   Options
	logger *utils.Logger
}

// NewPipeline creates a Pipeline with the given options.
func NewPipeline(opts Options, logger *utils.Logger) *Pipeline {
	return &Pipeline{opts: opts, logger: logger}
}

// Run derives the implied UBI and behavioral responses and aggregates them.
// Prices and behavior are held at baseline values when isolating the
// tax-rate change.
func (p *Pipeline) Run(base, reform *models.Scenario) (*Analysis, error) {
	for _, s := range []*models.Scenario{base, reform} {
		if err := s.Validate(); err != nil {
			return nil, err
		}
	}
	if err := CheckComparable(base, reform, p.opts.CompareTolerance); err != nil {
		return nil, err
	}

	rates, err := NewRateFunc(base.Params.TaxFuncType)
	if err != nil {
		return nil, err
	}
	in := BehaviorInputs(base)
	netTaxBase, err := NetTax(rates, in, base.Params.ETRParams)
	if err != nil {
		return nil, fmt.Errorf("%s rates: %w", base.Name, err)
	}
	netTaxReform, err := NetTax(rates, in, reform.Params.ETRParams)
	if err != nil {
		return nil, fmt.Errorf("%s rates: %w", reform.Name, err)
	}
	ubi := ImpliedUBI(netTaxBase, netTaxReform, in.Factor)
	afterTax := AfterTaxIncome(in, netTaxBase)
	p.logger.Debug("[pipeline] net tax evaluated under %s and %s coefficients (%s form)",
		base.Name, reform.Name, base.Params.TaxFuncType)

	lk, err := BuildLookups(base.Params, p.opts.IncomeGroupLabels, p.opts.ShareTolerance)
	if err != nil {
		return nil, err
	}

	n := p.opts.Naming
	br, rr := base.Result, reform.Result
	persons, err := Reshape(p.opts.Tables.Persons, lk, n.LevelColumns(),
		[]*mat.Dense{
			br.Capital,
			br.Labor, rr.Labor,
			br.Consumption, rr.Consumption,
			br.BeforeTaxIncome,
			br.Bequests,
			br.Transfers,
			netTaxBase, netTaxReform,
			ubi,
			afterTax,
		}...)
	if err != nil {
		return nil, err
	}

	ratios := NewRatioCalculator(n, p.opts.DisplayDecimals)
	if err := ratios.Apply(persons); err != nil {
		return nil, err
	}
	p.logger.Info("[pipeline] Per-person table: %d rows (%d ages x %d income groups)",
		persons.Len(), len(lk.Ages), len(lk.Groups))

	agg := NewAggregator(n, ratios)
	a := &Analysis{Lookups: lk, Persons: persons}
	if a.ByAge, err = agg.ByAge(persons, p.opts.Tables.ByAge); err != nil {
		return nil, err
	}
	if a.ByGroup, err = agg.ByGroup(persons, p.opts.Tables.ByGroup); err != nil {
		return nil, err
	}
	if a.Total, err = agg.Total(persons, p.opts.Tables.Total); err != nil {
		return nil, err
	}

	for _, s := range []*models.Scenario{base, reform} {
		if err := CheckFirstPeriod(s, p.opts.CompareTolerance); err != nil {
			return nil, err
		}
	}
	return a, nil
}
