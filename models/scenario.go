package models

import (
	"fmt"

	"gonum.org/v1/gonum/mat"
)

// TaxFuncType names the functional form of the effective tax rate.
type TaxFuncType string

const (
	TaxFuncLinear TaxFuncType = "linear"
	TaxFuncGS     TaxFuncType = "GS"
	TaxFuncDEP    TaxFuncType = "DEP"
)

// ScenarioResult holds the steady-state quantities of one model run. Every
// matrix is ages x skill types.
type ScenarioResult struct {
	Capital         *mat.Dense // capital holdings at the start of each age
	Labor           *mat.Dense
	Consumption     *mat.Dense
	BeforeTaxIncome *mat.Dense
	Bequests        *mat.Dense
	Transfers       *mat.Dense

	InterestRate float64
	Wage         float64
	Factor       float64 // model units to dollars
}

// Dims returns the shared shape of the result matrices.
func (r *ScenarioResult) Dims() (ages, skills int) {
	return r.Labor.Dims()
}

// Matrices returns the result matrices keyed by their bundle field name.
func (r *ScenarioResult) Matrices() map[string]*mat.Dense {
	return map[string]*mat.Dense{
		"bssmat_s":           r.Capital,
		"nssmat":             r.Labor,
		"cssmat":             r.Consumption,
		"yss_before_tax_mat": r.BeforeTaxIncome,
		"bqssmat":            r.Bequests,
		"trssmat":            r.Transfers,
	}
}

// ScenarioParams holds the population weights, productivity and tax
// function coefficients of one model run.
type ScenarioParams struct {
	StartAge     int
	Lambdas      []float64  // one share per skill type
	Omegas       []float64  // one share per age, final period
	Productivity *mat.Dense // ages x skill types
	TaxFuncType  TaxFuncType
	ETRParams    [][][]float64 // ages x skill types x coefficients
}

// Coefs returns the tax function coefficients of one cell.
func (p *ScenarioParams) Coefs(age, skill int) []float64 {
	return p.ETRParams[age][skill]
}

// Scenario pairs a run's results with its parameters.
type Scenario struct {
	Name   string
	Result *ScenarioResult
	Params *ScenarioParams
}

// Validate checks that every matrix, weight vector and coefficient array
// agrees on the number of ages and skill types.
func (s *Scenario) Validate() error {
	if s.Result == nil || s.Params == nil {
		return fmt.Errorf("scenario %q: missing results or params", s.Name)
	}
	if s.Result.Labor == nil {
		return fmt.Errorf("scenario %q: nssmat missing", s.Name)
	}
	ages, skills := s.Result.Dims()
	for name, m := range s.Result.Matrices() {
		if m == nil {
			return fmt.Errorf("scenario %q: %s missing", s.Name, name)
		}
		if r, c := m.Dims(); r != ages || c != skills {
			return fmt.Errorf("scenario %q: %s is %dx%d, want %dx%d", s.Name, name, r, c, ages, skills)
		}
	}
	if s.Params.Productivity == nil {
		return fmt.Errorf("scenario %q: productivity missing", s.Name)
	}
	if r, c := s.Params.Productivity.Dims(); r != ages || c != skills {
		return fmt.Errorf("scenario %q: productivity is %dx%d, want %dx%d", s.Name, r, c, ages, skills)
	}
	if n := len(s.Params.Lambdas); n != skills {
		return fmt.Errorf("scenario %q: lambdas has %d entries, want %d", s.Name, n, skills)
	}
	if n := len(s.Params.Omegas); n != ages {
		return fmt.Errorf("scenario %q: omega_SS has %d entries, want %d", s.Name, n, ages)
	}
	if len(s.Params.ETRParams) != ages {
		return fmt.Errorf("scenario %q: etr_params has %d ages, want %d", s.Name, len(s.Params.ETRParams), ages)
	}
	width := -1
	for i, row := range s.Params.ETRParams {
		if len(row) != skills {
			return fmt.Errorf("scenario %q: etr_params age %d has %d skill types, want %d", s.Name, i, len(row), skills)
		}
		for j, coefs := range row {
			if width < 0 {
				width = len(coefs)
			}
			if len(coefs) != width {
				return fmt.Errorf("scenario %q: etr_params[%d][%d] has %d coefficients, want %d",
					s.Name, i, j, len(coefs), width)
			}
		}
	}
	return nil
}
