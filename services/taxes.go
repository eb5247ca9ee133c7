package services

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/mat"

	"ubi-analysis/models"
)

// RateFunc evaluates an effective tax rate on dollar capital and labor
// income for one cell's coefficients.
type RateFunc interface {
	ETR(capitalIncome, laborIncome float64, coefs []float64) (float64, error)
}

// NewRateFunc returns the rate function for a tax function type.
func NewRateFunc(kind models.TaxFuncType) (RateFunc, error) {
	switch kind {
	case models.TaxFuncLinear:
		return linearRate{}, nil
	case models.TaxFuncGS:
		return gsRate{}, nil
	case models.TaxFuncDEP:
		return depRate{}, nil
	default:
		return nil, fmt.Errorf("unsupported tax function type %q", kind)
	}
}

type linearRate struct{}

func (linearRate) ETR(_, _ float64, coefs []float64) (float64, error) {
	if len(coefs) < 1 {
		return 0, fmt.Errorf("linear rate: need 1 coefficient, got %d", len(coefs))
	}
	return coefs[0], nil
}

// gsRate is the Gouveia-Strauss form on total income.
type gsRate struct{}

func (gsRate) ETR(capitalIncome, laborIncome float64, coefs []float64) (float64, error) {
	if len(coefs) < 3 {
		return 0, fmt.Errorf("GS rate: need 3 coefficients, got %d", len(coefs))
	}
	phi0, phi1, phi2 := coefs[0], coefs[1], coefs[2]
	income := capitalIncome + laborIncome
	if income <= 0 {
		return 0, nil
	}
	return phi0 * (income - math.Pow(math.Pow(income, -phi1)+phi2, -1/phi1)) / income, nil
}

// depRate is the ratio-of-polynomials form with separate capital and labor
// rates combined geometrically.
type depRate struct{}

func (depRate) ETR(capitalIncome, laborIncome float64, coefs []float64) (float64, error) {
	if len(coefs) < 12 {
		return 0, fmt.Errorf("DEP rate: need 12 coefficients, got %d", len(coefs))
	}
	a, b, c, d := coefs[0], coefs[1], coefs[2], coefs[3]
	maxX, maxY, share := coefs[4], coefs[5], coefs[6]
	minX, minY := coefs[7], coefs[8]
	shiftX, shiftY, shift := coefs[9], coefs[10], coefs[11]

	x, y := capitalIncome, laborIncome
	px := a*x*x + b*x
	py := c*y*y + d*y
	tauX := (maxX-minX)*(px/(px+1)) + minX
	tauY := (maxY-minY)*(py/(py+1)) + minY
	return math.Pow(tauX+shiftX, share)*math.Pow(tauY+shiftY, 1-share) + shift, nil
}

// NetTaxInputs are the prices and per-cell behavior net tax is evaluated on.
// Matrices are ages x skill types in model units.
type NetTaxInputs struct {
	InterestRate float64
	Wage         float64
	Factor       float64
	Capital      *mat.Dense
	Labor        *mat.Dense
	Productivity *mat.Dense
	Bequests     *mat.Dense
	Transfers    *mat.Dense
}

// BehaviorInputs takes prices and behavior from a scenario.
func BehaviorInputs(s *models.Scenario) NetTaxInputs {
	return NetTaxInputs{
		InterestRate: s.Result.InterestRate,
		Wage:         s.Result.Wage,
		Factor:       s.Result.Factor,
		Capital:      s.Result.Capital,
		Labor:        s.Result.Labor,
		Productivity: s.Params.Productivity,
		Bequests:     s.Result.Bequests,
		Transfers:    s.Result.Transfers,
	}
}

// CapitalIncome returns r*b per cell.
func (in NetTaxInputs) CapitalIncome() *mat.Dense {
	var x mat.Dense
	x.Scale(in.InterestRate, in.Capital)
	return &x
}

// LaborIncome returns w*e*n per cell.
func (in NetTaxInputs) LaborIncome() *mat.Dense {
	var y mat.Dense
	y.MulElem(in.Productivity, in.Labor)
	y.Scale(in.Wage, &y)
	return &y
}

// NetTax returns income tax less bequests and transfers received, per cell,
// in model units. The rate is evaluated on dollar incomes.
func NetTax(rates RateFunc, in NetTaxInputs, coefs [][][]float64) (*mat.Dense, error) {
	x := in.CapitalIncome()
	y := in.LaborIncome()
	ages, skills := x.Dims()
	if len(coefs) != ages {
		return nil, fmt.Errorf("net tax: coefficients cover %d ages, want %d", len(coefs), ages)
	}

	out := mat.NewDense(ages, skills, nil)
	for s := 0; s < ages; s++ {
		if len(coefs[s]) != skills {
			return nil, fmt.Errorf("net tax: coefficients at age %d cover %d skill types, want %d",
				s, len(coefs[s]), skills)
		}
		for j := 0; j < skills; j++ {
			xi, yi := x.At(s, j), y.At(s, j)
			etr, err := rates.ETR(xi*in.Factor, yi*in.Factor, coefs[s][j])
			if err != nil {
				return nil, fmt.Errorf("net tax at (%d,%d): %w", s, j, err)
			}
			out.Set(s, j, etr*(xi+yi)-in.Bequests.At(s, j)-in.Transfers.At(s, j))
		}
	}
	return out, nil
}

// ImpliedUBI is factor * (net tax at baseline rates - net tax at reform
// rates), both evaluated on the same behavior.
func ImpliedUBI(baselineNetTax, reformRatesNetTax *mat.Dense, factor float64) *mat.Dense {
	var ubi mat.Dense
	ubi.Sub(baselineNetTax, reformRatesNetTax)
	ubi.Scale(factor, &ubi)
	return &ubi
}

// AfterTaxIncome is factor * (r*b + w*e*n - net tax).
func AfterTaxIncome(in NetTaxInputs, netTax *mat.Dense) *mat.Dense {
	var inc mat.Dense
	inc.Add(in.CapitalIncome(), in.LaborIncome())
	inc.Sub(&inc, netTax)
	inc.Scale(in.Factor, &inc)
	return &inc
}
