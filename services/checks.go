package services

import (
	"errors"
	"fmt"

	"ubi-analysis/models"
	"ubi-analysis/utils"
)

var (
	// ErrNotComparable means the two scenarios differ in something other
	// than tax coefficients and behavior.
	ErrNotComparable = errors.New("scenarios are not comparable")
	// ErrFirstPeriodWealth means someone enters the model holding capital.
	ErrFirstPeriodWealth = errors.New("first-age capital holdings are not zero")
)

// CheckComparable requires both scenarios to share prices, the
// normalization factor, shape, population weights and tax function form.
func CheckComparable(base, reform *models.Scenario, tol float64) error {
	br, rr := base.Result, reform.Result
	prices := []struct {
		name       string
		base, refm float64
	}{
		{"interest rate", br.InterestRate, rr.InterestRate},
		{"wage", br.Wage, rr.Wage},
		{"factor", br.Factor, rr.Factor},
	}
	for _, p := range prices {
		if !utils.SameValue(p.base, p.refm, tol) {
			return fmt.Errorf("%w: %s %s=%g, %s=%g", ErrNotComparable,
				p.name, base.Name, p.base, reform.Name, p.refm)
		}
	}

	bs, bj := br.Dims()
	rs, rj := rr.Dims()
	if bs != rs || bj != rj {
		return fmt.Errorf("%w: shape %dx%d vs %dx%d", ErrNotComparable, bs, bj, rs, rj)
	}

	bp, rp := base.Params, reform.Params
	if bp.StartAge != rp.StartAge {
		return fmt.Errorf("%w: start age %d vs %d", ErrNotComparable, bp.StartAge, rp.StartAge)
	}
	if bp.TaxFuncType != rp.TaxFuncType {
		return fmt.Errorf("%w: tax function %s vs %s", ErrNotComparable, bp.TaxFuncType, rp.TaxFuncType)
	}
	if !sameVector(bp.Lambdas, rp.Lambdas, tol) {
		return fmt.Errorf("%w: skill-type shares differ", ErrNotComparable)
	}
	if !sameVector(bp.Omegas, rp.Omegas, tol) {
		return fmt.Errorf("%w: age shares differ", ErrNotComparable)
	}
	return nil
}

// CheckFirstPeriod requires capital holdings at the first age to be zero
// for every skill type.
func CheckFirstPeriod(s *models.Scenario, tol float64) error {
	_, skills := s.Result.Capital.Dims()
	for j := 0; j < skills; j++ {
		if b := s.Result.Capital.At(0, j); !utils.SameValue(b, 0, tol) {
			return fmt.Errorf("%w: %s skill type %d holds %g", ErrFirstPeriodWealth, s.Name, j, b)
		}
	}
	return nil
}

func sameVector(a, b []float64, tol float64) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if !utils.SameValue(a[i], b[i], tol) {
			return false
		}
	}
	return true
}
