package services

import (
	"gonum.org/v1/gonum/mat"

	"ubi-analysis/models"
	"ubi-analysis/utils"
)

func newTestLogger() *utils.Logger { return utils.NewLogger() }

var twoGroups = []string{"low", "high"}

// flatCoefs fills a linear tax function coefficient grid with one rate.
func flatCoefs(ages, skills int, rate float64) [][][]float64 {
	out := make([][][]float64, ages)
	for s := range out {
		out[s] = make([][]float64, skills)
		for j := range out[s] {
			out[s][j] = []float64{rate}
		}
	}
	return out
}

func dense(rows [][]float64) *mat.Dense {
	m := mat.NewDense(len(rows), len(rows[0]), nil)
	for i, r := range rows {
		m.SetRow(i, r)
	}
	return m
}

// testScenario builds the 2 ages x 2 skills scenario used across tests:
// r=0.05, w=1, factor=100, unit productivity, no bequests or transfers.
func testScenario(name string, labor, cons [][]float64, rate float64) *models.Scenario {
	zeros := [][]float64{{0, 0}, {0, 0}}
	return &models.Scenario{
		Name: name,
		Result: &models.ScenarioResult{
			Capital:         dense([][]float64{{0, 0}, {1, 2}}),
			Labor:           dense(labor),
			Consumption:     dense(cons),
			BeforeTaxIncome: dense([][]float64{{1, 2}, {3, 4}}),
			Bequests:        dense(zeros),
			Transfers:       dense(zeros),
			InterestRate:    0.05,
			Wage:            1,
			Factor:          100,
		},
		Params: &models.ScenarioParams{
			StartAge:     21,
			Lambdas:      []float64{0.5, 0.5},
			Omegas:       []float64{0.5, 0.5},
			Productivity: dense([][]float64{{1, 1}, {1, 1}}),
			TaxFuncType:  models.TaxFuncLinear,
			ETRParams:    flatCoefs(2, 2, rate),
		},
	}
}

func baselineScenario() *models.Scenario {
	return testScenario("baseline",
		[][]float64{{1, 2}, {3, 4}},
		[][]float64{{1, 1}, {2, 2}},
		0.2)
}

func reformScenario() *models.Scenario {
	return testScenario("reform",
		[][]float64{{1.1, 2.2}, {3, 4}},
		[][]float64{{1.2, 1.1}, {2, 2.5}},
		0.1)
}

func testOptions() Options {
	opts := DefaultOptions()
	opts.IncomeGroupLabels = twoGroups
	return opts
}

// find returns the row matching age and group; an empty group matches any.
func find(t *models.Table, age int, group string) *models.Row {
	for _, r := range t.Rows {
		if (age == 0 || r.Age == age) && (group == "" || r.Group == group) {
			return r
		}
	}
	return nil
}

func value(t *models.Table, r *models.Row, col string) float64 {
	i, ok := t.Index(col)
	if !ok {
		panic("no column " + col)
	}
	return r.Values[i]
}
