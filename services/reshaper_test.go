package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/mat"

	"ubi-analysis/models"
)

func testLookups(t *testing.T) *models.Lookups {
	t.Helper()
	lk, err := BuildLookups(baselineScenario().Params, twoGroups, 1e-9)
	require.NoError(t, err)
	return lk
}

func TestReshapeLongFormat(t *testing.T) {
	lk := testLookups(t)
	n := dense([][]float64{{1, 2}, {3, 4}})
	c := dense([][]float64{{5, 6}, {7, 8}})

	tbl, err := Reshape("cells", lk, []string{"n", "c"}, n, c)
	require.NoError(t, err)
	require.Equal(t, 4, tbl.Len())

	assert.Equal(t, []string{"age", "lifetime_income_group", "pop_share", "n", "c"}, tbl.Header())

	r := tbl.Rows[1]
	assert.Equal(t, 21, r.Age)
	assert.Equal(t, "high", r.Group)
	assert.Equal(t, []float64{2, 6}, r.Values)

	r = tbl.Rows[2]
	assert.Equal(t, 22, r.Age)
	assert.Equal(t, "low", r.Group)
	assert.Equal(t, []float64{3, 7}, r.Values)
}

func TestReshapePopShareSumsToOne(t *testing.T) {
	lk := &models.Lookups{
		StartAge: 21,
		Groups: []models.LifetimeIncomeBucket{
			{Skill: 0, Label: "low", Share: 0.7},
			{Skill: 1, Label: "high", Share: 0.3},
		},
		Ages: []models.AgePopulation{{Age: 21, Share: 0.2}, {Age: 22, Share: 0.5}, {Age: 23, Share: 0.3}},
	}
	tbl, err := Reshape("cells", lk, []string{"x"}, mat.NewDense(3, 2, nil))
	require.NoError(t, err)

	var total float64
	for _, r := range tbl.Rows {
		assert.InDelta(t, r.AgeShare*r.GroupShare, r.PopShare, 1e-15)
		total += r.PopShare
	}
	assert.InDelta(t, 1.0, total, 1e-12)
}

func TestReshapeRejectsShapeMismatch(t *testing.T) {
	lk := testLookups(t)
	_, err := Reshape("cells", lk, []string{"a", "b"}, mat.NewDense(2, 2, nil), mat.NewDense(2, 3, nil))
	assert.ErrorContains(t, err, "b is 2x3")
}

func TestReshapeRejectsNameCount(t *testing.T) {
	lk := testLookups(t)
	_, err := Reshape("cells", lk, []string{"a"}, mat.NewDense(2, 2, nil), mat.NewDense(2, 2, nil))
	assert.Error(t, err)
}

func TestReshapeRequiresLookupsToMatchShape(t *testing.T) {
	lk := testLookups(t)

	tests := []struct {
		name string
		m    *mat.Dense
		want string
	}{
		{"extra skill type", mat.NewDense(2, 3, nil), "2 income groups for 3 skill types"},
		{"missing skill type", mat.NewDense(2, 1, nil), "2 income groups for 1 skill types"},
		{"extra age", mat.NewDense(3, 2, nil), "population table has 2 ages, arrays have 3"},
		{"missing age", mat.NewDense(1, 2, nil), "population table has 2 ages, arrays have 1"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Reshape("cells", lk, []string{"x"}, tt.m)
			assert.ErrorContains(t, err, tt.want)
		})
	}
}
