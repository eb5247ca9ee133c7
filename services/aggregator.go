package services

import (
	"fmt"

	"ubi-analysis/models"
)

// Aggregator collapses the per-person table into population-weighted sums.
// Ratios are recomputed on the sums, never averaged.
type Aggregator struct {
	levels []string
	ratios *RatioCalculator
}

// NewAggregator creates an Aggregator summing the naming's level columns.
func NewAggregator(naming Naming, ratios *RatioCalculator) *Aggregator {
	return &Aggregator{levels: naming.LevelColumns(), ratios: ratios}
}

// ByAge sums across income groups at each age, weighting by group share.
func (a *Aggregator) ByAge(persons *models.Table, name string) (*models.Table, error) {
	return a.aggregate(persons, name, []models.KeyColumn{models.KeyAge},
		func(r *models.Row) string { return fmt.Sprint(r.Age) },
		func(r *models.Row) *models.Row { return &models.Row{Age: r.Age, AgeShare: r.AgeShare} },
		func(r *models.Row) float64 { return r.GroupShare })
}

// ByGroup sums across ages within each income group, weighting by age share.
func (a *Aggregator) ByGroup(persons *models.Table, name string) (*models.Table, error) {
	return a.aggregate(persons, name, []models.KeyColumn{models.KeyGroup},
		func(r *models.Row) string { return r.Group },
		func(r *models.Row) *models.Row {
			return &models.Row{Skill: r.Skill, Group: r.Group, GroupShare: r.GroupShare}
		},
		func(r *models.Row) float64 { return r.AgeShare })
}

// Total collapses the whole table to one row weighted by pop_share.
func (a *Aggregator) Total(persons *models.Table, name string) (*models.Table, error) {
	return a.aggregate(persons, name, nil,
		func(*models.Row) string { return "" },
		func(*models.Row) *models.Row { return &models.Row{} },
		func(r *models.Row) float64 { return r.PopShare })
}

// aggregate groups src rows by groupKey. newRow copies only the fields the
// grouping key defines from a group's first member.
func (a *Aggregator) aggregate(
	src *models.Table,
	name string,
	keys []models.KeyColumn,
	groupKey func(*models.Row) string,
	newRow func(*models.Row) *models.Row,
	weight func(*models.Row) float64,
) (*models.Table, error) {
	idx, err := src.Indices(a.levels...)
	if err != nil {
		return nil, fmt.Errorf("aggregate %s: %w", name, err)
	}
	out, err := models.NewTable(name, keys, a.levels)
	if err != nil {
		return nil, fmt.Errorf("aggregate %s: %w", name, err)
	}

	// Groups keep first-seen order so ages and income groups stay sorted.
	groups := make(map[string]*models.Row)
	for _, r := range src.Rows {
		k := groupKey(r)
		g, ok := groups[k]
		if !ok {
			g = newRow(r)
			g.Values = make([]float64, len(a.levels))
			groups[k] = g
			if err := out.Append(g); err != nil {
				return nil, fmt.Errorf("aggregate %s: %w", name, err)
			}
		}
		w := weight(r)
		g.PopShare += r.PopShare
		for c, i := range idx {
			g.Values[c] += w * r.Values[i]
		}
	}

	if err := a.ratios.Apply(out); err != nil {
		return nil, fmt.Errorf("aggregate %s: %w", name, err)
	}
	return out, nil
}
