package services

import (
	"fmt"

	"gonum.org/v1/gonum/floats"

	"ubi-analysis/models"
	"ubi-analysis/utils"
)

// BuildIncomeGroups pairs each skill type's population share with its
// lifetime-income label. There must be exactly one share per label, and
// labels must be distinct.
func BuildIncomeGroups(lambdas []float64, labels []string, tol float64) ([]models.LifetimeIncomeBucket, error) {
	if len(lambdas) != len(labels) {
		return nil, fmt.Errorf("income groups: %d skill shares for %d labels", len(lambdas), len(labels))
	}
	seen := make(map[string]bool, len(labels))
	for _, label := range labels {
		if seen[label] {
			return nil, fmt.Errorf("income groups: duplicate label %q", label)
		}
		seen[label] = true
	}
	if !utils.SumsToOne(lambdas, tol) {
		return nil, fmt.Errorf("income groups: shares sum to %g, want 1", floats.Sum(lambdas))
	}

	groups := make([]models.LifetimeIncomeBucket, len(labels))
	for j, label := range labels {
		groups[j] = models.LifetimeIncomeBucket{Skill: j, Label: label, Share: lambdas[j]}
	}
	return groups, nil
}

// BuildAgePopulation maps each age index to its share; index 0 is startAge.
func BuildAgePopulation(omegas []float64, startAge int, tol float64) ([]models.AgePopulation, error) {
	if !utils.SumsToOne(omegas, tol) {
		return nil, fmt.Errorf("age population: shares sum to %g, want 1", floats.Sum(omegas))
	}

	ages := make([]models.AgePopulation, len(omegas))
	for s, share := range omegas {
		ages[s] = models.AgePopulation{Age: startAge + s, Share: share}
	}
	return ages, nil
}

// BuildLookups builds both reference tables from a scenario's parameters.
func BuildLookups(p *models.ScenarioParams, labels []string, tol float64) (*models.Lookups, error) {
	groups, err := BuildIncomeGroups(p.Lambdas, labels, tol)
	if err != nil {
		return nil, err
	}
	ages, err := BuildAgePopulation(p.Omegas, p.StartAge, tol)
	if err != nil {
		return nil, err
	}
	return &models.Lookups{StartAge: p.StartAge, Groups: groups, Ages: ages}, nil
}
