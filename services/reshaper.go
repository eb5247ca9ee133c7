package services

import (
	"fmt"

	"gonum.org/v1/gonum/mat"

	"ubi-analysis/models"
)

// Reshape flattens same-shaped age x skill matrices into a long table with
// one row per cell. Each matrix becomes the value column of the same name.
//
// A row's pop_share is its age share times its income-group share, which
// treats age and lifetime income as independent.
func Reshape(name string, lk *models.Lookups, names []string, arrays ...*mat.Dense) (*models.Table, error) {
	if len(names) != len(arrays) {
		return nil, fmt.Errorf("reshape: %d names for %d arrays", len(names), len(arrays))
	}
	if len(arrays) == 0 {
		return nil, fmt.Errorf("reshape: no arrays")
	}

	ages, skills := arrays[0].Dims()
	for k, a := range arrays[1:] {
		if r, c := a.Dims(); r != ages || c != skills {
			return nil, fmt.Errorf("reshape: %s is %dx%d, want %dx%d", names[k+1], r, c, ages, skills)
		}
	}

	if len(lk.Ages) != ages {
		return nil, fmt.Errorf("reshape: population table has %d ages, arrays have %d", len(lk.Ages), ages)
	}
	if len(lk.Groups) != skills {
		return nil, fmt.Errorf("reshape: %d income groups for %d skill types", len(lk.Groups), skills)
	}

	t, err := models.NewTable(name, []models.KeyColumn{models.KeyAge, models.KeyGroup}, names)
	if err != nil {
		return nil, fmt.Errorf("reshape: %w", err)
	}

	for s := 0; s < ages; s++ {
		age := lk.Ages[s]
		for j := 0; j < skills; j++ {
			group := lk.Groups[j]

			values := make([]float64, len(arrays))
			for k, a := range arrays {
				values[k] = a.At(s, j)
			}
			row := &models.Row{
				Age:        age.Age,
				Skill:      j,
				Group:      group.Label,
				AgeShare:   age.Share,
				GroupShare: group.Share,
				PopShare:   age.Share * group.Share,
				Values:     values,
			}
			if err := t.Append(row); err != nil {
				return nil, fmt.Errorf("reshape: %w", err)
			}
		}
	}
	return t, nil
}
