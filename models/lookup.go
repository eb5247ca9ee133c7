package models

// DefaultIncomeGroupLabels are the lifetime-income groups in skill-type order.
var DefaultIncomeGroupLabels = []string{
	"0-25%", "25-50%", "50-70%", "70-80%", "80-90%", "90-99%", "Top 1%",
}

// DefaultStartAge is the age of the first model period.
const DefaultStartAge = 21

// LifetimeIncomeBucket maps a skill type to its label and population share.
type LifetimeIncomeBucket struct {
	Skill int
	Label string
	Share float64
}

// AgePopulation is the population share of one age.
type AgePopulation struct {
	Age   int
	Share float64
}

// Lookups joins age and skill indices to their labels and shares.
type Lookups struct {
	StartAge int
	Groups   []LifetimeIncomeBucket
	Ages     []AgePopulation
}

// GroupLabels returns the bucket labels in skill order.
func (l *Lookups) GroupLabels() []string {
	labels := make([]string, len(l.Groups))
	for i, g := range l.Groups {
		labels[i] = g.Label
	}
	return labels
}
