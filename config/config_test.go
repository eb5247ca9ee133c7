package config

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"

	"ubi-analysis/models"
)

func TestFromEnvDefaults(t *testing.T) {
	t.Setenv("INCOME_GROUP_LABELS", "")
	t.Setenv("POSTGRES_ENABLED", "")

	cfg := fromEnv()

	assert.Equal(t, "_base", cfg.BaseSuffix)
	assert.Equal(t, "_reform", cfg.ReformSuffix)
	assert.False(t, cfg.PostgresEnabled)
	if diff := cmp.Diff(models.DefaultIncomeGroupLabels, cfg.IncomeGroupLabels); diff != "" {
		t.Errorf("IncomeGroupLabels mismatch (-want +got):\n%s", diff)
	}
}

func TestFromEnvOverrides(t *testing.T) {
	t.Setenv("INCOME_GROUP_LABELS", "low, high ,")
	t.Setenv("POSTGRES_ENABLED", "true")
	t.Setenv("SHARE_TOLERANCE", "0.001")
	t.Setenv("DISPLAY_DECIMALS", "not-a-number")

	cfg := fromEnv()

	assert.Equal(t, []string{"low", "high"}, cfg.IncomeGroupLabels)
	assert.True(t, cfg.PostgresEnabled)
	assert.Equal(t, 0.001, cfg.ShareTolerance)
	assert.Equal(t, 2, cfg.DisplayDecimals)
}

func TestDSN(t *testing.T) {
	cfg := &Config{
		PostgresHost: "db", PostgresPort: "5433", PostgresUser: "u",
		PostgresPassword: "p", PostgresDB: "d", PostgresSSLMode: "disable",
	}
	assert.Equal(t, "host=db port=5433 user=u password=p dbname=d sslmode=disable", cfg.DSN())
}
