package main

import (
	"io"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"ubi-analysis/services"
	"ubi-analysis/storage"
	"ubi-analysis/utils"
)

func TestSampleBundlesEndToEnd(t *testing.T) {
	logger := utils.NewLoggerWithLevel(io.Discard, "error")
	loader := storage.NewScenarioLoader("ss_vars.yaml", "model_params.yaml", logger)

	baseline, err := loader.Load("baseline", "data/baseline")
	require.NoError(t, err)
	reform, err := loader.Load("reform", "data/ubi")
	require.NoError(t, err)

	analysis, err := services.NewPipeline(services.DefaultOptions(), logger).Run(baseline, reform)
	require.NoError(t, err)

	assert.Equal(t, 21, analysis.Persons.Len())
	assert.Equal(t, 3, analysis.ByAge.Len())
	assert.Equal(t, 7, analysis.ByGroup.Len())
	assert.Equal(t, "Top 1%", analysis.ByGroup.Rows[6].Group)

	ubi, err := analysis.Total.Column(services.ColUBI)
	require.NoError(t, err)
	assert.Greater(t, ubi[0], 0.0, "lower reform rates imply a positive transfer")

	w, err := storage.NewCSVWriter(t.TempDir())
	require.NoError(t, err)
	for _, tbl := range analysis.Tables() {
		require.NoError(t, w.WriteTable(tbl))
		info, err := os.Stat(w.Path(tbl))
		require.NoError(t, err)
		assert.Positive(t, info.Size())
	}
}
