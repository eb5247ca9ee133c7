package storage

import (
	"bytes"
	"encoding/csv"
	"math"
	"os"
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"ubi-analysis/models"
)

func sampleTable(t *testing.T) *models.Table {
	t.Helper()
	tbl, err := models.NewTable("ss_by_age_income",
		[]models.KeyColumn{models.KeyAge, models.KeyGroup}, []string{"n_base", "elasticity"})
	require.NoError(t, err)
	require.NoError(t, tbl.Append(&models.Row{Age: 21, Group: "0-25%", PopShare: 0.25, Values: []float64{1.5, 0.8}}))
	require.NoError(t, tbl.Append(&models.Row{Age: 22, Group: "Top 1%", PopShare: 0.01, Values: []float64{2, math.Inf(1)}}))
	return tbl
}

func TestCSVWriterWritesTable(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "nested", "out")
	w, err := NewCSVWriter(dir)
	require.NoError(t, err)
	defer w.Close()

	tbl := sampleTable(t)
	require.NoError(t, w.WriteTable(tbl))
	assert.Equal(t, filepath.Join(dir, "ss_by_age_income.csv"), w.Path(tbl))

	f, err := os.Open(w.Path(tbl))
	require.NoError(t, err)
	defer f.Close()
	records, err := csv.NewReader(f).ReadAll()
	require.NoError(t, err)

	want := [][]string{
		{"age", "lifetime_income_group", "pop_share", "n_base", "elasticity"},
		{"21", "0-25%", "0.25", "1.5", "0.8"},
		{"22", "Top 1%", "0.01", "2", "+Inf"},
	}
	if diff := cmp.Diff(want, records); diff != "" {
		t.Errorf("csv mismatch (-want +got):\n%s", diff)
	}
}

func TestCSVWriterTruncatesPreviousRun(t *testing.T) {
	w, err := NewCSVWriter(t.TempDir())
	require.NoError(t, err)

	tbl := sampleTable(t)
	require.NoError(t, w.WriteTable(tbl))
	tbl.Rows = tbl.Rows[:1]
	require.NoError(t, w.WriteTable(tbl))

	data, err := os.ReadFile(w.Path(tbl))
	require.NoError(t, err)
	records, err := csv.NewReader(bytes.NewReader(data)).ReadAll()
	require.NoError(t, err)
	assert.Len(t, records, 2)
}

func TestCSVWriterTotalTableHasNoKeys(t *testing.T) {
	w, err := NewCSVWriter(t.TempDir())
	require.NoError(t, err)

	tbl, err := models.NewTable("ss_economy_wide", nil, []string{"ubi"})
	require.NoError(t, err)
	require.NoError(t, tbl.Append(&models.Row{PopShare: 1, Values: []float64{1234.5}}))
	require.NoError(t, w.WriteTable(tbl))

	data, err := os.ReadFile(w.Path(tbl))
	require.NoError(t, err)
	assert.Equal(t, "pop_share,ubi\n1,1234.5\n", string(data))
}
