package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTableAddColumnExtendsRows(t *testing.T) {
	tbl, err := NewTable("t", []KeyColumn{KeyAge}, []string{"a"})
	require.NoError(t, err)
	require.NoError(t, tbl.Append(&Row{Age: 21, Values: []float64{1}}))

	i, err := tbl.AddColumn("b")
	require.NoError(t, err)
	assert.Equal(t, 1, i)
	assert.Equal(t, []float64{1, 0}, tbl.Rows[0].Values)
	assert.Equal(t, []string{"age", "pop_share", "a", "b"}, tbl.Header())
}

func TestTableRejectsDuplicateAndEmptyColumns(t *testing.T) {
	_, err := NewTable("t", nil, []string{"a", "a"})
	assert.ErrorContains(t, err, "duplicate column")

	_, err = NewTable("t", nil, []string{""})
	assert.Error(t, err)
}

func TestTableAppendChecksWidth(t *testing.T) {
	tbl, err := NewTable("t", nil, []string{"a", "b"})
	require.NoError(t, err)
	assert.Error(t, tbl.Append(&Row{Values: []float64{1}}))
}

func TestTableColumnAndIndices(t *testing.T) {
	tbl, err := NewTable("t", []KeyColumn{KeyAge, KeyGroup}, []string{"a", "b"})
	require.NoError(t, err)
	require.NoError(t, tbl.Append(&Row{Age: 21, Group: "low", Values: []float64{1, 2}}))
	require.NoError(t, tbl.Append(&Row{Age: 22, Group: "high", Values: []float64{3, 4}}))

	col, err := tbl.Column("b")
	require.NoError(t, err)
	assert.Equal(t, []float64{2, 4}, col)

	_, err = tbl.Column("c")
	assert.Error(t, err)

	idx, err := tbl.Indices("b", "a")
	require.NoError(t, err)
	assert.Equal(t, []int{1, 0}, idx)

	assert.Equal(t, []string{"22", "high"}, tbl.KeyValues(tbl.Rows[1]))
}

func TestTableColumnsIsACopy(t *testing.T) {
	tbl, err := NewTable("t", nil, []string{"a"})
	require.NoError(t, err)
	cols := tbl.Columns()
	cols[0] = "z"
	assert.Equal(t, []string{"a"}, tbl.Columns())
}
