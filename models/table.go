package models

import (
	"fmt"
	"strconv"
)

// KeyColumn identifies a row key exported ahead of the value columns.
type KeyColumn string

const (
	KeyAge   KeyColumn = "age"
	KeyGroup KeyColumn = "lifetime_income_group"
)

// PopShareColumn holds each row's share of the total population.
const PopShareColumn = "pop_share"

// Row is one record of a Table. Values follow the table's column order.
type Row struct {
	Age        int
	Skill      int
	Group      string
	AgeShare   float64
	GroupShare float64
	PopShare   float64
	Values     []float64
}

// Table is an ordered set of rows sharing named float64 columns.
type Table struct {
	Name string
	Keys []KeyColumn
	Rows []*Row

	columns []string
	index   map[string]int
}

// NewTable creates an empty table with the given key and value columns.
func NewTable(name string, keys []KeyColumn, columns []string) (*Table, error) {
	t := &Table{
		Name:  name,
		Keys:  keys,
		index: make(map[string]int, len(columns)),
	}
	for _, c := range columns {
		if _, err := t.AddColumn(c); err != nil {
			return nil, err
		}
	}
	return t, nil
}

// Columns returns a copy of the value column names.
func (t *Table) Columns() []string {
	out := make([]string, len(t.columns))
	copy(out, t.columns)
	return out
}

// Index returns the position of a value column.
func (t *Table) Index(name string) (int, bool) {
	i, ok := t.index[name]
	return i, ok
}

// Indices resolves several value columns at once.
func (t *Table) Indices(names ...string) ([]int, error) {
	out := make([]int, len(names))
	for k, name := range names {
		i, ok := t.index[name]
		if !ok {
			return nil, fmt.Errorf("table %q: no column %q", t.Name, name)
		}
		out[k] = i
	}
	return out, nil
}

// AddColumn appends a zero-filled value column and returns its position.
func (t *Table) AddColumn(name string) (int, error) {
	if name == "" {
		return 0, fmt.Errorf("table %q: empty column name", t.Name)
	}
	if _, exists := t.index[name]; exists {
		return 0, fmt.Errorf("table %q: duplicate column %q", t.Name, name)
	}
	t.index[name] = len(t.columns)
	t.columns = append(t.columns, name)
	for _, r := range t.Rows {
		r.Values = append(r.Values, 0)
	}
	return t.index[name], nil
}

// Append adds a row whose values match the column count.
func (t *Table) Append(r *Row) error {
	if len(r.Values) != len(t.columns) {
		return fmt.Errorf("table %q: row has %d values, want %d", t.Name, len(r.Values), len(t.columns))
	}
	t.Rows = append(t.Rows, r)
	return nil
}

// Column copies one value column out of the table.
func (t *Table) Column(name string) ([]float64, error) {
	i, ok := t.index[name]
	if !ok {
		return nil, fmt.Errorf("table %q: no column %q", t.Name, name)
	}
	out := make([]float64, len(t.Rows))
	for k, r := range t.Rows {
		out[k] = r.Values[i]
	}
	return out, nil
}

// Len returns the number of rows.
func (t *Table) Len() int { return len(t.Rows) }

// Header returns the exported column names: keys, pop_share, values.
func (t *Table) Header() []string {
	h := make([]string, 0, len(t.Keys)+1+len(t.columns))
	for _, k := range t.Keys {
		h = append(h, string(k))
	}
	h = append(h, PopShareColumn)
	return append(h, t.columns...)
}

// KeyValues renders the key cells of a row in header order.
func (t *Table) KeyValues(r *Row) []string {
	out := make([]string, len(t.Keys))
	for i, k := range t.Keys {
		switch k {
		case KeyAge:
			out[i] = strconv.Itoa(r.Age)
		case KeyGroup:
			out[i] = r.Group
		}
	}
	return out
}
