package storage

import (
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"

	"ubi-analysis/models"
	"ubi-analysis/utils"
)

// CSVWriter writes each result table to <dir>/<table name>.csv.
type CSVWriter struct {
	dir string
}

// NewCSVWriter creates the output directory if needed.
func NewCSVWriter(dir string) (*CSVWriter, error) {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("csv: create output dir: %w", err)
	}
	return &CSVWriter{dir: dir}, nil
}

// Path returns the file a table is written to.
func (c *CSVWriter) Path(t *models.Table) string {
	return filepath.Join(c.dir, t.Name+".csv")
}

// WriteTable creates (or truncates) the table's file and writes the header
// row followed by every row.
func (c *CSVWriter) WriteTable(t *models.Table) (err error) {
	path := c.Path(t)
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("csv: create file %q: %w", path, err)
	}
	defer func() {
		if cerr := f.Close(); err == nil && cerr != nil {
			err = fmt.Errorf("csv: close %q: %w", path, cerr)
		}
	}()

	w := csv.NewWriter(f)
	if err := w.Write(t.Header()); err != nil {
		return fmt.Errorf("csv: write header: %w", err)
	}

	for _, r := range t.Rows {
		record := t.KeyValues(r)
		record = append(record, utils.FormatFloat(r.PopShare))
		for _, v := range r.Values {
			record = append(record, utils.FormatFloat(v))
		}
		if err := w.Write(record); err != nil {
			return fmt.Errorf("csv: write row: %w", err)
		}
	}

	w.Flush()
	return w.Error()
}

// Close is a no-op; files are closed after each table.
func (c *CSVWriter) Close() error {
	return nil
}
