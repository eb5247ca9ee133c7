package storage

import (
	"fmt"

	"ubi-analysis/models"
)

// TableWriter is the interface any export backend must satisfy.
type TableWriter interface {
	WriteTable(t *models.Table) error
	Close() error
}

var (
	_ TableWriter = (*CSVWriter)(nil)
	_ TableWriter = (*PostgresWriter)(nil)
)

// ExportTables writes every table to each writer in turn and stops at the
// first failure.
func ExportTables(writers []TableWriter, tables []*models.Table) error {
	for _, w := range writers {
		for _, t := range tables {
			if err := w.WriteTable(t); err != nil {
				return fmt.Errorf("export %s via %T: %w", t.Name, w, err)
			}
		}
	}
	return nil
}
