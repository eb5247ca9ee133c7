package storage

import (
	"database/sql"
	"fmt"
	"math"
	"strings"

	"github.com/lib/pq"

	"ubi-analysis/models"
	"ubi-analysis/utils"
)

const insertBatchSize = 50

// PostgresWriter stores result tables in PostgreSQL, one SQL table per
// result table, replacing any previous run.
type PostgresWriter struct {
	db     *sql.DB
	prefix string
}

// NewPostgresWriter opens a connection and waits for the server using the
// retry policy.
func NewPostgresWriter(dsn, prefix string, retry *utils.RetryConfig) (*PostgresWriter, error) {
	db, err := sql.Open("postgres", dsn)
	if err != nil {
		return nil, fmt.Errorf("postgres: open: %w", err)
	}

	if err := retry.Do("postgres ping", db.Ping); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("postgres: %w", err)
	}
	return &PostgresWriter{db: db, prefix: prefix}, nil
}

// TableName returns the SQL table a result table is stored in.
func (pw *PostgresWriter) TableName(t *models.Table) string {
	return pw.prefix + t.Name
}

// WriteTable recreates the table and batch-inserts every row in one
// transaction.
func (pw *PostgresWriter) WriteTable(t *models.Table) error {
	name := pw.TableName(t)
	tx, err := pw.db.Begin()
	if err != nil {
		return fmt.Errorf("postgres: begin: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	if _, err := tx.Exec("DROP TABLE IF EXISTS " + pq.QuoteIdentifier(name)); err != nil {
		return fmt.Errorf("postgres: drop %s: %w", name, err)
	}
	if _, err := tx.Exec(createTableSQL(name, t)); err != nil {
		return fmt.Errorf("postgres: create %s: %w", name, err)
	}

	for i := 0; i < len(t.Rows); i += insertBatchSize {
		end := i + insertBatchSize
		if end > len(t.Rows) {
			end = len(t.Rows)
		}
		query, args := insertSQL(name, t, t.Rows[i:end])
		if _, err := tx.Exec(query, args...); err != nil {
			return fmt.Errorf("postgres: insert into %s: %w", name, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("postgres: commit %s: %w", name, err)
	}
	return nil
}

// Count returns the number of stored rows of a result table.
func (pw *PostgresWriter) Count(t *models.Table) (int, error) {
	var n int
	err := pw.db.QueryRow("SELECT COUNT(*) FROM " + pq.QuoteIdentifier(pw.TableName(t))).Scan(&n)
	if err != nil {
		return 0, fmt.Errorf("postgres: count %s: %w", pw.TableName(t), err)
	}
	return n, nil
}

func (pw *PostgresWriter) Close() error {
	return pw.db.Close()
}

func createTableSQL(name string, t *models.Table) string {
	cols := []string{"id SERIAL PRIMARY KEY"}
	for _, k := range t.Keys {
		typ := "TEXT NOT NULL"
		if k == models.KeyAge {
			typ = "INTEGER NOT NULL"
		}
		cols = append(cols, pq.QuoteIdentifier(string(k))+" "+typ)
	}
	cols = append(cols, pq.QuoteIdentifier(models.PopShareColumn)+" DOUBLE PRECISION NOT NULL")
	for _, c := range t.Columns() {
		cols = append(cols, pq.QuoteIdentifier(c)+" DOUBLE PRECISION")
	}
	return fmt.Sprintf("CREATE TABLE %s (\n\t%s\n)", pq.QuoteIdentifier(name), strings.Join(cols, ",\n\t"))
}

// insertSQL builds a multi-row INSERT. Non-finite values are stored as NULL.
func insertSQL(name string, t *models.Table, batch []*models.Row) (string, []any) {
	header := t.Header()
	quoted := make([]string, len(header))
	for i, h := range header {
		quoted[i] = pq.QuoteIdentifier(h)
	}

	width := len(header)
	valueStrings := make([]string, 0, len(batch))
	valueArgs := make([]any, 0, len(batch)*width)
	for idx, r := range batch {
		placeholders := make([]string, width)
		for k := range placeholders {
			placeholders[k] = fmt.Sprintf("$%d", idx*width+k+1)
		}
		valueStrings = append(valueStrings, "("+strings.Join(placeholders, ",")+")")

		for _, k := range t.Keys {
			if k == models.KeyAge {
				valueArgs = append(valueArgs, r.Age)
			} else {
				valueArgs = append(valueArgs, r.Group)
			}
		}
		valueArgs = append(valueArgs, r.PopShare)
		for _, v := range r.Values {
			valueArgs = append(valueArgs, nullableFloat(v))
		}
	}

	query := fmt.Sprintf("INSERT INTO %s (%s) VALUES %s",
		pq.QuoteIdentifier(name), strings.Join(quoted, ", "), strings.Join(valueStrings, ","))
	return query, valueArgs
}

func nullableFloat(v float64) sql.NullFloat64 {
	if math.IsInf(v, 0) || math.IsNaN(v) {
		return sql.NullFloat64{}
	}
	return sql.NullFloat64{Float64: v, Valid: true}
}
