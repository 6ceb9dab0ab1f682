package export

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	_ "modernc.org/sqlite" // registers the "sqlite" driver
)

// SQLiteWriter writes a table into a SQLite database. Each Write replaces
// the target table.
type SQLiteWriter struct {
	db    *sql.DB
	table string
	owned bool
}

// NewSQLiteWriter writes into an existing database handle.
func NewSQLiteWriter(db *sql.DB, table string) *SQLiteWriter {
	return &SQLiteWriter{db: db, table: table}
}

// OpenSQLite opens (or creates) the database file at path.
func OpenSQLite(path, table string) (*SQLiteWriter, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, err
	}
	return &SQLiteWriter{db: db, table: table, owned: true}, nil
}

// Close closes the database if the writer opened it.
func (w *SQLiteWriter) Close() error {
	if !w.owned {
		return nil
	}
	return w.db.Close()
}

// Write implements Writer. The table is dropped and recreated in one
// transaction.
func (w *SQLiteWriter) Write(ctx context.Context, t *Table) error {
	header := t.Header()
	cols := make([]string, len(header))
	marks := make([]string, len(header))
	for i, h := range header {
		cols[i] = quoteIdent(h) + " REAL NOT NULL"
		marks[i] = "?"
	}
	table := quoteIdent(w.table)

	tx, err := w.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback() }()

	if _, err := tx.ExecContext(ctx, "DROP TABLE IF EXISTS "+table); err != nil {
		return err
	}
	create := fmt.Sprintf("CREATE TABLE %s (row INTEGER PRIMARY KEY, %s)", table, strings.Join(cols, ", "))
	if _, err := tx.ExecContext(ctx, create); err != nil {
		return err
	}

	insert := fmt.Sprintf("INSERT INTO %s VALUES (?, %s)", table, strings.Join(marks, ", "))
	stmt, err := tx.PrepareContext(ctx, insert)
	if err != nil {
		return err
	}
	defer func() { _ = stmt.Close() }()

	args := make([]any, len(header)+1)
	for i, row := range t.Rows {
		if len(row) != len(header) {
			return fmt.Errorf("export: row %d has %d values, want %d", i, len(row), len(header))
		}
		args[0] = i
		for j, v := range row {
			args[j+1] = v
		}
		if _, err := stmt.ExecContext(ctx, args...); err != nil {
			return fmt.Errorf("export: insert row %d: %w", i, err)
		}
	}
	return tx.Commit()
}

func quoteIdent(s string) string {
	return `"` + strings.ReplaceAll(s, `"`, `""`) + `"`
}
