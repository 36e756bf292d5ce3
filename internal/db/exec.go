package db

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"
)

// SQL Server allows at most 2100 parameters per statement; leave headroom.
const maxStatementParams = 2000

// Row is an ordered set of column/value pairs destined for one table row.
// Order matters so that batched inserts line values up with columns.
type Row struct {
	Columns []string
	Values  []any
}

// QueryMaps runs a query and returns every row as a column-keyed map.
// NULLs come back as nil and raw byte slices are converted to strings.
func QueryMaps(ctx context.Context, conn *sql.DB, query string, args ...any) ([]map[string]any, error) {
	rows, err := conn.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query failed: %w", err)
	}
	defer rows.Close()

	columns, err := rows.Columns()
	if err != nil {
		return nil, fmt.Errorf("failed to read columns: %w", err)
	}

	var result []map[string]any
	for rows.Next() {
		values := make([]any, len(columns))
		targets := make([]any, len(columns))
		for i := range values {
			targets[i] = &values[i]
		}
		if err := rows.Scan(targets...); err != nil {
			return nil, fmt.Errorf("failed to scan row: %w", err)
		}

		record := make(map[string]any, len(columns))
		for i, name := range columns {
			if b, ok := values[i].([]byte); ok {
				record[name] = string(b)
			} else {
				record[name] = values[i]
			}
		}
		result = append(result, record)
	}
	return result, rows.Err()
}

// Exec runs a non-query statement. When simDate is non-zero, any GETDATE()
// in the statement is replaced with that date so historical runs stamp
// rows with the simulated day instead of wall-clock time.
func Exec(ctx context.Context, conn *sql.DB, query string, simDate time.Time, args ...any) (int64, error) {
	query = SubstituteGetDate(query, simDate)

	res, err := conn.ExecContext(ctx, query, args...)
	if err != nil {
		return 0, fmt.Errorf("exec failed: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("reading rows affected: %w", err)
	}
	return affected, nil
}

// SubstituteGetDate rewrites GETDATE() calls to a CAST of the given date.
// A zero date leaves the statement untouched.
func SubstituteGetDate(query string, simDate time.Time) string {
	if simDate.IsZero() {
		return query
	}
	cast := fmt.Sprintf("CAST('%s' AS DATETIME)", simDate.Format("2006-01-02"))
	return strings.ReplaceAll(query, "GETDATE()", cast)
}

// InsertStatement builds a parameterised multi-row INSERT using the
// @p1..@pN placeholders the sqlserver driver expects.
func InsertStatement(table string, columns []string, rowCount int) string {
	var b strings.Builder
	b.WriteString("INSERT INTO ")
	b.WriteString(table)
	b.WriteString(" (")
	b.WriteString(strings.Join(columns, ", "))
	b.WriteString(") VALUES ")

	p := 1
	for r := 0; r < rowCount; r++ {
		if r > 0 {
			b.WriteString(", ")
		}
		b.WriteString("(")
		for c := range columns {
			if c > 0 {
				b.WriteString(", ")
			}
			fmt.Fprintf(&b, "@p%d", p)
			p++
		}
		b.WriteString(")")
	}
	return b.String()
}

// BatchSize returns how many rows of the given width fit in one statement.
func BatchSize(columnCount int) int {
	if columnCount <= 0 {
		return 1
	}
	n := maxStatementParams / columnCount
	if n < 1 {
		n = 1
	}
	return n
}

// BulkInsert inserts rows into table in batches. If the table carries a
// LastModified column and the rows do not, the simulation date (or today)
// is injected. All rows must share the shape of the first.
func BulkInsert(ctx context.Context, conn *sql.DB, table string, rows []Row, simDate time.Time) (int, error) {
	if len(rows) == 0 {
		return 0, nil
	}

	columns := rows[0].Columns
	if !containsColumn(columns, "LastModified") {
		hasLM, err := tableHasColumn(ctx, conn, table, "LastModified")
		if err != nil {
			return 0, err
		}
		if hasLM {
			stamp := simDate
			if stamp.IsZero() {
				stamp = time.Now()
			}
			for i := range rows {
				rows[i].Columns = append(rows[i].Columns, "LastModified")
				rows[i].Values = append(rows[i].Values, stamp)
			}
			columns = rows[0].Columns
		}
	}

	batch := BatchSize(len(columns))
	inserted := 0
	for start := 0; start < len(rows); start += batch {
		end := start + batch
		if end > len(rows) {
			end = len(rows)
		}
		chunk := rows[start:end]

		stmt := InsertStatement(table, columns, len(chunk))
		args := make([]any, 0, len(chunk)*len(columns))
		for _, r := range chunk {
			if len(r.Values) != len(columns) {
				return inserted, fmt.Errorf("row has %d values, expected %d", len(r.Values), len(columns))
			}
			args = append(args, r.Values...)
		}

		if _, err := conn.ExecContext(ctx, stmt, args...); err != nil {
			return inserted, fmt.Errorf("bulk insert into %s failed: %w", table, err)
		}
		inserted += len(chunk)
	}

	log.Debug("Bulk insert complete", "table", table, "rows", inserted)
	return inserted, nil
}

func tableHasColumn(ctx context.Context, conn *sql.DB, table, column string) (bool, error) {
	// Table may be qualified as Schema.Name.
	name := table
	if idx := strings.LastIndex(table, "."); idx != -1 {
		name = table[idx+1:]
	}

	var count int
	query := `SELECT COUNT(*) FROM INFORMATION_SCHEMA.COLUMNS WHERE TABLE_NAME = @table AND COLUMN_NAME = @column`
	err := conn.QueryRowContext(ctx, query, sql.Named("table", name), sql.Named("column", column)).Scan(&count)
	if err != nil {
		return false, fmt.Errorf("failed to probe %s for column %s: %w", table, column, err)
	}
	return count > 0, nil
}

func containsColumn(columns []string, name string) bool {
	for _, c := range columns {
		if strings.EqualFold(c, name) {
			return true
		}
	}
	return false
}
