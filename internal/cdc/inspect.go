package cdc

import (
	"context"
	"database/sql"
	"encoding/hex"
	"fmt"
	"sort"
	"time"

	"github.com/Mmodarre/AusHealthSim/internal/db"
)

// TrackedTable describes one CDC capture instance.
type TrackedTable struct {
	Schema          string
	Table           string
	CaptureInstance string
	CreateDate      time.Time
	SupportsNet     bool
}

// ListTables returns every capture instance in the database.
func ListTables(ctx context.Context, conn *sql.DB) ([]TrackedTable, error) {
	rows, err := conn.QueryContext(ctx, `
		SELECT s.name, t.name, ct.capture_instance, ct.create_date, ct.supports_net_changes
		FROM cdc.change_tables ct
		JOIN sys.tables t ON ct.source_object_id = t.object_id
		JOIN sys.schemas s ON t.schema_id = s.schema_id
		ORDER BY s.name, t.name`)
	if err != nil {
		return nil, fmt.Errorf("listing capture instances: %w", err)
	}
	defer rows.Close()

	var tables []TrackedTable
	for rows.Next() {
		var t TrackedTable
		if err := rows.Scan(&t.Schema, &t.Table, &t.CaptureInstance, &t.CreateDate, &t.SupportsNet); err != nil {
			return nil, fmt.Errorf("scanning capture instance: %w", err)
		}
		tables = append(tables, t)
	}
	return tables, rows.Err()
}

// CaptureInstance resolves the capture instance name for schema.table.
func CaptureInstance(ctx context.Context, conn *sql.DB, schema, table string) (string, error) {
	var instance string
	err := conn.QueryRowContext(ctx, `
		SELECT ct.capture_instance
		FROM cdc.change_tables ct
		JOIN sys.tables t ON ct.source_object_id = t.object_id
		JOIN sys.schemas s ON t.schema_id = s.schema_id
		WHERE s.name = @schema AND t.name = @table`,
		sql.Named("schema", schema), sql.Named("table", table)).Scan(&instance)
	if err == sql.ErrNoRows {
		return "", fmt.Errorf("CDC is not enabled on %s.%s", schema, table)
	}
	if err != nil {
		return "", fmt.Errorf("resolving capture instance for %s.%s: %w", schema, table, err)
	}
	return instance, nil
}

// GetChanges reads all change rows for schema.table between from and to.
// When net is true, intermediate changes within the window are collapsed
// to one row per key via the net-changes function.
func GetChanges(ctx context.Context, conn *sql.DB, schema, table string, from, to time.Time, net bool) ([]Change, error) {
	instance, err := CaptureInstance(ctx, conn, schema, table)
	if err != nil {
		return nil, err
	}

	fn := "fn_cdc_get_all_changes_" + instance
	if net {
		fn = "fn_cdc_get_net_changes_" + instance
	}

	// Both LSN bounds must fall inside the log window the capture job has
	// processed, otherwise the function raises an error rather than
	// returning an empty set.
	query := fmt.Sprintf(`
		SELECT * FROM cdc.%s(
			sys.fn_cdc_map_time_to_lsn('smallest greater than or equal', @from),
			sys.fn_cdc_map_time_to_lsn('largest less than or equal', @to),
			'all')
		ORDER BY __$start_lsn, __$seqval`, fn)

	rows, err := db.QueryMaps(ctx, conn, query, sql.Named("from", from), sql.Named("to", to))
	if err != nil {
		return nil, fmt.Errorf("reading changes for %s.%s: %w", schema, table, err)
	}

	changes := make([]Change, 0, len(rows))
	for _, r := range rows {
		op, ok := OperationName(asOperation(r["__$operation"]))
		if !ok {
			continue
		}
		changes = append(changes, Change{
			Table:     schema + "." + table,
			LSN:       hexValue(r["__$start_lsn"]),
			Seq:       hexValue(r["__$seqval"]),
			Operation: op,
			Data:      dataColumns(r),
		})
	}
	return changes, nil
}

func asOperation(v any) int {
	switch n := v.(type) {
	case int64:
		return int(n)
	case int:
		return n
	default:
		return 0
	}
}

func hexValue(v any) string {
	switch b := v.(type) {
	case []byte:
		return hex.EncodeToString(b)
	case string:
		return hex.EncodeToString([]byte(b))
	default:
		return ""
	}
}

// dataColumns strips the __$ bookkeeping columns, leaving source columns.
func dataColumns(row map[string]any) map[string]any {
	data := make(map[string]any, len(row))
	for k, v := range row {
		if len(k) >= 3 && k[:3] == "__$" {
			continue
		}
		data[k] = v
	}
	return data
}

// CountByOperation tallies a change slice into insert/update/delete counts.
func CountByOperation(changes []Change) map[string]int {
	counts := make(map[string]int)
	for _, c := range changes {
		counts[c.Operation]++
	}
	return counts
}

// SortedOperations returns the keys of a CountByOperation map in a stable order.
func SortedOperations(counts map[string]int) []string {
	ops := make([]string, 0, len(counts))
	for op := range counts {
		ops = append(ops, op)
	}
	sort.Strings(ops)
	return ops
}
