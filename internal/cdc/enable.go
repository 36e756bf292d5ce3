package cdc

import (
	"context"
	"database/sql"
	"fmt"
)

// EnableDatabase turns CDC on for the current database. Safe to call when
// it is already enabled.
func EnableDatabase(ctx context.Context, conn *sql.DB) error {
	var enabled bool
	err := conn.QueryRowContext(ctx,
		"SELECT is_cdc_enabled FROM sys.databases WHERE name = DB_NAME()").Scan(&enabled)
	if err != nil {
		return fmt.Errorf("checking database CDC state: %w", err)
	}
	if enabled {
		log.Info("CDC already enabled on database")
		return nil
	}
	if _, err := conn.ExecContext(ctx, "EXEC sys.sp_cdc_enable_db"); err != nil {
		return fmt.Errorf("enabling CDC on database: %w", err)
	}
	log.Info("Enabled CDC on database")
	return nil
}

// EnableTable turns CDC on for one table with net-changes support. The
// capture instance is named <schema>_<table>. Safe to call when the table
// is already tracked.
func EnableTable(ctx context.Context, conn *sql.DB, schema, table string) error {
	tracked, err := tableTracked(ctx, conn, schema, table)
	if err != nil {
		return err
	}
	if tracked {
		log.Info("CDC already enabled on table", "schema", schema, "table", table)
		return nil
	}

	_, err = conn.ExecContext(ctx, `
		EXEC sys.sp_cdc_enable_table
			@source_schema = @schema,
			@source_name = @table,
			@capture_instance = @instance,
			@role_name = NULL,
			@supports_net_changes = 1`,
		sql.Named("schema", schema),
		sql.Named("table", table),
		sql.Named("instance", schema+"_"+table),
	)
	if err != nil {
		return fmt.Errorf("enabling CDC on %s.%s: %w", schema, table, err)
	}
	log.Info("Enabled CDC on table", "schema", schema, "table", table)
	return nil
}

// EnableAll enables CDC on the database and every tracked Insurance table.
func EnableAll(ctx context.Context, conn *sql.DB) error {
	if err := EnableDatabase(ctx, conn); err != nil {
		return err
	}
	for _, table := range TrackedTables {
		if err := EnableTable(ctx, conn, "Insurance", table); err != nil {
			return err
		}
	}
	return nil
}

func tableTracked(ctx context.Context, conn *sql.DB, schema, table string) (bool, error) {
	var n int
	err := conn.QueryRowContext(ctx, `
		SELECT COUNT(*)
		FROM cdc.change_tables ct
		JOIN sys.tables t ON ct.source_object_id = t.object_id
		JOIN sys.schemas s ON t.schema_id = s.schema_id
		WHERE s.name = @schema AND t.name = @table`,
		sql.Named("schema", schema), sql.Named("table", table)).Scan(&n)
	if err != nil {
		// cdc.change_tables does not exist until the database is enabled.
		return false, nil
	}
	return n > 0, nil
}
