package cdc

import (
	"context"
	"database/sql"
	"encoding/hex"
	"fmt"
	"sort"
	"strings"
	"time"
)

// ChangeHandler receives one polled batch. Returning an error leaves the
// checkpoint untouched so the batch is redelivered on the next poll.
type ChangeHandler func(changes []Change) error

// TableMonitor polls the change table of one capture instance, delivers
// batches to a handler, and advances a durable checkpoint after each
// confirmed batch.
type TableMonitor struct {
	conn            *sql.DB
	schema          string
	table           string
	captureInstance string
	pollInterval    time.Duration
	maxPollInterval time.Duration
	checkpoints     *CheckpointManager
	sizer           *BatchSizer
	handler         ChangeHandler
	columnNames     []string

	lastLSN []byte
	lastSeq []byte
}

// NewTableMonitor builds a monitor for schema.table. CDC must already be
// enabled on the table.
func NewTableMonitor(ctx context.Context, conn *sql.DB, schema, table string, pollInterval, maxPollInterval time.Duration, handler ChangeHandler) (*TableMonitor, error) {
	instance, err := CaptureInstance(ctx, conn, schema, table)
	if err != nil {
		return nil, err
	}
	columns, err := fetchColumnNames(ctx, conn, schema, table)
	if err != nil {
		return nil, fmt.Errorf("fetching columns for %s.%s: %w", schema, table, err)
	}
	return &TableMonitor{
		conn:            conn,
		schema:          schema,
		table:           table,
		captureInstance: instance,
		pollInterval:    pollInterval,
		maxPollInterval: maxPollInterval,
		checkpoints:     NewCheckpointManager(conn, instance),
		sizer:           NewBatchSizer(conn, instance),
		handler:         handler,
		columnNames:     columns,
	}, nil
}

// Run polls until the context is cancelled.
func (m *TableMonitor) Run(ctx context.Context) error {
	if err := m.checkpoints.Initialize(ctx); err != nil {
		return fmt.Errorf("initializing checkpoint table: %w", err)
	}
	lsn, seq, err := m.checkpoints.Load(ctx)
	if err != nil {
		return err
	}
	m.lastLSN, m.lastSeq = lsn, seq

	m.sizer.Start(ctx)
	backoff := NewBackoffManager(m.pollInterval, m.maxPollInterval)

	for {
		select {
		case <-ctx.Done():
			log.Info("Stopping monitor", "instance", m.captureInstance)
			return ctx.Err()
		default:
		}

		changes, newLSN, newSeq, err := m.fetchChanges(ctx)
		if err != nil {
			log.Error("Error fetching changes", "instance", m.captureInstance, "error", err)
			sleepCtx(ctx, backoff.GetInterval())
			continue
		}

		if len(changes) > 0 {
			log.Info("Changes detected", "instance", m.captureInstance, "count", len(changes))
			if err := m.handler(changes); err != nil {
				log.Error("Handler rejected batch, will redeliver",
					"instance", m.captureInstance, "error", err)
				sleepCtx(ctx, backoff.GetInterval())
				continue
			}

			m.lastLSN, m.lastSeq = newLSN, newSeq
			if err := m.checkpoints.Save(ctx, newLSN, newSeq); err != nil {
				log.Error("Failed to save checkpoint", "error", err)
			}
			backoff.ResetInterval()
		} else {
			backoff.IncreaseInterval()
			log.Debug("No changes", "instance", m.captureInstance, "nextPollIn", backoff.GetInterval())
		}

		sleepCtx(ctx, backoff.GetInterval())
	}
}

// fetchChanges reads the next batch after the current position. The WHERE
// clause resumes mid-transaction: rows with a greater start LSN, plus rows
// in the checkpointed transaction with a greater seqval.
func (m *TableMonitor) fetchChanges(ctx context.Context) ([]Change, []byte, []byte, error) {
	columnList := "ct.__$start_lsn, ct.__$seqval, ct.__$operation"
	for _, c := range m.columnNames {
		columnList += ", ct.[" + c + "]"
	}

	query := fmt.Sprintf(`
		SELECT TOP(%d) %s
		FROM cdc.%s_CT AS ct WITH (NOLOCK)
		WHERE (
			ct.__$start_lsn > @lastLSN
			OR (ct.__$start_lsn = @lastLSN AND ct.__$seqval > @lastSeq)
		)
		AND ct.__$operation IN (1, 2, 4)
		ORDER BY ct.__$start_lsn, ct.__$seqval`,
		m.sizer.BatchSize(), columnList, m.captureInstance)

	rows, err := m.conn.QueryContext(ctx, query,
		sql.Named("lastLSN", m.lastLSN), sql.Named("lastSeq", m.lastSeq))
	if err != nil {
		return nil, nil, nil, fmt.Errorf("querying cdc.%s_CT: %w", m.captureInstance, err)
	}
	defer rows.Close()

	var changes []Change
	var latestLSN, latestSeq []byte

	for rows.Next() {
		targets, lsn, seq, operation := m.scanTargets()
		if err := rows.Scan(targets...); err != nil {
			return nil, nil, nil, fmt.Errorf("scanning change row: %w", err)
		}

		op, ok := OperationName(*operation)
		if !ok {
			continue
		}

		data := make(map[string]any, len(m.columnNames))
		for i, name := range m.columnNames {
			v := targets[i+3].(*sql.NullString)
			if v.Valid {
				data[name] = v.String
			} else {
				data[name] = nil
			}
		}

		changes = append(changes, Change{
			Table:     m.schema + "." + m.table,
			LSN:       hex.EncodeToString(*lsn),
			Seq:       hex.EncodeToString(*seq),
			Operation: op,
			Data:      data,
		})
		latestLSN, latestSeq = *lsn, *seq
	}
	if err := rows.Err(); err != nil {
		return nil, nil, nil, err
	}
	return changes, latestLSN, latestSeq, nil
}

func (m *TableMonitor) scanTargets() ([]any, *[]byte, *[]byte, *int) {
	var lsn, seq []byte
	var operation int

	targets := make([]any, len(m.columnNames)+3)
	targets[0] = &lsn
	targets[1] = &seq
	targets[2] = &operation

	values := make([]sql.NullString, len(m.columnNames))
	for i := range m.columnNames {
		targets[i+3] = &values[i]
	}
	return targets, &lsn, &seq, &operation
}

func fetchColumnNames(ctx context.Context, conn *sql.DB, schema, table string) ([]string, error) {
	rows, err := conn.QueryContext(ctx, `
		SELECT COLUMN_NAME
		FROM INFORMATION_SCHEMA.COLUMNS
		WHERE TABLE_SCHEMA = @schema AND TABLE_NAME = @table
		ORDER BY ORDINAL_POSITION`,
		sql.Named("schema", schema), sql.Named("table", table))
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var columns []string
	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			return nil, err
		}
		columns = append(columns, name)
	}
	if len(columns) == 0 {
		return nil, fmt.Errorf("table %s.%s has no columns (does it exist?)", schema, table)
	}
	return columns, rows.Err()
}

func sleepCtx(ctx context.Context, d time.Duration) {
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
	case <-t.C:
	}
}

// FormatChange renders a change as a single log-friendly line.
func FormatChange(c Change) string {
	parts := make([]string, 0, len(c.Data))
	for _, k := range sortedKeys(c.Data) {
		parts = append(parts, fmt.Sprintf("%s=%v", k, c.Data[k]))
	}
	return fmt.Sprintf("%s %s lsn=%s %s", c.Table, c.Operation, c.LSN, strings.Join(parts, " "))
}

func sortedKeys(m map[string]any) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
