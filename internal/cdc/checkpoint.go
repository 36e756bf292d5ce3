package cdc

import (
	"context"
	"database/sql"
	"encoding/hex"
	"fmt"
)

const checkpointTable = "cdc_offsets"

// zeroLSN sorts below every real log sequence number, so a fresh
// checkpoint reads the change table from the beginning.
var zeroLSN = make([]byte, 10)

// CheckpointManager persists the (LSN, seqval) position a monitor has
// confirmed for one capture instance.
type CheckpointManager struct {
	conn            *sql.DB
	captureInstance string
}

// NewCheckpointManager tracks checkpoints for one capture instance.
func NewCheckpointManager(conn *sql.DB, captureInstance string) *CheckpointManager {
	return &CheckpointManager{conn: conn, captureInstance: captureInstance}
}

// Initialize creates the checkpoint table if it does not exist.
func (c *CheckpointManager) Initialize(ctx context.Context) error {
	query := fmt.Sprintf(`
	IF NOT EXISTS (SELECT * FROM sys.tables WHERE name = '%s')
	BEGIN
		CREATE TABLE %s (
			capture_instance NVARCHAR(255) PRIMARY KEY,
			last_lsn VARBINARY(10),
			last_seq VARBINARY(10),
			updated_at DATETIME DEFAULT GETDATE()
		);
	END`, checkpointTable, checkpointTable)

	if _, err := c.conn.ExecContext(ctx, query); err != nil {
		return fmt.Errorf("creating %s table: %w", checkpointTable, err)
	}
	return nil
}

// Load returns the last confirmed position, or zero values when the
// capture instance has never been checkpointed.
func (c *CheckpointManager) Load(ctx context.Context) ([]byte, []byte, error) {
	var lastLSN, lastSeq []byte
	query := fmt.Sprintf(
		"SELECT last_lsn, last_seq FROM %s WITH (NOLOCK) WHERE capture_instance = @instance",
		checkpointTable)
	err := c.conn.QueryRowContext(ctx, query, sql.Named("instance", c.captureInstance)).
		Scan(&lastLSN, &lastSeq)
	if err == sql.ErrNoRows {
		log.Info("No previous checkpoint, reading from the beginning",
			"instance", c.captureInstance)
		return zeroLSN, zeroLSN, nil
	}
	if err != nil {
		return nil, nil, fmt.Errorf("loading checkpoint for %s: %w", c.captureInstance, err)
	}
	if lastLSN == nil {
		lastLSN = zeroLSN
	}
	if lastSeq == nil {
		lastSeq = zeroLSN
	}
	log.Info("Resuming from checkpoint",
		"instance", c.captureInstance,
		"lsn", hex.EncodeToString(lastLSN), "seq", hex.EncodeToString(lastSeq))
	return lastLSN, lastSeq, nil
}

// Save upserts the confirmed position for the capture instance.
func (c *CheckpointManager) Save(ctx context.Context, lsn, seq []byte) error {
	query := fmt.Sprintf(`
	MERGE INTO %s AS target
	USING (VALUES (@instance, @lastLSN, @lastSeq, GETDATE())) AS source (capture_instance, last_lsn, last_seq, updated_at)
	ON target.capture_instance = source.capture_instance
	WHEN MATCHED THEN
		UPDATE SET last_lsn = source.last_lsn, last_seq = source.last_seq, updated_at = source.updated_at
	WHEN NOT MATCHED THEN
		INSERT (capture_instance, last_lsn, last_seq, updated_at)
		VALUES (source.capture_instance, source.last_lsn, source.last_seq, source.updated_at);`,
		checkpointTable)

	_, err := c.conn.ExecContext(ctx, query,
		sql.Named("instance", c.captureInstance),
		sql.Named("lastLSN", lsn),
		sql.Named("lastSeq", seq),
	)
	if err != nil {
		return fmt.Errorf("saving checkpoint for %s: %w", c.captureInstance, err)
	}
	log.Debug("Saved checkpoint",
		"instance", c.captureInstance,
		"lsn", hex.EncodeToString(lsn), "seq", hex.EncodeToString(seq))
	return nil
}
