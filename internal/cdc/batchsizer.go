package cdc

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"sync/atomic"
	"time"

	"github.com/Mmodarre/AusHealthSim/internal/db"
)

const (
	defaultSampleRows       = 100
	defaultBufferFactor     = 0.2
	defaultResampleInterval = 1 * time.Hour
	defaultBatchBytes       = 256 * 1024

	fallbackBatchSize = 100
	minBatchSize      = 50
	maxBatchSize      = 1000
)

// BatchSizer keeps a per-instance poll batch size tuned to the change
// table's actual row width. It samples the most recent change rows,
// measures their encoded size, and fits as many rows as the byte budget
// allows, within floor and cap.
type BatchSizer struct {
	conn            *sql.DB
	captureInstance string
	batchBytes      int

	size atomic.Int32
}

// NewBatchSizer builds a sizer for one capture instance with the default
// byte budget.
func NewBatchSizer(conn *sql.DB, captureInstance string) *BatchSizer {
	return &BatchSizer{
		conn:            conn,
		captureInstance: captureInstance,
		batchBytes:      defaultBatchBytes,
	}
}

// BatchSize returns the current batch size electing a safe fallback until
// the first sample lands.
func (bs *BatchSizer) BatchSize() int {
	size := bs.size.Load()
	if size <= 0 {
		return fallbackBatchSize
	}
	return int(size)
}

// Start samples once, then resamples in the background until the context
// is cancelled.
func (bs *BatchSizer) Start(ctx context.Context) {
	bs.refresh(ctx)

	go func() {
		ticker := time.NewTicker(defaultResampleInterval)
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				bs.refresh(ctx)
			}
		}
	}()
}

// refresh recomputes the batch size from a sample of the newest change
// rows. Sampling failures and empty tables fall back to the default size
// rather than stopping the monitor.
func (bs *BatchSizer) refresh(ctx context.Context) {
	query := fmt.Sprintf(`
		SELECT TOP(%d) *
		FROM cdc.%s_CT WITH (NOLOCK)
		ORDER BY __$start_lsn DESC, __$seqval DESC`,
		defaultSampleRows, bs.captureInstance)

	rows, err := db.QueryMaps(ctx, bs.conn, query)
	if err != nil {
		log.Warn("Batch size sampling failed, keeping fallback",
			"instance", bs.captureInstance, "error", err)
		bs.size.Store(fallbackBatchSize)
		return
	}
	if len(rows) == 0 {
		bs.size.Store(fallbackBatchSize)
		return
	}

	var totalBytes int64
	count := 0
	for _, row := range rows {
		encoded, err := json.Marshal(row)
		if err != nil {
			continue
		}
		totalBytes += int64(len(encoded))
		count++
	}
	if count == 0 {
		bs.size.Store(fallbackBatchSize)
		return
	}

	avg := float64(totalBytes) / float64(count)
	size := fitBatchSize(avg, bs.batchBytes, defaultBufferFactor)
	bs.size.Store(int32(size))

	log.Debug("Batch size updated",
		"instance", bs.captureInstance,
		"sampled", count,
		"avgRowBytes", int(avg),
		"batchSize", size)
}

// fitBatchSize converts an average row size into a row count for the
// given byte budget, padding each row by the buffer factor and clamping
// to the floor and cap.
func fitBatchSize(avgRowBytes float64, budgetBytes int, bufferFactor float64) int {
	if avgRowBytes <= 0 {
		return fallbackBatchSize
	}
	effective := avgRowBytes * (1 + bufferFactor)
	size := int(float64(budgetBytes) / effective)
	if size < minBatchSize {
		return minBatchSize
	}
	if size > maxBatchSize {
		return maxBatchSize
	}
	return size
}
