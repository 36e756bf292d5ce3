package cdc

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFitBatchSize(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		avg  float64
		want int
	}{
		{"wide rows hit the floor", 100_000, minBatchSize},
		{"narrow rows hit the cap", 10, maxBatchSize},
		{"mid rows fit the budget", 1024, 213},
		{"no sample falls back", 0, fallbackBatchSize},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, fitBatchSize(tt.avg, defaultBatchBytes, defaultBufferFactor))
		})
	}
}

func TestBatchSizeFallsBackUntilSampled(t *testing.T) {
	t.Parallel()

	bs := NewBatchSizer(nil, "Insurance_Members")
	assert.Equal(t, fallbackBatchSize, bs.BatchSize())

	bs.size.Store(640)
	assert.Equal(t, 640, bs.BatchSize())
}
