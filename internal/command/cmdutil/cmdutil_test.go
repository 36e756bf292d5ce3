package cmdutil

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseDate(t *testing.T) {
	t.Parallel()

	t.Run("explicit date", func(t *testing.T) {
		t.Parallel()
		got, err := ParseDate("2025-06-16")
		require.NoError(t, err)
		assert.Equal(t, time.Date(2025, 6, 16, 0, 0, 0, 0, time.UTC), got)
	})

	t.Run("empty means today", func(t *testing.T) {
		t.Parallel()
		got, err := ParseDate("")
		require.NoError(t, err)
		now := time.Now()
		assert.Equal(t, now.Year(), got.Year())
		assert.Equal(t, now.Month(), got.Month())
		assert.Equal(t, now.Day(), got.Day())
		assert.Zero(t, got.Hour())
	})

	t.Run("rejects other layouts", func(t *testing.T) {
		t.Parallel()
		_, err := ParseDate("16/06/2025")
		assert.Error(t, err)
	})
}

func TestRunID(t *testing.T) {
	t.Parallel()

	a, b := RunID(), RunID()
	assert.NotEqual(t, a, b)
	assert.Len(t, a, 36)
}
