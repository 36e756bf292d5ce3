package datagen

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTrackerRoundTrip(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "used_members.json")

	tr, err := NewTracker(path)
	require.NoError(t, err)
	assert.Zero(t, tr.Count())

	tr.Mark("MEM-00000001", "MEM-00000002")
	assert.True(t, tr.Used("MEM-00000001"))
	assert.False(t, tr.Used("MEM-00000099"))
	assert.Equal(t, 2, tr.Count())
	require.NoError(t, tr.Save())

	reloaded, err := NewTracker(path)
	require.NoError(t, err)
	assert.Equal(t, 2, reloaded.Count())
	assert.True(t, reloaded.Used("MEM-00000002"))
}

func TestTrackerReset(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "used_members.json")

	tr, err := NewTracker(path)
	require.NoError(t, err)
	tr.Mark("MEM-00000001")
	require.NoError(t, tr.Save())

	require.NoError(t, tr.Reset())
	assert.Zero(t, tr.Count())

	_, err = os.Stat(path)
	assert.True(t, os.IsNotExist(err), "reset removes the state file")

	// Resetting again is fine even though the file is gone.
	require.NoError(t, tr.Reset())
}

func TestTrackerRejectsCorruptState(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "used_members.json")
	require.NoError(t, os.WriteFile(path, []byte("{not json"), 0o644))

	_, err := NewTracker(path)
	assert.Error(t, err)
}
