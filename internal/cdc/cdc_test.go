package cdc

import (
	"bytes"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOperationName(t *testing.T) {
	t.Parallel()

	tests := []struct {
		op   int
		want string
		ok   bool
	}{
		{1, "Delete", true},
		{2, "Insert", true},
		{3, "Update", true},
		{4, "Update", true},
		{0, "", false},
		{5, "", false},
	}
	for _, tt := range tests {
		got, ok := OperationName(tt.op)
		assert.Equal(t, tt.want, got, "op=%d", tt.op)
		assert.Equal(t, tt.ok, ok, "op=%d", tt.op)
	}
}

func TestBackoffManager(t *testing.T) {
	t.Parallel()

	b := NewBackoffManager(time.Second, 10*time.Second)
	assert.Equal(t, time.Second, b.GetInterval())

	b.IncreaseInterval()
	assert.Equal(t, 2*time.Second, b.GetInterval())
	b.IncreaseInterval()
	assert.Equal(t, 4*time.Second, b.GetInterval())
	b.IncreaseInterval()
	assert.Equal(t, 8*time.Second, b.GetInterval())

	// Capped at the ceiling.
	b.IncreaseInterval()
	assert.Equal(t, 10*time.Second, b.GetInterval())
	b.IncreaseInterval()
	assert.Equal(t, 10*time.Second, b.GetInterval())

	b.ResetInterval()
	assert.Equal(t, time.Second, b.GetInterval())
}

func TestDataColumns(t *testing.T) {
	t.Parallel()

	row := map[string]any{
		"__$start_lsn":   []byte{1},
		"__$seqval":      []byte{2},
		"__$operation":   int64(2),
		"__$update_mask": []byte{0xff},
		"MemberID":       int64(42),
		"FirstName":      "Alex",
	}
	data := dataColumns(row)
	assert.Equal(t, map[string]any{"MemberID": int64(42), "FirstName": "Alex"}, data)
}

func TestCountByOperation(t *testing.T) {
	t.Parallel()

	changes := []Change{
		{Operation: "Insert"},
		{Operation: "Insert"},
		{Operation: "Update"},
		{Operation: "Delete"},
	}
	counts := CountByOperation(changes)
	assert.Equal(t, map[string]int{"Insert": 2, "Update": 1, "Delete": 1}, counts)
	assert.Equal(t, []string{"Delete", "Insert", "Update"}, SortedOperations(counts))
}

func TestFormatChange(t *testing.T) {
	t.Parallel()

	c := Change{
		Table:     "Insurance.Members",
		LSN:       "0000000000000001",
		Operation: "Insert",
		Data:      map[string]any{"MemberID": 1, "FirstName": "Alex"},
	}
	got := FormatChange(c)
	assert.Equal(t, "Insurance.Members Insert lsn=0000000000000001 FirstName=Alex MemberID=1", got)
}

func TestWriteReportCSV(t *testing.T) {
	t.Parallel()

	rows := []ReportRow{
		{Table: "Insurance.Members", Inserts: 5, Updates: 2},
		{Table: "Insurance.Claims", Inserts: 13, Updates: 8, Deletes: 1},
	}

	var buf bytes.Buffer
	require.NoError(t, WriteReportCSV(&buf, rows))

	assert.Equal(t,
		"table,inserts,updates,deletes,total\n"+
			"Insurance.Members,5,2,0,7\n"+
			"Insurance.Claims,13,8,1,22\n",
		buf.String())
}

func TestHexValue(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "0a0b", hexValue([]byte{0x0a, 0x0b}))
	// QueryMaps turns VARBINARY into a raw string.
	assert.Equal(t, "0a0b", hexValue(string([]byte{0x0a, 0x0b})))
	assert.Equal(t, "", hexValue(nil))
}
