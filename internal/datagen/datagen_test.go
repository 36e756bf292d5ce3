package datagen

import (
	"regexp"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

var testDay = time.Date(2025, 6, 16, 0, 0, 0, 0, time.UTC)

func TestIdentifierFormats(t *testing.T) {
	t.Parallel()

	g := NewSeeded(1)

	assert.Regexp(t, regexp.MustCompile(`^CL-20250616-\d{5}$`), g.ClaimNumber(testDay))
	assert.Regexp(t, regexp.MustCompile(`^PMT-20250616-\d{5}$`), g.PaymentReference(testDay))
	assert.Regexp(t, regexp.MustCompile(`^POL-(NSW|VIC|QLD|SA|WA|TAS|NT|ACT)-\d{6}$`), g.PolicyNumber())
	assert.Regexp(t, regexp.MustCompile(`^\d{6}[A-Z]$`), g.ProviderNumber())
	assert.Regexp(t, regexp.MustCompile(`^MEM-\d{8}$`), g.MemberNumber())
	assert.Regexp(t, regexp.MustCompile(`^\d{10}$`), g.MedicareNumber())
}

func TestWeightedCoversAllIndexes(t *testing.T) {
	t.Parallel()

	g := NewSeeded(2)
	weights := []float64{0.5, 0.3, 0.2}

	seen := make(map[int]int)
	for i := 0; i < 10000; i++ {
		idx := weighted(g.rng, weights)
		assert.GreaterOrEqual(t, idx, 0)
		assert.Less(t, idx, len(weights))
		seen[idx]++
	}

	// The heaviest weight must dominate the lightest over 10k draws.
	assert.Greater(t, seen[0], seen[2])
}

func TestBusinessTime(t *testing.T) {
	t.Parallel()

	g := NewSeeded(3)
	for i := 0; i < 1000; i++ {
		ts := g.businessTime(testDay)
		assert.Equal(t, testDay.Year(), ts.Year())
		assert.Equal(t, testDay.Month(), ts.Month())
		assert.Equal(t, testDay.Day(), ts.Day())
		assert.GreaterOrEqual(t, ts.Hour(), 8)
		assert.LessOrEqual(t, ts.Hour(), 17)
	}
}

func TestRound2(t *testing.T) {
	t.Parallel()

	assert.Equal(t, 10.57, round2(10.567))
	assert.Equal(t, 2.34, round2(2.344))
	assert.Equal(t, 10.0, round2(10.0))
}
