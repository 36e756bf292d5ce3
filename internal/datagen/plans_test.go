package datagen

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCoveragePlans(t *testing.T) {
	t.Parallel()

	g := NewSeeded(20)
	plans := g.CoveragePlans(9, 0, testDay)
	require.Len(t, plans, 9)

	for _, p := range plans {
		assert.Contains(t, []string{"Hospital", "Extras", "Combined"}, p.PlanType)
		assert.Greater(t, p.MonthlyPremium, 0.0)
		assert.Equal(t, round2(p.MonthlyPremium*12), p.AnnualPremium)
		assert.True(t, p.IsActive)
		assert.False(t, p.EffectiveDate.After(testDay))
		assert.NotEmpty(t, p.WaitingPeriods)

		switch p.PlanType {
		case "Hospital":
			assert.Regexp(t, `^H\d{3}$`, p.PlanCode)
			assert.Contains(t, []string{"Basic", "Bronze", "Silver", "Gold"}, p.HospitalTier)
			assert.NotEmpty(t, p.ExcessOptions)
		case "Extras":
			assert.Regexp(t, `^E\d{3}$`, p.PlanCode)
			assert.Empty(t, p.HospitalTier)
			assert.Empty(t, p.ExcessOptions)
		case "Combined":
			assert.Regexp(t, `^C\d{3}$`, p.PlanCode)
			assert.Contains(t, []string{"Basic", "Bronze", "Silver", "Gold"}, p.HospitalTier)
		}
	}
}

func TestCoveragePlansCodeOffset(t *testing.T) {
	t.Parallel()

	g := NewSeeded(21)
	plans := g.CoveragePlans(3, 40, testDay)
	require.NotEmpty(t, plans)

	for _, p := range plans {
		// Offset batches continue numbering rather than reusing H001/E001/C001.
		assert.Regexp(t, `^[HEC]041$`, p.PlanCode)
	}
}

func TestExcessOptionsForTier(t *testing.T) {
	t.Parallel()

	assert.Equal(t, []float64{500, 750}, excessOptionsForTier("Basic"))
	assert.Equal(t, []float64{500, 750}, excessOptionsForTier("Bronze"))
	assert.Equal(t, []float64{0, 250, 500, 750}, excessOptionsForTier("Silver"))
	assert.Equal(t, []float64{0, 250, 500, 750}, excessOptionsForTier("Gold"))
}
