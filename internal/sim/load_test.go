package sim

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestValueCoercion(t *testing.T) {
	t.Parallel()

	t.Run("asInt", func(t *testing.T) {
		t.Parallel()
		assert.Equal(t, 7, asInt(int64(7)))
		assert.Equal(t, 7, asInt(7))
		assert.Equal(t, 7, asInt("7"))
		assert.Equal(t, 0, asInt(nil))
		assert.Equal(t, 0, asInt("not a number"))
	})

	t.Run("asFloat", func(t *testing.T) {
		t.Parallel()
		assert.Equal(t, 1.5, asFloat(1.5))
		assert.Equal(t, 2.0, asFloat(int64(2)))
		// DECIMAL columns arrive as strings from the driver.
		assert.Equal(t, 149.95, asFloat("149.95"))
		assert.Equal(t, 0.0, asFloat(nil))
	})

	t.Run("asBool", func(t *testing.T) {
		t.Parallel()
		assert.True(t, asBool(true))
		assert.True(t, asBool(int64(1)))
		assert.True(t, asBool("1"))
		assert.True(t, asBool("true"))
		assert.False(t, asBool(nil))
		assert.False(t, asBool(int64(0)))
	})

	t.Run("asTime", func(t *testing.T) {
		t.Parallel()
		ts := time.Date(2025, 3, 1, 0, 0, 0, 0, time.UTC)
		assert.Equal(t, ts, asTime(ts))
		assert.True(t, asTime(nil).IsZero())
		assert.True(t, asTime("2025-03-01").IsZero())
	})
}

func TestModelFromRow(t *testing.T) {
	t.Parallel()

	dob := time.Date(1980, 5, 20, 0, 0, 0, 0, time.UTC)
	join := time.Date(2020, 1, 2, 0, 0, 0, 0, time.UTC)

	m := memberFromRow(map[string]any{
		"MemberID":             int64(42),
		"MemberNumber":         "MEM-00000042",
		"FirstName":            "Alex",
		"LastName":             "Nguyen",
		"DateOfBirth":          dob,
		"Gender":               "F",
		"State":                "NSW",
		"LHCLoadingPercentage": "4.00",
		"PHIRebateTier":        "Tier1",
		"JoinDate":             join,
		"IsActive":             true,
		"Title":                nil,
	})
	assert.Equal(t, 42, m.MemberID)
	assert.Equal(t, "MEM-00000042", m.MemberNumber)
	assert.Equal(t, dob, m.DateOfBirth)
	assert.Equal(t, 4.0, m.LHCLoadingPercentage)
	assert.True(t, m.IsActive)
	assert.Empty(t, m.Title)

	p := policyFromRow(map[string]any{
		"PolicyID":           int64(9),
		"PolicyNumber":       "POL-NSW-000123",
		"PrimaryMemberID":    int64(42),
		"PlanID":             int64(3),
		"CoverageType":       "Family",
		"CurrentPremium":     "512.50",
		"Status":             "Active",
		"PremiumFrequency":   "Monthly",
		"NextPremiumDueDate": join,
	})
	assert.Equal(t, 9, p.PolicyID)
	assert.Equal(t, 42, p.PrimaryMemberID)
	assert.Equal(t, 512.5, p.CurrentPremium)
	assert.Equal(t, join, p.NextPremiumDueDate)

	plan := planFromRow(map[string]any{
		"PlanID":          int64(3),
		"PlanCode":        "H001",
		"PlanType":        "Hospital",
		"MonthlyPremium":  "205.00",
		"IsActive":        true,
		"ExcessOptions":   "[0,250,500]",
		"WaitingPeriods":  `{"general":2}`,
		"CoverageDetails": `{"description":"basic cover"}`,
	})
	assert.Equal(t, []float64{0, 250, 500}, plan.ExcessOptions)
	assert.Equal(t, map[string]int{"general": 2}, plan.WaitingPeriods)
	assert.Equal(t, "basic cover", plan.CoverageDetails["description"])
	assert.Equal(t, 205.0, plan.MonthlyPremium)
}
