package datagen

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Mmodarre/AusHealthSim/internal/model"
)

func TestCalculatePremium(t *testing.T) {
	t.Parallel()

	hospital := &model.CoveragePlan{PlanType: "Hospital", MonthlyPremium: 100}
	extras := &model.CoveragePlan{PlanType: "Extras", MonthlyPremium: 40}

	tests := []struct {
		name         string
		plan         *model.CoveragePlan
		coverageType string
		excess       float64
		want         float64
	}{
		{"single no excess", hospital, "Single", 0, 100},
		{"single 250 excess", hospital, "Single", 250, 95},
		{"single 500 excess", hospital, "Single", 500, 90},
		{"single 750 excess", hospital, "Single", 750, 85},
		{"couple doubles", hospital, "Couple", 0, 200},
		{"family 2.5x", hospital, "Family", 0, 250},
		{"single parent 1.5x", hospital, "Single Parent", 0, 150},
		{"family with excess", hospital, "Family", 500, 225},
		{"extras ignores excess", extras, "Single", 500, 40},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, CalculatePremium(tt.plan, tt.coverageType, tt.excess))
		})
	}
}

func testPlansWithIDs(g *Generator) []model.CoveragePlan {
	plans := g.CoveragePlans(6, 0, testDay)
	for i := range plans {
		plans[i].PlanID = i + 1
	}
	return plans
}

func TestPolicies(t *testing.T) {
	t.Parallel()

	g := NewSeeded(30)
	members := g.Members(120, testDay)
	for i := range members {
		members[i].MemberID = i + 1
	}
	plans := testPlansWithIDs(g)

	const nextPolicyID = 501
	policies, links := g.Policies(members, plans, 20, nextPolicyID, nil, testDay)
	require.NotEmpty(t, policies)

	plansByID := make(map[int]*model.CoveragePlan)
	for i := range plans {
		plansByID[plans[i].PlanID] = &plans[i]
	}

	coveredMembers := make(map[int]bool)
	selfLinks := make(map[int]bool)

	for i, p := range policies {
		assert.Equal(t, nextPolicyID+i, p.PolicyID, "identities must be sequential from the probe")
		assert.Equal(t, "Active", p.Status)
		assert.Contains(t, []string{"Single", "Couple", "Family", "Single Parent"}, p.CoverageType)
		assert.Contains(t, []string{"Monthly", "Quarterly", "Annually"}, p.PremiumFrequency)
		assert.False(t, p.StartDate.After(testDay))
		assert.True(t, p.NextPremiumDueDate.After(p.LastPremiumPaidDate))

		plan := plansByID[p.PlanID]
		require.NotNil(t, plan)
		assert.Equal(t, CalculatePremium(plan, p.CoverageType, p.ExcessAmount), p.CurrentPremium)
		if plan.PlanType == "Extras" {
			assert.Zero(t, p.ExcessAmount)
		}
	}

	for _, l := range links {
		assert.False(t, coveredMembers[l.MemberID], "a member can only hold one active policy")
		coveredMembers[l.MemberID] = true
		assert.True(t, l.IsActive)

		if l.RelationshipToPrimary == "Self" {
			assert.False(t, selfLinks[l.PolicyID])
			selfLinks[l.PolicyID] = true
		}
	}
	for _, p := range policies {
		assert.True(t, selfLinks[p.PolicyID], "every policy needs a Self link")
		assert.True(t, coveredMembers[p.PrimaryMemberID])
	}
}

func TestPoliciesSkipsCoveredMembers(t *testing.T) {
	t.Parallel()

	g := NewSeeded(31)
	members := g.Members(10, testDay)
	for i := range members {
		members[i].MemberID = i + 1
	}
	plans := testPlansWithIDs(g)

	covered := make(map[int]bool)
	for i := 1; i <= 10; i++ {
		covered[i] = true
	}

	policies, links := g.Policies(members, plans, 5, 1, covered, testDay)
	assert.Empty(t, policies)
	assert.Empty(t, links)
}

func TestAdvanceDueDate(t *testing.T) {
	t.Parallel()

	assert.Equal(t, testDay.AddDate(0, 0, 30), advanceDueDate(testDay, "Monthly"))
	assert.Equal(t, testDay.AddDate(0, 0, 90), advanceDueDate(testDay, "Quarterly"))
	assert.Equal(t, testDay.AddDate(0, 0, 365), advanceDueDate(testDay, "Annually"))
}
