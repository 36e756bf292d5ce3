package datagen

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Mmodarre/AusHealthSim/internal/model"
)

func testClaimFixtures(g *Generator) ([]model.Policy, []model.Provider) {
	members := g.Members(60, testDay)
	for i := range members {
		members[i].MemberID = i + 1
	}
	plans := testPlansWithIDs(g)
	policies, _ := g.Policies(members, plans, 25, 1, nil, testDay)

	providers := g.Providers(40, testDay)
	for i := range providers {
		providers[i].ProviderID = i + 1
	}
	return policies, providers
}

func TestHospitalClaims(t *testing.T) {
	t.Parallel()

	g := NewSeeded(40)
	policies, providers := testClaimFixtures(g)

	hospitalIDs := make(map[int]bool)
	for _, p := range providers {
		if p.ProviderType == "Hospital" {
			hospitalIDs[p.ProviderID] = true
		}
	}

	claims := g.HospitalClaims(policies, providers, 50, testDay)
	require.Len(t, claims, 50)

	for _, c := range claims {
		assert.Equal(t, "Hospital", c.ClaimType)
		assert.True(t, hospitalIDs[c.ProviderID], "hospital claims must go to hospitals")
		assert.NotEmpty(t, c.MBSItemNumber)
		assert.NotEmpty(t, c.ServiceDescription)

		assert.True(t, c.SubmissionDate.After(c.ServiceDate))
		assert.False(t, c.ServiceDate.After(testDay))

		assert.Greater(t, c.ChargedAmount, c.MedicareAmount, "private rates exceed the MBS fee")
		assert.GreaterOrEqual(t, c.InsuranceAmount, 0.0)
		assert.GreaterOrEqual(t, c.ExcessApplied, 0.0)
		assert.GreaterOrEqual(t, c.GapAmount, 0.0)

		settled := c.MedicareAmount + c.InsuranceAmount + c.ExcessApplied + c.GapAmount
		assert.InDelta(t, c.ChargedAmount, settled, 0.011, "claim amounts must reconcile")

		assertClaimLifecycle(t, c)
	}
}

func TestGeneralClaims(t *testing.T) {
	t.Parallel()

	g := NewSeeded(41)
	policies, providers := testClaimFixtures(g)

	claims := g.GeneralClaims(policies, providers, 50, testDay)
	require.Len(t, claims, 50)

	for _, c := range claims {
		assert.Contains(t, generalClaimTypes, c.ClaimType)
		assert.Empty(t, c.MBSItemNumber)
		assert.Zero(t, c.MedicareAmount, "Medicare pays nothing on extras")
		assert.Zero(t, c.ExcessApplied)

		// Benefit sits between 50% and 80% of the charge.
		assert.GreaterOrEqual(t, c.InsuranceAmount, round2(c.ChargedAmount*0.5))
		assert.LessOrEqual(t, c.InsuranceAmount, round2(c.ChargedAmount*0.8))
		assert.InDelta(t, c.ChargedAmount, c.InsuranceAmount+c.GapAmount, 0.011)

		assertClaimLifecycle(t, c)
	}
}

func assertClaimLifecycle(t *testing.T, c model.Claim) {
	t.Helper()

	assert.Contains(t, claimStatuses, c.Status)
	switch c.Status {
	case "Paid":
		assert.False(t, c.ProcessedDate.IsZero())
		assert.True(t, c.PaymentDate.After(c.ProcessedDate))
		assert.Empty(t, c.RejectionReason)
	case "Approved":
		assert.False(t, c.ProcessedDate.IsZero())
		assert.True(t, c.PaymentDate.IsZero())
	case "Rejected":
		assert.False(t, c.ProcessedDate.IsZero())
		assert.NotEmpty(t, c.RejectionReason)
	default: // Submitted, In Process
		assert.True(t, c.ProcessedDate.IsZero())
		assert.True(t, c.PaymentDate.IsZero())
	}
}

func TestProviderMatchesClaimType(t *testing.T) {
	t.Parallel()

	assert.True(t, providerMatchesClaimType("Dentist", "Dental"))
	assert.True(t, providerMatchesClaimType("Optometrist", "Optical"))
	assert.False(t, providerMatchesClaimType("Dentist", "Optical"))
	assert.False(t, providerMatchesClaimType("Hospital", "Dental"))
}
