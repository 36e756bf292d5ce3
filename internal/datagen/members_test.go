package datagen

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMembers(t *testing.T) {
	t.Parallel()

	g := NewSeeded(10)
	members := g.Members(200, testDay)
	require.Len(t, members, 200)

	stateByCity := make(map[string]string)
	for _, c := range cities {
		stateByCity[c.name] = c.state
	}

	for _, m := range members {
		assert.NotEmpty(t, m.MemberNumber)
		assert.NotEmpty(t, m.FirstName)
		assert.NotEmpty(t, m.LastName)
		assert.Contains(t, []string{"M", "F"}, m.Gender)
		assert.Regexp(t, `^\d{4}$`, m.PostCode)
		assert.Equal(t, stateByCity[m.City], m.State, "state must match city")
		assert.Equal(t, "Australia", m.Country)
		assert.True(t, m.IsActive)

		age := testDay.Year() - m.DateOfBirth.Year()
		assert.GreaterOrEqual(t, age, 0)
		assert.LessOrEqual(t, age, 100)

		assert.GreaterOrEqual(t, m.LHCLoadingPercentage, 0.0)
		assert.LessOrEqual(t, m.LHCLoadingPercentage, 20.0)
		assert.Contains(t, phiRebateTiers, m.PHIRebateTier)

		assert.False(t, m.JoinDate.After(testDay), "join date must not be in the future")
		assert.Regexp(t, `^04\d{8}$`, m.MobilePhone)
	}
}

func TestMembersUniqueNumbers(t *testing.T) {
	t.Parallel()

	g := NewSeeded(11)
	members := g.Members(100, testDay)

	seen := make(map[string]bool, len(members))
	for _, m := range members {
		seen[m.MemberNumber] = true
	}
	// Collisions in an 8-digit space over 100 draws would point at a
	// broken number generator rather than bad luck.
	assert.Len(t, seen, len(members))
}

func TestUpdateContactDetails(t *testing.T) {
	t.Parallel()

	g := NewSeeded(12)
	members := g.Members(50, testDay)

	for i := range members {
		before := members[i]
		g.UpdateContactDetails(&members[i])
		after := members[i]

		changed := before.Email != after.Email ||
			before.MobilePhone != after.MobilePhone ||
			before.AddressLine1 != after.AddressLine1
		assert.True(t, changed, "an update must touch contact or address details")

		// Identity fields never churn.
		assert.Equal(t, before.MemberNumber, after.MemberNumber)
		assert.Equal(t, before.DateOfBirth, after.DateOfBirth)
		assert.Equal(t, before.MedicareNumber, after.MedicareNumber)
	}
}
