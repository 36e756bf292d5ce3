package datagen

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Mmodarre/AusHealthSim/internal/model"
)

func TestPremiumPayments(t *testing.T) {
	t.Parallel()

	g := NewSeeded(50)

	due := model.Policy{
		PolicyID:           1,
		Status:             "Active",
		CurrentPremium:     150,
		PremiumFrequency:   "Monthly",
		PaymentMethod:      "Direct Debit",
		NextPremiumDueDate: testDay.AddDate(0, 0, -3),
	}
	notYetDue := model.Policy{
		PolicyID:           2,
		Status:             "Active",
		CurrentPremium:     200,
		PremiumFrequency:   "Monthly",
		NextPremiumDueDate: testDay.AddDate(0, 0, 10),
	}
	suspended := model.Policy{
		PolicyID:           3,
		Status:             "Suspended",
		CurrentPremium:     90,
		PremiumFrequency:   "Monthly",
		NextPremiumDueDate: testDay.AddDate(0, 0, -3),
	}
	noDueDate := model.Policy{
		PolicyID:       4,
		Status:         "Active",
		CurrentPremium: 120,
	}

	policies := []model.Policy{due, notYetDue, suspended, noDueDate}
	payments := g.PremiumPayments(policies, testDay)

	require.Len(t, payments, 1, "only active policies past their due date pay")
	p := payments[0]

	assert.Equal(t, 1, p.PolicyID)
	assert.Regexp(t, `^PMT-20250616-\d{5}$`, p.PaymentReference)
	assert.Contains(t, []string{"Successful", "Failed", "Pending"}, p.PaymentStatus)
	assert.Equal(t, testDay, p.PaymentDate)

	// The collected policy rolls forward to the next period.
	assert.Equal(t, testDay, policies[0].LastPremiumPaidDate)
	assert.Equal(t, policies[0].NextPremiumDueDate, p.PeriodEndDate)
	assert.True(t, policies[0].NextPremiumDueDate.After(testDay))

	// Untouched policies keep their dates.
	assert.Equal(t, notYetDue.NextPremiumDueDate, policies[1].NextPremiumDueDate)
	assert.True(t, policies[2].LastPremiumPaidDate.IsZero())
	assert.True(t, policies[3].LastPremiumPaidDate.IsZero())
}

func TestPremiumPaymentsAmounts(t *testing.T) {
	t.Parallel()

	g := NewSeeded(51)

	frequencies := map[string]float64{
		"Monthly":   150,
		"Quarterly": 450,
		"Annually":  1800,
	}
	for freq := range frequencies {
		policies := []model.Policy{{
			PolicyID:           1,
			Status:             "Active",
			CurrentPremium:     frequencies[freq],
			PremiumFrequency:   freq,
			PaymentMethod:      "Credit Card",
			NextPremiumDueDate: testDay,
		}}
		payments := g.PremiumPayments(policies, testDay)
		require.Len(t, payments, 1, freq)

		assert.Equal(t, frequencies[freq], payments[0].PaymentAmount, freq)

		var wantEnd time.Time
		switch freq {
		case "Monthly":
			wantEnd = testDay.AddDate(0, 0, 30)
		case "Quarterly":
			wantEnd = testDay.AddDate(0, 0, 90)
		case "Annually":
			wantEnd = testDay.AddDate(0, 0, 365)
		}
		assert.Equal(t, wantEnd, payments[0].PeriodEndDate, freq)
	}
}
