package datagen

import (
	"time"

	"github.com/Mmodarre/AusHealthSim/internal/model"
)

var paymentStatuses = []string{"Successful", "Failed", "Pending"}
var paymentStatusWeights = []float64{0.95, 0.03, 0.02}

// PremiumPayments creates payments for active policies whose next premium
// is due on or before simDate, and advances each policy's paid/due dates
// in place so the caller can persist them.
func (g *Generator) PremiumPayments(policies []model.Policy, simDate time.Time) []model.PremiumPayment {
	var payments []model.PremiumPayment

	for i := range policies {
		policy := &policies[i]
		if policy.Status != "Active" || policy.NextPremiumDueDate.IsZero() || policy.NextPremiumDueDate.After(simDate) {
			continue
		}

		periodStart := policy.NextPremiumDueDate
		periodEnd := advanceDueDate(periodStart, policy.PremiumFrequency)

		payments = append(payments, model.PremiumPayment{
			PolicyID:         policy.PolicyID,
			PaymentDate:      simDate,
			PaymentAmount:    policy.CurrentPremium,
			PaymentMethod:    policy.PaymentMethod,
			PaymentReference: g.PaymentReference(simDate),
			PaymentStatus:    paymentStatuses[weighted(g.rng, paymentStatusWeights)],
			PeriodStartDate:  periodStart,
			PeriodEndDate:    periodEnd,
		})

		policy.LastPremiumPaidDate = simDate
		policy.NextPremiumDueDate = periodEnd
	}

	log.Debug("Generated premium payments", "count", len(payments))
	return payments
}
