package datagen

import (
	"time"

	"github.com/Mmodarre/AusHealthSim/internal/model"
)

// CalculatePremium prices a policy from its plan, coverage type and excess.
func CalculatePremium(plan *model.CoveragePlan, coverageType string, excess float64) float64 {
	multiplier := 1.0
	switch coverageType {
	case "Couple":
		multiplier = 2.0
	case "Family":
		multiplier = 2.5
	case "Single Parent":
		multiplier = 1.5
	}

	discount := 0.0
	if (plan.PlanType == "Hospital" || plan.PlanType == "Combined") && excess > 0 {
		switch excess {
		case 250:
			discount = 0.05
		case 500:
			discount = 0.10
		case 750:
			discount = 0.15
		}
	}

	return round2(plan.MonthlyPremium * multiplier * (1 - discount))
}

// Policies creates up to count policies over members that are not already
// covered. nextPolicyID is the identity value the first inserted policy
// will take, so that PolicyMember links can be built ahead of insertion.
func (g *Generator) Policies(
	members []model.Member,
	plans []model.CoveragePlan,
	count int,
	nextPolicyID int,
	covered map[int]bool,
	simDate time.Time,
) ([]model.Policy, []model.PolicyMember) {
	if len(members) == 0 || len(plans) == 0 {
		log.Warn("No members or plans available to generate policies")
		return nil, nil
	}

	taken := make(map[int]bool, len(covered))
	for id := range covered {
		taken[id] = true
	}

	var policies []model.Policy
	var policyMembers []model.PolicyMember

	for i := 0; i < count; i++ {
		primary := g.pickUncovered(members, taken, nil)
		if primary == nil {
			log.Warn("All members already hold policies", "created", len(policies))
			break
		}
		taken[primary.MemberID] = true

		plan := pick(g.rng, plans)
		coverageType := coverageTypes[weighted(g.rng, coverageTypeWeights)]

		excess := 0.0
		if (plan.PlanType == "Hospital" || plan.PlanType == "Combined") && len(plan.ExcessOptions) > 0 {
			excess = pick(g.rng, plan.ExcessOptions)
		}

		startDate := g.daysBefore(simDate, 30, 1095)
		frequency := paymentFrequencies[weighted(g.rng, paymentFrequencyWeights)]
		lastPaid := g.daysBefore(simDate, 0, 30)

		policyID := nextPolicyID + len(policies)
		policy := model.Policy{
			PolicyID:             policyID,
			PolicyNumber:         g.PolicyNumber(),
			PrimaryMemberID:      primary.MemberID,
			PlanID:               plan.PlanID,
			CoverageType:         coverageType,
			StartDate:            startDate,
			ExcessAmount:         excess,
			PremiumFrequency:     frequency,
			CurrentPremium:       CalculatePremium(&plan, coverageType, excess),
			RebatePercentage:     rebateByTier[primary.PHIRebateTier],
			LHCLoadingPercentage: primary.LHCLoadingPercentage,
			Status:               "Active",
			PaymentMethod:        paymentMethods[weighted(g.rng, paymentMethodWeights)],
			LastPremiumPaidDate:  lastPaid,
			NextPremiumDueDate:   advanceDueDate(lastPaid, frequency),
		}
		policies = append(policies, policy)

		policyMembers = append(policyMembers, model.PolicyMember{
			PolicyID:              policyID,
			MemberID:              primary.MemberID,
			RelationshipToPrimary: "Self",
			StartDate:             startDate,
			IsActive:              true,
		})

		if coverageType == "Couple" || coverageType == "Family" {
			spouse := g.pickUncovered(members, taken, func(m *model.Member) bool {
				return abs(m.DateOfBirth.Year()-primary.DateOfBirth.Year()) < 15
			})
			if spouse != nil {
				taken[spouse.MemberID] = true
				policyMembers = append(policyMembers, model.PolicyMember{
					PolicyID:              policyID,
					MemberID:              spouse.MemberID,
					RelationshipToPrimary: "Spouse",
					StartDate:             startDate,
					IsActive:              true,
				})
			}
		}

		if coverageType == "Family" || coverageType == "Single Parent" {
			for n := g.rng.Intn(3) + 1; n > 0; n-- {
				child := g.pickUncovered(members, taken, func(m *model.Member) bool {
					return primary.DateOfBirth.Year()-m.DateOfBirth.Year() > 18
				})
				if child == nil {
					break
				}
				taken[child.MemberID] = true
				policyMembers = append(policyMembers, model.PolicyMember{
					PolicyID:              policyID,
					MemberID:              child.MemberID,
					RelationshipToPrimary: "Child",
					StartDate:             startDate,
					IsActive:              true,
				})
			}
		}
	}

	log.Debug("Generated policies", "policies", len(policies), "policyMembers", len(policyMembers))
	return policies, policyMembers
}

func (g *Generator) pickUncovered(members []model.Member, taken map[int]bool, match func(*model.Member) bool) *model.Member {
	var candidates []*model.Member
	for i := range members {
		m := &members[i]
		if taken[m.MemberID] {
			continue
		}
		if match != nil && !match(m) {
			continue
		}
		candidates = append(candidates, m)
	}
	if len(candidates) == 0 {
		return nil
	}
	return candidates[g.rng.Intn(len(candidates))]
}

func advanceDueDate(from time.Time, frequency string) time.Time {
	switch frequency {
	case "Quarterly":
		return from.AddDate(0, 0, 90)
	case "Annually":
		return from.AddDate(0, 0, 365)
	default: // Monthly
		return from.AddDate(0, 0, 30)
	}
}

func abs(n int) int {
	if n < 0 {
		return -n
	}
	return n
}
