package datagen

import (
	"strings"
	"time"

	"github.com/Mmodarre/AusHealthSim/internal/model"
)

var claimStatuses = []string{"Submitted", "In Process", "Approved", "Paid", "Rejected"}
var claimStatusWeights = []float64{0.1, 0.1, 0.2, 0.5, 0.1}

// HospitalClaims generates count hospital claims against active policies
// and hospital providers. Amounts follow the MBS schedule: charged is the
// fee with a 1.5-3.0x private markup, Medicare covers 75% of the fee, and
// the policy excess applies to roughly 30% of admissions.
func (g *Generator) HospitalClaims(
	policies []model.Policy,
	providers []model.Provider,
	count int,
	simDate time.Time,
) []model.Claim {
	active := activePolicies(policies)
	if len(active) == 0 {
		log.Warn("No active policies available to generate hospital claims")
		return nil
	}
	hospitals := filterProviders(providers, func(p *model.Provider) bool {
		return p.ProviderType == "Hospital"
	})
	if len(hospitals) == 0 {
		log.Warn("No hospital providers available to generate claims")
		return nil
	}

	claims := make([]model.Claim, 0, count)
	for i := 0; i < count; i++ {
		policy := pick(g.rng, active)
		provider := pick(g.rng, hospitals)
		item := pick(g.rng, hospitalMBSItems)

		serviceDay := g.daysBefore(simDate, 1, 365)
		submissionDay := g.daysAfter(serviceDay, 1, 10)

		charged := round2(item.Fee * (1.5 + g.rng.Float64()*1.5))
		medicare := round2(item.Fee * 0.75)

		excessApplied := 0.0
		if g.rng.Float64() < 0.3 {
			excessApplied = min(policy.ExcessAmount, charged-medicare)
		}

		insurance := round2(charged - medicare - excessApplied)
		gap := round2(charged - medicare - insurance - excessApplied)
		if gap < 0 {
			gap = 0
		}

		claim := model.Claim{
			ClaimNumber:        g.ClaimNumber(simDate),
			PolicyID:           policy.PolicyID,
			MemberID:           policy.PrimaryMemberID,
			ProviderID:         provider.ProviderID,
			ServiceDate:        g.businessTime(serviceDay),
			SubmissionDate:     g.businessTime(submissionDay),
			ClaimType:          "Hospital",
			ServiceDescription: item.Description,
			MBSItemNumber:      item.Number,
			ChargedAmount:      charged,
			MedicareAmount:     medicare,
			InsuranceAmount:    insurance,
			GapAmount:          gap,
			ExcessApplied:      excessApplied,
		}
		g.applyClaimLifecycle(&claim, submissionDay, 14, 7)
		claims = append(claims, claim)
	}

	log.Debug("Generated hospital claims", "count", len(claims))
	return claims
}

// GeneralClaims generates extras claims (dental, optical and so on).
// Medicare pays nothing and no excess applies; the insurer covers a
// 50-80% benefit and the member wears the gap.
func (g *Generator) GeneralClaims(
	policies []model.Policy,
	providers []model.Provider,
	count int,
	simDate time.Time,
) []model.Claim {
	active := activePolicies(policies)
	if len(active) == 0 {
		log.Warn("No active policies available to generate general claims")
		return nil
	}
	general := filterProviders(providers, func(p *model.Provider) bool {
		return p.ProviderType != "Hospital"
	})
	if len(general) == 0 {
		log.Warn("No general treatment providers available to generate claims")
		return nil
	}

	claims := make([]model.Claim, 0, count)
	for i := 0; i < count; i++ {
		policy := pick(g.rng, active)
		claimType := pick(g.rng, generalClaimTypes)

		matching := filterProviders(general, func(p *model.Provider) bool {
			return strings.Contains(p.ProviderType, claimType) || providerMatchesClaimType(p.ProviderType, claimType)
		})
		if len(matching) == 0 {
			matching = general
		}
		provider := pick(g.rng, matching)

		service := pick(g.rng, generalTreatmentServices[claimType])

		serviceDay := g.daysBefore(simDate, 1, 365)
		submissionDay := g.daysAfter(serviceDay, 1, 10)

		charged := service.Fee
		insurance := round2(charged * (0.5 + g.rng.Float64()*0.3))
		gap := round2(charged - insurance)

		claim := model.Claim{
			ClaimNumber:        g.ClaimNumber(simDate),
			PolicyID:           policy.PolicyID,
			MemberID:           policy.PrimaryMemberID,
			ProviderID:         provider.ProviderID,
			ServiceDate:        g.businessTime(serviceDay),
			SubmissionDate:     g.businessTime(submissionDay),
			ClaimType:          claimType,
			ServiceDescription: service.Description,
			ChargedAmount:      charged,
			InsuranceAmount:    insurance,
			GapAmount:          gap,
		}
		g.applyClaimLifecycle(&claim, submissionDay, 7, 3)
		claims = append(claims, claim)
	}

	log.Debug("Generated general treatment claims", "count", len(claims))
	return claims
}

// applyClaimLifecycle draws a status and fills the dependent dates.
func (g *Generator) applyClaimLifecycle(claim *model.Claim, submissionDay time.Time, maxProcessDays, maxPayDays int) {
	claim.Status = claimStatuses[weighted(g.rng, claimStatusWeights)]

	switch claim.Status {
	case "Approved", "Paid":
		processedDay := g.daysAfter(submissionDay, 1, maxProcessDays)
		claim.ProcessedDate = g.businessTime(processedDay)
		if claim.Status == "Paid" {
			claim.PaymentDate = g.businessTime(g.daysAfter(processedDay, 1, maxPayDays))
		}
	case "Rejected":
		claim.ProcessedDate = g.businessTime(g.daysAfter(submissionDay, 1, maxProcessDays))
		claim.RejectionReason = pick(g.rng, rejectionReasons)
	}
}

// RejectionReason draws a reason for claims rejected during assessment.
func (g *Generator) RejectionReason() string {
	return pick(g.rng, rejectionReasons)
}

func activePolicies(policies []model.Policy) []model.Policy {
	var active []model.Policy
	for _, p := range policies {
		if p.Status == "Active" {
			active = append(active, p)
		}
	}
	return active
}

func filterProviders(providers []model.Provider, keep func(*model.Provider) bool) []model.Provider {
	var out []model.Provider
	for i := range providers {
		if keep(&providers[i]) {
			out = append(out, providers[i])
		}
	}
	return out
}

// providerMatchesClaimType maps practitioner types to the claim types
// they can render.
func providerMatchesClaimType(providerType, claimType string) bool {
	byClaim := map[string]string{
		"Dental":           "Dentist",
		"Optical":          "Optometrist",
		"Physiotherapy":    "Physiotherapist",
		"Chiropractic":     "Chiropractor",
		"Psychology":       "Psychologist",
		"Podiatry":         "Podiatrist",
		"Acupuncture":      "Acupuncturist",
		"Naturopathy":      "Naturopath",
		"Remedial Massage": "Massage Therapist",
	}
	return byClaim[claimType] == providerType
}
