package sim

import (
	"math/rand"
	"time"
)

// DailyParams controls one day of simulated business activity.
type DailyParams struct {
	AddNewMembers     bool
	NewMembersCount   int
	AddNewPlans       bool
	NewPlansCount     int
	AddNewProviders   bool
	NewProvidersCount int

	CreateNewPolicies bool
	NewPoliciesCount  int

	UpdateMembers         bool
	MemberUpdatePercent   float64
	UpdateProviders       bool
	ProviderUpdatePercent float64
	EndProviderAgreements bool
	AgreementEndPercent   float64
	ProcessPolicyChanges  bool
	PolicyChangePercent   float64

	GenerateHospitalClaims bool
	HospitalClaimsCount    int
	GenerateGeneralClaims  bool
	GeneralClaimsCount     int

	ProcessPremiumPayments bool
	ProcessClaims          bool
	ClaimProcessPercent    float64
}

// DefaultDailyParams mirrors a quiet weekday of operations.
func DefaultDailyParams() DailyParams {
	return DailyParams{
		AddNewMembers:          true,
		NewMembersCount:        5,
		AddNewProviders:        true,
		NewProvidersCount:      5,
		CreateNewPolicies:      true,
		NewPoliciesCount:       3,
		UpdateMembers:          true,
		MemberUpdatePercent:    2.0,
		UpdateProviders:        true,
		ProviderUpdatePercent:  5.0,
		EndProviderAgreements:  true,
		AgreementEndPercent:    1.0,
		ProcessPolicyChanges:   true,
		PolicyChangePercent:    1.0,
		GenerateHospitalClaims: true,
		HospitalClaimsCount:    3,
		GenerateGeneralClaims:  true,
		GeneralClaimsCount:     10,
		ProcessPremiumPayments: true,
		ProcessClaims:          true,
		ClaimProcessPercent:    80.0,
	}
}

// RealisticParams derives a full parameter set from a single base
// members-per-day figure. Ratios keep the volumes in realistic proportion;
// weekends damp joins and the start/end of a month lift claim volumes.
func RealisticParams(rng *rand.Rand, baseMembers int, day time.Time) DailyParams {
	membersCount := max(1, int(float64(baseMembers)*(0.8+rng.Float64()*0.4)))

	addPlans := rng.Float64() < 0.01
	plansCount := 0
	if addPlans {
		plansCount = 1
	}

	p := DailyParams{
		AddNewMembers:   true,
		NewMembersCount: membersCount,

		AddNewPlans:   addPlans,
		NewPlansCount: plansCount,

		AddNewProviders:   rng.Float64() < 0.2,
		NewProvidersCount: 1 + rng.Intn(3),

		CreateNewPolicies: true,
		NewPoliciesCount:  max(1, int(float64(membersCount)*(0.6+rng.Float64()*0.2))),

		UpdateMembers:         true,
		MemberUpdatePercent:   5.0 + rng.Float64()*2.0,
		UpdateProviders:       true,
		ProviderUpdatePercent: 3.0 + rng.Float64()*2.0,
		EndProviderAgreements: true,
		AgreementEndPercent:   0.5 + rng.Float64(),
		ProcessPolicyChanges:  true,
		PolicyChangePercent:   0.5 + rng.Float64(),

		GenerateHospitalClaims: true,
		HospitalClaimsCount:    max(1, int(float64(membersCount)*(0.1+rng.Float64()*0.1))),
		GenerateGeneralClaims:  true,
		GeneralClaimsCount:     max(1, int(float64(membersCount)*(0.3+rng.Float64()*0.2))),

		ProcessPremiumPayments: true,
		ProcessClaims:          true,
		ClaimProcessPercent:    75.0 + rng.Float64()*20.0,
	}

	// Fewer people sign up on weekends.
	if wd := day.Weekday(); wd == time.Saturday || wd == time.Sunday {
		p.NewMembersCount = max(1, p.NewMembersCount*6/10)
		p.NewPoliciesCount = max(1, p.NewPoliciesCount*6/10)
	}

	// Claim volumes surge around the turn of the month.
	if d := day.Day(); d <= 5 || d >= 25 {
		p.HospitalClaimsCount = p.HospitalClaimsCount * 12 / 10
		p.GeneralClaimsCount = p.GeneralClaimsCount * 12 / 10
	}

	return p
}

// HistoricalParams randomises which activities run on a given historical
// day to avoid every day looking identical.
func HistoricalParams(rng *rand.Rand) DailyParams {
	addPlans := rng.Float64() < 0.05
	plansCount := 0
	if addPlans {
		plansCount = 1 + rng.Intn(3)
	}

	return DailyParams{
		AddNewMembers:   rng.Float64() < 0.7,
		NewMembersCount: 1 + rng.Intn(10),

		AddNewPlans:   addPlans,
		NewPlansCount: plansCount,

		AddNewProviders:   rng.Float64() < 0.3,
		NewProvidersCount: 1 + rng.Intn(5),

		CreateNewPolicies: rng.Float64() < 0.8,
		NewPoliciesCount:  1 + rng.Intn(8),

		UpdateMembers:         rng.Float64() < 0.6,
		MemberUpdatePercent:   1.0 + rng.Float64()*4.0,
		UpdateProviders:       rng.Float64() < 0.5,
		ProviderUpdatePercent: 2.0 + rng.Float64()*4.0,
		EndProviderAgreements: rng.Float64() < 0.3,
		AgreementEndPercent:   0.5 + rng.Float64(),
		ProcessPolicyChanges:  rng.Float64() < 0.4,
		PolicyChangePercent:   0.5 + rng.Float64()*2.5,

		GenerateHospitalClaims: rng.Float64() < 0.9,
		HospitalClaimsCount:    1 + rng.Intn(10),
		GenerateGeneralClaims:  rng.Float64() < 0.95,
		GeneralClaimsCount:     5 + rng.Intn(26),

		ProcessPremiumPayments: true,
		ProcessClaims:          rng.Float64() < 0.8,
		ClaimProcessPercent:    70.0 + rng.Float64()*25.0,
	}
}
