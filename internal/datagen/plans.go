package datagen

import (
	"fmt"
	"time"

	"github.com/Mmodarre/AusHealthSim/internal/model"
)

// CoveragePlans generates count plans split across Hospital, Extras and
// Combined products. Plan codes are offset so repeated batches don't collide.
func (g *Generator) CoveragePlans(count int, codeOffset int, simDate time.Time) []model.CoveragePlan {
	hospitalCount := max(1, count/3)
	extrasCount := max(1, count/3)
	combinedCount := max(1, count-hospitalCount-extrasCount)

	plans := make([]model.CoveragePlan, 0, count)

	for i := 0; i < hospitalCount; i++ {
		t := pick(g.rng, hospitalPlanTemplates)
		monthly := round2(t.BasePremium * (0.9 + g.rng.Float64()*0.2))

		services := tierServices[t.Tier]
		plans = append(plans, model.CoveragePlan{
			PlanCode:       fmt.Sprintf("H%03d", codeOffset+i+1),
			PlanName:       t.Name,
			PlanType:       "Hospital",
			HospitalTier:   t.Tier,
			MonthlyPremium: monthly,
			AnnualPremium:  round2(monthly * 12),
			ExcessOptions:  excessOptionsForTier(t.Tier),
			WaitingPeriods: copyWaitingPeriods(defaultWaitingPeriods),
			CoverageDetails: map[string]any{
				"description":         fmt.Sprintf("%s provides cover for %s tier hospital services", t.Name, t.Tier),
				"included_services":   services.Included,
				"restricted_services": services.Restricted,
				"excluded_services":   services.Excluded,
			},
			IsActive:      true,
			EffectiveDate: g.daysBefore(simDate, 30, 365),
		})
	}

	for i := 0; i < extrasCount; i++ {
		t := pick(g.rng, extrasPlanTemplates)
		monthly := round2(t.BasePremium * (0.9 + g.rng.Float64()*0.2))

		plans = append(plans, model.CoveragePlan{
			PlanCode:       fmt.Sprintf("E%03d", codeOffset+i+1),
			PlanName:       t.Name,
			PlanType:       "Extras",
			MonthlyPremium: monthly,
			AnnualPremium:  round2(monthly * 12),
			WaitingPeriods: map[string]int{
				"general":      2,
				"major_dental": 12,
				"optical":      2,
			},
			CoverageDetails: t.Coverage,
			IsActive:        true,
			EffectiveDate:   g.daysBefore(simDate, 30, 365),
		})
	}

	for i := 0; i < combinedCount; i++ {
		t := pick(g.rng, combinedPlanTemplates)
		monthly := round2(t.BasePremium * (0.9 + g.rng.Float64()*0.2))

		waiting := copyWaitingPeriods(defaultWaitingPeriods)
		waiting["major_dental"] = 12
		waiting["optical"] = 2

		plans = append(plans, model.CoveragePlan{
			PlanCode:       fmt.Sprintf("C%03d", codeOffset+i+1),
			PlanName:       t.Name,
			PlanType:       "Combined",
			HospitalTier:   t.HospitalTier,
			MonthlyPremium: monthly,
			AnnualPremium:  round2(monthly * 12),
			ExcessOptions:  excessOptionsForTier(t.HospitalTier),
			WaitingPeriods: waiting,
			CoverageDetails: map[string]any{
				"hospital_component": t.HospitalPart,
				"extras_component":   t.ExtrasComponent,
			},
			IsActive:      true,
			EffectiveDate: g.daysBefore(simDate, 30, 365),
		})
	}

	log.Debug("Generated coverage plans", "count", len(plans))
	return plans
}

// Lower tiers require an excess; higher tiers may waive it.
func excessOptionsForTier(tier string) []float64 {
	if tier == "Basic" || tier == "Bronze" {
		return []float64{500, 750}
	}
	return []float64{0, 250, 500, 750}
}

func copyWaitingPeriods(src map[string]int) map[string]int {
	dst := make(map[string]int, len(src))
	for k, v := range src {
		dst[k] = v
	}
	return dst
}
