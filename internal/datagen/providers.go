package datagen

import (
	"fmt"
	"strings"
	"time"

	"github.com/Mmodarre/AusHealthSim/internal/model"
)

// Providers generates a mix of hospitals, GPs, specialists and allied
// health practices. Agreement windows are anchored to simDate.
func (g *Generator) Providers(count int, simDate time.Time) []model.Provider {
	hospitalCount := max(1, count/10)
	gpCount := max(2, count/5)
	specialistCount := max(2, count/5)
	otherCount := count - hospitalCount - gpCount - specialistCount
	if otherCount < 0 {
		otherCount = 0
	}

	providers := make([]model.Provider, 0, count)

	for i := 0; i < hospitalCount; i++ {
		city := pick(g.rng, cities)
		name := fmt.Sprintf(pick(g.rng, hospitalNameTemplates), city.name)
		providers = append(providers, g.provider(name, "Hospital", city, simDate, 0.8, 0.8))
	}
	for i := 0; i < gpCount; i++ {
		city := pick(g.rng, cities)
		providers = append(providers, g.provider(g.practiceName(city.name, "Medical"), "General Practitioner", city, simDate, 0.5, 0.6))
	}
	for i := 0; i < specialistCount; i++ {
		city := pick(g.rng, cities)
		field := pick(g.rng, specialistFields)
		providers = append(providers, g.provider(g.practiceName(city.name, field), "Specialist - "+field, city, simDate, 0.7, 0.7))
	}
	for i := 0; i < otherCount; i++ {
		city := pick(g.rng, cities)
		ptype := pick(g.rng, providerTypes)
		providers = append(providers, g.provider(g.practiceName(city.name, ptype), ptype, city, simDate, 0.4, 0.5))
	}

	log.Debug("Generated providers", "count", len(providers))
	return providers
}

// provider fills the shared fields. preferredChance controls how often the
// provider has a preferred agreement, ongoingChance how often that
// agreement is open-ended into the future.
func (g *Generator) provider(name, ptype string, city cityInfo, simDate time.Time, preferredChance, ongoingChance float64) model.Provider {
	p := model.Provider{
		ProviderNumber: g.ProviderNumber(),
		ProviderName:   name,
		ProviderType:   ptype,
		AddressLine1:   fmt.Sprintf("%d %s %s", 1+g.rng.Intn(500), pick(g.rng, streetNames), pick(g.rng, streetSuffixes)),
		City:           city.name,
		State:          city.state,
		PostCode:       fmt.Sprintf("%04d", city.postLow+g.rng.Intn(city.postHigh-city.postLow+1)),
		Country:        "Australia",
		Phone:          fmt.Sprintf("0%d%s", 2+g.rng.Intn(7), g.digits(8)),
		Email:          fmt.Sprintf("info@%s.com.au", strings.ToLower(strings.NewReplacer(" ", "", "'", "", "-", "").Replace(name))),
		IsActive:       true,
	}

	if g.rng.Float64() < preferredChance {
		p.IsPreferredProvider = true
		p.AgreementStartDate = g.daysBefore(simDate, 30, 730)
		if g.rng.Float64() < ongoingChance {
			p.AgreementEndDate = g.daysAfter(simDate, 30, 1095)
		}
	}
	return p
}

// UpdateProviderDetails churns a provider's contact details or flips its
// preferred-provider agreement, as provider maintenance feeds do.
func (g *Generator) UpdateProviderDetails(p *model.Provider, simDate time.Time) {
	switch g.rng.Intn(3) {
	case 0:
		p.Phone = fmt.Sprintf("0%d%s", 2+g.rng.Intn(7), g.digits(8))
	case 1:
		p.Email = fmt.Sprintf("contact%d@%s.com.au", g.rng.Intn(100),
			strings.ToLower(strings.NewReplacer(" ", "", "'", "", "-", "").Replace(p.ProviderName)))
	default:
		p.IsPreferredProvider = !p.IsPreferredProvider
		if p.IsPreferredProvider {
			p.AgreementStartDate = simDate
			p.AgreementEndDate = g.daysAfter(simDate, 365, 1095)
		}
	}
}

func (g *Generator) practiceName(city, discipline string) string {
	t := pick(g.rng, practiceNameTemplates)
	if t.cityFirst {
		return fmt.Sprintf(t.format, city, discipline)
	}
	return fmt.Sprintf(t.format, discipline, city)
}
