package datagen

import (
	"fmt"
	"strings"
	"time"

	"github.com/go-faker/faker/v4"

	"github.com/Mmodarre/AusHealthSim/internal/model"
)

var emailDomains = []string{"example.com", "mail.example.com", "fastmail.example.net"}

// Members generates count new members joining on or before simDate.
func (g *Generator) Members(count int, simDate time.Time) []model.Member {
	members := make([]model.Member, 0, count)

	for i := 0; i < count; i++ {
		gender := "F"
		first := faker.FirstNameFemale()
		if g.rng.Intn(2) == 0 {
			gender = "M"
			first = faker.FirstNameMale()
		}
		last := faker.LastName()

		city := pick(g.rng, cities)
		age := g.memberAge()
		dob := simDate.AddDate(-age, 0, -g.rng.Intn(364))

		// Lifetime Health Cover loading applies to roughly 30% of joiners.
		lhc := 0.0
		if g.rng.Float64() < 0.3 {
			lhc = round2(g.rng.Float64() * 20)
		}

		m := model.Member{
			MemberNumber:         g.MemberNumber(),
			Title:                g.title(gender),
			FirstName:            first,
			LastName:             last,
			DateOfBirth:          dob,
			Gender:               gender,
			Email:                g.email(first, last),
			MobilePhone:          "04" + g.digits(8),
			AddressLine1:         fmt.Sprintf("%d %s %s", 1+g.rng.Intn(500), pick(g.rng, streetNames), pick(g.rng, streetSuffixes)),
			City:                 city.name,
			State:                city.state,
			PostCode:             fmt.Sprintf("%04d", city.postLow+g.rng.Intn(city.postHigh-city.postLow+1)),
			Country:              "Australia",
			MedicareNumber:       g.MedicareNumber(),
			LHCLoadingPercentage: lhc,
			PHIRebateTier:        pick(g.rng, phiRebateTiers),
			JoinDate:             g.daysBefore(simDate, 0, 5*365),
			IsActive:             true,
		}
		if g.rng.Float64() < 0.4 {
			m.HomePhone = fmt.Sprintf("0%d%s", 2+g.rng.Intn(7), g.digits(8))
		}
		members = append(members, m)
	}

	log.Debug("Generated members", "count", len(members))
	return members
}

// memberAge draws from an adult-weighted age distribution; dependants are
// attached to policies later and so skew younger.
func (g *Generator) memberAge() int {
	type ageBand struct {
		low, high int
		weight    float64
	}
	bands := []ageBand{
		{0, 18, 0.18},
		{19, 25, 0.10},
		{26, 35, 0.18},
		{36, 50, 0.22},
		{51, 65, 0.20},
		{66, 85, 0.10},
		{86, 99, 0.02},
	}
	weights := make([]float64, len(bands))
	for i, b := range bands {
		weights[i] = b.weight
	}
	b := bands[weighted(g.rng, weights)]
	return b.low + g.rng.Intn(b.high-b.low+1)
}

func (g *Generator) title(gender string) string {
	if g.rng.Float64() < 0.3 {
		return ""
	}
	if g.rng.Float64() < 0.05 {
		return "Dr"
	}
	if gender == "M" {
		return "Mr"
	}
	return pick(g.rng, []string{"Ms", "Mrs", "Miss"})
}

func (g *Generator) email(first, last string) string {
	return fmt.Sprintf("%s.%s%d@%s",
		strings.ToLower(first), strings.ToLower(last), g.rng.Intn(100), pick(g.rng, emailDomains))
}

// UpdateContactDetails rewrites a member's email, mobile and street address
// the way churned contact records do.
func (g *Generator) UpdateContactDetails(m *model.Member) {
	switch g.rng.Intn(3) {
	case 0: // contact only
		m.Email = "updated_" + g.email(m.FirstName, m.LastName)
		m.MobilePhone = "04" + g.digits(8)
	case 1: // address only
		m.AddressLine1 = fmt.Sprintf("%d New %s", 1+g.rng.Intn(999), pick(g.rng, streetSuffixes))
	default: // both
		m.Email = "updated_" + g.email(m.FirstName, m.LastName)
		m.MobilePhone = "04" + g.digits(8)
		m.AddressLine1 = fmt.Sprintf("%d New %s", 1+g.rng.Intn(999), pick(g.rng, streetSuffixes))
	}
}
