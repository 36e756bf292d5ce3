package sim

import (
	"context"
	"encoding/json"
	"fmt"
	"strconv"
	"time"

	"github.com/Mmodarre/AusHealthSim/internal/db"
	"github.com/Mmodarre/AusHealthSim/internal/model"
)

// The driver hands back typed values per column: strings for character
// types, time.Time for dates, bool for BIT, and DECIMAL as a string once
// QueryMaps has normalised []byte. The asX helpers absorb that variety.

func asString(v any) string {
	switch s := v.(type) {
	case nil:
		return ""
	case string:
		return s
	default:
		return fmt.Sprintf("%v", s)
	}
}

func asInt(v any) int {
	switch n := v.(type) {
	case int64:
		return int(n)
	case int:
		return n
	case float64:
		return int(n)
	case string:
		i, _ := strconv.Atoi(n)
		return i
	default:
		return 0
	}
}

func asFloat(v any) float64 {
	switch n := v.(type) {
	case float64:
		return n
	case int64:
		return float64(n)
	case string:
		f, _ := strconv.ParseFloat(n, 64)
		return f
	default:
		return 0
	}
}

func asBool(v any) bool {
	switch b := v.(type) {
	case bool:
		return b
	case int64:
		return b != 0
	case string:
		return b == "1" || b == "true"
	default:
		return false
	}
}

func asTime(v any) time.Time {
	if t, ok := v.(time.Time); ok {
		return t
	}
	return time.Time{}
}

func memberFromRow(r map[string]any) model.Member {
	return model.Member{
		MemberID:             asInt(r["MemberID"]),
		MemberNumber:         asString(r["MemberNumber"]),
		Title:                asString(r["Title"]),
		FirstName:            asString(r["FirstName"]),
		LastName:             asString(r["LastName"]),
		DateOfBirth:          asTime(r["DateOfBirth"]),
		Gender:               asString(r["Gender"]),
		Email:                asString(r["Email"]),
		MobilePhone:          asString(r["MobilePhone"]),
		HomePhone:            asString(r["HomePhone"]),
		AddressLine1:         asString(r["AddressLine1"]),
		AddressLine2:         asString(r["AddressLine2"]),
		City:                 asString(r["City"]),
		State:                asString(r["State"]),
		PostCode:             asString(r["PostCode"]),
		Country:              asString(r["Country"]),
		MedicareNumber:       asString(r["MedicareNumber"]),
		LHCLoadingPercentage: asFloat(r["LHCLoadingPercentage"]),
		PHIRebateTier:        asString(r["PHIRebateTier"]),
		JoinDate:             asTime(r["JoinDate"]),
		IsActive:             asBool(r["IsActive"]),
	}
}

func planFromRow(r map[string]any) model.CoveragePlan {
	p := model.CoveragePlan{
		PlanID:         asInt(r["PlanID"]),
		PlanCode:       asString(r["PlanCode"]),
		PlanName:       asString(r["PlanName"]),
		PlanType:       asString(r["PlanType"]),
		HospitalTier:   asString(r["HospitalTier"]),
		MonthlyPremium: asFloat(r["MonthlyPremium"]),
		AnnualPremium:  asFloat(r["AnnualPremium"]),
		IsActive:       asBool(r["IsActive"]),
		EffectiveDate:  asTime(r["EffectiveDate"]),
		EndDate:        asTime(r["EndDate"]),
	}
	if s := asString(r["ExcessOptions"]); s != "" {
		_ = json.Unmarshal([]byte(s), &p.ExcessOptions)
	}
	if s := asString(r["WaitingPeriods"]); s != "" {
		_ = json.Unmarshal([]byte(s), &p.WaitingPeriods)
	}
	if s := asString(r["CoverageDetails"]); s != "" {
		_ = json.Unmarshal([]byte(s), &p.CoverageDetails)
	}
	return p
}

func policyFromRow(r map[string]any) model.Policy {
	return model.Policy{
		PolicyID:             asInt(r["PolicyID"]),
		PolicyNumber:         asString(r["PolicyNumber"]),
		PrimaryMemberID:      asInt(r["PrimaryMemberID"]),
		PlanID:               asInt(r["PlanID"]),
		CoverageType:         asString(r["CoverageType"]),
		StartDate:            asTime(r["StartDate"]),
		EndDate:              asTime(r["EndDate"]),
		ExcessAmount:         asFloat(r["ExcessAmount"]),
		PremiumFrequency:     asString(r["PremiumFrequency"]),
		CurrentPremium:       asFloat(r["CurrentPremium"]),
		RebatePercentage:     asFloat(r["RebatePercentage"]),
		LHCLoadingPercentage: asFloat(r["LHCLoadingPercentage"]),
		Status:               asString(r["Status"]),
		PaymentMethod:        asString(r["PaymentMethod"]),
		LastPremiumPaidDate:  asTime(r["LastPremiumPaidDate"]),
		NextPremiumDueDate:   asTime(r["NextPremiumDueDate"]),
	}
}

func providerFromRow(r map[string]any) model.Provider {
	return model.Provider{
		ProviderID:          asInt(r["ProviderID"]),
		ProviderNumber:      asString(r["ProviderNumber"]),
		ProviderName:        asString(r["ProviderName"]),
		ProviderType:        asString(r["ProviderType"]),
		AddressLine1:        asString(r["AddressLine1"]),
		AddressLine2:        asString(r["AddressLine2"]),
		City:                asString(r["City"]),
		State:               asString(r["State"]),
		PostCode:            asString(r["PostCode"]),
		Country:             asString(r["Country"]),
		Phone:               asString(r["Phone"]),
		Email:               asString(r["Email"]),
		IsPreferredProvider: asBool(r["IsPreferredProvider"]),
		AgreementStartDate:  asTime(r["AgreementStartDate"]),
		AgreementEndDate:    asTime(r["AgreementEndDate"]),
		IsActive:            asBool(r["IsActive"]),
	}
}

// LoadFromDB refreshes the in-memory working set from the database so
// that generated rows reference real identities.
func (s *Simulation) LoadFromDB(ctx context.Context) error {
	rows, err := db.QueryMaps(ctx, s.conn, "SELECT * FROM Insurance.Members")
	if err != nil {
		return fmt.Errorf("loading members: %w", err)
	}
	s.members = s.members[:0]
	for _, r := range rows {
		s.members = append(s.members, memberFromRow(r))
	}

	rows, err = db.QueryMaps(ctx, s.conn, "SELECT * FROM Insurance.CoveragePlans WHERE IsActive = 1")
	if err != nil {
		return fmt.Errorf("loading coverage plans: %w", err)
	}
	s.plans = s.plans[:0]
	for _, r := range rows {
		s.plans = append(s.plans, planFromRow(r))
	}

	rows, err = db.QueryMaps(ctx, s.conn, "SELECT * FROM Insurance.Policies")
	if err != nil {
		return fmt.Errorf("loading policies: %w", err)
	}
	s.policies = s.policies[:0]
	for _, r := range rows {
		s.policies = append(s.policies, policyFromRow(r))
	}

	rows, err = db.QueryMaps(ctx, s.conn, "SELECT * FROM Insurance.Providers WHERE IsActive = 1")
	if err != nil {
		return fmt.Errorf("loading providers: %w", err)
	}
	s.providers = s.providers[:0]
	for _, r := range rows {
		s.providers = append(s.providers, providerFromRow(r))
	}

	log.Debug("Loaded working set",
		"members", len(s.members),
		"plans", len(s.plans),
		"policies", len(s.policies),
		"providers", len(s.providers))
	return nil
}
