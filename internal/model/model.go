// Package model defines the records written to the Insurance schema.
// Each type renders itself as an ordered column/value row for insertion;
// identity columns are populated when records are read back.
package model

import (
	"encoding/json"
	"time"

	"github.com/Mmodarre/AusHealthSim/internal/db"
)

// Member is a policyholder or dependant.
type Member struct {
	MemberID             int
	MemberNumber         string
	Title                string
	FirstName            string
	LastName             string
	DateOfBirth          time.Time
	Gender               string
	Email                string
	MobilePhone          string
	HomePhone            string
	AddressLine1         string
	AddressLine2         string
	City                 string
	State                string
	PostCode             string
	Country              string
	MedicareNumber       string
	LHCLoadingPercentage float64
	PHIRebateTier        string
	JoinDate             time.Time
	IsActive             bool
}

func (m *Member) Row() db.Row {
	country := m.Country
	if country == "" {
		country = "Australia"
	}
	join := m.JoinDate
	if join.IsZero() {
		join = time.Now()
	}
	return db.Row{
		Columns: []string{
			"MemberNumber", "Title", "FirstName", "LastName", "DateOfBirth",
			"Gender", "Email", "MobilePhone", "HomePhone", "AddressLine1",
			"AddressLine2", "City", "State", "PostCode", "Country",
			"MedicareNumber", "LHCLoadingPercentage", "PHIRebateTier",
			"JoinDate", "IsActive",
		},
		Values: []any{
			m.MemberNumber, nullString(m.Title), m.FirstName, m.LastName, m.DateOfBirth,
			m.Gender, nullString(m.Email), nullString(m.MobilePhone), nullString(m.HomePhone), m.AddressLine1,
			nullString(m.AddressLine2), m.City, m.State, m.PostCode, country,
			nullString(m.MedicareNumber), m.LHCLoadingPercentage, m.PHIRebateTier,
			join, m.IsActive,
		},
	}
}

// CoveragePlan is a hospital, extras or combined product.
type CoveragePlan struct {
	PlanID          int
	PlanCode        string
	PlanName        string
	PlanType        string // Hospital, Extras, Combined
	HospitalTier    string // Basic, Bronze, Silver, Gold
	MonthlyPremium  float64
	AnnualPremium   float64
	ExcessOptions   []float64
	WaitingPeriods  map[string]int
	CoverageDetails map[string]any
	IsActive        bool
	EffectiveDate   time.Time
	EndDate         time.Time
}

func (p *CoveragePlan) Row() db.Row {
	return db.Row{
		Columns: []string{
			"PlanCode", "PlanName", "PlanType", "HospitalTier",
			"MonthlyPremium", "AnnualPremium", "ExcessOptions",
			"WaitingPeriods", "CoverageDetails", "IsActive",
			"EffectiveDate", "EndDate",
		},
		Values: []any{
			p.PlanCode, p.PlanName, p.PlanType, nullString(p.HospitalTier),
			p.MonthlyPremium, p.AnnualPremium, jsonOrNil(p.ExcessOptions),
			jsonOrNil(p.WaitingPeriods), jsonOrNil(p.CoverageDetails), p.IsActive,
			p.EffectiveDate, nullDate(p.EndDate),
		},
	}
}

// Policy covers one or more members under a coverage plan.
type Policy struct {
	PolicyID             int
	PolicyNumber         string
	PrimaryMemberID      int
	PlanID               int
	CoverageType         string // Single, Couple, Family, Single Parent
	StartDate            time.Time
	EndDate              time.Time
	ExcessAmount         float64
	PremiumFrequency     string // Monthly, Quarterly, Annually
	CurrentPremium       float64
	RebatePercentage     float64
	LHCLoadingPercentage float64
	Status               string // Active, Suspended, Cancelled, Lapsed
	PaymentMethod        string
	LastPremiumPaidDate  time.Time
	NextPremiumDueDate   time.Time
}

func (p *Policy) Row() db.Row {
	return db.Row{
		Columns: []string{
			"PolicyNumber", "PrimaryMemberID", "PlanID", "CoverageType",
			"StartDate", "EndDate", "ExcessAmount", "PremiumFrequency",
			"CurrentPremium", "RebatePercentage", "LHCLoadingPercentage",
			"Status", "PaymentMethod", "LastPremiumPaidDate", "NextPremiumDueDate",
		},
		Values: []any{
			p.PolicyNumber, p.PrimaryMemberID, p.PlanID, p.CoverageType,
			p.StartDate, nullDate(p.EndDate), p.ExcessAmount, p.PremiumFrequency,
			p.CurrentPremium, p.RebatePercentage, p.LHCLoadingPercentage,
			p.Status, p.PaymentMethod, nullDate(p.LastPremiumPaidDate), nullDate(p.NextPremiumDueDate),
		},
	}
}

// PolicyMember links a member to a policy.
type PolicyMember struct {
	PolicyMemberID        int
	PolicyID              int
	MemberID              int
	RelationshipToPrimary string // Self, Spouse, Child, Dependent
	StartDate             time.Time
	EndDate               time.Time
	IsActive              bool
}

func (pm *PolicyMember) Row() db.Row {
	return db.Row{
		Columns: []string{
			"PolicyID", "MemberID", "RelationshipToPrimary",
			"StartDate", "EndDate", "IsActive",
		},
		Values: []any{
			pm.PolicyID, pm.MemberID, pm.RelationshipToPrimary,
			pm.StartDate, nullDate(pm.EndDate), pm.IsActive,
		},
	}
}

// Provider is a hospital, practice or practitioner that renders services.
type Provider struct {
	ProviderID          int
	ProviderNumber      string
	ProviderName        string
	ProviderType        string
	AddressLine1        string
	AddressLine2        string
	City                string
	State               string
	PostCode            string
	Country             string
	Phone               string
	Email               string
	IsPreferredProvider bool
	AgreementStartDate  time.Time
	AgreementEndDate    time.Time
	IsActive            bool
}

func (p *Provider) Row() db.Row {
	country := p.Country
	if country == "" {
		country = "Australia"
	}
	return db.Row{
		Columns: []string{
			"ProviderNumber", "ProviderName", "ProviderType", "AddressLine1",
			"AddressLine2", "City", "State", "PostCode", "Country",
			"Phone", "Email", "IsPreferredProvider",
			"AgreementStartDate", "AgreementEndDate", "IsActive",
		},
		Values: []any{
			p.ProviderNumber, p.ProviderName, p.ProviderType, p.AddressLine1,
			nullString(p.AddressLine2), p.City, p.State, p.PostCode, country,
			nullString(p.Phone), nullString(p.Email), p.IsPreferredProvider,
			nullDate(p.AgreementStartDate), nullDate(p.AgreementEndDate), p.IsActive,
		},
	}
}

// Claim is a hospital or general treatment claim against a policy.
type Claim struct {
	ClaimID            int
	ClaimNumber        string
	PolicyID           int
	MemberID           int
	ProviderID         int
	ServiceDate        time.Time
	SubmissionDate     time.Time
	ClaimType          string
	ServiceDescription string
	MBSItemNumber      string
	ChargedAmount      float64
	MedicareAmount     float64
	InsuranceAmount    float64
	GapAmount          float64
	ExcessApplied      float64
	Status             string // Submitted, In Process, Approved, Paid, Rejected
	ProcessedDate      time.Time
	PaymentDate        time.Time
	RejectionReason    string
}

func (c *Claim) Row() db.Row {
	return db.Row{
		Columns: []string{
			"ClaimNumber", "PolicyID", "MemberID", "ProviderID",
			"ServiceDate", "SubmissionDate", "ClaimType", "ServiceDescription",
			"MBSItemNumber", "ChargedAmount", "MedicareAmount", "InsuranceAmount",
			"GapAmount", "ExcessApplied", "Status", "ProcessedDate",
			"PaymentDate", "RejectionReason",
		},
		Values: []any{
			c.ClaimNumber, c.PolicyID, c.MemberID, c.ProviderID,
			c.ServiceDate, c.SubmissionDate, c.ClaimType, c.ServiceDescription,
			nullString(c.MBSItemNumber), c.ChargedAmount, c.MedicareAmount, c.InsuranceAmount,
			c.GapAmount, c.ExcessApplied, c.Status, nullDate(c.ProcessedDate),
			nullDate(c.PaymentDate), nullString(c.RejectionReason),
		},
	}
}

// PremiumPayment records collection of a policy premium.
type PremiumPayment struct {
	PaymentID        int
	PolicyID         int
	PaymentDate      time.Time
	PaymentAmount    float64
	PaymentMethod    string
	PaymentReference string
	PaymentStatus    string // Successful, Failed, Pending, Refunded
	PeriodStartDate  time.Time
	PeriodEndDate    time.Time
}

func (p *PremiumPayment) Row() db.Row {
	return db.Row{
		Columns: []string{
			"PolicyID", "PaymentDate", "PaymentAmount", "PaymentMethod",
			"PaymentReference", "PaymentStatus", "PeriodStartDate", "PeriodEndDate",
		},
		Values: []any{
			p.PolicyID, p.PaymentDate, p.PaymentAmount, p.PaymentMethod,
			nullString(p.PaymentReference), p.PaymentStatus, p.PeriodStartDate, p.PeriodEndDate,
		},
	}
}

func nullString(s string) any {
	if s == "" {
		return nil
	}
	return s
}

func nullDate(t time.Time) any {
	if t.IsZero() {
		return nil
	}
	return t
}

func jsonOrNil(v any) any {
	switch x := v.(type) {
	case []float64:
		if len(x) == 0 {
			return nil
		}
	case map[string]int:
		if len(x) == 0 {
			return nil
		}
	case map[string]any:
		if len(x) == 0 {
			return nil
		}
	}
	b, err := json.Marshal(v)
	if err != nil {
		return nil
	}
	return string(b)
}
