// Package sim runs the day-by-day business simulation against the
// Insurance schema. Each run loads the current working set from the
// database, applies a configurable mix of inserts and updates for one
// simulated day, and stamps every change with that day so downstream
// change-capture consumers see a believable timeline.
package sim

import (
	"context"
	"database/sql"
	"fmt"
	"math/rand"
	"time"

	"github.com/Mmodarre/AusHealthSim/internal/datagen"
	"github.com/Mmodarre/AusHealthSim/internal/db"
	"github.com/Mmodarre/AusHealthSim/internal/logging"
	"github.com/Mmodarre/AusHealthSim/internal/model"
)

var log = logging.GetLogger()

// Simulation drives one database. It is not safe for concurrent use.
type Simulation struct {
	conn    *sql.DB
	gen     *datagen.Generator
	rng     *rand.Rand
	tracker *datagen.Tracker

	members   []model.Member
	plans     []model.CoveragePlan
	policies  []model.Policy
	providers []model.Provider
}

// New builds a Simulation over an open connection. tracker may be nil when
// the caller does not care about cross-run member reuse.
func New(conn *sql.DB, tracker *datagen.Tracker) *Simulation {
	return NewSeeded(conn, tracker, time.Now().UnixNano())
}

// NewSeeded fixes the random seed, used by tests.
func NewSeeded(conn *sql.DB, tracker *datagen.Tracker, seed int64) *Simulation {
	return &Simulation{
		conn:    conn,
		gen:     datagen.NewSeeded(seed),
		rng:     rand.New(rand.NewSource(seed)),
		tracker: tracker,
	}
}

// AddMembers inserts count new members joining on simDate.
func (s *Simulation) AddMembers(ctx context.Context, simDate time.Time, count int) error {
	members := s.gen.Members(count, simDate)
	rows := make([]db.Row, len(members))
	for i := range members {
		rows[i] = members[i].Row()
	}
	n, err := db.BulkInsert(ctx, s.conn, "Insurance.Members", rows, simDate)
	if err != nil {
		return fmt.Errorf("inserting members: %w", err)
	}
	log.Info("Added members", "count", n, "date", simDate.Format("2006-01-02"))
	return nil
}

// AddPlans inserts count new coverage plans effective on simDate. Plan
// codes continue from the number of plans already on file.
func (s *Simulation) AddPlans(ctx context.Context, simDate time.Time, count int) error {
	existing, err := s.scalarInt(ctx, "SELECT COUNT(*) FROM Insurance.CoveragePlans")
	if err != nil {
		return fmt.Errorf("counting plans: %w", err)
	}
	plans := s.gen.CoveragePlans(count, existing, simDate)
	rows := make([]db.Row, len(plans))
	for i := range plans {
		rows[i] = plans[i].Row()
	}
	n, err := db.BulkInsert(ctx, s.conn, "Insurance.CoveragePlans", rows, simDate)
	if err != nil {
		return fmt.Errorf("inserting coverage plans: %w", err)
	}
	log.Info("Added coverage plans", "count", n, "date", simDate.Format("2006-01-02"))
	return nil
}

// AddProviders inserts count new providers with agreements anchored to simDate.
func (s *Simulation) AddProviders(ctx context.Context, simDate time.Time, count int) error {
	providers := s.gen.Providers(count, simDate)
	rows := make([]db.Row, len(providers))
	for i := range providers {
		rows[i] = providers[i].Row()
	}
	n, err := db.BulkInsert(ctx, s.conn, "Insurance.Providers", rows, simDate)
	if err != nil {
		return fmt.Errorf("inserting providers: %w", err)
	}
	log.Info("Added providers", "count", n, "date", simDate.Format("2006-01-02"))
	return nil
}

// CreatePolicies issues up to count new policies starting simDate over
// members that are not covered yet. Policy identities are assigned ahead
// of insertion from the table's current MAX(PolicyID) so that the
// PolicyMembers links can be generated and inserted in the same pass.
func (s *Simulation) CreatePolicies(ctx context.Context, simDate time.Time, count int) error {
	// Re-read members so the ones inserted earlier today have identities.
	rows, err := db.QueryMaps(ctx, s.conn, "SELECT * FROM Insurance.Members WHERE IsActive = 1")
	if err != nil {
		return fmt.Errorf("loading members: %w", err)
	}
	members := make([]model.Member, 0, len(rows))
	for _, r := range rows {
		members = append(members, memberFromRow(r))
	}

	if len(s.plans) == 0 {
		if err := s.LoadFromDB(ctx); err != nil {
			return err
		}
	}

	covered := make(map[int]bool)
	coveredRows, err := db.QueryMaps(ctx, s.conn,
		"SELECT DISTINCT MemberID FROM Insurance.PolicyMembers WHERE IsActive = 1")
	if err != nil {
		return fmt.Errorf("loading covered members: %w", err)
	}
	for _, r := range coveredRows {
		covered[asInt(r["MemberID"])] = true
	}
	if s.tracker != nil {
		for i := range members {
			if s.tracker.Used(members[i].MemberNumber) {
				covered[members[i].MemberID] = true
			}
		}
	}

	maxID, err := s.scalarInt(ctx, "SELECT ISNULL(MAX(PolicyID), 0) FROM Insurance.Policies")
	if err != nil {
		return fmt.Errorf("probing policy identity: %w", err)
	}

	policies, policyMembers := s.gen.Policies(members, s.plans, count, maxID+1, covered, simDate)
	if len(policies) == 0 {
		return nil
	}

	policyRows := make([]db.Row, len(policies))
	for i := range policies {
		policyRows[i] = policies[i].Row()
	}
	if _, err := db.BulkInsert(ctx, s.conn, "Insurance.Policies", policyRows, simDate); err != nil {
		return fmt.Errorf("inserting policies: %w", err)
	}

	memberRows := make([]db.Row, len(policyMembers))
	for i := range policyMembers {
		memberRows[i] = policyMembers[i].Row()
	}
	if _, err := db.BulkInsert(ctx, s.conn, "Insurance.PolicyMembers", memberRows, simDate); err != nil {
		return fmt.Errorf("inserting policy members: %w", err)
	}

	if s.tracker != nil {
		byID := make(map[int]string, len(members))
		for i := range members {
			byID[members[i].MemberID] = members[i].MemberNumber
		}
		for _, pm := range policyMembers {
			if num, ok := byID[pm.MemberID]; ok {
				s.tracker.Mark(num)
			}
		}
	}

	s.policies = append(s.policies, policies...)
	log.Info("Created policies",
		"policies", len(policies), "links", len(policyMembers),
		"date", simDate.Format("2006-01-02"))
	return nil
}

// UpdateMembers churns contact details on roughly percent of members.
func (s *Simulation) UpdateMembers(ctx context.Context, simDate time.Time, percent float64) error {
	n := sampleSize(len(s.members), percent)
	updated := 0
	for _, i := range s.rng.Perm(len(s.members))[:n] {
		m := &s.members[i]
		s.gen.UpdateContactDetails(m)
		_, err := db.Exec(ctx, s.conn,
			`UPDATE Insurance.Members
			 SET Email = @p1, MobilePhone = @p2, AddressLine1 = @p3, LastModified = GETDATE()
			 WHERE MemberID = @p4`,
			simDate, m.Email, m.MobilePhone, m.AddressLine1, m.MemberID)
		if err != nil {
			return fmt.Errorf("updating member %d: %w", m.MemberID, err)
		}
		updated++
	}
	log.Info("Updated member contact details", "count", updated)
	return nil
}

// UpdateProviders churns contact or agreement details on roughly percent
// of active providers.
func (s *Simulation) UpdateProviders(ctx context.Context, simDate time.Time, percent float64) error {
	n := sampleSize(len(s.providers), percent)
	updated := 0
	for _, i := range s.rng.Perm(len(s.providers))[:n] {
		p := &s.providers[i]
		s.gen.UpdateProviderDetails(p, simDate)
		_, err := db.Exec(ctx, s.conn,
			`UPDATE Insurance.Providers
			 SET Phone = @p1, Email = @p2, IsPreferredProvider = @p3,
			     AgreementStartDate = @p4, AgreementEndDate = @p5, LastModified = GETDATE()
			 WHERE ProviderID = @p6`,
			simDate, p.Phone, p.Email, p.IsPreferredProvider,
			nullableDate(p.AgreementStartDate), nullableDate(p.AgreementEndDate), p.ProviderID)
		if err != nil {
			return fmt.Errorf("updating provider %d: %w", p.ProviderID, err)
		}
		updated++
	}
	log.Info("Updated providers", "count", updated)
	return nil
}

// EndProviderAgreements closes the preferred agreement on roughly percent
// of providers that currently hold one.
func (s *Simulation) EndProviderAgreements(ctx context.Context, simDate time.Time, percent float64) error {
	var preferred []*model.Provider
	for i := range s.providers {
		if s.providers[i].IsPreferredProvider {
			preferred = append(preferred, &s.providers[i])
		}
	}
	n := sampleSize(len(preferred), percent)
	ended := 0
	for _, i := range s.rng.Perm(len(preferred))[:n] {
		p := preferred[i]
		p.IsPreferredProvider = false
		p.AgreementEndDate = simDate
		_, err := db.Exec(ctx, s.conn,
			`UPDATE Insurance.Providers
			 SET IsPreferredProvider = 0, AgreementEndDate = @p1, LastModified = GETDATE()
			 WHERE ProviderID = @p2`,
			simDate, simDate, p.ProviderID)
		if err != nil {
			return fmt.Errorf("ending agreement for provider %d: %w", p.ProviderID, err)
		}
		ended++
	}
	log.Info("Ended provider agreements", "count", ended)
	return nil
}

// ProcessPolicyChanges applies mid-life changes (frequency, excess or
// suspension) to roughly percent of active policies, repricing the premium
// where the change affects it.
func (s *Simulation) ProcessPolicyChanges(ctx context.Context, simDate time.Time, percent float64) error {
	plansByID := make(map[int]*model.CoveragePlan, len(s.plans))
	for i := range s.plans {
		plansByID[s.plans[i].PlanID] = &s.plans[i]
	}

	var active []*model.Policy
	for i := range s.policies {
		if s.policies[i].Status == "Active" {
			active = append(active, &s.policies[i])
		}
	}
	n := sampleSize(len(active), percent)
	changed := 0
	for _, i := range s.rng.Perm(len(active))[:n] {
		p := active[i]
		plan := plansByID[p.PlanID]

		switch s.rng.Intn(3) {
		case 0: // payment frequency
			frequencies := []string{"Monthly", "Quarterly", "Annually"}
			p.PremiumFrequency = frequencies[s.rng.Intn(len(frequencies))]
		case 1: // excess, where the plan offers options
			if plan != nil && len(plan.ExcessOptions) > 0 {
				p.ExcessAmount = plan.ExcessOptions[s.rng.Intn(len(plan.ExcessOptions))]
				p.CurrentPremium = datagen.CalculatePremium(plan, p.CoverageType, p.ExcessAmount)
			}
		default: // suspension
			p.Status = "Suspended"
		}

		_, err := db.Exec(ctx, s.conn,
			`UPDATE Insurance.Policies
			 SET PremiumFrequency = @p1, ExcessAmount = @p2, CurrentPremium = @p3,
			     Status = @p4, LastModified = GETDATE()
			 WHERE PolicyID = @p5`,
			simDate, p.PremiumFrequency, p.ExcessAmount, p.CurrentPremium, p.Status, p.PolicyID)
		if err != nil {
			return fmt.Errorf("changing policy %d: %w", p.PolicyID, err)
		}
		changed++
	}
	log.Info("Processed policy changes", "count", changed)
	return nil
}

// GenerateHospitalClaims inserts count hospital claims dated around simDate.
func (s *Simulation) GenerateHospitalClaims(ctx context.Context, simDate time.Time, count int) error {
	claims := s.gen.HospitalClaims(s.policies, s.providers, count, simDate)
	return s.insertClaims(ctx, claims, simDate, "hospital")
}

// GenerateGeneralClaims inserts count extras claims dated around simDate.
func (s *Simulation) GenerateGeneralClaims(ctx context.Context, simDate time.Time, count int) error {
	claims := s.gen.GeneralClaims(s.policies, s.providers, count, simDate)
	return s.insertClaims(ctx, claims, simDate, "general")
}

func (s *Simulation) insertClaims(ctx context.Context, claims []model.Claim, simDate time.Time, kind string) error {
	if len(claims) == 0 {
		return nil
	}
	rows := make([]db.Row, len(claims))
	for i := range claims {
		rows[i] = claims[i].Row()
	}
	n, err := db.BulkInsert(ctx, s.conn, "Insurance.Claims", rows, simDate)
	if err != nil {
		return fmt.Errorf("inserting %s claims: %w", kind, err)
	}
	log.Info("Generated claims", "kind", kind, "count", n, "date", simDate.Format("2006-01-02"))
	return nil
}

// ProcessPremiumPayments collects premiums on every active policy whose
// next due date has arrived, then rolls those policies forward.
func (s *Simulation) ProcessPremiumPayments(ctx context.Context, simDate time.Time) error {
	payments := s.gen.PremiumPayments(s.policies, simDate)
	if len(payments) == 0 {
		return nil
	}

	rows := make([]db.Row, len(payments))
	for i := range payments {
		rows[i] = payments[i].Row()
	}
	if _, err := db.BulkInsert(ctx, s.conn, "Insurance.PremiumPayments", rows, simDate); err != nil {
		return fmt.Errorf("inserting premium payments: %w", err)
	}

	paid := make(map[int]bool, len(payments))
	for _, p := range payments {
		paid[p.PolicyID] = true
	}
	for i := range s.policies {
		p := &s.policies[i]
		if !paid[p.PolicyID] {
			continue
		}
		_, err := db.Exec(ctx, s.conn,
			`UPDATE Insurance.Policies
			 SET LastPremiumPaidDate = @p1, NextPremiumDueDate = @p2, LastModified = GETDATE()
			 WHERE PolicyID = @p3`,
			simDate, p.LastPremiumPaidDate, p.NextPremiumDueDate, p.PolicyID)
		if err != nil {
			return fmt.Errorf("rolling policy %d forward: %w", p.PolicyID, err)
		}
	}
	log.Info("Processed premium payments", "count", len(payments), "date", simDate.Format("2006-01-02"))
	return nil
}

// ProcessClaimAssessments moves roughly percent of submitted claims through
// assessment. Most settle as paid, some sit approved awaiting payment, and
// a small share is rejected with a reason.
func (s *Simulation) ProcessClaimAssessments(ctx context.Context, simDate time.Time, percent float64) error {
	rows, err := db.QueryMaps(ctx, s.conn,
		"SELECT ClaimID FROM Insurance.Claims WHERE Status = 'Submitted'")
	if err != nil {
		return fmt.Errorf("loading submitted claims: %w", err)
	}
	ids := make([]int, 0, len(rows))
	for _, r := range rows {
		ids = append(ids, asInt(r["ClaimID"]))
	}

	n := sampleSize(len(ids), percent)
	assessed := 0
	for _, i := range s.rng.Perm(len(ids))[:n] {
		id := ids[i]
		var query string
		var args []any
		switch r := s.rng.Float64(); {
		case r < 0.7: // paid
			query = `UPDATE Insurance.Claims
			         SET Status = 'Paid', ProcessedDate = @p1, PaymentDate = @p2, LastModified = GETDATE()
			         WHERE ClaimID = @p3`
			args = []any{simDate, simDate, id}
		case r < 0.9: // approved, payment pending
			query = `UPDATE Insurance.Claims
			         SET Status = 'Approved', ProcessedDate = @p1, LastModified = GETDATE()
			         WHERE ClaimID = @p2`
			args = []any{simDate, id}
		default: // rejected
			query = `UPDATE Insurance.Claims
			         SET Status = 'Rejected', ProcessedDate = @p1, RejectionReason = @p2,
			             InsuranceAmount = 0, LastModified = GETDATE()
			         WHERE ClaimID = @p3`
			args = []any{simDate, s.gen.RejectionReason(), id}
		}
		if _, err := db.Exec(ctx, s.conn, query, simDate, args...); err != nil {
			return fmt.Errorf("assessing claim %d: %w", id, err)
		}
		assessed++
	}
	log.Info("Assessed claims", "count", assessed, "date", simDate.Format("2006-01-02"))
	return nil
}

// RunDaily executes one simulated day in the fixed business order:
// reference growth first, then churn, then claims and money movement.
func (s *Simulation) RunDaily(ctx context.Context, simDate time.Time, p DailyParams) error {
	log.Info("Simulating day", "date", simDate.Format("2006-01-02"))

	if err := s.LoadFromDB(ctx); err != nil {
		return err
	}

	if p.AddNewMembers && p.NewMembersCount > 0 {
		if err := s.AddMembers(ctx, simDate, p.NewMembersCount); err != nil {
			return err
		}
	}
	if p.AddNewPlans && p.NewPlansCount > 0 {
		if err := s.AddPlans(ctx, simDate, p.NewPlansCount); err != nil {
			return err
		}
		if err := s.LoadFromDB(ctx); err != nil {
			return err
		}
	}
	if p.AddNewProviders && p.NewProvidersCount > 0 {
		if err := s.AddProviders(ctx, simDate, p.NewProvidersCount); err != nil {
			return err
		}
	}
	if p.CreateNewPolicies && p.NewPoliciesCount > 0 {
		if err := s.CreatePolicies(ctx, simDate, p.NewPoliciesCount); err != nil {
			return err
		}
	}
	if p.UpdateMembers {
		if err := s.UpdateMembers(ctx, simDate, p.MemberUpdatePercent); err != nil {
			return err
		}
	}
	if p.UpdateProviders {
		if err := s.UpdateProviders(ctx, simDate, p.ProviderUpdatePercent); err != nil {
			return err
		}
	}
	if p.EndProviderAgreements {
		if err := s.EndProviderAgreements(ctx, simDate, p.AgreementEndPercent); err != nil {
			return err
		}
	}
	if p.ProcessPolicyChanges {
		if err := s.ProcessPolicyChanges(ctx, simDate, p.PolicyChangePercent); err != nil {
			return err
		}
	}
	if p.GenerateHospitalClaims && p.HospitalClaimsCount > 0 {
		if err := s.GenerateHospitalClaims(ctx, simDate, p.HospitalClaimsCount); err != nil {
			return err
		}
	}
	if p.GenerateGeneralClaims && p.GeneralClaimsCount > 0 {
		if err := s.GenerateGeneralClaims(ctx, simDate, p.GeneralClaimsCount); err != nil {
			return err
		}
	}
	if p.ProcessPremiumPayments {
		if err := s.ProcessPremiumPayments(ctx, simDate); err != nil {
			return err
		}
	}
	if p.ProcessClaims {
		if err := s.ProcessClaimAssessments(ctx, simDate, p.ClaimProcessPercent); err != nil {
			return err
		}
	}

	if s.tracker != nil {
		if err := s.tracker.Save(); err != nil {
			log.Warn("Could not persist member tracker", "error", err)
		}
	}

	log.Info("Day complete", "date", simDate.Format("2006-01-02"))
	return nil
}

// RunHistorical replays activity from start to end inclusive. frequency is
// daily, weekly or monthly; each simulated day gets a randomised activity
// mix so the history does not look machine-stamped.
func (s *Simulation) RunHistorical(ctx context.Context, start, end time.Time, frequency string) error {
	step := func(t time.Time) time.Time { return t.AddDate(0, 0, 1) }
	switch frequency {
	case "daily", "":
	case "weekly":
		step = func(t time.Time) time.Time { return t.AddDate(0, 0, 7) }
	case "monthly":
		step = func(t time.Time) time.Time { return t.AddDate(0, 1, 0) }
	default:
		return fmt.Errorf("unknown frequency %q (want daily, weekly or monthly)", frequency)
	}

	days := 0
	for day := start; !day.After(end); day = step(day) {
		if err := s.RunDaily(ctx, day, HistoricalParams(s.rng)); err != nil {
			return fmt.Errorf("simulating %s: %w", day.Format("2006-01-02"), err)
		}
		days++
	}
	log.Info("Historical run complete",
		"from", start.Format("2006-01-02"), "to", end.Format("2006-01-02"), "days", days)
	return nil
}

// RunRealistic replays every day from start to end with volumes derived
// from a single members-per-day figure.
func (s *Simulation) RunRealistic(ctx context.Context, start, end time.Time, baseMembersPerDay int) error {
	days := 0
	for day := start; !day.After(end); day = day.AddDate(0, 0, 1) {
		if err := s.RunDaily(ctx, day, RealisticParams(s.rng, baseMembersPerDay, day)); err != nil {
			return fmt.Errorf("simulating %s: %w", day.Format("2006-01-02"), err)
		}
		days++
	}
	log.Info("Realistic run complete",
		"from", start.Format("2006-01-02"), "to", end.Format("2006-01-02"), "days", days)
	return nil
}

func (s *Simulation) scalarInt(ctx context.Context, query string) (int, error) {
	var n int
	if err := s.conn.QueryRowContext(ctx, query).Scan(&n); err != nil {
		return 0, err
	}
	return n, nil
}

// sampleSize converts a percentage into a count, never exceeding total and
// never returning zero while there is anything to sample and percent > 0.
func sampleSize(total int, percent float64) int {
	if total == 0 || percent <= 0 {
		return 0
	}
	n := int(float64(total) * percent / 100.0)
	if n < 1 {
		n = 1
	}
	if n > total {
		n = total
	}
	return n
}

func nullableDate(t time.Time) any {
	if t.IsZero() {
		return nil
	}
	return t
}
