package datagen

// Australian states and territories.
var states = []string{"NSW", "VIC", "QLD", "WA", "SA", "TAS", "ACT", "NT"}

// cityInfo ties a city to its state and a plausible postcode range.
type cityInfo struct {
	name              string
	state             string
	postLow, postHigh int
}

var cities = []cityInfo{
	{"Sydney", "NSW", 2000, 2250},
	{"Newcastle", "NSW", 2280, 2310},
	{"Wollongong", "NSW", 2500, 2530},
	{"Wagga Wagga", "NSW", 2650, 2680},
	{"Coffs Harbour", "NSW", 2450, 2456},
	{"Port Macquarie", "NSW", 2444, 2446},
	{"Albury", "NSW", 2640, 2641},
	{"Orange", "NSW", 2800, 2800},
	{"Dubbo", "NSW", 2830, 2830},
	{"Melbourne", "VIC", 3000, 3210},
	{"Geelong", "VIC", 3214, 3220},
	{"Ballarat", "VIC", 3350, 3356},
	{"Bendigo", "VIC", 3550, 3556},
	{"Shepparton", "VIC", 3630, 3632},
	{"Mildura", "VIC", 3500, 3502},
	{"Warrnambool", "VIC", 3280, 3280},
	{"Wodonga", "VIC", 3690, 3691},
	{"Brisbane", "QLD", 4000, 4180},
	{"Gold Coast", "QLD", 4207, 4230},
	{"Townsville", "QLD", 4810, 4818},
	{"Cairns", "QLD", 4868, 4879},
	{"Toowoomba", "QLD", 4350, 4352},
	{"Mackay", "QLD", 4740, 4741},
	{"Rockhampton", "QLD", 4700, 4701},
	{"Bundaberg", "QLD", 4670, 4670},
	{"Hervey Bay", "QLD", 4655, 4655},
	{"Gladstone", "QLD", 4680, 4680},
	{"Perth", "WA", 6000, 6170},
	{"Bunbury", "WA", 6230, 6233},
	{"Geraldton", "WA", 6530, 6532},
	{"Adelaide", "SA", 5000, 5120},
	{"Hobart", "TAS", 7000, 7054},
	{"Launceston", "TAS", 7248, 7250},
	{"Canberra", "ACT", 2600, 2617},
	{"Darwin", "NT", 800, 832},
}

// Claim types handled by the extras side of the book.
var generalClaimTypes = []string{
	"Dental", "Optical", "Physiotherapy", "Chiropractic", "Psychology",
	"Podiatry", "Acupuncture", "Naturopathy", "Remedial Massage", "Ambulance",
}

var coverageTypes = []string{"Single", "Couple", "Family", "Single Parent"}
var coverageTypeWeights = []float64{0.4, 0.3, 0.2, 0.1}

var paymentFrequencies = []string{"Monthly", "Quarterly", "Annually"}
var paymentFrequencyWeights = []float64{0.7, 0.2, 0.1}

var paymentMethods = []string{"Direct Debit", "Credit Card", "BPAY", "PayPal"}
var paymentMethodWeights = []float64{0.6, 0.3, 0.08, 0.02}

var phiRebateTiers = []string{"Base", "Tier1", "Tier2", "Tier3"}

// Rebate percentages for under-65 members per 2023-24 tiers.
var rebateByTier = map[string]float64{
	"Base":  24.608,
	"Tier1": 16.405,
	"Tier2": 8.202,
	"Tier3": 0,
}

var defaultWaitingPeriods = map[string]int{
	"general":        2,
	"pre_existing":   12,
	"pregnancy":      12,
	"psychiatric":    2,
	"rehabilitation": 2,
}

// mbsItem is a Medicare Benefits Schedule line used for hospital claims.
type mbsItem struct {
	Number      string
	Description string
	Fee         float64
}

var hospitalMBSItems = []mbsItem{
	{"30390", "Appendicectomy", 445.40},
	{"49318", "Knee arthroscopy", 379.75},
	{"49569", "Knee replacement", 1317.80},
	{"39000", "Brain tumor removal", 1586.75},
	{"30535", "Hernia repair", 464.50},
	{"47516", "Fracture treatment", 385.50},
	{"41789", "Tonsillectomy", 295.70},
	{"30571", "Cholecystectomy", 741.90},
	{"16520", "Caesarean section", 693.95},
	{"30473", "Breast biopsy", 260.05},
}

type serviceItem struct {
	Description string
	Fee         float64
}

var generalTreatmentServices = map[string][]serviceItem{
	"Dental": {
		{"Dental checkup and clean", 120.00},
		{"Dental filling", 150.00},
		{"Root canal treatment", 350.00},
		{"Tooth extraction", 180.00},
		{"Dental crown", 1200.00},
	},
	"Optical": {
		{"Eye examination", 80.00},
		{"Single vision glasses", 250.00},
		{"Multifocal glasses", 450.00},
		{"Contact lenses", 200.00},
	},
	"Physiotherapy": {
		{"Initial physiotherapy consultation", 90.00},
		{"Follow-up physiotherapy session", 75.00},
		{"Extended physiotherapy treatment", 120.00},
	},
	"Chiropractic": {
		{"Initial chiropractic consultation", 85.00},
		{"Chiropractic adjustment", 65.00},
		{"Spinal assessment", 95.00},
	},
	"Psychology": {
		{"Initial psychology consultation", 180.00},
		{"Psychology session", 150.00},
		{"Extended psychology session", 220.00},
	},
	"Podiatry": {
		{"Podiatry consultation", 85.00},
		{"Custom orthotics", 350.00},
		{"Nail surgery", 250.00},
	},
	"Acupuncture": {
		{"Acupuncture session", 75.00},
		{"Extended acupuncture treatment", 95.00},
	},
	"Naturopathy": {
		{"Naturopathy consultation", 90.00},
		{"Follow-up naturopathy session", 70.00},
	},
	"Remedial Massage": {
		{"30-minute massage", 60.00},
		{"60-minute massage", 90.00},
		{"90-minute massage", 130.00},
	},
	"Ambulance": {
		{"Emergency ambulance service", 425.00},
		{"Non-emergency ambulance transport", 250.00},
	},
}

var rejectionReasons = []string{
	"Service not covered by policy",
	"Annual limit reached",
	"Waiting period not served",
	"Insufficient documentation",
	"Duplicate claim",
}

// Plan templates modelled on published Australian PHI products.
type hospitalPlanTemplate struct {
	Name        string
	Tier        string
	BasePremium float64
}

var hospitalPlanTemplates = []hospitalPlanTemplate{
	{"Basic Hospital", "Basic", 90.0},
	{"Bronze Hospital", "Bronze", 120.0},
	{"Bronze Plus Hospital", "Bronze", 140.0},
	{"Silver Hospital", "Silver", 160.0},
	{"Silver Plus Hospital", "Silver", 180.0},
	{"Gold Hospital", "Gold", 220.0},
}

type extrasPlanTemplate struct {
	Name        string
	BasePremium float64
	Coverage    map[string]any
}

var extrasPlanTemplates = []extrasPlanTemplate{
	{
		Name:        "Basic Extras",
		BasePremium: 30.0,
		Coverage: map[string]any{
			"dental":  map[string]any{"annual_limit": 500, "preventative": "60%", "general": "50%"},
			"optical": map[string]any{"annual_limit": 200},
			"physio":  map[string]any{"annual_limit": 300, "per_visit": "$40"},
		},
	},
	{
		Name:        "Mid Extras",
		BasePremium: 45.0,
		Coverage: map[string]any{
			"dental":           map[string]any{"annual_limit": 800, "preventative": "70%", "general": "60%"},
			"optical":          map[string]any{"annual_limit": 300},
			"physio":           map[string]any{"annual_limit": 450, "per_visit": "$50"},
			"chiro":            map[string]any{"annual_limit": 350, "per_visit": "$40"},
			"remedial_massage": map[string]any{"annual_limit": 300, "per_visit": "$35"},
		},
	},
	{
		Name:        "Top Extras",
		BasePremium: 65.0,
		Coverage: map[string]any{
			"dental":           map[string]any{"annual_limit": 1200, "preventative": "80%", "general": "70%", "major": "60%"},
			"optical":          map[string]any{"annual_limit": 400},
			"physio":           map[string]any{"annual_limit": 700, "per_visit": "$60"},
			"chiro":            map[string]any{"annual_limit": 500, "per_visit": "$50"},
			"podiatry":         map[string]any{"annual_limit": 400, "per_visit": "$45"},
			"psychology":       map[string]any{"annual_limit": 500, "per_visit": "$80"},
			"remedial_massage": map[string]any{"annual_limit": 400, "per_visit": "$45"},
			"acupuncture":      map[string]any{"annual_limit": 300, "per_visit": "$40"},
		},
	},
}

type combinedPlanTemplate struct {
	Name            string
	HospitalTier    string
	BasePremium     float64
	HospitalPart    string
	ExtrasComponent string
}

var combinedPlanTemplates = []combinedPlanTemplate{
	{"Basic Bundle", "Basic", 110.0, "Basic Hospital", "Basic Extras"},
	{"Bronze Bundle", "Bronze", 150.0, "Bronze Hospital", "Mid Extras"},
	{"Silver Bundle", "Silver", 200.0, "Silver Hospital", "Mid Extras"},
	{"Gold Bundle", "Gold", 270.0, "Gold Hospital", "Top Extras"},
}

// Hospital tier service listings per the PHI reform categories.
var tierServices = map[string]struct {
	Included   []string
	Restricted []string
	Excluded   []string
}{
	"Basic": {
		Included:   []string{"Accidents", "Ambulance"},
		Restricted: []string{"Rehabilitation", "Psychiatric services"},
		Excluded:   []string{"Heart and vascular system", "Joint replacements", "Pregnancy and birth"},
	},
	"Bronze": {
		Included:   []string{"Accidents", "Ambulance", "Dental surgery", "Hernia and appendix"},
		Restricted: []string{"Rehabilitation", "Psychiatric services"},
		Excluded:   []string{"Heart and vascular system", "Joint replacements", "Pregnancy and birth"},
	},
	"Silver": {
		Included:   []string{"Accidents", "Ambulance", "Dental surgery", "Hernia and appendix", "Heart and vascular system", "Lung and chest"},
		Restricted: []string{"Rehabilitation", "Psychiatric services", "Pregnancy and birth"},
		Excluded:   []string{"Joint replacements"},
	},
	"Gold": {
		Included: []string{
			"Accidents", "Ambulance", "Dental surgery", "Hernia and appendix",
			"Heart and vascular system", "Lung and chest", "Joint replacements",
			"Pregnancy and birth", "Rehabilitation", "Psychiatric services",
		},
	},
}

// Provider naming material.
var providerTypes = []string{
	"Dentist", "Optometrist", "Physiotherapist", "Chiropractor",
	"Psychologist", "Podiatrist", "Acupuncturist", "Naturopath",
	"Massage Therapist",
}

var specialistFields = []string{
	"Cardiology", "Orthopedic", "Dermatology", "Neurology", "Oncology",
	"Gynecology", "Urology", "ENT", "Ophthalmology",
}

var hospitalNameTemplates = []string{
	"Royal %s Hospital",
	"%s Private Hospital",
	"%s General Hospital",
	"St John's Hospital %s",
	"%s Memorial Hospital",
	"Northern %s Hospital",
	"Southern %s Hospital",
	"%s Community Hospital",
}

// practiceNameTemplates take (city, discipline) or (discipline, city).
var practiceNameTemplates = []struct {
	format    string
	cityFirst bool
}{
	{"%s %s Centre", true},
	{"%s %s Clinic", true},
	{"%s Care %s", false},
	{"%s %s Associates", true},
	{"Central %s %s", true},
	{"%s %s Practice", true},
	{"%s Specialists of %s", false},
	{"%s %s Group", true},
	{"Premier %s %s", false},
	{"Advanced %s %s", false},
}

var streetNames = []string{"Main", "High", "Park", "Church", "Station", "George", "Victoria", "Elizabeth", "King", "Queen"}
var streetSuffixes = []string{"Street", "Road", "Avenue", "Boulevard", "Parade"}
