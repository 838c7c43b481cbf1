package analysis

// RiskLevel is the severity of an identified contractual risk.
type RiskLevel string

const (
	RiskHigh   RiskLevel = "High"
	RiskMedium RiskLevel = "Medium"
	RiskLow    RiskLevel = "Low"
)

// NormalizeRiskLevel coerces free-text model output into the three-value set.
// Anything unrecognized lands on Medium.
func NormalizeRiskLevel(raw string) RiskLevel {
	switch raw {
	case "High", "high", "HIGH":
		return RiskHigh
	case "Low", "low", "LOW":
		return RiskLow
	case "Medium", "medium", "MEDIUM":
		return RiskMedium
	default:
		return RiskMedium
	}
}

// Risk is a single identified contractual risk.
type Risk struct {
	Level          RiskLevel `json:"level"`
	Description    string    `json:"description"`
	Recommendation string    `json:"recommendation"`
}

// Obligation is a duty one party owes under the document.
type Obligation struct {
	Party       string `json:"party"`
	Description string `json:"description"`
	Deadline    string `json:"deadline,omitempty"`
}

// Clause is a notable contractual clause.
type Clause struct {
	Title      string `json:"title"`
	Content    string `json:"content"`
	Importance string `json:"importance"`
}

// Deadline is a dated obligation or cutoff found in the document.
type Deadline struct {
	Description string `json:"description"`
	Date        string `json:"date,omitempty"`
	Consequence string `json:"consequence"`
}

// Result is the structured analysis produced for one document. All slices
// are always non-nil so downstream persistence and JSON rendering get a
// well-formed shape on every path.
type Result struct {
	Summary      string       `json:"summary"`
	DocumentType string       `json:"documentType"`
	KeyPoints    []string     `json:"keyPoints"`
	Risks        []Risk       `json:"risks"`
	Obligations  []Obligation `json:"obligations"`
	Clauses      []Clause     `json:"clauses"`
	Deadlines    []Deadline   `json:"deadlines"`
}

func (r *Result) ensureShape() {
	if r.KeyPoints == nil {
		r.KeyPoints = []string{}
	}
	if r.Risks == nil {
		r.Risks = []Risk{}
	}
	if r.Obligations == nil {
		r.Obligations = []Obligation{}
	}
	if r.Clauses == nil {
		r.Clauses = []Clause{}
	}
	if r.Deadlines == nil {
		r.Deadlines = []Deadline{}
	}
	for i := range r.Risks {
		r.Risks[i].Level = NormalizeRiskLevel(string(r.Risks[i].Level))
	}
}

// isEmpty reports whether a structurally valid result carries no signal.
func (r *Result) isEmpty() bool {
	return r.Summary == "" &&
		len(r.KeyPoints) == 0 &&
		len(r.Risks) == 0 &&
		len(r.Obligations) == 0 &&
		len(r.Clauses) == 0 &&
		len(r.Deadlines) == 0
}

// OverallRiskLevel derives a single risk bucket from the highest-severity
// entry: High beats Medium beats Low; no risks defaults to Low.
func OverallRiskLevel(risks []Risk) RiskLevel {
	level := RiskLow
	for _, r := range risks {
		switch NormalizeRiskLevel(string(r.Level)) {
		case RiskHigh:
			return RiskHigh
		case RiskMedium:
			level = RiskMedium
		}
	}
	return level
}
