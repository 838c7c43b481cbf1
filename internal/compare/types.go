package compare

import (
	"time"

	"legalens-backend/internal/analysis"
)

// Difference is one contrasted aspect between the two documents.
type Difference struct {
	Aspect       string `json:"aspect"`
	Document1    string `json:"document1"`
	Document2    string `json:"document2"`
	Significance string `json:"significance"`
}

// Similarity is one aspect the two documents share.
type Similarity struct {
	Aspect      string `json:"aspect"`
	Description string `json:"description"`
}

// RiskComparison buckets each document's risks side by side.
type RiskComparison struct {
	Document1Risks []analysis.Risk `json:"document1Risks"`
	Document2Risks []analysis.Risk `json:"document2Risks"`
	SharedConcerns []string        `json:"sharedConcerns"`
}

// TermFavorability rates which document's terms are better for the reader.
type TermFavorability struct {
	Aspect string `json:"aspect"`
	Favors string `json:"favors"`
	Reason string `json:"reason"`
}

// Recommendation is a prioritized action for the reader.
type Recommendation struct {
	Priority string `json:"priority"`
	Action   string `json:"action"`
}

// Metadata identifies the compared documents. It is attached to every
// result whether or not the model call succeeded.
type Metadata struct {
	Document1Name string    `json:"document1Name"`
	Document2Name string    `json:"document2Name"`
	Document1Type string    `json:"document1Type"`
	Document2Type string    `json:"document2Type"`
	ComparedAt    time.Time `json:"comparedAt"`
}

// Result is the comparison output. Computed per request, never persisted.
type Result struct {
	ExecutiveSummary  string             `json:"executiveSummary"`
	Similarity        string             `json:"similarity"`
	Differences       []Difference       `json:"differences"`
	Similarities      []Similarity       `json:"similarities"`
	RiskComparison    RiskComparison     `json:"riskComparison"`
	TermFavorability  []TermFavorability `json:"termFavorability"`
	Recommendations   []Recommendation   `json:"recommendations"`
	NegotiationPoints []string           `json:"negotiationPoints"`
	Metadata          Metadata           `json:"metadata"`
}

func (r *Result) ensureShape() {
	if r.Similarity != "High" && r.Similarity != "Medium" && r.Similarity != "Low" {
		r.Similarity = "Medium"
	}
	if r.Differences == nil {
		r.Differences = []Difference{}
	}
	if r.Similarities == nil {
		r.Similarities = []Similarity{}
	}
	if r.RiskComparison.Document1Risks == nil {
		r.RiskComparison.Document1Risks = []analysis.Risk{}
	}
	if r.RiskComparison.Document2Risks == nil {
		r.RiskComparison.Document2Risks = []analysis.Risk{}
	}
	if r.RiskComparison.SharedConcerns == nil {
		r.RiskComparison.SharedConcerns = []string{}
	}
	if r.TermFavorability == nil {
		r.TermFavorability = []TermFavorability{}
	}
	if r.Recommendations == nil {
		r.Recommendations = []Recommendation{}
	}
	if r.NegotiationPoints == nil {
		r.NegotiationPoints = []string{}
	}
}
