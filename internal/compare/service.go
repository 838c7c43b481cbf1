package compare

import (
	"context"
	"encoding/json"
	"strings"
	"time"

	"legalens-backend/internal/analysis"
	"legalens-backend/internal/documents"
	"legalens-backend/internal/llm"
	"legalens-backend/internal/shared/metrics"
	"legalens-backend/internal/shared/telemetry"
	"legalens-backend/internal/shared/util"
)

const fallbackSummaryLen = 500

// Service compares two of the caller's analyzed documents.
type Service struct {
	LLM  llm.Client
	Docs *documents.Service
}

func NewService(client llm.Client, docs *documents.Service) *Service {
	return &Service{LLM: client, Docs: docs}
}

// Compare loads both documents (owner-scoped) and produces a comparison.
// Model and parse failures degrade to a fallback built from the stored
// analyses; metadata is attached on every path. Compare only errors when
// a referenced document cannot be loaded.
func (s *Service) Compare(ctx context.Context, userID, doc1ID, doc2ID string) (Result, error) {
	doc1, err := s.Docs.Get(ctx, userID, doc1ID)
	if err != nil {
		return Result{}, err
	}
	doc2, err := s.Docs.Get(ctx, userID, doc2ID)
	if err != nil {
		return Result{}, err
	}

	metrics.IncComparison()

	result := s.generate(ctx, doc1, doc2)
	result.Metadata = Metadata{
		Document1Name: doc1.FileName,
		Document2Name: doc2.FileName,
		Document1Type: doc1.DocumentType,
		Document2Type: doc2.DocumentType,
		ComparedAt:    time.Now().UTC(),
	}
	return result, nil
}

func (s *Service) generate(ctx context.Context, doc1, doc2 documents.Document) Result {
	prompt := buildComparisonPrompt(doc1.FileName, doc1.Analysis, doc2.FileName, doc2.Analysis)

	raw, err := s.LLM.Complete(ctx, prompt)
	if err != nil {
		telemetry.Warn("comparison model call failed, using fallback", map[string]any{
			"error": err.Error(),
		})
		return newUnavailableFallback(doc1, doc2)
	}

	var result Result
	cleaned := analysis.StripCodeFences(raw)
	if jsonErr := json.Unmarshal([]byte(cleaned), &result); jsonErr != nil {
		telemetry.Warn("comparison reply was not valid JSON, using fallback", map[string]any{
			"error": jsonErr.Error(),
		})
		return newParseFallback(cleaned, doc1, doc2)
	}

	result.ensureShape()
	return result
}

// newParseFallback keeps a truncated excerpt of the unparseable reply as
// the executive summary and copies each document's stored risks.
func newParseFallback(raw string, doc1, doc2 documents.Document) Result {
	summary := strings.TrimSpace(raw)
	if summary == "" {
		summary = "The comparison could not be structured automatically."
	}
	if len(summary) > fallbackSummaryLen {
		summary = util.Truncate(summary, fallbackSummaryLen) + "..."
	}
	return fallbackResult(summary, doc1, doc2)
}

func newUnavailableFallback(doc1, doc2 documents.Document) Result {
	summary := "Automated comparison was unavailable. The stored risk analyses of both documents are included below for manual review."
	return fallbackResult(summary, doc1, doc2)
}

func fallbackResult(summary string, doc1, doc2 documents.Document) Result {
	result := Result{
		ExecutiveSummary: summary,
		Similarity:       "Medium",
		RiskComparison: RiskComparison{
			Document1Risks: doc1.Analysis.Risks,
			Document2Risks: doc2.Analysis.Risks,
		},
		Recommendations: []Recommendation{
			{Priority: "High", Action: "Review both documents manually; the automated comparison was incomplete."},
		},
		NegotiationPoints: []string{
			"Identify negotiation points by reviewing each document's risks and obligations directly.",
		},
	}
	result.ensureShape()
	return result
}
