package compare

import (
	"encoding/json"
	"fmt"

	"legalens-backend/internal/analysis"
)

const comparisonSchemaDescription = `{
  "executiveSummary": "2-3 sentence comparison overview",
  "similarity": "High|Medium|Low",
  "differences": [{"aspect": "...", "document1": "how document 1 handles it", "document2": "how document 2 handles it", "significance": "why it matters"}],
  "similarities": [{"aspect": "...", "description": "..."}],
  "riskComparison": {"document1Risks": [{"level": "High|Medium|Low", "description": "...", "recommendation": "..."}], "document2Risks": [{"level": "High|Medium|Low", "description": "...", "recommendation": "..."}], "sharedConcerns": ["..."]},
  "termFavorability": [{"aspect": "...", "favors": "document1|document2|neutral", "reason": "..."}],
  "recommendations": [{"priority": "High|Medium|Low", "action": "..."}],
  "negotiationPoints": ["..."]
}`

func buildComparisonPrompt(name1 string, a1 analysis.Result, name2 string, a2 analysis.Result) string {
	doc1, _ := json.Marshal(a1)
	doc2, _ := json.Marshal(a2)

	return fmt.Sprintf(`You are a legal analyst comparing two documents for a non-lawyer reader.

Document 1 (%s) analysis:
%s

Document 2 (%s) analysis:
%s

Compare the two documents. Respond with ONLY a JSON object matching this exact structure, with no other text:

%s

Risk levels and similarity must be exactly one of High, Medium, Low.`,
		name1, doc1, name2, doc2, comparisonSchemaDescription)
}
