package analysis

import (
	"fmt"
	"path/filepath"
	"strings"

	"legalens-backend/internal/shared/util"
)

const fallbackExcerptLen = 500

// newParseFallback builds a best-effort result from a reply that was not
// valid JSON. The raw excerpt becomes the summary so the user still sees
// what the model said.
func newParseFallback(raw string) Result {
	summary := strings.TrimSpace(raw)
	if len(summary) > fallbackExcerptLen {
		summary = util.Truncate(summary, fallbackExcerptLen) + "..."
	}
	if summary == "" {
		summary = "The analysis service returned an unreadable reply for this document."
	}
	r := Result{
		Summary:      summary,
		DocumentType: "Legal Document",
		KeyPoints:    []string{"Automated structuring of the analysis failed; the raw model reply is shown as the summary."},
		Risks: []Risk{{
			Level:          RiskMedium,
			Description:    "The automated analysis could not be fully structured for this document.",
			Recommendation: "Review the document manually or retry the analysis.",
		}},
	}
	r.ensureShape()
	return r
}

// newEmptyResultFallback covers replies that parsed but carried no signal.
func newEmptyResultFallback(fileName string) Result {
	r := Result{
		Summary:      fmt.Sprintf("The analysis of %s completed but produced no findings.", displayName(fileName)),
		DocumentType: "Legal Document",
		Risks: []Risk{{
			Level:          RiskMedium,
			Description:    "The automated analysis returned an empty result.",
			Recommendation: "Review the document manually or retry the analysis.",
		}},
	}
	r.ensureShape()
	return r
}

// newUnavailableFallback builds a minimal result when the model could not be
// invoked at all. Derived only from word count and file name.
func newUnavailableFallback(documentText, fileName string) Result {
	words := len(strings.Fields(documentText))
	r := Result{
		Summary: fmt.Sprintf("This document (%s, approximately %d words) was uploaded successfully, but AI analysis is currently unavailable.",
			displayName(fileName), words),
		DocumentType: "Legal Document",
		KeyPoints:    []string{"Document stored; analysis pending service availability."},
		Risks: []Risk{{
			Level:          RiskLow,
			Description:    "AI analysis was unavailable for this document.",
			Recommendation: "Retry the analysis once the service is reachable.",
		}},
	}
	r.ensureShape()
	return r
}

func displayName(fileName string) string {
	name := strings.TrimSpace(filepath.Base(fileName))
	if name == "" || name == "." {
		return "document"
	}
	return name
}
