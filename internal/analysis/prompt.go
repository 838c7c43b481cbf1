package analysis

import (
	"fmt"
	"strings"
)

const analysisSchemaDescription = `{
  "summary": "2-3 sentence plain-language summary of the document",
  "documentType": "short label, e.g. Lease Agreement, Employment Contract, NDA",
  "keyPoints": ["ordered list of the most important points"],
  "risks": [
    {
      "level": "High | Medium | Low (exactly one of these three values)",
      "description": "what the risk is",
      "recommendation": "what the reader should do about it"
    }
  ],
  "obligations": [
    {
      "party": "who owes the duty",
      "description": "what must be done",
      "deadline": "when, if stated, else empty string"
    }
  ],
  "clauses": [
    {
      "title": "clause name",
      "content": "what the clause says, briefly",
      "importance": "why it matters"
    }
  ],
  "deadlines": [
    {
      "description": "what is due",
      "date": "the date if stated, else empty string",
      "consequence": "what happens if missed"
    }
  ]
}`

// buildAnalysisPrompt embeds the document text and the target JSON schema.
func buildAnalysisPrompt(documentText, fileName string) string {
	var b strings.Builder
	b.WriteString("You are a legal document analyst. Analyze the following legal document")
	if fileName != "" {
		fmt.Fprintf(&b, " (file: %s)", fileName)
	}
	b.WriteString(" and respond with ONLY a JSON object matching this exact schema, no prose before or after:\n\n")
	b.WriteString(analysisSchemaDescription)
	b.WriteString("\n\nRisk levels must be exactly one of: High, Medium, Low.\n")
	b.WriteString("If a field has no content, use an empty string or empty array.\n\nDocument text:\n\"\"\"\n")
	b.WriteString(documentText)
	b.WriteString("\n\"\"\"\n")
	return b.String()
}

// buildImagePrompt asks the model to transcribe a photographed document
// before analysis.
func buildImagePrompt() string {
	return "This image contains a legal document. Transcribe all legible text " +
		"from the image exactly as written. Respond with ONLY the transcribed " +
		"text, no commentary."
}

// StripCodeFences removes a wrapping Markdown code fence (optionally labeled
// json) from a model reply.
func StripCodeFences(raw string) string {
	s := strings.TrimSpace(raw)
	if !strings.HasPrefix(s, "```") {
		return s
	}
	s = strings.TrimPrefix(s, "```")
	if idx := strings.Index(s, "\n"); idx >= 0 {
		first := strings.ToLower(strings.TrimSpace(s[:idx]))
		if first == "json" || first == "" {
			s = s[idx+1:]
		}
	}
	s = strings.TrimSuffix(strings.TrimSpace(s), "```")
	return strings.TrimSpace(s)
}
