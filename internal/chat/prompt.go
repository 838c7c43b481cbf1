package chat

import (
	"fmt"
	"strings"

	"legalens-backend/internal/shared/util"
)

const (
	historyWindow    = 5
	documentTextCap  = 2000
	generalAssistant = `You are a legal assistant helping non-lawyers understand contracts and legal documents. Answer the question clearly and concisely in plain language. Do not give formal legal advice; suggest consulting a lawyer for binding decisions.`
)

// buildPrompt assembles the per-turn prompt, grounded in the document
// context when one is supplied.
func buildPrompt(question string, history []Message, docCtx *DocumentContext) string {
	var b strings.Builder

	if docCtx != nil {
		b.WriteString("You are a legal assistant answering questions about a specific document.\n\n")
		b.WriteString(fmt.Sprintf("Document: %s\n", docCtx.FileName))
		b.WriteString(fmt.Sprintf("Document type: %s\n", docCtx.Analysis.DocumentType))
		b.WriteString(fmt.Sprintf("Summary: %s\n", docCtx.Analysis.Summary))

		if len(docCtx.Analysis.KeyPoints) > 0 {
			b.WriteString("Key points:\n")
			for _, p := range docCtx.Analysis.KeyPoints {
				b.WriteString("- " + p + "\n")
			}
		}
		if len(docCtx.Analysis.Risks) > 0 {
			b.WriteString("Identified risks:\n")
			for _, r := range docCtx.Analysis.Risks {
				b.WriteString(fmt.Sprintf("- [%s] %s\n", r.Level, r.Description))
			}
		}
		if len(docCtx.Analysis.Obligations) > 0 {
			b.WriteString("Obligations:\n")
			for _, o := range docCtx.Analysis.Obligations {
				line := fmt.Sprintf("- %s: %s", o.Party, o.Description)
				if o.Deadline != "" {
					line += " (deadline: " + o.Deadline + ")"
				}
				b.WriteString(line + "\n")
			}
		}
		if len(docCtx.Analysis.Deadlines) > 0 {
			b.WriteString("Deadlines:\n")
			for _, d := range docCtx.Analysis.Deadlines {
				line := "- " + d.Description
				if d.Date != "" {
					line += " (" + d.Date + ")"
				}
				b.WriteString(line + "\n")
			}
		}

		if text := docCtx.DocumentText; text != "" {
			text = util.Truncate(text, documentTextCap)
			b.WriteString("\nDocument text (may be truncated):\n")
			b.WriteString(text)
			b.WriteString("\n")
		}
		b.WriteString("\nAnswer in plain language. Do not give formal legal advice.\n")
	} else {
		b.WriteString(generalAssistant)
		b.WriteString("\n")
	}

	if turns := lastTurns(history, historyWindow); len(turns) > 0 {
		b.WriteString("\nConversation so far:\n")
		for _, m := range turns {
			b.WriteString(fmt.Sprintf("%s: %s\n", m.Role, m.Content))
		}
	}

	b.WriteString("\nQuestion: " + question + "\n")
	return b.String()
}

func lastTurns(history []Message, n int) []Message {
	if len(history) <= n {
		return history
	}
	return history[len(history)-n:]
}
