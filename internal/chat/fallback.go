package chat

import (
	"fmt"
	"strings"
)

// Canned answers used when the model is unreachable and the question
// matched a category but no document context is available.
const (
	documentTypeHelp = "I can tell you what kind of document you're dealing with once you upload it. Contracts, leases, NDAs, and employment agreements each have their own structure, and the analysis will label yours."
	summaryHelp      = "Upload a document and I'll give you a plain-language summary of what it says and what it commits you to."
	riskHelp         = "Once a document is uploaded I'll flag its risks by severity (High, Medium, Low) with a recommendation for each. Common risks include one-sided termination rights, broad indemnification, and automatic renewals."
	obligationHelp   = "After analyzing a document I can list each party's obligations and who owes what to whom. Without a document, the general rule: look for clauses starting with \"shall\" or \"must\"."
	deadlinesHelp    = "I don't have a document loaded, so I can't point at specific deadlines. Upload a contract and I'll list every deadline it contains, with dates and the consequences of missing them. In general, watch for renewal windows, notice periods, and payment due dates."
	keyPointsHelp    = "Upload a document and I'll pull out its key points so you can review the most important terms first."
	paymentHelp      = "I can't see payment terms without a document. When reviewing one yourself, check the amount, due dates, late fees, and whether payment obligations survive termination."
	terminationHelp  = "Termination clauses control how and when an agreement can end. Upload your document and I'll point out the notice period, termination-for-convenience rights, and any penalties."
	menuHelp         = "I can help you understand legal documents. Try asking about:\n- What type of document this is\n- A summary of the document\n- Risks and how serious they are\n- Obligations of each party\n- Deadlines and important dates\n- Key points\n- Payment terms\n- Termination conditions\nUpload a document first for answers specific to it."
)

type keywordCategory struct {
	name     string
	keywords []string
	answer   func(docCtx *DocumentContext) string
}

// Categories are scanned in fixed priority order; the first match wins.
var keywordCategories = []keywordCategory{
	{
		name:     "document-type",
		keywords: []string{"type of document", "document type", "kind of document", "what is this document"},
		answer: func(docCtx *DocumentContext) string {
			if docCtx == nil {
				return documentTypeHelp
			}
			return fmt.Sprintf("This document is a %s.", docCtx.Analysis.DocumentType)
		},
	},
	{
		name:     "summary",
		keywords: []string{"summary", "summarize", "summarise", "overview"},
		answer: func(docCtx *DocumentContext) string {
			if docCtx == nil {
				return summaryHelp
			}
			return docCtx.Analysis.Summary
		},
	},
	{
		name:     "risk",
		keywords: []string{"risk", "danger", "concern"},
		answer: func(docCtx *DocumentContext) string {
			if docCtx == nil || len(docCtx.Analysis.Risks) == 0 {
				return riskHelp
			}
			var b strings.Builder
			b.WriteString("Identified risks:\n")
			for _, r := range docCtx.Analysis.Risks {
				b.WriteString(fmt.Sprintf("- [%s] %s", r.Level, r.Description))
				if r.Recommendation != "" {
					b.WriteString(" Recommendation: " + r.Recommendation)
				}
				b.WriteString("\n")
			}
			return strings.TrimRight(b.String(), "\n")
		},
	},
	{
		name:     "obligation",
		keywords: []string{"obligation", "responsibilit", "dut", "required to"},
		answer: func(docCtx *DocumentContext) string {
			if docCtx == nil || len(docCtx.Analysis.Obligations) == 0 {
				return obligationHelp
			}
			var b strings.Builder
			b.WriteString("Obligations in this document:\n")
			for _, o := range docCtx.Analysis.Obligations {
				b.WriteString(fmt.Sprintf("- %s: %s", o.Party, o.Description))
				if o.Deadline != "" {
					b.WriteString(" (deadline: " + o.Deadline + ")")
				}
				b.WriteString("\n")
			}
			return strings.TrimRight(b.String(), "\n")
		},
	},
	{
		name:     "deadline",
		keywords: []string{"deadline", "due date", "expir", "time limit"},
		answer: func(docCtx *DocumentContext) string {
			if docCtx == nil || len(docCtx.Analysis.Deadlines) == 0 {
				return deadlinesHelp
			}
			var b strings.Builder
			b.WriteString("Deadlines in this document:\n")
			for _, d := range docCtx.Analysis.Deadlines {
				b.WriteString("- " + d.Description)
				if d.Date != "" {
					b.WriteString(" (" + d.Date + ")")
				}
				if d.Consequence != "" {
					b.WriteString(" If missed: " + d.Consequence)
				}
				b.WriteString("\n")
			}
			return strings.TrimRight(b.String(), "\n")
		},
	},
	{
		name:     "key-points",
		keywords: []string{"key point", "main point", "important point", "highlight"},
		answer: func(docCtx *DocumentContext) string {
			if docCtx == nil || len(docCtx.Analysis.KeyPoints) == 0 {
				return keyPointsHelp
			}
			var b strings.Builder
			b.WriteString("Key points:\n")
			for _, p := range docCtx.Analysis.KeyPoints {
				b.WriteString("- " + p + "\n")
			}
			return strings.TrimRight(b.String(), "\n")
		},
	},
	{
		name:     "payment",
		keywords: []string{"payment", "pay ", "fee", "cost", "price"},
		answer: func(docCtx *DocumentContext) string {
			if docCtx == nil {
				return paymentHelp
			}
			if answer := matchingClauses(docCtx, "payment", "fee", "price"); answer != "" {
				return answer
			}
			return paymentHelp
		},
	},
	{
		name:     "termination",
		keywords: []string{"terminat", "cancel", "end the agreement", "end the contract"},
		answer: func(docCtx *DocumentContext) string {
			if docCtx == nil {
				return terminationHelp
			}
			if answer := matchingClauses(docCtx, "terminat", "cancel"); answer != "" {
				return answer
			}
			return terminationHelp
		},
	},
}

// fallbackAnswer is the deterministic responder used when the model call
// fails. The question is matched against categories in priority order.
func fallbackAnswer(question string, docCtx *DocumentContext) string {
	lowered := strings.ToLower(question)
	for _, cat := range keywordCategories {
		for _, kw := range cat.keywords {
			if strings.Contains(lowered, kw) {
				return cat.answer(docCtx)
			}
		}
	}
	return menuHelp
}

func matchingClauses(docCtx *DocumentContext, terms ...string) string {
	var b strings.Builder
	for _, cl := range docCtx.Analysis.Clauses {
		lowered := strings.ToLower(cl.Title + " " + cl.Content)
		for _, term := range terms {
			if strings.Contains(lowered, term) {
				b.WriteString(fmt.Sprintf("- %s: %s\n", cl.Title, cl.Content))
				break
			}
		}
	}
	if b.Len() == 0 {
		return ""
	}
	return "Relevant clauses:\n" + strings.TrimRight(b.String(), "\n")
}
