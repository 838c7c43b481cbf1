package chat

import "legalens-backend/internal/analysis"

// Message is one prior turn of the conversation.
type Message struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// DocumentContext grounds a reply in a previously analyzed document.
type DocumentContext struct {
	FileName     string
	DocumentText string
	Analysis     analysis.Result
}

// Reply is the assistant's answer for one question.
type Reply struct {
	Answer   string `json:"answer"`
	Fallback bool   `json:"fallback"`
}
