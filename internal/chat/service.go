package chat

import (
	"context"
	"strings"

	"legalens-backend/internal/documents"
	"legalens-backend/internal/llm"
	"legalens-backend/internal/shared/metrics"
	"legalens-backend/internal/shared/telemetry"
)

// Service answers conversational questions, optionally grounded in one of
// the caller's documents.
type Service struct {
	LLM  llm.Client
	Docs *documents.Service
}

func NewService(client llm.Client, docs *documents.Service) *Service {
	return &Service{LLM: client, Docs: docs}
}

// Respond answers one question. When documentID is set the document is
// loaded (owner-scoped) and its analysis grounds the prompt. A failed
// model call degrades to the keyword responder; Respond only errors when
// the referenced document cannot be loaded.
func (s *Service) Respond(ctx context.Context, userID, question string, history []Message, documentID string) (Reply, error) {
	var docCtx *DocumentContext
	if documentID != "" {
		doc, err := s.Docs.Get(ctx, userID, documentID)
		if err != nil {
			return Reply{}, err
		}
		docCtx = &DocumentContext{
			FileName:     doc.FileName,
			DocumentText: doc.ExtractedText,
			Analysis:     doc.Analysis,
		}
	}

	prompt := buildPrompt(question, history, docCtx)
	raw, err := s.LLM.Complete(ctx, prompt)
	if err == nil {
		if answer := strings.TrimSpace(raw); answer != "" {
			return Reply{Answer: answer}, nil
		}
	}

	if err != nil {
		telemetry.Warn("chat model call failed, using keyword responder", map[string]any{
			"error":      err.Error(),
			"documentId": documentID,
		})
	} else {
		telemetry.Warn("chat model returned empty reply, using keyword responder", map[string]any{
			"documentId": documentID,
		})
	}
	metrics.IncChatFallback()

	return Reply{Answer: fallbackAnswer(question, docCtx), Fallback: true}, nil
}
