package chat

import (
	"context"
	"errors"
	"strings"
	"testing"

	"legalens-backend/internal/analysis"
)

type failingLLM struct{}

func (failingLLM) Complete(ctx context.Context, prompt string) (string, error) {
	_ = ctx
	_ = prompt
	return "", errors.New("model unreachable")
}

type echoLLM struct {
	lastPrompt string
	reply      string
}

func (e *echoLLM) Complete(ctx context.Context, prompt string) (string, error) {
	_ = ctx
	e.lastPrompt = prompt
	return e.reply, nil
}

func TestRespondDeadlinesFallbackExact(t *testing.T) {
	svc := NewService(failingLLM{}, nil)

	reply, err := svc.Respond(context.Background(), "user-1", "What are the deadlines?", nil, "")
	if err != nil {
		t.Fatalf("Respond: %v", err)
	}
	if !reply.Fallback {
		t.Fatal("reply should be marked as fallback")
	}
	if reply.Answer != deadlinesHelp {
		t.Fatalf("answer = %q, want the fixed deadlines help string", reply.Answer)
	}
}

func TestRespondMenuFallbackWhenNothingMatches(t *testing.T) {
	svc := NewService(failingLLM{}, nil)

	reply, err := svc.Respond(context.Background(), "user-1", "Tell me a joke", nil, "")
	if err != nil {
		t.Fatalf("Respond: %v", err)
	}
	if reply.Answer != menuHelp {
		t.Fatalf("answer = %q, want the menu help string", reply.Answer)
	}
}

func TestFallbackPriorityOrder(t *testing.T) {
	// "risk" outranks "deadline" in the fixed category order.
	answer := fallbackAnswer("what are the risks and deadlines?", nil)
	if answer != riskHelp {
		t.Fatalf("answer = %q, want the risk help string", answer)
	}
}

func TestFallbackUsesAnalysisWhenAvailable(t *testing.T) {
	docCtx := &DocumentContext{
		FileName: "lease.pdf",
		Analysis: analysis.Result{
			Summary:      "A twelve month lease.",
			DocumentType: "Lease",
			Deadlines: []analysis.Deadline{
				{Description: "Renewal notice", Date: "2026-11-01", Consequence: "Auto-renews"},
			},
		},
	}

	answer := fallbackAnswer("what are the deadlines?", docCtx)
	if !strings.Contains(answer, "Renewal notice") || !strings.Contains(answer, "2026-11-01") {
		t.Fatalf("deadline answer should come from the analysis: %q", answer)
	}

	if got := fallbackAnswer("give me a summary", docCtx); got != "A twelve month lease." {
		t.Fatalf("summary answer = %q", got)
	}
	if got := fallbackAnswer("what type of document is this?", docCtx); !strings.Contains(got, "Lease") {
		t.Fatalf("type answer = %q", got)
	}
}

func TestRespondLimitsHistoryWindow(t *testing.T) {
	llm := &echoLLM{reply: "Sure."}
	svc := NewService(llm, nil)

	history := []Message{
		{Role: "user", Content: "turn-one"},
		{Role: "assistant", Content: "turn-two"},
		{Role: "user", Content: "turn-three"},
		{Role: "assistant", Content: "turn-four"},
		{Role: "user", Content: "turn-five"},
		{Role: "assistant", Content: "turn-six"},
		{Role: "user", Content: "turn-seven"},
	}
	if _, err := svc.Respond(context.Background(), "user-1", "next?", history, ""); err != nil {
		t.Fatalf("Respond: %v", err)
	}

	if strings.Contains(llm.lastPrompt, "turn-one") || strings.Contains(llm.lastPrompt, "turn-two") {
		t.Fatalf("prompt should drop turns beyond the last five:\n%s", llm.lastPrompt)
	}
	for _, kept := range []string{"turn-three", "turn-four", "turn-five", "turn-six", "turn-seven"} {
		if !strings.Contains(llm.lastPrompt, kept) {
			t.Fatalf("prompt missing %s:\n%s", kept, llm.lastPrompt)
		}
	}
}

func TestBuildPromptTruncatesDocumentText(t *testing.T) {
	docCtx := &DocumentContext{
		FileName:     "big.pdf",
		DocumentText: strings.Repeat("x", 5000),
	}
	prompt := buildPrompt("question", nil, docCtx)
	if strings.Contains(prompt, strings.Repeat("x", documentTextCap+1)) {
		t.Fatal("document text should be capped in the prompt")
	}
	if !strings.Contains(prompt, strings.Repeat("x", documentTextCap)) {
		t.Fatal("capped document text should still be present")
	}
}
