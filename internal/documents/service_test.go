package documents

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"legalens-backend/internal/analysis"
	"legalens-backend/internal/shared/storage/object/local"
)

type staticLLM struct {
	reply string
	err   error
}

func (s staticLLM) Complete(ctx context.Context, prompt string) (string, error) {
	_ = ctx
	_ = prompt
	return s.reply, s.err
}

func newTestService(t *testing.T, llmReply string, llmErr error) *Service {
	t.Helper()
	repo, err := NewFileRepo(t.TempDir())
	if err != nil {
		t.Fatalf("NewFileRepo: %v", err)
	}
	return &Service{
		Store:    local.New(t.TempDir()),
		Repo:     repo,
		Analyzer: analysis.NewClient(staticLLM{reply: llmReply, err: llmErr}),
	}
}

const highLowAnalysisReply = `{
  "summary": "A services contract.",
  "documentType": "Contract",
  "keyPoints": ["Net 30 payment terms"],
  "risks": [
    {"level": "High", "description": "Unlimited liability", "recommendation": "Cap liability"},
    {"level": "Low", "description": "Standard venue clause", "recommendation": "None"}
  ],
  "obligations": [],
  "clauses": [],
  "deadlines": [{"description": "Renewal notice", "date": "2026-12-01", "consequence": "Auto-renews"}]
}`

func TestUploadDerivesHighestRiskLevel(t *testing.T) {
	svc := newTestService(t, highLowAnalysisReply, nil)

	doc, err := svc.Upload(context.Background(), "user-1", "contract.txt", strings.NewReader("agreement body"))
	if err != nil {
		t.Fatalf("Upload: %v", err)
	}
	if doc.RiskLevel != analysis.RiskHigh {
		t.Fatalf("riskLevel = %q, want High", doc.RiskLevel)
	}
	if !doc.HasDeadlines {
		t.Fatal("hasDeadlines should be true")
	}
	if doc.ExtractedText != "agreement body" {
		t.Fatalf("extracted text = %q", doc.ExtractedText)
	}
}

func TestUploadSucceedsWhenModelIsDown(t *testing.T) {
	svc := newTestService(t, "", errors.New("model unreachable"))

	doc, err := svc.Upload(context.Background(), "user-1", "contract.txt", strings.NewReader("agreement body"))
	if err != nil {
		t.Fatalf("Upload should absorb model failures, got %v", err)
	}
	if doc.RiskLevel != analysis.RiskLow {
		t.Fatalf("unavailable-fallback riskLevel = %q, want Low", doc.RiskLevel)
	}
}

func TestGetTouchesLastAccessed(t *testing.T) {
	svc := newTestService(t, highLowAnalysisReply, nil)

	doc, err := svc.Upload(context.Background(), "user-1", "contract.txt", strings.NewReader("body"))
	if err != nil {
		t.Fatalf("Upload: %v", err)
	}
	before := doc.LastAccessed

	time.Sleep(5 * time.Millisecond)
	got, err := svc.Get(context.Background(), "user-1", doc.ID)
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if got.LastAccessed.Before(before) {
		t.Fatalf("lastAccessed went backwards: %v -> %v", before, got.LastAccessed)
	}
	if !got.LastAccessed.After(before) {
		t.Fatalf("lastAccessed should advance on read: %v", got.LastAccessed)
	}
}

func TestGetIsOwnerScoped(t *testing.T) {
	svc := newTestService(t, highLowAnalysisReply, nil)

	doc, err := svc.Upload(context.Background(), "user-1", "contract.txt", strings.NewReader("body"))
	if err != nil {
		t.Fatalf("Upload: %v", err)
	}

	_, err = svc.Get(context.Background(), "user-2", doc.ID)
	if !errors.Is(err, ErrNotFound) {
		t.Fatalf("cross-user read should report not found, got %v", err)
	}
}

func TestSearchMatchesSummaryAndTags(t *testing.T) {
	svc := newTestService(t, highLowAnalysisReply, nil)

	if _, err := svc.Upload(context.Background(), "user-1", "contract.txt", strings.NewReader("body")); err != nil {
		t.Fatalf("Upload: %v", err)
	}

	hits, err := svc.Search(context.Background(), "user-1", "SERVICES")
	if err != nil {
		t.Fatalf("Search: %v", err)
	}
	if len(hits) != 1 {
		t.Fatalf("expected summary match, got %d hits", len(hits))
	}

	none, err := svc.Search(context.Background(), "user-1", "zoning permit")
	if err != nil {
		t.Fatalf("Search: %v", err)
	}
	if len(none) != 0 {
		t.Fatalf("expected no hits, got %d", len(none))
	}
}

func TestBulkDeleteSkipsForeignIDs(t *testing.T) {
	svc := newTestService(t, highLowAnalysisReply, nil)

	mine, err := svc.Upload(context.Background(), "user-1", "mine.txt", strings.NewReader("body"))
	if err != nil {
		t.Fatalf("Upload: %v", err)
	}
	theirs, err := svc.Upload(context.Background(), "user-2", "theirs.txt", strings.NewReader("body"))
	if err != nil {
		t.Fatalf("Upload: %v", err)
	}

	deleted, err := svc.BulkDelete(context.Background(), "user-1", []string{mine.ID, theirs.ID, "no-such-id"})
	if err != nil {
		t.Fatalf("BulkDelete: %v", err)
	}
	if deleted != 1 {
		t.Fatalf("deleted = %d, want 1", deleted)
	}

	if _, err := svc.Get(context.Background(), "user-2", theirs.ID); err != nil {
		t.Fatalf("foreign document should survive, got %v", err)
	}
}

func TestStatsAggregates(t *testing.T) {
	svc := newTestService(t, highLowAnalysisReply, nil)

	for _, name := range []string{"a.txt", "b.txt"} {
		if _, err := svc.Upload(context.Background(), "user-1", name, strings.NewReader("body")); err != nil {
			t.Fatalf("Upload %s: %v", name, err)
		}
	}

	stats, err := svc.GetStats(context.Background(), "user-1")
	if err != nil {
		t.Fatalf("GetStats: %v", err)
	}
	if stats.TotalDocuments != 2 {
		t.Fatalf("totalDocuments = %d", stats.TotalDocuments)
	}
	if stats.ByRiskLevel["High"] != 2 {
		t.Fatalf("risk histogram = %+v", stats.ByRiskLevel)
	}
	if stats.ByType["Contract"] != 2 {
		t.Fatalf("type histogram = %+v", stats.ByType)
	}
	if stats.RecentUploads != 2 {
		t.Fatalf("recentUploads = %d", stats.RecentUploads)
	}
}

func TestUploadRejectsUnsupportedContent(t *testing.T) {
	svc := newTestService(t, highLowAnalysisReply, nil)

	// A PNG header is neither PDF, DOCX, nor text.
	payload := "\x89PNG\r\n\x1a\n00000000"
	_, err := svc.Upload(context.Background(), "user-1", "scan.png", strings.NewReader(payload))
	if !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput, got %v", err)
	}
}
