package analysis

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"legalens-backend/internal/llm"
	"legalens-backend/internal/shared/metrics"
	"legalens-backend/internal/shared/telemetry"
)

// Client turns raw document text into a structured analysis via a single
// generative-model invocation. Generation failures never escape this
// boundary: both the parse-failure and invocation-failure paths degrade to a
// deterministic fallback result, so callers always receive a well-formed
// Result.
type Client struct {
	LLM llm.Client
}

// NewClient constructs an analysis client around the given provider.
func NewClient(base llm.Client) *Client {
	if base == nil {
		base = llm.PlaceholderClient{}
	}
	return &Client{LLM: base}
}

// Analyze produces a structured analysis for one document. Empty input is
// accepted and yields a low-information result rather than an error.
func (c *Client) Analyze(ctx context.Context, documentText, fileName string) Result {
	metrics.IncAnalysisStarted()

	start := time.Now()
	raw, err := c.LLM.Complete(ctx, buildAnalysisPrompt(documentText, fileName))
	metrics.ObserveAnalysisDurationMs(float64(time.Since(start).Microseconds()) / 1000.0)
	if err != nil {
		telemetry.Warn("analysis.fallback", map[string]any{
			"file":   fileName,
			"reason": "invocation",
			"error":  err.Error(),
		})
		metrics.IncAnalysisFallback()
		return newUnavailableFallback(documentText, fileName)
	}

	result, err := decodeResult(raw)
	if err != nil {
		telemetry.Warn("analysis.fallback", map[string]any{
			"file":   fileName,
			"reason": "parse",
			"error":  err.Error(),
		})
		metrics.IncAnalysisFallback()
		return newParseFallback(raw)
	}
	if result.isEmpty() {
		telemetry.Warn("analysis.fallback", map[string]any{
			"file":   fileName,
			"reason": "empty",
		})
		metrics.IncAnalysisFallback()
		return newEmptyResultFallback(fileName)
	}

	metrics.IncAnalysisCompleted()
	return result
}

// ExtractImageText transcribes a photographed document through the model's
// inline-image input. Unlike Analyze, this surfaces errors: with no text in
// hand there is nothing sensible to fall back to.
func (c *Client) ExtractImageText(ctx context.Context, image []byte, mimeType string) (string, error) {
	imgClient, ok := c.LLM.(llm.ImageClient)
	if !ok {
		return "", errors.New("configured llm provider does not accept images")
	}
	return imgClient.CompleteWithImage(ctx, buildImagePrompt(), image, mimeType)
}

// decodeResult parses a model reply into a Result, distinguishing malformed
// JSON (error) from structurally valid output.
func decodeResult(raw string) (Result, error) {
	cleaned := StripCodeFences(raw)
	var result Result
	if err := json.Unmarshal([]byte(cleaned), &result); err != nil {
		return Result{}, err
	}
	result.ensureShape()
	return result, nil
}
