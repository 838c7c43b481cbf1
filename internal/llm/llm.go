package llm

import (
	"context"
	"errors"
)

// Client abstracts generative-model providers. A single prompt goes in, the
// model's free-text reply comes out; JSON shaping is the caller's concern.
type Client interface {
	Complete(ctx context.Context, prompt string) (string, error)
}

// ImageClient is implemented by providers that accept inline image bytes
// alongside the prompt.
type ImageClient interface {
	CompleteWithImage(ctx context.Context, prompt string, image []byte, mimeType string) (string, error)
}

// ErrNotConfigured is returned when no provider has been wired.
var ErrNotConfigured = errors.New("llm provider not configured")

// PlaceholderClient is used when no provider is configured; callers degrade
// to their fallback paths.
type PlaceholderClient struct{}

func (PlaceholderClient) Complete(ctx context.Context, prompt string) (string, error) {
	_ = ctx
	_ = prompt
	return "", ErrNotConfigured
}

func (PlaceholderClient) CompleteWithImage(ctx context.Context, prompt string, image []byte, mimeType string) (string, error) {
	_ = ctx
	_ = prompt
	_ = image
	_ = mimeType
	return "", ErrNotConfigured
}
