package documents

import (
	"context"
	"time"
)

// Repo defines owner-scoped persistence operations for documents. Every
// lookup takes the caller's user id; records owned by someone else answer
// ErrNotFound.
type Repo interface {
	Create(ctx context.Context, doc Document) error
	GetByID(ctx context.Context, userID, documentID string) (Document, error)
	TouchLastAccessed(ctx context.Context, userID, documentID string, ts time.Time) error
	ListByUser(ctx context.Context, userID string) ([]Document, error)
	Delete(ctx context.Context, userID, documentID string) error
	DeleteMany(ctx context.Context, userID string, documentIDs []string) (int, error)
}
