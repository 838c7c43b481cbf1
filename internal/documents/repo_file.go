package documents

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"sync"
	"time"
)

// FileRepo implements Repo on a single JSON file, for environments without a
// database. Every read-modify-write cycle holds the repo mutex for its full
// duration, so concurrent request handlers cannot interleave and lose
// updates.
type FileRepo struct {
	mu   sync.Mutex
	path string
}

// NewFileRepo constructs a FileRepo storing documents under dir.
func NewFileRepo(dir string) (*FileRepo, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("mkdir: %w", err)
	}
	return &FileRepo{path: filepath.Join(dir, "documents.json")}, nil
}

func (r *FileRepo) Create(ctx context.Context, doc Document) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	r.mu.Lock()
	defer r.mu.Unlock()

	data, err := r.load()
	if err != nil {
		return err
	}
	data[doc.UserID] = append(data[doc.UserID], doc)
	return r.persist(data)
}

func (r *FileRepo) GetByID(ctx context.Context, userID, documentID string) (Document, error) {
	if err := ctx.Err(); err != nil {
		return Document{}, err
	}
	r.mu.Lock()
	defer r.mu.Unlock()

	data, err := r.load()
	if err != nil {
		return Document{}, err
	}
	for _, doc := range data[userID] {
		if doc.ID == documentID {
			return doc, nil
		}
	}
	return Document{}, ErrNotFound
}

func (r *FileRepo) TouchLastAccessed(ctx context.Context, userID, documentID string, ts time.Time) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	r.mu.Lock()
	defer r.mu.Unlock()

	data, err := r.load()
	if err != nil {
		return err
	}
	docs := data[userID]
	for i := range docs {
		if docs[i].ID == documentID {
			docs[i].LastAccessed = ts
			data[userID] = docs
			return r.persist(data)
		}
	}
	return ErrNotFound
}

func (r *FileRepo) ListByUser(ctx context.Context, userID string) ([]Document, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	r.mu.Lock()
	defer r.mu.Unlock()

	data, err := r.load()
	if err != nil {
		return nil, err
	}

	docs := make([]Document, len(data[userID]))
	copy(docs, data[userID])
	sort.Slice(docs, func(i, j int) bool {
		return docs[i].UploadedAt.After(docs[j].UploadedAt)
	})
	return docs, nil
}

func (r *FileRepo) Delete(ctx context.Context, userID, documentID string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	r.mu.Lock()
	defer r.mu.Unlock()

	data, err := r.load()
	if err != nil {
		return err
	}
	docs := data[userID]
	for i := range docs {
		if docs[i].ID == documentID {
			data[userID] = append(docs[:i], docs[i+1:]...)
			return r.persist(data)
		}
	}
	return ErrNotFound
}

func (r *FileRepo) DeleteMany(ctx context.Context, userID string, documentIDs []string) (int, error) {
	if err := ctx.Err(); err != nil {
		return 0, err
	}
	r.mu.Lock()
	defer r.mu.Unlock()

	data, err := r.load()
	if err != nil {
		return 0, err
	}

	wanted := make(map[string]struct{}, len(documentIDs))
	for _, id := range documentIDs {
		wanted[id] = struct{}{}
	}

	kept := data[userID][:0]
	deleted := 0
	for _, doc := range data[userID] {
		if _, ok := wanted[doc.ID]; ok {
			deleted++
			continue
		}
		kept = append(kept, doc)
	}
	if deleted == 0 {
		return 0, nil
	}
	data[userID] = kept
	if err := r.persist(data); err != nil {
		return 0, err
	}
	return deleted, nil
}

func (r *FileRepo) load() (map[string][]Document, error) {
	raw, err := os.ReadFile(r.path)
	if err != nil {
		if os.IsNotExist(err) {
			return map[string][]Document{}, nil
		}
		return nil, fmt.Errorf("read %s: %w", r.path, err)
	}
	data := map[string][]Document{}
	if len(raw) == 0 {
		return data, nil
	}
	if err := json.Unmarshal(raw, &data); err != nil {
		return nil, fmt.Errorf("decode %s: %w", r.path, err)
	}
	return data, nil
}

func (r *FileRepo) persist(data map[string][]Document) error {
	raw, err := json.MarshalIndent(data, "", "  ")
	if err != nil {
		return fmt.Errorf("encode documents: %w", err)
	}
	tmp := r.path + ".tmp"
	if err := os.WriteFile(tmp, raw, 0o644); err != nil {
		return fmt.Errorf("write %s: %w", tmp, err)
	}
	return os.Rename(tmp, r.path)
}

var _ Repo = (*FileRepo)(nil)
