package accounts

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"
)

// FileRepo implements Repo on a single JSON file keyed by normalized
// email. The mutex is held for every full read-modify-write cycle so
// concurrent sign-ups cannot lose records.
type FileRepo struct {
	mu   sync.Mutex
	path string
}

func NewFileRepo(dir string) (*FileRepo, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("mkdir: %w", err)
	}
	return &FileRepo{path: filepath.Join(dir, "credentials.json")}, nil
}

// storedCredential carries the password hash, which the API model
// deliberately never serializes.
type storedCredential struct {
	ID           string    `json:"id"`
	Name         string    `json:"name"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"passwordHash"`
	CreatedAt    time.Time `json:"createdAt"`
}

func (r *FileRepo) Create(ctx context.Context, cred Credential) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	r.mu.Lock()
	defer r.mu.Unlock()

	data, err := r.load()
	if err != nil {
		return err
	}
	if _, exists := data[cred.Email]; exists {
		return ErrEmailTaken
	}
	data[cred.Email] = storedCredential{
		ID:           cred.ID,
		Name:         cred.Name,
		Email:        cred.Email,
		PasswordHash: cred.PasswordHash,
		CreatedAt:    cred.CreatedAt,
	}
	return r.persist(data)
}

func (r *FileRepo) GetByEmail(ctx context.Context, email string) (Credential, error) {
	if err := ctx.Err(); err != nil {
		return Credential{}, err
	}
	r.mu.Lock()
	defer r.mu.Unlock()

	data, err := r.load()
	if err != nil {
		return Credential{}, err
	}
	stored, ok := data[email]
	if !ok {
		return Credential{}, ErrNotFound
	}
	return stored.credential(), nil
}

func (r *FileRepo) GetByID(ctx context.Context, id string) (Credential, error) {
	if err := ctx.Err(); err != nil {
		return Credential{}, err
	}
	r.mu.Lock()
	defer r.mu.Unlock()

	data, err := r.load()
	if err != nil {
		return Credential{}, err
	}
	for _, stored := range data {
		if stored.ID == id {
			return stored.credential(), nil
		}
	}
	return Credential{}, ErrNotFound
}

func (s storedCredential) credential() Credential {
	return Credential{
		ID:           s.ID,
		Name:         s.Name,
		Email:        s.Email,
		PasswordHash: s.PasswordHash,
		CreatedAt:    s.CreatedAt,
	}
}

func (r *FileRepo) load() (map[string]storedCredential, error) {
	raw, err := os.ReadFile(r.path)
	if err != nil {
		if os.IsNotExist(err) {
			return map[string]storedCredential{}, nil
		}
		return nil, fmt.Errorf("read %s: %w", r.path, err)
	}
	data := map[string]storedCredential{}
	if len(raw) == 0 {
		return data, nil
	}
	if err := json.Unmarshal(raw, &data); err != nil {
		return nil, fmt.Errorf("decode %s: %w", r.path, err)
	}
	return data, nil
}

func (r *FileRepo) persist(data map[string]storedCredential) error {
	raw, err := json.MarshalIndent(data, "", "  ")
	if err != nil {
		return fmt.Errorf("encode credentials: %w", err)
	}
	tmp := r.path + ".tmp"
	if err := os.WriteFile(tmp, raw, 0o644); err != nil {
		return fmt.Errorf("write %s: %w", tmp, err)
	}
	return os.Rename(tmp, r.path)
}

var _ Repo = (*FileRepo)(nil)
