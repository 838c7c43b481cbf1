package accounts

import "context"

// Repo persists credentials keyed by normalized email.
type Repo interface {
	// Create stores a new credential; returns ErrEmailTaken when the
	// email already exists.
	Create(ctx context.Context, cred Credential) error
	GetByEmail(ctx context.Context, email string) (Credential, error)
	GetByID(ctx context.Context, id string) (Credential, error)
}
