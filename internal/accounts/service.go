package accounts

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"legalens-backend/internal/shared/auth"
)

const minPasswordLen = 5

// Service implements credential sign-up and sign-in.
type Service struct {
	Repo Repo
}

func NewService(repo Repo) *Service {
	return &Service{Repo: repo}
}

// NormalizeEmail lowercases and trims an email for storage and lookup.
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// SignUp creates an account and returns a signed-in session. Email
// uniqueness is case-insensitive.
func (s *Service) SignUp(ctx context.Context, name, email, password string) (Session, error) {
	email = NormalizeEmail(email)
	if email == "" || !strings.Contains(email, "@") {
		return Session{}, fmt.Errorf("%w: a valid email is required", ErrInvalidInput)
	}
	if len(password) < minPasswordLen {
		return Session{}, fmt.Errorf("%w: password must be at least %d characters", ErrInvalidInput, minPasswordLen)
	}
	if strings.TrimSpace(name) == "" {
		name = email[:strings.Index(email, "@")]
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return Session{}, fmt.Errorf("hash password: %w", err)
	}

	cred := Credential{
		ID:           uuid.NewString(),
		Name:         name,
		Email:        email,
		PasswordHash: string(hash),
		CreatedAt:    time.Now().UTC(),
	}
	if err := s.Repo.Create(ctx, cred); err != nil {
		return Session{}, err
	}
	return s.session(cred)
}

// SignIn validates the password against the stored hash. Unknown email
// and wrong password return the same error.
func (s *Service) SignIn(ctx context.Context, email, password string) (Session, error) {
	cred, err := s.Repo.GetByEmail(ctx, NormalizeEmail(email))
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return Session{}, ErrInvalidCredentials
		}
		return Session{}, err
	}
	if bcrypt.CompareHashAndPassword([]byte(cred.PasswordHash), []byte(password)) != nil {
		return Session{}, ErrInvalidCredentials
	}
	return s.session(cred)
}

func (s *Service) session(cred Credential) (Session, error) {
	token, err := auth.SignSession(cred.ID, cred.Email, cred.Name, "")
	if err != nil {
		return Session{}, fmt.Errorf("sign session: %w", err)
	}
	return Session{
		UserID: cred.ID,
		Name:   cred.Name,
		Email:  cred.Email,
		Token:  token,
	}, nil
}
