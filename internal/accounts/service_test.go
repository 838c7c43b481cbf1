package accounts

import (
	"context"
	"errors"
	"testing"

	"legalens-backend/internal/shared/auth"
)

func newTestAccounts(t *testing.T) *Service {
	t.Helper()
	repo, err := NewFileRepo(t.TempDir())
	if err != nil {
		t.Fatalf("NewFileRepo: %v", err)
	}
	return NewService(repo)
}

func TestSignUpAndSignIn(t *testing.T) {
	svc := newTestAccounts(t)

	session, err := svc.SignUp(context.Background(), "Alice", "alice@example.com", "pw1234")
	if err != nil {
		t.Fatalf("SignUp: %v", err)
	}
	if session.Token == "" || session.UserID == "" {
		t.Fatalf("session incomplete: %+v", session)
	}

	claims, err := auth.VerifySession(session.Token)
	if err != nil {
		t.Fatalf("VerifySession: %v", err)
	}
	if claims.Subject != session.UserID || claims.Email != "alice@example.com" {
		t.Fatalf("claims = %+v", claims)
	}

	signedIn, err := svc.SignIn(context.Background(), "alice@example.com", "pw1234")
	if err != nil {
		t.Fatalf("SignIn: %v", err)
	}
	if signedIn.UserID != session.UserID {
		t.Fatalf("sign-in user id %q != sign-up user id %q", signedIn.UserID, session.UserID)
	}
}

func TestSignUpEmailIsCaseInsensitive(t *testing.T) {
	svc := newTestAccounts(t)

	if _, err := svc.SignUp(context.Background(), "Alice", "Alice@Example.com", "pw1234"); err != nil {
		t.Fatalf("SignUp: %v", err)
	}
	_, err := svc.SignUp(context.Background(), "Imposter", "alice@example.COM", "different")
	if !errors.Is(err, ErrEmailTaken) {
		t.Fatalf("expected ErrEmailTaken, got %v", err)
	}

	if _, err := svc.SignIn(context.Background(), "ALICE@EXAMPLE.COM", "pw1234"); err != nil {
		t.Fatalf("sign-in should normalize the email, got %v", err)
	}
}

func TestSignInWrongPassword(t *testing.T) {
	svc := newTestAccounts(t)

	if _, err := svc.SignUp(context.Background(), "Alice", "alice@example.com", "pw1234"); err != nil {
		t.Fatalf("SignUp: %v", err)
	}

	_, err := svc.SignIn(context.Background(), "alice@example.com", "wrong")
	if !errors.Is(err, ErrInvalidCredentials) {
		t.Fatalf("expected ErrInvalidCredentials, got %v", err)
	}
	_, err = svc.SignIn(context.Background(), "nobody@example.com", "pw1234")
	if !errors.Is(err, ErrInvalidCredentials) {
		t.Fatalf("unknown email should look like a bad password, got %v", err)
	}
}

func TestSignUpValidation(t *testing.T) {
	svc := newTestAccounts(t)

	if _, err := svc.SignUp(context.Background(), "X", "not-an-email", "pw1234"); !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput for bad email, got %v", err)
	}
	if _, err := svc.SignUp(context.Background(), "X", "x@example.com", "pw12"); !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput for short password, got %v", err)
	}
}

func TestSignUpDefaultsNameFromEmail(t *testing.T) {
	svc := newTestAccounts(t)

	session, err := svc.SignUp(context.Background(), "", "carol@example.com", "pw1234")
	if err != nil {
		t.Fatalf("SignUp: %v", err)
	}
	if session.Name != "carol" {
		t.Fatalf("name = %q, want carol", session.Name)
	}
}
