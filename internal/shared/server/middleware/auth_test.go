package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"

	"legalens-backend/internal/shared/auth"
)

func newAuthRouter() *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(Auth())
	echoUser := func(c *gin.Context) {
		c.String(http.StatusOK, UserIDFromContext(c))
	}
	r.GET("/api/v1/blog/:id/like", echoUser)
	r.GET("/api/v1/documents", echoUser)
	return r
}

func getWithToken(t *testing.T, r *gin.Engine, path, token string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, path, nil)
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	return rec
}

func TestAuthParsesTokenOnPublicPath(t *testing.T) {
	r := newAuthRouter()
	token, err := auth.SignSession("user-1", "a@example.com", "Alice", "")
	if err != nil {
		t.Fatalf("SignSession: %v", err)
	}

	rec := getWithToken(t, r, "/api/v1/blog/some-post/like", token)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
	if rec.Body.String() != "user-1" {
		t.Fatalf("user id on public path = %q, want user-1", rec.Body.String())
	}
}

func TestAuthAllowsAnonymousPublicPath(t *testing.T) {
	r := newAuthRouter()

	rec := getWithToken(t, r, "/api/v1/blog/some-post/like", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
	if rec.Body.String() != "" {
		t.Fatalf("anonymous user id = %q, want empty", rec.Body.String())
	}
}

func TestAuthIgnoresInvalidTokenOnPublicPath(t *testing.T) {
	r := newAuthRouter()

	rec := getWithToken(t, r, "/api/v1/blog/some-post/like", "not-a-token")
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
	if rec.Body.String() != "" {
		t.Fatalf("user id with bad token = %q, want empty", rec.Body.String())
	}
}

func TestAuthRejectsProtectedPathWithoutToken(t *testing.T) {
	r := newAuthRouter()

	if rec := getWithToken(t, r, "/api/v1/documents", ""); rec.Code != http.StatusUnauthorized {
		t.Fatalf("missing token status = %d, want 401", rec.Code)
	}
	if rec := getWithToken(t, r, "/api/v1/documents", "not-a-token"); rec.Code != http.StatusUnauthorized {
		t.Fatalf("bad token status = %d, want 401", rec.Code)
	}
}
