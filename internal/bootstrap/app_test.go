package bootstrap

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"legalens-backend/internal/analysis"
	"legalens-backend/internal/shared/config"
)

func newTestApp(t *testing.T) *App {
	t.Helper()
	app, err := Build(config.Config{
		Env:           "test",
		DataDir:       t.TempDir(),
		LocalStoreDir: t.TempDir(),
		LLMProvider:   "none",
	})
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	return app
}

func doJSON(t *testing.T, app *App, method, path, token string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var reader *bytes.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		if err != nil {
			t.Fatalf("marshal body: %v", err)
		}
		reader = bytes.NewReader(raw)
	} else {
		reader = bytes.NewReader(nil)
	}
	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	app.Router.ServeHTTP(rec, req)
	return rec
}

func signUp(t *testing.T, app *App, name, email, password string) (userID, token string) {
	t.Helper()
	rec := doJSON(t, app, http.MethodPost, "/api/v1/auth/signup", "", map[string]string{
		"name": name, "email": email, "password": password,
	})
	if rec.Code != http.StatusCreated {
		t.Fatalf("signup status = %d, body %s", rec.Code, rec.Body.String())
	}
	var session struct {
		UserID string `json:"userId"`
		Token  string `json:"token"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &session); err != nil {
		t.Fatalf("decode session: %v", err)
	}
	return session.UserID, session.Token
}

func uploadText(t *testing.T, app *App, token, fileName, content string) map[string]any {
	t.Helper()
	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	fw, err := mw.CreateFormFile("file", fileName)
	if err != nil {
		t.Fatalf("CreateFormFile: %v", err)
	}
	if _, err := fw.Write([]byte(content)); err != nil {
		t.Fatalf("write part: %v", err)
	}
	if err := mw.Close(); err != nil {
		t.Fatalf("close writer: %v", err)
	}

	req := httptest.NewRequest(http.MethodPost, "/api/v1/documents", &buf)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	req.Header.Set("Authorization", "Bearer "+token)
	rec := httptest.NewRecorder()
	app.Router.ServeHTTP(rec, req)
	if rec.Code != http.StatusCreated {
		t.Fatalf("upload status = %d, body %s", rec.Code, rec.Body.String())
	}

	var doc map[string]any
	if err := json.Unmarshal(rec.Body.Bytes(), &doc); err != nil {
		t.Fatalf("decode document: %v", err)
	}
	return doc
}

type scriptedLLM struct {
	reply string
}

func (s scriptedLLM) Complete(ctx context.Context, prompt string) (string, error) {
	_ = ctx
	_ = prompt
	return s.reply, nil
}

func TestEndToEndUploadDerivesHighRisk(t *testing.T) {
	app := newTestApp(t)
	app.DocumentService.Analyzer = analysis.NewClient(scriptedLLM{reply: `{
  "summary": "A services contract.",
  "documentType": "Contract",
  "keyPoints": [],
  "risks": [
    {"level": "High", "description": "Unlimited liability", "recommendation": "Cap it"},
    {"level": "Low", "description": "Venue clause", "recommendation": "None"}
  ],
  "obligations": [], "clauses": [], "deadlines": []
}`})

	_, token := signUp(t, app, "Alice", "alice@example.com", "pw123")
	doc := uploadText(t, app, token, "contract.txt", "the agreement body")

	if doc["riskLevel"] != "High" {
		t.Fatalf("riskLevel = %v, want High", doc["riskLevel"])
	}

	rec := doJSON(t, app, http.MethodGet, "/api/v1/documents?id="+doc["id"].(string), token, nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("get status = %d, body %s", rec.Code, rec.Body.String())
	}
}

func TestEndToEndChatDeadlinesFallback(t *testing.T) {
	app := newTestApp(t)
	_, token := signUp(t, app, "Alice", "alice@example.com", "pw123")

	rec := doJSON(t, app, http.MethodPost, "/api/v1/chat", token, map[string]string{
		"question": "What are the deadlines?",
	})
	if rec.Code != http.StatusOK {
		t.Fatalf("chat status = %d, body %s", rec.Code, rec.Body.String())
	}

	var reply struct {
		Answer   string `json:"answer"`
		Fallback bool   `json:"fallback"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &reply); err != nil {
		t.Fatalf("decode reply: %v", err)
	}
	if !reply.Fallback {
		t.Fatal("reply should come from the keyword responder")
	}
	want := "I don't have a document loaded, so I can't point at specific deadlines. Upload a contract and I'll list every deadline it contains, with dates and the consequences of missing them. In general, watch for renewal windows, notice periods, and payment due dates."
	if reply.Answer != want {
		t.Fatalf("answer = %q", reply.Answer)
	}
}

func TestEndToEndBlogSlugAndPublicRead(t *testing.T) {
	app := newTestApp(t)
	_, token := signUp(t, app, "Alice", "alice@example.com", "pw123")

	rec := doJSON(t, app, http.MethodPost, "/api/v1/blog", token, map[string]any{
		"title":   "My First Contract!!",
		"content": "What I learned reading my first contract.",
		"status":  "published",
	})
	if rec.Code != http.StatusCreated {
		t.Fatalf("create post status = %d, body %s", rec.Code, rec.Body.String())
	}
	var post struct {
		Slug string `json:"slug"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &post); err != nil {
		t.Fatalf("decode post: %v", err)
	}
	if post.Slug != "my-first-contract" {
		t.Fatalf("slug = %q", post.Slug)
	}

	// Published posts are readable without a session.
	rec = doJSON(t, app, http.MethodGet, "/api/v1/blog/"+post.Slug, "", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("public read status = %d, body %s", rec.Code, rec.Body.String())
	}
}

func TestEndToEndLikeStateSeesSession(t *testing.T) {
	app := newTestApp(t)
	_, token := signUp(t, app, "Alice", "alice@example.com", "pw123")

	rec := doJSON(t, app, http.MethodPost, "/api/v1/blog", token, map[string]any{
		"title":   "Reading the fine print",
		"content": "Always read the fine print.",
		"status":  "published",
	})
	if rec.Code != http.StatusCreated {
		t.Fatalf("create post status = %d, body %s", rec.Code, rec.Body.String())
	}
	var post struct {
		ID string `json:"id"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &post); err != nil {
		t.Fatalf("decode post: %v", err)
	}

	var state struct {
		Liked bool `json:"liked"`
		Likes int  `json:"likes"`
	}
	rec = doJSON(t, app, http.MethodPost, "/api/v1/blog/"+post.ID+"/like", token, nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("toggle like status = %d, body %s", rec.Code, rec.Body.String())
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &state); err != nil {
		t.Fatalf("decode like state: %v", err)
	}
	if !state.Liked || state.Likes != 1 {
		t.Fatalf("after toggle: liked=%v likes=%d", state.Liked, state.Likes)
	}

	// The read route is world-readable, but a session token presented on it
	// must still identify the caller.
	rec = doJSON(t, app, http.MethodGet, "/api/v1/blog/"+post.ID+"/like", token, nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("like state status = %d, body %s", rec.Code, rec.Body.String())
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &state); err != nil {
		t.Fatalf("decode like state: %v", err)
	}
	if !state.Liked || state.Likes != 1 {
		t.Fatalf("authenticated read: liked=%v likes=%d, want liked=true likes=1", state.Liked, state.Likes)
	}

	rec = doJSON(t, app, http.MethodGet, "/api/v1/blog/"+post.ID+"/like", "", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("anonymous like state status = %d", rec.Code)
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &state); err != nil {
		t.Fatalf("decode like state: %v", err)
	}
	if state.Liked || state.Likes != 1 {
		t.Fatalf("anonymous read: liked=%v likes=%d, want liked=false likes=1", state.Liked, state.Likes)
	}
}

func TestEndToEndAuthorDraftsAreNotPublic(t *testing.T) {
	app := newTestApp(t)
	userID, token := signUp(t, app, "Alice", "alice@example.com", "pw123")

	rec := doJSON(t, app, http.MethodPost, "/api/v1/blog", token, map[string]any{
		"title":   "Unfinished thoughts",
		"content": "Draft in progress.",
		"status":  "draft",
	})
	if rec.Code != http.StatusCreated {
		t.Fatalf("create draft status = %d, body %s", rec.Code, rec.Body.String())
	}

	var posts []json.RawMessage
	rec = doJSON(t, app, http.MethodGet, "/api/v1/blog?author="+userID, "", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("anonymous author list status = %d", rec.Code)
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &posts); err != nil {
		t.Fatalf("decode posts: %v", err)
	}
	if len(posts) != 0 {
		t.Fatalf("anonymous caller sees %d draft posts, want 0", len(posts))
	}

	rec = doJSON(t, app, http.MethodGet, "/api/v1/blog?author="+userID, token, nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("author list status = %d", rec.Code)
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &posts); err != nil {
		t.Fatalf("decode posts: %v", err)
	}
	if len(posts) != 1 {
		t.Fatalf("author sees %d posts, want 1", len(posts))
	}
}

func TestEndToEndRequiresSession(t *testing.T) {
	app := newTestApp(t)

	rec := doJSON(t, app, http.MethodGet, "/api/v1/documents", "", nil)
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("status = %d, want 401", rec.Code)
	}

	rec = doJSON(t, app, http.MethodGet, "/api/v1/documents", "not-a-real-token", nil)
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("status = %d, want 401", rec.Code)
	}
}

func TestEndToEndProfileOwnerOnlyWrite(t *testing.T) {
	app := newTestApp(t)
	userID, token := signUp(t, app, "Alice", "alice@example.com", "pw123")
	_, otherToken := signUp(t, app, "Bob", "bob@example.com", "pw123")

	rec := doJSON(t, app, http.MethodPut, "/api/v1/profile/"+userID, otherToken, map[string]string{
		"displayName": "Hijacked",
	})
	if rec.Code != http.StatusForbidden {
		t.Fatalf("foreign profile write status = %d, want 403", rec.Code)
	}

	rec = doJSON(t, app, http.MethodPut, "/api/v1/profile/"+userID, token, map[string]string{
		"displayName": "Alice",
		"bio":         "Contract nerd",
	})
	if rec.Code != http.StatusOK {
		t.Fatalf("own profile write status = %d, body %s", rec.Code, rec.Body.String())
	}

	rec = doJSON(t, app, http.MethodGet, fmt.Sprintf("/api/v1/profile/%s", userID), "", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("public profile read status = %d", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), "Contract nerd") {
		t.Fatalf("profile body = %s", rec.Body.String())
	}
}
