package blog

import (
	"context"
	"errors"
	"testing"

	"legalens-backend/internal/profiles"
)

func newTestBlog(t *testing.T) (*Service, *profiles.Service) {
	t.Helper()
	profileSvc := profiles.NewService(profiles.NewMemoryRepo())
	return NewService(NewMemoryRepo(), profileSvc), profileSvc
}

var alice = Author{ID: "user-alice", Name: "Alice"}

func TestCreatePostDerivesSlugAndExcerpt(t *testing.T) {
	svc, profileSvc := newTestBlog(t)

	post, err := svc.CreatePost(context.Background(), alice, PostInput{
		Title:   "My First Contract!!",
		Content: "# Heading\nSome *important* thoughts about contracts.",
		Status:  StatusPublished,
	})
	if err != nil {
		t.Fatalf("CreatePost: %v", err)
	}
	if post.Slug != "my-first-contract" {
		t.Fatalf("slug = %q", post.Slug)
	}
	if post.Likes != 0 || post.Views != 0 || post.CommentsCount != 0 {
		t.Fatalf("counters should start at zero: %+v", post)
	}
	if post.PublishedAt == nil {
		t.Fatal("published post should have publishedAt")
	}

	profile, err := profileSvc.Get(context.Background(), alice.ID)
	if err != nil {
		t.Fatalf("profile should be created lazily: %v", err)
	}
	if profile.PostsCount != 1 {
		t.Fatalf("postsCount = %d, want 1", profile.PostsCount)
	}
}

func TestDraftPublishBackfillsPublishedAt(t *testing.T) {
	svc, _ := newTestBlog(t)

	draft, err := svc.CreatePost(context.Background(), alice, PostInput{
		Title:   "Draft Thoughts",
		Content: "wip",
		Status:  StatusDraft,
	})
	if err != nil {
		t.Fatalf("CreatePost: %v", err)
	}
	if draft.PublishedAt != nil {
		t.Fatal("draft should have no publishedAt")
	}

	published, err := svc.UpdatePost(context.Background(), alice.ID, draft.ID, PostInput{
		Title:   "Draft Thoughts",
		Content: "done",
		Status:  StatusPublished,
	})
	if err != nil {
		t.Fatalf("UpdatePost: %v", err)
	}
	if published.PublishedAt == nil {
		t.Fatal("publishedAt should be backfilled on draft-to-published transition")
	}
	first := *published.PublishedAt

	again, err := svc.UpdatePost(context.Background(), alice.ID, draft.ID, PostInput{
		Title:   "Draft Thoughts",
		Content: "edited again",
		Status:  StatusPublished,
	})
	if err != nil {
		t.Fatalf("UpdatePost: %v", err)
	}
	if !again.PublishedAt.Equal(first) {
		t.Fatalf("publishedAt should be stable across edits: %v vs %v", first, *again.PublishedAt)
	}
}

func TestUpdatePostAuthorOnly(t *testing.T) {
	svc, _ := newTestBlog(t)

	post, err := svc.CreatePost(context.Background(), alice, PostInput{Title: "Mine", Content: "body"})
	if err != nil {
		t.Fatalf("CreatePost: %v", err)
	}

	_, err = svc.UpdatePost(context.Background(), "user-eve", post.ID, PostInput{Title: "Hijacked", Content: "x"})
	if !errors.Is(err, ErrForbidden) {
		t.Fatalf("expected ErrForbidden, got %v", err)
	}
	if err := svc.DeletePost(context.Background(), "user-eve", post.ID); !errors.Is(err, ErrForbidden) {
		t.Fatalf("expected ErrForbidden, got %v", err)
	}
}

func TestToggleLikeFlipsState(t *testing.T) {
	svc, _ := newTestBlog(t)

	post, err := svc.CreatePost(context.Background(), alice, PostInput{Title: "Likeable", Content: "body", Status: StatusPublished})
	if err != nil {
		t.Fatalf("CreatePost: %v", err)
	}

	state, err := svc.ToggleLike(context.Background(), "user-bob", post.ID)
	if err != nil {
		t.Fatalf("ToggleLike: %v", err)
	}
	if !state.Liked || state.Likes != 1 {
		t.Fatalf("first toggle = %+v", state)
	}

	state, err = svc.ToggleLike(context.Background(), "user-bob", post.ID)
	if err != nil {
		t.Fatalf("ToggleLike: %v", err)
	}
	if state.Liked || state.Likes != 0 {
		t.Fatalf("second toggle = %+v", state)
	}

	check, err := svc.HasLiked(context.Background(), "user-bob", post.ID)
	if err != nil {
		t.Fatalf("HasLiked: %v", err)
	}
	if check.Liked {
		t.Fatal("like should be cleared after second toggle")
	}
}

func TestCommentsAuthorOnlyDelete(t *testing.T) {
	svc, _ := newTestBlog(t)

	post, err := svc.CreatePost(context.Background(), alice, PostInput{Title: "Discuss", Content: "body", Status: StatusPublished})
	if err != nil {
		t.Fatalf("CreatePost: %v", err)
	}

	comment, err := svc.AddComment(context.Background(), Author{ID: "user-bob", Name: "Bob"}, post.ID, "Nice write-up")
	if err != nil {
		t.Fatalf("AddComment: %v", err)
	}

	if err := svc.DeleteComment(context.Background(), alice.ID, post.ID, comment.ID); !errors.Is(err, ErrForbidden) {
		t.Fatalf("post author must not delete another user's comment, got %v", err)
	}
	if err := svc.DeleteComment(context.Background(), "user-bob", post.ID, comment.ID); err != nil {
		t.Fatalf("comment author delete: %v", err)
	}

	comments, err := svc.ListComments(context.Background(), post.ID)
	if err != nil {
		t.Fatalf("ListComments: %v", err)
	}
	if len(comments) != 0 {
		t.Fatalf("comments = %d, want 0", len(comments))
	}
}

func TestGetBySlugCountsView(t *testing.T) {
	svc, profileSvc := newTestBlog(t)

	post, err := svc.CreatePost(context.Background(), alice, PostInput{Title: "Viewed", Content: "body", Status: StatusPublished})
	if err != nil {
		t.Fatalf("CreatePost: %v", err)
	}

	got, err := svc.GetBySlug(context.Background(), post.Slug)
	if err != nil {
		t.Fatalf("GetBySlug: %v", err)
	}
	if got.Views != 1 {
		t.Fatalf("views = %d, want 1", got.Views)
	}

	profile, err := profileSvc.Get(context.Background(), alice.ID)
	if err != nil {
		t.Fatalf("Get profile: %v", err)
	}
	if profile.TotalViews != 1 {
		t.Fatalf("profile totalViews = %d, want 1", profile.TotalViews)
	}
}

func TestListByAuthorHidesDraftsFromOthers(t *testing.T) {
	svc, _ := newTestBlog(t)

	if _, err := svc.CreatePost(context.Background(), alice, PostInput{
		Title:   "Published piece",
		Content: "Visible to everyone.",
		Status:  StatusPublished,
	}); err != nil {
		t.Fatalf("CreatePost: %v", err)
	}
	if _, err := svc.CreatePost(context.Background(), alice, PostInput{
		Title:   "Work in progress",
		Content: "Not ready yet.",
		Status:  StatusDraft,
	}); err != nil {
		t.Fatalf("CreatePost: %v", err)
	}

	own, err := svc.ListByAuthor(context.Background(), alice.ID, alice.ID)
	if err != nil {
		t.Fatalf("ListByAuthor: %v", err)
	}
	if len(own) != 2 {
		t.Fatalf("author sees %d posts, want 2", len(own))
	}

	for _, caller := range []string{"", "user-bob"} {
		visible, err := svc.ListByAuthor(context.Background(), caller, alice.ID)
		if err != nil {
			t.Fatalf("ListByAuthor(%q): %v", caller, err)
		}
		if len(visible) != 1 {
			t.Fatalf("caller %q sees %d posts, want 1", caller, len(visible))
		}
		if visible[0].Status != StatusPublished {
			t.Fatalf("caller %q sees a %s post", caller, visible[0].Status)
		}
	}
}
