package blog

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"legalens-backend/internal/shared/telemetry"
)

// ProfileCounter maintains the author's aggregate counters. Counter
// failures are logged, never surfaced: the post operation already
// succeeded by the time counters move.
type ProfileCounter interface {
	RecordPost(ctx context.Context, userID, displayName string) error
	AddLikes(ctx context.Context, userID string, delta int) error
	AddView(ctx context.Context, userID string) error
}

// Service implements the blog operations on top of a Repo.
type Service struct {
	Repo     Repo
	Profiles ProfileCounter
}

func NewService(repo Repo, profiles ProfileCounter) *Service {
	return &Service{Repo: repo, Profiles: profiles}
}

// PostInput is the author-supplied part of a post.
type PostInput struct {
	Title    string   `json:"title"`
	Content  string   `json:"content"`
	Category string   `json:"category"`
	Tags     []string `json:"tags"`
	Status   string   `json:"status"`
	Featured bool     `json:"featured"`
}

func (in *PostInput) validate() error {
	if strings.TrimSpace(in.Title) == "" {
		return fmt.Errorf("%w: title is required", ErrInvalidInput)
	}
	if strings.TrimSpace(in.Content) == "" {
		return fmt.Errorf("%w: content is required", ErrInvalidInput)
	}
	switch in.Status {
	case "":
		in.Status = StatusDraft
	case StatusDraft, StatusPublished:
	default:
		return fmt.Errorf("%w: status must be draft or published", ErrInvalidInput)
	}
	if in.Tags == nil {
		in.Tags = []string{}
	}
	return nil
}

// CreatePost derives the slug and excerpt, initializes counters, and
// records the post against the author's profile.
func (s *Service) CreatePost(ctx context.Context, author Author, in PostInput) (Post, error) {
	if err := in.validate(); err != nil {
		return Post{}, err
	}

	now := time.Now().UTC()
	post := Post{
		ID:          uuid.NewString(),
		Slug:        Slugify(in.Title),
		AuthorID:    author.ID,
		AuthorName:  author.Name,
		AuthorPhoto: author.Photo,
		Title:       in.Title,
		Content:     in.Content,
		Excerpt:     Excerpt(in.Content),
		Category:    in.Category,
		Tags:        in.Tags,
		Status:      in.Status,
		Featured:    in.Featured,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if post.Status == StatusPublished {
		post.PublishedAt = &now
	}

	if err := s.Repo.CreatePost(ctx, post); err != nil {
		return Post{}, err
	}

	if s.Profiles != nil {
		if err := s.Profiles.RecordPost(ctx, author.ID, author.Name); err != nil {
			telemetry.Warn("failed to record post on author profile", map[string]any{
				"authorId": author.ID,
				"error":    err.Error(),
			})
		}
	}
	return post, nil
}

// ListPublished returns published posts, newest publication first.
func (s *Service) ListPublished(ctx context.Context) ([]Post, error) {
	return s.Repo.ListPublished(ctx)
}

// ListByAuthor returns an author's posts. Drafts are visible only when the
// caller is the author.
func (s *Service) ListByAuthor(ctx context.Context, callerID, authorID string) ([]Post, error) {
	posts, err := s.Repo.ListByAuthor(ctx, authorID)
	if err != nil {
		return nil, err
	}
	if callerID != "" && callerID == authorID {
		return posts, nil
	}
	published := make([]Post, 0, len(posts))
	for _, p := range posts {
		if p.Status == StatusPublished {
			published = append(published, p)
		}
	}
	return published, nil
}

// GetBySlug returns a post and counts the view.
func (s *Service) GetBySlug(ctx context.Context, slug string) (Post, error) {
	post, err := s.Repo.GetPostBySlug(ctx, slug)
	if err != nil {
		return Post{}, err
	}
	if err := s.Repo.IncrementViews(ctx, post.ID); err != nil {
		telemetry.Warn("failed to count post view", map[string]any{
			"postId": post.ID,
			"error":  err.Error(),
		})
	} else {
		post.Views++
	}
	if s.Profiles != nil {
		if err := s.Profiles.AddView(ctx, post.AuthorID); err != nil {
			telemetry.Warn("failed to count profile view", map[string]any{
				"authorId": post.AuthorID,
				"error":    err.Error(),
			})
		}
	}
	return post, nil
}

// UpdatePost lets the author edit content fields. The slug stays stable
// so published URLs keep working. A draft transitioning to published
// gets its publication timestamp backfilled.
func (s *Service) UpdatePost(ctx context.Context, userID, postID string, in PostInput) (Post, error) {
	if err := in.validate(); err != nil {
		return Post{}, err
	}

	post, err := s.Repo.GetPostByID(ctx, postID)
	if err != nil {
		return Post{}, err
	}
	if post.AuthorID != userID {
		return Post{}, ErrForbidden
	}

	now := time.Now().UTC()
	post.Title = in.Title
	post.Content = in.Content
	post.Excerpt = Excerpt(in.Content)
	post.Category = in.Category
	post.Tags = in.Tags
	post.Featured = in.Featured
	post.UpdatedAt = now
	if in.Status == StatusPublished && post.Status != StatusPublished && post.PublishedAt == nil {
		post.PublishedAt = &now
	}
	post.Status = in.Status

	if err := s.Repo.UpdatePost(ctx, post); err != nil {
		return Post{}, err
	}
	return post, nil
}

func (s *Service) DeletePost(ctx context.Context, userID, postID string) error {
	post, err := s.Repo.GetPostByID(ctx, postID)
	if err != nil {
		return err
	}
	if post.AuthorID != userID {
		return ErrForbidden
	}
	return s.Repo.DeletePost(ctx, postID)
}

// LikeState reports one user's like on a post plus the total count.
type LikeState struct {
	Liked bool `json:"liked"`
	Likes int  `json:"likes"`
}

func (s *Service) ToggleLike(ctx context.Context, userID, postID string) (LikeState, error) {
	liked, likes, err := s.Repo.ToggleLike(ctx, postID, userID)
	if err != nil {
		return LikeState{}, err
	}
	if s.Profiles != nil {
		post, getErr := s.Repo.GetPostByID(ctx, postID)
		if getErr == nil {
			delta := 1
			if !liked {
				delta = -1
			}
			if err := s.Profiles.AddLikes(ctx, post.AuthorID, delta); err != nil {
				telemetry.Warn("failed to adjust profile likes", map[string]any{
					"authorId": post.AuthorID,
					"error":    err.Error(),
				})
			}
		}
	}
	return LikeState{Liked: liked, Likes: likes}, nil
}

func (s *Service) HasLiked(ctx context.Context, userID, postID string) (LikeState, error) {
	post, err := s.Repo.GetPostByID(ctx, postID)
	if err != nil {
		return LikeState{}, err
	}
	liked, err := s.Repo.HasLiked(ctx, postID, userID)
	if err != nil {
		return LikeState{}, err
	}
	return LikeState{Liked: liked, Likes: post.Likes}, nil
}

func (s *Service) AddComment(ctx context.Context, author Author, postID, content string) (Comment, error) {
	if strings.TrimSpace(content) == "" {
		return Comment{}, fmt.Errorf("%w: content is required", ErrInvalidInput)
	}
	if _, err := s.Repo.GetPostByID(ctx, postID); err != nil {
		return Comment{}, err
	}

	comment := Comment{
		ID:          uuid.NewString(),
		PostID:      postID,
		AuthorID:    author.ID,
		AuthorName:  author.Name,
		AuthorPhoto: author.Photo,
		Content:     content,
		CreatedAt:   time.Now().UTC(),
	}
	if err := s.Repo.CreateComment(ctx, comment); err != nil {
		return Comment{}, err
	}
	return comment, nil
}

func (s *Service) ListComments(ctx context.Context, postID string) ([]Comment, error) {
	if _, err := s.Repo.GetPostByID(ctx, postID); err != nil {
		return nil, err
	}
	return s.Repo.ListComments(ctx, postID)
}

// DeleteComment removes a comment; only the comment's author may do so.
func (s *Service) DeleteComment(ctx context.Context, userID, postID, commentID string) error {
	comment, err := s.Repo.GetComment(ctx, postID, commentID)
	if err != nil {
		return err
	}
	if comment.AuthorID != userID {
		return ErrForbidden
	}
	return s.Repo.DeleteComment(ctx, postID, commentID)
}
