package blog

import "context"

// Repo persists posts, per-user like state, and comments.
type Repo interface {
	CreatePost(ctx context.Context, post Post) error
	GetPostByID(ctx context.Context, id string) (Post, error)
	GetPostBySlug(ctx context.Context, slug string) (Post, error)
	ListPublished(ctx context.Context) ([]Post, error)
	ListByAuthor(ctx context.Context, authorID string) ([]Post, error)
	UpdatePost(ctx context.Context, post Post) error
	DeletePost(ctx context.Context, id string) error

	IncrementViews(ctx context.Context, id string) error
	// ToggleLike flips the caller's like on the post and returns the new
	// state plus the resulting like count.
	ToggleLike(ctx context.Context, postID, userID string) (liked bool, likes int, err error)
	HasLiked(ctx context.Context, postID, userID string) (bool, error)

	CreateComment(ctx context.Context, comment Comment) error
	ListComments(ctx context.Context, postID string) ([]Comment, error)
	GetComment(ctx context.Context, postID, commentID string) (Comment, error)
	DeleteComment(ctx context.Context, postID, commentID string) error
}
