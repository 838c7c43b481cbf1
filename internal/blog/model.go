package blog

import "time"

const (
	StatusDraft     = "draft"
	StatusPublished = "published"
)

// Post is a blog article. PublishedAt is set when the post first reaches
// the published status, including a later draft-to-published transition.
type Post struct {
	ID            string     `json:"id"`
	Slug          string     `json:"slug"`
	AuthorID      string     `json:"authorId"`
	AuthorName    string     `json:"authorName"`
	AuthorPhoto   string     `json:"authorPhoto,omitempty"`
	Title         string     `json:"title"`
	Content       string     `json:"content"`
	Excerpt       string     `json:"excerpt"`
	Category      string     `json:"category,omitempty"`
	Tags          []string   `json:"tags"`
	Status        string     `json:"status"`
	Likes         int        `json:"likes"`
	Views         int        `json:"views"`
	CommentsCount int        `json:"commentsCount"`
	Featured      bool       `json:"featured"`
	CreatedAt     time.Time  `json:"createdAt"`
	UpdatedAt     time.Time  `json:"updatedAt"`
	PublishedAt   *time.Time `json:"publishedAt,omitempty"`
}

// Comment belongs to a post and is deletable only by its author.
type Comment struct {
	ID          string    `json:"id"`
	PostID      string    `json:"postId"`
	AuthorID    string    `json:"authorId"`
	AuthorName  string    `json:"authorName"`
	AuthorPhoto string    `json:"authorPhoto,omitempty"`
	Content     string    `json:"content"`
	Likes       int       `json:"likes"`
	CreatedAt   time.Time `json:"createdAt"`
}

// Author carries the session identity attached to posts and comments.
type Author struct {
	ID    string
	Name  string
	Photo string
}
