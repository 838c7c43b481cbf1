package blog

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"
)

type PGRepo struct {
	DB *sql.DB
}

const postColumns = `id, slug, author_id, author_name, author_photo, title, content, excerpt, category, tags, status, likes, views, comments_count, featured, created_at, updated_at, published_at`

type rowScanner interface {
	Scan(dest ...any) error
}

func scanPost(row rowScanner) (Post, error) {
	var post Post
	var tagsJSON []byte
	var publishedAt sql.NullTime
	err := row.Scan(
		&post.ID,
		&post.Slug,
		&post.AuthorID,
		&post.AuthorName,
		&post.AuthorPhoto,
		&post.Title,
		&post.Content,
		&post.Excerpt,
		&post.Category,
		&tagsJSON,
		&post.Status,
		&post.Likes,
		&post.Views,
		&post.CommentsCount,
		&post.Featured,
		&post.CreatedAt,
		&post.UpdatedAt,
		&publishedAt,
	)
	if err != nil {
		return Post{}, err
	}
	if len(tagsJSON) > 0 {
		if err := json.Unmarshal(tagsJSON, &post.Tags); err != nil {
			return Post{}, fmt.Errorf("decode post tags: %w", err)
		}
	}
	if post.Tags == nil {
		post.Tags = []string{}
	}
	if publishedAt.Valid {
		t := publishedAt.Time
		post.PublishedAt = &t
	}
	return post, nil
}

func (r *PGRepo) CreatePost(ctx context.Context, post Post) error {
	tagsJSON, err := json.Marshal(post.Tags)
	if err != nil {
		return fmt.Errorf("encode post tags: %w", err)
	}
	const query = `
INSERT INTO blog_posts (` + postColumns + `)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18)`
	_, err = r.DB.ExecContext(ctx, query,
		post.ID,
		post.Slug,
		post.AuthorID,
		post.AuthorName,
		post.AuthorPhoto,
		post.Title,
		post.Content,
		post.Excerpt,
		post.Category,
		tagsJSON,
		post.Status,
		post.Likes,
		post.Views,
		post.CommentsCount,
		post.Featured,
		post.CreatedAt,
		post.UpdatedAt,
		nullableTime(post.PublishedAt),
	)
	return err
}

func (r *PGRepo) GetPostByID(ctx context.Context, id string) (Post, error) {
	const query = `SELECT ` + postColumns + ` FROM blog_posts WHERE id = $1 LIMIT 1`
	post, err := scanPost(r.DB.QueryRowContext(ctx, query, id))
	if errors.Is(err, sql.ErrNoRows) {
		return Post{}, ErrNotFound
	}
	return post, err
}

func (r *PGRepo) GetPostBySlug(ctx context.Context, slug string) (Post, error) {
	const query = `SELECT ` + postColumns + ` FROM blog_posts WHERE slug = $1 ORDER BY created_at DESC LIMIT 1`
	post, err := scanPost(r.DB.QueryRowContext(ctx, query, slug))
	if errors.Is(err, sql.ErrNoRows) {
		return Post{}, ErrNotFound
	}
	return post, err
}

func (r *PGRepo) ListPublished(ctx context.Context) ([]Post, error) {
	const query = `SELECT ` + postColumns + ` FROM blog_posts WHERE status = 'published' ORDER BY published_at DESC NULLS LAST`
	return r.listPosts(ctx, query)
}

func (r *PGRepo) ListByAuthor(ctx context.Context, authorID string) ([]Post, error) {
	const query = `SELECT ` + postColumns + ` FROM blog_posts WHERE author_id = $1 ORDER BY created_at DESC`
	return r.listPosts(ctx, query, authorID)
}

func (r *PGRepo) listPosts(ctx context.Context, query string, args ...any) ([]Post, error) {
	rows, err := r.DB.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	posts := make([]Post, 0)
	for rows.Next() {
		post, err := scanPost(rows)
		if err != nil {
			return nil, err
		}
		posts = append(posts, post)
	}
	return posts, rows.Err()
}

func (r *PGRepo) UpdatePost(ctx context.Context, post Post) error {
	tagsJSON, err := json.Marshal(post.Tags)
	if err != nil {
		return fmt.Errorf("encode post tags: %w", err)
	}
	const query = `
UPDATE blog_posts SET
  title = $2, content = $3, excerpt = $4, category = $5, tags = $6,
  status = $7, featured = $8, updated_at = $9, published_at = $10
WHERE id = $1`
	res, err := r.DB.ExecContext(ctx, query,
		post.ID,
		post.Title,
		post.Content,
		post.Excerpt,
		post.Category,
		tagsJSON,
		post.Status,
		post.Featured,
		post.UpdatedAt,
		nullableTime(post.PublishedAt),
	)
	if err != nil {
		return err
	}
	return requireRow(res)
}

func (r *PGRepo) DeletePost(ctx context.Context, id string) error {
	res, err := r.DB.ExecContext(ctx, `DELETE FROM blog_posts WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if err := requireRow(res); err != nil {
		return err
	}
	if _, err := r.DB.ExecContext(ctx, `DELETE FROM post_likes WHERE post_id = $1`, id); err != nil {
		return err
	}
	_, err = r.DB.ExecContext(ctx, `DELETE FROM comments WHERE post_id = $1`, id)
	return err
}

func (r *PGRepo) IncrementViews(ctx context.Context, id string) error {
	res, err := r.DB.ExecContext(ctx, `UPDATE blog_posts SET views = views + 1 WHERE id = $1`, id)
	if err != nil {
		return err
	}
	return requireRow(res)
}

func (r *PGRepo) ToggleLike(ctx context.Context, postID, userID string) (bool, int, error) {
	tx, err := r.DB.BeginTx(ctx, nil)
	if err != nil {
		return false, 0, err
	}
	defer tx.Rollback()

	res, err := tx.ExecContext(ctx, `DELETE FROM post_likes WHERE post_id = $1 AND user_id = $2`, postID, userID)
	if err != nil {
		return false, 0, err
	}
	removed, err := res.RowsAffected()
	if err != nil {
		return false, 0, err
	}

	liked := removed == 0
	if liked {
		if _, err := tx.ExecContext(ctx, `INSERT INTO post_likes (post_id, user_id) VALUES ($1, $2)`, postID, userID); err != nil {
			return false, 0, err
		}
	}

	delta := 1
	if !liked {
		delta = -1
	}
	var likes int
	err = tx.QueryRowContext(ctx, `UPDATE blog_posts SET likes = likes + $2 WHERE id = $1 RETURNING likes`, postID, delta).Scan(&likes)
	if errors.Is(err, sql.ErrNoRows) {
		return false, 0, ErrNotFound
	}
	if err != nil {
		return false, 0, err
	}

	return liked, likes, tx.Commit()
}

func (r *PGRepo) HasLiked(ctx context.Context, postID, userID string) (bool, error) {
	var exists bool
	err := r.DB.QueryRowContext(ctx,
		`SELECT EXISTS (SELECT 1 FROM post_likes WHERE post_id = $1 AND user_id = $2)`, postID, userID).Scan(&exists)
	return exists, err
}

func (r *PGRepo) CreateComment(ctx context.Context, comment Comment) error {
	tx, err := r.DB.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	const query = `
INSERT INTO comments (id, post_id, author_id, author_name, author_photo, content, likes, created_at)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`
	if _, err := tx.ExecContext(ctx, query,
		comment.ID,
		comment.PostID,
		comment.AuthorID,
		comment.AuthorName,
		comment.AuthorPhoto,
		comment.Content,
		comment.Likes,
		comment.CreatedAt,
	); err != nil {
		return err
	}

	res, err := tx.ExecContext(ctx, `UPDATE blog_posts SET comments_count = comments_count + 1 WHERE id = $1`, comment.PostID)
	if err != nil {
		return err
	}
	if err := requireRow(res); err != nil {
		return err
	}
	return tx.Commit()
}

func (r *PGRepo) ListComments(ctx context.Context, postID string) ([]Comment, error) {
	const query = `
SELECT id, post_id, author_id, author_name, author_photo, content, likes, created_at
FROM comments
WHERE post_id = $1
ORDER BY created_at ASC`
	rows, err := r.DB.QueryContext(ctx, query, postID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	comments := make([]Comment, 0)
	for rows.Next() {
		var cm Comment
		if err := rows.Scan(
			&cm.ID,
			&cm.PostID,
			&cm.AuthorID,
			&cm.AuthorName,
			&cm.AuthorPhoto,
			&cm.Content,
			&cm.Likes,
			&cm.CreatedAt,
		); err != nil {
			return nil, err
		}
		comments = append(comments, cm)
	}
	return comments, rows.Err()
}

func (r *PGRepo) GetComment(ctx context.Context, postID, commentID string) (Comment, error) {
	const query = `
SELECT id, post_id, author_id, author_name, author_photo, content, likes, created_at
FROM comments
WHERE id = $1 AND post_id = $2
LIMIT 1`
	var cm Comment
	err := r.DB.QueryRowContext(ctx, query, commentID, postID).Scan(
		&cm.ID,
		&cm.PostID,
		&cm.AuthorID,
		&cm.AuthorName,
		&cm.AuthorPhoto,
		&cm.Content,
		&cm.Likes,
		&cm.CreatedAt,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return Comment{}, ErrNotFound
	}
	return cm, err
}

func (r *PGRepo) DeleteComment(ctx context.Context, postID, commentID string) error {
	tx, err := r.DB.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	res, err := tx.ExecContext(ctx, `DELETE FROM comments WHERE id = $1 AND post_id = $2`, commentID, postID)
	if err != nil {
		return err
	}
	if err := requireRow(res); err != nil {
		return err
	}
	if _, err := tx.ExecContext(ctx, `UPDATE blog_posts SET comments_count = GREATEST(comments_count - 1, 0) WHERE id = $1`, postID); err != nil {
		return err
	}
	return tx.Commit()
}

func requireRow(res sql.Result) error {
	affected, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return ErrNotFound
	}
	return nil
}

func nullableTime(t *time.Time) any {
	if t == nil {
		return nil
	}
	return *t
}
