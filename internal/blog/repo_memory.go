package blog

import (
	"context"
	"sort"
	"sync"
)

type MemoryRepo struct {
	mu       sync.RWMutex
	posts    map[string]Post
	likes    map[string]map[string]struct{} // postID -> userID set
	comments map[string][]Comment           // postID -> ordered comments
}

func NewMemoryRepo() *MemoryRepo {
	return &MemoryRepo{
		posts:    make(map[string]Post),
		likes:    make(map[string]map[string]struct{}),
		comments: make(map[string][]Comment),
	}
}

func (r *MemoryRepo) CreatePost(ctx context.Context, post Post) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	clonePostInto(&post)
	r.posts[post.ID] = post
	return nil
}

func (r *MemoryRepo) GetPostByID(ctx context.Context, id string) (Post, error) {
	if err := ctx.Err(); err != nil {
		return Post{}, err
	}
	r.mu.RLock()
	defer r.mu.RUnlock()
	post, ok := r.posts[id]
	if !ok {
		return Post{}, ErrNotFound
	}
	return post, nil
}

func (r *MemoryRepo) GetPostBySlug(ctx context.Context, slug string) (Post, error) {
	if err := ctx.Err(); err != nil {
		return Post{}, err
	}
	r.mu.RLock()
	defer r.mu.RUnlock()
	var found *Post
	for _, post := range r.posts {
		if post.Slug != slug {
			continue
		}
		post := post
		if found == nil || post.CreatedAt.After(found.CreatedAt) {
			found = &post
		}
	}
	if found == nil {
		return Post{}, ErrNotFound
	}
	return *found, nil
}

func (r *MemoryRepo) ListPublished(ctx context.Context) ([]Post, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	r.mu.RLock()
	defer r.mu.RUnlock()
	posts := make([]Post, 0)
	for _, post := range r.posts {
		if post.Status == StatusPublished {
			posts = append(posts, post)
		}
	}
	sort.Slice(posts, func(i, j int) bool {
		pi, pj := posts[i].PublishedAt, posts[j].PublishedAt
		switch {
		case pi == nil:
			return false
		case pj == nil:
			return true
		default:
			return pi.After(*pj)
		}
	})
	return posts, nil
}

func (r *MemoryRepo) ListByAuthor(ctx context.Context, authorID string) ([]Post, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	r.mu.RLock()
	defer r.mu.RUnlock()
	posts := make([]Post, 0)
	for _, post := range r.posts {
		if post.AuthorID == authorID {
			posts = append(posts, post)
		}
	}
	sort.Slice(posts, func(i, j int) bool {
		return posts[i].CreatedAt.After(posts[j].CreatedAt)
	})
	return posts, nil
}

func (r *MemoryRepo) UpdatePost(ctx context.Context, post Post) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	existing, ok := r.posts[post.ID]
	if !ok {
		return ErrNotFound
	}
	// Counters are owned by the repo, not the caller.
	post.Likes = existing.Likes
	post.Views = existing.Views
	post.CommentsCount = existing.CommentsCount
	clonePostInto(&post)
	r.posts[post.ID] = post
	return nil
}

func (r *MemoryRepo) DeletePost(ctx context.Context, id string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.posts[id]; !ok {
		return ErrNotFound
	}
	delete(r.posts, id)
	delete(r.likes, id)
	delete(r.comments, id)
	return nil
}

func (r *MemoryRepo) IncrementViews(ctx context.Context, id string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	post, ok := r.posts[id]
	if !ok {
		return ErrNotFound
	}
	post.Views++
	r.posts[id] = post
	return nil
}

func (r *MemoryRepo) ToggleLike(ctx context.Context, postID, userID string) (bool, int, error) {
	if err := ctx.Err(); err != nil {
		return false, 0, err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	post, ok := r.posts[postID]
	if !ok {
		return false, 0, ErrNotFound
	}
	set := r.likes[postID]
	if set == nil {
		set = make(map[string]struct{})
		r.likes[postID] = set
	}
	var liked bool
	if _, has := set[userID]; has {
		delete(set, userID)
		post.Likes--
	} else {
		set[userID] = struct{}{}
		post.Likes++
		liked = true
	}
	if post.Likes < 0 {
		post.Likes = 0
	}
	r.posts[postID] = post
	return liked, post.Likes, nil
}

func (r *MemoryRepo) HasLiked(ctx context.Context, postID, userID string) (bool, error) {
	if err := ctx.Err(); err != nil {
		return false, err
	}
	r.mu.RLock()
	defer r.mu.RUnlock()
	_, has := r.likes[postID][userID]
	return has, nil
}

func (r *MemoryRepo) CreateComment(ctx context.Context, comment Comment) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	post, ok := r.posts[comment.PostID]
	if !ok {
		return ErrNotFound
	}
	r.comments[comment.PostID] = append(r.comments[comment.PostID], comment)
	post.CommentsCount++
	r.posts[comment.PostID] = post
	return nil
}

func (r *MemoryRepo) ListComments(ctx context.Context, postID string) ([]Comment, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	r.mu.RLock()
	defer r.mu.RUnlock()
	comments := make([]Comment, len(r.comments[postID]))
	copy(comments, r.comments[postID])
	return comments, nil
}

func (r *MemoryRepo) GetComment(ctx context.Context, postID, commentID string) (Comment, error) {
	if err := ctx.Err(); err != nil {
		return Comment{}, err
	}
	r.mu.RLock()
	defer r.mu.RUnlock()
	for _, cm := range r.comments[postID] {
		if cm.ID == commentID {
			return cm, nil
		}
	}
	return Comment{}, ErrNotFound
}

func (r *MemoryRepo) DeleteComment(ctx context.Context, postID, commentID string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	list := r.comments[postID]
	for i, cm := range list {
		if cm.ID != commentID {
			continue
		}
		r.comments[postID] = append(list[:i], list[i+1:]...)
		if post, ok := r.posts[postID]; ok && post.CommentsCount > 0 {
			post.CommentsCount--
			r.posts[postID] = post
		}
		return nil
	}
	return ErrNotFound
}

func clonePostInto(post *Post) {
	if post.Tags == nil {
		post.Tags = []string{}
		return
	}
	tags := make([]string, len(post.Tags))
	copy(tags, post.Tags)
	post.Tags = tags
}
