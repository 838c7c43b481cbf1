package profiles

import (
	"context"
	"database/sql"
	"errors"
)

type PGRepo struct {
	DB *sql.DB
}

func (r *PGRepo) GetByUserID(ctx context.Context, userID string) (Profile, error) {
	const query = `
SELECT user_id, display_name, email, bio, website, twitter, linkedin,
       posts_count, total_likes, total_views, created_at, updated_at
FROM profiles
WHERE user_id = $1
LIMIT 1`
	var p Profile
	err := r.DB.QueryRowContext(ctx, query, userID).Scan(
		&p.UserID,
		&p.DisplayName,
		&p.Email,
		&p.Bio,
		&p.Website,
		&p.Twitter,
		&p.LinkedIn,
		&p.PostsCount,
		&p.TotalLikes,
		&p.TotalViews,
		&p.CreatedAt,
		&p.UpdatedAt,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return Profile{}, ErrNotFound
	}
	if err != nil {
		return Profile{}, err
	}
	return p, nil
}

func (r *PGRepo) Upsert(ctx context.Context, profile Profile) error {
	const query = `
INSERT INTO profiles (user_id, display_name, email, bio, website, twitter, linkedin, created_at, updated_at)
VALUES ($1, $2, $3, $4, $5, $6, $7, now(), now())
ON CONFLICT (user_id) DO UPDATE SET
  display_name = EXCLUDED.display_name,
  email = EXCLUDED.email,
  bio = EXCLUDED.bio,
  website = EXCLUDED.website,
  twitter = EXCLUDED.twitter,
  linkedin = EXCLUDED.linkedin,
  updated_at = now()`
	_, err := r.DB.ExecContext(ctx, query,
		profile.UserID,
		profile.DisplayName,
		profile.Email,
		profile.Bio,
		profile.Website,
		profile.Twitter,
		profile.LinkedIn,
	)
	return err
}

func (r *PGRepo) AdjustCounters(ctx context.Context, userID, displayName string, posts, likes, views int) error {
	const query = `
INSERT INTO profiles (user_id, display_name, posts_count, total_likes, total_views, created_at, updated_at)
VALUES ($1, $2, GREATEST($3, 0), GREATEST($4, 0), GREATEST($5, 0), now(), now())
ON CONFLICT (user_id) DO UPDATE SET
  posts_count = GREATEST(profiles.posts_count + $3, 0),
  total_likes = GREATEST(profiles.total_likes + $4, 0),
  total_views = GREATEST(profiles.total_views + $5, 0),
  updated_at = now()`
	_, err := r.DB.ExecContext(ctx, query, userID, displayName, posts, likes, views)
	return err
}
