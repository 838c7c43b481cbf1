package profiles

import "context"

// Repo persists profiles. AdjustCounters creates the profile row lazily
// when it does not exist yet.
type Repo interface {
	GetByUserID(ctx context.Context, userID string) (Profile, error)
	Upsert(ctx context.Context, profile Profile) error
	AdjustCounters(ctx context.Context, userID, displayName string, posts, likes, views int) error
}
