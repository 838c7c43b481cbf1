package profiles

import (
	"context"
	"sync"
	"time"
)

type MemoryRepo struct {
	mu       sync.RWMutex
	profiles map[string]Profile
}

func NewMemoryRepo() *MemoryRepo {
	return &MemoryRepo{profiles: make(map[string]Profile)}
}

func (r *MemoryRepo) GetByUserID(ctx context.Context, userID string) (Profile, error) {
	if err := ctx.Err(); err != nil {
		return Profile{}, err
	}
	r.mu.RLock()
	defer r.mu.RUnlock()
	profile, ok := r.profiles[userID]
	if !ok {
		return Profile{}, ErrNotFound
	}
	return profile, nil
}

func (r *MemoryRepo) Upsert(ctx context.Context, profile Profile) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	now := time.Now().UTC()
	existing, ok := r.profiles[profile.UserID]
	if ok {
		profile.PostsCount = existing.PostsCount
		profile.TotalLikes = existing.TotalLikes
		profile.TotalViews = existing.TotalViews
		profile.CreatedAt = existing.CreatedAt
	} else {
		profile.CreatedAt = now
	}
	profile.UpdatedAt = now
	r.profiles[profile.UserID] = profile
	return nil
}

func (r *MemoryRepo) AdjustCounters(ctx context.Context, userID, displayName string, posts, likes, views int) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	now := time.Now().UTC()
	profile, ok := r.profiles[userID]
	if !ok {
		profile = Profile{
			UserID:      userID,
			DisplayName: displayName,
			CreatedAt:   now,
		}
	}
	profile.PostsCount = clampZero(profile.PostsCount + posts)
	profile.TotalLikes = clampZero(profile.TotalLikes + likes)
	profile.TotalViews = clampZero(profile.TotalViews + views)
	profile.UpdatedAt = now
	r.profiles[userID] = profile
	return nil
}

func clampZero(v int) int {
	if v < 0 {
		return 0
	}
	return v
}
