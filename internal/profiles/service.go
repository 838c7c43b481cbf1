package profiles

import (
	"context"
	"fmt"
	"strings"
)

// Service manages user profiles and their aggregate counters. It also
// satisfies the blog package's ProfileCounter interface.
type Service struct {
	Repo Repo
}

func NewService(repo Repo) *Service {
	return &Service{Repo: repo}
}

func (s *Service) Get(ctx context.Context, userID string) (Profile, error) {
	profile, err := s.Repo.GetByUserID(ctx, userID)
	if err != nil {
		return Profile{}, err
	}
	profile.computeReputation()
	return profile, nil
}

// UpdateInput is the user-editable part of a profile.
type UpdateInput struct {
	DisplayName string `json:"displayName"`
	Email       string `json:"email"`
	Bio         string `json:"bio"`
	Website     string `json:"website"`
	Twitter     string `json:"twitter"`
	LinkedIn    string `json:"linkedin"`
}

// Update writes profile fields, creating the profile if it does not
// exist yet.
func (s *Service) Update(ctx context.Context, userID string, in UpdateInput) (Profile, error) {
	if strings.TrimSpace(in.DisplayName) == "" {
		return Profile{}, fmt.Errorf("%w: displayName is required", ErrInvalidInput)
	}
	err := s.Repo.Upsert(ctx, Profile{
		UserID:      userID,
		DisplayName: in.DisplayName,
		Email:       in.Email,
		Bio:         in.Bio,
		Website:     in.Website,
		Twitter:     in.Twitter,
		LinkedIn:    in.LinkedIn,
	})
	if err != nil {
		return Profile{}, err
	}
	return s.Get(ctx, userID)
}

// RecordPost counts one authored post, creating the profile lazily.
func (s *Service) RecordPost(ctx context.Context, userID, displayName string) error {
	return s.Repo.AdjustCounters(ctx, userID, displayName, 1, 0, 0)
}

// AddLikes adjusts the author's received-likes total by delta.
func (s *Service) AddLikes(ctx context.Context, userID string, delta int) error {
	return s.Repo.AdjustCounters(ctx, userID, "", 0, delta, 0)
}

// AddView counts one view of the author's content.
func (s *Service) AddView(ctx context.Context, userID string) error {
	return s.Repo.AdjustCounters(ctx, userID, "", 0, 0, 1)
}
