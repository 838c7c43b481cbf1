package profiles

import "time"

// Profile is a user's public profile with aggregate authoring counters.
// It is created lazily on first profile write or first authored post.
type Profile struct {
	UserID      string    `json:"userId"`
	DisplayName string    `json:"displayName"`
	Email       string    `json:"email,omitempty"`
	Bio         string    `json:"bio,omitempty"`
	Website     string    `json:"website,omitempty"`
	Twitter     string    `json:"twitter,omitempty"`
	LinkedIn    string    `json:"linkedin,omitempty"`
	PostsCount  int       `json:"postsCount"`
	TotalLikes  int       `json:"totalLikes"`
	TotalViews  int       `json:"totalViews"`
	Reputation  int       `json:"reputation"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

// computeReputation weights authored posts the highest, then likes
// received, then views.
func (p *Profile) computeReputation() {
	p.Reputation = p.PostsCount*10 + p.TotalLikes*5 + p.TotalViews/10
}
