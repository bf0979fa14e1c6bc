package domain

import (
	"time"

	"github.com/tvules/Foodgram/internal/errors"
)

// Follow links a follower to an author they subscribe to.
type Follow struct {
	FollowerID string    `json:"follower_id"`
	FolloweeID string    `json:"followee_id"`
	CreatedAt  time.Time `json:"created_at"`
}

// Validate rejects self-follows regardless of how the pair was produced.
func (f *Follow) Validate() error {
	if f.FollowerID == f.FolloweeID {
		return errors.Validation("You cannot follow to yourself.")
	}
	return nil
}

// Subscription is a followed author with their recipes for list views.
type Subscription struct {
	UserProfile
	Recipes      []RecipePreview `json:"recipes"`
	RecipesCount int             `json:"recipes_count"`
}
