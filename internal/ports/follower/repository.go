package follower

import (
	"context"
	"time"

	"github.com/gofrs/uuid"

	"github.com/wiky-avis/Yatube/internal/core/follower"
)

// FollowerRepository stores follow edges.
type FollowerRepository interface {
	// Follow inserts the edge unless it exists and reports whether it did.
	Follow(ctx context.Context, f *follower.Follow) (bool, error)
	// Unfollow removes the edge and reports whether one existed.
	Unfollow(ctx context.Context, userID, authorID uuid.UUID) (bool, error)
	IsFollowing(ctx context.Context, userID, authorID uuid.UUID) (bool, error)
	CountFollowers(ctx context.Context, authorID uuid.UUID) (int64, error)
	CountFollowing(ctx context.Context, userID uuid.UUID) (int64, error)
	GetFollowers(ctx context.Context, authorID uuid.UUID) ([]*follower.Follow, error)
	GetFollowing(ctx context.Context, userID uuid.UUID) ([]*follower.Follow, error)
}

type FollowerDTO struct {
	ID        string    `json:"id"`
	UserID    string    `json:"user_id"`
	Username  string    `json:"username,omitempty"`
	AuthorID  string    `json:"author_id"`
	Author    string    `json:"author,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}

func ToDTO(f *follower.Follow) *FollowerDTO {
	d := &FollowerDTO{
		ID:        f.ID.String(),
		UserID:    f.UserID.String(),
		AuthorID:  f.AuthorID.String(),
		CreatedAt: f.CreatedAt,
	}
	if f.User != nil {
		d.Username = f.User.Username
	}
	if f.Author != nil {
		d.Author = f.Author.Username
	}
	return d
}
