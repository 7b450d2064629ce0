package feed

import (
	"context"
	"time"

	groupPort "github.com/wiky-avis/Yatube/internal/ports/group"
	postPort "github.com/wiky-avis/Yatube/internal/ports/post"
	userPort "github.com/wiky-avis/Yatube/internal/ports/user"
)

// FeedCache is a TTL key/value store for rendered feed pages.
type FeedCache interface {
	Get(ctx context.Context, key string) ([]byte, bool, error)
	Set(ctx context.Context, key string, value []byte, ttl time.Duration) error
}

type Page struct {
	Number      int                 `json:"number"`
	Size        int                 `json:"size"`
	Total       int64               `json:"total"`
	NumPages    int                 `json:"num_pages"`
	HasNext     bool                `json:"has_next"`
	HasPrevious bool                `json:"has_previous"`
	Posts       []*postPort.PostDTO `json:"posts"`
}

type GroupPage struct {
	Group *groupPort.GroupDTO `json:"group"`
	Page  *Page               `json:"page"`
}

type ProfilePage struct {
	Author         *userPort.UserDTO `json:"author"`
	Photo          string            `json:"photo"`
	Page           *Page             `json:"page"`
	PostCount      int64             `json:"post_count"`
	FollowerCount  int64             `json:"follower_count"`
	FollowingCount int64             `json:"following_count"`
	Following      bool              `json:"following"`
}
