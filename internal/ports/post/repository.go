package post

import (
	"context"
	"time"

	"github.com/gofrs/uuid"

	"github.com/wiky-avis/Yatube/internal/core/post"
	groupPort "github.com/wiky-avis/Yatube/internal/ports/group"
	userPort "github.com/wiky-avis/Yatube/internal/ports/user"
)

// Query narrows a post listing. Zero value means every post.
type Query struct {
	AuthorID   *uuid.UUID
	GroupID    *uuid.UUID
	FollowedBy *uuid.UUID
	Search     string
}

// PostRepository stores posts and their comments. Listings are ordered
// newest first.
type PostRepository interface {
	Create(ctx context.Context, p *post.Post) (*post.Post, error)
	FindByID(ctx context.Context, id uuid.UUID) (*post.Post, error)
	Update(ctx context.Context, p *post.Post) error
	Delete(ctx context.Context, id uuid.UUID) error
	List(ctx context.Context, q Query, offset, limit int) ([]*post.Post, error)
	Count(ctx context.Context, q Query) (int64, error)

	AddComment(ctx context.Context, c *post.Comment) (*post.Comment, error)
	ListComments(ctx context.Context, postID uuid.UUID) ([]*post.Comment, error)
}

type PostDTO struct {
	ID        string              `json:"id"`
	Text      string              `json:"text"`
	AuthorID  string              `json:"author_id"`
	Author    *userPort.UserDTO   `json:"author,omitempty"`
	Group     *groupPort.GroupDTO `json:"group,omitempty"`
	Image     *string             `json:"image,omitempty"`
	CreatedAt time.Time           `json:"created_at"`
}

type CommentDTO struct {
	ID        string            `json:"id"`
	PostID    string            `json:"post_id"`
	Author    *userPort.UserDTO `json:"author,omitempty"`
	Text      string            `json:"text"`
	CreatedAt time.Time         `json:"created_at"`
}

// PostViewDTO is a single post with its comments and author statistics.
type PostViewDTO struct {
	Post            *PostDTO      `json:"post"`
	Comments        []*CommentDTO `json:"comments"`
	AuthorPostCount int64         `json:"author_post_count"`
	FollowerCount   int64         `json:"follower_count"`
	FollowingCount  int64         `json:"following_count"`
	Following       bool          `json:"following"`
}

func ToDTO(p *post.Post) *PostDTO {
	d := &PostDTO{
		ID:        p.ID.String(),
		Text:      p.Text,
		AuthorID:  p.AuthorID.String(),
		Author:    userPort.ToDTO(p.Author),
		Group:     groupPort.ToDTO(p.Group),
		Image:     p.Image,
		CreatedAt: p.CreatedAt,
	}
	return d
}

func CommentToDTO(c *post.Comment) *CommentDTO {
	return &CommentDTO{
		ID:        c.ID.String(),
		PostID:    c.PostID.String(),
		Author:    userPort.ToDTO(c.Author),
		Text:      c.Text,
		CreatedAt: c.CreatedAt,
	}
}
