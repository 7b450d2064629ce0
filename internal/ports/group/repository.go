package group

import (
	"context"

	"github.com/gofrs/uuid"

	"github.com/wiky-avis/Yatube/internal/core/group"
)

type GroupRepository interface {
	Create(ctx context.Context, g *group.Group) (*group.Group, error)
	FindBySlug(ctx context.Context, slug string) (*group.Group, error)
	List(ctx context.Context) ([]*group.Group, error)
	// Delete detaches the group's posts and removes the group.
	Delete(ctx context.Context, id uuid.UUID) error
}

type GroupDTO struct {
	ID          string `json:"id"`
	Title       string `json:"title"`
	Slug        string `json:"slug"`
	Description string `json:"description"`
}

func ToDTO(g *group.Group) *GroupDTO {
	if g == nil {
		return nil
	}
	return &GroupDTO{
		ID:          g.ID.String(),
		Title:       g.Title,
		Slug:        g.Slug,
		Description: g.Description,
	}
}
