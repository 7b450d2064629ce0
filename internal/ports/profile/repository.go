package profile

import (
	"context"

	"github.com/gofrs/uuid"

	"github.com/wiky-avis/Yatube/internal/core/profile"
)

type ProfileRepository interface {
	Create(ctx context.Context, p *profile.Profile) error
	FindByUserID(ctx context.Context, userID uuid.UUID) (*profile.Profile, error)
	UpdatePhoto(ctx context.Context, userID uuid.UUID, photo string) error
}

type ProfileDTO struct {
	UserID string `json:"user_id"`
	Photo  string `json:"photo"`
}
