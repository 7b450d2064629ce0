package database

import (
	"context"

	"github.com/gofrs/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/wiky-avis/Yatube/internal/core/profile"
)

type ProfileRepositoryDatabase struct {
	DB *gorm.DB
}

func NewProfileRepositoryDatabase(db *gorm.DB) *ProfileRepositoryDatabase {
	return &ProfileRepositoryDatabase{DB: db}
}

// Create is idempotent per user.
func (repo *ProfileRepositoryDatabase) Create(ctx context.Context, p *profile.Profile) error {
	return repo.DB.WithContext(ctx).
		Clauses(clause.OnConflict{Columns: []clause.Column{{Name: "user_id"}}, DoNothing: true}).
		Create(p).Error
}

func (repo *ProfileRepositoryDatabase) FindByUserID(ctx context.Context, userID uuid.UUID) (*profile.Profile, error) {
	var p profile.Profile
	if err := repo.DB.WithContext(ctx).Where("user_id = ?", userID).First(&p).Error; err != nil {
		return nil, notFound(err, profile.ErrProfileNotFound)
	}
	return &p, nil
}

func (repo *ProfileRepositoryDatabase) UpdatePhoto(ctx context.Context, userID uuid.UUID, photo string) error {
	res := repo.DB.WithContext(ctx).Model(&profile.Profile{}).
		Where("user_id = ?", userID).
		Update("photo", photo)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return profile.ErrProfileNotFound
	}
	return nil
}
