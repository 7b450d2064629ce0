package database

import (
	"context"

	"github.com/gofrs/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/wiky-avis/Yatube/internal/core/follower"
	"github.com/wiky-avis/Yatube/internal/core/outbox"
)

// FollowerRepositoryDatabase implements FollowerRepository on gorm.
type FollowerRepositoryDatabase struct {
	DB *gorm.DB
}

func NewFollowerRepositoryDatabase(db *gorm.DB) *FollowerRepositoryDatabase {
	return &FollowerRepositoryDatabase{DB: db}
}

func (repo *FollowerRepositoryDatabase) Follow(ctx context.Context, f *follower.Follow) (bool, error) {
	var changed bool
	err := repo.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		res := tx.Omit(clause.Associations).
			Clauses(clause.OnConflict{
				Columns:   []clause.Column{{Name: "user_id"}, {Name: "author_id"}},
				DoNothing: true,
			}).
			Create(f)
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return nil
		}
		changed = true
		return insertEvent(tx, outbox.FollowCreated, f.AuthorID, map[string]any{
			"user_id":   f.UserID.String(),
			"author_id": f.AuthorID.String(),
		})
	})
	return changed, err
}

func (repo *FollowerRepositoryDatabase) Unfollow(ctx context.Context, userID, authorID uuid.UUID) (bool, error) {
	var changed bool
	err := repo.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		res := tx.Where("user_id = ? AND author_id = ?", userID, authorID).Delete(&follower.Follow{})
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return nil
		}
		changed = true
		return insertEvent(tx, outbox.FollowDeleted, authorID, map[string]any{
			"user_id":   userID.String(),
			"author_id": authorID.String(),
		})
	})
	return changed, err
}

func (repo *FollowerRepositoryDatabase) IsFollowing(ctx context.Context, userID, authorID uuid.UUID) (bool, error) {
	var count int64
	if err := repo.DB.WithContext(ctx).Model(&follower.Follow{}).
		Where("user_id = ? AND author_id = ?", userID, authorID).
		Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

func (repo *FollowerRepositoryDatabase) CountFollowers(ctx context.Context, authorID uuid.UUID) (int64, error) {
	var count int64
	err := repo.DB.WithContext(ctx).Model(&follower.Follow{}).Where("author_id = ?", authorID).Count(&count).Error
	return count, err
}

func (repo *FollowerRepositoryDatabase) CountFollowing(ctx context.Context, userID uuid.UUID) (int64, error) {
	var count int64
	err := repo.DB.WithContext(ctx).Model(&follower.Follow{}).Where("user_id = ?", userID).Count(&count).Error
	return count, err
}

func (repo *FollowerRepositoryDatabase) GetFollowers(ctx context.Context, authorID uuid.UUID) ([]*follower.Follow, error) {
	var follows []*follower.Follow
	if err := repo.DB.WithContext(ctx).
		Preload("User").
		Where("author_id = ?", authorID).
		Order("created_at DESC").
		Find(&follows).Error; err != nil {
		return nil, err
	}
	return follows, nil
}

func (repo *FollowerRepositoryDatabase) GetFollowing(ctx context.Context, userID uuid.UUID) ([]*follower.Follow, error) {
	var follows []*follower.Follow
	if err := repo.DB.WithContext(ctx).
		Preload("Author").
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Find(&follows).Error; err != nil {
		return nil, err
	}
	return follows, nil
}
