package database

import (
	"context"
	"errors"

	"github.com/gofrs/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/wiky-avis/Yatube/internal/core/follower"
	"github.com/wiky-avis/Yatube/internal/core/message"
	"github.com/wiky-avis/Yatube/internal/core/outbox"
	"github.com/wiky-avis/Yatube/internal/core/post"
	"github.com/wiky-avis/Yatube/internal/core/profile"
	"github.com/wiky-avis/Yatube/internal/core/user"
)

// UserRepositoryDatabase implements UserRepository on gorm.
type UserRepositoryDatabase struct {
	DB *gorm.DB
}

func NewUserRepositoryDatabase(db *gorm.DB) *UserRepositoryDatabase {
	return &UserRepositoryDatabase{DB: db}
}

func (repo *UserRepositoryDatabase) Create(ctx context.Context, u *user.User) (*user.User, error) {
	err := repo.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var n int64
		if err := tx.Model(&user.User{}).Where("username = ?", u.Username).Count(&n).Error; err != nil {
			return err
		}
		if n > 0 {
			return user.ErrUserTaken
		}
		if err := tx.Omit(clause.Associations).Create(u).Error; err != nil {
			if errors.Is(err, gorm.ErrDuplicatedKey) {
				return user.ErrUserTaken
			}
			return err
		}
		return insertEvent(tx, outbox.UserRegistered, u.ID, map[string]any{
			"user_id":  u.ID.String(),
			"username": u.Username,
		})
	})
	if err != nil {
		return nil, err
	}
	return u, nil
}

func (repo *UserRepositoryDatabase) FindByID(ctx context.Context, id uuid.UUID) (*user.User, error) {
	var u user.User
	if err := repo.DB.WithContext(ctx).Where("id = ?", id).First(&u).Error; err != nil {
		return nil, notFound(err, user.ErrUserNotFound)
	}
	return &u, nil
}

func (repo *UserRepositoryDatabase) FindByUsername(ctx context.Context, username string) (*user.User, error) {
	var u user.User
	if err := repo.DB.WithContext(ctx).Where("username = ?", username).First(&u).Error; err != nil {
		return nil, notFound(err, user.ErrUserNotFound)
	}
	return &u, nil
}

func (repo *UserRepositoryDatabase) Update(ctx context.Context, u *user.User) error {
	err := repo.DB.WithContext(ctx).Model(&user.User{}).
		Where("id = ?", u.ID).
		Updates(map[string]any{
			"first_name": u.FirstName,
			"last_name":  u.LastName,
			"username":   u.Username,
			"email":      u.Email,
			"password":   u.Password,
		}).Error
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return user.ErrUserTaken
	}
	return err
}

// Delete removes the user and, in the same transaction, their comments,
// comments on their posts, their posts, follow edges in both directions,
// every topic they take part in with its messages, and their profile.
func (repo *UserRepositoryDatabase) Delete(ctx context.Context, id uuid.UUID) error {
	return repo.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var n int64
		if err := tx.Model(&user.User{}).Where("id = ?", id).Count(&n).Error; err != nil {
			return err
		}
		if n == 0 {
			return user.ErrUserNotFound
		}

		topics := tx.Model(&message.Topic{}).Select("id").Where("sender_id = ? OR recipient_id = ?", id, id)
		if err := tx.Where("topic_id IN (?)", topics).Delete(&message.Message{}).Error; err != nil {
			return err
		}
		if err := tx.Where("sender_id = ? OR recipient_id = ?", id, id).Delete(&message.Topic{}).Error; err != nil {
			return err
		}

		posts := tx.Model(&post.Post{}).Select("id").Where("author_id = ?", id)
		if err := tx.Where("author_id = ? OR post_id IN (?)", id, posts).Delete(&post.Comment{}).Error; err != nil {
			return err
		}
		if err := tx.Where("author_id = ?", id).Delete(&post.Post{}).Error; err != nil {
			return err
		}

		if err := tx.Where("user_id = ? OR author_id = ?", id, id).Delete(&follower.Follow{}).Error; err != nil {
			return err
		}
		if err := tx.Where("user_id = ?", id).Delete(&profile.Profile{}).Error; err != nil {
			return err
		}
		return tx.Where("id = ?", id).Delete(&user.User{}).Error
	})
}
