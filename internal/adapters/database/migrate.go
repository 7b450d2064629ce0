package database

import (
	"errors"

	"github.com/gofrs/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/wiky-avis/Yatube/internal/core/follower"
	"github.com/wiky-avis/Yatube/internal/core/group"
	"github.com/wiky-avis/Yatube/internal/core/message"
	"github.com/wiky-avis/Yatube/internal/core/outbox"
	"github.com/wiky-avis/Yatube/internal/core/post"
	"github.com/wiky-avis/Yatube/internal/core/profile"
	"github.com/wiky-avis/Yatube/internal/core/user"
)

// Migrate creates or updates every table the application uses.
func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&user.User{},
		&profile.Profile{},
		&group.Group{},
		&post.Post{},
		&post.Comment{},
		&follower.Follow{},
		&message.Topic{},
		&message.Message{},
		&outbox.Event{},
	)
}

// notFound maps gorm's missing-row error onto a domain error.
func notFound(err, domainErr error) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return domainErr
	}
	return err
}

// insertEvent records an outbox event inside the caller's transaction.
func insertEvent(tx *gorm.DB, eventType string, aggregateID uuid.UUID, payload any) error {
	e, err := outbox.NewEvent(eventType, aggregateID, payload)
	if err != nil {
		return err
	}
	return tx.Omit(clause.Associations).Create(e).Error
}
