package post

import (
	"errors"
	"time"

	"github.com/gofrs/uuid"
	"gorm.io/gorm"

	"github.com/wiky-avis/Yatube/internal/core/group"
	"github.com/wiky-avis/Yatube/internal/core/user"
)

var (
	ErrPostNotFound = errors.New("post not found")
	ErrNotAuthor    = errors.New("only the author can change this post")
	ErrEmptyText    = errors.New("text is required")
)

type Post struct {
	ID        uuid.UUID    `gorm:"primaryKey;type:char(36)"`
	Text      string       `gorm:"type:text;not null"`
	AuthorID  uuid.UUID    `gorm:"type:char(36);not null;index"`
	Author    *user.User   `gorm:"foreignKey:AuthorID"`
	GroupID   *uuid.UUID   `gorm:"type:char(36);index"`
	Group     *group.Group `gorm:"foreignKey:GroupID"`
	Image     *string      `gorm:"size:255"`
	CreatedAt time.Time    `gorm:"index"`
	UpdatedAt time.Time
}

func (p *Post) BeforeCreate(tx *gorm.DB) error {
	if p.ID == uuid.Nil {
		p.ID = uuid.Must(uuid.NewV4())
	}
	return nil
}

type Comment struct {
	ID        uuid.UUID  `gorm:"primaryKey;type:char(36)"`
	PostID    uuid.UUID  `gorm:"type:char(36);not null;index"`
	Post      *Post      `gorm:"foreignKey:PostID"`
	AuthorID  uuid.UUID  `gorm:"type:char(36);not null;index"`
	Author    *user.User `gorm:"foreignKey:AuthorID"`
	Text      string     `gorm:"type:text;not null"`
	CreatedAt time.Time
}

func (c *Comment) BeforeCreate(tx *gorm.DB) error {
	if c.ID == uuid.Nil {
		c.ID = uuid.Must(uuid.NewV4())
	}
	return nil
}
