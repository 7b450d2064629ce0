package group

import (
	"errors"
	"regexp"

	"github.com/gofrs/uuid"
	"gorm.io/gorm"
)

var (
	ErrGroupNotFound = errors.New("group not found")
	ErrInvalidSlug   = errors.New("slug must be 1-50 characters of a-z, 0-9, '-' or '_'")
	ErrSlugTaken     = errors.New("slug already taken")
	ErrEmptyTitle    = errors.New("title is required")
)

var slugPattern = regexp.MustCompile(`^[a-z0-9_-]{1,50}$`)

// Group is a topical community posts can be published into.
type Group struct {
	ID          uuid.UUID `gorm:"primaryKey;type:char(36)"`
	Title       string    `gorm:"size:200;not null"`
	Slug        string    `gorm:"size:50;uniqueIndex;not null"`
	Description string    `gorm:"type:text"`
}

// GROUPS is a reserved word in MySQL 8.
func (Group) TableName() string { return "post_groups" }

func (g *Group) BeforeCreate(tx *gorm.DB) error {
	if g.ID == uuid.Nil {
		g.ID = uuid.Must(uuid.NewV4())
	}
	return nil
}

func ValidSlug(slug string) bool {
	return slugPattern.MatchString(slug)
}
