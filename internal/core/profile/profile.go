package profile

import (
	"errors"

	"github.com/gofrs/uuid"
	"gorm.io/gorm"
)

// DefaultPhoto is the avatar every new profile starts with.
const DefaultPhoto = "users/avatar180.jpg"

type Profile struct {
	ID     uuid.UUID `gorm:"primaryKey;type:char(36)"`
	UserID uuid.UUID `gorm:"type:char(36);uniqueIndex;not null"`
	Photo  string    `gorm:"size:255;not null"`
}

func (p *Profile) BeforeCreate(tx *gorm.DB) error {
	if p.ID == uuid.Nil {
		p.ID = uuid.Must(uuid.NewV4())
	}
	if p.Photo == "" {
		p.Photo = DefaultPhoto
	}
	return nil
}

var ErrProfileNotFound = errors.New("profile not found")
