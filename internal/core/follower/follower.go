package follower

import (
	"errors"
	"time"

	"github.com/gofrs/uuid"
	"gorm.io/gorm"

	"github.com/wiky-avis/Yatube/internal/core/user"
)

var ErrNotFollowing = errors.New("not following this author")

// Follow is a directed edge: UserID receives AuthorID's posts in the followed feed.
type Follow struct {
	ID        uuid.UUID  `gorm:"primaryKey;type:char(36)"`
	UserID    uuid.UUID  `gorm:"type:char(36);not null;uniqueIndex:uniq_user_author"`
	User      *user.User `gorm:"foreignKey:UserID"`
	AuthorID  uuid.UUID  `gorm:"type:char(36);not null;uniqueIndex:uniq_user_author;index"`
	Author    *user.User `gorm:"foreignKey:AuthorID"`
	CreatedAt time.Time  `gorm:"autoCreateTime"`
}

func (f *Follow) BeforeCreate(tx *gorm.DB) error {
	if f.ID == uuid.Nil {
		f.ID = uuid.Must(uuid.NewV4())
	}
	return nil
}
