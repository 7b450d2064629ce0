package message

import (
	"errors"
	"time"

	"github.com/gofrs/uuid"
	"gorm.io/gorm"

	"github.com/wiky-avis/Yatube/internal/core/user"
)

// DefaultSubject is used when a thread is started without a subject.
const DefaultSubject = "No subject"

var (
	ErrRecipientNotFound = errors.New("recipient not found")
	ErrNotParticipant    = errors.New("user is not a participant of this topic")
	ErrTopicNotFound     = errors.New("topic not found")
	ErrEmptyBody         = errors.New("message body is required")
)

// Topic is a private thread between exactly two users. LastSentAt always
// equals the SentAt of the newest message in the thread.
type Topic struct {
	ID          uuid.UUID  `gorm:"primaryKey;type:char(36)"`
	SenderID    uuid.UUID  `gorm:"type:char(36);not null;index"`
	Sender      *user.User `gorm:"foreignKey:SenderID"`
	RecipientID uuid.UUID  `gorm:"type:char(36);not null;index"`
	Recipient   *user.User `gorm:"foreignKey:RecipientID"`
	Subject     string     `gorm:"size:120;not null"`
	LastSentAt  time.Time  `gorm:"not null;index"`
}

func (t *Topic) BeforeCreate(tx *gorm.DB) error {
	if t.ID == uuid.Nil {
		t.ID = uuid.Must(uuid.NewV4())
	}
	return nil
}

func (t *Topic) HasParticipant(userID uuid.UUID) bool {
	return t.SenderID == userID || t.RecipientID == userID
}

type Message struct {
	ID       uuid.UUID  `gorm:"primaryKey;type:char(36)"`
	TopicID  uuid.UUID  `gorm:"type:char(36);not null;index"`
	Topic    *Topic     `gorm:"foreignKey:TopicID"`
	SenderID uuid.UUID  `gorm:"type:char(36);not null;index"`
	Sender   *user.User `gorm:"foreignKey:SenderID"`
	Body     string     `gorm:"type:text;not null"`
	SentAt   time.Time  `gorm:"not null;index"`
	ReadAt   *time.Time `gorm:"index"`
}

func (m *Message) BeforeCreate(tx *gorm.DB) error {
	if m.ID == uuid.Nil {
		m.ID = uuid.Must(uuid.NewV4())
	}
	return nil
}
