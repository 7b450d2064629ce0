package outbox

import (
	"encoding/json"
	"time"

	"github.com/gofrs/uuid"
	"gorm.io/gorm"
)

const (
	StatusPending = "pending"
	StatusDone    = "done"
	StatusFailed  = "failed"
)

const (
	PostCreated    = "post.created"
	FollowCreated  = "follow.created"
	FollowDeleted  = "follow.deleted"
	MessageSent    = "message.sent"
	UserRegistered = "user.registered"
)

// Event is a domain change recorded in the same transaction as the change
// itself and relayed to the event bus by the outbox worker.
type Event struct {
	ID          uuid.UUID  `gorm:"primaryKey;type:char(36)"`
	EventType   string     `gorm:"size:32;not null"`
	AggregateID uuid.UUID  `gorm:"type:char(36);not null"`
	Payload     string     `gorm:"type:text;not null"`
	Status      string     `gorm:"size:20;not null;index"` // pending, done, failed
	Retries     int        `gorm:"not null;default:0"`
	CreatedAt   time.Time  `gorm:"autoCreateTime"`
	ProcessedAt *time.Time `gorm:"index"`
}

func (Event) TableName() string { return "outbox_events" }

func (e *Event) BeforeCreate(tx *gorm.DB) error {
	if e.ID == uuid.Nil {
		e.ID = uuid.Must(uuid.NewV4())
	}
	if e.Status == "" {
		e.Status = StatusPending
	}
	return nil
}

// NewEvent marshals payload into a pending event.
func NewEvent(eventType string, aggregateID uuid.UUID, payload any) (*Event, error) {
	b, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}
	return &Event{
		EventType:   eventType,
		AggregateID: aggregateID,
		Payload:     string(b),
		Status:      StatusPending,
	}, nil
}
