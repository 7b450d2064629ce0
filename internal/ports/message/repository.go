package message

import (
	"context"
	"time"

	"github.com/gofrs/uuid"

	"github.com/wiky-avis/Yatube/internal/core/message"
	userPort "github.com/wiky-avis/Yatube/internal/ports/user"
)

// TopicRepository stores private threads and their messages.
type TopicRepository interface {
	// CreateWithMessage inserts a topic and its first message atomically.
	CreateWithMessage(ctx context.Context, t *message.Topic, m *message.Message) error
	FindByID(ctx context.Context, id uuid.UUID) (*message.Topic, error)
	// ListForUser returns the user's topics, most recently active first.
	ListForUser(ctx context.Context, userID uuid.UUID) ([]*message.Topic, error)
	CountForUser(ctx context.Context, userID uuid.UUID) (int64, error)
	// AddMessage inserts m and moves the topic's LastSentAt to m.SentAt atomically.
	AddMessage(ctx context.Context, m *message.Message) error
	// Messages returns a topic's messages, newest first.
	Messages(ctx context.Context, topicID uuid.UUID) ([]*message.Message, error)
	// MarkRead stamps every unread message in the topic not sent by reader.
	MarkRead(ctx context.Context, topicID, readerID uuid.UUID, at time.Time) (int64, error)
	UnreadCount(ctx context.Context, userID uuid.UUID, topicID *uuid.UUID) (int64, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

// RecipientCheck is the outcome of validating a recipient username.
type RecipientCheck struct {
	Recipient *userPort.UserDTO `json:"recipient,omitempty"`
	OK        bool              `json:"ok"`
	Reason    string            `json:"reason,omitempty"`
}

type TopicDTO struct {
	ID         string            `json:"id"`
	Sender     *userPort.UserDTO `json:"sender"`
	Recipient  *userPort.UserDTO `json:"recipient"`
	Subject    string            `json:"subject"`
	LastSentAt time.Time         `json:"last_sent_at"`
}

type MessageDTO struct {
	ID             string     `json:"id"`
	TopicID        string     `json:"topic_id"`
	SenderID       string     `json:"sender_id"`
	SenderUsername string     `json:"sender_username,omitempty"`
	Body           string     `json:"body"`
	SentAt         time.Time  `json:"sent_at"`
	ReadAt         *time.Time `json:"read_at"`
}

// ThreadDTO is a topic together with its messages, newest first.
type ThreadDTO struct {
	Topic    *TopicDTO     `json:"topic"`
	Messages []*MessageDTO `json:"messages"`
}

// InboxDTO is the message list view.
type InboxDTO struct {
	Topics []*TopicDTO `json:"topics"`
	Unread int64       `json:"unread"`
	Total  int64       `json:"total"`
}

func TopicToDTO(t *message.Topic) *TopicDTO {
	return &TopicDTO{
		ID:         t.ID.String(),
		Sender:     userPort.ToDTO(t.Sender),
		Recipient:  userPort.ToDTO(t.Recipient),
		Subject:    t.Subject,
		LastSentAt: t.LastSentAt,
	}
}

func MessageToDTO(m *message.Message) *MessageDTO {
	d := &MessageDTO{
		ID:       m.ID.String(),
		TopicID:  m.TopicID.String(),
		SenderID: m.SenderID.String(),
		Body:     m.Body,
		SentAt:   m.SentAt,
		ReadAt:   m.ReadAt,
	}
	if m.Sender != nil {
		d.SenderUsername = m.Sender.Username
	}
	return d
}
