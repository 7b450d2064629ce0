package database

import (
	"context"
	"time"

	"github.com/gofrs/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/wiky-avis/Yatube/internal/core/message"
	"github.com/wiky-avis/Yatube/internal/core/outbox"
)

// TopicRepositoryDatabase implements TopicRepository on gorm.
type TopicRepositoryDatabase struct {
	DB *gorm.DB
}

func NewTopicRepositoryDatabase(db *gorm.DB) *TopicRepositoryDatabase {
	return &TopicRepositoryDatabase{DB: db}
}

func (repo *TopicRepositoryDatabase) CreateWithMessage(ctx context.Context, t *message.Topic, m *message.Message) error {
	return repo.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Omit(clause.Associations).Create(t).Error; err != nil {
			return err
		}
		m.TopicID = t.ID
		if err := tx.Omit(clause.Associations).Create(m).Error; err != nil {
			return err
		}
		return insertMessageEvent(tx, t, m)
	})
}

func (repo *TopicRepositoryDatabase) FindByID(ctx context.Context, id uuid.UUID) (*message.Topic, error) {
	var t message.Topic
	if err := repo.DB.WithContext(ctx).
		Preload("Sender").
		Preload("Recipient").
		Where("id = ?", id).
		First(&t).Error; err != nil {
		return nil, notFound(err, message.ErrTopicNotFound)
	}
	return &t, nil
}

func (repo *TopicRepositoryDatabase) ListForUser(ctx context.Context, userID uuid.UUID) ([]*message.Topic, error) {
	var topics []*message.Topic
	if err := repo.DB.WithContext(ctx).
		Preload("Sender").
		Preload("Recipient").
		Where("sender_id = ? OR recipient_id = ?", userID, userID).
		Order("last_sent_at DESC").
		Order("id DESC").
		Find(&topics).Error; err != nil {
		return nil, err
	}
	return topics, nil
}

func (repo *TopicRepositoryDatabase) CountForUser(ctx context.Context, userID uuid.UUID) (int64, error) {
	var n int64
	err := repo.DB.WithContext(ctx).Model(&message.Topic{}).
		Where("sender_id = ? OR recipient_id = ?", userID, userID).
		Count(&n).Error
	return n, err
}

func (repo *TopicRepositoryDatabase) AddMessage(ctx context.Context, m *message.Message) error {
	return repo.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var t message.Topic
		if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).Where("id = ?", m.TopicID).First(&t).Error; err != nil {
			return notFound(err, message.ErrTopicNotFound)
		}
		if err := tx.Omit(clause.Associations).Create(m).Error; err != nil {
			return err
		}
		if err := tx.Model(&message.Topic{}).
			Where("id = ?", t.ID).
			Update("last_sent_at", m.SentAt).Error; err != nil {
			return err
		}
		return insertMessageEvent(tx, &t, m)
	})
}

func (repo *TopicRepositoryDatabase) Messages(ctx context.Context, topicID uuid.UUID) ([]*message.Message, error) {
	var msgs []*message.Message
	if err := repo.DB.WithContext(ctx).
		Preload("Sender").
		Where("topic_id = ?", topicID).
		Order("sent_at DESC").
		Order("id DESC").
		Find(&msgs).Error; err != nil {
		return nil, err
	}
	return msgs, nil
}

// MarkRead is a single conditional UPDATE, so concurrent readers never
// overwrite an existing read_at.
func (repo *TopicRepositoryDatabase) MarkRead(ctx context.Context, topicID, readerID uuid.UUID, at time.Time) (int64, error) {
	res := repo.DB.WithContext(ctx).Model(&message.Message{}).
		Where("topic_id = ? AND sender_id <> ? AND read_at IS NULL", topicID, readerID).
		Update("read_at", at)
	return res.RowsAffected, res.Error
}

func (repo *TopicRepositoryDatabase) UnreadCount(ctx context.Context, userID uuid.UUID, topicID *uuid.UUID) (int64, error) {
	q := repo.DB.WithContext(ctx).Model(&message.Message{}).
		Joins("JOIN topics ON topics.id = messages.topic_id").
		Where("(topics.sender_id = ? OR topics.recipient_id = ?)", userID, userID).
		Where("messages.sender_id <> ?", userID).
		Where("messages.read_at IS NULL")
	if topicID != nil {
		q = q.Where("messages.topic_id = ?", *topicID)
	}
	var n int64
	if err := q.Count(&n).Error; err != nil {
		return 0, err
	}
	return n, nil
}

func (repo *TopicRepositoryDatabase) Delete(ctx context.Context, id uuid.UUID) error {
	return repo.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("topic_id = ?", id).Delete(&message.Message{}).Error; err != nil {
			return err
		}
		res := tx.Where("id = ?", id).Delete(&message.Topic{})
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return message.ErrTopicNotFound
		}
		return nil
	})
}

func insertMessageEvent(tx *gorm.DB, t *message.Topic, m *message.Message) error {
	recipient := t.RecipientID
	if m.SenderID == t.RecipientID {
		recipient = t.SenderID
	}
	return insertEvent(tx, outbox.MessageSent, t.ID, map[string]any{
		"topic_id":     t.ID.String(),
		"message_id":   m.ID.String(),
		"sender_id":    m.SenderID.String(),
		"recipient_id": recipient.String(),
		"sent_at":      m.SentAt.UTC().Format(time.RFC3339Nano),
	})
}
