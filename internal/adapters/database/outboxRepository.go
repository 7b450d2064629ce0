package database

import (
	"context"
	"time"

	"github.com/gofrs/uuid"
	"gorm.io/gorm"

	"github.com/wiky-avis/Yatube/internal/core/outbox"
)

// OutboxRepositoryDatabase reads and settles outbox events.
type OutboxRepositoryDatabase struct {
	DB *gorm.DB
}

func NewOutboxRepositoryDatabase(db *gorm.DB) *OutboxRepositoryDatabase {
	return &OutboxRepositoryDatabase{DB: db}
}

func (repo *OutboxRepositoryDatabase) GetPending(ctx context.Context, limit int) ([]*outbox.Event, error) {
	var events []*outbox.Event
	if err := repo.DB.WithContext(ctx).
		Where("status = ?", outbox.StatusPending).
		Order("created_at ASC").
		Limit(limit).
		Find(&events).Error; err != nil {
		return nil, err
	}
	return events, nil
}

func (repo *OutboxRepositoryDatabase) MarkDone(ctx context.Context, id uuid.UUID, at time.Time) error {
	return repo.DB.WithContext(ctx).Model(&outbox.Event{}).
		Where("id = ?", id).
		Updates(map[string]any{"status": outbox.StatusDone, "processed_at": at}).Error
}

func (repo *OutboxRepositoryDatabase) MarkRetry(ctx context.Context, id uuid.UUID, maxRetries int) error {
	return repo.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(&outbox.Event{}).
			Where("id = ?", id).
			Update("retries", gorm.Expr("retries + 1")).Error; err != nil {
			return err
		}
		return tx.Model(&outbox.Event{}).
			Where("id = ? AND retries >= ?", id, maxRetries).
			Update("status", outbox.StatusFailed).Error
	})
}
