package workers

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/wiky-avis/Yatube/internal/core/outbox"
	outboxPort "github.com/wiky-avis/Yatube/internal/ports/outbox"
)

// DefaultMaxRetries is how many failed deliveries an event gets before it is
// parked as failed.
const DefaultMaxRetries = 5

// OutboxWorker relays pending outbox events to the event bus.
type OutboxWorker struct {
	OutboxRepo outboxPort.OutboxRepository
	Publisher  outboxPort.Publisher
	BatchSize  int
	Interval   time.Duration
	MaxRetries int
	Logger     *zap.Logger
	Now        func() time.Time
}

func NewOutboxWorker(
	outboxRepo outboxPort.OutboxRepository,
	publisher outboxPort.Publisher,
	batchSize int,
	interval time.Duration,
	logger *zap.Logger,
) *OutboxWorker {
	if batchSize <= 0 {
		batchSize = 100
	}
	if interval <= 0 {
		interval = time.Second
	}
	return &OutboxWorker{
		OutboxRepo: outboxRepo,
		Publisher:  publisher,
		BatchSize:  batchSize,
		Interval:   interval,
		MaxRetries: DefaultMaxRetries,
		Logger:     logger,
		Now:        time.Now,
	}
}

// Run drains the outbox every Interval until ctx is cancelled.
func (w *OutboxWorker) Run(ctx context.Context) {
	w.Logger.Info("Outbox worker started", zap.Duration("interval", w.Interval), zap.Int("batchSize", w.BatchSize))

	t := time.NewTicker(w.Interval)
	defer t.Stop()
	for {
		select {
		case <-ctx.Done():
			w.Logger.Info("Outbox worker stopped")
			return
		case <-t.C:
			w.DrainOnce(ctx)
		}
	}
}

// DrainOnce publishes one batch of pending events and returns how many were
// delivered.
func (w *OutboxWorker) DrainOnce(ctx context.Context) int {
	events, err := w.OutboxRepo.GetPending(ctx, w.BatchSize)
	if err != nil {
		w.Logger.Error("Error fetching pending events", zap.Error(err))
		return 0
	}

	delivered := 0
	for _, e := range events {
		if w.process(ctx, e) {
			delivered++
		}
	}
	if delivered > 0 {
		w.Logger.Debug("Outbox batch delivered", zap.Int("count", delivered), zap.Int("fetched", len(events)))
	}
	return delivered
}

func (w *OutboxWorker) process(ctx context.Context, e *outbox.Event) bool {
	if err := w.Publisher.Publish(ctx, e); err != nil {
		w.Logger.Warn("Could not publish event",
			zap.String("eventID", e.ID.String()),
			zap.String("type", e.EventType),
			zap.Int("retries", e.Retries),
			zap.Error(err))
		if err := w.OutboxRepo.MarkRetry(ctx, e.ID, w.MaxRetries); err != nil {
			w.Logger.Error("Could not record retry", zap.String("eventID", e.ID.String()), zap.Error(err))
		}
		return false
	}

	if err := w.OutboxRepo.MarkDone(ctx, e.ID, w.Now().UTC()); err != nil {
		w.Logger.Error("Could not mark event done", zap.String("eventID", e.ID.String()), zap.Error(err))
		return false
	}
	return true
}

// LogPublisher stands in for the event bus when no brokers are configured.
func LogPublisher(logger *zap.Logger) outboxPort.Publisher {
	return outboxPort.PublisherFunc(func(ctx context.Context, e *outbox.Event) error {
		logger.Info("Outbox event",
			zap.String("type", e.EventType),
			zap.String("aggregateID", e.AggregateID.String()),
			zap.String("payload", e.Payload))
		return nil
	})
}
