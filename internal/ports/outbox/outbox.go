package outbox

import (
	"context"
	"time"

	"github.com/gofrs/uuid"

	"github.com/wiky-avis/Yatube/internal/core/outbox"
)

type OutboxRepository interface {
	GetPending(ctx context.Context, limit int) ([]*outbox.Event, error)
	MarkDone(ctx context.Context, id uuid.UUID, at time.Time) error
	// MarkRetry bumps the retry counter and gives up once maxRetries is reached.
	MarkRetry(ctx context.Context, id uuid.UUID, maxRetries int) error
}

// Publisher delivers one event to the event bus.
type Publisher interface {
	Publish(ctx context.Context, e *outbox.Event) error
}

type PublisherFunc func(ctx context.Context, e *outbox.Event) error

func (f PublisherFunc) Publish(ctx context.Context, e *outbox.Event) error { return f(ctx, e) }
