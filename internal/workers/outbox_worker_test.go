package workers

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/gofrs/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/wiky-avis/Yatube/internal/adapters/database"
	"github.com/wiky-avis/Yatube/internal/adapters/database/dbtest"
	"github.com/wiky-avis/Yatube/internal/core/outbox"
	outboxPort "github.com/wiky-avis/Yatube/internal/ports/outbox"
)

type recordingPublisher struct {
	mu     sync.Mutex
	seen   []string
	failOn map[string]bool
}

func (p *recordingPublisher) Publish(ctx context.Context, e *outbox.Event) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.failOn[e.EventType] {
		return errors.New("broker unavailable")
	}
	p.seen = append(p.seen, e.EventType)
	return nil
}

func (p *recordingPublisher) types() []string {
	p.mu.Lock()
	defer p.mu.Unlock()
	return append([]string(nil), p.seen...)
}

func seed(t *testing.T, repo *database.OutboxRepositoryDatabase, types ...string) {
	t.Helper()
	base := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	for i, typ := range types {
		e, err := outbox.NewEvent(typ, uuid.Must(uuid.NewV4()), map[string]int{"n": i})
		require.NoError(t, err)
		e.CreatedAt = base.Add(time.Duration(i) * time.Second)
		require.NoError(t, repo.DB.Create(e).Error)
	}
}

func statuses(t *testing.T, repo *database.OutboxRepositoryDatabase) map[string]outbox.Event {
	t.Helper()
	var events []outbox.Event
	require.NoError(t, repo.DB.Find(&events).Error)
	out := make(map[string]outbox.Event, len(events))
	for _, e := range events {
		out[e.EventType] = e
	}
	return out
}

func TestDrainOnceDeliversInOrder(t *testing.T) {
	repo := database.NewOutboxRepositoryDatabase(dbtest.Open(t))
	seed(t, repo, outbox.UserRegistered, outbox.PostCreated, outbox.FollowCreated)
	pub := &recordingPublisher{}
	w := NewOutboxWorker(repo, pub, 10, time.Second, zap.NewNop())

	assert.Equal(t, 3, w.DrainOnce(context.Background()))
	assert.Equal(t, []string{outbox.UserRegistered, outbox.PostCreated, outbox.FollowCreated}, pub.types())

	for _, e := range statuses(t, repo) {
		assert.Equal(t, outbox.StatusDone, e.Status)
		assert.NotNil(t, e.ProcessedAt)
	}
	assert.Zero(t, w.DrainOnce(context.Background()))
}

func TestDrainOnceRespectsBatchSize(t *testing.T) {
	repo := database.NewOutboxRepositoryDatabase(dbtest.Open(t))
	seed(t, repo, outbox.UserRegistered, outbox.PostCreated, outbox.FollowCreated)
	pub := &recordingPublisher{}
	w := NewOutboxWorker(repo, pub, 2, time.Second, zap.NewNop())

	assert.Equal(t, 2, w.DrainOnce(context.Background()))
	assert.Equal(t, 1, w.DrainOnce(context.Background()))
}

func TestDrainOnceRetriesThenFails(t *testing.T) {
	repo := database.NewOutboxRepositoryDatabase(dbtest.Open(t))
	seed(t, repo, outbox.MessageSent, outbox.PostCreated)
	pub := &recordingPublisher{failOn: map[string]bool{outbox.MessageSent: true}}
	w := NewOutboxWorker(repo, pub, 10, time.Second, zap.NewNop())
	w.MaxRetries = 2

	assert.Equal(t, 1, w.DrainOnce(context.Background()))
	got := statuses(t, repo)
	assert.Equal(t, outbox.StatusPending, got[outbox.MessageSent].Status)
	assert.Equal(t, 1, got[outbox.MessageSent].Retries)
	assert.Equal(t, outbox.StatusDone, got[outbox.PostCreated].Status)

	assert.Zero(t, w.DrainOnce(context.Background()))
	got = statuses(t, repo)
	assert.Equal(t, outbox.StatusFailed, got[outbox.MessageSent].Status)
	assert.Equal(t, 2, got[outbox.MessageSent].Retries)

	// failed events are no longer picked up
	pending, err := repo.GetPending(context.Background(), 10)
	require.NoError(t, err)
	assert.Empty(t, pending)
}

func TestRunStopsOnCancel(t *testing.T) {
	repo := database.NewOutboxRepositoryDatabase(dbtest.Open(t))
	seed(t, repo, outbox.PostCreated)
	pub := &recordingPublisher{}
	w := NewOutboxWorker(repo, pub, 10, 10*time.Millisecond, zap.NewNop())

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		w.Run(ctx)
		close(done)
	}()

	require.Eventually(t, func() bool { return len(pub.types()) == 1 }, 2*time.Second, 10*time.Millisecond)
	cancel()
	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("worker did not stop")
	}
}

func TestLogPublisher(t *testing.T) {
	var p outboxPort.Publisher = LogPublisher(zap.NewNop())
	e, err := outbox.NewEvent(outbox.PostCreated, uuid.Must(uuid.NewV4()), map[string]string{"k": "v"})
	require.NoError(t, err)
	assert.NoError(t, p.Publish(context.Background(), e))
}
