package producer_test

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/sourabhverman/people-hub-pro/internal/messaging/kafka"
	"github.com/sourabhverman/people-hub-pro/internal/messaging/kafka/producer"

	kafkago "github.com/segmentio/kafka-go"
	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type fakeOutboxRepo struct {
	mu      sync.Mutex
	pending []kafka.OutboxEvent
	sent    []string
	failed  map[string]string
	lists   int
}

func newFakeOutboxRepo(events ...kafka.OutboxEvent) *fakeOutboxRepo {
	return &fakeOutboxRepo{pending: events, failed: make(map[string]string)}
}

func (f *fakeOutboxRepo) WithTx(tx *gorm.DB) kafka.OutboxRepository { return f }

func (f *fakeOutboxRepo) Create(ctx context.Context, event kafka.OutboxEvent) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.pending = append(f.pending, event)
	return nil
}

func (f *fakeOutboxRepo) ListPending(ctx context.Context, limit int) ([]kafka.OutboxEvent, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.lists++
	if limit > len(f.pending) {
		limit = len(f.pending)
	}
	out := make([]kafka.OutboxEvent, limit)
	copy(out, f.pending[:limit])
	return out, nil
}

func (f *fakeOutboxRepo) MarkSent(ctx context.Context, id string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.sent = append(f.sent, id)
	f.remove(id)
	return nil
}

func (f *fakeOutboxRepo) MarkFailed(ctx context.Context, id, reason string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.failed[id] = reason
	f.remove(id)
	return nil
}

func (f *fakeOutboxRepo) remove(id string) {
	for i, e := range f.pending {
		if e.ID == id {
			f.pending = append(f.pending[:i], f.pending[i+1:]...)
			return
		}
	}
}

type fakeWriter struct {
	mu        sync.Mutex
	messages  []kafkago.Message
	failTopic string
}

func (w *fakeWriter) WriteMessages(ctx context.Context, msgs ...kafkago.Message) error {
	w.mu.Lock()
	defer w.mu.Unlock()
	for _, msg := range msgs {
		if msg.Topic == w.failTopic {
			return errors.New("broker unavailable")
		}
		w.messages = append(w.messages, msg)
	}
	return nil
}

func event(id, topic, requestID string) kafka.OutboxEvent {
	return kafka.OutboxEvent{
		ID:            id,
		RequestID:     requestID,
		AggregateType: "leave",
		AggregateID:   "agg-" + id,
		EventType:     "leave.approved",
		Topic:         topic,
		Payload:       []byte(`{"leave_id":"` + id + `"}`),
		Status:        kafka.OutboxStatusPending,
	}
}

func TestWorker_Drain(t *testing.T) {
	ctx := context.Background()

	t.Run("sends pending events and marks them", func(t *testing.T) {
		repo := newFakeOutboxRepo(
			event("e1", "hr.leave.decision.v1", "req-1"),
			event("e2", "hr.leave.decision.v1", ""),
		)
		writer := &fakeWriter{}

		w := producer.NewWorker(repo, writer, producer.Config{}, zap.NewNop())
		w.Drain(ctx)

		assert.Equal(t, []string{"e1", "e2"}, repo.sent)
		assert.Empty(t, repo.failed)
		assert.Len(t, writer.messages, 2)

		msg := writer.messages[0]
		assert.Equal(t, "hr.leave.decision.v1", msg.Topic)
		assert.Equal(t, []byte("agg-e1"), msg.Key)

		headers := map[string]string{}
		for _, h := range msg.Headers {
			headers[h.Key] = string(h.Value)
		}
		assert.Equal(t, "leave.approved", headers["event_type"])
		assert.Equal(t, "leave", headers["aggregate_type"])
		assert.Equal(t, "req-1", headers["request_id"])

		// Events without a request id carry no empty header.
		for _, h := range writer.messages[1].Headers {
			assert.NotEqual(t, "request_id", h.Key)
		}
	})

	t.Run("publish failure marks the row for retry", func(t *testing.T) {
		repo := newFakeOutboxRepo(
			event("e1", "hr.leave.decision.v1", ""),
			event("e2", "hr.exit.lifecycle.v1", ""),
		)
		writer := &fakeWriter{failTopic: "hr.exit.lifecycle.v1"}

		w := producer.NewWorker(repo, writer, producer.Config{}, zap.NewNop())
		w.Drain(ctx)

		assert.Equal(t, []string{"e1"}, repo.sent)
		assert.Contains(t, repo.failed, "e2")
		assert.Equal(t, "broker unavailable", repo.failed["e2"])
	})

	t.Run("keeps pulling until the batch comes back short", func(t *testing.T) {
		repo := newFakeOutboxRepo(
			event("e1", "hr.leave.decision.v1", ""),
			event("e2", "hr.leave.decision.v1", ""),
			event("e3", "hr.leave.decision.v1", ""),
			event("e4", "hr.leave.decision.v1", ""),
			event("e5", "hr.leave.decision.v1", ""),
		)
		writer := &fakeWriter{}

		w := producer.NewWorker(repo, writer, producer.Config{BatchSize: 2}, zap.NewNop())
		w.Drain(ctx)

		assert.Len(t, repo.sent, 5)
		// Two full batches, one partial, no trailing empty poll.
		assert.Equal(t, 3, repo.lists)
	})
}
