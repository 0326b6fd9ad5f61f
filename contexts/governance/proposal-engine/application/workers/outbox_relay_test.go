package workers_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"agora/contexts/governance/proposal-engine/adapters/memory"
	"agora/contexts/governance/proposal-engine/application/workers"
	"agora/contexts/governance/proposal-engine/ports"
)

type recordingPublisher struct {
	published []string
	failAfter int
}

func (p *recordingPublisher) Publish(_ context.Context, topic string, _ ports.EventEnvelope) error {
	if p.failAfter > 0 && len(p.published) >= p.failAfter {
		return errors.New("broker unavailable")
	}
	p.published = append(p.published, topic)
	return nil
}

func appendEvents(t *testing.T, store *memory.Store, eventTypes ...string) {
	t.Helper()
	base := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	for i, eventType := range eventTypes {
		if err := store.AppendOutbox(context.Background(), ports.EventEnvelope{
			EventID:    eventType + "-id",
			EventType:  eventType,
			OccurredAt: base.Add(time.Duration(i) * time.Second),
		}); err != nil {
			t.Fatalf("append outbox failed: %v", err)
		}
	}
}

func TestOutboxRelayPublishesAndMarks(t *testing.T) {
	store := memory.NewStore(nil)
	appendEvents(t, store, "proposal.created", "proposal.voted")
	publisher := &recordingPublisher{}
	relay := workers.OutboxRelay{
		Outbox:    store,
		Publisher: publisher,
		BatchSize: 10,
	}

	if err := relay.RunOnce(context.Background()); err != nil {
		t.Fatalf("relay run failed: %v", err)
	}
	if len(publisher.published) != 2 {
		t.Fatalf("expected 2 published events, got %d", len(publisher.published))
	}
	if publisher.published[0] != "proposal.created" {
		t.Fatalf("expected oldest event first, got %q", publisher.published[0])
	}

	pending, err := store.ListPendingOutbox(context.Background(), 10)
	if err != nil {
		t.Fatalf("list pending failed: %v", err)
	}
	if len(pending) != 0 {
		t.Fatalf("expected no pending rows after relay, got %d", len(pending))
	}
}

func TestOutboxRelayStopsOnPublishFailure(t *testing.T) {
	store := memory.NewStore(nil)
	appendEvents(t, store, "proposal.created", "proposal.voted", "proposal.executed")
	publisher := &recordingPublisher{failAfter: 1}
	relay := workers.OutboxRelay{
		Outbox:    store,
		Publisher: publisher,
		BatchSize: 10,
	}

	if err := relay.RunOnce(context.Background()); err == nil {
		t.Fatalf("expected relay error on broker failure")
	}

	// The failed row and everything after it stay pending for the next cycle.
	pending, err := store.ListPendingOutbox(context.Background(), 10)
	if err != nil {
		t.Fatalf("list pending failed: %v", err)
	}
	if len(pending) != 2 {
		t.Fatalf("expected 2 rows still pending, got %d", len(pending))
	}
}
