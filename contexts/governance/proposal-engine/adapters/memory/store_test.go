package memory

import (
	"context"
	"errors"
	"testing"
	"time"

	"agora/contexts/governance/proposal-engine/domain/entities"
	domainerrors "agora/contexts/governance/proposal-engine/domain/errors"
	"agora/contexts/governance/proposal-engine/ports"
)

func TestNextProposalIDIsSequential(t *testing.T) {
	store := NewStore(nil)
	for expected := uint64(1); expected <= 3; expected++ {
		id, err := store.NextProposalID(context.Background())
		if err != nil {
			t.Fatalf("next id failed: %v", err)
		}
		if id != expected {
			t.Fatalf("expected id %d, got %d", expected, id)
		}
	}
}

func TestNextProposalIDContinuesAfterSeed(t *testing.T) {
	store := NewStore([]entities.Proposal{{ID: 4, Proposer: "alice"}})
	id, err := store.NextProposalID(context.Background())
	if err != nil {
		t.Fatalf("next id failed: %v", err)
	}
	if id != 5 {
		t.Fatalf("expected id 5 after seeded id 4, got %d", id)
	}
}

func TestGetProposalUnknownID(t *testing.T) {
	store := NewStore(nil)
	if _, err := store.GetProposal(context.Background(), 1); !errors.Is(err, domainerrors.ErrUnknownProposal) {
		t.Fatalf("expected ErrUnknownProposal, got %v", err)
	}
}

func TestSaveVoteRecordIsWriteOnce(t *testing.T) {
	store := NewStore(nil)
	record := entities.VoteRecord{Voter: "alice", HasVoted: true, PowerUsed: 100}
	if err := store.SaveVoteRecord(context.Background(), 1, record); err != nil {
		t.Fatalf("first save failed: %v", err)
	}

	record.PowerUsed = 999
	err := store.SaveVoteRecord(context.Background(), 1, record)
	if !errors.Is(err, domainerrors.ErrAlreadyVoted) {
		t.Fatalf("expected ErrAlreadyVoted, got %v", err)
	}

	stored, found, err := store.GetVoteRecord(context.Background(), 1, "alice")
	if err != nil || !found {
		t.Fatalf("get vote record failed: found=%v err=%v", found, err)
	}
	if stored.PowerUsed != 100 {
		t.Fatalf("expected original power 100, got %d", stored.PowerUsed)
	}
}

func TestOutboxPendingLifecycle(t *testing.T) {
	store := NewStore(nil)
	base := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	for i, eventType := range []string{"proposal.created", "proposal.voted"} {
		if err := store.AppendOutbox(context.Background(), ports.EventEnvelope{
			EventID:    string(rune('a' + i)),
			EventType:  eventType,
			OccurredAt: base.Add(time.Duration(i) * time.Second),
		}); err != nil {
			t.Fatalf("append outbox failed: %v", err)
		}
	}

	pending, err := store.ListPendingOutbox(context.Background(), 10)
	if err != nil {
		t.Fatalf("list pending failed: %v", err)
	}
	if len(pending) != 2 {
		t.Fatalf("expected 2 pending rows, got %d", len(pending))
	}
	if pending[0].EventType != "proposal.created" {
		t.Fatalf("expected oldest row first, got %q", pending[0].EventType)
	}

	if err := store.MarkOutboxPublished(context.Background(), pending[0].OutboxID, base.Add(time.Minute)); err != nil {
		t.Fatalf("mark published failed: %v", err)
	}

	pending, err = store.ListPendingOutbox(context.Background(), 10)
	if err != nil {
		t.Fatalf("list pending failed: %v", err)
	}
	if len(pending) != 1 || pending[0].EventType != "proposal.voted" {
		t.Fatalf("expected only proposal.voted pending, got %+v", pending)
	}

	all, err := store.ListOutbox(context.Background(), 10)
	if err != nil {
		t.Fatalf("list outbox failed: %v", err)
	}
	if len(all) != 2 {
		t.Fatalf("audit trail must keep published rows, got %d", len(all))
	}
}
