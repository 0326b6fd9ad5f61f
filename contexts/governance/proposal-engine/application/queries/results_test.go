package queries_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"agora/contexts/governance/proposal-engine/adapters/memory"
	"agora/contexts/governance/proposal-engine/application/queries"
	"agora/contexts/governance/proposal-engine/domain/entities"
	domainerrors "agora/contexts/governance/proposal-engine/domain/errors"
)

type stubClock struct {
	now time.Time
}

func (c *stubClock) Now() time.Time {
	return c.now
}

type fixedStakes struct {
	total uint64
}

func (s fixedStakes) BalanceOf(_ context.Context, _ string) (uint64, error) {
	return 0, nil
}

func (s fixedStakes) TotalStaked(_ context.Context) (uint64, error) {
	return s.total, nil
}

func TestGetProposalResultsDerivesOutcome(t *testing.T) {
	start := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	end := start.Add(72 * time.Hour)
	store := memory.NewStore([]entities.Proposal{{
		ID:           1,
		Proposer:     "alice",
		Title:        "Adjust treasury spend",
		Description:  "Redirect 5% of emissions to the grants pool.",
		ForVotes:     600,
		AgainstVotes: 300,
		AbstainVotes: 200,
		StartTime:    start,
		EndTime:      end,
	}})
	clock := &stubClock{now: start.Add(time.Hour)}
	uc := queries.ResultsUseCase{
		Proposals:     store,
		Stakes:        fixedStakes{total: 10000},
		Clock:         clock,
		QuorumPercent: 10,
	}

	open, err := uc.GetProposalResults(context.Background(), 1)
	if err != nil {
		t.Fatalf("results failed: %v", err)
	}
	if open.VotingClosed || open.Passed {
		t.Fatalf("expected open undecided proposal, got %+v", open)
	}
	if open.QuorumThreshold != 1000 {
		t.Fatalf("expected quorum threshold 1000, got %d", open.QuorumThreshold)
	}

	clock.now = end.Add(time.Second)
	closed, err := uc.GetProposalResults(context.Background(), 1)
	if err != nil {
		t.Fatalf("results failed: %v", err)
	}
	if !closed.VotingClosed || !closed.Passed {
		t.Fatalf("expected closed passed proposal, got %+v", closed)
	}

	// Reads are idempotent: repeating the query changes nothing.
	again, err := uc.GetProposalResults(context.Background(), 1)
	if err != nil {
		t.Fatalf("repeat results failed: %v", err)
	}
	if again != closed {
		t.Fatalf("expected identical results on repeat read: %+v vs %+v", again, closed)
	}
}

func TestGetProposalResultsUnknownProposal(t *testing.T) {
	uc := queries.ResultsUseCase{
		Proposals:     memory.NewStore(nil),
		Stakes:        fixedStakes{total: 1000},
		QuorumPercent: 10,
	}
	_, err := uc.GetProposalResults(context.Background(), 7)
	if !errors.Is(err, domainerrors.ErrUnknownProposal) {
		t.Fatalf("expected ErrUnknownProposal, got %v", err)
	}
}

func TestGetVoteRecordZeroValueForNonVoter(t *testing.T) {
	start := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	store := memory.NewStore([]entities.Proposal{{
		ID:        1,
		Proposer:  "alice",
		StartTime: start,
		EndTime:   start.Add(time.Hour),
	}})
	uc := queries.ResultsUseCase{
		Proposals:     store,
		Stakes:        fixedStakes{total: 1000},
		QuorumPercent: 10,
	}

	record, err := uc.GetVoteRecord(context.Background(), 1, "bob")
	if err != nil {
		t.Fatalf("vote record failed: %v", err)
	}
	if record.HasVoted || record.PowerUsed != 0 {
		t.Fatalf("expected zero record for non-voter, got %+v", record)
	}

	if _, err := uc.GetVoteRecord(context.Background(), 99, "bob"); !errors.Is(err, domainerrors.ErrUnknownProposal) {
		t.Fatalf("expected ErrUnknownProposal for out-of-range id, got %v", err)
	}
}
