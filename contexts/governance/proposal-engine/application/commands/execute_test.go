package commands_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"agora/contexts/governance/proposal-engine/application/commands"
	"agora/contexts/governance/proposal-engine/domain/entities"
	domainerrors "agora/contexts/governance/proposal-engine/domain/errors"
)

func castTestVote(t *testing.T, env *governanceEnv, voter string, proposalID uint64, option entities.VoteOption) {
	t.Helper()
	if _, err := env.votes.CastVote(context.Background(), commands.CastVoteCommand{
		Caller:     voter,
		ProposalID: proposalID,
		Option:     option,
	}); err != nil {
		t.Fatalf("vote by %s failed: %v", voter, err)
	}
}

func TestExecuteProposalPassesWithQuorumAndMajority(t *testing.T) {
	// Total staked 10000 at 10% quorum: 1000 power must vote.
	env := newGovernanceEnv(t, map[string]uint64{
		"alice": 600,
		"bob":   300,
		"carol": 200,
		"dave":  8900,
	})
	env.proposals.MinStakeToPropose = 500
	proposal := createTestProposal(t, env, "alice")

	castTestVote(t, env, "alice", proposal.ID, entities.VoteOptionFor)
	castTestVote(t, env, "bob", proposal.ID, entities.VoteOptionAgainst)
	castTestVote(t, env, "carol", proposal.ID, entities.VoteOptionAbstain)

	env.clock.Advance(testVotingPeriod + time.Second)

	if err := env.execution.ExecuteProposal(context.Background(), commands.ExecuteProposalCommand{ProposalID: proposal.ID}); err != nil {
		t.Fatalf("execute failed: %v", err)
	}

	stored, err := env.store.GetProposal(context.Background(), proposal.ID)
	if err != nil {
		t.Fatalf("get proposal failed: %v", err)
	}
	if !stored.Executed {
		t.Fatalf("expected proposal marked executed")
	}

	err = env.execution.ExecuteProposal(context.Background(), commands.ExecuteProposalCommand{ProposalID: proposal.ID})
	if !errors.Is(err, domainerrors.ErrProposalFinalized) {
		t.Fatalf("expected ErrProposalFinalized on re-execute, got %v", err)
	}
}

func TestExecuteProposalWhileVotingOpen(t *testing.T) {
	env := newGovernanceEnv(t, map[string]uint64{"alice": 5000})
	proposal := createTestProposal(t, env, "alice")

	err := env.execution.ExecuteProposal(context.Background(), commands.ExecuteProposalCommand{ProposalID: proposal.ID})
	if !errors.Is(err, domainerrors.ErrVotingStillOpen) {
		t.Fatalf("expected ErrVotingStillOpen, got %v", err)
	}
}

func TestExecuteProposalQuorumNotReached(t *testing.T) {
	// Total staked 100000 at 10% quorum: only 5000 power votes.
	env := newGovernanceEnv(t, map[string]uint64{
		"alice": 5000,
		"dave":  95000,
	})
	proposal := createTestProposal(t, env, "alice")
	castTestVote(t, env, "alice", proposal.ID, entities.VoteOptionFor)

	env.clock.Advance(testVotingPeriod + time.Second)

	err := env.execution.ExecuteProposal(context.Background(), commands.ExecuteProposalCommand{ProposalID: proposal.ID})
	if !errors.Is(err, domainerrors.ErrQuorumNotReached) {
		t.Fatalf("expected ErrQuorumNotReached, got %v", err)
	}

	stored, err := env.store.GetProposal(context.Background(), proposal.ID)
	if err != nil {
		t.Fatalf("get proposal failed: %v", err)
	}
	if stored.Finalized() {
		t.Fatalf("failed execution must not finalize the proposal")
	}
}

func TestExecuteProposalRejectedByMajority(t *testing.T) {
	env := newGovernanceEnv(t, map[string]uint64{
		"alice": 2000,
		"bob":   6000,
	})
	proposal := createTestProposal(t, env, "alice")
	castTestVote(t, env, "alice", proposal.ID, entities.VoteOptionFor)
	castTestVote(t, env, "bob", proposal.ID, entities.VoteOptionAgainst)

	env.clock.Advance(testVotingPeriod + time.Second)

	err := env.execution.ExecuteProposal(context.Background(), commands.ExecuteProposalCommand{ProposalID: proposal.ID})
	if !errors.Is(err, domainerrors.ErrProposalRejected) {
		t.Fatalf("expected ErrProposalRejected, got %v", err)
	}
}

func TestExecuteProposalTieFails(t *testing.T) {
	// Equal for and against power: strictly-greater is required to pass.
	env := newGovernanceEnv(t, map[string]uint64{
		"alice": 3000,
		"bob":   3000,
	})
	proposal := createTestProposal(t, env, "alice")
	castTestVote(t, env, "alice", proposal.ID, entities.VoteOptionFor)
	castTestVote(t, env, "bob", proposal.ID, entities.VoteOptionAgainst)

	env.clock.Advance(testVotingPeriod + time.Second)

	err := env.execution.ExecuteProposal(context.Background(), commands.ExecuteProposalCommand{ProposalID: proposal.ID})
	if !errors.Is(err, domainerrors.ErrProposalRejected) {
		t.Fatalf("expected ErrProposalRejected on tie, got %v", err)
	}
}

func TestCancelProposalByProposerBlocksLaterOperations(t *testing.T) {
	env := newGovernanceEnv(t, map[string]uint64{"alice": 5000, "bob": 2000})
	proposal := createTestProposal(t, env, "alice")

	if err := env.execution.CancelProposal(context.Background(), commands.CancelProposalCommand{
		Caller:     "alice",
		ProposalID: proposal.ID,
	}); err != nil {
		t.Fatalf("cancel failed: %v", err)
	}

	_, err := env.votes.CastVote(context.Background(), commands.CastVoteCommand{
		Caller:     "bob",
		ProposalID: proposal.ID,
		Option:     entities.VoteOptionFor,
	})
	if !errors.Is(err, domainerrors.ErrProposalFinalized) {
		t.Fatalf("expected ErrProposalFinalized for vote on cancelled proposal, got %v", err)
	}

	env.clock.Advance(testVotingPeriod + time.Second)
	err = env.execution.ExecuteProposal(context.Background(), commands.ExecuteProposalCommand{ProposalID: proposal.ID})
	if !errors.Is(err, domainerrors.ErrProposalFinalized) {
		t.Fatalf("expected ErrProposalFinalized for execute on cancelled proposal, got %v", err)
	}
}

func TestCancelProposalByNonProposer(t *testing.T) {
	env := newGovernanceEnv(t, map[string]uint64{"alice": 5000})
	proposal := createTestProposal(t, env, "alice")

	err := env.execution.CancelProposal(context.Background(), commands.CancelProposalCommand{
		Caller:     "bob",
		ProposalID: proposal.ID,
	})
	if !errors.Is(err, domainerrors.ErrNotProposer) {
		t.Fatalf("expected ErrNotProposer, got %v", err)
	}
}

func TestCancelProposalAfterWindowCloses(t *testing.T) {
	env := newGovernanceEnv(t, map[string]uint64{"alice": 5000})
	proposal := createTestProposal(t, env, "alice")

	env.clock.Advance(testVotingPeriod + time.Second)

	err := env.execution.CancelProposal(context.Background(), commands.CancelProposalCommand{
		Caller:     "alice",
		ProposalID: proposal.ID,
	})
	if !errors.Is(err, domainerrors.ErrCancelWindowClosed) {
		t.Fatalf("expected ErrCancelWindowClosed, got %v", err)
	}
}
