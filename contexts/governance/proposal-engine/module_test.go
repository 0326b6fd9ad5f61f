package proposalengine_test

import (
	"context"
	"errors"
	"testing"
	"time"

	proposalengine "agora/contexts/governance/proposal-engine"
	"agora/contexts/governance/proposal-engine/adapters/memory"
	domainerrors "agora/contexts/governance/proposal-engine/domain/errors"
	httptransport "agora/contexts/governance/proposal-engine/transport/http"
	stakeledger "agora/contexts/governance/stake-ledger"
	stakehttp "agora/contexts/governance/stake-ledger/transport/http"
)

type testClock struct {
	now time.Time
}

func (c *testClock) Now() time.Time {
	return c.now
}

func newGovernanceModules(t *testing.T) (stakeledger.Module, proposalengine.Module, *testClock) {
	t.Helper()
	stakeModule := stakeledger.NewInMemoryModule(nil, "governance-treasury", nil)
	store := memory.NewStore(nil)
	clock := &testClock{now: time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)}
	proposalModule := proposalengine.NewModule(proposalengine.Dependencies{
		Proposals:         store,
		Stakes:            stakeModule.Store,
		Outbox:            store,
		Trail:             store,
		Clock:             clock,
		IDGen:             store,
		VotingPeriod:      proposalengine.DefaultVotingPeriod,
		MinStakeToPropose: proposalengine.DefaultMinStakeToPropose,
		QuorumPercent:     proposalengine.DefaultQuorumPercent,
	})
	return stakeModule, proposalModule, clock
}

func depositStake(t *testing.T, stakeModule stakeledger.Module, account string, amount uint64) {
	t.Helper()
	stakeModule.Tokens.Mint(account, amount)
	if _, err := stakeModule.Handler.DepositHandler(context.Background(), account, stakehttp.DepositRequest{
		Amount: amount,
	}); err != nil {
		t.Fatalf("deposit for %s failed: %v", account, err)
	}
}

func TestGovernanceLifecycleEndToEnd(t *testing.T) {
	stakeModule, proposalModule, clock := newGovernanceModules(t)
	ctx := context.Background()

	// Total staked 10000, so the 10% quorum threshold is 1000 power.
	depositStake(t, stakeModule, "alice", 600)
	depositStake(t, stakeModule, "bob", 300)
	depositStake(t, stakeModule, "carol", 200)
	depositStake(t, stakeModule, "dave", 8900)

	summary, err := stakeModule.Handler.SummaryHandler(ctx)
	if err != nil {
		t.Fatalf("summary failed: %v", err)
	}
	if summary.TotalStaked != 10000 || summary.Accounts != 4 {
		t.Fatalf("unexpected summary %+v", summary)
	}

	_, err = proposalModule.Handler.CreateProposalHandler(ctx, "alice", httptransport.CreateProposalRequest{
		Title:       "Fund the grants pool",
		Description: "Move 5% of treasury emissions into community grants.",
	})
	if !errors.Is(err, domainerrors.ErrInsufficientStake) {
		t.Fatalf("expected ErrInsufficientStake for 600 staked, got %v", err)
	}

	created, err := proposalModule.Handler.CreateProposalHandler(ctx, "dave", httptransport.CreateProposalRequest{
		Title:       "Fund the grants pool",
		Description: "Move 5% of treasury emissions into community grants.",
	})
	if err != nil {
		t.Fatalf("create proposal failed: %v", err)
	}
	if created.ProposalID != 1 {
		t.Fatalf("expected first proposal id 1, got %d", created.ProposalID)
	}

	for _, vote := range []struct {
		voter  string
		option string
	}{
		{"alice", "for"},
		{"bob", "against"},
		{"carol", "abstain"},
	} {
		record, err := proposalModule.Handler.CastVoteHandler(ctx, vote.voter, created.ProposalID, httptransport.CastVoteRequest{
			Option: vote.option,
		})
		if err != nil {
			t.Fatalf("vote by %s failed: %v", vote.voter, err)
		}
		if !record.HasVoted {
			t.Fatalf("expected recorded vote for %s", vote.voter)
		}
	}

	if _, err := proposalModule.Handler.ExecuteProposalHandler(ctx, created.ProposalID); !errors.Is(err, domainerrors.ErrVotingStillOpen) {
		t.Fatalf("expected ErrVotingStillOpen before window close, got %v", err)
	}

	clock.now = clock.now.Add(proposalengine.DefaultVotingPeriod + time.Second)

	results, err := proposalModule.Handler.ExecuteProposalHandler(ctx, created.ProposalID)
	if err != nil {
		t.Fatalf("execute failed: %v", err)
	}
	if !results.Executed || !results.Passed {
		t.Fatalf("expected executed passed proposal, got %+v", results)
	}
	if results.ForVotes != 600 || results.AgainstVotes != 300 || results.AbstainVotes != 200 {
		t.Fatalf("unexpected tallies %+v", results)
	}

	if _, err := proposalModule.Handler.ExecuteProposalHandler(ctx, created.ProposalID); !errors.Is(err, domainerrors.ErrProposalFinalized) {
		t.Fatalf("expected ErrProposalFinalized on repeat execute, got %v", err)
	}

	trail, err := proposalModule.Handler.EventTrailHandler(ctx, 0)
	if err != nil {
		t.Fatalf("event trail failed: %v", err)
	}
	// proposal.created, three proposal.voted, proposal.executed.
	if len(trail.Items) != 5 {
		t.Fatalf("expected 5 governance events, got %d", len(trail.Items))
	}
}

func TestWithdrawalAfterVoteKeepsRecordedPower(t *testing.T) {
	stakeModule, proposalModule, clock := newGovernanceModules(t)
	ctx := context.Background()

	depositStake(t, stakeModule, "alice", 5000)
	depositStake(t, stakeModule, "bob", 2000)

	created, err := proposalModule.Handler.CreateProposalHandler(ctx, "alice", httptransport.CreateProposalRequest{
		Title:       "Rotate the signer set",
		Description: "Replace two inactive signers.",
	})
	if err != nil {
		t.Fatalf("create proposal failed: %v", err)
	}

	record, err := proposalModule.Handler.CastVoteHandler(ctx, "bob", created.ProposalID, httptransport.CastVoteRequest{
		Option: "for",
	})
	if err != nil {
		t.Fatalf("vote failed: %v", err)
	}
	if record.PowerUsed != 2000 {
		t.Fatalf("expected snapshot power 2000, got %d", record.PowerUsed)
	}

	if _, err := stakeModule.Handler.WithdrawHandler(ctx, "bob", stakehttp.WithdrawRequest{Amount: 2000}); err != nil {
		t.Fatalf("withdraw failed: %v", err)
	}

	stored, err := proposalModule.Handler.VoteRecordHandler(ctx, created.ProposalID, "bob")
	if err != nil {
		t.Fatalf("vote record failed: %v", err)
	}
	if stored.PowerUsed != 2000 {
		t.Fatalf("expected recorded power to survive withdrawal, got %d", stored.PowerUsed)
	}

	clock.now = clock.now.Add(proposalengine.DefaultVotingPeriod + time.Second)
	results, err := proposalModule.Handler.ProposalResultsHandler(ctx, created.ProposalID)
	if err != nil {
		t.Fatalf("results failed: %v", err)
	}
	if results.ForVotes != 2000 {
		t.Fatalf("expected tallied power 2000 after withdrawal, got %d", results.ForVotes)
	}
}
