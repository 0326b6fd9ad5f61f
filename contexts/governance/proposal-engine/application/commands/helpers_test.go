package commands_test

import (
	"context"
	"sync"
	"testing"
	"time"

	"agora/contexts/governance/proposal-engine/adapters/memory"
	"agora/contexts/governance/proposal-engine/application/commands"
)

type stubClock struct {
	now time.Time
}

func (c *stubClock) Now() time.Time {
	return c.now
}

func (c *stubClock) Advance(d time.Duration) {
	c.now = c.now.Add(d)
}

type stakeBalances struct {
	balances map[string]uint64
}

func (s stakeBalances) BalanceOf(_ context.Context, owner string) (uint64, error) {
	return s.balances[owner], nil
}

func (s stakeBalances) TotalStaked(_ context.Context) (uint64, error) {
	var total uint64
	for _, balance := range s.balances {
		total += balance
	}
	return total, nil
}

const testVotingPeriod = 72 * time.Hour

type governanceEnv struct {
	store     *memory.Store
	clock     *stubClock
	stakes    stakeBalances
	proposals commands.ProposalUseCase
	votes     commands.VoteUseCase
	execution commands.ExecutionUseCase
}

func newGovernanceEnv(t *testing.T, balances map[string]uint64) *governanceEnv {
	t.Helper()
	store := memory.NewStore(nil)
	clock := &stubClock{now: time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)}
	stakes := stakeBalances{balances: balances}
	writeLock := &sync.Mutex{}

	return &governanceEnv{
		store:  store,
		clock:  clock,
		stakes: stakes,
		proposals: commands.ProposalUseCase{
			Proposals:         store,
			Stakes:            stakes,
			Outbox:            store,
			Clock:             clock,
			IDGen:             store,
			VotingPeriod:      testVotingPeriod,
			MinStakeToPropose: 1000,
			WriteLock:         writeLock,
		},
		votes: commands.VoteUseCase{
			Proposals: store,
			Stakes:    stakes,
			Outbox:    store,
			Clock:     clock,
			IDGen:     store,
			WriteLock: writeLock,
		},
		execution: commands.ExecutionUseCase{
			Proposals:     store,
			Stakes:        stakes,
			Outbox:        store,
			Clock:         clock,
			IDGen:         store,
			QuorumPercent: 10,
			WriteLock:     writeLock,
		},
	}
}
