package entities

import (
	"testing"
	"time"
)

func TestProposalPassed(t *testing.T) {
	start := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	end := start.Add(72 * time.Hour)
	base := Proposal{
		ID:        1,
		StartTime: start,
		EndTime:   end,
	}

	cases := []struct {
		name    string
		mutate  func(p *Proposal)
		now     time.Time
		quorum  uint64
		expectP bool
	}{
		{
			name:    "window still open",
			mutate:  func(p *Proposal) { p.ForVotes = 900; p.AgainstVotes = 100 },
			now:     end,
			quorum:  500,
			expectP: false,
		},
		{
			name:    "closed with quorum and majority",
			mutate:  func(p *Proposal) { p.ForVotes = 600; p.AgainstVotes = 300; p.AbstainVotes = 200 },
			now:     end.Add(time.Second),
			quorum:  1000,
			expectP: true,
		},
		{
			name:    "closed below quorum",
			mutate:  func(p *Proposal) { p.ForVotes = 400 },
			now:     end.Add(time.Second),
			quorum:  1000,
			expectP: false,
		},
		{
			name:    "closed with tie",
			mutate:  func(p *Proposal) { p.ForVotes = 500; p.AgainstVotes = 500 },
			now:     end.Add(time.Second),
			quorum:  100,
			expectP: false,
		},
		{
			name: "abstain counts toward quorum only",
			mutate: func(p *Proposal) {
				p.ForVotes = 100
				p.AgainstVotes = 50
				p.AbstainVotes = 900
			},
			now:     end.Add(time.Second),
			quorum:  1000,
			expectP: true,
		},
	}
	for _, tc := range cases {
		p := base
		tc.mutate(&p)
		if got := p.Passed(tc.now, tc.quorum); got != tc.expectP {
			t.Fatalf("%s: expected passed=%v, got %v", tc.name, tc.expectP, got)
		}
	}
}

func TestQuorumThresholdTruncates(t *testing.T) {
	if got := QuorumThreshold(10000, 10); got != 1000 {
		t.Fatalf("expected 1000, got %d", got)
	}
	if got := QuorumThreshold(999, 10); got != 99 {
		t.Fatalf("expected truncation to 99, got %d", got)
	}
	if got := QuorumThreshold(0, 10); got != 0 {
		t.Fatalf("expected 0 for empty ledger, got %d", got)
	}
}

func TestVotingOpenBounds(t *testing.T) {
	start := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	end := start.Add(time.Hour)
	p := Proposal{StartTime: start, EndTime: end}

	if !p.VotingOpen(start) {
		t.Fatalf("expected open at start time")
	}
	if !p.VotingOpen(end) {
		t.Fatalf("expected open at end time")
	}
	if p.VotingOpen(end.Add(time.Nanosecond)) {
		t.Fatalf("expected closed after end time")
	}
	if p.VotingOpen(start.Add(-time.Nanosecond)) {
		t.Fatalf("expected closed before start time")
	}
}
