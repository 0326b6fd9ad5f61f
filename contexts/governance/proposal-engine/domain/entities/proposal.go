package entities

import "time"

type VoteOption string

const (
	VoteOptionAgainst VoteOption = "against"
	VoteOptionFor     VoteOption = "for"
	VoteOptionAbstain VoteOption = "abstain"
)

func (o VoteOption) Valid() bool {
	switch o {
	case VoteOptionAgainst, VoteOptionFor, VoteOptionAbstain:
		return true
	default:
		return false
	}
}

// Proposal ids are sequential from 1 and never reused. A proposal is in its
// voting window immediately on creation; there is no scheduled phase.
// Executed and Cancelled are mutually exclusive and permanent.
type Proposal struct {
	ID           uint64
	Proposer     string
	Title        string
	Description  string
	ForVotes     uint64
	AgainstVotes uint64
	AbstainVotes uint64
	StartTime    time.Time
	EndTime      time.Time
	Executed     bool
	Cancelled    bool
}

func (p Proposal) VotesCast() uint64 {
	return p.ForVotes + p.AgainstVotes + p.AbstainVotes
}

func (p Proposal) Finalized() bool {
	return p.Executed || p.Cancelled
}

func (p Proposal) VotingOpen(now time.Time) bool {
	return !now.Before(p.StartTime) && !now.After(p.EndTime)
}

// Passed is the one pass predicate for the whole module: voting closed,
// quorum reached, and strictly more for than against power. Execution and
// every read query must go through it. An expired proposal that fails the
// predicate carries no stored failure flag; callers infer the outcome from
// timestamps and tallies.
func (p Proposal) Passed(now time.Time, quorumThreshold uint64) bool {
	if !now.After(p.EndTime) {
		return false
	}
	if p.VotesCast() < quorumThreshold {
		return false
	}
	return p.ForVotes > p.AgainstVotes
}

// QuorumThreshold is the minimum votes-cast power for a proposal to pass:
// totalStaked * quorumPercent / 100, integer division truncating toward zero.
func QuorumThreshold(totalStaked uint64, quorumPercent uint64) uint64 {
	return totalStaked * quorumPercent / 100
}

// VoteRecord is write-once: created the first and only time a voter votes on
// a proposal, never mutated afterwards. PowerUsed is the voter's staked
// balance at the instant of voting.
type VoteRecord struct {
	Voter     string
	HasVoted  bool
	PowerUsed uint64
}

// ProposalResults is the derived read view of a proposal's outcome.
type ProposalResults struct {
	ProposalID      uint64
	ForVotes        uint64
	AgainstVotes    uint64
	AbstainVotes    uint64
	VotesCast       uint64
	QuorumThreshold uint64
	VotingClosed    bool
	Passed          bool
	Executed        bool
	Cancelled       bool
	StartTime       time.Time
	EndTime         time.Time
}
