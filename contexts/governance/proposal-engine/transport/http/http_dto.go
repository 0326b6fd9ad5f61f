package http

import (
	"time"

	"agora/internal/shared/events"
)

type ErrorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

type CreateProposalRequest struct {
	Title       string `json:"title"`
	Description string `json:"description"`
}

type ProposalResponse struct {
	ProposalID   uint64    `json:"proposal_id"`
	Proposer     string    `json:"proposer"`
	Title        string    `json:"title"`
	Description  string    `json:"description"`
	ForVotes     uint64    `json:"for_votes"`
	AgainstVotes uint64    `json:"against_votes"`
	AbstainVotes uint64    `json:"abstain_votes"`
	StartTime    time.Time `json:"start_time"`
	EndTime      time.Time `json:"end_time"`
	Executed     bool      `json:"executed"`
	Cancelled    bool      `json:"cancelled"`
}

type ProposalListResponse struct {
	Items []ProposalResponse `json:"items"`
}

type CastVoteRequest struct {
	Option string `json:"option"`
}

type VoteRecordResponse struct {
	ProposalID uint64 `json:"proposal_id"`
	Voter      string `json:"voter"`
	HasVoted   bool   `json:"has_voted"`
	PowerUsed  uint64 `json:"power_used"`
}

type EventTrailResponse struct {
	Items []events.Envelope `json:"items"`
}

type ProposalResultsResponse struct {
	ProposalID      uint64    `json:"proposal_id"`
	ForVotes        uint64    `json:"for_votes"`
	AgainstVotes    uint64    `json:"against_votes"`
	AbstainVotes    uint64    `json:"abstain_votes"`
	VotesCast       uint64    `json:"votes_cast"`
	QuorumThreshold uint64    `json:"quorum_threshold"`
	VotingClosed    bool      `json:"voting_closed"`
	Passed          bool      `json:"passed"`
	Executed        bool      `json:"executed"`
	Cancelled       bool      `json:"cancelled"`
	StartTime       time.Time `json:"start_time"`
	EndTime         time.Time `json:"end_time"`
}
