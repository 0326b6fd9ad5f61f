package errors

import "errors"

var (
	ErrInvalidProposalInput = errors.New("invalid proposal input")
	ErrUnknownProposal      = errors.New("unknown proposal id")
	ErrInvalidVoteOption    = errors.New("invalid vote option")
	ErrInsufficientStake    = errors.New("staked balance below proposal threshold")
	ErrNoVotingPower        = errors.New("caller has no staked balance")
	ErrVotingNotStarted     = errors.New("voting has not started")
	ErrVotingClosed         = errors.New("voting window has closed")
	ErrVotingStillOpen      = errors.New("voting window is still open")
	ErrCancelWindowClosed   = errors.New("cancellation window has closed")
	ErrAlreadyVoted         = errors.New("caller already voted on this proposal")
	ErrProposalFinalized    = errors.New("proposal is already executed or cancelled")
	ErrNotProposer          = errors.New("only the proposer may cancel")
	ErrQuorumNotReached     = errors.New("quorum not reached")
	ErrProposalRejected     = errors.New("proposal rejected by vote")
)
