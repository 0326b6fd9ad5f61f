package commands

import (
	"context"
	"log/slog"
	"strings"
	"sync"

	application "agora/contexts/governance/proposal-engine/application"
	"agora/contexts/governance/proposal-engine/domain/entities"
	domainerrors "agora/contexts/governance/proposal-engine/domain/errors"
	"agora/contexts/governance/proposal-engine/ports"
)

// CastVoteCommand is the write-model input for a single-shot vote.
type CastVoteCommand struct {
	Caller     string
	ProposalID uint64
	Option     entities.VoteOption
}

// VoteUseCase records stake-weighted votes. Power is read from the stake
// ledger at the instant of voting, not at proposal creation: depositing
// before a vote raises its weight, and withdrawing afterwards leaves the
// recorded PowerUsed untouched. That per-vote snapshot is a deliberate
// property of the design, not an oversight.
type VoteUseCase struct {
	Proposals ports.ProposalRepository
	Stakes    ports.StakeReader
	Outbox    ports.OutboxWriter
	Clock     ports.Clock
	IDGen     ports.IDGenerator
	WriteLock *sync.Mutex
	Logger    *slog.Logger
}

func (uc VoteUseCase) CastVote(ctx context.Context, cmd CastVoteCommand) (entities.VoteRecord, error) {
	logger := application.ResolveLogger(uc.Logger)
	caller := strings.TrimSpace(cmd.Caller)
	if caller == "" {
		return entities.VoteRecord{}, domainerrors.ErrInvalidProposalInput
	}
	if !cmd.Option.Valid() {
		logger.Warn("vote option invalid",
			"event", "governance_vote_option_invalid",
			"module", "governance/proposal-engine",
			"layer", "application",
			"proposal_id", cmd.ProposalID,
			"voter", caller,
			"option", string(cmd.Option),
		)
		return entities.VoteRecord{}, domainerrors.ErrInvalidVoteOption
	}

	if uc.WriteLock != nil {
		uc.WriteLock.Lock()
		defer uc.WriteLock.Unlock()
	}

	proposal, err := uc.Proposals.GetProposal(ctx, cmd.ProposalID)
	if err != nil {
		return entities.VoteRecord{}, err
	}

	now := resolveNow(uc.Clock)
	if now.Before(proposal.StartTime) {
		return entities.VoteRecord{}, domainerrors.ErrVotingNotStarted
	}
	if now.After(proposal.EndTime) {
		return entities.VoteRecord{}, domainerrors.ErrVotingClosed
	}
	if proposal.Finalized() {
		return entities.VoteRecord{}, domainerrors.ErrProposalFinalized
	}
	if existing, found, err := uc.Proposals.GetVoteRecord(ctx, cmd.ProposalID, caller); err != nil {
		return entities.VoteRecord{}, err
	} else if found && existing.HasVoted {
		logger.Warn("duplicate vote rejected",
			"event", "governance_vote_duplicate",
			"module", "governance/proposal-engine",
			"layer", "application",
			"proposal_id", cmd.ProposalID,
			"voter", caller,
		)
		return entities.VoteRecord{}, domainerrors.ErrAlreadyVoted
	}

	// Snapshot: the voter's balance right now becomes the vote's weight.
	power, err := uc.Stakes.BalanceOf(ctx, caller)
	if err != nil {
		return entities.VoteRecord{}, err
	}
	if power == 0 {
		return entities.VoteRecord{}, domainerrors.ErrNoVotingPower
	}

	record := entities.VoteRecord{
		Voter:     caller,
		HasVoted:  true,
		PowerUsed: power,
	}
	if err := uc.Proposals.SaveVoteRecord(ctx, cmd.ProposalID, record); err != nil {
		return entities.VoteRecord{}, err
	}

	switch cmd.Option {
	case entities.VoteOptionFor:
		proposal.ForVotes += power
	case entities.VoteOptionAgainst:
		proposal.AgainstVotes += power
	case entities.VoteOptionAbstain:
		proposal.AbstainVotes += power
	}
	if err := uc.Proposals.SaveProposal(ctx, proposal); err != nil {
		return entities.VoteRecord{}, err
	}

	if err := appendGovernanceEvent(ctx, uc.Outbox, uc.IDGen, "proposal.voted", proposal.ID, now, map[string]any{
		"proposal_id": proposal.ID,
		"voter":       caller,
		"option":      string(cmd.Option),
		"power":       power,
	}); err != nil {
		return entities.VoteRecord{}, err
	}

	logger.Info("vote cast",
		"event", "governance_vote_cast",
		"module", "governance/proposal-engine",
		"layer", "application",
		"proposal_id", proposal.ID,
		"voter", caller,
		"option", string(cmd.Option),
		"power", power,
	)
	return record, nil
}
