package queries

import (
	"context"
	"strings"
	"time"

	"agora/contexts/governance/proposal-engine/domain/entities"
	"agora/contexts/governance/proposal-engine/ports"
)

// ResultsUseCase serves the read side of the proposal lifecycle. All reads
// are side-effect-free and idempotent between mutations, and outcome fields
// derive from the same pass predicate execution uses.
type ResultsUseCase struct {
	Proposals     ports.ProposalRepository
	Stakes        ports.StakeReader
	Clock         ports.Clock
	QuorumPercent uint64
}

func (uc ResultsUseCase) GetProposal(ctx context.Context, proposalID uint64) (entities.Proposal, error) {
	return uc.Proposals.GetProposal(ctx, proposalID)
}

func (uc ResultsUseCase) ListProposals(ctx context.Context) ([]entities.Proposal, error) {
	return uc.Proposals.ListProposals(ctx)
}

// GetVoteRecord returns the per-voter record for a proposal. A voter without
// a record reads as a zero record with HasVoted false.
func (uc ResultsUseCase) GetVoteRecord(ctx context.Context, proposalID uint64, voter string) (entities.VoteRecord, error) {
	voter = strings.TrimSpace(voter)
	// Range-check the proposal id even when the voter never voted.
	if _, err := uc.Proposals.GetProposal(ctx, proposalID); err != nil {
		return entities.VoteRecord{}, err
	}
	record, found, err := uc.Proposals.GetVoteRecord(ctx, proposalID, voter)
	if err != nil {
		return entities.VoteRecord{}, err
	}
	if !found {
		return entities.VoteRecord{Voter: voter}, nil
	}
	return record, nil
}

func (uc ResultsUseCase) GetProposalResults(ctx context.Context, proposalID uint64) (entities.ProposalResults, error) {
	proposal, err := uc.Proposals.GetProposal(ctx, proposalID)
	if err != nil {
		return entities.ProposalResults{}, err
	}
	total, err := uc.Stakes.TotalStaked(ctx)
	if err != nil {
		return entities.ProposalResults{}, err
	}
	quorum := entities.QuorumThreshold(total, uc.QuorumPercent)

	now := time.Now().UTC()
	if uc.Clock != nil {
		now = uc.Clock.Now().UTC()
	}
	return entities.ProposalResults{
		ProposalID:      proposal.ID,
		ForVotes:        proposal.ForVotes,
		AgainstVotes:    proposal.AgainstVotes,
		AbstainVotes:    proposal.AbstainVotes,
		VotesCast:       proposal.VotesCast(),
		QuorumThreshold: quorum,
		VotingClosed:    now.After(proposal.EndTime),
		Passed:          proposal.Passed(now, quorum),
		Executed:        proposal.Executed,
		Cancelled:       proposal.Cancelled,
		StartTime:       proposal.StartTime,
		EndTime:         proposal.EndTime,
	}, nil
}
