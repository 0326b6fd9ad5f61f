package httpadapter

import (
	"context"
	"log/slog"

	"agora/contexts/governance/proposal-engine/application/commands"
	"agora/contexts/governance/proposal-engine/application/queries"
	"agora/contexts/governance/proposal-engine/domain/entities"
	httptransport "agora/contexts/governance/proposal-engine/transport/http"
)

type Handler struct {
	Proposals commands.ProposalUseCase
	Votes     commands.VoteUseCase
	Execution commands.ExecutionUseCase
	Results   queries.ResultsUseCase
	Audit     queries.AuditUseCase
	Logger    *slog.Logger
}

func (h Handler) EventTrailHandler(ctx context.Context, limit int) (httptransport.EventTrailResponse, error) {
	items, err := h.Audit.EventTrail(ctx, limit)
	if err != nil {
		return httptransport.EventTrailResponse{}, err
	}
	return httptransport.EventTrailResponse{Items: items}, nil
}

func (h Handler) CreateProposalHandler(
	ctx context.Context,
	caller string,
	req httptransport.CreateProposalRequest,
) (httptransport.ProposalResponse, error) {
	proposal, err := h.Proposals.CreateProposal(ctx, commands.CreateProposalCommand{
		Caller:      caller,
		Title:       req.Title,
		Description: req.Description,
	})
	if err != nil {
		return httptransport.ProposalResponse{}, err
	}
	return proposalResponse(proposal), nil
}

func (h Handler) CastVoteHandler(
	ctx context.Context,
	caller string,
	proposalID uint64,
	req httptransport.CastVoteRequest,
) (httptransport.VoteRecordResponse, error) {
	record, err := h.Votes.CastVote(ctx, commands.CastVoteCommand{
		Caller:     caller,
		ProposalID: proposalID,
		Option:     entities.VoteOption(req.Option),
	})
	if err != nil {
		return httptransport.VoteRecordResponse{}, err
	}
	return httptransport.VoteRecordResponse{
		ProposalID: proposalID,
		Voter:      record.Voter,
		HasVoted:   record.HasVoted,
		PowerUsed:  record.PowerUsed,
	}, nil
}

func (h Handler) ExecuteProposalHandler(ctx context.Context, proposalID uint64) (httptransport.ProposalResultsResponse, error) {
	if err := h.Execution.ExecuteProposal(ctx, commands.ExecuteProposalCommand{
		ProposalID: proposalID,
	}); err != nil {
		return httptransport.ProposalResultsResponse{}, err
	}
	return h.ProposalResultsHandler(ctx, proposalID)
}

func (h Handler) CancelProposalHandler(ctx context.Context, caller string, proposalID uint64) error {
	return h.Execution.CancelProposal(ctx, commands.CancelProposalCommand{
		Caller:     caller,
		ProposalID: proposalID,
	})
}

func (h Handler) GetProposalHandler(ctx context.Context, proposalID uint64) (httptransport.ProposalResponse, error) {
	proposal, err := h.Results.GetProposal(ctx, proposalID)
	if err != nil {
		return httptransport.ProposalResponse{}, err
	}
	return proposalResponse(proposal), nil
}

func (h Handler) ListProposalsHandler(ctx context.Context) (httptransport.ProposalListResponse, error) {
	proposals, err := h.Results.ListProposals(ctx)
	if err != nil {
		return httptransport.ProposalListResponse{}, err
	}
	items := make([]httptransport.ProposalResponse, 0, len(proposals))
	for _, proposal := range proposals {
		items = append(items, proposalResponse(proposal))
	}
	return httptransport.ProposalListResponse{Items: items}, nil
}

func (h Handler) VoteRecordHandler(ctx context.Context, proposalID uint64, voter string) (httptransport.VoteRecordResponse, error) {
	record, err := h.Results.GetVoteRecord(ctx, proposalID, voter)
	if err != nil {
		return httptransport.VoteRecordResponse{}, err
	}
	return httptransport.VoteRecordResponse{
		ProposalID: proposalID,
		Voter:      record.Voter,
		HasVoted:   record.HasVoted,
		PowerUsed:  record.PowerUsed,
	}, nil
}

func (h Handler) ProposalResultsHandler(ctx context.Context, proposalID uint64) (httptransport.ProposalResultsResponse, error) {
	results, err := h.Results.GetProposalResults(ctx, proposalID)
	if err != nil {
		return httptransport.ProposalResultsResponse{}, err
	}
	return httptransport.ProposalResultsResponse{
		ProposalID:      results.ProposalID,
		ForVotes:        results.ForVotes,
		AgainstVotes:    results.AgainstVotes,
		AbstainVotes:    results.AbstainVotes,
		VotesCast:       results.VotesCast,
		QuorumThreshold: results.QuorumThreshold,
		VotingClosed:    results.VotingClosed,
		Passed:          results.Passed,
		Executed:        results.Executed,
		Cancelled:       results.Cancelled,
		StartTime:       results.StartTime,
		EndTime:         results.EndTime,
	}, nil
}

func proposalResponse(proposal entities.Proposal) httptransport.ProposalResponse {
	return httptransport.ProposalResponse{
		ProposalID:   proposal.ID,
		Proposer:     proposal.Proposer,
		Title:        proposal.Title,
		Description:  proposal.Description,
		ForVotes:     proposal.ForVotes,
		AgainstVotes: proposal.AgainstVotes,
		AbstainVotes: proposal.AbstainVotes,
		StartTime:    proposal.StartTime,
		EndTime:      proposal.EndTime,
		Executed:     proposal.Executed,
		Cancelled:    proposal.Cancelled,
	}
}
