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

// ExecuteProposalCommand finalizes a proposal whose window has closed.
// Anyone may trigger execution; the outcome depends only on recorded state.
type ExecuteProposalCommand struct {
	ProposalID uint64
}

// CancelProposalCommand withdraws a proposal before its window closes.
type CancelProposalCommand struct {
	Caller     string
	ProposalID uint64
}

// ExecutionUseCase decides pass/fail and flips the terminal flags. Execution
// performs no action beyond the flag: downstream effects of a passed proposal
// live outside this module.
type ExecutionUseCase struct {
	Proposals     ports.ProposalRepository
	Stakes        ports.StakeReader
	Outbox        ports.OutboxWriter
	Clock         ports.Clock
	IDGen         ports.IDGenerator
	QuorumPercent uint64
	WriteLock     *sync.Mutex
	Logger        *slog.Logger
}

// QuorumThreshold is the minimum votes-cast power for a proposal to be
// executable: totalStaked * quorumPercent / 100, truncating division.
func (uc ExecutionUseCase) QuorumThreshold(ctx context.Context) (uint64, error) {
	total, err := uc.Stakes.TotalStaked(ctx)
	if err != nil {
		return 0, err
	}
	return entities.QuorumThreshold(total, uc.QuorumPercent), nil
}

func (uc ExecutionUseCase) ExecuteProposal(ctx context.Context, cmd ExecuteProposalCommand) error {
	logger := application.ResolveLogger(uc.Logger)

	if uc.WriteLock != nil {
		uc.WriteLock.Lock()
		defer uc.WriteLock.Unlock()
	}

	proposal, err := uc.Proposals.GetProposal(ctx, cmd.ProposalID)
	if err != nil {
		return err
	}

	now := resolveNow(uc.Clock)
	if !now.After(proposal.EndTime) {
		return domainerrors.ErrVotingStillOpen
	}
	if proposal.Finalized() {
		return domainerrors.ErrProposalFinalized
	}

	quorum, err := uc.QuorumThreshold(ctx)
	if err != nil {
		return err
	}
	if !proposal.Passed(now, quorum) {
		// Rejection reasons are reported distinctly, never silently dropped.
		reason := domainerrors.ErrProposalRejected
		if proposal.VotesCast() < quorum {
			reason = domainerrors.ErrQuorumNotReached
		}
		logger.Info("proposal not executable",
			"event", "governance_execute_rejected",
			"module", "governance/proposal-engine",
			"layer", "application",
			"proposal_id", proposal.ID,
			"votes_cast", proposal.VotesCast(),
			"quorum_threshold", quorum,
			"reason", reason.Error(),
		)
		return reason
	}

	proposal.Executed = true
	if err := uc.Proposals.SaveProposal(ctx, proposal); err != nil {
		return err
	}
	if err := appendGovernanceEvent(ctx, uc.Outbox, uc.IDGen, "proposal.executed", proposal.ID, now, map[string]any{
		"proposal_id": proposal.ID,
	}); err != nil {
		return err
	}

	logger.Info("proposal executed",
		"event", "governance_proposal_executed",
		"module", "governance/proposal-engine",
		"layer", "application",
		"proposal_id", proposal.ID,
		"for_votes", proposal.ForVotes,
		"against_votes", proposal.AgainstVotes,
		"abstain_votes", proposal.AbstainVotes,
	)
	return nil
}

func (uc ExecutionUseCase) CancelProposal(ctx context.Context, cmd CancelProposalCommand) error {
	logger := application.ResolveLogger(uc.Logger)
	caller := strings.TrimSpace(cmd.Caller)
	if caller == "" {
		return domainerrors.ErrInvalidProposalInput
	}

	if uc.WriteLock != nil {
		uc.WriteLock.Lock()
		defer uc.WriteLock.Unlock()
	}

	proposal, err := uc.Proposals.GetProposal(ctx, cmd.ProposalID)
	if err != nil {
		return err
	}
	if proposal.Proposer != caller {
		logger.Warn("cancel by non-proposer rejected",
			"event", "governance_cancel_unauthorized",
			"module", "governance/proposal-engine",
			"layer", "application",
			"proposal_id", proposal.ID,
			"caller", caller,
			"proposer", proposal.Proposer,
		)
		return domainerrors.ErrNotProposer
	}

	now := resolveNow(uc.Clock)
	if now.After(proposal.EndTime) {
		return domainerrors.ErrCancelWindowClosed
	}
	if proposal.Finalized() {
		return domainerrors.ErrProposalFinalized
	}

	proposal.Cancelled = true
	if err := uc.Proposals.SaveProposal(ctx, proposal); err != nil {
		return err
	}
	if err := appendGovernanceEvent(ctx, uc.Outbox, uc.IDGen, "proposal.cancelled", proposal.ID, now, map[string]any{
		"proposal_id": proposal.ID,
	}); err != nil {
		return err
	}

	logger.Info("proposal cancelled",
		"event", "governance_proposal_cancelled",
		"module", "governance/proposal-engine",
		"layer", "application",
		"proposal_id", proposal.ID,
		"proposer", proposal.Proposer,
	)
	return nil
}
