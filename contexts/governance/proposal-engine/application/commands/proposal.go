package commands

import (
	"context"
	"log/slog"
	"strings"
	"sync"
	"time"

	application "agora/contexts/governance/proposal-engine/application"
	"agora/contexts/governance/proposal-engine/domain/entities"
	domainerrors "agora/contexts/governance/proposal-engine/domain/errors"
	"agora/contexts/governance/proposal-engine/ports"
)

// CreateProposalCommand is the write-model input for proposal creation.
type CreateProposalCommand struct {
	Caller      string
	Title       string
	Description string
}

// ProposalUseCase creates proposals gated by the minimum-stake threshold.
// WriteLock serializes every mutating governance operation so tallies and
// lifecycle flags are only ever touched by one in-flight operation.
type ProposalUseCase struct {
	Proposals         ports.ProposalRepository
	Stakes            ports.StakeReader
	Outbox            ports.OutboxWriter
	Clock             ports.Clock
	IDGen             ports.IDGenerator
	VotingPeriod      time.Duration
	MinStakeToPropose uint64
	WriteLock         *sync.Mutex
	Logger            *slog.Logger
}

func (uc ProposalUseCase) CreateProposal(ctx context.Context, cmd CreateProposalCommand) (entities.Proposal, error) {
	logger := application.ResolveLogger(uc.Logger)
	caller := strings.TrimSpace(cmd.Caller)
	title := strings.TrimSpace(cmd.Title)
	description := strings.TrimSpace(cmd.Description)
	if caller == "" || title == "" || description == "" {
		logger.Warn("proposal create validation failed",
			"event", "governance_proposal_create_validation_failed",
			"module", "governance/proposal-engine",
			"layer", "application",
			"proposer", caller,
		)
		return entities.Proposal{}, domainerrors.ErrInvalidProposalInput
	}

	if uc.WriteLock != nil {
		uc.WriteLock.Lock()
		defer uc.WriteLock.Unlock()
	}

	balance, err := uc.Stakes.BalanceOf(ctx, caller)
	if err != nil {
		return entities.Proposal{}, err
	}
	if balance < uc.MinStakeToPropose {
		logger.Warn("proposal create below stake threshold",
			"event", "governance_proposal_create_below_threshold",
			"module", "governance/proposal-engine",
			"layer", "application",
			"proposer", caller,
			"balance", balance,
			"min_stake", uc.MinStakeToPropose,
		)
		return entities.Proposal{}, domainerrors.ErrInsufficientStake
	}

	proposalID, err := uc.Proposals.NextProposalID(ctx)
	if err != nil {
		return entities.Proposal{}, err
	}
	now := resolveNow(uc.Clock)
	proposal := entities.Proposal{
		ID:          proposalID,
		Proposer:    caller,
		Title:       title,
		Description: description,
		StartTime:   now,
		EndTime:     now.Add(uc.VotingPeriod),
	}
	if err := uc.Proposals.SaveProposal(ctx, proposal); err != nil {
		return entities.Proposal{}, err
	}

	if err := appendGovernanceEvent(ctx, uc.Outbox, uc.IDGen, "proposal.created", proposal.ID, now, map[string]any{
		"proposal_id": proposal.ID,
		"proposer":    proposal.Proposer,
		"title":       proposal.Title,
		"start_time":  proposal.StartTime.Format(time.RFC3339),
		"end_time":    proposal.EndTime.Format(time.RFC3339),
	}); err != nil {
		return entities.Proposal{}, err
	}

	logger.Info("proposal created",
		"event", "governance_proposal_created",
		"module", "governance/proposal-engine",
		"layer", "application",
		"proposal_id", proposal.ID,
		"proposer", proposal.Proposer,
		"end_time", proposal.EndTime,
	)
	return proposal, nil
}

func resolveNow(clock ports.Clock) time.Time {
	if clock != nil {
		return clock.Now().UTC()
	}
	return time.Now().UTC()
}

func appendGovernanceEvent(
	ctx context.Context,
	outbox ports.OutboxWriter,
	idGen ports.IDGenerator,
	eventType string,
	proposalID uint64,
	occurredAt time.Time,
	data map[string]any,
) error {
	// Outbox is optional for pure read/test wiring, so nil is treated as no-op.
	if outbox == nil {
		return nil
	}
	eventID, err := idGen.NewID(ctx)
	if err != nil {
		return err
	}
	envelope, err := newGovernanceEnvelope(eventID, eventType, proposalID, occurredAt, data)
	if err != nil {
		return err
	}
	return outbox.AppendOutbox(ctx, envelope)
}
