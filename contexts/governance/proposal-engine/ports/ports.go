package ports

import (
	"context"
	"time"

	"agora/contexts/governance/proposal-engine/domain/entities"
	"agora/internal/shared/events"
)

// ProposalRepository persists proposals and their per-voter records.
// NextProposalID allocates monotonically from 1 and never reuses an id.
// SaveVoteRecord must reject a second record for the same (proposal, voter)
// pair; vote records are write-once.
type ProposalRepository interface {
	NextProposalID(ctx context.Context) (uint64, error)
	SaveProposal(ctx context.Context, proposal entities.Proposal) error
	GetProposal(ctx context.Context, proposalID uint64) (entities.Proposal, error)
	ProposalCount(ctx context.Context) (uint64, error)
	ListProposals(ctx context.Context) ([]entities.Proposal, error)
	SaveVoteRecord(ctx context.Context, proposalID uint64, record entities.VoteRecord) error
	GetVoteRecord(ctx context.Context, proposalID uint64, voter string) (entities.VoteRecord, bool, error)
	ListVoteRecords(ctx context.Context, proposalID uint64) ([]entities.VoteRecord, error)
}

// StakeReader is the projection of the stake ledger this module consumes:
// current balances for vote-power snapshots and the proposal gate, and the
// aggregate total for quorum math.
type StakeReader interface {
	BalanceOf(ctx context.Context, owner string) (uint64, error)
	TotalStaked(ctx context.Context) (uint64, error)
}

// OutboxMessage is a row ready to relay from the module outbox.
type OutboxMessage struct {
	OutboxID     string
	EventType    string
	PartitionKey string
	Payload      []byte
	CreatedAt    time.Time
}

// OutboxWriter appends an event inside the same atomic operation as the state
// change it records.
type OutboxWriter interface {
	AppendOutbox(ctx context.Context, event EventEnvelope) error
}

// OutboxRepository models worker-side outbox polling/acknowledgement.
type OutboxRepository interface {
	ListPendingOutbox(ctx context.Context, limit int) ([]OutboxMessage, error)
	MarkOutboxPublished(ctx context.Context, outboxID string, publishedAt time.Time) error
}

// AuditLog reads the full append-only event trail, published rows included.
type AuditLog interface {
	ListOutbox(ctx context.Context, limit int) ([]OutboxMessage, error)
}

// EventEnvelope reuses the canonical cross-module envelope contract.
type EventEnvelope = events.Envelope

// EventPublisher publishes canonical envelopes to a topic.
type EventPublisher interface {
	Publish(ctx context.Context, topic string, event EventEnvelope) error
}

type Clock interface {
	Now() time.Time
}

type IDGenerator interface {
	NewID(ctx context.Context) (string, error)
}
