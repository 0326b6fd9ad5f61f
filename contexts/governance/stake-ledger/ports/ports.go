package ports

import (
	"context"
	"time"

	"agora/contexts/governance/stake-ledger/domain/entities"
	"agora/internal/shared/events"
)

// StakeRepository persists balances and the aggregate total. Credit and Debit
// must mutate the account balance and total staked in one atomic step so the
// ledger invariant (total == sum of balances) holds between any two
// operations. Debit fails when the balance is lower than the amount.
type StakeRepository interface {
	Credit(ctx context.Context, owner string, amount uint64) error
	Debit(ctx context.Context, owner string, amount uint64) error
	GetAccount(ctx context.Context, owner string) (entities.StakeAccount, error)
	TotalStaked(ctx context.Context) (uint64, error)
	ListAccounts(ctx context.Context) ([]entities.StakeAccount, error)
}

// AssetGateway is the external asset-transfer service. Both calls are
// fallible; a returned error aborts the enclosing ledger operation.
type AssetGateway interface {
	TransferFrom(ctx context.Context, from string, to string, amount uint64) error
	Transfer(ctx context.Context, to string, amount uint64) error
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
