package postgresadapter

import (
	"encoding/json"
	"time"

	"agora/contexts/governance/stake-ledger/domain/entities"
	"agora/contexts/governance/stake-ledger/ports"
	"agora/internal/shared/outbox"
)

type stakeAccountModel struct {
	Owner     string    `gorm:"column:owner;primaryKey"`
	Balance   uint64    `gorm:"column:balance"`
	UpdatedAt time.Time `gorm:"column:updated_at"`
}

func (stakeAccountModel) TableName() string {
	return "stake_accounts"
}

func (m stakeAccountModel) toEntity() entities.StakeAccount {
	return entities.StakeAccount{
		Owner:   m.Owner,
		Balance: m.Balance,
	}
}

type ledgerTotalModel struct {
	ID          int       `gorm:"column:id;primaryKey"`
	TotalStaked uint64    `gorm:"column:total_staked"`
	UpdatedAt   time.Time `gorm:"column:updated_at"`
}

func (ledgerTotalModel) TableName() string {
	return "stake_totals"
}

type outboxModel struct {
	ID           string     `gorm:"column:id;primaryKey"`
	EventType    string     `gorm:"column:event_type"`
	PartitionKey string     `gorm:"column:partition_key"`
	Payload      []byte     `gorm:"column:payload"`
	Status       string     `gorm:"column:status"`
	CreatedAt    time.Time  `gorm:"column:created_at"`
	PublishedAt  *time.Time `gorm:"column:published_at"`
}

func (outboxModel) TableName() string {
	return "stake_ledger_outbox"
}

func outboxModelFromEnvelope(event ports.EventEnvelope) (outboxModel, error) {
	payload, err := json.Marshal(event)
	if err != nil {
		return outboxModel{}, err
	}
	return outboxModel{
		ID:           event.EventID,
		EventType:    event.EventType,
		PartitionKey: event.PartitionKey,
		Payload:      payload,
		Status:       outbox.StatusPending,
		CreatedAt:    event.OccurredAt.UTC(),
	}, nil
}

func (m outboxModel) toMessage() ports.OutboxMessage {
	return ports.OutboxMessage{
		OutboxID:     m.ID,
		EventType:    m.EventType,
		PartitionKey: m.PartitionKey,
		Payload:      m.Payload,
		CreatedAt:    m.CreatedAt,
	}
}
