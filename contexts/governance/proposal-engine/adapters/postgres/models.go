package postgresadapter

import (
	"encoding/json"
	"strings"
	"time"

	"agora/contexts/governance/proposal-engine/domain/entities"
	"agora/contexts/governance/proposal-engine/ports"
	"agora/internal/shared/outbox"
)

type proposalModel struct {
	ID           uint64    `gorm:"column:id;primaryKey"`
	Proposer     string    `gorm:"column:proposer"`
	Title        string    `gorm:"column:title"`
	Description  string    `gorm:"column:description"`
	ForVotes     uint64    `gorm:"column:for_votes"`
	AgainstVotes uint64    `gorm:"column:against_votes"`
	AbstainVotes uint64    `gorm:"column:abstain_votes"`
	StartTime    time.Time `gorm:"column:start_time"`
	EndTime      time.Time `gorm:"column:end_time"`
	Executed     bool      `gorm:"column:executed"`
	Cancelled    bool      `gorm:"column:cancelled"`
	UpdatedAt    time.Time `gorm:"column:updated_at"`
}

func (proposalModel) TableName() string {
	return "governance_proposals"
}

func proposalModelFromEntity(proposal entities.Proposal) proposalModel {
	return proposalModel{
		ID:           proposal.ID,
		Proposer:     strings.TrimSpace(proposal.Proposer),
		Title:        proposal.Title,
		Description:  proposal.Description,
		ForVotes:     proposal.ForVotes,
		AgainstVotes: proposal.AgainstVotes,
		AbstainVotes: proposal.AbstainVotes,
		StartTime:    proposal.StartTime.UTC(),
		EndTime:      proposal.EndTime.UTC(),
		Executed:     proposal.Executed,
		Cancelled:    proposal.Cancelled,
		UpdatedAt:    time.Now().UTC(),
	}
}

func (m proposalModel) toEntity() entities.Proposal {
	return entities.Proposal{
		ID:           m.ID,
		Proposer:     m.Proposer,
		Title:        m.Title,
		Description:  m.Description,
		ForVotes:     m.ForVotes,
		AgainstVotes: m.AgainstVotes,
		AbstainVotes: m.AbstainVotes,
		StartTime:    m.StartTime,
		EndTime:      m.EndTime,
		Executed:     m.Executed,
		Cancelled:    m.Cancelled,
	}
}

type voteRecordModel struct {
	ProposalID uint64    `gorm:"column:proposal_id;primaryKey"`
	Voter      string    `gorm:"column:voter;primaryKey"`
	HasVoted   bool      `gorm:"column:has_voted"`
	PowerUsed  uint64    `gorm:"column:power_used"`
	CreatedAt  time.Time `gorm:"column:created_at"`
}

func (voteRecordModel) TableName() string {
	return "governance_vote_records"
}

func voteRecordModelFromEntity(proposalID uint64, record entities.VoteRecord) voteRecordModel {
	return voteRecordModel{
		ProposalID: proposalID,
		Voter:      strings.TrimSpace(record.Voter),
		HasVoted:   record.HasVoted,
		PowerUsed:  record.PowerUsed,
		CreatedAt:  time.Now().UTC(),
	}
}

func (m voteRecordModel) toEntity() entities.VoteRecord {
	return entities.VoteRecord{
		Voter:     m.Voter,
		HasVoted:  m.HasVoted,
		PowerUsed: m.PowerUsed,
	}
}

type proposalSequenceModel struct {
	ID     int    `gorm:"column:id;primaryKey"`
	LastID uint64 `gorm:"column:last_id"`
}

func (proposalSequenceModel) TableName() string {
	return "governance_proposal_sequence"
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
	return "governance_outbox"
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
