package memory

import (
	"context"
	"encoding/json"
	"sort"
	"strings"
	"sync"
	"time"

	"agora/contexts/governance/proposal-engine/domain/entities"
	domainerrors "agora/contexts/governance/proposal-engine/domain/errors"
	"agora/contexts/governance/proposal-engine/ports"

	"github.com/google/uuid"
)

type outboxRecord struct {
	message   ports.OutboxMessage
	published bool
}

// Store is the in-memory proposal repository. Vote records live in a
// per-proposal map owned by that proposal; they are never shared across
// proposals and never deleted.
type Store struct {
	mu sync.RWMutex

	nextID    uint64
	proposals map[uint64]entities.Proposal
	votes     map[uint64]map[string]entities.VoteRecord
	outbox    map[string]outboxRecord
}

func NewStore(seed []entities.Proposal) *Store {
	proposals := make(map[uint64]entities.Proposal, len(seed))
	var maxID uint64
	for _, proposal := range seed {
		proposals[proposal.ID] = proposal
		if proposal.ID > maxID {
			maxID = proposal.ID
		}
	}
	return &Store{
		nextID:    maxID,
		proposals: proposals,
		votes:     make(map[uint64]map[string]entities.VoteRecord),
		outbox:    make(map[string]outboxRecord),
	}
}

func (s *Store) NextProposalID(_ context.Context) (uint64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.nextID++
	return s.nextID, nil
}

func (s *Store) SaveProposal(_ context.Context, proposal entities.Proposal) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.proposals[proposal.ID] = proposal
	return nil
}

func (s *Store) GetProposal(_ context.Context, proposalID uint64) (entities.Proposal, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	proposal, ok := s.proposals[proposalID]
	if !ok {
		return entities.Proposal{}, domainerrors.ErrUnknownProposal
	}
	return proposal, nil
}

func (s *Store) ProposalCount(_ context.Context) (uint64, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return uint64(len(s.proposals)), nil
}

func (s *Store) ListProposals(_ context.Context) ([]entities.Proposal, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	items := make([]entities.Proposal, 0, len(s.proposals))
	for _, proposal := range s.proposals {
		items = append(items, proposal)
	}
	sort.Slice(items, func(i, j int) bool {
		return items[i].ID < items[j].ID
	})
	return items, nil
}

func (s *Store) SaveVoteRecord(_ context.Context, proposalID uint64, record entities.VoteRecord) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	records, ok := s.votes[proposalID]
	if !ok {
		records = make(map[string]entities.VoteRecord)
		s.votes[proposalID] = records
	}
	voter := strings.TrimSpace(record.Voter)
	if existing, found := records[voter]; found && existing.HasVoted {
		return domainerrors.ErrAlreadyVoted
	}
	records[voter] = record
	return nil
}

func (s *Store) GetVoteRecord(_ context.Context, proposalID uint64, voter string) (entities.VoteRecord, bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	records, ok := s.votes[proposalID]
	if !ok {
		return entities.VoteRecord{}, false, nil
	}
	record, found := records[strings.TrimSpace(voter)]
	return record, found, nil
}

func (s *Store) ListVoteRecords(_ context.Context, proposalID uint64) ([]entities.VoteRecord, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	records := s.votes[proposalID]
	items := make([]entities.VoteRecord, 0, len(records))
	for _, record := range records {
		items = append(items, record)
	}
	sort.Slice(items, func(i, j int) bool {
		return items[i].Voter < items[j].Voter
	})
	return items, nil
}

func (s *Store) AppendOutbox(_ context.Context, event ports.EventEnvelope) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	payload, err := json.Marshal(event)
	if err != nil {
		return err
	}
	outboxID := strings.TrimSpace(event.EventID)
	if outboxID == "" {
		outboxID = uuid.NewString()
	}
	s.outbox[outboxID] = outboxRecord{
		message: ports.OutboxMessage{
			OutboxID:     outboxID,
			EventType:    event.EventType,
			PartitionKey: event.PartitionKey,
			Payload:      payload,
			CreatedAt:    event.OccurredAt.UTC(),
		},
	}
	return nil
}

func (s *Store) ListPendingOutbox(_ context.Context, limit int) ([]ports.OutboxMessage, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	items := make([]ports.OutboxMessage, 0)
	for _, record := range s.outbox {
		if record.published {
			continue
		}
		items = append(items, record.message)
	}
	sort.Slice(items, func(i, j int) bool {
		return items[i].CreatedAt.Before(items[j].CreatedAt)
	})
	if limit > 0 && len(items) > limit {
		items = items[:limit]
	}
	return items, nil
}

func (s *Store) ListOutbox(_ context.Context, limit int) ([]ports.OutboxMessage, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	items := make([]ports.OutboxMessage, 0, len(s.outbox))
	for _, record := range s.outbox {
		items = append(items, record.message)
	}
	sort.Slice(items, func(i, j int) bool {
		return items[i].CreatedAt.Before(items[j].CreatedAt)
	})
	if limit > 0 && len(items) > limit {
		items = items[:limit]
	}
	return items, nil
}

func (s *Store) MarkOutboxPublished(_ context.Context, outboxID string, _ time.Time) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	record, ok := s.outbox[strings.TrimSpace(outboxID)]
	if !ok {
		return nil
	}
	record.published = true
	s.outbox[strings.TrimSpace(outboxID)] = record
	return nil
}

func (s *Store) Now() time.Time {
	return time.Now().UTC()
}

func (s *Store) NewID(_ context.Context) (string, error) {
	return uuid.NewString(), nil
}
