package memory

import (
	"context"
	"encoding/json"
	"sort"
	"strings"
	"sync"
	"time"

	"agora/contexts/governance/stake-ledger/domain/entities"
	domainerrors "agora/contexts/governance/stake-ledger/domain/errors"
	"agora/contexts/governance/stake-ledger/ports"

	"github.com/google/uuid"
)

type outboxRecord struct {
	message   ports.OutboxMessage
	published bool
}

// Store is the in-memory stake repository. One mutex guards balances, the
// aggregate total, and the outbox, so every credit/debit commits as a single
// step and readers only ever see fully-applied states.
type Store struct {
	mu sync.RWMutex

	balances    map[string]uint64
	totalStaked uint64
	outbox      map[string]outboxRecord
}

func NewStore(seed []entities.StakeAccount) *Store {
	balances := make(map[string]uint64, len(seed))
	var total uint64
	for _, account := range seed {
		balances[strings.TrimSpace(account.Owner)] = account.Balance
		total += account.Balance
	}
	return &Store{
		balances:    balances,
		totalStaked: total,
		outbox:      make(map[string]outboxRecord),
	}
}

func (s *Store) Credit(_ context.Context, owner string, amount uint64) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	owner = strings.TrimSpace(owner)
	s.balances[owner] += amount
	s.totalStaked += amount
	return nil
}

func (s *Store) Debit(_ context.Context, owner string, amount uint64) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	owner = strings.TrimSpace(owner)
	if s.balances[owner] < amount {
		return domainerrors.ErrInsufficientStake
	}
	s.balances[owner] -= amount
	s.totalStaked -= amount
	return nil
}

func (s *Store) GetAccount(_ context.Context, owner string) (entities.StakeAccount, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	owner = strings.TrimSpace(owner)
	return entities.StakeAccount{
		Owner:   owner,
		Balance: s.balances[owner],
	}, nil
}

func (s *Store) TotalStaked(_ context.Context) (uint64, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.totalStaked, nil
}

// BalanceOf satisfies the stake projection consumed by the proposal engine.
func (s *Store) BalanceOf(_ context.Context, owner string) (uint64, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.balances[strings.TrimSpace(owner)], nil
}

func (s *Store) ListAccounts(_ context.Context) ([]entities.StakeAccount, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	items := make([]entities.StakeAccount, 0, len(s.balances))
	for owner, balance := range s.balances {
		items = append(items, entities.StakeAccount{Owner: owner, Balance: balance})
	}
	sort.Slice(items, func(i, j int) bool {
		return items[i].Owner < items[j].Owner
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
