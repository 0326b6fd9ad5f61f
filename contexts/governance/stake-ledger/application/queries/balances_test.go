package queries_test

import (
	"context"
	"testing"

	"agora/contexts/governance/stake-ledger/adapters/memory"
	"agora/contexts/governance/stake-ledger/application/queries"
	"agora/contexts/governance/stake-ledger/domain/entities"
	"agora/contexts/governance/stake-ledger/ports"
)

func TestAccountBalanceZeroForUnknownOwner(t *testing.T) {
	store := memory.NewStore([]entities.StakeAccount{{Owner: "alice", Balance: 700}})
	uc := queries.BalanceUseCase{Stakes: store}

	account, err := uc.AccountBalance(context.Background(), "  alice ")
	if err != nil {
		t.Fatalf("account balance failed: %v", err)
	}
	if account.Balance != 700 {
		t.Fatalf("expected 700, got %d", account.Balance)
	}

	unknown, err := uc.AccountBalance(context.Background(), "nobody")
	if err != nil {
		t.Fatalf("account balance failed: %v", err)
	}
	if unknown.Balance != 0 {
		t.Fatalf("expected zero balance for unknown owner, got %d", unknown.Balance)
	}
}

func TestSummaryAggregatesAccounts(t *testing.T) {
	store := memory.NewStore([]entities.StakeAccount{
		{Owner: "alice", Balance: 700},
		{Owner: "bob", Balance: 300},
	})
	uc := queries.BalanceUseCase{Stakes: store}

	summary, err := uc.Summary(context.Background())
	if err != nil {
		t.Fatalf("summary failed: %v", err)
	}
	if summary.TotalStaked != 1000 || summary.Accounts != 2 {
		t.Fatalf("unexpected summary %+v", summary)
	}
}

func TestEventTrailDecodesEnvelopes(t *testing.T) {
	store := memory.NewStore(nil)
	if err := store.AppendOutbox(context.Background(), ports.EventEnvelope{
		EventID:       "evt-1",
		EventType:     "stake.deposited",
		SourceService: "stake-ledger",
		PartitionKey:  "alice",
	}); err != nil {
		t.Fatalf("append outbox failed: %v", err)
	}

	uc := queries.AuditUseCase{Trail: store}
	items, err := uc.EventTrail(context.Background(), 10)
	if err != nil {
		t.Fatalf("event trail failed: %v", err)
	}
	if len(items) != 1 {
		t.Fatalf("expected one event, got %d", len(items))
	}
	if items[0].EventType != "stake.deposited" || items[0].PartitionKey != "alice" {
		t.Fatalf("unexpected envelope %+v", items[0])
	}
}
