package commands

import (
	"encoding/json"
	"time"

	"agora/contexts/governance/stake-ledger/ports"
)

func newStakeEnvelope(
	eventID string,
	eventType string,
	account string,
	occurredAt time.Time,
	data map[string]any,
) (ports.EventEnvelope, error) {
	// Ledger events are partitioned by account for stable ordering on
	// account-scoped consumers.
	payload, err := json.Marshal(data)
	if err != nil {
		return ports.EventEnvelope{}, err
	}
	return ports.EventEnvelope{
		EventID:          eventID,
		EventType:        eventType,
		OccurredAt:       occurredAt.UTC(),
		SourceService:    "stake-ledger",
		TraceID:          eventID,
		SchemaVersion:    1,
		PartitionKeyPath: "account",
		PartitionKey:     account,
		Data:             payload,
	}, nil
}
