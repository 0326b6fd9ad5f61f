package commands

import (
	"encoding/json"
	"strconv"
	"time"

	"agora/contexts/governance/proposal-engine/ports"
)

func newGovernanceEnvelope(
	eventID string,
	eventType string,
	proposalID uint64,
	occurredAt time.Time,
	data map[string]any,
) (ports.EventEnvelope, error) {
	// Governance events are partitioned by proposal for stable ordering on
	// proposal-scoped consumers.
	payload, err := json.Marshal(data)
	if err != nil {
		return ports.EventEnvelope{}, err
	}
	return ports.EventEnvelope{
		EventID:          eventID,
		EventType:        eventType,
		OccurredAt:       occurredAt.UTC(),
		SourceService:    "proposal-engine",
		TraceID:          eventID,
		SchemaVersion:    1,
		PartitionKeyPath: "proposal_id",
		PartitionKey:     strconv.FormatUint(proposalID, 10),
		Data:             payload,
	}, nil
}
