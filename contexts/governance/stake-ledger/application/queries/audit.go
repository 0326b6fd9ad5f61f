package queries

import (
	"context"
	"encoding/json"

	"agora/contexts/governance/stake-ledger/ports"
)

// AuditUseCase exposes the ledger's append-only event trail to external
// observers (indexers, UIs).
type AuditUseCase struct {
	Trail ports.AuditLog
}

func (uc AuditUseCase) EventTrail(ctx context.Context, limit int) ([]ports.EventEnvelope, error) {
	rows, err := uc.Trail.ListOutbox(ctx, limit)
	if err != nil {
		return nil, err
	}
	items := make([]ports.EventEnvelope, 0, len(rows))
	for _, row := range rows {
		var event ports.EventEnvelope
		if err := json.Unmarshal(row.Payload, &event); err != nil {
			return nil, err
		}
		items = append(items, event)
	}
	return items, nil
}
