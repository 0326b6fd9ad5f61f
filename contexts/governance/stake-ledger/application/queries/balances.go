package queries

import (
	"context"
	"strings"

	"agora/contexts/governance/stake-ledger/domain/entities"
	"agora/contexts/governance/stake-ledger/ports"
)

type BalanceUseCase struct {
	Stakes ports.StakeRepository
}

// AccountBalance returns the account view for any owner; never-deposited
// owners read as zero-balance accounts.
func (uc BalanceUseCase) AccountBalance(ctx context.Context, owner string) (entities.StakeAccount, error) {
	return uc.Stakes.GetAccount(ctx, strings.TrimSpace(owner))
}

func (uc BalanceUseCase) Summary(ctx context.Context) (entities.LedgerSummary, error) {
	total, err := uc.Stakes.TotalStaked(ctx)
	if err != nil {
		return entities.LedgerSummary{}, err
	}
	accounts, err := uc.Stakes.ListAccounts(ctx)
	if err != nil {
		return entities.LedgerSummary{}, err
	}
	return entities.LedgerSummary{
		TotalStaked: total,
		Accounts:    len(accounts),
	}, nil
}
