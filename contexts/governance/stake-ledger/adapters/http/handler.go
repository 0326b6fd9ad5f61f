package httpadapter

import (
	"context"
	"log/slog"

	"agora/contexts/governance/stake-ledger/application/commands"
	"agora/contexts/governance/stake-ledger/application/queries"
	httptransport "agora/contexts/governance/stake-ledger/transport/http"
)

type Handler struct {
	Stakes   commands.StakeUseCase
	Balances queries.BalanceUseCase
	Audit    queries.AuditUseCase
	Logger   *slog.Logger
}

func (h Handler) EventTrailHandler(ctx context.Context, limit int) (httptransport.EventTrailResponse, error) {
	items, err := h.Audit.EventTrail(ctx, limit)
	if err != nil {
		return httptransport.EventTrailResponse{}, err
	}
	return httptransport.EventTrailResponse{Items: items}, nil
}

func (h Handler) DepositHandler(ctx context.Context, caller string, req httptransport.DepositRequest) (httptransport.AccountResponse, error) {
	if err := h.Stakes.Deposit(ctx, commands.DepositCommand{
		Caller: caller,
		Amount: req.Amount,
	}); err != nil {
		return httptransport.AccountResponse{}, err
	}
	return h.AccountHandler(ctx, caller)
}

func (h Handler) WithdrawHandler(ctx context.Context, caller string, req httptransport.WithdrawRequest) (httptransport.AccountResponse, error) {
	if err := h.Stakes.Withdraw(ctx, commands.WithdrawCommand{
		Caller: caller,
		Amount: req.Amount,
	}); err != nil {
		return httptransport.AccountResponse{}, err
	}
	return h.AccountHandler(ctx, caller)
}

func (h Handler) AccountHandler(ctx context.Context, owner string) (httptransport.AccountResponse, error) {
	account, err := h.Balances.AccountBalance(ctx, owner)
	if err != nil {
		return httptransport.AccountResponse{}, err
	}
	return httptransport.AccountResponse{
		Account: account.Owner,
		Balance: account.Balance,
	}, nil
}

func (h Handler) SummaryHandler(ctx context.Context) (httptransport.LedgerSummaryResponse, error) {
	summary, err := h.Balances.Summary(ctx)
	if err != nil {
		return httptransport.LedgerSummaryResponse{}, err
	}
	return httptransport.LedgerSummaryResponse{
		TotalStaked: summary.TotalStaked,
		Accounts:    summary.Accounts,
	}, nil
}
