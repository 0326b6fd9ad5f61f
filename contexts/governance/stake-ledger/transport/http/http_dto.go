package http

import "agora/internal/shared/events"

type EventTrailResponse struct {
	Items []events.Envelope `json:"items"`
}

type ErrorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

type DepositRequest struct {
	Amount uint64 `json:"amount"`
}

type WithdrawRequest struct {
	Amount uint64 `json:"amount"`
}

type AccountResponse struct {
	Account string `json:"account"`
	Balance uint64 `json:"balance"`
}

type LedgerSummaryResponse struct {
	TotalStaked uint64 `json:"total_staked"`
	Accounts    int    `json:"accounts"`
}
