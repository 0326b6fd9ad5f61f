package httpserver

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"strings"

	stakeerrors "agora/contexts/governance/stake-ledger/domain/errors"
	stakehttp "agora/contexts/governance/stake-ledger/transport/http"
)

func writeStakeError(w http.ResponseWriter, status int, code string, message string) {
	writeJSON(w, status, stakehttp.ErrorResponse{Code: code, Message: message})
}

func writeStakeDomainError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, stakeerrors.ErrInvalidAmount):
		writeStakeError(w, http.StatusBadRequest, "invalid_amount", err.Error())
	case errors.Is(err, stakeerrors.ErrInsufficientStake):
		writeStakeError(w, http.StatusConflict, "insufficient_stake", err.Error())
	case errors.Is(err, stakeerrors.ErrTransferFailed):
		writeStakeError(w, http.StatusFailedDependency, "transfer_failed", err.Error())
	default:
		writeStakeError(w, http.StatusInternalServerError, "internal_error", "internal server error")
	}
}

func requireStakeCaller(w http.ResponseWriter, r *http.Request) (string, bool) {
	caller := strings.TrimSpace(r.Header.Get("X-User-Id"))
	if caller == "" {
		writeStakeError(w, http.StatusUnauthorized, "missing_user", "X-User-Id header is required")
		return "", false
	}
	return caller, true
}

func (s *Server) handleStakeDeposit(w http.ResponseWriter, r *http.Request) {
	caller, ok := requireStakeCaller(w, r)
	if !ok {
		return
	}

	var req stakehttp.DepositRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeStakeError(w, http.StatusBadRequest, "invalid_json", "request body must be valid JSON")
		return
	}

	resp, err := s.stakes.Handler.DepositHandler(r.Context(), caller, req)
	if err != nil {
		writeStakeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleStakeWithdraw(w http.ResponseWriter, r *http.Request) {
	caller, ok := requireStakeCaller(w, r)
	if !ok {
		return
	}

	var req stakehttp.WithdrawRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeStakeError(w, http.StatusBadRequest, "invalid_json", "request body must be valid JSON")
		return
	}

	resp, err := s.stakes.Handler.WithdrawHandler(r.Context(), caller, req)
	if err != nil {
		writeStakeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleStakeAccount(w http.ResponseWriter, r *http.Request) {
	account := strings.TrimSpace(r.PathValue("account"))
	if account == "" {
		writeStakeError(w, http.StatusBadRequest, "invalid_account", "account is required")
		return
	}

	resp, err := s.stakes.Handler.AccountHandler(r.Context(), account)
	if err != nil {
		writeStakeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleStakeSummary(w http.ResponseWriter, r *http.Request) {
	resp, err := s.stakes.Handler.SummaryHandler(r.Context())
	if err != nil {
		writeStakeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleStakeEvents(w http.ResponseWriter, r *http.Request) {
	limit, ok := resolveEventLimit(w, r, writeStakeError)
	if !ok {
		return
	}

	resp, err := s.stakes.Handler.EventTrailHandler(r.Context(), limit)
	if err != nil {
		writeStakeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func resolveEventLimit(
	w http.ResponseWriter,
	r *http.Request,
	writeError func(http.ResponseWriter, int, string, string),
) (int, bool) {
	raw := r.URL.Query().Get("limit")
	if raw == "" {
		return 0, true
	}
	limit, err := strconv.Atoi(raw)
	if err != nil || limit < 0 {
		writeError(w, http.StatusBadRequest, "invalid_limit", "limit must be a non-negative integer")
		return 0, false
	}
	return limit, true
}
