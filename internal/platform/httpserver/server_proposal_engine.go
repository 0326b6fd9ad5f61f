package httpserver

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"strings"

	proposalerrors "agora/contexts/governance/proposal-engine/domain/errors"
	proposalhttp "agora/contexts/governance/proposal-engine/transport/http"
)

func writeProposalError(w http.ResponseWriter, status int, code string, message string) {
	writeJSON(w, status, proposalhttp.ErrorResponse{Code: code, Message: message})
}

func writeProposalDomainError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, proposalerrors.ErrInvalidProposalInput),
		errors.Is(err, proposalerrors.ErrInvalidVoteOption):
		writeProposalError(w, http.StatusBadRequest, "invalid_request", err.Error())
	case errors.Is(err, proposalerrors.ErrUnknownProposal):
		writeProposalError(w, http.StatusNotFound, "proposal_not_found", err.Error())
	case errors.Is(err, proposalerrors.ErrInsufficientStake):
		writeProposalError(w, http.StatusForbidden, "insufficient_stake", err.Error())
	case errors.Is(err, proposalerrors.ErrNoVotingPower):
		writeProposalError(w, http.StatusForbidden, "no_voting_power", err.Error())
	case errors.Is(err, proposalerrors.ErrNotProposer):
		writeProposalError(w, http.StatusForbidden, "not_proposer", err.Error())
	case errors.Is(err, proposalerrors.ErrVotingNotStarted),
		errors.Is(err, proposalerrors.ErrVotingClosed),
		errors.Is(err, proposalerrors.ErrVotingStillOpen),
		errors.Is(err, proposalerrors.ErrCancelWindowClosed):
		writeProposalError(w, http.StatusConflict, "voting_window", err.Error())
	case errors.Is(err, proposalerrors.ErrAlreadyVoted):
		writeProposalError(w, http.StatusConflict, "already_voted", err.Error())
	case errors.Is(err, proposalerrors.ErrProposalFinalized):
		writeProposalError(w, http.StatusConflict, "proposal_finalized", err.Error())
	case errors.Is(err, proposalerrors.ErrQuorumNotReached):
		writeProposalError(w, http.StatusConflict, "quorum_not_reached", err.Error())
	case errors.Is(err, proposalerrors.ErrProposalRejected):
		writeProposalError(w, http.StatusConflict, "proposal_rejected", err.Error())
	default:
		writeProposalError(w, http.StatusInternalServerError, "internal_error", "internal server error")
	}
}

func requireProposalCaller(w http.ResponseWriter, r *http.Request) (string, bool) {
	caller := strings.TrimSpace(r.Header.Get("X-User-Id"))
	if caller == "" {
		writeProposalError(w, http.StatusUnauthorized, "missing_user", "X-User-Id header is required")
		return "", false
	}
	return caller, true
}

func resolveProposalID(w http.ResponseWriter, r *http.Request) (uint64, bool) {
	raw := r.PathValue("proposal_id")
	id, err := strconv.ParseUint(raw, 10, 64)
	if err != nil || id == 0 {
		writeProposalError(w, http.StatusBadRequest, "invalid_proposal_id", "proposal_id must be a positive integer")
		return 0, false
	}
	return id, true
}

func (s *Server) handleCreateProposal(w http.ResponseWriter, r *http.Request) {
	caller, ok := requireProposalCaller(w, r)
	if !ok {
		return
	}

	var req proposalhttp.CreateProposalRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeProposalError(w, http.StatusBadRequest, "invalid_json", "request body must be valid JSON")
		return
	}

	resp, err := s.proposals.Handler.CreateProposalHandler(r.Context(), caller, req)
	if err != nil {
		writeProposalDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, resp)
}

func (s *Server) handleListProposals(w http.ResponseWriter, r *http.Request) {
	resp, err := s.proposals.Handler.ListProposalsHandler(r.Context())
	if err != nil {
		writeProposalDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleGetProposal(w http.ResponseWriter, r *http.Request) {
	proposalID, ok := resolveProposalID(w, r)
	if !ok {
		return
	}

	resp, err := s.proposals.Handler.GetProposalHandler(r.Context(), proposalID)
	if err != nil {
		writeProposalDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleProposalResults(w http.ResponseWriter, r *http.Request) {
	proposalID, ok := resolveProposalID(w, r)
	if !ok {
		return
	}

	resp, err := s.proposals.Handler.ProposalResultsHandler(r.Context(), proposalID)
	if err != nil {
		writeProposalDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleCastVote(w http.ResponseWriter, r *http.Request) {
	caller, ok := requireProposalCaller(w, r)
	if !ok {
		return
	}
	proposalID, ok := resolveProposalID(w, r)
	if !ok {
		return
	}

	var req proposalhttp.CastVoteRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeProposalError(w, http.StatusBadRequest, "invalid_json", "request body must be valid JSON")
		return
	}

	resp, err := s.proposals.Handler.CastVoteHandler(r.Context(), caller, proposalID, req)
	if err != nil {
		writeProposalDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleVoteRecord(w http.ResponseWriter, r *http.Request) {
	proposalID, ok := resolveProposalID(w, r)
	if !ok {
		return
	}
	voter := strings.TrimSpace(r.PathValue("voter"))
	if voter == "" {
		writeProposalError(w, http.StatusBadRequest, "invalid_voter", "voter is required")
		return
	}

	resp, err := s.proposals.Handler.VoteRecordHandler(r.Context(), proposalID, voter)
	if err != nil {
		writeProposalDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleExecuteProposal(w http.ResponseWriter, r *http.Request) {
	if _, ok := requireProposalCaller(w, r); !ok {
		return
	}
	proposalID, ok := resolveProposalID(w, r)
	if !ok {
		return
	}

	resp, err := s.proposals.Handler.ExecuteProposalHandler(r.Context(), proposalID)
	if err != nil {
		writeProposalDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleCancelProposal(w http.ResponseWriter, r *http.Request) {
	caller, ok := requireProposalCaller(w, r)
	if !ok {
		return
	}
	proposalID, ok := resolveProposalID(w, r)
	if !ok {
		return
	}

	if err := s.proposals.Handler.CancelProposalHandler(r.Context(), caller, proposalID); err != nil {
		writeProposalDomainError(w, err)
		return
	}

	resp, err := s.proposals.Handler.GetProposalHandler(r.Context(), proposalID)
	if err != nil {
		writeProposalDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleGovernanceEvents(w http.ResponseWriter, r *http.Request) {
	limit, ok := resolveEventLimit(w, r, writeProposalError)
	if !ok {
		return
	}

	resp, err := s.proposals.Handler.EventTrailHandler(r.Context(), limit)
	if err != nil {
		writeProposalDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}
