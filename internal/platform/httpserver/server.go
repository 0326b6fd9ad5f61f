package httpserver

import (
	"encoding/json"
	"log/slog"
	"net/http"

	proposalengine "agora/contexts/governance/proposal-engine"
	stakeledger "agora/contexts/governance/stake-ledger"

	httpSwagger "github.com/swaggo/http-swagger"
	_ "agora/internal/platform/httpserver/docs"
)

type Server struct {
	mux       *http.ServeMux
	logger    *slog.Logger
	addr      string
	stakes    stakeledger.Module
	proposals proposalengine.Module
}

func New(
	stakes stakeledger.Module,
	proposals proposalengine.Module,
	logger *slog.Logger,
	addr string,
) *Server {
	if logger == nil {
		logger = slog.Default()
	}
	if addr == "" {
		addr = ":8080"
	}

	s := &Server{
		mux:       http.NewServeMux(),
		logger:    logger,
		addr:      addr,
		stakes:    stakes,
		proposals: proposals,
	}
	s.registerRoutes()
	return s
}

func (s *Server) Start() error {
	s.logger.Info("http server starting",
		"event", "http_server_starting",
		"module", "internal/platform/httpserver",
		"layer", "platform",
		"addr", s.addr,
	)
	return http.ListenAndServe(s.addr, s.mux)
}

func (s *Server) registerRoutes() {
	s.mux.Handle("/swagger/", httpSwagger.Handler(
		httpSwagger.URL("/swagger/doc.json"),
	))

	s.mux.HandleFunc("POST /api/governance/v1/stake/deposits", s.handleStakeDeposit)
	s.mux.HandleFunc("POST /api/governance/v1/stake/withdrawals", s.handleStakeWithdraw)
	s.mux.HandleFunc("GET /api/governance/v1/stake/accounts/{account}", s.handleStakeAccount)
	s.mux.HandleFunc("GET /api/governance/v1/stake/summary", s.handleStakeSummary)
	s.mux.HandleFunc("GET /api/governance/v1/stake/events", s.handleStakeEvents)

	s.mux.HandleFunc("POST /api/governance/v1/proposals", s.handleCreateProposal)
	s.mux.HandleFunc("GET /api/governance/v1/proposals", s.handleListProposals)
	s.mux.HandleFunc("GET /api/governance/v1/proposals/{proposal_id}", s.handleGetProposal)
	s.mux.HandleFunc("GET /api/governance/v1/proposals/{proposal_id}/results", s.handleProposalResults)
	s.mux.HandleFunc("POST /api/governance/v1/proposals/{proposal_id}/votes", s.handleCastVote)
	s.mux.HandleFunc("GET /api/governance/v1/proposals/{proposal_id}/votes/{voter}", s.handleVoteRecord)
	s.mux.HandleFunc("POST /api/governance/v1/proposals/{proposal_id}/execute", s.handleExecuteProposal)
	s.mux.HandleFunc("POST /api/governance/v1/proposals/{proposal_id}/cancel", s.handleCancelProposal)
	s.mux.HandleFunc("GET /api/governance/v1/events", s.handleGovernanceEvents)
}

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(payload)
}
