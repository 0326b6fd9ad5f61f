package proposalengine

import (
	"log/slog"
	"sync"
	"time"

	httpadapter "agora/contexts/governance/proposal-engine/adapters/http"
	"agora/contexts/governance/proposal-engine/adapters/memory"
	"agora/contexts/governance/proposal-engine/application/commands"
	"agora/contexts/governance/proposal-engine/application/queries"
	"agora/contexts/governance/proposal-engine/ports"
)

// Governance parameters are fixed at initialization; no mutation path exists.
const (
	DefaultVotingPeriod      = 72 * time.Hour
	DefaultMinStakeToPropose = 1000
	DefaultQuorumPercent     = 10
)

type Module struct {
	Handler httpadapter.Handler
	Store   *memory.Store
}

type Dependencies struct {
	Proposals         ports.ProposalRepository
	Stakes            ports.StakeReader
	Outbox            ports.OutboxWriter
	Trail             ports.AuditLog
	Clock             ports.Clock
	IDGen             ports.IDGenerator
	VotingPeriod      time.Duration
	MinStakeToPropose uint64
	QuorumPercent     uint64
	Logger            *slog.Logger
}

func NewModule(deps Dependencies) Module {
	// One lock across every mutating use case: a single globally serialized
	// sequence of governance mutations, with reads between operations.
	writeLock := &sync.Mutex{}

	proposalUseCase := commands.ProposalUseCase{
		Proposals:         deps.Proposals,
		Stakes:            deps.Stakes,
		Outbox:            deps.Outbox,
		Clock:             deps.Clock,
		IDGen:             deps.IDGen,
		VotingPeriod:      deps.VotingPeriod,
		MinStakeToPropose: deps.MinStakeToPropose,
		WriteLock:         writeLock,
		Logger:            deps.Logger,
	}
	voteUseCase := commands.VoteUseCase{
		Proposals: deps.Proposals,
		Stakes:    deps.Stakes,
		Outbox:    deps.Outbox,
		Clock:     deps.Clock,
		IDGen:     deps.IDGen,
		WriteLock: writeLock,
		Logger:    deps.Logger,
	}
	executionUseCase := commands.ExecutionUseCase{
		Proposals:     deps.Proposals,
		Stakes:        deps.Stakes,
		Outbox:        deps.Outbox,
		Clock:         deps.Clock,
		IDGen:         deps.IDGen,
		QuorumPercent: deps.QuorumPercent,
		WriteLock:     writeLock,
		Logger:        deps.Logger,
	}
	resultsUseCase := queries.ResultsUseCase{
		Proposals:     deps.Proposals,
		Stakes:        deps.Stakes,
		Clock:         deps.Clock,
		QuorumPercent: deps.QuorumPercent,
	}
	auditUseCase := queries.AuditUseCase{
		Trail: deps.Trail,
	}
	return Module{
		Handler: httpadapter.Handler{
			Proposals: proposalUseCase,
			Votes:     voteUseCase,
			Execution: executionUseCase,
			Results:   resultsUseCase,
			Audit:     auditUseCase,
			Logger:    deps.Logger,
		},
	}
}

func NewInMemoryModule(stakes ports.StakeReader, logger *slog.Logger) Module {
	store := memory.NewStore(nil)
	module := NewModule(Dependencies{
		Proposals:         store,
		Stakes:            stakes,
		Outbox:            store,
		Trail:             store,
		Clock:             store,
		IDGen:             store,
		VotingPeriod:      DefaultVotingPeriod,
		MinStakeToPropose: DefaultMinStakeToPropose,
		QuorumPercent:     DefaultQuorumPercent,
		Logger:            logger,
	})
	module.Store = store
	return module
}
