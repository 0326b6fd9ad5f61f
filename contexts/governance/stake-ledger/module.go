package stakeledger

import (
	"log/slog"

	httpadapter "agora/contexts/governance/stake-ledger/adapters/http"
	"agora/contexts/governance/stake-ledger/adapters/memory"
	"agora/contexts/governance/stake-ledger/application/commands"
	"agora/contexts/governance/stake-ledger/application/queries"
	"agora/contexts/governance/stake-ledger/domain/entities"
	"agora/contexts/governance/stake-ledger/ports"
)

type Module struct {
	Handler httpadapter.Handler
	Store   *memory.Store
	Tokens  *memory.TokenGateway
}

type Dependencies struct {
	Stakes          ports.StakeRepository
	Assets          ports.AssetGateway
	Outbox          ports.OutboxWriter
	Trail           ports.AuditLog
	Clock           ports.Clock
	IDGen           ports.IDGenerator
	TreasuryAccount string
	Logger          *slog.Logger
}

func NewModule(deps Dependencies) Module {
	stakeUseCase := commands.StakeUseCase{
		Stakes:          deps.Stakes,
		Assets:          deps.Assets,
		Outbox:          deps.Outbox,
		Clock:           deps.Clock,
		IDGen:           deps.IDGen,
		TreasuryAccount: deps.TreasuryAccount,
		Logger:          deps.Logger,
	}
	balanceUseCase := queries.BalanceUseCase{
		Stakes: deps.Stakes,
	}
	auditUseCase := queries.AuditUseCase{
		Trail: deps.Trail,
	}
	return Module{
		Handler: httpadapter.Handler{
			Stakes:   stakeUseCase,
			Balances: balanceUseCase,
			Audit:    auditUseCase,
			Logger:   deps.Logger,
		},
	}
}

func NewInMemoryModule(seed []entities.StakeAccount, treasury string, logger *slog.Logger) Module {
	store := memory.NewStore(seed)
	tokens := memory.NewTokenGateway(treasury)
	module := NewModule(Dependencies{
		Stakes:          store,
		Assets:          tokens,
		Outbox:          store,
		Trail:           store,
		Clock:           store,
		IDGen:           store,
		TreasuryAccount: treasury,
		Logger:          logger,
	})
	module.Store = store
	module.Tokens = tokens
	return module
}
