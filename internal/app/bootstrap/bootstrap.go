package bootstrap

import (
	"context"
	"errors"
	"log/slog"
	"strings"
	"time"

	proposalengine "agora/contexts/governance/proposal-engine"
	proposalpostgres "agora/contexts/governance/proposal-engine/adapters/postgres"
	proposalworkers "agora/contexts/governance/proposal-engine/application/workers"
	stakeledger "agora/contexts/governance/stake-ledger"
	stakememory "agora/contexts/governance/stake-ledger/adapters/memory"
	stakepostgres "agora/contexts/governance/stake-ledger/adapters/postgres"
	stakeworkers "agora/contexts/governance/stake-ledger/application/workers"
	"agora/internal/platform/config"
	"agora/internal/platform/db"
	"agora/internal/platform/httpserver"
	"agora/internal/platform/messaging"
)

// Package bootstrap is the composition root.
// Keep construction/wiring here so module code stays framework-agnostic.

type APIApp struct {
	server   *httpserver.Server
	postgres *db.Postgres
	logger   *slog.Logger
}

type WorkerApp struct {
	postgres      *db.Postgres
	stakeRelay    stakeworkers.OutboxRelay
	proposalRelay proposalworkers.OutboxRelay
	pollInterval  time.Duration
	logger        *slog.Logger
}

func BuildAPI() (*APIApp, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, err
	}

	logger := slog.Default().With("service", cfg.ServiceName, "process", "api")
	if strings.TrimSpace(cfg.PostgresDSN) == "" {
		return nil, errors.New("POSTGRES_DSN is required")
	}

	pg, err := db.Connect(cfg.PostgresDSN)
	if err != nil {
		return nil, err
	}

	stakeRepo := stakepostgres.NewRepository(pg.DB, logger)
	// Token custody stays in process until the treasury bridge ships.
	tokens := stakememory.NewTokenGateway(cfg.TreasuryAccount)
	stakeModule := stakeledger.NewModule(stakeledger.Dependencies{
		Stakes:          stakeRepo,
		Assets:          tokens,
		Outbox:          stakeRepo,
		Trail:           stakeRepo,
		Clock:           stakepostgres.SystemClock{},
		IDGen:           stakepostgres.UUIDGenerator{},
		TreasuryAccount: cfg.TreasuryAccount,
		Logger:          logger,
	})

	proposalRepo := proposalpostgres.NewRepository(pg.DB, logger)
	proposalModule := proposalengine.NewModule(proposalengine.Dependencies{
		Proposals:         proposalRepo,
		Stakes:            stakeRepo,
		Outbox:            proposalRepo,
		Trail:             proposalRepo,
		Clock:             proposalpostgres.SystemClock{},
		IDGen:             proposalpostgres.UUIDGenerator{},
		VotingPeriod:      cfg.VotingPeriod,
		MinStakeToPropose: cfg.MinStakeToPropose,
		QuorumPercent:     cfg.QuorumPercent,
		Logger:            logger,
	})

	server := httpserver.New(stakeModule, proposalModule, logger, normalizeAddr(cfg.HTTPPort))
	return &APIApp{
		server:   server,
		postgres: pg,
		logger:   logger,
	}, nil
}

func BuildWorker() (*WorkerApp, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, err
	}

	logger := slog.Default().With("service", cfg.ServiceName, "process", "worker")
	if strings.TrimSpace(cfg.PostgresDSN) == "" {
		return nil, errors.New("POSTGRES_DSN is required")
	}

	pg, err := db.Connect(cfg.PostgresDSN)
	if err != nil {
		return nil, err
	}

	kafka, err := messaging.NewKafka(cfg.KafkaBrokers, logger)
	if err != nil {
		return nil, err
	}

	stakeRepo := stakepostgres.NewRepository(pg.DB, logger)
	proposalRepo := proposalpostgres.NewRepository(pg.DB, logger)
	return &WorkerApp{
		postgres: pg,
		stakeRelay: stakeworkers.OutboxRelay{
			Outbox:    stakeRepo,
			Publisher: kafka,
			Clock:     stakepostgres.SystemClock{},
			BatchSize: 100,
			Logger:    logger,
		},
		proposalRelay: proposalworkers.OutboxRelay{
			Outbox:    proposalRepo,
			Publisher: kafka,
			Clock:     proposalpostgres.SystemClock{},
			BatchSize: 100,
			Logger:    logger,
		},
		pollInterval: 2 * time.Second,
		logger:       logger,
	}, nil
}

func (a *APIApp) Run(_ context.Context) error {
	if a.logger != nil {
		a.logger.Info("api app started",
			"event", "bootstrap_api_started",
			"module", "internal/app/bootstrap",
			"layer", "platform",
		)
	}
	return a.server.Start()
}

func (a *APIApp) Close() error {
	if a.postgres != nil {
		return a.postgres.Close()
	}
	return nil
}

func (w *WorkerApp) Run(ctx context.Context) error {
	ticker := time.NewTicker(w.pollInterval)
	defer ticker.Stop()

	w.logger.Info("worker app started",
		"event", "bootstrap_worker_started",
		"module", "internal/app/bootstrap",
		"layer", "platform",
		"poll_interval", w.pollInterval.String(),
	)

	for {
		if err := w.stakeRelay.RunOnce(ctx); err != nil {
			return err
		}
		if err := w.proposalRelay.RunOnce(ctx); err != nil {
			return err
		}
		select {
		case <-ctx.Done():
			return nil
		case <-ticker.C:
		}
	}
}

func (w *WorkerApp) Close() error {
	if w.postgres != nil {
		return w.postgres.Close()
	}
	return nil
}

func normalizeAddr(port string) string {
	value := strings.TrimSpace(port)
	if value == "" {
		return ":8080"
	}
	if strings.HasPrefix(value, ":") {
		return value
	}
	return ":" + value
}
