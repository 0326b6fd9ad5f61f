package commands

import (
	"context"
	"log/slog"
	"strings"
	"time"

	application "agora/contexts/governance/stake-ledger/application"
	domainerrors "agora/contexts/governance/stake-ledger/domain/errors"
	"agora/contexts/governance/stake-ledger/ports"
)

// DepositCommand moves asset units from the caller into the ledger treasury.
type DepositCommand struct {
	Caller string
	Amount uint64
}

// WithdrawCommand returns previously deposited units to the caller.
type WithdrawCommand struct {
	Caller string
	Amount uint64
}

// StakeUseCase orchestrates deposits and withdrawals around the external
// asset gateway. Ordering of state mutation versus the external call follows
// checks-effects-interactions: deposits touch no ledger state before the
// transfer-in succeeds, and withdrawals debit the ledger before the
// transfer-out so a reentrant call from inside the gateway can never observe
// an uncommitted balance or double-spend one.
type StakeUseCase struct {
	Stakes          ports.StakeRepository
	Assets          ports.AssetGateway
	Outbox          ports.OutboxWriter
	Clock           ports.Clock
	IDGen           ports.IDGenerator
	TreasuryAccount string
	Logger          *slog.Logger
}

func (uc StakeUseCase) Deposit(ctx context.Context, cmd DepositCommand) error {
	logger := application.ResolveLogger(uc.Logger)
	caller := strings.TrimSpace(cmd.Caller)
	if caller == "" || cmd.Amount == 0 {
		logger.Warn("deposit validation failed",
			"event", "stake_deposit_validation_failed",
			"module", "governance/stake-ledger",
			"layer", "application",
			"account", caller,
			"amount", cmd.Amount,
		)
		return domainerrors.ErrInvalidAmount
	}

	if err := uc.Assets.TransferFrom(ctx, caller, uc.TreasuryAccount, cmd.Amount); err != nil {
		logger.Warn("deposit transfer-in failed",
			"event", "stake_deposit_transfer_failed",
			"module", "governance/stake-ledger",
			"layer", "application",
			"account", caller,
			"amount", cmd.Amount,
			"error", err.Error(),
		)
		return domainerrors.ErrTransferFailed
	}

	if err := uc.Stakes.Credit(ctx, caller, cmd.Amount); err != nil {
		return err
	}

	now := uc.now()
	if err := uc.appendStakeEvent(ctx, "stake.deposited", caller, cmd.Amount, now); err != nil {
		return err
	}
	logger.Info("stake deposited",
		"event", "stake_deposited",
		"module", "governance/stake-ledger",
		"layer", "application",
		"account", caller,
		"amount", cmd.Amount,
	)
	return nil
}

func (uc StakeUseCase) Withdraw(ctx context.Context, cmd WithdrawCommand) error {
	logger := application.ResolveLogger(uc.Logger)
	caller := strings.TrimSpace(cmd.Caller)
	if caller == "" || cmd.Amount == 0 {
		logger.Warn("withdraw validation failed",
			"event", "stake_withdraw_validation_failed",
			"module", "governance/stake-ledger",
			"layer", "application",
			"account", caller,
			"amount", cmd.Amount,
		)
		return domainerrors.ErrInvalidAmount
	}

	// Debit precedes the external transfer-out. Debit enforces the balance
	// check atomically with the mutation.
	if err := uc.Stakes.Debit(ctx, caller, cmd.Amount); err != nil {
		logger.Warn("withdraw debit failed",
			"event", "stake_withdraw_debit_failed",
			"module", "governance/stake-ledger",
			"layer", "application",
			"account", caller,
			"amount", cmd.Amount,
			"error", err.Error(),
		)
		return err
	}

	if err := uc.Assets.Transfer(ctx, caller, cmd.Amount); err != nil {
		// Restore the debit so the failed operation leaves no partial state.
		if restoreErr := uc.Stakes.Credit(ctx, caller, cmd.Amount); restoreErr != nil {
			logger.Error("withdraw rollback failed",
				"event", "stake_withdraw_rollback_failed",
				"module", "governance/stake-ledger",
				"layer", "application",
				"account", caller,
				"amount", cmd.Amount,
				"error", restoreErr.Error(),
			)
			return restoreErr
		}
		logger.Warn("withdraw transfer-out failed",
			"event", "stake_withdraw_transfer_failed",
			"module", "governance/stake-ledger",
			"layer", "application",
			"account", caller,
			"amount", cmd.Amount,
			"error", err.Error(),
		)
		return domainerrors.ErrTransferFailed
	}

	now := uc.now()
	if err := uc.appendStakeEvent(ctx, "stake.withdrawn", caller, cmd.Amount, now); err != nil {
		return err
	}
	logger.Info("stake withdrawn",
		"event", "stake_withdrawn",
		"module", "governance/stake-ledger",
		"layer", "application",
		"account", caller,
		"amount", cmd.Amount,
	)
	return nil
}

func (uc StakeUseCase) now() time.Time {
	now := time.Now().UTC()
	if uc.Clock != nil {
		now = uc.Clock.Now().UTC()
	}
	return now
}

func (uc StakeUseCase) appendStakeEvent(
	ctx context.Context,
	eventType string,
	account string,
	amount uint64,
	occurredAt time.Time,
) error {
	// Outbox is optional for pure read/test wiring, so nil is treated as no-op.
	if uc.Outbox == nil {
		return nil
	}
	eventID, err := uc.IDGen.NewID(ctx)
	if err != nil {
		return err
	}
	envelope, err := newStakeEnvelope(eventID, eventType, account, occurredAt, map[string]any{
		"account":     account,
		"amount":      amount,
		"occurred_at": occurredAt.Format(time.RFC3339),
	})
	if err != nil {
		return err
	}
	return uc.Outbox.AppendOutbox(ctx, envelope)
}
