package postgresadapter

import (
	"context"
	"errors"
	"log/slog"
	"strings"
	"time"

	"agora/contexts/governance/stake-ledger/domain/entities"
	domainerrors "agora/contexts/governance/stake-ledger/domain/errors"
	"agora/contexts/governance/stake-ledger/ports"
	"agora/internal/shared/outbox"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

const (
	// Single aggregate row; totals never shard.
	ledgerTotalRowID = 1
)

type Repository struct {
	db     *gorm.DB
	logger *slog.Logger
}

func NewRepository(db *gorm.DB, logger *slog.Logger) *Repository {
	if logger == nil {
		logger = slog.Default()
	}
	return &Repository{
		db:     db,
		logger: logger,
	}
}

// Credit upserts the account row and bumps the aggregate total inside one
// transaction, preserving total == sum(balances) at every commit point.
func (r *Repository) Credit(ctx context.Context, owner string, amount uint64) error {
	owner = strings.TrimSpace(owner)
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		account := stakeAccountModel{
			Owner:     owner,
			Balance:   amount,
			UpdatedAt: time.Now().UTC(),
		}
		if err := tx.Clauses(clause.OnConflict{
			Columns: []clause.Column{{Name: "owner"}},
			DoUpdates: clause.Assignments(map[string]any{
				"balance":    gorm.Expr("stake_accounts.balance + ?", amount),
				"updated_at": account.UpdatedAt,
			}),
		}).Create(&account).Error; err != nil {
			return err
		}
		return bumpTotal(tx, int64(amount))
	})
	if err != nil {
		return r.logError("stake_repo_credit_failed", err, "account", owner, "amount", amount)
	}
	return nil
}

// Debit decrements balance and total in one transaction. The conditional
// update enforces the balance check atomically with the mutation.
func (r *Repository) Debit(ctx context.Context, owner string, amount uint64) error {
	owner = strings.TrimSpace(owner)
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		update := tx.Model(&stakeAccountModel{}).
			Where("owner = ?", owner).
			Where("balance >= ?", amount).
			Updates(map[string]any{
				"balance":    gorm.Expr("balance - ?", amount),
				"updated_at": time.Now().UTC(),
			})
		if update.Error != nil {
			return update.Error
		}
		if update.RowsAffected == 0 {
			return domainerrors.ErrInsufficientStake
		}
		return bumpTotal(tx, -int64(amount))
	})
	if errors.Is(err, domainerrors.ErrInsufficientStake) {
		return err
	}
	if err != nil {
		return r.logError("stake_repo_debit_failed", err, "account", owner, "amount", amount)
	}
	return nil
}

func (r *Repository) GetAccount(ctx context.Context, owner string) (entities.StakeAccount, error) {
	owner = strings.TrimSpace(owner)
	var row stakeAccountModel
	err := r.db.WithContext(ctx).
		Where("owner = ?", owner).
		First(&row).
		Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			// Accounts exist implicitly at zero balance.
			return entities.StakeAccount{Owner: owner}, nil
		}
		return entities.StakeAccount{}, r.logError("stake_repo_get_account_failed", err, "account", owner)
	}
	return row.toEntity(), nil
}

func (r *Repository) TotalStaked(ctx context.Context) (uint64, error) {
	var row ledgerTotalModel
	err := r.db.WithContext(ctx).
		Where("id = ?", ledgerTotalRowID).
		First(&row).
		Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return 0, nil
		}
		return 0, r.logError("stake_repo_total_staked_failed", err)
	}
	return row.TotalStaked, nil
}

// BalanceOf satisfies the stake projection consumed by the proposal engine.
func (r *Repository) BalanceOf(ctx context.Context, owner string) (uint64, error) {
	account, err := r.GetAccount(ctx, owner)
	if err != nil {
		return 0, err
	}
	return account.Balance, nil
}

func (r *Repository) ListAccounts(ctx context.Context) ([]entities.StakeAccount, error) {
	var rows []stakeAccountModel
	if err := r.db.WithContext(ctx).
		Order("owner ASC").
		Find(&rows).Error; err != nil {
		return nil, r.logError("stake_repo_list_accounts_failed", err)
	}
	items := make([]entities.StakeAccount, 0, len(rows))
	for _, row := range rows {
		items = append(items, row.toEntity())
	}
	return items, nil
}

func (r *Repository) AppendOutbox(ctx context.Context, event ports.EventEnvelope) error {
	row, err := outboxModelFromEnvelope(event)
	if err != nil {
		return err
	}
	if err := r.db.WithContext(ctx).Create(&row).Error; err != nil {
		return r.logError("stake_repo_append_outbox_failed", err,
			"event_id", event.EventID,
			"event_type", event.EventType,
		)
	}
	return nil
}

func (r *Repository) ListPendingOutbox(ctx context.Context, limit int) ([]ports.OutboxMessage, error) {
	if limit <= 0 {
		limit = 100
	}
	var rows []outboxModel
	if err := r.db.WithContext(ctx).
		Where("status = ?", outbox.StatusPending).
		Order("created_at ASC").
		Limit(limit).
		Find(&rows).Error; err != nil {
		return nil, r.logError("stake_repo_list_pending_outbox_failed", err)
	}
	items := make([]ports.OutboxMessage, 0, len(rows))
	for _, row := range rows {
		items = append(items, row.toMessage())
	}
	return items, nil
}

func (r *Repository) ListOutbox(ctx context.Context, limit int) ([]ports.OutboxMessage, error) {
	if limit <= 0 {
		limit = 100
	}
	var rows []outboxModel
	if err := r.db.WithContext(ctx).
		Order("created_at ASC").
		Limit(limit).
		Find(&rows).Error; err != nil {
		return nil, r.logError("stake_repo_list_outbox_failed", err)
	}
	items := make([]ports.OutboxMessage, 0, len(rows))
	for _, row := range rows {
		items = append(items, row.toMessage())
	}
	return items, nil
}

func (r *Repository) MarkOutboxPublished(ctx context.Context, outboxID string, publishedAt time.Time) error {
	if err := r.db.WithContext(ctx).
		Model(&outboxModel{}).
		Where("id = ?", strings.TrimSpace(outboxID)).
		Updates(map[string]any{
			"status":       outbox.StatusPublished,
			"published_at": publishedAt.UTC(),
		}).Error; err != nil {
		return r.logError("stake_repo_mark_outbox_published_failed", err, "outbox_id", outboxID)
	}
	return nil
}

func bumpTotal(tx *gorm.DB, delta int64) error {
	total := ledgerTotalModel{
		ID:          ledgerTotalRowID,
		TotalStaked: uint64(max64(delta, 0)),
		UpdatedAt:   time.Now().UTC(),
	}
	return tx.Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "id"}},
		DoUpdates: clause.Assignments(map[string]any{
			"total_staked": gorm.Expr("stake_totals.total_staked + ?", delta),
			"updated_at":   total.UpdatedAt,
		}),
	}).Create(&total).Error
}

func max64(value int64, floor int64) int64 {
	if value < floor {
		return floor
	}
	return value
}

func (r *Repository) logError(event string, err error, args ...any) error {
	fields := append([]any{
		"event", event,
		"module", "governance/stake-ledger",
		"layer", "adapter",
		"error", err.Error(),
	}, args...)
	r.logger.Error("stake repository operation failed", fields...)
	return err
}
