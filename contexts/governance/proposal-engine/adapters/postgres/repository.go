package postgresadapter

import (
	"context"
	"errors"
	"log/slog"
	"strings"
	"time"

	"agora/contexts/governance/proposal-engine/domain/entities"
	domainerrors "agora/contexts/governance/proposal-engine/domain/errors"
	"agora/contexts/governance/proposal-engine/ports"
	"agora/internal/shared/outbox"

	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

const (
	proposalSequenceRowID = 1
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

// NextProposalID allocates the next id from a single counter row under a row
// lock. Ids are dense from 1 and never reused, even across process restarts.
func (r *Repository) NextProposalID(ctx context.Context) (uint64, error) {
	var allocated uint64
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var row proposalSequenceModel
		err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			Where("id = ?", proposalSequenceRowID).
			First(&row).
			Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			row = proposalSequenceModel{ID: proposalSequenceRowID}
			if err := tx.Create(&row).Error; err != nil {
				return err
			}
		} else if err != nil {
			return err
		}
		row.LastID++
		allocated = row.LastID
		return tx.Model(&proposalSequenceModel{}).
			Where("id = ?", proposalSequenceRowID).
			Update("last_id", row.LastID).
			Error
	})
	if err != nil {
		return 0, r.logError("governance_repo_next_proposal_id_failed", err)
	}
	return allocated, nil
}

func (r *Repository) SaveProposal(ctx context.Context, proposal entities.Proposal) error {
	row := proposalModelFromEntity(proposal)
	create := r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "id"}},
		DoUpdates: clause.Assignments(map[string]any{
			"for_votes":     row.ForVotes,
			"against_votes": row.AgainstVotes,
			"abstain_votes": row.AbstainVotes,
			"executed":      row.Executed,
			"cancelled":     row.Cancelled,
			"updated_at":    row.UpdatedAt,
		}),
	}).Create(&row)
	if create.Error != nil {
		return r.logError("governance_repo_save_proposal_failed", create.Error,
			"proposal_id", proposal.ID,
		)
	}
	return nil
}

func (r *Repository) GetProposal(ctx context.Context, proposalID uint64) (entities.Proposal, error) {
	var row proposalModel
	err := r.db.WithContext(ctx).
		Where("id = ?", proposalID).
		First(&row).
		Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return entities.Proposal{}, domainerrors.ErrUnknownProposal
		}
		return entities.Proposal{}, r.logError("governance_repo_get_proposal_failed", err,
			"proposal_id", proposalID,
		)
	}
	return row.toEntity(), nil
}

func (r *Repository) ProposalCount(ctx context.Context) (uint64, error) {
	var count int64
	if err := r.db.WithContext(ctx).
		Model(&proposalModel{}).
		Count(&count).Error; err != nil {
		return 0, r.logError("governance_repo_proposal_count_failed", err)
	}
	return uint64(count), nil
}

func (r *Repository) ListProposals(ctx context.Context) ([]entities.Proposal, error) {
	var rows []proposalModel
	if err := r.db.WithContext(ctx).
		Order("id ASC").
		Find(&rows).Error; err != nil {
		return nil, r.logError("governance_repo_list_proposals_failed", err)
	}
	items := make([]entities.Proposal, 0, len(rows))
	for _, row := range rows {
		items = append(items, row.toEntity())
	}
	return items, nil
}

// SaveVoteRecord inserts exactly once per (proposal, voter); the composite
// primary key turns a double vote into a unique violation.
func (r *Repository) SaveVoteRecord(ctx context.Context, proposalID uint64, record entities.VoteRecord) error {
	row := voteRecordModelFromEntity(proposalID, record)
	create := r.db.WithContext(ctx).Clauses(clause.OnConflict{
		DoNothing: true,
	}).Create(&row)
	if create.Error != nil {
		if isUniqueViolation(create.Error) {
			return domainerrors.ErrAlreadyVoted
		}
		return r.logError("governance_repo_save_vote_record_failed", create.Error,
			"proposal_id", proposalID,
			"voter", strings.TrimSpace(record.Voter),
		)
	}
	if create.RowsAffected == 0 {
		return domainerrors.ErrAlreadyVoted
	}
	return nil
}

func (r *Repository) GetVoteRecord(ctx context.Context, proposalID uint64, voter string) (entities.VoteRecord, bool, error) {
	var row voteRecordModel
	err := r.db.WithContext(ctx).
		Where("proposal_id = ?", proposalID).
		Where("voter = ?", strings.TrimSpace(voter)).
		First(&row).
		Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return entities.VoteRecord{}, false, nil
		}
		return entities.VoteRecord{}, false, r.logError("governance_repo_get_vote_record_failed", err,
			"proposal_id", proposalID,
			"voter", strings.TrimSpace(voter),
		)
	}
	return row.toEntity(), true, nil
}

func (r *Repository) ListVoteRecords(ctx context.Context, proposalID uint64) ([]entities.VoteRecord, error) {
	var rows []voteRecordModel
	if err := r.db.WithContext(ctx).
		Where("proposal_id = ?", proposalID).
		Order("voter ASC").
		Find(&rows).Error; err != nil {
		return nil, r.logError("governance_repo_list_vote_records_failed", err,
			"proposal_id", proposalID,
		)
	}
	items := make([]entities.VoteRecord, 0, len(rows))
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
		return r.logError("governance_repo_append_outbox_failed", err,
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
		return nil, r.logError("governance_repo_list_pending_outbox_failed", err)
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
		return nil, r.logError("governance_repo_list_outbox_failed", err)
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
		return r.logError("governance_repo_mark_outbox_published_failed", err, "outbox_id", outboxID)
	}
	return nil
}

func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code == "23505"
	}
	return false
}

func (r *Repository) logError(event string, err error, args ...any) error {
	fields := append([]any{
		"event", event,
		"module", "governance/proposal-engine",
		"layer", "adapter",
		"error", err.Error(),
	}, args...)
	r.logger.Error("governance repository operation failed", fields...)
	return err
}
