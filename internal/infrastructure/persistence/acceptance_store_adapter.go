package persistence

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/ignatzorin/consulting-backend/internal/domain/entity"
	"github.com/ignatzorin/consulting-backend/internal/domain/repository"
	"github.com/ignatzorin/consulting-backend/internal/pkg/apperror"
	"github.com/ignatzorin/consulting-backend/internal/repository/common"
)

// AcceptanceStoreAdapter выполняет транзакцию принятия предложения поверх
// блокировки строки проекта. Ожидание блокировки ограничено lock_timeout:
// конкурирующее принятие получает повторяемый конфликт, а не висит.
type AcceptanceStoreAdapter struct {
	db          *sqlx.DB
	lockTimeout time.Duration
}

func NewAcceptanceStoreAdapter(db *sqlx.DB, lockTimeout time.Duration) *AcceptanceStoreAdapter {
	return &AcceptanceStoreAdapter{db: db, lockTimeout: lockTimeout}
}

func (s *AcceptanceStoreAdapter) WithProjectLock(ctx context.Context, projectID uuid.UUID, fn func(tx repository.AcceptanceTx, project *entity.Project) error) error {
	return common.WithTransaction(ctx, s.db, func(tx *sqlx.Tx) error {
		// SET LOCAL действует только внутри транзакции. Значение нельзя
		// передать плейсхолдером, поэтому форматируем миллисекунды сами.
		timeoutStmt := fmt.Sprintf("SET LOCAL lock_timeout = '%dms'", s.lockTimeout.Milliseconds())
		if _, err := tx.ExecContext(ctx, timeoutStmt); err != nil {
			return apperror.Wrap(err, apperror.ErrCodeDatabaseError, "не удалось ограничить ожидание блокировки")
		}

		// Проект перечитывается под эксклюзивной блокировкой: решение о
		// принятии опирается только на это состояние.
		var row projectRow
		query := projectSelect + ` WHERE id = $1 AND deleted_at IS NULL FOR UPDATE`
		if err := tx.GetContext(ctx, &row, query, projectID); err != nil {
			if err == sql.ErrNoRows {
				return apperror.ErrProjectNotFound
			}
			if common.IsLockNotAvailable(err) {
				return apperror.NewRetryable(err, "проект занят другой операцией, повторите попытку")
			}
			return apperror.Wrap(err, apperror.ErrCodeDatabaseError, "не удалось заблокировать проект")
		}

		return fn(&acceptanceTx{tx: tx}, row.toEntity())
	})
}

type acceptanceTx struct {
	tx *sqlx.Tx
}

func (a *acceptanceTx) LiveProposals(ctx context.Context, projectID uuid.UUID) ([]*entity.Proposal, error) {
	var rows []proposalRow
	query := proposalSelect + ` WHERE project_id = $1 AND status NOT IN ('withdrawn', 'rejected') ORDER BY created_at ASC`
	if err := a.tx.SelectContext(ctx, &rows, query, projectID); err != nil {
		return nil, apperror.Wrap(err, apperror.ErrCodeDatabaseError, "не удалось получить предложения проекта")
	}
	return toProposalEntities(rows), nil
}

func (a *acceptanceTx) UpdateProject(ctx context.Context, project *entity.Project) error {
	query := `
		UPDATE projects SET status = $2, updated_at = $3
		WHERE id = $1 AND deleted_at IS NULL
	`
	res, err := a.tx.ExecContext(ctx, query, project.ID, string(project.Status), project.UpdatedAt)
	if err != nil {
		return apperror.Wrap(err, apperror.ErrCodeDatabaseError, "не удалось обновить проект")
	}
	if affected, err := res.RowsAffected(); err == nil && affected == 0 {
		return apperror.ErrProjectNotFound
	}
	return nil
}

func (a *acceptanceTx) UpdateProposal(ctx context.Context, proposal *entity.Proposal) error {
	query := `
		UPDATE proposals SET status = $2, reviewed_at = $3, rejection_reason = $4, updated_at = $5
		WHERE id = $1
	`
	_, err := a.tx.ExecContext(ctx, query,
		proposal.ID, string(proposal.Status), proposal.ReviewedAt,
		proposal.RejectionReason, proposal.UpdatedAt,
	)
	if err != nil {
		if common.IsUniqueViolation(err) {
			return apperror.New(apperror.ErrCodeConflict, "по проекту уже принято другое предложение")
		}
		return apperror.Wrap(err, apperror.ErrCodeDatabaseError, "не удалось обновить предложение")
	}
	return nil
}
