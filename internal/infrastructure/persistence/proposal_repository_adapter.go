package persistence

import (
	"context"
	"database/sql"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/ignatzorin/consulting-backend/internal/domain/entity"
	"github.com/ignatzorin/consulting-backend/internal/domain/valueobject"
	"github.com/ignatzorin/consulting-backend/internal/pkg/apperror"
	"github.com/ignatzorin/consulting-backend/internal/repository/common"
)

type ProposalRepositoryAdapter struct {
	db *sqlx.DB
}

func NewProposalRepositoryAdapter(db *sqlx.DB) *ProposalRepositoryAdapter {
	return &ProposalRepositoryAdapter{db: db}
}

// Create вставляет предложение. Частичный уникальный индекс по
// (project_id, consultant_id) для живых статусов превращает повторную подачу
// в конфликт на уровне базы.
func (r *ProposalRepositoryAdapter) Create(ctx context.Context, proposal *entity.Proposal) error {
	query := `
		INSERT INTO proposals (id, project_id, consultant_id, cover_letter, proposed_amount,
			estimated_duration_days, delivery_date, status, submitted_at, reviewed_at,
			rejection_reason, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)
	`
	_, err := r.db.ExecContext(ctx, query,
		proposal.ID, proposal.ProjectID, proposal.ConsultantID, proposal.CoverLetter,
		proposal.ProposedAmount, proposal.EstimatedDurationDays, proposal.DeliveryDate,
		string(proposal.Status), proposal.SubmittedAt, proposal.ReviewedAt,
		proposal.RejectionReason, proposal.CreatedAt, proposal.UpdatedAt,
	)
	if err != nil {
		if common.IsUniqueViolation(err) {
			return apperror.New(apperror.ErrCodeConflict, "у вас уже есть активное предложение по этому проекту")
		}
		return apperror.Wrap(err, apperror.ErrCodeDatabaseError, "не удалось создать предложение")
	}
	return nil
}

func (r *ProposalRepositoryAdapter) Update(ctx context.Context, proposal *entity.Proposal, expectedStatus string) error {
	res, err := r.db.ExecContext(ctx, proposalUpdate,
		proposal.ID, proposal.CoverLetter, proposal.ProposedAmount,
		proposal.EstimatedDurationDays, proposal.DeliveryDate, string(proposal.Status),
		proposal.SubmittedAt, proposal.ReviewedAt, proposal.RejectionReason,
		proposal.UpdatedAt, expectedStatus,
	)
	if err != nil {
		if common.IsUniqueViolation(err) {
			return apperror.New(apperror.ErrCodeConflict, "по проекту уже принято другое предложение")
		}
		return apperror.Wrap(err, apperror.ErrCodeDatabaseError, "не удалось обновить предложение")
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return apperror.Wrap(err, apperror.ErrCodeDatabaseError, "не удалось обновить предложение")
	}
	if affected == 0 {
		return apperror.New(apperror.ErrCodeConflict, "статус предложения уже изменён другой операцией")
	}
	return nil
}

func (r *ProposalRepositoryAdapter) FindByID(ctx context.Context, id uuid.UUID) (*entity.Proposal, error) {
	var row proposalRow
	query := proposalSelect + ` WHERE id = $1`
	if err := r.db.GetContext(ctx, &row, query, id); err != nil {
		if err == sql.ErrNoRows {
			return nil, apperror.ErrProposalNotFound
		}
		return nil, apperror.Wrap(err, apperror.ErrCodeDatabaseError, "не удалось получить предложение")
	}
	return row.toEntity(), nil
}

func (r *ProposalRepositoryAdapter) FindByProjectID(ctx context.Context, projectID uuid.UUID) ([]*entity.Proposal, error) {
	var rows []proposalRow
	query := proposalSelect + ` WHERE project_id = $1 ORDER BY created_at DESC`
	if err := r.db.SelectContext(ctx, &rows, query, projectID); err != nil {
		return nil, apperror.Wrap(err, apperror.ErrCodeDatabaseError, "не удалось получить предложения")
	}
	return toProposalEntities(rows), nil
}

func (r *ProposalRepositoryAdapter) FindByConsultantID(ctx context.Context, consultantID uuid.UUID) ([]*entity.Proposal, error) {
	var rows []proposalRow
	query := proposalSelect + ` WHERE consultant_id = $1 ORDER BY created_at DESC`
	if err := r.db.SelectContext(ctx, &rows, query, consultantID); err != nil {
		return nil, apperror.Wrap(err, apperror.ErrCodeDatabaseError, "не удалось получить предложения")
	}
	return toProposalEntities(rows), nil
}

// FindLiveByProjectAndConsultant возвращает живое предложение пары или nil.
func (r *ProposalRepositoryAdapter) FindLiveByProjectAndConsultant(ctx context.Context, projectID, consultantID uuid.UUID) (*entity.Proposal, error) {
	var row proposalRow
	query := proposalSelect + ` WHERE project_id = $1 AND consultant_id = $2 AND status NOT IN ('withdrawn', 'rejected')`
	if err := r.db.GetContext(ctx, &row, query, projectID, consultantID); err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, apperror.Wrap(err, apperror.ErrCodeDatabaseError, "не удалось получить предложение")
	}
	return row.toEntity(), nil
}

func (r *ProposalRepositoryAdapter) CountAccepted(ctx context.Context, projectID uuid.UUID) (int, error) {
	var count int
	query := `SELECT COUNT(*) FROM proposals WHERE project_id = $1 AND status = 'accepted'`
	if err := r.db.GetContext(ctx, &count, query, projectID); err != nil {
		return 0, apperror.Wrap(err, apperror.ErrCodeDatabaseError, "не удалось посчитать предложения")
	}
	return count, nil
}

const proposalSelect = `
	SELECT id, project_id, consultant_id, cover_letter, proposed_amount,
		estimated_duration_days, delivery_date, status, submitted_at, reviewed_at,
		rejection_reason, created_at, updated_at
	FROM proposals
`

const proposalUpdate = `
	UPDATE proposals SET cover_letter = $2, proposed_amount = $3,
		estimated_duration_days = $4, delivery_date = $5, status = $6,
		submitted_at = $7, reviewed_at = $8, rejection_reason = $9, updated_at = $10
	WHERE id = $1 AND status = $11
`

type proposalRow struct {
	ID                    uuid.UUID  `db:"id"`
	ProjectID             uuid.UUID  `db:"project_id"`
	ConsultantID          uuid.UUID  `db:"consultant_id"`
	CoverLetter           string     `db:"cover_letter"`
	ProposedAmount        float64    `db:"proposed_amount"`
	EstimatedDurationDays int        `db:"estimated_duration_days"`
	DeliveryDate          *time.Time `db:"delivery_date"`
	Status                string     `db:"status"`
	SubmittedAt           *time.Time `db:"submitted_at"`
	ReviewedAt            *time.Time `db:"reviewed_at"`
	RejectionReason       *string    `db:"rejection_reason"`
	CreatedAt             time.Time  `db:"created_at"`
	UpdatedAt             time.Time  `db:"updated_at"`
}

func (p *proposalRow) toEntity() *entity.Proposal {
	status, _ := valueobject.NewProposalStatus(p.Status)
	return &entity.Proposal{
		ID:                    p.ID,
		ProjectID:             p.ProjectID,
		ConsultantID:          p.ConsultantID,
		CoverLetter:           p.CoverLetter,
		ProposedAmount:        p.ProposedAmount,
		EstimatedDurationDays: p.EstimatedDurationDays,
		DeliveryDate:          p.DeliveryDate,
		Status:                status,
		SubmittedAt:           p.SubmittedAt,
		ReviewedAt:            p.ReviewedAt,
		RejectionReason:       p.RejectionReason,
		CreatedAt:             p.CreatedAt,
		UpdatedAt:             p.UpdatedAt,
	}
}

func toProposalEntities(rows []proposalRow) []*entity.Proposal {
	result := make([]*entity.Proposal, len(rows))
	for i, row := range rows {
		result[i] = row.toEntity()
	}
	return result
}
