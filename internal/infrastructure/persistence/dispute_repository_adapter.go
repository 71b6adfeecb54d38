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

type DisputeRepositoryAdapter struct {
	db *sqlx.DB
}

func NewDisputeRepositoryAdapter(db *sqlx.DB) *DisputeRepositoryAdapter {
	return &DisputeRepositoryAdapter{db: db}
}

// Create вставляет спор. Частичный уникальный индекс по project_id для
// активных статусов гарантирует не более одного активного спора на проект.
func (r *DisputeRepositoryAdapter) Create(ctx context.Context, dispute *entity.Dispute) error {
	query := `
		INSERT INTO disputes (id, project_id, opener_id, responder_id, reason, status,
			assigned_admin_id, response_deadline, resolution, resolved_by,
			created_at, updated_at, resolved_at, closed_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14)
	`
	_, err := r.db.ExecContext(ctx, query,
		dispute.ID, dispute.ProjectID, dispute.OpenerID, dispute.ResponderID,
		dispute.Reason, string(dispute.Status), dispute.AssignedAdminID,
		dispute.ResponseDeadline, dispute.Resolution, dispute.ResolvedBy,
		dispute.CreatedAt, dispute.UpdatedAt, dispute.ResolvedAt, dispute.ClosedAt,
	)
	if err != nil {
		if common.IsUniqueViolation(err) {
			return apperror.New(apperror.ErrCodeConflict, "по проекту уже открыт активный спор")
		}
		return apperror.Wrap(err, apperror.ErrCodeDatabaseError, "не удалось создать спор")
	}
	return nil
}

func (r *DisputeRepositoryAdapter) Update(ctx context.Context, dispute *entity.Dispute, expectedStatus string) error {
	query := `
		UPDATE disputes SET status = $2, assigned_admin_id = $3, response_deadline = $4,
			resolution = $5, resolved_by = $6, updated_at = $7, resolved_at = $8, closed_at = $9
		WHERE id = $1 AND status = $10
	`
	res, err := r.db.ExecContext(ctx, query,
		dispute.ID, string(dispute.Status), dispute.AssignedAdminID,
		dispute.ResponseDeadline, dispute.Resolution, dispute.ResolvedBy,
		dispute.UpdatedAt, dispute.ResolvedAt, dispute.ClosedAt,
		expectedStatus,
	)
	if err != nil {
		return apperror.Wrap(err, apperror.ErrCodeDatabaseError, "не удалось обновить спор")
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return apperror.Wrap(err, apperror.ErrCodeDatabaseError, "не удалось обновить спор")
	}
	if affected == 0 {
		return apperror.New(apperror.ErrCodeConflict, "статус спора уже изменён другой операцией")
	}
	return nil
}

func (r *DisputeRepositoryAdapter) FindByID(ctx context.Context, id uuid.UUID) (*entity.Dispute, error) {
	var row disputeRow
	query := disputeSelect + ` WHERE id = $1`
	if err := r.db.GetContext(ctx, &row, query, id); err != nil {
		if err == sql.ErrNoRows {
			return nil, apperror.ErrDisputeNotFound
		}
		return nil, apperror.Wrap(err, apperror.ErrCodeDatabaseError, "не удалось получить спор")
	}

	dispute := row.toEntity()

	messages, err := r.ListMessages(ctx, id)
	if err != nil {
		return nil, err
	}
	dispute.Messages = messages

	evidence, err := r.ListEvidence(ctx, id)
	if err != nil {
		return nil, err
	}
	dispute.Evidence = evidence

	return dispute, nil
}

func (r *DisputeRepositoryAdapter) FindActiveByProjectID(ctx context.Context, projectID uuid.UUID) (*entity.Dispute, error) {
	var row disputeRow
	query := disputeSelect + ` WHERE project_id = $1 AND status IN ('open', 'assigned', 'awaiting_response', 'escalated')`
	if err := r.db.GetContext(ctx, &row, query, projectID); err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, apperror.Wrap(err, apperror.ErrCodeDatabaseError, "не удалось получить спор")
	}
	return row.toEntity(), nil
}

func (r *DisputeRepositoryAdapter) FindByParticipant(ctx context.Context, userID uuid.UUID, limit, offset int) ([]*entity.Dispute, error) {
	var rows []disputeRow
	query := disputeSelect + `
		WHERE opener_id = $1 OR responder_id = $1 OR assigned_admin_id = $1
		ORDER BY created_at DESC LIMIT $2 OFFSET $3
	`
	if err := r.db.SelectContext(ctx, &rows, query, userID, normalizeLimit(limit), normalizeOffset(offset)); err != nil {
		return nil, apperror.Wrap(err, apperror.ErrCodeDatabaseError, "не удалось получить споры")
	}
	return toDisputeEntities(rows), nil
}

func (r *DisputeRepositoryAdapter) ListUnassigned(ctx context.Context, limit, offset int) ([]*entity.Dispute, error) {
	var rows []disputeRow
	query := disputeSelect + ` WHERE status = 'open' ORDER BY created_at ASC LIMIT $1 OFFSET $2`
	if err := r.db.SelectContext(ctx, &rows, query, normalizeLimit(limit), normalizeOffset(offset)); err != nil {
		return nil, apperror.Wrap(err, apperror.ErrCodeDatabaseError, "не удалось получить споры")
	}
	return toDisputeEntities(rows), nil
}

func (r *DisputeRepositoryAdapter) ListOverdue(ctx context.Context, now time.Time, limit int) ([]*entity.Dispute, error) {
	var rows []disputeRow
	query := disputeSelect + `
		WHERE status = 'awaiting_response' AND response_deadline IS NOT NULL AND response_deadline < $1
		ORDER BY response_deadline ASC LIMIT $2
	`
	if err := r.db.SelectContext(ctx, &rows, query, now, normalizeLimit(limit)); err != nil {
		return nil, apperror.Wrap(err, apperror.ErrCodeDatabaseError, "не удалось получить просроченные споры")
	}
	return toDisputeEntities(rows), nil
}

func (r *DisputeRepositoryAdapter) AppendMessage(ctx context.Context, msg *entity.DisputeMessage) error {
	query := `
		INSERT INTO dispute_messages (id, dispute_id, author_id, body, visibility, created_at)
		VALUES ($1, $2, $3, $4, $5, $6)
	`
	_, err := r.db.ExecContext(ctx, query,
		msg.ID, msg.DisputeID, msg.AuthorID, msg.Body, string(msg.Visibility), msg.CreatedAt,
	)
	if err != nil {
		return apperror.Wrap(err, apperror.ErrCodeDatabaseError, "не удалось сохранить сообщение")
	}
	return nil
}

func (r *DisputeRepositoryAdapter) AppendEvidence(ctx context.Context, ev *entity.DisputeEvidence) error {
	query := `
		INSERT INTO dispute_evidence (id, dispute_id, uploader_id, file_name, file_path, content_type, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
	`
	_, err := r.db.ExecContext(ctx, query,
		ev.ID, ev.DisputeID, ev.UploaderID, ev.FileName, ev.FilePath, ev.ContentType, ev.CreatedAt,
	)
	if err != nil {
		return apperror.Wrap(err, apperror.ErrCodeDatabaseError, "не удалось сохранить доказательство")
	}
	return nil
}

func (r *DisputeRepositoryAdapter) ListMessages(ctx context.Context, disputeID uuid.UUID) ([]entity.DisputeMessage, error) {
	var rows []disputeMessageRow
	query := `
		SELECT id, dispute_id, author_id, body, visibility, created_at
		FROM dispute_messages WHERE dispute_id = $1 ORDER BY created_at ASC
	`
	if err := r.db.SelectContext(ctx, &rows, query, disputeID); err != nil {
		return nil, apperror.Wrap(err, apperror.ErrCodeDatabaseError, "не удалось получить сообщения")
	}

	messages := make([]entity.DisputeMessage, len(rows))
	for i, row := range rows {
		messages[i] = row.toEntity()
	}
	return messages, nil
}

func (r *DisputeRepositoryAdapter) ListEvidence(ctx context.Context, disputeID uuid.UUID) ([]entity.DisputeEvidence, error) {
	var rows []disputeEvidenceRow
	query := `
		SELECT id, dispute_id, uploader_id, file_name, file_path, content_type, created_at
		FROM dispute_evidence WHERE dispute_id = $1 ORDER BY created_at ASC
	`
	if err := r.db.SelectContext(ctx, &rows, query, disputeID); err != nil {
		return nil, apperror.Wrap(err, apperror.ErrCodeDatabaseError, "не удалось получить доказательства")
	}

	evidence := make([]entity.DisputeEvidence, len(rows))
	for i, row := range rows {
		evidence[i] = row.toEntity()
	}
	return evidence, nil
}

const disputeSelect = `
	SELECT id, project_id, opener_id, responder_id, reason, status, assigned_admin_id,
		response_deadline, resolution, resolved_by, created_at, updated_at, resolved_at, closed_at
	FROM disputes
`

type disputeRow struct {
	ID               uuid.UUID  `db:"id"`
	ProjectID        uuid.UUID  `db:"project_id"`
	OpenerID         uuid.UUID  `db:"opener_id"`
	ResponderID      uuid.UUID  `db:"responder_id"`
	Reason           string     `db:"reason"`
	Status           string     `db:"status"`
	AssignedAdminID  *uuid.UUID `db:"assigned_admin_id"`
	ResponseDeadline *time.Time `db:"response_deadline"`
	Resolution       *string    `db:"resolution"`
	ResolvedBy       *uuid.UUID `db:"resolved_by"`
	CreatedAt        time.Time  `db:"created_at"`
	UpdatedAt        time.Time  `db:"updated_at"`
	ResolvedAt       *time.Time `db:"resolved_at"`
	ClosedAt         *time.Time `db:"closed_at"`
}

func (d *disputeRow) toEntity() *entity.Dispute {
	status, _ := valueobject.NewDisputeStatus(d.Status)
	return &entity.Dispute{
		ID:               d.ID,
		ProjectID:        d.ProjectID,
		OpenerID:         d.OpenerID,
		ResponderID:      d.ResponderID,
		Reason:           d.Reason,
		Status:           status,
		AssignedAdminID:  d.AssignedAdminID,
		ResponseDeadline: d.ResponseDeadline,
		Resolution:       d.Resolution,
		ResolvedBy:       d.ResolvedBy,
		CreatedAt:        d.CreatedAt,
		UpdatedAt:        d.UpdatedAt,
		ResolvedAt:       d.ResolvedAt,
		ClosedAt:         d.ClosedAt,
	}
}

type disputeMessageRow struct {
	ID         uuid.UUID `db:"id"`
	DisputeID  uuid.UUID `db:"dispute_id"`
	AuthorID   uuid.UUID `db:"author_id"`
	Body       string    `db:"body"`
	Visibility string    `db:"visibility"`
	CreatedAt  time.Time `db:"created_at"`
}

func (m *disputeMessageRow) toEntity() entity.DisputeMessage {
	return entity.DisputeMessage{
		ID:         m.ID,
		DisputeID:  m.DisputeID,
		AuthorID:   m.AuthorID,
		Body:       m.Body,
		Visibility: valueobject.MessageVisibility(m.Visibility),
		CreatedAt:  m.CreatedAt,
	}
}

type disputeEvidenceRow struct {
	ID          uuid.UUID `db:"id"`
	DisputeID   uuid.UUID `db:"dispute_id"`
	UploaderID  uuid.UUID `db:"uploader_id"`
	FileName    string    `db:"file_name"`
	FilePath    string    `db:"file_path"`
	ContentType string    `db:"content_type"`
	CreatedAt   time.Time `db:"created_at"`
}

func (e *disputeEvidenceRow) toEntity() entity.DisputeEvidence {
	return entity.DisputeEvidence{
		ID:          e.ID,
		DisputeID:   e.DisputeID,
		UploaderID:  e.UploaderID,
		FileName:    e.FileName,
		FilePath:    e.FilePath,
		ContentType: e.ContentType,
		CreatedAt:   e.CreatedAt,
	}
}

func toDisputeEntities(rows []disputeRow) []*entity.Dispute {
	result := make([]*entity.Dispute, len(rows))
	for i, row := range rows {
		result[i] = row.toEntity()
	}
	return result
}

func normalizeLimit(limit int) int {
	if limit <= 0 || limit > 100 {
		return 20
	}
	return limit
}

func normalizeOffset(offset int) int {
	if offset < 0 {
		return 0
	}
	return offset
}
