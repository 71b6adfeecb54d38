package repository

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/ignatzorin/consulting-backend/internal/domain/entity"
)

type DisputeRepository interface {
	Create(ctx context.Context, dispute *entity.Dispute) error
	Update(ctx context.Context, dispute *entity.Dispute, expectedStatus string) error
	FindByID(ctx context.Context, id uuid.UUID) (*entity.Dispute, error)
	// FindActiveByProjectID возвращает единственный активный спор проекта или nil.
	FindActiveByProjectID(ctx context.Context, projectID uuid.UUID) (*entity.Dispute, error)
	FindByParticipant(ctx context.Context, userID uuid.UUID, limit, offset int) ([]*entity.Dispute, error)
	ListUnassigned(ctx context.Context, limit, offset int) ([]*entity.Dispute, error)
	// ListOverdue возвращает споры в awaiting_response с истёкшим дедлайном.
	ListOverdue(ctx context.Context, now time.Time, limit int) ([]*entity.Dispute, error)

	AppendMessage(ctx context.Context, msg *entity.DisputeMessage) error
	AppendEvidence(ctx context.Context, ev *entity.DisputeEvidence) error
	ListMessages(ctx context.Context, disputeID uuid.UUID) ([]entity.DisputeMessage, error)
	ListEvidence(ctx context.Context, disputeID uuid.UUID) ([]entity.DisputeEvidence, error)
}
