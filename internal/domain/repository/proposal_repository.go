package repository

import (
	"context"

	"github.com/google/uuid"

	"github.com/ignatzorin/consulting-backend/internal/domain/entity"
)

type ProposalRepository interface {
	// Create вставляет предложение; нарушение уникальности живой пары
	// (проект, консультант) превращается в конфликт.
	Create(ctx context.Context, proposal *entity.Proposal) error
	Update(ctx context.Context, proposal *entity.Proposal, expectedStatus string) error
	FindByID(ctx context.Context, id uuid.UUID) (*entity.Proposal, error)
	FindByProjectID(ctx context.Context, projectID uuid.UUID) ([]*entity.Proposal, error)
	FindByConsultantID(ctx context.Context, consultantID uuid.UUID) ([]*entity.Proposal, error)
	// FindLiveByProjectAndConsultant возвращает живое предложение пары или nil.
	FindLiveByProjectAndConsultant(ctx context.Context, projectID, consultantID uuid.UUID) (*entity.Proposal, error)
	CountAccepted(ctx context.Context, projectID uuid.UUID) (int, error)
}
