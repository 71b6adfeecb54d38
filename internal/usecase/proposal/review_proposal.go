package proposal

import (
	"context"

	"github.com/google/uuid"

	"github.com/ignatzorin/consulting-backend/internal/domain/entity"
	"github.com/ignatzorin/consulting-backend/internal/domain/repository"
	"github.com/ignatzorin/consulting-backend/internal/domain/valueobject"
	"github.com/ignatzorin/consulting-backend/internal/pkg/apperror"
)

type MarkUnderReviewInput struct {
	Actor      valueobject.Actor
	ProposalID uuid.UUID
}

// MarkUnderReviewUseCase — клиент помечает предложение взятым на рассмотрение.
type MarkUnderReviewUseCase struct {
	proposalRepo repository.ProposalRepository
	projectRepo  repository.ProjectRepository
}

func NewMarkUnderReviewUseCase(proposalRepo repository.ProposalRepository, projectRepo repository.ProjectRepository) *MarkUnderReviewUseCase {
	return &MarkUnderReviewUseCase{
		proposalRepo: proposalRepo,
		projectRepo:  projectRepo,
	}
}

func (uc *MarkUnderReviewUseCase) Execute(ctx context.Context, input MarkUnderReviewInput) (*entity.Proposal, error) {
	proposal, err := uc.proposalRepo.FindByID(ctx, input.ProposalID)
	if err != nil {
		return nil, err
	}

	project, err := uc.projectRepo.FindByID(ctx, proposal.ProjectID)
	if err != nil {
		return nil, err
	}

	if !project.IsOwnedBy(input.Actor.ID) && !input.Actor.IsAdmin() {
		return nil, apperror.New(apperror.ErrCodeForbidden, "рассматривать предложения может только владелец проекта")
	}

	previousStatus := string(proposal.Status)
	if err := proposal.MarkUnderReview(); err != nil {
		return nil, err
	}

	if err := uc.proposalRepo.Update(ctx, proposal, previousStatus); err != nil {
		return nil, err
	}

	return proposal, nil
}
