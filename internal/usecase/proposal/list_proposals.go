package proposal

import (
	"context"

	"github.com/google/uuid"

	"github.com/ignatzorin/consulting-backend/internal/domain/entity"
	"github.com/ignatzorin/consulting-backend/internal/domain/repository"
	"github.com/ignatzorin/consulting-backend/internal/domain/valueobject"
	"github.com/ignatzorin/consulting-backend/internal/pkg/apperror"
)

// ListProposalsUseCase — чтение предложений с учётом прав доступа.
type ListProposalsUseCase struct {
	proposalRepo repository.ProposalRepository
	projectRepo  repository.ProjectRepository
}

func NewListProposalsUseCase(proposalRepo repository.ProposalRepository, projectRepo repository.ProjectRepository) *ListProposalsUseCase {
	return &ListProposalsUseCase{
		proposalRepo: proposalRepo,
		projectRepo:  projectRepo,
	}
}

// ByProject возвращает предложения проекта. Полный список видят владелец
// и администратор; консультант видит только собственное предложение.
func (uc *ListProposalsUseCase) ByProject(ctx context.Context, actor valueobject.Actor, projectID uuid.UUID) ([]*entity.Proposal, error) {
	project, err := uc.projectRepo.FindByID(ctx, projectID)
	if err != nil {
		return nil, err
	}

	proposals, err := uc.proposalRepo.FindByProjectID(ctx, projectID)
	if err != nil {
		return nil, err
	}

	if project.IsOwnedBy(actor.ID) || actor.IsAdmin() {
		return proposals, nil
	}

	own := make([]*entity.Proposal, 0, 1)
	for _, p := range proposals {
		if p.IsOwnedBy(actor.ID) {
			own = append(own, p)
		}
	}
	return own, nil
}

// ByConsultant возвращает предложения консультанта.
func (uc *ListProposalsUseCase) ByConsultant(ctx context.Context, actor valueobject.Actor, consultantID uuid.UUID) ([]*entity.Proposal, error) {
	if !actor.Is(consultantID) && !actor.IsAdmin() {
		return nil, apperror.New(apperror.ErrCodeForbidden, "чужие предложения недоступны")
	}
	return uc.proposalRepo.FindByConsultantID(ctx, consultantID)
}

// Get возвращает одно предложение: автору, владельцу проекта или администратору.
func (uc *ListProposalsUseCase) Get(ctx context.Context, actor valueobject.Actor, proposalID uuid.UUID) (*entity.Proposal, error) {
	proposal, err := uc.proposalRepo.FindByID(ctx, proposalID)
	if err != nil {
		return nil, err
	}

	if proposal.IsOwnedBy(actor.ID) || actor.IsAdmin() {
		return proposal, nil
	}

	project, err := uc.projectRepo.FindByID(ctx, proposal.ProjectID)
	if err != nil {
		return nil, err
	}
	if !project.IsOwnedBy(actor.ID) {
		return nil, apperror.ErrProposalNotFound
	}

	return proposal, nil
}
