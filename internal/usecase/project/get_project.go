package project

import (
	"context"

	"github.com/google/uuid"

	"github.com/ignatzorin/consulting-backend/internal/domain/entity"
	"github.com/ignatzorin/consulting-backend/internal/domain/repository"
	"github.com/ignatzorin/consulting-backend/internal/domain/valueobject"
	"github.com/ignatzorin/consulting-backend/internal/pkg/apperror"
)

type GetProjectUseCase struct {
	projectRepo repository.ProjectRepository
}

func NewGetProjectUseCase(projectRepo repository.ProjectRepository) *GetProjectUseCase {
	return &GetProjectUseCase{projectRepo: projectRepo}
}

// Execute возвращает проект. Черновики видны только владельцу и администратору.
func (uc *GetProjectUseCase) Execute(ctx context.Context, actor valueobject.Actor, projectID uuid.UUID) (*entity.Project, error) {
	project, err := uc.projectRepo.FindByID(ctx, projectID)
	if err != nil {
		return nil, err
	}

	if project.Status == valueobject.ProjectStatusDraft && !project.IsOwnedBy(actor.ID) && !actor.IsAdmin() {
		return nil, apperror.ErrProjectNotFound
	}

	return project, nil
}
