package project

import (
	"context"

	"github.com/google/uuid"

	"github.com/ignatzorin/consulting-backend/internal/domain/repository"
	"github.com/ignatzorin/consulting-backend/internal/domain/valueobject"
	"github.com/ignatzorin/consulting-backend/internal/pkg/apperror"
)

type DeleteProjectInput struct {
	Actor     valueobject.Actor
	ProjectID uuid.UUID
}

// DeleteProjectUseCase мягко удаляет проект. Удалить можно только черновик
// или отменённый проект: опубликованный сначала отменяется.
type DeleteProjectUseCase struct {
	projectRepo repository.ProjectRepository
}

func NewDeleteProjectUseCase(projectRepo repository.ProjectRepository) *DeleteProjectUseCase {
	return &DeleteProjectUseCase{projectRepo: projectRepo}
}

func (uc *DeleteProjectUseCase) Execute(ctx context.Context, input DeleteProjectInput) error {
	project, err := uc.projectRepo.FindByID(ctx, input.ProjectID)
	if err != nil {
		return err
	}

	if !project.IsOwnedBy(input.Actor.ID) && !input.Actor.IsAdmin() {
		return apperror.New(apperror.ErrCodeForbidden, "удалить проект может только его владелец")
	}

	if project.Status != valueobject.ProjectStatusDraft && project.Status != valueobject.ProjectStatusCancelled {
		return apperror.New(apperror.ErrCodeBusinessRule, "удалить можно только черновик или отменённый проект")
	}

	return uc.projectRepo.SoftDelete(ctx, project.ID, project.ClientID)
}
