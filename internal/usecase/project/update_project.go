package project

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/ignatzorin/consulting-backend/internal/domain/entity"
	"github.com/ignatzorin/consulting-backend/internal/domain/repository"
	"github.com/ignatzorin/consulting-backend/internal/domain/valueobject"
	"github.com/ignatzorin/consulting-backend/internal/pkg/apperror"
	"github.com/ignatzorin/consulting-backend/internal/validation"
)

type UpdateProjectInput struct {
	Actor       valueobject.Actor
	ProjectID   uuid.UUID
	Title       string
	Description string
	Category    string
	BudgetMin   float64
	BudgetMax   float64
	DeadlineAt  *time.Time
}

type UpdateProjectUseCase struct {
	projectRepo repository.ProjectRepository
}

func NewUpdateProjectUseCase(projectRepo repository.ProjectRepository) *UpdateProjectUseCase {
	return &UpdateProjectUseCase{projectRepo: projectRepo}
}

func (uc *UpdateProjectUseCase) Execute(ctx context.Context, input UpdateProjectInput) (*entity.Project, error) {
	project, err := uc.projectRepo.FindByID(ctx, input.ProjectID)
	if err != nil {
		return nil, err
	}

	if !project.IsOwnedBy(input.Actor.ID) && !input.Actor.IsAdmin() {
		return nil, apperror.New(apperror.ErrCodeForbidden, "редактировать проект может только его владелец")
	}

	if input.Title != "" {
		if err := validation.ValidateTitle(input.Title); err != nil {
			return nil, apperror.New(apperror.ErrCodeValidation, err.Error())
		}
	}
	if err := validation.ValidateDescription(input.Description); err != nil {
		return nil, apperror.New(apperror.ErrCodeValidation, err.Error())
	}

	// Редактирование не меняет статус, предусловием служит текущий.
	currentStatus := string(project.Status)
	if err := project.Update(input.Title, input.Description, input.Category, input.BudgetMin, input.BudgetMax, input.DeadlineAt); err != nil {
		return nil, err
	}

	if err := uc.projectRepo.Update(ctx, project, currentStatus); err != nil {
		return nil, err
	}

	return project, nil
}
