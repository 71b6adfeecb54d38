package project

import (
	"context"
	"time"

	"github.com/ignatzorin/consulting-backend/internal/domain/entity"
	"github.com/ignatzorin/consulting-backend/internal/domain/repository"
	"github.com/ignatzorin/consulting-backend/internal/domain/valueobject"
	"github.com/ignatzorin/consulting-backend/internal/pkg/apperror"
	"github.com/ignatzorin/consulting-backend/internal/validation"
)

type CreateProjectInput struct {
	Actor       valueobject.Actor
	Title       string
	Description string
	Category    string
	BudgetMin   float64
	BudgetMax   float64
	DeadlineAt  *time.Time
}

type CreateProjectUseCase struct {
	projectRepo repository.ProjectRepository
}

func NewCreateProjectUseCase(projectRepo repository.ProjectRepository) *CreateProjectUseCase {
	return &CreateProjectUseCase{projectRepo: projectRepo}
}

func (uc *CreateProjectUseCase) Execute(ctx context.Context, input CreateProjectInput) (*entity.Project, error) {
	if input.Actor.Role != valueobject.RoleClient && !input.Actor.IsAdmin() {
		return nil, apperror.New(apperror.ErrCodeForbidden, "создавать проекты могут только клиенты")
	}

	if err := validation.ValidateTitle(input.Title); err != nil {
		return nil, apperror.New(apperror.ErrCodeValidation, err.Error())
	}
	if err := validation.ValidateDescription(input.Description); err != nil {
		return nil, apperror.New(apperror.ErrCodeValidation, err.Error())
	}

	project, err := entity.NewProject(
		input.Actor.ID,
		input.Title,
		input.Description,
		input.Category,
		input.BudgetMin,
		input.BudgetMax,
		input.DeadlineAt,
	)
	if err != nil {
		return nil, err
	}

	if err := uc.projectRepo.Create(ctx, project); err != nil {
		return nil, err
	}

	return project, nil
}
