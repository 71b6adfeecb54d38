package project

import (
	"context"

	"github.com/google/uuid"

	"github.com/ignatzorin/consulting-backend/internal/domain/entity"
	"github.com/ignatzorin/consulting-backend/internal/domain/repository"
)

type ListProjectsUseCase struct {
	projectRepo repository.ProjectRepository
}

func NewListProjectsUseCase(projectRepo repository.ProjectRepository) *ListProjectsUseCase {
	return &ListProjectsUseCase{projectRepo: projectRepo}
}

// Execute возвращает страницу проектов по фильтру и общее количество.
func (uc *ListProjectsUseCase) Execute(ctx context.Context, filter repository.ProjectFilter) ([]*entity.Project, int, error) {
	return uc.projectRepo.List(ctx, filter)
}

// ByClient возвращает все проекты клиента, включая черновики.
func (uc *ListProjectsUseCase) ByClient(ctx context.Context, clientID uuid.UUID) ([]*entity.Project, error) {
	return uc.projectRepo.FindByClientID(ctx, clientID)
}
