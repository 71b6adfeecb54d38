package project

import (
	"context"

	"github.com/google/uuid"

	"github.com/ignatzorin/consulting-backend/internal/domain/entity"
	"github.com/ignatzorin/consulting-backend/internal/domain/event"
	"github.com/ignatzorin/consulting-backend/internal/domain/repository"
	"github.com/ignatzorin/consulting-backend/internal/domain/valueobject"
	"github.com/ignatzorin/consulting-backend/internal/pkg/apperror"
)

type PublishProjectInput struct {
	Actor     valueobject.Actor
	ProjectID uuid.UUID
}

type PublishProjectUseCase struct {
	projectRepo repository.ProjectRepository
	emitter     event.Emitter
}

func NewPublishProjectUseCase(projectRepo repository.ProjectRepository, emitter event.Emitter) *PublishProjectUseCase {
	return &PublishProjectUseCase{projectRepo: projectRepo, emitter: emitter}
}

func (uc *PublishProjectUseCase) Execute(ctx context.Context, input PublishProjectInput) (*entity.Project, error) {
	project, err := uc.projectRepo.FindByID(ctx, input.ProjectID)
	if err != nil {
		return nil, err
	}

	if !project.IsOwnedBy(input.Actor.ID) && !input.Actor.IsAdmin() {
		return nil, apperror.New(apperror.ErrCodeForbidden, "публиковать проект может только его владелец")
	}

	previousStatus := string(project.Status)
	if err := project.Publish(); err != nil {
		return nil, err
	}

	if err := uc.projectRepo.Update(ctx, project, previousStatus); err != nil {
		return nil, err
	}

	uc.emitter.Emit(ctx, event.Event{
		Type:    event.TypeProjectPublished,
		ActorID: input.Actor.ID,
		Data: map[string]any{
			"project_id": project.ID.String(),
			"title":      project.Title,
		},
	})

	return project, nil
}
