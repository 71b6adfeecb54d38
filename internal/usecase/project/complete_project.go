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

type CompleteProjectInput struct {
	Actor     valueobject.Actor
	ProjectID uuid.UUID
}

type CompleteProjectUseCase struct {
	projectRepo  repository.ProjectRepository
	proposalRepo repository.ProposalRepository
	emitter      event.Emitter
}

func NewCompleteProjectUseCase(projectRepo repository.ProjectRepository, proposalRepo repository.ProposalRepository, emitter event.Emitter) *CompleteProjectUseCase {
	return &CompleteProjectUseCase{
		projectRepo:  projectRepo,
		proposalRepo: proposalRepo,
		emitter:      emitter,
	}
}

func (uc *CompleteProjectUseCase) Execute(ctx context.Context, input CompleteProjectInput) (*entity.Project, error) {
	project, err := uc.projectRepo.FindByID(ctx, input.ProjectID)
	if err != nil {
		return nil, err
	}

	if !project.IsOwnedBy(input.Actor.ID) && !input.Actor.IsAdmin() {
		return nil, apperror.New(apperror.ErrCodeForbidden, "завершить проект может только его владелец")
	}

	previousStatus := string(project.Status)
	if err := project.Complete(); err != nil {
		return nil, err
	}

	if err := uc.projectRepo.Update(ctx, project, previousStatus); err != nil {
		return nil, err
	}

	// Исполнитель — консультант принятого предложения.
	var recipients []uuid.UUID
	proposals, err := uc.proposalRepo.FindByProjectID(ctx, project.ID)
	if err == nil {
		for _, p := range proposals {
			if p.IsAccepted() {
				recipients = append(recipients, p.ConsultantID)
			}
		}
	}

	uc.emitter.Emit(ctx, event.Event{
		Type:       event.TypeProjectCompleted,
		ActorID:    input.Actor.ID,
		Recipients: recipients,
		Data: map[string]any{
			"project_id": project.ID.String(),
			"title":      project.Title,
		},
	})

	return project, nil
}
