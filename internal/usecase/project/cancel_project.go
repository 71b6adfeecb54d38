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

type CancelProjectInput struct {
	Actor     valueobject.Actor
	ProjectID uuid.UUID
}

// CancelProjectUseCase отменяет черновик или открытый проект. Проект в работе
// отменить нельзя: выход из активного взаимодействия идёт через спор.
type CancelProjectUseCase struct {
	projectRepo  repository.ProjectRepository
	proposalRepo repository.ProposalRepository
	emitter      event.Emitter
}

func NewCancelProjectUseCase(projectRepo repository.ProjectRepository, proposalRepo repository.ProposalRepository, emitter event.Emitter) *CancelProjectUseCase {
	return &CancelProjectUseCase{
		projectRepo:  projectRepo,
		proposalRepo: proposalRepo,
		emitter:      emitter,
	}
}

func (uc *CancelProjectUseCase) Execute(ctx context.Context, input CancelProjectInput) (*entity.Project, error) {
	project, err := uc.projectRepo.FindByID(ctx, input.ProjectID)
	if err != nil {
		return nil, err
	}

	if !project.IsOwnedBy(input.Actor.ID) && !input.Actor.IsAdmin() {
		return nil, apperror.New(apperror.ErrCodeForbidden, "отменить проект может только его владелец")
	}

	previousStatus := string(project.Status)
	if err := project.Cancel(); err != nil {
		return nil, err
	}

	if err := uc.projectRepo.Update(ctx, project, previousStatus); err != nil {
		return nil, err
	}

	// Консультанты с живыми предложениями узнают об отмене.
	proposals, err := uc.proposalRepo.FindByProjectID(ctx, project.ID)
	var recipients []uuid.UUID
	if err == nil {
		for _, p := range proposals {
			if p.IsLive() {
				recipients = append(recipients, p.ConsultantID)
			}
		}
	}

	uc.emitter.Emit(ctx, event.Event{
		Type:       event.TypeProjectCancelled,
		ActorID:    input.Actor.ID,
		Recipients: recipients,
		Data: map[string]any{
			"project_id": project.ID.String(),
			"title":      project.Title,
		},
	})

	return project, nil
}
