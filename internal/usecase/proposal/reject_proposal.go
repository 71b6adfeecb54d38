package proposal

import (
	"context"

	"github.com/google/uuid"

	"github.com/ignatzorin/consulting-backend/internal/domain/entity"
	"github.com/ignatzorin/consulting-backend/internal/domain/event"
	"github.com/ignatzorin/consulting-backend/internal/domain/repository"
	"github.com/ignatzorin/consulting-backend/internal/domain/valueobject"
	"github.com/ignatzorin/consulting-backend/internal/pkg/apperror"
	"github.com/ignatzorin/consulting-backend/internal/validation"
)

type RejectProposalInput struct {
	Actor      valueobject.Actor
	ProposalID uuid.UUID
	Reason     string
}

type RejectProposalUseCase struct {
	proposalRepo repository.ProposalRepository
	projectRepo  repository.ProjectRepository
	emitter      event.Emitter
}

func NewRejectProposalUseCase(proposalRepo repository.ProposalRepository, projectRepo repository.ProjectRepository, emitter event.Emitter) *RejectProposalUseCase {
	return &RejectProposalUseCase{
		proposalRepo: proposalRepo,
		projectRepo:  projectRepo,
		emitter:      emitter,
	}
}

func (uc *RejectProposalUseCase) Execute(ctx context.Context, input RejectProposalInput) (*entity.Proposal, error) {
	proposal, err := uc.proposalRepo.FindByID(ctx, input.ProposalID)
	if err != nil {
		return nil, err
	}

	project, err := uc.projectRepo.FindByID(ctx, proposal.ProjectID)
	if err != nil {
		return nil, err
	}

	if !project.IsOwnedBy(input.Actor.ID) && !input.Actor.IsAdmin() {
		return nil, apperror.New(apperror.ErrCodeForbidden, "отклонять предложения может только владелец проекта")
	}

	if err := validation.ValidateReason(input.Reason); err != nil {
		return nil, apperror.New(apperror.ErrCodeValidation, err.Error())
	}

	previousStatus := string(proposal.Status)
	if err := proposal.Reject(input.Reason); err != nil {
		return nil, err
	}

	if err := uc.proposalRepo.Update(ctx, proposal, previousStatus); err != nil {
		return nil, err
	}

	uc.emitter.Emit(ctx, event.Event{
		Type:       event.TypeProposalRejected,
		ActorID:    input.Actor.ID,
		Recipients: []uuid.UUID{proposal.ConsultantID},
		Data: map[string]any{
			"proposal_id": proposal.ID.String(),
			"project_id":  proposal.ProjectID.String(),
			"reason":      input.Reason,
		},
	})

	return proposal, nil
}
