package proposal

import (
	"context"

	"github.com/google/uuid"

	"github.com/ignatzorin/consulting-backend/internal/domain/entity"
	"github.com/ignatzorin/consulting-backend/internal/domain/event"
	"github.com/ignatzorin/consulting-backend/internal/domain/repository"
	"github.com/ignatzorin/consulting-backend/internal/domain/valueobject"
	"github.com/ignatzorin/consulting-backend/internal/pkg/apperror"
)

type WithdrawProposalInput struct {
	Actor      valueobject.Actor
	ProposalID uuid.UUID
}

type WithdrawProposalUseCase struct {
	proposalRepo repository.ProposalRepository
	projectRepo  repository.ProjectRepository
	emitter      event.Emitter
}

func NewWithdrawProposalUseCase(proposalRepo repository.ProposalRepository, projectRepo repository.ProjectRepository, emitter event.Emitter) *WithdrawProposalUseCase {
	return &WithdrawProposalUseCase{
		proposalRepo: proposalRepo,
		projectRepo:  projectRepo,
		emitter:      emitter,
	}
}

func (uc *WithdrawProposalUseCase) Execute(ctx context.Context, input WithdrawProposalInput) (*entity.Proposal, error) {
	proposal, err := uc.proposalRepo.FindByID(ctx, input.ProposalID)
	if err != nil {
		return nil, err
	}

	if !proposal.IsOwnedBy(input.Actor.ID) {
		return nil, apperror.New(apperror.ErrCodeForbidden, "отозвать предложение может только его автор")
	}

	previousStatus := string(proposal.Status)
	if err := proposal.Withdraw(); err != nil {
		return nil, err
	}

	if err := uc.proposalRepo.Update(ctx, proposal, previousStatus); err != nil {
		return nil, err
	}

	var recipients []uuid.UUID
	if project, err := uc.projectRepo.FindByID(ctx, proposal.ProjectID); err == nil {
		recipients = append(recipients, project.ClientID)
	}

	uc.emitter.Emit(ctx, event.Event{
		Type:       event.TypeProposalWithdrawn,
		ActorID:    input.Actor.ID,
		Recipients: recipients,
		Data: map[string]any{
			"proposal_id": proposal.ID.String(),
			"project_id":  proposal.ProjectID.String(),
		},
	})

	return proposal, nil
}
