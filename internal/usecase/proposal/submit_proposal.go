package proposal

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/ignatzorin/consulting-backend/internal/domain/entity"
	"github.com/ignatzorin/consulting-backend/internal/domain/event"
	"github.com/ignatzorin/consulting-backend/internal/domain/repository"
	"github.com/ignatzorin/consulting-backend/internal/domain/valueobject"
	"github.com/ignatzorin/consulting-backend/internal/pkg/apperror"
)

type SubmitProposalInput struct {
	Actor                 valueobject.Actor
	ProjectID             uuid.UUID
	CoverLetter           string
	ProposedAmount        float64
	EstimatedDurationDays int
	DeliveryDate          *time.Time
}

// SubmitProposalUseCase создаёт и сразу подаёт предложение. Дубликат живого
// предложения отсекается дважды: проверкой здесь и частичным уникальным
// индексом в базе.
type SubmitProposalUseCase struct {
	proposalRepo repository.ProposalRepository
	projectRepo  repository.ProjectRepository
	emitter      event.Emitter
}

func NewSubmitProposalUseCase(proposalRepo repository.ProposalRepository, projectRepo repository.ProjectRepository, emitter event.Emitter) *SubmitProposalUseCase {
	return &SubmitProposalUseCase{
		proposalRepo: proposalRepo,
		projectRepo:  projectRepo,
		emitter:      emitter,
	}
}

func (uc *SubmitProposalUseCase) Execute(ctx context.Context, input SubmitProposalInput) (*entity.Proposal, error) {
	if input.Actor.Role != valueobject.RoleConsultant {
		return nil, apperror.New(apperror.ErrCodeForbidden, "подавать предложения могут только консультанты")
	}

	project, err := uc.projectRepo.FindByID(ctx, input.ProjectID)
	if err != nil {
		return nil, err
	}

	if project.IsOwnedBy(input.Actor.ID) {
		return nil, apperror.New(apperror.ErrCodeBusinessRule, "нельзя откликнуться на собственный проект")
	}

	if project.Status != valueobject.ProjectStatusOpen {
		return nil, apperror.New(apperror.ErrCodeBusinessRule, "предложения принимаются только по открытому проекту")
	}

	existing, err := uc.proposalRepo.FindLiveByProjectAndConsultant(ctx, input.ProjectID, input.Actor.ID)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, apperror.New(apperror.ErrCodeConflict, "у вас уже есть активное предложение по этому проекту")
	}

	if !project.Budget.IsInRange(input.ProposedAmount) {
		return nil, apperror.New(apperror.ErrCodeValidation, "предложенная сумма выходит за рамки бюджета проекта")
	}

	proposal, err := entity.NewProposal(
		input.ProjectID,
		input.Actor.ID,
		input.CoverLetter,
		input.ProposedAmount,
		input.EstimatedDurationDays,
		input.DeliveryDate,
	)
	if err != nil {
		return nil, err
	}

	if err := proposal.Submit(); err != nil {
		return nil, err
	}

	if err := uc.proposalRepo.Create(ctx, proposal); err != nil {
		return nil, err
	}

	uc.emitter.Emit(ctx, event.Event{
		Type:       event.TypeProposalSubmitted,
		ActorID:    input.Actor.ID,
		Recipients: []uuid.UUID{project.ClientID},
		Data: map[string]any{
			"proposal_id": proposal.ID.String(),
			"project_id":  project.ID.String(),
		},
	})

	return proposal, nil
}
