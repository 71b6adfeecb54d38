package dispute

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

type OpenDisputeInput struct {
	Actor     valueobject.Actor
	ProjectID uuid.UUID
	Reason    string
}

// OpenDisputeUseCase открывает спор по активному или завершённому проекту.
// Открыть спор может только сторона сделки: клиент проекта или консультант
// принятого предложения. Вторая сторона определяется по самой сделке, а не
// по данным запроса. На проект допускается не более одного активного спора;
// гонку закрывает частичный уникальный индекс.
type OpenDisputeUseCase struct {
	disputeRepo  repository.DisputeRepository
	projectRepo  repository.ProjectRepository
	proposalRepo repository.ProposalRepository
	emitter      event.Emitter
}

func NewOpenDisputeUseCase(
	disputeRepo repository.DisputeRepository,
	projectRepo repository.ProjectRepository,
	proposalRepo repository.ProposalRepository,
	emitter event.Emitter,
) *OpenDisputeUseCase {
	return &OpenDisputeUseCase{
		disputeRepo:  disputeRepo,
		projectRepo:  projectRepo,
		proposalRepo: proposalRepo,
		emitter:      emitter,
	}
}

func (uc *OpenDisputeUseCase) Execute(ctx context.Context, input OpenDisputeInput) (*entity.Dispute, error) {
	project, err := uc.projectRepo.FindByID(ctx, input.ProjectID)
	if err != nil {
		return nil, err
	}

	if !project.AcceptsDisputes() {
		return nil, apperror.New(apperror.ErrCodeBusinessRule, "спор можно открыть только по активному или завершённому проекту")
	}

	consultantID, err := uc.engagedConsultant(ctx, input.ProjectID)
	if err != nil {
		return nil, err
	}

	var responderID uuid.UUID
	switch input.Actor.ID {
	case project.ClientID:
		responderID = consultantID
	case consultantID:
		responderID = project.ClientID
	default:
		return nil, apperror.New(apperror.ErrCodeForbidden, "открыть спор может только сторона сделки")
	}

	if err := validation.ValidateReason(input.Reason); err != nil {
		return nil, apperror.New(apperror.ErrCodeValidation, err.Error())
	}

	existing, err := uc.disputeRepo.FindActiveByProjectID(ctx, input.ProjectID)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, apperror.New(apperror.ErrCodeConflict, "по проекту уже открыт активный спор")
	}

	dispute, err := entity.NewDispute(input.ProjectID, input.Actor.ID, responderID, input.Reason)
	if err != nil {
		return nil, err
	}

	if err := uc.disputeRepo.Create(ctx, dispute); err != nil {
		return nil, err
	}

	uc.emitter.Emit(ctx, event.Event{
		Type:       event.TypeDisputeOpened,
		ActorID:    input.Actor.ID,
		Recipients: []uuid.UUID{responderID},
		Data: map[string]any{
			"dispute_id": dispute.ID.String(),
			"project_id": input.ProjectID.String(),
			"reason":     input.Reason,
		},
	})

	return dispute, nil
}

// engagedConsultant возвращает консультанта принятого предложения проекта.
func (uc *OpenDisputeUseCase) engagedConsultant(ctx context.Context, projectID uuid.UUID) (uuid.UUID, error) {
	proposals, err := uc.proposalRepo.FindByProjectID(ctx, projectID)
	if err != nil {
		return uuid.Nil, err
	}
	for _, p := range proposals {
		if p.IsAccepted() {
			return p.ConsultantID, nil
		}
	}
	return uuid.Nil, apperror.New(apperror.ErrCodeBusinessRule, "по проекту нет принятого предложения")
}
