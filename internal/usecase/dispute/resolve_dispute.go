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

type ResolveDisputeInput struct {
	Actor      valueobject.Actor
	DisputeID  uuid.UUID
	Resolution string
}

type ResolveDisputeUseCase struct {
	disputeRepo repository.DisputeRepository
	emitter     event.Emitter
}

func NewResolveDisputeUseCase(disputeRepo repository.DisputeRepository, emitter event.Emitter) *ResolveDisputeUseCase {
	return &ResolveDisputeUseCase{disputeRepo: disputeRepo, emitter: emitter}
}

func (uc *ResolveDisputeUseCase) Execute(ctx context.Context, input ResolveDisputeInput) (*entity.Dispute, error) {
	if !input.Actor.IsAdmin() {
		return nil, apperror.New(apperror.ErrCodeForbidden, "выносить решение могут только администраторы")
	}

	dispute, err := uc.disputeRepo.FindByID(ctx, input.DisputeID)
	if err != nil {
		return nil, err
	}

	if err := validation.ValidateReason(input.Resolution); err != nil {
		return nil, apperror.New(apperror.ErrCodeValidation, err.Error())
	}

	previousStatus := string(dispute.Status)
	if err := dispute.Resolve(input.Actor.ID, input.Resolution); err != nil {
		return nil, err
	}

	if err := uc.disputeRepo.Update(ctx, dispute, previousStatus); err != nil {
		return nil, err
	}

	uc.emitter.Emit(ctx, event.Event{
		Type:       event.TypeDisputeResolved,
		ActorID:    input.Actor.ID,
		Recipients: []uuid.UUID{dispute.OpenerID, dispute.ResponderID},
		Data: map[string]any{
			"dispute_id": dispute.ID.String(),
			"resolution": input.Resolution,
		},
	})

	return dispute, nil
}
