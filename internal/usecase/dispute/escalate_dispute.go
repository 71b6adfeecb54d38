package dispute

import (
	"context"

	"github.com/google/uuid"

	"github.com/ignatzorin/consulting-backend/internal/domain/entity"
	"github.com/ignatzorin/consulting-backend/internal/domain/event"
	"github.com/ignatzorin/consulting-backend/internal/domain/repository"
	"github.com/ignatzorin/consulting-backend/internal/domain/valueobject"
	"github.com/ignatzorin/consulting-backend/internal/pkg/apperror"
)

type EscalateDisputeInput struct {
	Actor     valueobject.Actor
	DisputeID uuid.UUID
}

type EscalateDisputeUseCase struct {
	disputeRepo repository.DisputeRepository
	emitter     event.Emitter
}

func NewEscalateDisputeUseCase(disputeRepo repository.DisputeRepository, emitter event.Emitter) *EscalateDisputeUseCase {
	return &EscalateDisputeUseCase{disputeRepo: disputeRepo, emitter: emitter}
}

func (uc *EscalateDisputeUseCase) Execute(ctx context.Context, input EscalateDisputeInput) (*entity.Dispute, error) {
	if !input.Actor.IsAdmin() {
		return nil, apperror.New(apperror.ErrCodeForbidden, "эскалировать спор могут только администраторы")
	}

	dispute, err := uc.disputeRepo.FindByID(ctx, input.DisputeID)
	if err != nil {
		return nil, err
	}

	previousStatus := string(dispute.Status)
	if err := dispute.Escalate(); err != nil {
		return nil, err
	}

	if err := uc.disputeRepo.Update(ctx, dispute, previousStatus); err != nil {
		return nil, err
	}

	uc.emitter.Emit(ctx, event.Event{
		Type:       event.TypeDisputeEscalated,
		ActorID:    input.Actor.ID,
		Recipients: []uuid.UUID{dispute.OpenerID, dispute.ResponderID},
		Data: map[string]any{
			"dispute_id": dispute.ID.String(),
		},
	})

	return dispute, nil
}
