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

type AssignDisputeInput struct {
	Actor     valueobject.Actor
	DisputeID uuid.UUID
}

// AssignDisputeUseCase — администратор берёт спор в работу.
type AssignDisputeUseCase struct {
	disputeRepo repository.DisputeRepository
	emitter     event.Emitter
}

func NewAssignDisputeUseCase(disputeRepo repository.DisputeRepository, emitter event.Emitter) *AssignDisputeUseCase {
	return &AssignDisputeUseCase{disputeRepo: disputeRepo, emitter: emitter}
}

func (uc *AssignDisputeUseCase) Execute(ctx context.Context, input AssignDisputeInput) (*entity.Dispute, error) {
	if !input.Actor.IsAdmin() {
		return nil, apperror.New(apperror.ErrCodeForbidden, "назначать споры могут только администраторы")
	}

	dispute, err := uc.disputeRepo.FindByID(ctx, input.DisputeID)
	if err != nil {
		return nil, err
	}

	previousStatus := string(dispute.Status)
	if err := dispute.Assign(input.Actor.ID); err != nil {
		return nil, err
	}

	if err := uc.disputeRepo.Update(ctx, dispute, previousStatus); err != nil {
		return nil, err
	}

	uc.emitter.Emit(ctx, event.Event{
		Type:       event.TypeDisputeAssigned,
		ActorID:    input.Actor.ID,
		Recipients: []uuid.UUID{dispute.OpenerID, dispute.ResponderID},
		Data: map[string]any{
			"dispute_id": dispute.ID.String(),
		},
	})

	return dispute, nil
}
