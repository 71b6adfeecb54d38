package dispute

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

type RequestResponseInput struct {
	Actor     valueobject.Actor
	DisputeID uuid.UUID
	// Deadline — явный срок ответа; при нулевом значении берётся срок
	// по умолчанию из конфигурации.
	Deadline *time.Time
}

// RequestResponseUseCase запрашивает ответ второй стороны с дедлайном.
// Просроченный дедлайн подбирает фоновый обходчик и эскалирует спор.
type RequestResponseUseCase struct {
	disputeRepo repository.DisputeRepository
	emitter     event.Emitter
	defaultTTL  time.Duration
}

func NewRequestResponseUseCase(disputeRepo repository.DisputeRepository, emitter event.Emitter, defaultTTL time.Duration) *RequestResponseUseCase {
	return &RequestResponseUseCase{
		disputeRepo: disputeRepo,
		emitter:     emitter,
		defaultTTL:  defaultTTL,
	}
}

func (uc *RequestResponseUseCase) Execute(ctx context.Context, input RequestResponseInput) (*entity.Dispute, error) {
	if !input.Actor.IsAdmin() {
		return nil, apperror.New(apperror.ErrCodeForbidden, "запрашивать ответ могут только администраторы")
	}

	dispute, err := uc.disputeRepo.FindByID(ctx, input.DisputeID)
	if err != nil {
		return nil, err
	}

	if dispute.AssignedAdminID == nil || *dispute.AssignedAdminID != input.Actor.ID {
		return nil, apperror.New(apperror.ErrCodeForbidden, "спор ведёт другой администратор")
	}

	deadline := input.Deadline
	if deadline == nil {
		d := time.Now().Add(uc.defaultTTL)
		deadline = &d
	} else if deadline.Before(time.Now()) {
		return nil, apperror.New(apperror.ErrCodeValidation, "срок ответа не может быть в прошлом")
	}

	previousStatus := string(dispute.Status)
	if err := dispute.RequestResponse(deadline); err != nil {
		return nil, err
	}

	if err := uc.disputeRepo.Update(ctx, dispute, previousStatus); err != nil {
		return nil, err
	}

	uc.emitter.Emit(ctx, event.Event{
		Type:       event.TypeDisputeResponseRequested,
		ActorID:    input.Actor.ID,
		Recipients: []uuid.UUID{dispute.ResponderID},
		Data: map[string]any{
			"dispute_id": dispute.ID.String(),
			"deadline":   deadline.Format(time.RFC3339),
		},
	})

	return dispute, nil
}
