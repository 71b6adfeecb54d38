package dispute

import (
	"context"

	"github.com/google/uuid"

	"github.com/ignatzorin/consulting-backend/internal/domain/entity"
	"github.com/ignatzorin/consulting-backend/internal/domain/repository"
	"github.com/ignatzorin/consulting-backend/internal/domain/valueobject"
	"github.com/ignatzorin/consulting-backend/internal/pkg/apperror"
	"github.com/ignatzorin/consulting-backend/internal/validation"
)

type SubmitResponseInput struct {
	Actor     valueobject.Actor
	DisputeID uuid.UUID
	Body      string
}

// SubmitResponseUseCase — ответ стороны на запрос администратора. Ответ
// добавляется в журнал, статус не меняется: спор возвращается администратору
// только явным подтверждением (AcknowledgeResponse).
type SubmitResponseUseCase struct {
	disputeRepo repository.DisputeRepository
}

func NewSubmitResponseUseCase(disputeRepo repository.DisputeRepository) *SubmitResponseUseCase {
	return &SubmitResponseUseCase{disputeRepo: disputeRepo}
}

func (uc *SubmitResponseUseCase) Execute(ctx context.Context, input SubmitResponseInput) (*entity.DisputeMessage, error) {
	dispute, err := uc.disputeRepo.FindByID(ctx, input.DisputeID)
	if err != nil {
		return nil, err
	}

	if dispute.Status != valueobject.DisputeStatusAwaitingResponse {
		return nil, apperror.New(apperror.ErrCodeBusinessRule, "спор не ожидает ответа")
	}
	if dispute.ResponderID != input.Actor.ID {
		return nil, apperror.New(apperror.ErrCodeForbidden, "ответ ожидается от другой стороны")
	}

	if err := validation.ValidateMessageBody(input.Body); err != nil {
		return nil, apperror.New(apperror.ErrCodeValidation, err.Error())
	}

	msg, err := dispute.AppendMessage(input.Actor.ID, input.Body, valueobject.VisibilityParty)
	if err != nil {
		return nil, err
	}

	if err := uc.disputeRepo.AppendMessage(ctx, msg); err != nil {
		return nil, err
	}

	return msg, nil
}
