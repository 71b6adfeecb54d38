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

type AddMessageInput struct {
	Actor     valueobject.Actor
	DisputeID uuid.UUID
	Body      string
	// Internal — внутренняя заметка, видимая только администраторам.
	Internal bool
}

// AddMessageUseCase добавляет сообщение в журнал спора. Стороны пишут только
// по активному спору; администратор оставляет внутренние заметки до закрытия.
type AddMessageUseCase struct {
	disputeRepo repository.DisputeRepository
}

func NewAddMessageUseCase(disputeRepo repository.DisputeRepository) *AddMessageUseCase {
	return &AddMessageUseCase{disputeRepo: disputeRepo}
}

func (uc *AddMessageUseCase) Execute(ctx context.Context, input AddMessageInput) (*entity.DisputeMessage, error) {
	dispute, err := uc.disputeRepo.FindByID(ctx, input.DisputeID)
	if err != nil {
		return nil, err
	}

	if input.Internal && !input.Actor.IsAdmin() {
		return nil, apperror.New(apperror.ErrCodeForbidden, "внутренние заметки доступны только администраторам")
	}
	if !input.Actor.IsAdmin() && !dispute.IsParty(input.Actor.ID) {
		return nil, apperror.New(apperror.ErrCodeForbidden, "писать в спор могут только его участники")
	}

	if err := validation.ValidateMessageBody(input.Body); err != nil {
		return nil, apperror.New(apperror.ErrCodeValidation, err.Error())
	}

	visibility := valueobject.VisibilityParty
	if input.Internal {
		visibility = valueobject.VisibilityInternal
	}

	msg, err := dispute.AppendMessage(input.Actor.ID, input.Body, visibility)
	if err != nil {
		return nil, err
	}

	if err := uc.disputeRepo.AppendMessage(ctx, msg); err != nil {
		return nil, err
	}

	return msg, nil
}
