package dispute

import (
	"context"

	"github.com/google/uuid"

	"github.com/ignatzorin/consulting-backend/internal/domain/entity"
	"github.com/ignatzorin/consulting-backend/internal/domain/repository"
	"github.com/ignatzorin/consulting-backend/internal/domain/valueobject"
	"github.com/ignatzorin/consulting-backend/internal/pkg/apperror"
)

type AcknowledgeResponseInput struct {
	Actor     valueobject.Actor
	DisputeID uuid.UUID
}

// AcknowledgeResponseUseCase возвращает спор из ожидания ответа в работу
// администратора и снимает дедлайн.
type AcknowledgeResponseUseCase struct {
	disputeRepo repository.DisputeRepository
}

func NewAcknowledgeResponseUseCase(disputeRepo repository.DisputeRepository) *AcknowledgeResponseUseCase {
	return &AcknowledgeResponseUseCase{disputeRepo: disputeRepo}
}

func (uc *AcknowledgeResponseUseCase) Execute(ctx context.Context, input AcknowledgeResponseInput) (*entity.Dispute, error) {
	if !input.Actor.IsAdmin() {
		return nil, apperror.New(apperror.ErrCodeForbidden, "подтверждать ответ могут только администраторы")
	}

	dispute, err := uc.disputeRepo.FindByID(ctx, input.DisputeID)
	if err != nil {
		return nil, err
	}

	previousStatus := string(dispute.Status)
	if err := dispute.AcknowledgeResponse(); err != nil {
		return nil, err
	}

	if err := uc.disputeRepo.Update(ctx, dispute, previousStatus); err != nil {
		return nil, err
	}

	return dispute, nil
}
