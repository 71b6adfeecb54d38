package dispute

import (
	"context"

	"github.com/google/uuid"

	"github.com/ignatzorin/consulting-backend/internal/domain/entity"
	"github.com/ignatzorin/consulting-backend/internal/domain/repository"
	"github.com/ignatzorin/consulting-backend/internal/domain/valueobject"
	"github.com/ignatzorin/consulting-backend/internal/pkg/apperror"
)

// ReadDisputesUseCase — чтение споров с фильтрацией журнала по роли.
type ReadDisputesUseCase struct {
	disputeRepo repository.DisputeRepository
}

func NewReadDisputesUseCase(disputeRepo repository.DisputeRepository) *ReadDisputesUseCase {
	return &ReadDisputesUseCase{disputeRepo: disputeRepo}
}

// Get возвращает спор. Внутренние заметки отфильтровываются для сторон.
func (uc *ReadDisputesUseCase) Get(ctx context.Context, actor valueobject.Actor, disputeID uuid.UUID) (*entity.Dispute, error) {
	dispute, err := uc.disputeRepo.FindByID(ctx, disputeID)
	if err != nil {
		return nil, err
	}

	if !actor.IsAdmin() && !dispute.IsParty(actor.ID) {
		return nil, apperror.ErrDisputeNotFound
	}

	dispute.Messages = dispute.VisibleMessages(actor)
	return dispute, nil
}

// ByParticipant возвращает споры, где пользователь — сторона или ведущий администратор.
func (uc *ReadDisputesUseCase) ByParticipant(ctx context.Context, actor valueobject.Actor, limit, offset int) ([]*entity.Dispute, error) {
	return uc.disputeRepo.FindByParticipant(ctx, actor.ID, limit, offset)
}

// Unassigned возвращает очередь неназначенных споров для администраторов.
func (uc *ReadDisputesUseCase) Unassigned(ctx context.Context, actor valueobject.Actor, limit, offset int) ([]*entity.Dispute, error) {
	if !actor.IsAdmin() {
		return nil, apperror.New(apperror.ErrCodeForbidden, "очередь споров доступна только администраторам")
	}
	return uc.disputeRepo.ListUnassigned(ctx, limit, offset)
}
