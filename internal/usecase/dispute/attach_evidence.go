package dispute

import (
	"context"

	"github.com/google/uuid"

	"github.com/ignatzorin/consulting-backend/internal/domain/entity"
	"github.com/ignatzorin/consulting-backend/internal/domain/repository"
	"github.com/ignatzorin/consulting-backend/internal/domain/valueobject"
	"github.com/ignatzorin/consulting-backend/internal/pkg/apperror"
)

// EvidenceStorage сохраняет файл доказательства и возвращает путь
// и определённый по содержимому тип.
type EvidenceStorage interface {
	Save(ctx context.Context, disputeID uuid.UUID, fileName string, data []byte) (path string, contentType string, err error)
}

type AttachEvidenceInput struct {
	Actor     valueobject.Actor
	DisputeID uuid.UUID
	FileName  string
	Data      []byte
}

// AttachEvidenceUseCase принимает доказательство по активному спору.
type AttachEvidenceUseCase struct {
	disputeRepo repository.DisputeRepository
	storage     EvidenceStorage
}

func NewAttachEvidenceUseCase(disputeRepo repository.DisputeRepository, storage EvidenceStorage) *AttachEvidenceUseCase {
	return &AttachEvidenceUseCase{disputeRepo: disputeRepo, storage: storage}
}

func (uc *AttachEvidenceUseCase) Execute(ctx context.Context, input AttachEvidenceInput) (*entity.DisputeEvidence, error) {
	dispute, err := uc.disputeRepo.FindByID(ctx, input.DisputeID)
	if err != nil {
		return nil, err
	}

	if !input.Actor.IsAdmin() && !dispute.IsParty(input.Actor.ID) {
		return nil, apperror.New(apperror.ErrCodeForbidden, "прикладывать доказательства могут только участники спора")
	}

	if len(input.Data) == 0 {
		return nil, apperror.New(apperror.ErrCodeValidation, "файл доказательства пуст")
	}

	// Правило статуса проверяется до записи файла в хранилище.
	if !dispute.Status.AllowsEvidence() {
		return nil, apperror.New(apperror.ErrCodeBusinessRule, "доказательства принимаются только по активному спору")
	}

	path, contentType, err := uc.storage.Save(ctx, dispute.ID, input.FileName, input.Data)
	if err != nil {
		return nil, err
	}

	ev, err := dispute.AttachEvidence(input.Actor.ID, input.FileName, path, contentType)
	if err != nil {
		return nil, err
	}

	if err := uc.disputeRepo.AppendEvidence(ctx, ev); err != nil {
		return nil, err
	}

	return ev, nil
}
