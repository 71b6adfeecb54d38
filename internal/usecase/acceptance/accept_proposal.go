// Package acceptance реализует транзакцию принятия предложения: единственную
// операцию, которая атомарно меняет проект и все его предложения сразу.
package acceptance

import (
	"context"

	"github.com/google/uuid"

	"github.com/ignatzorin/consulting-backend/internal/domain/entity"
	"github.com/ignatzorin/consulting-backend/internal/domain/event"
	"github.com/ignatzorin/consulting-backend/internal/domain/repository"
	"github.com/ignatzorin/consulting-backend/internal/domain/valueobject"
	"github.com/ignatzorin/consulting-backend/internal/pkg/apperror"
)

// rejectionReason проставляется всем проигравшим предложениям.
const rejectionReason = "принято другое предложение"

type AcceptProposalInput struct {
	Actor      valueobject.Actor
	ProjectID  uuid.UUID
	ProposalID uuid.UUID
}

type AcceptProposalResult struct {
	Project  *entity.Project
	Accepted *entity.Proposal
	Rejected []*entity.Proposal
}

// AcceptProposalUseCase принимает предложение под эксклюзивной блокировкой
// строки проекта. Внутри одной транзакции: целевое предложение становится
// accepted, остальные живые — rejected, проект переходит в in_progress.
// Либо всё, либо ничего. События уходят только после коммита.
type AcceptProposalUseCase struct {
	store       repository.AcceptanceStore
	projectRepo repository.ProjectRepository
	emitter     event.Emitter
}

func NewAcceptProposalUseCase(store repository.AcceptanceStore, projectRepo repository.ProjectRepository, emitter event.Emitter) *AcceptProposalUseCase {
	return &AcceptProposalUseCase{
		store:       store,
		projectRepo: projectRepo,
		emitter:     emitter,
	}
}

func (uc *AcceptProposalUseCase) Execute(ctx context.Context, input AcceptProposalInput) (*AcceptProposalResult, error) {
	// Дешёвая предварительная проверка прав до захвата блокировки.
	// Авторитетное состояние всё равно перечитывается под блокировкой.
	preliminary, err := uc.projectRepo.FindByID(ctx, input.ProjectID)
	if err != nil {
		return nil, err
	}
	if !preliminary.IsOwnedBy(input.Actor.ID) && !input.Actor.IsAdmin() {
		return nil, apperror.New(apperror.ErrCodeForbidden, "принимать предложения может только владелец проекта")
	}

	result := &AcceptProposalResult{}

	err = uc.store.WithProjectLock(ctx, input.ProjectID, func(tx repository.AcceptanceTx, project *entity.Project) error {
		// Проигравший гонку принятия получает конфликт: проект уже не открыт,
		// значит другое предложение было принято (или проект отменён) раньше.
		if project.Status != valueobject.ProjectStatusOpen {
			return apperror.New(apperror.ErrCodeConflict, "по проекту уже принято предложение")
		}

		proposals, err := tx.LiveProposals(ctx, project.ID)
		if err != nil {
			return err
		}

		var target *entity.Proposal
		for _, p := range proposals {
			if p.ID == input.ProposalID {
				target = p
				break
			}
		}
		if target == nil {
			return apperror.ErrProposalNotFound
		}
		if !target.Status.IsAwaitingDecision() {
			return apperror.New(apperror.ErrCodeInvalidTransition, "принять можно только поданное или рассматриваемое предложение")
		}

		if err := target.Accept(); err != nil {
			return err
		}
		if err := tx.UpdateProposal(ctx, target); err != nil {
			return err
		}

		// Остальные живые предложения отклоняются той же транзакцией.
		rejected := make([]*entity.Proposal, 0, len(proposals)-1)
		for _, p := range proposals {
			if p.ID == target.ID || !p.Status.IsAwaitingDecision() {
				continue
			}
			if err := p.Reject(rejectionReason); err != nil {
				return err
			}
			if err := tx.UpdateProposal(ctx, p); err != nil {
				return err
			}
			rejected = append(rejected, p)
		}

		if err := project.StartWork(); err != nil {
			return err
		}
		if err := tx.UpdateProject(ctx, project); err != nil {
			return err
		}

		result.Project = project
		result.Accepted = target
		result.Rejected = rejected
		return nil
	})
	if err != nil {
		return nil, err
	}

	uc.emitter.Emit(ctx, event.Event{
		Type:       event.TypeProposalAccepted,
		ActorID:    input.Actor.ID,
		Recipients: []uuid.UUID{result.Accepted.ConsultantID},
		Data: map[string]any{
			"proposal_id": result.Accepted.ID.String(),
			"project_id":  result.Project.ID.String(),
		},
	})
	for _, p := range result.Rejected {
		uc.emitter.Emit(ctx, event.Event{
			Type:       event.TypeProposalRejected,
			ActorID:    input.Actor.ID,
			Recipients: []uuid.UUID{p.ConsultantID},
			Data: map[string]any{
				"proposal_id": p.ID.String(),
				"project_id":  result.Project.ID.String(),
				"reason":      rejectionReason,
			},
		})
	}

	return result, nil
}
