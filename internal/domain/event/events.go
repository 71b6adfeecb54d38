package event

import (
	"context"

	"github.com/google/uuid"
)

type Type string

const (
	TypeProjectPublished Type = "project.published"
	TypeProjectCancelled Type = "project.cancelled"
	TypeProjectCompleted Type = "project.completed"

	TypeProposalSubmitted Type = "proposal.submitted"
	TypeProposalWithdrawn Type = "proposal.withdrawn"
	TypeProposalAccepted  Type = "proposal.accepted"
	TypeProposalRejected  Type = "proposal.rejected"

	TypeDisputeOpened            Type = "dispute.opened"
	TypeDisputeAssigned          Type = "dispute.assigned"
	TypeDisputeResponseRequested Type = "dispute.response_requested"
	TypeDisputeResolved          Type = "dispute.resolved"
	TypeDisputeEscalated         Type = "dispute.escalated"
	TypeDisputeClosed            Type = "dispute.closed"
)

// Event — доменное событие жизненного цикла. Несёт идентификаторы сущностей
// и инициатора, достаточные для уведомлений и аудита.
type Event struct {
	Type    Type
	ActorID uuid.UUID
	// Recipients — пользователи, которым доставляется уведомление.
	Recipients []uuid.UUID
	Data       map[string]any
}

// Emitter — внешний коллаборатор: доставка после коммита, at-least-once,
// без гарантий порядка. Потребители обязаны переживать дубликаты.
// Ошибки доставки никогда не влияют на бизнес-транзакцию.
type Emitter interface {
	Emit(ctx context.Context, e Event)
}

// NopEmitter используется там, где события не нужны (тесты, утилиты).
type NopEmitter struct{}

func (NopEmitter) Emit(ctx context.Context, e Event) {}
