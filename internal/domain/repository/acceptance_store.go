package repository

import (
	"context"

	"github.com/google/uuid"

	"github.com/ignatzorin/consulting-backend/internal/domain/entity"
)

// AcceptanceTx — операции, доступные внутри транзакции принятия предложения.
// Все записи попадают в одну транзакцию и коммитятся или откатываются вместе.
type AcceptanceTx interface {
	// LiveProposals возвращает все живые предложения проекта, прочитанные
	// внутри транзакции.
	LiveProposals(ctx context.Context, projectID uuid.UUID) ([]*entity.Proposal, error)
	UpdateProject(ctx context.Context, project *entity.Project) error
	UpdateProposal(ctx context.Context, proposal *entity.Proposal) error
}

// AcceptanceStore открывает транзакцию, захватывая эксклюзивную блокировку
// строки проекта. Проект перечитывается уже под блокировкой и передаётся в fn —
// это обязательная защита от гонки двух одновременных принятий. Ожидание
// блокировки ограничено по времени; таймаут поднимается как повторяемый
// конфликт без каких-либо частичных записей.
type AcceptanceStore interface {
	WithProjectLock(ctx context.Context, projectID uuid.UUID, fn func(tx AcceptanceTx, project *entity.Project) error) error
}
