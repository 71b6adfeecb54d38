package repository

import (
	"context"

	"github.com/google/uuid"

	"github.com/ignatzorin/consulting-backend/internal/domain/entity"
)

type ProjectRepository interface {
	Create(ctx context.Context, project *entity.Project) error
	// Update записывает проект с предусловием по статусу: строка обновляется,
	// только если статус в базе совпадает с ожидаемым. При несовпадении
	// возвращается конфликт — это защита одиночных переходов без блокировок.
	Update(ctx context.Context, project *entity.Project, expectedStatus string) error
	SoftDelete(ctx context.Context, id uuid.UUID, clientID uuid.UUID) error
	FindByID(ctx context.Context, id uuid.UUID) (*entity.Project, error)
	FindByClientID(ctx context.Context, clientID uuid.UUID) ([]*entity.Project, error)
	List(ctx context.Context, filter ProjectFilter) ([]*entity.Project, int, error)
}

type ProjectFilter struct {
	Status   string
	Category string
	Search   string
	Limit    int
	Offset   int
}
