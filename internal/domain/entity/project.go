package entity

import (
	"time"

	"github.com/google/uuid"

	"github.com/ignatzorin/consulting-backend/internal/domain/valueobject"
	"github.com/ignatzorin/consulting-backend/internal/pkg/apperror"
)

// Project — инженерный проект, размещённый клиентом.
// Статус является единственным источником истины о допустимых операциях.
type Project struct {
	ID          uuid.UUID
	ClientID    uuid.UUID
	Title       string
	Description string
	Category    string
	Budget      valueobject.Budget
	Status      valueobject.ProjectStatus
	DeadlineAt  *time.Time
	PublishedAt *time.Time
	CompletedAt *time.Time
	CreatedAt   time.Time
	UpdatedAt   time.Time
	// DeletedAt — мягкое удаление: проект никогда не удаляется физически,
	// пока на него ссылаются предложения.
	DeletedAt *time.Time
}

func NewProject(clientID uuid.UUID, title, description, category string, budgetMin, budgetMax float64, deadline *time.Time) (*Project, error) {
	if title == "" {
		return nil, apperror.New(apperror.ErrCodeValidation, "название проекта обязательно")
	}
	if description == "" {
		return nil, apperror.New(apperror.ErrCodeValidation, "описание проекта обязательно")
	}

	budget, err := valueobject.NewBudget(budgetMin, budgetMax)
	if err != nil {
		return nil, err
	}

	if deadline != nil && deadline.Before(time.Now()) {
		return nil, apperror.New(apperror.ErrCodeValidation, "дедлайн не может быть в прошлом")
	}

	return &Project{
		ID:          uuid.New(),
		ClientID:    clientID,
		Title:       title,
		Description: description,
		Category:    category,
		Budget:      budget,
		Status:      valueobject.ProjectStatusDraft,
		DeadlineAt:  deadline,
		CreatedAt:   time.Now(),
		UpdatedAt:   time.Now(),
	}, nil
}

// Publish переводит черновик в open и ставит отметку публикации.
func (p *Project) Publish() error {
	if !p.Status.CanTransitionTo(valueobject.ProjectStatusOpen) {
		return apperror.New(apperror.ErrCodeInvalidTransition, "опубликовать можно только черновик проекта")
	}
	now := time.Now()
	p.Status = valueobject.ProjectStatusOpen
	p.PublishedAt = &now
	p.UpdatedAt = now
	return nil
}

// StartWork — open → in_progress. Вызывается только координатором принятия:
// проект переходит в работу строго вместе с принятием предложения.
func (p *Project) StartWork() error {
	if !p.Status.CanTransitionTo(valueobject.ProjectStatusInProgress) {
		return apperror.New(apperror.ErrCodeInvalidTransition, "проект не открыт для принятия предложений")
	}
	p.Status = valueobject.ProjectStatusInProgress
	p.UpdatedAt = time.Now()
	return nil
}

// Complete завершает активный проект и открывает путь к отзывам и спорам.
func (p *Project) Complete() error {
	if !p.Status.CanTransitionTo(valueobject.ProjectStatusCompleted) {
		return apperror.New(apperror.ErrCodeInvalidTransition, "завершить можно только проект в работе")
	}
	now := time.Now()
	p.Status = valueobject.ProjectStatusCompleted
	p.CompletedAt = &now
	p.UpdatedAt = now
	return nil
}

// Cancel отменяет проект. Активный проект (in_progress) отменить нельзя —
// выход из активного взаимодействия только через спор.
func (p *Project) Cancel() error {
	if !p.Status.CanTransitionTo(valueobject.ProjectStatusCancelled) {
		return apperror.New(apperror.ErrCodeInvalidTransition, "нельзя отменить проект в текущем статусе")
	}
	p.Status = valueobject.ProjectStatusCancelled
	p.UpdatedAt = time.Now()
	return nil
}

func (p *Project) Update(title, description, category string, budgetMin, budgetMax float64, deadline *time.Time) error {
	if p.Status != valueobject.ProjectStatusDraft && p.Status != valueobject.ProjectStatusOpen {
		return apperror.New(apperror.ErrCodeBusinessRule, "редактировать можно только черновик или открытый проект")
	}

	if title != "" {
		p.Title = title
	}
	if description != "" {
		p.Description = description
	}
	if category != "" {
		p.Category = category
	}

	if budgetMin > 0 || budgetMax > 0 {
		budget, err := valueobject.NewBudget(budgetMin, budgetMax)
		if err != nil {
			return err
		}
		p.Budget = budget
	}

	if deadline != nil {
		if deadline.Before(time.Now()) {
			return apperror.New(apperror.ErrCodeValidation, "дедлайн не может быть в прошлом")
		}
		p.DeadlineAt = deadline
	}

	p.UpdatedAt = time.Now()
	return nil
}

// SoftDelete помечает проект удалённым, не трогая связанные предложения.
func (p *Project) SoftDelete() {
	now := time.Now()
	p.DeletedAt = &now
	p.UpdatedAt = now
}

func (p *Project) IsDeleted() bool {
	return p.DeletedAt != nil
}

func (p *Project) IsOwnedBy(userID uuid.UUID) bool {
	return p.ClientID == userID
}

// AcceptsDisputes — спор можно открыть только по активному или завершённому проекту.
func (p *Project) AcceptsDisputes() bool {
	return p.Status == valueobject.ProjectStatusInProgress || p.Status == valueobject.ProjectStatusCompleted
}
