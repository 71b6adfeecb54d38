package dto

import "time"

// RegisterRequest — запрос регистрации пользователя.
type RegisterRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Username string `json:"username" binding:"required,min=3,max=50"`
	Password string `json:"password" binding:"required,min=8"`
	Role     string `json:"role" binding:"required,oneof=client consultant"`
}

// LoginRequest — запрос входа.
type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

// RefreshRequest — запрос ротации токенов.
type RefreshRequest struct {
	RefreshToken string `json:"refresh_token" binding:"required"`
}

// CreateProjectRequest — создание проекта.
type CreateProjectRequest struct {
	Title       string     `json:"title" binding:"required"`
	Description string     `json:"description" binding:"required"`
	Category    string     `json:"category"`
	BudgetMin   float64    `json:"budget_min" binding:"required,gt=0"`
	BudgetMax   float64    `json:"budget_max" binding:"required,gt=0"`
	DeadlineAt  *time.Time `json:"deadline_at"`
}

// UpdateProjectRequest — частичное обновление проекта.
type UpdateProjectRequest struct {
	Title       string     `json:"title"`
	Description string     `json:"description"`
	Category    string     `json:"category"`
	BudgetMin   float64    `json:"budget_min"`
	BudgetMax   float64    `json:"budget_max"`
	DeadlineAt  *time.Time `json:"deadline_at"`
}

// SubmitProposalRequest — подача предложения по проекту.
type SubmitProposalRequest struct {
	CoverLetter           string     `json:"cover_letter" binding:"required"`
	ProposedAmount        float64    `json:"proposed_amount" binding:"required,gt=0"`
	EstimatedDurationDays int        `json:"estimated_duration_days" binding:"required,gt=0"`
	DeliveryDate          *time.Time `json:"delivery_date"`
}

// RejectProposalRequest — отклонение предложения с причиной.
type RejectProposalRequest struct {
	Reason string `json:"reason" binding:"required"`
}

// OpenDisputeRequest — открытие спора по проекту. Вторая сторона
// определяется по сделке, поэтому в запросе только причина.
type OpenDisputeRequest struct {
	Reason string `json:"reason" binding:"required"`
}

// RequestResponseRequest — запрос ответа второй стороны спора.
type RequestResponseRequest struct {
	Deadline *time.Time `json:"deadline"`
}

// DisputeMessageRequest — сообщение или внутренняя заметка по спору.
type DisputeMessageRequest struct {
	Body     string `json:"body" binding:"required"`
	Internal bool   `json:"internal"`
}

// ResolveDisputeRequest — решение администратора по спору.
type ResolveDisputeRequest struct {
	Resolution string `json:"resolution" binding:"required"`
}
