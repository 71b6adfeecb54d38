package dto

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"

	"github.com/ignatzorin/consulting-backend/internal/domain/entity"
)

// ErrorResponse — стандартный ответ с ошибкой.
type ErrorResponse struct {
	Error string `json:"error"`
	Code  string `json:"code,omitempty"`
}

// SuccessResponse — стандартный успешный ответ.
type SuccessResponse struct {
	Message string      `json:"message,omitempty"`
	Data    interface{} `json:"data,omitempty"`
}

// UserResponse — публичное представление пользователя.
type UserResponse struct {
	ID        uuid.UUID `json:"id"`
	Email     string    `json:"email"`
	Username  string    `json:"username"`
	Role      string    `json:"role"`
	CreatedAt time.Time `json:"created_at"`
}

func FromUser(u *entity.User) UserResponse {
	return UserResponse{
		ID:        u.ID,
		Email:     u.Email,
		Username:  u.Username,
		Role:      string(u.Role),
		CreatedAt: u.CreatedAt,
	}
}

// ProjectResponse — представление проекта.
type ProjectResponse struct {
	ID          uuid.UUID  `json:"id"`
	ClientID    uuid.UUID  `json:"client_id"`
	Title       string     `json:"title"`
	Description string     `json:"description"`
	Category    string     `json:"category,omitempty"`
	BudgetMin   float64    `json:"budget_min"`
	BudgetMax   float64    `json:"budget_max"`
	Status      string     `json:"status"`
	DeadlineAt  *time.Time `json:"deadline_at,omitempty"`
	PublishedAt *time.Time `json:"published_at,omitempty"`
	CompletedAt *time.Time `json:"completed_at,omitempty"`
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at"`
}

func FromProject(p *entity.Project) ProjectResponse {
	return ProjectResponse{
		ID:          p.ID,
		ClientID:    p.ClientID,
		Title:       p.Title,
		Description: p.Description,
		Category:    p.Category,
		BudgetMin:   p.Budget.Min.Amount,
		BudgetMax:   p.Budget.Max.Amount,
		Status:      string(p.Status),
		DeadlineAt:  p.DeadlineAt,
		PublishedAt: p.PublishedAt,
		CompletedAt: p.CompletedAt,
		CreatedAt:   p.CreatedAt,
		UpdatedAt:   p.UpdatedAt,
	}
}

func FromProjects(projects []*entity.Project) []ProjectResponse {
	out := make([]ProjectResponse, len(projects))
	for i, p := range projects {
		out[i] = FromProject(p)
	}
	return out
}

// ProjectListResponse — страница проектов с общим количеством.
type ProjectListResponse struct {
	Projects []ProjectResponse `json:"projects"`
	Total    int               `json:"total"`
}

// ProposalResponse — представление предложения.
type ProposalResponse struct {
	ID                    uuid.UUID  `json:"id"`
	ProjectID             uuid.UUID  `json:"project_id"`
	ConsultantID          uuid.UUID  `json:"consultant_id"`
	CoverLetter           string     `json:"cover_letter"`
	ProposedAmount        float64    `json:"proposed_amount"`
	EstimatedDurationDays int        `json:"estimated_duration_days"`
	DeliveryDate          *time.Time `json:"delivery_date,omitempty"`
	Status                string     `json:"status"`
	SubmittedAt           *time.Time `json:"submitted_at,omitempty"`
	ReviewedAt            *time.Time `json:"reviewed_at,omitempty"`
	RejectionReason       *string    `json:"rejection_reason,omitempty"`
	CreatedAt             time.Time  `json:"created_at"`
}

func FromProposal(p *entity.Proposal) ProposalResponse {
	return ProposalResponse{
		ID:                    p.ID,
		ProjectID:             p.ProjectID,
		ConsultantID:          p.ConsultantID,
		CoverLetter:           p.CoverLetter,
		ProposedAmount:        p.ProposedAmount,
		EstimatedDurationDays: p.EstimatedDurationDays,
		DeliveryDate:          p.DeliveryDate,
		Status:                string(p.Status),
		SubmittedAt:           p.SubmittedAt,
		ReviewedAt:            p.ReviewedAt,
		RejectionReason:       p.RejectionReason,
		CreatedAt:             p.CreatedAt,
	}
}

func FromProposals(proposals []*entity.Proposal) []ProposalResponse {
	out := make([]ProposalResponse, len(proposals))
	for i, p := range proposals {
		out[i] = FromProposal(p)
	}
	return out
}

// AcceptProposalResponse — результат принятия предложения.
type AcceptProposalResponse struct {
	Project  ProjectResponse    `json:"project"`
	Accepted ProposalResponse   `json:"accepted"`
	Rejected []ProposalResponse `json:"rejected"`
}

// DisputeMessageResponse — сообщение журнала спора.
type DisputeMessageResponse struct {
	ID         uuid.UUID `json:"id"`
	AuthorID   uuid.UUID `json:"author_id"`
	Body       string    `json:"body"`
	Visibility string    `json:"visibility"`
	CreatedAt  time.Time `json:"created_at"`
}

// DisputeEvidenceResponse — приложенное доказательство.
type DisputeEvidenceResponse struct {
	ID          uuid.UUID `json:"id"`
	UploaderID  uuid.UUID `json:"uploader_id"`
	FileName    string    `json:"file_name"`
	ContentType string    `json:"content_type"`
	CreatedAt   time.Time `json:"created_at"`
}

// DisputeResponse — представление спора.
type DisputeResponse struct {
	ID               uuid.UUID                 `json:"id"`
	ProjectID        uuid.UUID                 `json:"project_id"`
	OpenerID         uuid.UUID                 `json:"opener_id"`
	ResponderID      uuid.UUID                 `json:"responder_id"`
	Reason           string                    `json:"reason"`
	Status           string                    `json:"status"`
	AssignedAdminID  *uuid.UUID                `json:"assigned_admin_id,omitempty"`
	ResponseDeadline *time.Time                `json:"response_deadline,omitempty"`
	Resolution       *string                   `json:"resolution,omitempty"`
	CreatedAt        time.Time                 `json:"created_at"`
	ResolvedAt       *time.Time                `json:"resolved_at,omitempty"`
	ClosedAt         *time.Time                `json:"closed_at,omitempty"`
	Messages         []DisputeMessageResponse  `json:"messages,omitempty"`
	Evidence         []DisputeEvidenceResponse `json:"evidence,omitempty"`
}

func FromDispute(d *entity.Dispute) DisputeResponse {
	resp := DisputeResponse{
		ID:               d.ID,
		ProjectID:        d.ProjectID,
		OpenerID:         d.OpenerID,
		ResponderID:      d.ResponderID,
		Reason:           d.Reason,
		Status:           string(d.Status),
		AssignedAdminID:  d.AssignedAdminID,
		ResponseDeadline: d.ResponseDeadline,
		Resolution:       d.Resolution,
		CreatedAt:        d.CreatedAt,
		ResolvedAt:       d.ResolvedAt,
		ClosedAt:         d.ClosedAt,
	}

	for _, m := range d.Messages {
		resp.Messages = append(resp.Messages, DisputeMessageResponse{
			ID:         m.ID,
			AuthorID:   m.AuthorID,
			Body:       m.Body,
			Visibility: string(m.Visibility),
			CreatedAt:  m.CreatedAt,
		})
	}
	for _, e := range d.Evidence {
		resp.Evidence = append(resp.Evidence, DisputeEvidenceResponse{
			ID:          e.ID,
			UploaderID:  e.UploaderID,
			FileName:    e.FileName,
			ContentType: e.ContentType,
			CreatedAt:   e.CreatedAt,
		})
	}

	return resp
}

func FromDisputes(disputes []*entity.Dispute) []DisputeResponse {
	out := make([]DisputeResponse, len(disputes))
	for i, d := range disputes {
		out[i] = FromDispute(d)
	}
	return out
}

// NotificationResponse — уведомление пользователя.
type NotificationResponse struct {
	ID        uuid.UUID       `json:"id"`
	Payload   json.RawMessage `json:"payload"`
	IsRead    bool            `json:"is_read"`
	CreatedAt time.Time       `json:"created_at"`
}

func FromNotifications(notifications []entity.Notification) []NotificationResponse {
	out := make([]NotificationResponse, len(notifications))
	for i, n := range notifications {
		out[i] = NotificationResponse{
			ID:        n.ID,
			Payload:   n.Payload,
			IsRead:    n.IsRead,
			CreatedAt: n.CreatedAt,
		}
	}
	return out
}
