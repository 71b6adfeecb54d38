package entity

import (
	"time"

	"github.com/google/uuid"

	"github.com/ignatzorin/consulting-backend/internal/domain/valueobject"
	"github.com/ignatzorin/consulting-backend/internal/pkg/apperror"
)

// Proposal — отклик консультанта на проект. Пара (проект, консультант)
// уникальна, пока предложение живое (не отозвано и не отклонено).
type Proposal struct {
	ID                    uuid.UUID
	ProjectID             uuid.UUID
	ConsultantID          uuid.UUID
	CoverLetter           string
	ProposedAmount        float64
	EstimatedDurationDays int
	DeliveryDate          *time.Time
	Status                valueobject.ProposalStatus
	SubmittedAt           *time.Time
	ReviewedAt            *time.Time
	RejectionReason       *string
	CreatedAt             time.Time
	UpdatedAt             time.Time
}

func NewProposal(projectID, consultantID uuid.UUID, coverLetter string, proposedAmount float64, durationDays int, deliveryDate *time.Time) (*Proposal, error) {
	if coverLetter == "" {
		return nil, apperror.New(apperror.ErrCodeValidation, "сопроводительное письмо обязательно")
	}
	if proposedAmount <= 0 {
		return nil, apperror.New(apperror.ErrCodeValidation, "предложенная сумма должна быть положительной")
	}
	if durationDays <= 0 {
		return nil, apperror.New(apperror.ErrCodeValidation, "оценка длительности должна быть положительной")
	}
	if deliveryDate != nil && deliveryDate.Before(time.Now()) {
		return nil, apperror.New(apperror.ErrCodeValidation, "дата сдачи не может быть в прошлом")
	}

	return &Proposal{
		ID:                    uuid.New(),
		ProjectID:             projectID,
		ConsultantID:          consultantID,
		CoverLetter:           coverLetter,
		ProposedAmount:        proposedAmount,
		EstimatedDurationDays: durationDays,
		DeliveryDate:          deliveryDate,
		Status:                valueobject.ProposalStatusDraft,
		CreatedAt:             time.Now(),
		UpdatedAt:             time.Now(),
	}, nil
}

// Submit переводит черновик в submitted и ставит отметку подачи.
func (p *Proposal) Submit() error {
	if !p.Status.CanTransitionTo(valueobject.ProposalStatusSubmitted) {
		return apperror.New(apperror.ErrCodeInvalidTransition, "подать можно только черновик предложения")
	}
	now := time.Now()
	p.Status = valueobject.ProposalStatusSubmitted
	p.SubmittedAt = &now
	p.UpdatedAt = now
	return nil
}

// MarkUnderReview — клиент взял предложение на рассмотрение.
func (p *Proposal) MarkUnderReview() error {
	if p.Status != valueobject.ProposalStatusSubmitted {
		return apperror.New(apperror.ErrCodeInvalidTransition, "на рассмотрение можно взять только поданное предложение")
	}
	p.Status = valueobject.ProposalStatusUnderReview
	p.UpdatedAt = time.Now()
	return nil
}

// Withdraw отзывает предложение. Принятое предложение отозвать нельзя —
// только через спор или отмену вне этого контура.
func (p *Proposal) Withdraw() error {
	if !p.Status.CanTransitionTo(valueobject.ProposalStatusWithdrawn) {
		return apperror.New(apperror.ErrCodeInvalidTransition, "нельзя отозвать предложение в текущем статусе")
	}
	p.Status = valueobject.ProposalStatusWithdrawn
	p.UpdatedAt = time.Now()
	return nil
}

// Accept — единственный путь в accepted лежит через координатор принятия.
func (p *Proposal) Accept() error {
	if !p.Status.CanTransitionTo(valueobject.ProposalStatusAccepted) {
		return apperror.New(apperror.ErrCodeInvalidTransition, "принять можно только поданное или рассматриваемое предложение")
	}
	now := time.Now()
	p.Status = valueobject.ProposalStatusAccepted
	p.ReviewedAt = &now
	p.UpdatedAt = now
	return nil
}

// Reject отклоняет предложение с указанием причины. Используется и при прямом
// отклонении клиентом, и при массовом отклонении координатором.
func (p *Proposal) Reject(reason string) error {
	if !p.Status.CanTransitionTo(valueobject.ProposalStatusRejected) {
		return apperror.New(apperror.ErrCodeInvalidTransition, "отклонить можно только поданное или рассматриваемое предложение")
	}
	now := time.Now()
	p.Status = valueobject.ProposalStatusRejected
	p.RejectionReason = &reason
	p.ReviewedAt = &now
	p.UpdatedAt = now
	return nil
}

func (p *Proposal) IsOwnedBy(userID uuid.UUID) bool {
	return p.ConsultantID == userID
}

func (p *Proposal) IsLive() bool {
	return p.Status.IsLive()
}

func (p *Proposal) IsAccepted() bool {
	return p.Status == valueobject.ProposalStatusAccepted
}
