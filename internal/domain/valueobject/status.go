package valueobject

import "github.com/ignatzorin/consulting-backend/internal/pkg/apperror"

type ProjectStatus string

const (
	ProjectStatusDraft      ProjectStatus = "draft"
	ProjectStatusOpen       ProjectStatus = "open"
	ProjectStatusInProgress ProjectStatus = "in_progress"
	ProjectStatusCompleted  ProjectStatus = "completed"
	ProjectStatusCancelled  ProjectStatus = "cancelled"
)

// projectTransitions — единственное место, где описаны допустимые переходы проекта.
// Отмена активного проекта (in_progress) запрещена: выход только через спор.
var projectTransitions = map[ProjectStatus][]ProjectStatus{
	ProjectStatusDraft:      {ProjectStatusOpen, ProjectStatusCancelled},
	ProjectStatusOpen:       {ProjectStatusInProgress, ProjectStatusCancelled},
	ProjectStatusInProgress: {ProjectStatusCompleted},
	ProjectStatusCompleted:  {},
	ProjectStatusCancelled:  {},
}

func (s ProjectStatus) IsValid() bool {
	_, ok := projectTransitions[s]
	return ok
}

func (s ProjectStatus) CanTransitionTo(newStatus ProjectStatus) bool {
	for _, allowed := range projectTransitions[s] {
		if allowed == newStatus {
			return true
		}
	}
	return false
}

func (s ProjectStatus) IsTerminal() bool {
	return len(projectTransitions[s]) == 0
}

func NewProjectStatus(status string) (ProjectStatus, error) {
	s := ProjectStatus(status)
	if !s.IsValid() {
		return "", apperror.New(apperror.ErrCodeValidation, "некорректный статус проекта")
	}
	return s, nil
}

type ProposalStatus string

const (
	ProposalStatusDraft       ProposalStatus = "draft"
	ProposalStatusSubmitted   ProposalStatus = "submitted"
	ProposalStatusUnderReview ProposalStatus = "under_review"
	ProposalStatusAccepted    ProposalStatus = "accepted"
	ProposalStatusRejected    ProposalStatus = "rejected"
	ProposalStatusWithdrawn   ProposalStatus = "withdrawn"
)

var proposalTransitions = map[ProposalStatus][]ProposalStatus{
	ProposalStatusDraft:       {ProposalStatusSubmitted, ProposalStatusWithdrawn},
	ProposalStatusSubmitted:   {ProposalStatusUnderReview, ProposalStatusAccepted, ProposalStatusRejected, ProposalStatusWithdrawn},
	ProposalStatusUnderReview: {ProposalStatusAccepted, ProposalStatusRejected, ProposalStatusWithdrawn},
	ProposalStatusAccepted:    {},
	ProposalStatusRejected:    {},
	ProposalStatusWithdrawn:   {},
}

func (s ProposalStatus) IsValid() bool {
	_, ok := proposalTransitions[s]
	return ok
}

func (s ProposalStatus) CanTransitionTo(newStatus ProposalStatus) bool {
	for _, allowed := range proposalTransitions[s] {
		if allowed == newStatus {
			return true
		}
	}
	return false
}

// IsLive возвращает true, пока предложение не отозвано и не отклонено.
// Живое предложение блокирует повторную подачу тем же консультантом.
func (s ProposalStatus) IsLive() bool {
	return s != ProposalStatusWithdrawn && s != ProposalStatusRejected
}

// IsAwaitingDecision — предложение ожидает решения клиента.
func (s ProposalStatus) IsAwaitingDecision() bool {
	return s == ProposalStatusSubmitted || s == ProposalStatusUnderReview
}

func NewProposalStatus(status string) (ProposalStatus, error) {
	s := ProposalStatus(status)
	if !s.IsValid() {
		return "", apperror.New(apperror.ErrCodeValidation, "некорректный статус предложения")
	}
	return s, nil
}

type DisputeStatus string

const (
	DisputeStatusOpen             DisputeStatus = "open"
	DisputeStatusAssigned         DisputeStatus = "assigned"
	DisputeStatusAwaitingResponse DisputeStatus = "awaiting_response"
	DisputeStatusResolved         DisputeStatus = "resolved"
	DisputeStatusEscalated        DisputeStatus = "escalated"
	DisputeStatusClosed           DisputeStatus = "closed"
)

// Эскалация доступна из любого нетерминального статуса,
// дальше спор ведёт только администратор.
var disputeTransitions = map[DisputeStatus][]DisputeStatus{
	DisputeStatusOpen:             {DisputeStatusAssigned, DisputeStatusEscalated},
	DisputeStatusAssigned:         {DisputeStatusAwaitingResponse, DisputeStatusResolved, DisputeStatusEscalated},
	DisputeStatusAwaitingResponse: {DisputeStatusAssigned, DisputeStatusResolved, DisputeStatusEscalated},
	DisputeStatusEscalated:        {DisputeStatusResolved, DisputeStatusClosed},
	DisputeStatusResolved:         {DisputeStatusClosed},
	DisputeStatusClosed:           {},
}

func (s DisputeStatus) IsValid() bool {
	_, ok := disputeTransitions[s]
	return ok
}

func (s DisputeStatus) CanTransitionTo(newStatus DisputeStatus) bool {
	for _, allowed := range disputeTransitions[s] {
		if allowed == newStatus {
			return true
		}
	}
	return false
}

// IsActive — спор ещё требует действий; активным может быть только один спор на проект.
func (s DisputeStatus) IsActive() bool {
	switch s {
	case DisputeStatusOpen, DisputeStatusAssigned, DisputeStatusAwaitingResponse, DisputeStatusEscalated:
		return true
	}
	return false
}

// AllowsEvidence — после resolved/closed доказательства не принимаются.
func (s DisputeStatus) AllowsEvidence() bool {
	return s.IsActive()
}

func NewDisputeStatus(status string) (DisputeStatus, error) {
	s := DisputeStatus(status)
	if !s.IsValid() {
		return "", apperror.New(apperror.ErrCodeValidation, "некорректный статус спора")
	}
	return s, nil
}

type MessageVisibility string

const (
	// VisibilityParty — сообщение видно обеим сторонам спора.
	VisibilityParty MessageVisibility = "party"
	// VisibilityInternal — внутренняя заметка, видна только администраторам.
	VisibilityInternal MessageVisibility = "internal"
)

func (v MessageVisibility) IsValid() bool {
	return v == VisibilityParty || v == VisibilityInternal
}
