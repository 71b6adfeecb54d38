package entity

import (
	"time"

	"github.com/google/uuid"

	"github.com/ignatzorin/consulting-backend/internal/domain/valueobject"
	"github.com/ignatzorin/consulting-backend/internal/pkg/apperror"
)

// Dispute — спор между сторонами проекта. Ведётся администратором,
// стороны участвуют сообщениями и доказательствами.
type Dispute struct {
	ID              uuid.UUID
	ProjectID       uuid.UUID
	OpenerID        uuid.UUID
	ResponderID     uuid.UUID
	Reason          string
	Status          valueobject.DisputeStatus
	AssignedAdminID *uuid.UUID
	// ResponseDeadline — срок ответа стороны в статусе awaiting_response.
	// По истечении спор эскалируется автоматически.
	ResponseDeadline *time.Time
	Resolution       *string
	ResolvedBy       *uuid.UUID
	CreatedAt        time.Time
	UpdatedAt        time.Time
	ResolvedAt       *time.Time
	ClosedAt         *time.Time

	Messages []DisputeMessage
	Evidence []DisputeEvidence
}

// DisputeMessage — запись append-only журнала спора.
type DisputeMessage struct {
	ID         uuid.UUID
	DisputeID  uuid.UUID
	AuthorID   uuid.UUID
	Body       string
	Visibility valueobject.MessageVisibility
	CreatedAt  time.Time
}

// DisputeEvidence — приложенное доказательство.
type DisputeEvidence struct {
	ID          uuid.UUID
	DisputeID   uuid.UUID
	UploaderID  uuid.UUID
	FileName    string
	FilePath    string
	ContentType string
	CreatedAt   time.Time
}

func NewDispute(projectID, openerID, responderID uuid.UUID, reason string) (*Dispute, error) {
	if reason == "" {
		return nil, apperror.New(apperror.ErrCodeValidation, "причина спора обязательна")
	}
	if openerID == responderID {
		return nil, apperror.New(apperror.ErrCodeValidation, "стороны спора должны различаться")
	}

	return &Dispute{
		ID:          uuid.New(),
		ProjectID:   projectID,
		OpenerID:    openerID,
		ResponderID: responderID,
		Reason:      reason,
		Status:      valueobject.DisputeStatusOpen,
		CreatedAt:   time.Now(),
		UpdatedAt:   time.Now(),
	}, nil
}

// Assign — администратор берёт спор в работу.
func (d *Dispute) Assign(adminID uuid.UUID) error {
	if !d.Status.CanTransitionTo(valueobject.DisputeStatusAssigned) {
		return apperror.New(apperror.ErrCodeInvalidTransition, "назначить можно только открытый спор или вернуть из ожидания ответа")
	}
	d.Status = valueobject.DisputeStatusAssigned
	d.AssignedAdminID = &adminID
	d.UpdatedAt = time.Now()
	return nil
}

// RequestResponse запрашивает ответ второй стороны, опционально с дедлайном.
func (d *Dispute) RequestResponse(deadline *time.Time) error {
	if d.Status != valueobject.DisputeStatusAssigned {
		return apperror.New(apperror.ErrCodeInvalidTransition, "запросить ответ можно только по назначенному спору")
	}
	d.Status = valueobject.DisputeStatusAwaitingResponse
	d.ResponseDeadline = deadline
	d.UpdatedAt = time.Now()
	return nil
}

// AcknowledgeResponse возвращает спор администратору после ответа стороны.
func (d *Dispute) AcknowledgeResponse() error {
	if d.Status != valueobject.DisputeStatusAwaitingResponse {
		return apperror.New(apperror.ErrCodeInvalidTransition, "спор не ожидает ответа")
	}
	d.Status = valueobject.DisputeStatusAssigned
	d.ResponseDeadline = nil
	d.UpdatedAt = time.Now()
	return nil
}

// Resolve фиксирует решение. Спор остаётся в истории до закрытия.
func (d *Dispute) Resolve(adminID uuid.UUID, resolution string) error {
	if resolution == "" {
		return apperror.New(apperror.ErrCodeValidation, "решение спора обязательно")
	}
	if !d.Status.CanTransitionTo(valueobject.DisputeStatusResolved) {
		return apperror.New(apperror.ErrCodeInvalidTransition, "нельзя вынести решение по спору в текущем статусе")
	}
	now := time.Now()
	d.Status = valueobject.DisputeStatusResolved
	d.Resolution = &resolution
	d.ResolvedBy = &adminID
	d.ResolvedAt = &now
	d.ResponseDeadline = nil
	d.UpdatedAt = now
	return nil
}

// Escalate поднимает спор на уровень выше. Допускается из любого
// нетерминального статуса, вручную или по истечении дедлайна ответа.
func (d *Dispute) Escalate() error {
	if !d.Status.CanTransitionTo(valueobject.DisputeStatusEscalated) {
		return apperror.New(apperror.ErrCodeInvalidTransition, "нельзя эскалировать спор в текущем статусе")
	}
	d.Status = valueobject.DisputeStatusEscalated
	d.ResponseDeadline = nil
	d.UpdatedAt = time.Now()
	return nil
}

// Close закрывает спор. После закрытия сообщения и доказательства не принимаются.
func (d *Dispute) Close() error {
	if !d.Status.CanTransitionTo(valueobject.DisputeStatusClosed) {
		return apperror.New(apperror.ErrCodeInvalidTransition, "закрыть можно только решённый или эскалированный спор")
	}
	now := time.Now()
	d.Status = valueobject.DisputeStatusClosed
	d.ClosedAt = &now
	d.UpdatedAt = now
	return nil
}

// AppendMessage добавляет запись в журнал. Сообщения сторон принимаются только
// по активному спору; внутренние заметки администратора — до закрытия.
func (d *Dispute) AppendMessage(authorID uuid.UUID, body string, visibility valueobject.MessageVisibility) (*DisputeMessage, error) {
	if body == "" {
		return nil, apperror.New(apperror.ErrCodeValidation, "текст сообщения обязателен")
	}
	if !visibility.IsValid() {
		return nil, apperror.New(apperror.ErrCodeValidation, "некорректная видимость сообщения")
	}
	if d.Status == valueobject.DisputeStatusClosed {
		return nil, apperror.New(apperror.ErrCodeBusinessRule, "спор закрыт, сообщения не принимаются")
	}
	if visibility == valueobject.VisibilityParty && !d.Status.IsActive() {
		return nil, apperror.New(apperror.ErrCodeBusinessRule, "по решённому спору сообщения сторон не принимаются")
	}

	msg := DisputeMessage{
		ID:         uuid.New(),
		DisputeID:  d.ID,
		AuthorID:   authorID,
		Body:       body,
		Visibility: visibility,
		CreatedAt:  time.Now(),
	}
	d.Messages = append(d.Messages, msg)
	d.UpdatedAt = msg.CreatedAt
	return &msg, nil
}

// AttachEvidence добавляет доказательство, пока спор активен.
func (d *Dispute) AttachEvidence(uploaderID uuid.UUID, fileName, filePath, contentType string) (*DisputeEvidence, error) {
	if !d.Status.AllowsEvidence() {
		return nil, apperror.New(apperror.ErrCodeBusinessRule, "доказательства принимаются только по активному спору")
	}

	ev := DisputeEvidence{
		ID:          uuid.New(),
		DisputeID:   d.ID,
		UploaderID:  uploaderID,
		FileName:    fileName,
		FilePath:    filePath,
		ContentType: contentType,
		CreatedAt:   time.Now(),
	}
	d.Evidence = append(d.Evidence, ev)
	d.UpdatedAt = ev.CreatedAt
	return &ev, nil
}

func (d *Dispute) IsParty(userID uuid.UUID) bool {
	return d.OpenerID == userID || d.ResponderID == userID
}

func (d *Dispute) IsActive() bool {
	return d.Status.IsActive()
}

// DeadlineBreached — срок ответа стороны истёк.
func (d *Dispute) DeadlineBreached(now time.Time) bool {
	return d.Status == valueobject.DisputeStatusAwaitingResponse &&
		d.ResponseDeadline != nil && now.After(*d.ResponseDeadline)
}

// VisibleMessages возвращает журнал с учётом роли: внутренние заметки
// видны только администраторам.
func (d *Dispute) VisibleMessages(actor valueobject.Actor) []DisputeMessage {
	if actor.IsAdmin() {
		return d.Messages
	}
	visible := make([]DisputeMessage, 0, len(d.Messages))
	for _, m := range d.Messages {
		if m.Visibility == valueobject.VisibilityParty {
			visible = append(visible, m)
		}
	}
	return visible
}
