// Package event доставляет доменные события после коммита бизнес-транзакции:
// уведомления в базу, онлайн-доставка через WebSocket и запись в аудит.
package event

import (
	"context"
	"encoding/json"

	"github.com/google/uuid"

	"github.com/ignatzorin/consulting-backend/internal/domain/entity"
	"github.com/ignatzorin/consulting-backend/internal/domain/event"
	"github.com/ignatzorin/consulting-backend/internal/goroutine"
	"github.com/ignatzorin/consulting-backend/internal/logger"
	"github.com/ignatzorin/consulting-backend/internal/repository"
)

// NotificationSaver сохраняет уведомление получателю.
type NotificationSaver interface {
	Create(ctx context.Context, notification *entity.Notification) error
}

// Broadcaster доставляет событие онлайн-пользователю.
type Broadcaster interface {
	BroadcastToUser(userID uuid.UUID, eventType string, data any) error
}

// AuditWriter добавляет запись в журнал аудита.
type AuditWriter interface {
	Create(ctx context.Context, record *repository.AuditRecord) error
}

// Emitter реализует event.Emitter. Доставка асинхронная и at-least-once:
// ошибки любого из каналов логируются и не влияют на вызвавшую операцию.
type Emitter struct {
	notifications NotificationSaver
	broadcaster   Broadcaster
	audit         AuditWriter
}

func NewEmitter(notifications NotificationSaver, broadcaster Broadcaster, audit AuditWriter) *Emitter {
	return &Emitter{
		notifications: notifications,
		broadcaster:   broadcaster,
		audit:         audit,
	}
}

func (e *Emitter) Emit(ctx context.Context, ev event.Event) {
	// Доставка отвязана от контекста запроса: коммит уже случился,
	// отмена HTTP-запроса не должна терять события.
	goroutine.SafeGo(func() {
		e.deliver(context.Background(), ev)
	})
}

func (e *Emitter) deliver(ctx context.Context, ev event.Event) {
	log := logger.WithComponent("event_emitter").WithField("event_type", string(ev.Type))

	if e.audit != nil {
		data, err := json.Marshal(ev.Data)
		if err != nil {
			data = []byte("{}")
		}

		record := &repository.AuditRecord{
			ID:        uuid.New(),
			EventType: string(ev.Type),
			Data:      data,
		}
		if ev.ActorID != uuid.Nil {
			actorID := ev.ActorID
			record.ActorID = &actorID
		}

		if err := e.audit.Create(ctx, record); err != nil {
			log.WithError(err).Error("не удалось записать событие в аудит")
		}
	}

	payload, err := json.Marshal(map[string]any{
		"type": string(ev.Type),
		"data": ev.Data,
	})
	if err != nil {
		log.WithError(err).Error("не удалось сериализовать событие")
		return
	}

	for _, recipient := range ev.Recipients {
		notification := &entity.Notification{
			ID:      uuid.New(),
			UserID:  recipient,
			Payload: payload,
		}
		if e.notifications != nil {
			if err := e.notifications.Create(ctx, notification); err != nil {
				log.WithError(err).WithField("user_id", recipient).Error("не удалось сохранить уведомление")
			}
		}

		if e.broadcaster != nil {
			if err := e.broadcaster.BroadcastToUser(recipient, string(ev.Type), ev.Data); err != nil {
				log.WithError(err).WithField("user_id", recipient).Warn("не удалось доставить событие по WebSocket")
			}
		}
	}
}
