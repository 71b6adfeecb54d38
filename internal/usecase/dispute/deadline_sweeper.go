package dispute

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/ignatzorin/consulting-backend/internal/domain/event"
	"github.com/ignatzorin/consulting-backend/internal/domain/repository"
	"github.com/ignatzorin/consulting-backend/internal/domain/valueobject"
	"github.com/ignatzorin/consulting-backend/internal/logger"
	"github.com/ignatzorin/consulting-backend/internal/pkg/apperror"
)

const sweepBatchSize = 50

// DeadlineSweeper периодически эскалирует споры, по которым сторона не
// ответила в срок. Условный Update с ожидаемым статусом делает обходчик
// безопасным при нескольких экземплярах сервиса: проигравший получает
// конфликт и пропускает спор.
type DeadlineSweeper struct {
	disputeRepo repository.DisputeRepository
	emitter     event.Emitter
	interval    time.Duration
}

func NewDeadlineSweeper(disputeRepo repository.DisputeRepository, emitter event.Emitter, interval time.Duration) *DeadlineSweeper {
	return &DeadlineSweeper{
		disputeRepo: disputeRepo,
		emitter:     emitter,
		interval:    interval,
	}
}

// Run блокируется до отмены контекста.
func (s *DeadlineSweeper) Run(ctx context.Context) {
	log := logger.WithComponent("dispute_sweeper")
	log.WithField("interval", s.interval.String()).Info("запуск обходчика дедлайнов споров")

	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			log.Info("обходчик дедлайнов остановлен")
			return
		case <-ticker.C:
			s.Sweep(ctx)
		}
	}
}

// Sweep эскалирует все просроченные споры одним проходом.
func (s *DeadlineSweeper) Sweep(ctx context.Context) {
	log := logger.WithComponent("dispute_sweeper")

	overdue, err := s.disputeRepo.ListOverdue(ctx, time.Now(), sweepBatchSize)
	if err != nil {
		log.WithError(err).Error("не удалось получить просроченные споры")
		return
	}

	for _, d := range overdue {
		previousStatus := string(d.Status)
		if err := d.Escalate(); err != nil {
			continue
		}

		if err := s.disputeRepo.Update(ctx, d, previousStatus); err != nil {
			// Конфликт означает, что спор уже обработан параллельно.
			if !apperror.IsConflict(err) {
				log.WithError(err).WithField("dispute_id", d.ID).Error("не удалось эскалировать спор")
			}
			continue
		}

		log.WithField("dispute_id", d.ID).Info("спор эскалирован по истечении срока ответа")

		s.emitter.Emit(ctx, event.Event{
			Type:       event.TypeDisputeEscalated,
			ActorID:    uuid.Nil,
			Recipients: []uuid.UUID{d.OpenerID, d.ResponderID},
			Data: map[string]any{
				"dispute_id": d.ID.String(),
				"cause":      string(valueobject.DisputeStatusAwaitingResponse) + "_deadline",
			},
		})
	}
}
