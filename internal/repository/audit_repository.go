package repository

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
)

// AuditRecord — запись журнала доменных событий. Журнал append-only,
// пишется после коммита основной транзакции.
type AuditRecord struct {
	ID        uuid.UUID       `db:"id"`
	EventType string          `db:"event_type"`
	ActorID   *uuid.UUID      `db:"actor_id"`
	Data      json.RawMessage `db:"data"`
	CreatedAt time.Time       `db:"created_at"`
}

// AuditRepository отвечает за таблицу audit_log.
type AuditRepository struct {
	db *sqlx.DB
}

func NewAuditRepository(db *sqlx.DB) *AuditRepository {
	return &AuditRepository{db: db}
}

// Create добавляет запись в журнал.
func (r *AuditRepository) Create(ctx context.Context, record *AuditRecord) error {
	query := `
		INSERT INTO audit_log (id, event_type, actor_id, data)
		VALUES ($1, $2, $3, $4)
		RETURNING created_at
	`

	if err := r.db.QueryRowxContext(
		ctx, query,
		record.ID, record.EventType, record.ActorID, record.Data,
	).Scan(&record.CreatedAt); err != nil {
		return fmt.Errorf("audit repository: create %w", err)
	}

	return nil
}

// ListByEventType возвращает записи журнала по типу события.
func (r *AuditRepository) ListByEventType(ctx context.Context, eventType string, limit, offset int) ([]AuditRecord, error) {
	query := `
		SELECT id, event_type, actor_id, data, created_at
		FROM audit_log
		WHERE event_type = $1
		ORDER BY created_at DESC
		LIMIT $2 OFFSET $3
	`

	var records []AuditRecord
	if err := r.db.SelectContext(ctx, &records, query, eventType, limit, offset); err != nil {
		return nil, fmt.Errorf("audit repository: list by event type %w", err)
	}

	return records, nil
}
