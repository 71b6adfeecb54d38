package persistence

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/ignatzorin/consulting-backend/internal/domain/entity"
	"github.com/ignatzorin/consulting-backend/internal/domain/repository"
	"github.com/ignatzorin/consulting-backend/internal/domain/valueobject"
	"github.com/ignatzorin/consulting-backend/internal/pkg/apperror"
)

type ProjectRepositoryAdapter struct {
	db *sqlx.DB
}

func NewProjectRepositoryAdapter(db *sqlx.DB) *ProjectRepositoryAdapter {
	return &ProjectRepositoryAdapter{db: db}
}

func (r *ProjectRepositoryAdapter) Create(ctx context.Context, project *entity.Project) error {
	query := `
		INSERT INTO projects (id, client_id, title, description, category, budget_min, budget_max,
			status, deadline_at, published_at, completed_at, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)
	`
	_, err := r.db.ExecContext(ctx, query,
		project.ID, project.ClientID, project.Title, project.Description, project.Category,
		project.Budget.Min.Amount, project.Budget.Max.Amount, string(project.Status),
		project.DeadlineAt, project.PublishedAt, project.CompletedAt,
		project.CreatedAt, project.UpdatedAt,
	)
	if err != nil {
		return apperror.Wrap(err, apperror.ErrCodeDatabaseError, "не удалось создать проект")
	}
	return nil
}

// Update записывает проект с предусловием по статусу: строка меняется только
// если статус в базе совпадает с ожидаемым. Ноль затронутых строк означает,
// что переход уже выполнил кто-то другой.
func (r *ProjectRepositoryAdapter) Update(ctx context.Context, project *entity.Project, expectedStatus string) error {
	query := `
		UPDATE projects SET title = $2, description = $3, category = $4, budget_min = $5,
			budget_max = $6, status = $7, deadline_at = $8, published_at = $9,
			completed_at = $10, updated_at = $11
		WHERE id = $1 AND status = $12 AND deleted_at IS NULL
	`
	res, err := r.db.ExecContext(ctx, query,
		project.ID, project.Title, project.Description, project.Category,
		project.Budget.Min.Amount, project.Budget.Max.Amount, string(project.Status),
		project.DeadlineAt, project.PublishedAt, project.CompletedAt, project.UpdatedAt,
		expectedStatus,
	)
	if err != nil {
		return apperror.Wrap(err, apperror.ErrCodeDatabaseError, "не удалось обновить проект")
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return apperror.Wrap(err, apperror.ErrCodeDatabaseError, "не удалось обновить проект")
	}
	if affected == 0 {
		return apperror.New(apperror.ErrCodeConflict, "статус проекта уже изменён другой операцией")
	}
	return nil
}

func (r *ProjectRepositoryAdapter) SoftDelete(ctx context.Context, id uuid.UUID, clientID uuid.UUID) error {
	res, err := r.db.ExecContext(ctx, `
		UPDATE projects SET deleted_at = $3, updated_at = $3
		WHERE id = $1 AND client_id = $2 AND deleted_at IS NULL
	`, id, clientID, time.Now())
	if err != nil {
		return apperror.Wrap(err, apperror.ErrCodeDatabaseError, "не удалось удалить проект")
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return apperror.Wrap(err, apperror.ErrCodeDatabaseError, "не удалось удалить проект")
	}
	if affected == 0 {
		return apperror.ErrProjectNotFound
	}
	return nil
}

func (r *ProjectRepositoryAdapter) FindByID(ctx context.Context, id uuid.UUID) (*entity.Project, error) {
	var row projectRow
	query := projectSelect + ` WHERE id = $1 AND deleted_at IS NULL`
	if err := r.db.GetContext(ctx, &row, query, id); err != nil {
		if err == sql.ErrNoRows {
			return nil, apperror.ErrProjectNotFound
		}
		return nil, apperror.Wrap(err, apperror.ErrCodeDatabaseError, "не удалось получить проект")
	}
	return row.toEntity(), nil
}

func (r *ProjectRepositoryAdapter) FindByClientID(ctx context.Context, clientID uuid.UUID) ([]*entity.Project, error) {
	var rows []projectRow
	query := projectSelect + ` WHERE client_id = $1 AND deleted_at IS NULL ORDER BY created_at DESC`
	if err := r.db.SelectContext(ctx, &rows, query, clientID); err != nil {
		return nil, apperror.Wrap(err, apperror.ErrCodeDatabaseError, "не удалось получить проекты")
	}
	return toProjectEntities(rows), nil
}

func (r *ProjectRepositoryAdapter) List(ctx context.Context, filter repository.ProjectFilter) ([]*entity.Project, int, error) {
	conditions := []string{"deleted_at IS NULL"}
	args := []interface{}{}
	idx := 1

	if filter.Status != "" {
		conditions = append(conditions, fmt.Sprintf("status = $%d", idx))
		args = append(args, filter.Status)
		idx++
	}
	if filter.Category != "" {
		conditions = append(conditions, fmt.Sprintf("category = $%d", idx))
		args = append(args, filter.Category)
		idx++
	}
	if filter.Search != "" {
		conditions = append(conditions, fmt.Sprintf("(title ILIKE $%d OR description ILIKE $%d)", idx, idx))
		args = append(args, "%"+filter.Search+"%")
		idx++
	}

	where := " WHERE " + strings.Join(conditions, " AND ")

	var total int
	countQuery := `SELECT COUNT(*) FROM projects` + where
	if err := r.db.GetContext(ctx, &total, countQuery, args...); err != nil {
		return nil, 0, apperror.Wrap(err, apperror.ErrCodeDatabaseError, "не удалось посчитать проекты")
	}

	limit := filter.Limit
	if limit <= 0 || limit > 100 {
		limit = 20
	}
	offset := filter.Offset
	if offset < 0 {
		offset = 0
	}

	var rows []projectRow
	listQuery := projectSelect + where + fmt.Sprintf(" ORDER BY created_at DESC LIMIT $%d OFFSET $%d", idx, idx+1)
	args = append(args, limit, offset)
	if err := r.db.SelectContext(ctx, &rows, listQuery, args...); err != nil {
		return nil, 0, apperror.Wrap(err, apperror.ErrCodeDatabaseError, "не удалось получить проекты")
	}

	return toProjectEntities(rows), total, nil
}

const projectSelect = `
	SELECT id, client_id, title, description, category, budget_min, budget_max,
		status, deadline_at, published_at, completed_at, created_at, updated_at, deleted_at
	FROM projects
`

type projectRow struct {
	ID          uuid.UUID  `db:"id"`
	ClientID    uuid.UUID  `db:"client_id"`
	Title       string     `db:"title"`
	Description string     `db:"description"`
	Category    string     `db:"category"`
	BudgetMin   float64    `db:"budget_min"`
	BudgetMax   float64    `db:"budget_max"`
	Status      string     `db:"status"`
	DeadlineAt  *time.Time `db:"deadline_at"`
	PublishedAt *time.Time `db:"published_at"`
	CompletedAt *time.Time `db:"completed_at"`
	CreatedAt   time.Time  `db:"created_at"`
	UpdatedAt   time.Time  `db:"updated_at"`
	DeletedAt   *time.Time `db:"deleted_at"`
}

func (p *projectRow) toEntity() *entity.Project {
	status, _ := valueobject.NewProjectStatus(p.Status)
	budget, _ := valueobject.NewBudget(p.BudgetMin, p.BudgetMax)
	return &entity.Project{
		ID:          p.ID,
		ClientID:    p.ClientID,
		Title:       p.Title,
		Description: p.Description,
		Category:    p.Category,
		Budget:      budget,
		Status:      status,
		DeadlineAt:  p.DeadlineAt,
		PublishedAt: p.PublishedAt,
		CompletedAt: p.CompletedAt,
		CreatedAt:   p.CreatedAt,
		UpdatedAt:   p.UpdatedAt,
		DeletedAt:   p.DeletedAt,
	}
}

func toProjectEntities(rows []projectRow) []*entity.Project {
	result := make([]*entity.Project, len(rows))
	for i, row := range rows {
		result[i] = row.toEntity()
	}
	return result
}
