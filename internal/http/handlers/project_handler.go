package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	domrepo "github.com/ignatzorin/consulting-backend/internal/domain/repository"
	"github.com/ignatzorin/consulting-backend/internal/domain/valueobject"
	"github.com/ignatzorin/consulting-backend/internal/dto"
	"github.com/ignatzorin/consulting-backend/internal/http/handlers/common"
	ucproject "github.com/ignatzorin/consulting-backend/internal/usecase/project"
)

// ProjectHandler обслуживает жизненный цикл проектов.
type ProjectHandler struct {
	create   *ucproject.CreateProjectUseCase
	update   *ucproject.UpdateProjectUseCase
	publish  *ucproject.PublishProjectUseCase
	cancel   *ucproject.CancelProjectUseCase
	complete *ucproject.CompleteProjectUseCase
	remove   *ucproject.DeleteProjectUseCase
	get      *ucproject.GetProjectUseCase
	list     *ucproject.ListProjectsUseCase
}

func NewProjectHandler(
	create *ucproject.CreateProjectUseCase,
	update *ucproject.UpdateProjectUseCase,
	publish *ucproject.PublishProjectUseCase,
	cancel *ucproject.CancelProjectUseCase,
	complete *ucproject.CompleteProjectUseCase,
	remove *ucproject.DeleteProjectUseCase,
	get *ucproject.GetProjectUseCase,
	list *ucproject.ListProjectsUseCase,
) *ProjectHandler {
	return &ProjectHandler{
		create:   create,
		update:   update,
		publish:  publish,
		cancel:   cancel,
		complete: complete,
		remove:   remove,
		get:      get,
		list:     list,
	}
}

// Create обслуживает POST /api/projects.
func (h *ProjectHandler) Create(c *gin.Context) {
	actor, err := common.CurrentActor(c)
	if err != nil {
		common.RespondUnauthorized(c)
		return
	}

	var req dto.CreateProjectRequest
	if err := common.BindAndValidate(c, &req); err != nil {
		common.RespondBadRequest(c, err.Error())
		return
	}

	project, err := h.create.Execute(c.Request.Context(), ucproject.CreateProjectInput{
		Actor:       actor,
		Title:       req.Title,
		Description: req.Description,
		Category:    req.Category,
		BudgetMin:   req.BudgetMin,
		BudgetMax:   req.BudgetMax,
		DeadlineAt:  req.DeadlineAt,
	})
	if err != nil {
		_ = c.Error(err)
		return
	}

	common.RespondJSON(c, http.StatusCreated, dto.FromProject(project))
}

// List обслуживает GET /api/projects.
func (h *ProjectHandler) List(c *gin.Context) {
	limit, offset := common.GetPagination(c)

	projects, total, err := h.list.Execute(c.Request.Context(), domrepo.ProjectFilter{
		Status:   c.Query("status"),
		Category: c.Query("category"),
		Search:   c.Query("search"),
		Limit:    limit,
		Offset:   offset,
	})
	if err != nil {
		_ = c.Error(err)
		return
	}

	common.RespondJSON(c, http.StatusOK, dto.ProjectListResponse{
		Projects: dto.FromProjects(projects),
		Total:    total,
	})
}

// ListMine обслуживает GET /api/projects/my.
func (h *ProjectHandler) ListMine(c *gin.Context) {
	actor, err := common.CurrentActor(c)
	if err != nil {
		common.RespondUnauthorized(c)
		return
	}

	projects, err := h.list.ByClient(c.Request.Context(), actor.ID)
	if err != nil {
		_ = c.Error(err)
		return
	}

	common.RespondJSON(c, http.StatusOK, dto.FromProjects(projects))
}

// Get обслуживает GET /api/projects/:id.
func (h *ProjectHandler) Get(c *gin.Context) {
	actor, err := common.CurrentActor(c)
	if err != nil {
		common.RespondUnauthorized(c)
		return
	}

	projectID, err := common.ParseUUIDParam(c, "id")
	if err != nil {
		common.RespondBadRequest(c, err.Error())
		return
	}

	project, err := h.get.Execute(c.Request.Context(), actor, projectID)
	if err != nil {
		_ = c.Error(err)
		return
	}

	common.RespondJSON(c, http.StatusOK, dto.FromProject(project))
}

// Update обслуживает PUT /api/projects/:id.
func (h *ProjectHandler) Update(c *gin.Context) {
	actor, err := common.CurrentActor(c)
	if err != nil {
		common.RespondUnauthorized(c)
		return
	}

	projectID, err := common.ParseUUIDParam(c, "id")
	if err != nil {
		common.RespondBadRequest(c, err.Error())
		return
	}

	var req dto.UpdateProjectRequest
	if err := common.BindAndValidate(c, &req); err != nil {
		common.RespondBadRequest(c, err.Error())
		return
	}

	project, err := h.update.Execute(c.Request.Context(), ucproject.UpdateProjectInput{
		Actor:       actor,
		ProjectID:   projectID,
		Title:       req.Title,
		Description: req.Description,
		Category:    req.Category,
		BudgetMin:   req.BudgetMin,
		BudgetMax:   req.BudgetMax,
		DeadlineAt:  req.DeadlineAt,
	})
	if err != nil {
		_ = c.Error(err)
		return
	}

	common.RespondJSON(c, http.StatusOK, dto.FromProject(project))
}

// Publish обслуживает POST /api/projects/:id/publish.
func (h *ProjectHandler) Publish(c *gin.Context) {
	h.transition(c, func(actor actorInput) (interface{}, error) {
		project, err := h.publish.Execute(c.Request.Context(), ucproject.PublishProjectInput{
			Actor:     actor.actor,
			ProjectID: actor.projectID,
		})
		if err != nil {
			return nil, err
		}
		return dto.FromProject(project), nil
	})
}

// Cancel обслуживает POST /api/projects/:id/cancel.
func (h *ProjectHandler) Cancel(c *gin.Context) {
	h.transition(c, func(actor actorInput) (interface{}, error) {
		project, err := h.cancel.Execute(c.Request.Context(), ucproject.CancelProjectInput{
			Actor:     actor.actor,
			ProjectID: actor.projectID,
		})
		if err != nil {
			return nil, err
		}
		return dto.FromProject(project), nil
	})
}

// Complete обслуживает POST /api/projects/:id/complete.
func (h *ProjectHandler) Complete(c *gin.Context) {
	h.transition(c, func(actor actorInput) (interface{}, error) {
		project, err := h.complete.Execute(c.Request.Context(), ucproject.CompleteProjectInput{
			Actor:     actor.actor,
			ProjectID: actor.projectID,
		})
		if err != nil {
			return nil, err
		}
		return dto.FromProject(project), nil
	})
}

// Delete обслуживает DELETE /api/projects/:id.
func (h *ProjectHandler) Delete(c *gin.Context) {
	actor, err := common.CurrentActor(c)
	if err != nil {
		common.RespondUnauthorized(c)
		return
	}

	projectID, err := common.ParseUUIDParam(c, "id")
	if err != nil {
		common.RespondBadRequest(c, err.Error())
		return
	}

	if err := h.remove.Execute(c.Request.Context(), ucproject.DeleteProjectInput{
		Actor:     actor,
		ProjectID: projectID,
	}); err != nil {
		_ = c.Error(err)
		return
	}

	common.RespondJSON(c, http.StatusOK, gin.H{"message": "проект удалён"})
}

type actorInput struct {
	actor     valueobject.Actor
	projectID uuid.UUID
}

// transition — общий каркас для переходов статуса проекта.
func (h *ProjectHandler) transition(c *gin.Context, fn func(actorInput) (interface{}, error)) {
	actor, err := common.CurrentActor(c)
	if err != nil {
		common.RespondUnauthorized(c)
		return
	}

	projectID, err := common.ParseUUIDParam(c, "id")
	if err != nil {
		common.RespondBadRequest(c, err.Error())
		return
	}

	result, err := fn(actorInput{actor: actor, projectID: projectID})
	if err != nil {
		_ = c.Error(err)
		return
	}

	common.RespondJSON(c, http.StatusOK, result)
}
