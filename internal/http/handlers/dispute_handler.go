package handlers

import (
	"io"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/ignatzorin/consulting-backend/internal/domain/valueobject"
	"github.com/ignatzorin/consulting-backend/internal/dto"
	"github.com/ignatzorin/consulting-backend/internal/http/handlers/common"
	ucdispute "github.com/ignatzorin/consulting-backend/internal/usecase/dispute"
)

// DisputeHandler обслуживает споры: открытие, ведение администратором,
// журнал сообщений и доказательства.
type DisputeHandler struct {
	open            *ucdispute.OpenDisputeUseCase
	assign          *ucdispute.AssignDisputeUseCase
	requestResponse *ucdispute.RequestResponseUseCase
	submitResponse  *ucdispute.SubmitResponseUseCase
	acknowledge     *ucdispute.AcknowledgeResponseUseCase
	resolve         *ucdispute.ResolveDisputeUseCase
	escalate        *ucdispute.EscalateDisputeUseCase
	close           *ucdispute.CloseDisputeUseCase
	addMessage      *ucdispute.AddMessageUseCase
	attachEvidence  *ucdispute.AttachEvidenceUseCase
	read            *ucdispute.ReadDisputesUseCase
}

func NewDisputeHandler(
	open *ucdispute.OpenDisputeUseCase,
	assign *ucdispute.AssignDisputeUseCase,
	requestResponse *ucdispute.RequestResponseUseCase,
	submitResponse *ucdispute.SubmitResponseUseCase,
	acknowledge *ucdispute.AcknowledgeResponseUseCase,
	resolve *ucdispute.ResolveDisputeUseCase,
	escalate *ucdispute.EscalateDisputeUseCase,
	close *ucdispute.CloseDisputeUseCase,
	addMessage *ucdispute.AddMessageUseCase,
	attachEvidence *ucdispute.AttachEvidenceUseCase,
	read *ucdispute.ReadDisputesUseCase,
) *DisputeHandler {
	return &DisputeHandler{
		open:            open,
		assign:          assign,
		requestResponse: requestResponse,
		submitResponse:  submitResponse,
		acknowledge:     acknowledge,
		resolve:         resolve,
		escalate:        escalate,
		close:           close,
		addMessage:      addMessage,
		attachEvidence:  attachEvidence,
		read:            read,
	}
}

// Open обслуживает POST /api/projects/:id/disputes.
func (h *DisputeHandler) Open(c *gin.Context) {
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

	var req dto.OpenDisputeRequest
	if err := common.BindAndValidate(c, &req); err != nil {
		common.RespondBadRequest(c, err.Error())
		return
	}

	dispute, err := h.open.Execute(c.Request.Context(), ucdispute.OpenDisputeInput{
		Actor:     actor,
		ProjectID: projectID,
		Reason:    req.Reason,
	})
	if err != nil {
		_ = c.Error(err)
		return
	}

	common.RespondJSON(c, http.StatusCreated, dto.FromDispute(dispute))
}

// Get обслуживает GET /api/disputes/:id.
func (h *DisputeHandler) Get(c *gin.Context) {
	actor, err := common.CurrentActor(c)
	if err != nil {
		common.RespondUnauthorized(c)
		return
	}

	disputeID, err := common.ParseUUIDParam(c, "id")
	if err != nil {
		common.RespondBadRequest(c, err.Error())
		return
	}

	dispute, err := h.read.Get(c.Request.Context(), actor, disputeID)
	if err != nil {
		_ = c.Error(err)
		return
	}

	common.RespondJSON(c, http.StatusOK, dto.FromDispute(dispute))
}

// ListMine обслуживает GET /api/disputes/my.
func (h *DisputeHandler) ListMine(c *gin.Context) {
	actor, err := common.CurrentActor(c)
	if err != nil {
		common.RespondUnauthorized(c)
		return
	}

	limit, offset := common.GetPagination(c)
	disputes, err := h.read.ByParticipant(c.Request.Context(), actor, limit, offset)
	if err != nil {
		_ = c.Error(err)
		return
	}

	common.RespondJSON(c, http.StatusOK, dto.FromDisputes(disputes))
}

// ListUnassigned обслуживает GET /api/admin/disputes/unassigned.
func (h *DisputeHandler) ListUnassigned(c *gin.Context) {
	actor, err := common.CurrentActor(c)
	if err != nil {
		common.RespondUnauthorized(c)
		return
	}

	limit, offset := common.GetPagination(c)
	disputes, err := h.read.Unassigned(c.Request.Context(), actor, limit, offset)
	if err != nil {
		_ = c.Error(err)
		return
	}

	common.RespondJSON(c, http.StatusOK, dto.FromDisputes(disputes))
}

// Assign обслуживает POST /api/admin/disputes/:id/assign.
func (h *DisputeHandler) Assign(c *gin.Context) {
	h.adminTransition(c, func(actor disputeActorInput) (interface{}, error) {
		dispute, err := h.assign.Execute(c.Request.Context(), ucdispute.AssignDisputeInput{
			Actor:     actor.actor,
			DisputeID: actor.disputeID,
		})
		if err != nil {
			return nil, err
		}
		return dto.FromDispute(dispute), nil
	})
}

// RequestResponse обслуживает POST /api/admin/disputes/:id/request-response.
func (h *DisputeHandler) RequestResponse(c *gin.Context) {
	actor, err := common.CurrentActor(c)
	if err != nil {
		common.RespondUnauthorized(c)
		return
	}

	disputeID, err := common.ParseUUIDParam(c, "id")
	if err != nil {
		common.RespondBadRequest(c, err.Error())
		return
	}

	var req dto.RequestResponseRequest
	if err := common.BindAndValidate(c, &req); err != nil {
		common.RespondBadRequest(c, err.Error())
		return
	}

	dispute, err := h.requestResponse.Execute(c.Request.Context(), ucdispute.RequestResponseInput{
		Actor:     actor,
		DisputeID: disputeID,
		Deadline:  req.Deadline,
	})
	if err != nil {
		_ = c.Error(err)
		return
	}

	common.RespondJSON(c, http.StatusOK, dto.FromDispute(dispute))
}

// SubmitResponse обслуживает POST /api/disputes/:id/response.
func (h *DisputeHandler) SubmitResponse(c *gin.Context) {
	actor, err := common.CurrentActor(c)
	if err != nil {
		common.RespondUnauthorized(c)
		return
	}

	disputeID, err := common.ParseUUIDParam(c, "id")
	if err != nil {
		common.RespondBadRequest(c, err.Error())
		return
	}

	var req dto.DisputeMessageRequest
	if err := common.BindAndValidate(c, &req); err != nil {
		common.RespondBadRequest(c, err.Error())
		return
	}

	msg, err := h.submitResponse.Execute(c.Request.Context(), ucdispute.SubmitResponseInput{
		Actor:     actor,
		DisputeID: disputeID,
		Body:      req.Body,
	})
	if err != nil {
		_ = c.Error(err)
		return
	}

	common.RespondJSON(c, http.StatusCreated, gin.H{"message_id": msg.ID})
}

// Acknowledge обслуживает POST /api/admin/disputes/:id/acknowledge.
func (h *DisputeHandler) Acknowledge(c *gin.Context) {
	h.adminTransition(c, func(actor disputeActorInput) (interface{}, error) {
		dispute, err := h.acknowledge.Execute(c.Request.Context(), ucdispute.AcknowledgeResponseInput{
			Actor:     actor.actor,
			DisputeID: actor.disputeID,
		})
		if err != nil {
			return nil, err
		}
		return dto.FromDispute(dispute), nil
	})
}

// Resolve обслуживает POST /api/admin/disputes/:id/resolve.
func (h *DisputeHandler) Resolve(c *gin.Context) {
	actor, err := common.CurrentActor(c)
	if err != nil {
		common.RespondUnauthorized(c)
		return
	}

	disputeID, err := common.ParseUUIDParam(c, "id")
	if err != nil {
		common.RespondBadRequest(c, err.Error())
		return
	}

	var req dto.ResolveDisputeRequest
	if err := common.BindAndValidate(c, &req); err != nil {
		common.RespondBadRequest(c, err.Error())
		return
	}

	dispute, err := h.resolve.Execute(c.Request.Context(), ucdispute.ResolveDisputeInput{
		Actor:      actor,
		DisputeID:  disputeID,
		Resolution: req.Resolution,
	})
	if err != nil {
		_ = c.Error(err)
		return
	}

	common.RespondJSON(c, http.StatusOK, dto.FromDispute(dispute))
}

// Escalate обслуживает POST /api/admin/disputes/:id/escalate.
func (h *DisputeHandler) Escalate(c *gin.Context) {
	h.adminTransition(c, func(actor disputeActorInput) (interface{}, error) {
		dispute, err := h.escalate.Execute(c.Request.Context(), ucdispute.EscalateDisputeInput{
			Actor:     actor.actor,
			DisputeID: actor.disputeID,
		})
		if err != nil {
			return nil, err
		}
		return dto.FromDispute(dispute), nil
	})
}

// Close обслуживает POST /api/admin/disputes/:id/close.
func (h *DisputeHandler) Close(c *gin.Context) {
	h.adminTransition(c, func(actor disputeActorInput) (interface{}, error) {
		dispute, err := h.close.Execute(c.Request.Context(), ucdispute.CloseDisputeInput{
			Actor:     actor.actor,
			DisputeID: actor.disputeID,
		})
		if err != nil {
			return nil, err
		}
		return dto.FromDispute(dispute), nil
	})
}

// AddMessage обслуживает POST /api/disputes/:id/messages.
func (h *DisputeHandler) AddMessage(c *gin.Context) {
	actor, err := common.CurrentActor(c)
	if err != nil {
		common.RespondUnauthorized(c)
		return
	}

	disputeID, err := common.ParseUUIDParam(c, "id")
	if err != nil {
		common.RespondBadRequest(c, err.Error())
		return
	}

	var req dto.DisputeMessageRequest
	if err := common.BindAndValidate(c, &req); err != nil {
		common.RespondBadRequest(c, err.Error())
		return
	}

	msg, err := h.addMessage.Execute(c.Request.Context(), ucdispute.AddMessageInput{
		Actor:     actor,
		DisputeID: disputeID,
		Body:      req.Body,
		Internal:  req.Internal,
	})
	if err != nil {
		_ = c.Error(err)
		return
	}

	common.RespondJSON(c, http.StatusCreated, gin.H{"message_id": msg.ID})
}

// AttachEvidence обслуживает POST /api/disputes/:id/evidence (multipart).
func (h *DisputeHandler) AttachEvidence(c *gin.Context) {
	actor, err := common.CurrentActor(c)
	if err != nil {
		common.RespondUnauthorized(c)
		return
	}

	disputeID, err := common.ParseUUIDParam(c, "id")
	if err != nil {
		common.RespondBadRequest(c, err.Error())
		return
	}

	fileHeader, err := c.FormFile("file")
	if err != nil {
		common.RespondBadRequest(c, "файл обязателен")
		return
	}

	f, err := fileHeader.Open()
	if err != nil {
		common.RespondBadRequest(c, "не удалось прочитать файл")
		return
	}
	defer f.Close()

	data, err := io.ReadAll(f)
	if err != nil {
		common.RespondBadRequest(c, "не удалось прочитать файл")
		return
	}

	ev, err := h.attachEvidence.Execute(c.Request.Context(), ucdispute.AttachEvidenceInput{
		Actor:     actor,
		DisputeID: disputeID,
		FileName:  fileHeader.Filename,
		Data:      data,
	})
	if err != nil {
		_ = c.Error(err)
		return
	}

	common.RespondJSON(c, http.StatusCreated, dto.DisputeEvidenceResponse{
		ID:          ev.ID,
		UploaderID:  ev.UploaderID,
		FileName:    ev.FileName,
		ContentType: ev.ContentType,
		CreatedAt:   ev.CreatedAt,
	})
}

type disputeActorInput struct {
	actor     valueobject.Actor
	disputeID uuid.UUID
}

// adminTransition — общий каркас для административных переходов статуса спора.
func (h *DisputeHandler) adminTransition(c *gin.Context, fn func(disputeActorInput) (interface{}, error)) {
	actor, err := common.CurrentActor(c)
	if err != nil {
		common.RespondUnauthorized(c)
		return
	}

	disputeID, err := common.ParseUUIDParam(c, "id")
	if err != nil {
		common.RespondBadRequest(c, err.Error())
		return
	}

	result, err := fn(disputeActorInput{actor: actor, disputeID: disputeID})
	if err != nil {
		_ = c.Error(err)
		return
	}

	common.RespondJSON(c, http.StatusOK, result)
}
