package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/ignatzorin/consulting-backend/internal/dto"
	"github.com/ignatzorin/consulting-backend/internal/http/handlers/common"
	ucacceptance "github.com/ignatzorin/consulting-backend/internal/usecase/acceptance"
	ucproposal "github.com/ignatzorin/consulting-backend/internal/usecase/proposal"
)

// ProposalHandler обслуживает жизненный цикл предложений, включая принятие.
type ProposalHandler struct {
	submit      *ucproposal.SubmitProposalUseCase
	withdraw    *ucproposal.WithdrawProposalUseCase
	reject      *ucproposal.RejectProposalUseCase
	underReview *ucproposal.MarkUnderReviewUseCase
	list        *ucproposal.ListProposalsUseCase
	accept      *ucacceptance.AcceptProposalUseCase
}

func NewProposalHandler(
	submit *ucproposal.SubmitProposalUseCase,
	withdraw *ucproposal.WithdrawProposalUseCase,
	reject *ucproposal.RejectProposalUseCase,
	underReview *ucproposal.MarkUnderReviewUseCase,
	list *ucproposal.ListProposalsUseCase,
	accept *ucacceptance.AcceptProposalUseCase,
) *ProposalHandler {
	return &ProposalHandler{
		submit:      submit,
		withdraw:    withdraw,
		reject:      reject,
		underReview: underReview,
		list:        list,
		accept:      accept,
	}
}

// Submit обслуживает POST /api/projects/:id/proposals.
func (h *ProposalHandler) Submit(c *gin.Context) {
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

	var req dto.SubmitProposalRequest
	if err := common.BindAndValidate(c, &req); err != nil {
		common.RespondBadRequest(c, err.Error())
		return
	}

	proposal, err := h.submit.Execute(c.Request.Context(), ucproposal.SubmitProposalInput{
		Actor:                 actor,
		ProjectID:             projectID,
		CoverLetter:           req.CoverLetter,
		ProposedAmount:        req.ProposedAmount,
		EstimatedDurationDays: req.EstimatedDurationDays,
		DeliveryDate:          req.DeliveryDate,
	})
	if err != nil {
		_ = c.Error(err)
		return
	}

	common.RespondJSON(c, http.StatusCreated, dto.FromProposal(proposal))
}

// ListByProject обслуживает GET /api/projects/:id/proposals.
func (h *ProposalHandler) ListByProject(c *gin.Context) {
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

	proposals, err := h.list.ByProject(c.Request.Context(), actor, projectID)
	if err != nil {
		_ = c.Error(err)
		return
	}

	common.RespondJSON(c, http.StatusOK, dto.FromProposals(proposals))
}

// ListMine обслуживает GET /api/proposals/my.
func (h *ProposalHandler) ListMine(c *gin.Context) {
	actor, err := common.CurrentActor(c)
	if err != nil {
		common.RespondUnauthorized(c)
		return
	}

	proposals, err := h.list.ByConsultant(c.Request.Context(), actor, actor.ID)
	if err != nil {
		_ = c.Error(err)
		return
	}

	common.RespondJSON(c, http.StatusOK, dto.FromProposals(proposals))
}

// Get обслуживает GET /api/proposals/:id.
func (h *ProposalHandler) Get(c *gin.Context) {
	actor, err := common.CurrentActor(c)
	if err != nil {
		common.RespondUnauthorized(c)
		return
	}

	proposalID, err := common.ParseUUIDParam(c, "id")
	if err != nil {
		common.RespondBadRequest(c, err.Error())
		return
	}

	proposal, err := h.list.Get(c.Request.Context(), actor, proposalID)
	if err != nil {
		_ = c.Error(err)
		return
	}

	common.RespondJSON(c, http.StatusOK, dto.FromProposal(proposal))
}

// Withdraw обслуживает POST /api/proposals/:id/withdraw.
func (h *ProposalHandler) Withdraw(c *gin.Context) {
	actor, err := common.CurrentActor(c)
	if err != nil {
		common.RespondUnauthorized(c)
		return
	}

	proposalID, err := common.ParseUUIDParam(c, "id")
	if err != nil {
		common.RespondBadRequest(c, err.Error())
		return
	}

	proposal, err := h.withdraw.Execute(c.Request.Context(), ucproposal.WithdrawProposalInput{
		Actor:      actor,
		ProposalID: proposalID,
	})
	if err != nil {
		_ = c.Error(err)
		return
	}

	common.RespondJSON(c, http.StatusOK, dto.FromProposal(proposal))
}

// Reject обслуживает POST /api/proposals/:id/reject.
func (h *ProposalHandler) Reject(c *gin.Context) {
	actor, err := common.CurrentActor(c)
	if err != nil {
		common.RespondUnauthorized(c)
		return
	}

	proposalID, err := common.ParseUUIDParam(c, "id")
	if err != nil {
		common.RespondBadRequest(c, err.Error())
		return
	}

	var req dto.RejectProposalRequest
	if err := common.BindAndValidate(c, &req); err != nil {
		common.RespondBadRequest(c, err.Error())
		return
	}

	proposal, err := h.reject.Execute(c.Request.Context(), ucproposal.RejectProposalInput{
		Actor:      actor,
		ProposalID: proposalID,
		Reason:     req.Reason,
	})
	if err != nil {
		_ = c.Error(err)
		return
	}

	common.RespondJSON(c, http.StatusOK, dto.FromProposal(proposal))
}

// MarkUnderReview обслуживает POST /api/proposals/:id/review.
func (h *ProposalHandler) MarkUnderReview(c *gin.Context) {
	actor, err := common.CurrentActor(c)
	if err != nil {
		common.RespondUnauthorized(c)
		return
	}

	proposalID, err := common.ParseUUIDParam(c, "id")
	if err != nil {
		common.RespondBadRequest(c, err.Error())
		return
	}

	proposal, err := h.underReview.Execute(c.Request.Context(), ucproposal.MarkUnderReviewInput{
		Actor:      actor,
		ProposalID: proposalID,
	})
	if err != nil {
		_ = c.Error(err)
		return
	}

	common.RespondJSON(c, http.StatusOK, dto.FromProposal(proposal))
}

// Accept обслуживает POST /api/projects/:id/proposals/:proposalId/accept.
// Принятие атомарно: победитель, отклонение остальных и перевод проекта
// в работу выполняются одной транзакцией.
func (h *ProposalHandler) Accept(c *gin.Context) {
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

	proposalID, err := common.ParseUUIDParam(c, "proposalId")
	if err != nil {
		common.RespondBadRequest(c, err.Error())
		return
	}

	result, err := h.accept.Execute(c.Request.Context(), ucacceptance.AcceptProposalInput{
		Actor:      actor,
		ProjectID:  projectID,
		ProposalID: proposalID,
	})
	if err != nil {
		_ = c.Error(err)
		return
	}

	resp := dto.AcceptProposalResponse{
		Project:  dto.FromProject(result.Project),
		Accepted: dto.FromProposal(result.Accepted),
		Rejected: dto.FromProposals(result.Rejected),
	}
	common.RespondJSON(c, http.StatusOK, resp)
}
