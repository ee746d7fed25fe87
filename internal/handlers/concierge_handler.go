package handlers

import (
	"github.com/gin-gonic/gin"

	"github.com/BonisOleg/coresync-sub000/internal/httperr"
	"github.com/BonisOleg/coresync-sub000/internal/middleware"
	ucConcierge "github.com/BonisOleg/coresync-sub000/internal/usecase/concierge"
)

type ConciergeHandler struct {
	create *ucConcierge.CreateRequest
}

func NewConciergeHandler(create *ucConcierge.CreateRequest) *ConciergeHandler {
	return &ConciergeHandler{create: create}
}

type createConciergeRequest struct {
	Kind    string `json:"kind" binding:"required"`
	Details string `json:"details"`
}

func (h *ConciergeHandler) Create(c *gin.Context) {
	memberID := c.GetUint(middleware.ContextMemberID)

	var req createConciergeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "invalid request body")
		return
	}

	cr, err := h.create.Execute(c.Request.Context(), ucConcierge.CreateRequestInput{
		MemberID: memberID,
		Kind:     req.Kind,
		Details:  req.Details,
	})
	if err != nil {
		httperr.FromDomain(c, err)
		return
	}

	c.JSON(201, cr)
}
