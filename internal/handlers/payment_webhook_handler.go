package handlers

import (
	"github.com/gin-gonic/gin"

	domain "github.com/BonisOleg/coresync-sub000/internal/domain/booking"
	"github.com/BonisOleg/coresync-sub000/internal/httperr"
	"github.com/BonisOleg/coresync-sub000/internal/httpresp"
	ucBooking "github.com/BonisOleg/coresync-sub000/internal/usecase/booking"
)

// PaymentWebhookHandler receives the payment collaborator's callbacks.
type PaymentWebhookHandler struct {
	payment *ucBooking.PaymentCallback
}

func NewPaymentWebhookHandler(payment *ucBooking.PaymentCallback) *PaymentWebhookHandler {
	return &PaymentWebhookHandler{payment: payment}
}

type paymentWebhookRequest struct {
	Reference string `json:"reference" binding:"required"`
	Status    string `json:"status" binding:"required"`
}

func (h *PaymentWebhookHandler) Handle(c *gin.Context) {
	var req paymentWebhookRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "invalid webhook payload")
		return
	}
	if !domain.ValidReference(req.Reference) {
		httperr.BadRequest(c, "invalid_reference", "malformed booking reference")
		return
	}

	switch req.Status {
	case "succeeded":
		b, err := h.payment.Succeeded(c.Request.Context(), req.Reference)
		if err != nil {
			httperr.FromDomain(c, err)
			return
		}
		httpresp.OK(c, b)
	case "failed":
		b, err := h.payment.Failed(c.Request.Context(), req.Reference)
		if err != nil {
			httperr.FromDomain(c, err)
			return
		}
		httpresp.OK(c, b)
	default:
		httperr.BadRequest(c, "invalid_status", "unknown payment status")
	}
}
