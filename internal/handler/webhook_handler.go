package handler

import (
	"net/http"
	"os"

	"hrms/internal/approval"
	"hrms/internal/service"
	"hrms/pkg/response"

	"github.com/gin-gonic/gin"
)

// WebhookHandler receives asynchronous callbacks from the external approval
// engine. Delivery is at-least-once; the loan service tolerates duplicates.
type WebhookHandler struct {
	loanService service.LoanService
}

func NewWebhookHandler(loanService service.LoanService) *WebhookHandler {
	return &WebhookHandler{loanService: loanService}
}

func (h *WebhookHandler) RegisterRoutes(router *gin.RouterGroup) {
	router.POST("/api/webhooks/approval-completed", h.ApprovalCompleted)
}

// ApprovalCompleted applies an approval.completed event to its loan
// @Summary      Approval engine completion callback
// @Tags         webhooks
// @Accept       json
// @Produce      json
// @Param        payload  body      approval.CompletedEvent  true  "Completion Event"
// @Success      200      {object}  response.Response
// @Failure      401      {object}  response.Response
// @Router       /api/webhooks/approval-completed [post]
func (h *WebhookHandler) ApprovalCompleted(c *gin.Context) {
	// Shared-secret check; the engine is the only expected caller
	if secret := os.Getenv("APPROVAL_WEBHOOK_SECRET"); secret != "" {
		if c.GetHeader("X-Webhook-Secret") != secret {
			c.JSON(http.StatusUnauthorized, response.Error(http.StatusUnauthorized, "Invalid webhook secret"))
			return
		}
	}

	var event approval.CompletedEvent
	if err := c.ShouldBindJSON(&event); err != nil {
		c.JSON(http.StatusBadRequest, response.Error(http.StatusBadRequest, "Invalid event payload: "+err.Error()))
		return
	}

	if err := h.loanService.HandleApprovalCompleted(c.Request.Context(), event); err != nil {
		status := statusFor(err)
		c.JSON(status, response.Error(status, err.Error()))
		return
	}

	c.JSON(http.StatusOK, response.Success(http.StatusOK, gin.H{"received": true}))
}
