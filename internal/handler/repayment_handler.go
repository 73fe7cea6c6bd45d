package handler

import (
	"net/http"

	"hrms/internal/middleware"
	"hrms/internal/service"
	"hrms/pkg/response"

	"github.com/gin-gonic/gin"
)

type RepaymentHandler struct {
	repaymentService service.RepaymentService
}

func NewRepaymentHandler(repaymentService service.RepaymentService) *RepaymentHandler {
	return &RepaymentHandler{repaymentService: repaymentService}
}

func (h *RepaymentHandler) RegisterRoutes(router *gin.RouterGroup) {
	loans := router.Group("/api/loans")
	{
		loans.GET("/:id/schedule", middleware.RequireRole("admin", "hr", "staff"), h.GetSchedule)
		loans.POST("/:id/schedule", middleware.RequireRole("admin", "hr"), h.RegenerateSchedule)
		loans.POST("/:id/repayments", middleware.RequireRole("admin", "hr"), h.RecordPayment)
	}

	router.GET("/api/repayments/overdue", middleware.RequireRole("admin", "hr"), h.ListOverdue)
}

// RecordPayment applies a manual repayment against a loan
// @Summary      Record a repayment
// @Description  Applies a payment to the chosen or earliest open installment and reconciles loan totals
// @Tags         repayments
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id       path      string                        true  "Loan ID"
// @Param        payload  body      service.RecordPaymentRequest  true  "Payment Payload"
// @Success      200      {object}  response.Response{data=service.PaymentResult}
// @Failure      409      {object}  response.Response
// @Router       /api/loans/{id}/repayments [post]
func (h *RepaymentHandler) RecordPayment(c *gin.Context) {
	var req service.RecordPaymentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, response.Error(http.StatusBadRequest, "Invalid request payload: "+err.Error()))
		return
	}

	req.RecordedBy = middleware.StaffID(c)

	result, err := h.repaymentService.RecordPayment(c.Request.Context(), c.Param("id"), req)
	if err != nil {
		status := statusFor(err)
		c.JSON(status, response.Error(status, err.Error()))
		return
	}

	c.JSON(http.StatusOK, response.Success(http.StatusOK, result))
}

// GetSchedule returns a loan's full installment schedule
func (h *RepaymentHandler) GetSchedule(c *gin.Context) {
	schedule, err := h.repaymentService.ListByLoan(c.Request.Context(), c.Param("id"))
	if err != nil {
		status := statusFor(err)
		c.JSON(status, response.Error(status, err.Error()))
		return
	}

	c.JSON(http.StatusOK, response.Success(http.StatusOK, schedule))
}

// RegenerateSchedule deletes and rebuilds the installment schedule for a loan
func (h *RepaymentHandler) RegenerateSchedule(c *gin.Context) {
	schedule, err := h.repaymentService.GenerateSchedule(c.Request.Context(), c.Param("id"))
	if err != nil {
		status := statusFor(err)
		c.JSON(status, response.Error(status, err.Error()))
		return
	}

	c.JSON(http.StatusOK, response.Success(http.StatusOK, schedule))
}

// ListOverdue returns every unpaid installment past its due date
func (h *RepaymentHandler) ListOverdue(c *gin.Context) {
	overdue, err := h.repaymentService.ListOverdue(c.Request.Context())
	if err != nil {
		status := statusFor(err)
		c.JSON(status, response.Error(status, err.Error()))
		return
	}

	c.JSON(http.StatusOK, response.Success(http.StatusOK, overdue))
}
