package handler

import (
	"net/http"

	"hrms/internal/middleware"
	"hrms/internal/repository"
	"hrms/internal/service"
	"hrms/pkg/pagination"
	"hrms/pkg/response"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type LoanHandler struct {
	loanService service.LoanService
}

func NewLoanHandler(loanService service.LoanService) *LoanHandler {
	return &LoanHandler{loanService: loanService}
}

func (h *LoanHandler) RegisterRoutes(router *gin.RouterGroup) {
	loans := router.Group("/api/loans")
	{
		loans.POST("", middleware.RequireRole("admin", "hr", "staff"), h.Apply)
		loans.GET("", middleware.RequireRole("admin", "hr"), h.List)
		loans.GET("/pending-approval", middleware.RequireRole("admin", "hr"), h.ListPendingApproval)
		loans.GET("/:id", middleware.RequireRole("admin", "hr", "staff"), h.GetByID)
		loans.POST("/:id/cancel", middleware.RequireRole("admin", "hr", "staff"), h.Cancel)
		loans.POST("/:id/disburse", middleware.RequireRole("admin", "hr"), h.Disburse)
	}

	router.GET("/api/staff/:id/loans", middleware.RequireRole("admin", "hr", "staff"), h.ListByStaff)
}

// Apply submits a loan application
// @Summary      Apply for a loan
// @Description  Creates a pending loan application and registers it with the approval workflow
// @Tags         loans
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        payload  body      service.ApplyLoanRequest  true  "Loan Application Payload"
// @Success      201      {object}  response.Response{data=service.LoanResponse}
// @Failure      400      {object}  response.Response
// @Failure      409      {object}  response.Response
// @Router       /api/loans [post]
func (h *LoanHandler) Apply(c *gin.Context) {
	var req service.ApplyLoanRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, response.Error(http.StatusBadRequest, "Invalid request payload: "+err.Error()))
		return
	}

	req.CreatedBy = middleware.StaffID(c)

	loan, err := h.loanService.Apply(c.Request.Context(), req)
	if err != nil {
		status := statusFor(err)
		c.JSON(status, response.Error(status, err.Error()))
		return
	}

	c.JSON(http.StatusCreated, response.Success(http.StatusCreated, loan))
}

// Cancel cancels a pending or draft loan. Only the loan owner can cancel.
func (h *LoanHandler) Cancel(c *gin.Context) {
	loan, err := h.loanService.Cancel(c.Request.Context(), c.Param("id"), middleware.StaffID(c))
	if err != nil {
		status := statusFor(err)
		c.JSON(status, response.Error(status, err.Error()))
		return
	}

	c.JSON(http.StatusOK, response.Success(http.StatusOK, loan))
}

// Disburse releases funds on an approved loan and generates its schedule
// @Summary      Disburse an approved loan
// @Tags         loans
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id       path      string                       true  "Loan ID"
// @Param        payload  body      service.DisburseLoanRequest  true  "Disbursement Payload"
// @Success      200      {object}  response.Response{data=service.LoanResponse}
// @Failure      409      {object}  response.Response
// @Router       /api/loans/{id}/disburse [post]
func (h *LoanHandler) Disburse(c *gin.Context) {
	var req service.DisburseLoanRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, response.Error(http.StatusBadRequest, "Invalid request payload: "+err.Error()))
		return
	}

	req.DisbursedBy = middleware.StaffID(c)

	loan, err := h.loanService.Disburse(c.Request.Context(), c.Param("id"), req)
	if err != nil {
		status := statusFor(err)
		c.JSON(status, response.Error(status, err.Error()))
		return
	}

	c.JSON(http.StatusOK, response.Success(http.StatusOK, loan))
}

func (h *LoanHandler) GetByID(c *gin.Context) {
	loan, err := h.loanService.GetByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		status := statusFor(err)
		c.JSON(status, response.Error(status, err.Error()))
		return
	}

	c.JSON(http.StatusOK, response.Success(http.StatusOK, loan))
}

func (h *LoanHandler) List(c *gin.Context) {
	params := pagination.Parse(c)
	filter := repository.LoanFilter{
		Status:   c.Query("status"),
		LoanType: c.Query("loan_type"),
		Page:     params.Page,
		Limit:    params.Limit,
	}
	if staffID := c.Query("staff_id"); staffID != "" {
		parsed, err := uuid.Parse(staffID)
		if err != nil {
			c.JSON(http.StatusBadRequest, response.Error(http.StatusBadRequest, "Invalid staff_id"))
			return
		}
		filter.StaffID = &parsed
	}

	loans, total, err := h.loanService.List(c.Request.Context(), filter)
	if err != nil {
		status := statusFor(err)
		c.JSON(status, response.Error(status, err.Error()))
		return
	}

	c.JSON(http.StatusOK, response.Paged(http.StatusOK, loans, total))
}

func (h *LoanHandler) ListPendingApproval(c *gin.Context) {
	loans, err := h.loanService.ListPendingApproval(c.Request.Context())
	if err != nil {
		status := statusFor(err)
		c.JSON(status, response.Error(status, err.Error()))
		return
	}

	c.JSON(http.StatusOK, response.Success(http.StatusOK, loans))
}

func (h *LoanHandler) ListByStaff(c *gin.Context) {
	loans, err := h.loanService.ListByStaff(c.Request.Context(), c.Param("id"))
	if err != nil {
		status := statusFor(err)
		c.JSON(status, response.Error(status, err.Error()))
		return
	}

	c.JSON(http.StatusOK, response.Success(http.StatusOK, loans))
}
