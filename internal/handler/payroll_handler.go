package handler

import (
	"net/http"

	"hrms/internal/middleware"
	"hrms/internal/service"
	"hrms/pkg/response"

	"github.com/gin-gonic/gin"
)

type PayrollHandler struct {
	payrollService service.PayrollService
}

func NewPayrollHandler(payrollService service.PayrollService) *PayrollHandler {
	return &PayrollHandler{payrollService: payrollService}
}

func (h *PayrollHandler) RegisterRoutes(router *gin.RouterGroup) {
	payroll := router.Group("/api/payroll")
	{
		payroll.GET("/export", middleware.RequireRole("admin", "hr"), h.Export)
		payroll.POST("/process", middleware.RequireRole("admin", "hr"), h.Process)
		payroll.GET("/summary", middleware.RequireRole("admin", "hr"), h.Summary)
	}
}

// Export lists the month's salary-deductible installments
// @Summary      Export payroll deductions for a month
// @Tags         payroll
// @Produce      json
// @Security     BearerAuth
// @Param        month  query     string  true  "Payroll month (YYYY-MM)"
// @Success      200    {object}  response.Response{data=[]model.PayrollExportRow}
// @Failure      400    {object}  response.Response
// @Router       /api/payroll/export [get]
func (h *PayrollHandler) Export(c *gin.Context) {
	rows, err := h.payrollService.ExportForMonth(c.Request.Context(), c.Query("month"))
	if err != nil {
		status := statusFor(err)
		c.JSON(status, response.Error(status, err.Error()))
		return
	}

	c.JSON(http.StatusOK, response.Success(http.StatusOK, rows))
}

type processPayrollRequest struct {
	Month     string `json:"month" binding:"required"`
	Reference string `json:"reference" binding:"required"`
}

// Process applies the month's deductions as independent repayments
// @Summary      Process payroll deductions
// @Description  Applies every due salary deduction; per-row failures are reported, never block the batch
// @Tags         payroll
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        payload  body      processPayrollRequest  true  "Payroll Run Payload"
// @Success      200      {object}  response.Response{data=model.PayrollBatchResult}
// @Router       /api/payroll/process [post]
func (h *PayrollHandler) Process(c *gin.Context) {
	var req processPayrollRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, response.Error(http.StatusBadRequest, "Invalid request payload: "+err.Error()))
		return
	}

	result, err := h.payrollService.ProcessDeductions(c.Request.Context(), req.Month, req.Reference)
	if err != nil {
		status := statusFor(err)
		c.JSON(status, response.Error(status, err.Error()))
		return
	}

	c.JSON(http.StatusOK, response.Success(http.StatusOK, result))
}

// Summary aggregates the month's deductions per branch
func (h *PayrollHandler) Summary(c *gin.Context) {
	summaries, err := h.payrollService.SummaryByBranch(c.Request.Context(), c.Query("month"))
	if err != nil {
		status := statusFor(err)
		c.JSON(status, response.Error(status, err.Error()))
		return
	}

	c.JSON(http.StatusOK, response.Success(http.StatusOK, summaries))
}
