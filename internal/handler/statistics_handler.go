package handler

import (
	"net/http"

	"hrms/internal/middleware"
	"hrms/internal/service"
	"hrms/pkg/response"

	"github.com/gin-gonic/gin"
)

type StatisticsHandler struct {
	statisticsService service.StatisticsService
}

func NewStatisticsHandler(statisticsService service.StatisticsService) *StatisticsHandler {
	return &StatisticsHandler{statisticsService: statisticsService}
}

func (h *StatisticsHandler) RegisterRoutes(router *gin.RouterGroup) {
	statsGroup := router.Group("/api/statistics")
	{
		statsGroup.GET("/loans", middleware.RequireRole("admin", "hr"), h.GetLoanStats)
	}
}

// @Summary      Get loan portfolio statistics
// @Description  Counts by status plus disbursed/outstanding/collected totals and overdue count
// @Tags         statistics
// @Produce      json
// @Security     BearerAuth
// @Success      200 {object} response.Response{data=model.LoanStats}
// @Failure      500 {object} response.Response
// @Router       /api/statistics/loans [get]
func (h *StatisticsHandler) GetLoanStats(c *gin.Context) {
	stats, err := h.statisticsService.GetStats(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, response.Error(http.StatusInternalServerError, err.Error()))
		return
	}

	c.JSON(http.StatusOK, response.Success(http.StatusOK, stats))
}
