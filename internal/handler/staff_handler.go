package handler

import (
	"net/http"

	"hrms/internal/middleware"
	"hrms/internal/service"
	"hrms/pkg/pagination"
	"hrms/pkg/response"

	"github.com/gin-gonic/gin"
)

type StaffHandler struct {
	staffService service.StaffService
}

func NewStaffHandler(staffService service.StaffService) *StaffHandler {
	return &StaffHandler{staffService: staffService}
}

func (h *StaffHandler) RegisterRoutes(router *gin.RouterGroup) {
	// Public route
	router.POST("/login", h.Login)

	router.GET("/me", middleware.RequireRole("admin", "hr", "staff"), h.GetMe)

	staff := router.Group("/api/staff")
	{
		staff.GET("", middleware.RequireRole("admin", "hr"), h.ListStaff)
		staff.GET("/:id", middleware.RequireRole("admin", "hr", "staff"), h.GetByID)
		staff.POST("", middleware.RequireRole("admin", "hr"), h.CreateStaff)
	}

	branches := router.Group("/api/branches")
	{
		branches.GET("", middleware.RequireRole("admin", "hr", "staff"), h.ListBranches)
		branches.POST("", middleware.RequireRole("admin"), h.CreateBranch)
	}
}

// Login authenticates a staff member and returns a JWT
// @Summary      Staff login
// @Tags         staff
// @Accept       json
// @Produce      json
// @Param        payload  body      service.LoginRequest  true  "Login Payload"
// @Success      200      {object}  response.Response{data=service.TokenResponse}
// @Failure      400      {object}  response.Response
// @Router       /login [post]
func (h *StaffHandler) Login(c *gin.Context) {
	var req service.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, response.Error(http.StatusBadRequest, "Invalid request payload: "+err.Error()))
		return
	}

	token, err := h.staffService.Login(c.Request.Context(), req)
	if err != nil {
		status := statusFor(err)
		c.JSON(status, response.Error(status, err.Error()))
		return
	}

	c.JSON(http.StatusOK, response.Success(http.StatusOK, token))
}

func (h *StaffHandler) GetMe(c *gin.Context) {
	staff, err := h.staffService.GetByID(c.Request.Context(), middleware.StaffID(c))
	if err != nil {
		status := statusFor(err)
		c.JSON(status, response.Error(status, err.Error()))
		return
	}

	c.JSON(http.StatusOK, response.Success(http.StatusOK, staff))
}

// CreateStaff registers a new staff member
// @Summary      Create staff
// @Tags         staff
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        payload  body      service.CreateStaffRequest  true  "Create Staff Payload"
// @Success      201      {object}  response.Response{data=service.StaffResponse}
// @Failure      409      {object}  response.Response
// @Router       /api/staff [post]
func (h *StaffHandler) CreateStaff(c *gin.Context) {
	var req service.CreateStaffRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, response.Error(http.StatusBadRequest, "Invalid request payload: "+err.Error()))
		return
	}

	staff, err := h.staffService.CreateStaff(c.Request.Context(), req)
	if err != nil {
		status := statusFor(err)
		c.JSON(status, response.Error(status, err.Error()))
		return
	}

	c.JSON(http.StatusCreated, response.Success(http.StatusCreated, staff))
}

func (h *StaffHandler) GetByID(c *gin.Context) {
	staff, err := h.staffService.GetByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		status := statusFor(err)
		c.JSON(status, response.Error(status, err.Error()))
		return
	}

	c.JSON(http.StatusOK, response.Success(http.StatusOK, staff))
}

func (h *StaffHandler) ListStaff(c *gin.Context) {
	params := pagination.Parse(c)

	staffs, total, err := h.staffService.ListStaff(c.Request.Context(), params.Page, params.Limit)
	if err != nil {
		status := statusFor(err)
		c.JSON(status, response.Error(status, err.Error()))
		return
	}

	c.JSON(http.StatusOK, response.Paged(http.StatusOK, staffs, total))
}

func (h *StaffHandler) CreateBranch(c *gin.Context) {
	var req service.CreateBranchRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, response.Error(http.StatusBadRequest, "Invalid request payload: "+err.Error()))
		return
	}

	branch, err := h.staffService.CreateBranch(c.Request.Context(), req)
	if err != nil {
		status := statusFor(err)
		c.JSON(status, response.Error(status, err.Error()))
		return
	}

	c.JSON(http.StatusCreated, response.Success(http.StatusCreated, branch))
}

func (h *StaffHandler) ListBranches(c *gin.Context) {
	branches, err := h.staffService.ListBranches(c.Request.Context())
	if err != nil {
		status := statusFor(err)
		c.JSON(status, response.Error(status, err.Error()))
		return
	}

	c.JSON(http.StatusOK, response.Success(http.StatusOK, branches))
}
