package handlers

import (
	"net/http"

	"expense_tracker/internal/middleware"
	"expense_tracker/internal/models"
	"expense_tracker/internal/services"

	"github.com/gin-gonic/gin"
)

type EmployeeHandler struct {
	*BaseHandler
	employeeService services.EmployeeService
}

func NewEmployeeHandler(base *BaseHandler, employeeService services.EmployeeService) *EmployeeHandler {
	return &EmployeeHandler{
		BaseHandler:     base,
		employeeService: employeeService,
	}
}

func (h *EmployeeHandler) RegisterRoutes(rg *gin.RouterGroup, authMW gin.HandlerFunc) {
	employees := rg.Group("/employees")
	employees.Use(authMW, middleware.RoleMiddleware(models.UserRoleEmployer))
	{
		employees.GET("", h.List)
		employees.POST("/:id/suspend", h.Suspend)
		employees.POST("/:id/activate", h.Activate)
	}
}

// List godoc
// @Summary List employees
// @Tags employees
// @Produce json
// @Security BearerAuth
// @Success 200 {array} dto.UserResponse
// @Failure 403 {object} apperrors.ErrorResponse
// @Router /employees [get]
func (h *EmployeeHandler) List(c *gin.Context) {
	employees, err := h.employeeService.List(h.GetDB(c))
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, employees)
}

// Suspend godoc
// @Summary Suspend an employee
// @Tags employees
// @Produce json
// @Security BearerAuth
// @Param id path string true "Employee ID"
// @Success 200 {object} dto.UserResponse
// @Failure 404 {object} apperrors.ErrorResponse
// @Router /employees/{id}/suspend [post]
func (h *EmployeeHandler) Suspend(c *gin.Context) {
	employee, err := h.employeeService.Suspend(h.GetDB(c), c.Param("id"))
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, employee)
}

// Activate godoc
// @Summary Reactivate an employee
// @Tags employees
// @Produce json
// @Security BearerAuth
// @Param id path string true "Employee ID"
// @Success 200 {object} dto.UserResponse
// @Failure 404 {object} apperrors.ErrorResponse
// @Router /employees/{id}/activate [post]
func (h *EmployeeHandler) Activate(c *gin.Context) {
	employee, err := h.employeeService.Activate(h.GetDB(c), c.Param("id"))
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, employee)
}
