package handlers

import (
	"net/http"

	"expense_tracker/internal/middleware"
	"expense_tracker/internal/models"
	"expense_tracker/internal/services"
	"expense_tracker/internal/services/dto"

	"github.com/gin-gonic/gin"
)

type TicketHandler struct {
	*BaseHandler
	ticketService services.TicketService
}

func NewTicketHandler(base *BaseHandler, ticketService services.TicketService) *TicketHandler {
	return &TicketHandler{
		BaseHandler:   base,
		ticketService: ticketService,
	}
}

func (h *TicketHandler) RegisterRoutes(rg *gin.RouterGroup, authMW gin.HandlerFunc) {
	employee := middleware.RoleMiddleware(models.UserRoleEmployee)
	employer := middleware.RoleMiddleware(models.UserRoleEmployer)

	tickets := rg.Group("/tickets")
	tickets.Use(authMW)
	{
		tickets.GET("", h.List)
		tickets.POST("", employee, h.Create)
		tickets.GET("/:id", h.Get)
		tickets.PUT("/:id", employee, h.Update)
		tickets.DELETE("/:id", employee, h.Delete)
		tickets.POST("/:id/approve", employer, h.Approve)
		tickets.POST("/:id/deny", employer, h.Deny)
		tickets.GET("/:id/events", h.Events)
	}
}

// List godoc
// @Summary List visible tickets
// @Description Employees see their own tickets; employers see all tickets of active employees.
// @Tags tickets
// @Produce json
// @Security BearerAuth
// @Success 200 {array} dto.TicketResponse
// @Router /tickets [get]
func (h *TicketHandler) List(c *gin.Context) {
	user, ok := h.GetAndAuthorizeUser(c)
	if !ok {
		return
	}

	tickets, err := h.ticketService.List(h.GetDB(c), user)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, tickets)
}

// Create godoc
// @Summary Submit an expense ticket
// @Tags tickets
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body dto.CreateTicketRequest true "Ticket"
// @Success 201 {object} dto.TicketResponse
// @Failure 400 {object} apperrors.ErrorResponse
// @Failure 403 {object} apperrors.ErrorResponse
// @Router /tickets [post]
func (h *TicketHandler) Create(c *gin.Context) {
	user, ok := h.GetAndAuthorizeUser(c)
	if !ok {
		return
	}

	var req dto.CreateTicketRequest
	if !h.BindAndValidate_JSON(c, &req) {
		return
	}

	ticket, err := h.ticketService.Create(h.GetDB(c), user, &req)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusCreated, ticket)
}

// Get godoc
// @Summary Get a ticket
// @Tags tickets
// @Produce json
// @Security BearerAuth
// @Param id path string true "Ticket ID"
// @Success 200 {object} dto.TicketResponse
// @Failure 404 {object} apperrors.ErrorResponse
// @Router /tickets/{id} [get]
func (h *TicketHandler) Get(c *gin.Context) {
	user, ok := h.GetAndAuthorizeUser(c)
	if !ok {
		return
	}

	ticket, err := h.ticketService.Get(h.GetDB(c), user, c.Param("id"))
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, ticket)
}

// Update godoc
// @Summary Update a pending ticket
// @Tags tickets
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Ticket ID"
// @Param request body dto.UpdateTicketRequest true "Fields to change"
// @Success 200 {object} dto.TicketResponse
// @Failure 404 {object} apperrors.ErrorResponse
// @Failure 409 {object} apperrors.ErrorResponse "Ticket is no longer pending"
// @Router /tickets/{id} [put]
func (h *TicketHandler) Update(c *gin.Context) {
	user, ok := h.GetAndAuthorizeUser(c)
	if !ok {
		return
	}

	var req dto.UpdateTicketRequest
	if !h.BindAndValidate_JSON(c, &req) {
		return
	}

	ticket, err := h.ticketService.Update(h.GetDB(c), user, c.Param("id"), &req)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, ticket)
}

// Delete godoc
// @Summary Delete a pending ticket
// @Tags tickets
// @Produce json
// @Security BearerAuth
// @Param id path string true "Ticket ID"
// @Success 200 {object} dto.TicketResponse
// @Failure 404 {object} apperrors.ErrorResponse
// @Failure 409 {object} apperrors.ErrorResponse "Ticket is no longer pending"
// @Router /tickets/{id} [delete]
func (h *TicketHandler) Delete(c *gin.Context) {
	user, ok := h.GetAndAuthorizeUser(c)
	if !ok {
		return
	}

	ticket, err := h.ticketService.Delete(h.GetDB(c), user, c.Param("id"))
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, ticket)
}

// Approve godoc
// @Summary Approve a ticket
// @Tags tickets
// @Produce json
// @Security BearerAuth
// @Param id path string true "Ticket ID"
// @Success 200 {object} dto.TicketResponse
// @Failure 409 {object} apperrors.ErrorResponse "Already denied"
// @Router /tickets/{id}/approve [post]
func (h *TicketHandler) Approve(c *gin.Context) {
	user, ok := h.GetAndAuthorizeUser(c)
	if !ok {
		return
	}

	ticket, err := h.ticketService.Approve(h.GetDB(c), user, c.Param("id"))
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, ticket)
}

// Deny godoc
// @Summary Deny a ticket
// @Tags tickets
// @Produce json
// @Security BearerAuth
// @Param id path string true "Ticket ID"
// @Success 200 {object} dto.TicketResponse
// @Failure 409 {object} apperrors.ErrorResponse "Already approved"
// @Router /tickets/{id}/deny [post]
func (h *TicketHandler) Deny(c *gin.Context) {
	user, ok := h.GetAndAuthorizeUser(c)
	if !ok {
		return
	}

	ticket, err := h.ticketService.Deny(h.GetDB(c), user, c.Param("id"))
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, ticket)
}

// Events godoc
// @Summary Audit trail of a ticket
// @Tags tickets
// @Produce json
// @Security BearerAuth
// @Param id path string true "Ticket ID"
// @Success 200 {array} dto.TicketEventResponse
// @Failure 404 {object} apperrors.ErrorResponse
// @Router /tickets/{id}/events [get]
func (h *TicketHandler) Events(c *gin.Context) {
	user, ok := h.GetAndAuthorizeUser(c)
	if !ok {
		return
	}

	events, err := h.ticketService.Events(h.GetDB(c), user, c.Param("id"))
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, events)
}
