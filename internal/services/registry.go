package services

import (
	"expense_tracker/internal/auth"
	"expense_tracker/internal/repositories"
)

// ServiceContainer holds every service of the API.
type ServiceContainer struct {
	AuthService     AuthService
	TicketService   TicketService
	EmployeeService EmployeeService
}

// NewServiceContainer wires repositories into services. notifier may be nil.
func NewServiceContainer(tokens *auth.TokenManager, notifier Notifier) *ServiceContainer {
	userRepo := repositories.NewUserRepository()
	ticketRepo := repositories.NewTicketRepository()
	eventRepo := repositories.NewTicketEventRepository()

	return &ServiceContainer{
		AuthService:     NewAuthService(userRepo, tokens),
		TicketService:   NewTicketService(ticketRepo, eventRepo, notifier),
		EmployeeService: NewEmployeeService(userRepo),
	}
}
