package handlers

// AppHandlers holds every HTTP handler of the API.
type AppHandlers struct {
	HealthHandler   *HealthHandler
	AuthHandler     *AuthHandler
	TicketHandler   *TicketHandler
	EmployeeHandler *EmployeeHandler
}
