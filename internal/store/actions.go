package store

import (
	"expense_tracker/internal/models"
	"expense_tracker/internal/services/dto"
)

// Action is anything the root reducer understands. Type names follow the
// slice/operation/phase convention.
type Action interface {
	Type() string
}

// auth

type LoginPending struct{}
type LoginFulfilled struct{ Response dto.AuthResponse }
type LoginRejected struct{ Error string }

type RegisterPending struct{}
type RegisterFulfilled struct{ Response dto.AuthResponse }
type RegisterRejected struct{ Error string }

type LogoutFulfilled struct{}

type InitializePending struct{}

// InitializeFulfilled carries a nil User when there was no stored session.
type InitializeFulfilled struct {
	Token string
	User  *dto.UserResponse
}
type InitializeRejected struct{ Error string }

type ClearAuthError struct{}
type SetUser struct{ User dto.UserResponse }

func (LoginPending) Type() string        { return "auth/login/pending" }
func (LoginFulfilled) Type() string      { return "auth/login/fulfilled" }
func (LoginRejected) Type() string       { return "auth/login/rejected" }
func (RegisterPending) Type() string     { return "auth/register/pending" }
func (RegisterFulfilled) Type() string   { return "auth/register/fulfilled" }
func (RegisterRejected) Type() string    { return "auth/register/rejected" }
func (LogoutFulfilled) Type() string     { return "auth/logout/fulfilled" }
func (InitializePending) Type() string   { return "auth/initialize/pending" }
func (InitializeFulfilled) Type() string { return "auth/initialize/fulfilled" }
func (InitializeRejected) Type() string  { return "auth/initialize/rejected" }
func (ClearAuthError) Type() string      { return "auth/clearError" }
func (SetUser) Type() string             { return "auth/setUser" }

// tickets

type FetchTicketsPending struct{}
type FetchTicketsFulfilled struct{ Tickets []dto.TicketResponse }
type FetchTicketsRejected struct{ Error string }

type CreateTicketPending struct{}
type CreateTicketFulfilled struct{ Ticket dto.TicketResponse }
type CreateTicketRejected struct{ Error string }

type UpdateTicketPending struct{}
type UpdateTicketFulfilled struct{ Ticket dto.TicketResponse }
type UpdateTicketRejected struct{ Error string }

// DecideTicket* cover both approve and deny; Ticket is the server's copy
// when it returned one.
type DecideTicketPending struct{}
type DecideTicketFulfilled struct {
	TicketID string
	Status   models.TicketStatus
	Ticket   *dto.TicketResponse
}
type DecideTicketRejected struct{ Error string }

type DeleteTicketPending struct{}
type DeleteTicketFulfilled struct{ TicketID string }
type DeleteTicketRejected struct{ Error string }

type ClearTicketsError struct{}
type ClearTickets struct{}

func (FetchTicketsPending) Type() string   { return "tickets/fetch/pending" }
func (FetchTicketsFulfilled) Type() string { return "tickets/fetch/fulfilled" }
func (FetchTicketsRejected) Type() string  { return "tickets/fetch/rejected" }
func (CreateTicketPending) Type() string   { return "tickets/create/pending" }
func (CreateTicketFulfilled) Type() string { return "tickets/create/fulfilled" }
func (CreateTicketRejected) Type() string  { return "tickets/create/rejected" }
func (UpdateTicketPending) Type() string   { return "tickets/update/pending" }
func (UpdateTicketFulfilled) Type() string { return "tickets/update/fulfilled" }
func (UpdateTicketRejected) Type() string  { return "tickets/update/rejected" }
func (DecideTicketPending) Type() string   { return "tickets/decide/pending" }
func (DecideTicketFulfilled) Type() string { return "tickets/decide/fulfilled" }
func (DecideTicketRejected) Type() string  { return "tickets/decide/rejected" }
func (DeleteTicketPending) Type() string   { return "tickets/delete/pending" }
func (DeleteTicketFulfilled) Type() string { return "tickets/delete/fulfilled" }
func (DeleteTicketRejected) Type() string  { return "tickets/delete/rejected" }
func (ClearTicketsError) Type() string     { return "tickets/clearError" }
func (ClearTickets) Type() string          { return "tickets/clearTickets" }

// employees

type FetchEmployeesPending struct{}
type FetchEmployeesFulfilled struct{ Employees []dto.UserResponse }
type FetchEmployeesRejected struct{ Error string }

type ToggleEmployeePending struct{}
type ToggleEmployeeFulfilled struct {
	EmployeeID string
	Suspended  bool
}
type ToggleEmployeeRejected struct{ Error string }

type ClearEmployeesError struct{}
type ClearEmployees struct{}

func (FetchEmployeesPending) Type() string   { return "employees/fetch/pending" }
func (FetchEmployeesFulfilled) Type() string { return "employees/fetch/fulfilled" }
func (FetchEmployeesRejected) Type() string  { return "employees/fetch/rejected" }
func (ToggleEmployeePending) Type() string   { return "employees/toggle/pending" }
func (ToggleEmployeeFulfilled) Type() string { return "employees/toggle/fulfilled" }
func (ToggleEmployeeRejected) Type() string  { return "employees/toggle/rejected" }
func (ClearEmployeesError) Type() string     { return "employees/clearError" }
func (ClearEmployees) Type() string          { return "employees/clearEmployees" }
