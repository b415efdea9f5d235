package store

import (
	"expense_tracker/internal/services/dto"
)

// Reduce is the root reducer.
func Reduce(st State, action Action) State {
	st.Auth = reduceAuth(st.Auth, action)
	st.Tickets = reduceTickets(st.Tickets, action)
	st.Employees = reduceEmployees(st.Employees, action)
	return st
}

func reduceAuth(st AuthState, action Action) AuthState {
	switch a := action.(type) {
	case LoginPending, RegisterPending:
		st.Loading = true
		st.Error = ""
	case LoginFulfilled:
		st = authenticated(st, a.Response)
	case RegisterFulfilled:
		st = authenticated(st, a.Response)
	case LoginRejected:
		st.Loading = false
		st.Error = a.Error
	case RegisterRejected:
		st.Loading = false
		st.Error = a.Error
	case LogoutFulfilled:
		st = AuthState{Initialized: true}
	case InitializePending:
		st.Loading = true
	case InitializeFulfilled:
		st.Loading = false
		st.Initialized = true
		if a.User != nil {
			user := *a.User
			st.User = &user
			st.Token = a.Token
			st.IsAuthenticated = true
		}
	case InitializeRejected:
		st.Loading = false
		st.Initialized = true
		st.Error = a.Error
	case ClearAuthError:
		st.Error = ""
	case SetUser:
		user := a.User
		st.User = &user
		st.IsAuthenticated = true
	}
	return st
}

func authenticated(st AuthState, resp dto.AuthResponse) AuthState {
	user := resp.User
	return AuthState{
		User:            &user,
		Token:           resp.Token,
		IsAuthenticated: true,
		Initialized:     true,
	}
}

func reduceTickets(st TicketsState, action Action) TicketsState {
	switch a := action.(type) {
	case FetchTicketsPending:
		st.Loading = true
		st.Error = ""
	case FetchTicketsFulfilled:
		st.Loading = false
		st.Error = ""
		st.Tickets = append([]dto.TicketResponse(nil), a.Tickets...)
	case FetchTicketsRejected:
		st.Loading = false
		st.Error = a.Error

	case CreateTicketPending:
		st.Creating = true
		st.Error = ""
	case CreateTicketFulfilled:
		st.Creating = false
		st.Error = ""
		next := make([]dto.TicketResponse, 0, len(st.Tickets)+1)
		next = append(next, a.Ticket)
		st.Tickets = append(next, st.Tickets...)
	case CreateTicketRejected:
		st.Creating = false
		st.Error = a.Error

	case UpdateTicketPending, DecideTicketPending, DeleteTicketPending:
		st.Updating = true
		st.Error = ""
	case UpdateTicketFulfilled:
		st.Updating = false
		st.Error = ""
		st.Tickets = mapTickets(st.Tickets, a.Ticket.ID, func(dto.TicketResponse) dto.TicketResponse {
			return a.Ticket
		})
	case DecideTicketFulfilled:
		st.Updating = false
		st.Error = ""
		st.Tickets = mapTickets(st.Tickets, a.TicketID, func(t dto.TicketResponse) dto.TicketResponse {
			if a.Ticket != nil {
				updated := *a.Ticket
				// keep the embedded owner when the server copy omits it
				if updated.Employee == nil {
					updated.Employee = t.Employee
				}
				return updated
			}
			t.Status = a.Status
			return t
		})
	case DeleteTicketFulfilled:
		st.Updating = false
		st.Error = ""
		next := make([]dto.TicketResponse, 0, len(st.Tickets))
		for _, t := range st.Tickets {
			if t.ID != a.TicketID {
				next = append(next, t)
			}
		}
		st.Tickets = next
	case UpdateTicketRejected:
		st.Updating = false
		st.Error = a.Error
	case DecideTicketRejected:
		st.Updating = false
		st.Error = a.Error
	case DeleteTicketRejected:
		st.Updating = false
		st.Error = a.Error

	case ClearTicketsError:
		st.Error = ""
	case ClearTickets, LogoutFulfilled:
		st.Tickets = nil
	}
	return st
}

// mapTickets returns a copy of tickets with fn applied to the one matching id.
func mapTickets(tickets []dto.TicketResponse, id string, fn func(dto.TicketResponse) dto.TicketResponse) []dto.TicketResponse {
	next := make([]dto.TicketResponse, len(tickets))
	copy(next, tickets)
	for i := range next {
		if next[i].ID == id {
			next[i] = fn(next[i])
		}
	}
	return next
}

func reduceEmployees(st EmployeesState, action Action) EmployeesState {
	switch a := action.(type) {
	case FetchEmployeesPending:
		st.Loading = true
		st.Error = ""
	case FetchEmployeesFulfilled:
		st.Loading = false
		st.Error = ""
		st.Employees = append([]dto.UserResponse(nil), a.Employees...)
	case FetchEmployeesRejected:
		st.Loading = false
		st.Error = a.Error

	case ToggleEmployeePending:
		st.Updating = true
		st.Error = ""
	case ToggleEmployeeFulfilled:
		st.Updating = false
		st.Error = ""
		next := make([]dto.UserResponse, len(st.Employees))
		copy(next, st.Employees)
		for i := range next {
			if next[i].ID == a.EmployeeID {
				next[i].IsSuspended = a.Suspended
			}
		}
		st.Employees = next
	case ToggleEmployeeRejected:
		st.Updating = false
		st.Error = a.Error

	case ClearEmployeesError:
		st.Error = ""
	case ClearEmployees, LogoutFulfilled:
		st.Employees = nil
	}
	return st
}
