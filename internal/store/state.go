package store

import (
	"encoding/json"

	"expense_tracker/internal/models"
	"expense_tracker/internal/services/dto"
	"expense_tracker/internal/session"
)

type AuthState struct {
	User            *dto.UserResponse
	Token           string
	IsAuthenticated bool
	Loading         bool
	// Initialized is set once the stored session was checked against the API
	// (or there was nothing to check).
	Initialized bool
	Error       string
}

type TicketsState struct {
	Tickets  []dto.TicketResponse
	Loading  bool
	Creating bool
	Updating bool
	Error    string
}

type EmployeesState struct {
	Employees []dto.UserResponse
	Loading   bool
	Updating  bool
	Error     string
}

// State is the whole client state. Reducers never mutate slices in place, so
// a State value handed out by the store is safe to keep.
type State struct {
	Auth      AuthState
	Tickets   TicketsState
	Employees EmployeesState
}

// InitialState seeds the auth slice from persisted session keys.
func InitialState(storage session.Storage) State {
	var st State
	if storage == nil {
		st.Auth.Initialized = true
		return st
	}

	token, _ := storage.Get(session.KeyToken)
	st.Auth.Token = token
	st.Auth.IsAuthenticated = token != ""
	st.Auth.Initialized = token == ""

	if raw, ok := storage.Get(session.KeyUser); ok && raw != "" {
		var u dto.UserResponse
		if json.Unmarshal([]byte(raw), &u) == nil {
			st.Auth.User = &u
		}
	} else if role, ok := storage.Get(session.KeyRole); ok && token != "" {
		st.Auth.User = &dto.UserResponse{Role: models.UserRole(role)}
	}
	return st
}
