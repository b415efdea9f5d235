package guard

import (
	"testing"

	"expense_tracker/internal/auth"
	"expense_tracker/internal/models"
	"expense_tracker/internal/services/dto"
	"expense_tracker/internal/store"

	"github.com/stretchr/testify/assert"
)

func session(role models.UserRole, suspended bool) store.AuthState {
	return store.AuthState{
		User:            &dto.UserResponse{ID: "u1", Role: role, IsSuspended: suspended},
		Token:           "tok",
		IsAuthenticated: true,
		Initialized:     true,
	}
}

func TestProtected(t *testing.T) {
	tests := []struct {
		name string
		st   store.AuthState
		role models.UserRole
		want Decision
	}{
		{
			name: "loading",
			st:   store.AuthState{Loading: true},
			want: Decision{Outcome: Pending},
		},
		{
			name: "token not yet validated",
			st:   store.AuthState{Token: "tok", IsAuthenticated: true},
			want: Decision{Outcome: Pending},
		},
		{
			name: "anonymous",
			st:   store.AuthState{Initialized: true},
			want: Decision{Outcome: Redirect, To: PathLogin, From: "/tickets"},
		},
		{
			name: "suspended",
			st:   session(models.UserRoleEmployee, true),
			want: Decision{Outcome: Redirect, To: PathLogin, Message: SuspendedMessage},
		},
		{
			name: "role mismatch",
			st:   session(models.UserRoleEmployee, false),
			role: models.UserRoleEmployer,
			want: Decision{Outcome: Redirect, To: PathTickets},
		},
		{
			name: "role required but user unknown",
			st:   store.AuthState{Token: "tok", IsAuthenticated: true, Initialized: true},
			role: models.UserRoleEmployee,
			want: Decision{Outcome: Redirect, To: PathTickets},
		},
		{
			name: "matching role",
			st:   session(models.UserRoleEmployer, false),
			role: models.UserRoleEmployer,
			want: Decision{Outcome: Allow},
		},
		{
			name: "no role required",
			st:   session(models.UserRoleEmployee, false),
			want: Decision{Outcome: Allow},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Protected(tt.st, tt.role, "/tickets"))
		})
	}
}

func TestPublic(t *testing.T) {
	assert.Equal(t, Decision{Outcome: Allow}, Public(store.AuthState{Initialized: true}))
	assert.Equal(t, Decision{Outcome: Redirect, To: PathTickets}, Public(store.AuthState{Token: "tok"}))
}

func TestPermission(t *testing.T) {
	tests := []struct {
		name     string
		st       store.AuthState
		role     models.UserRole
		perms    []auth.Permission
		fallback string
		want     Decision
	}{
		{
			name: "not authenticated",
			st:   store.AuthState{Initialized: true},
			want: Decision{Outcome: Redirect, To: PathLogin},
		},
		{
			name: "authenticated without user",
			st:   store.AuthState{IsAuthenticated: true},
			want: Decision{Outcome: Redirect, To: PathLogin},
		},
		{
			name: "suspended",
			st:   session(models.UserRoleEmployer, true),
			want: Decision{Outcome: Redirect, To: PathLogin, Message: SuspendedMessage},
		},
		{
			name: "employee on employer page",
			st:   session(models.UserRoleEmployee, false),
			role: models.UserRoleEmployer,
			want: Decision{Outcome: Redirect, To: PathTickets},
		},
		{
			name: "employer on employee page",
			st:   session(models.UserRoleEmployer, false),
			role: models.UserRoleEmployee,
			want: Decision{Outcome: Redirect, To: PathEmployees},
		},
		{
			name:     "explicit fallback",
			st:       session(models.UserRoleEmployee, false),
			role:     models.UserRoleEmployer,
			fallback: "/home",
			want:     Decision{Outcome: Redirect, To: "/home"},
		},
		{
			name:  "employee lacks manage_employees",
			st:    session(models.UserRoleEmployee, false),
			perms: []auth.Permission{auth.PermCreateTickets, auth.PermManageEmployees},
			want:  Decision{Outcome: Redirect, To: PathTickets},
		},
		{
			name:  "employer creates tickets",
			st:    session(models.UserRoleEmployer, false),
			perms: []auth.Permission{auth.PermCreateTickets, auth.PermViewOwnTickets},
			want:  Decision{Outcome: Allow},
		},
		{
			name:  "unknown permission denied",
			st:    session(models.UserRoleEmployer, false),
			perms: []auth.Permission{"delete_everything"},
			want:  Decision{Outcome: Redirect, To: PathEmployees},
		},
		{
			name:  "employee views own tickets",
			st:    session(models.UserRoleEmployee, false),
			role:  models.UserRoleEmployee,
			perms: []auth.Permission{auth.PermViewOwnTickets},
			want:  Decision{Outcome: Allow},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Permission(tt.st, tt.role, tt.perms, tt.fallback))
		})
	}
}

func TestRouter_Resolve(t *testing.T) {
	r := NewRouter()
	anonymous := store.AuthState{Initialized: true}
	employee := session(models.UserRoleEmployee, false)
	employer := session(models.UserRoleEmployer, false)

	tests := []struct {
		name string
		path string
		st   store.AuthState
		want Decision
	}{
		{"login anonymous", "/login", anonymous, Decision{Outcome: Allow}},
		{"register logged in", "/register", employee, Decision{Outcome: Redirect, To: PathTickets}},
		{"tickets anonymous", "/tickets", anonymous, Decision{Outcome: Redirect, To: PathLogin, From: "/tickets"}},
		{"tickets employee", "/tickets/", employee, Decision{Outcome: Allow}},
		{"employees employee", "/employees", employee, Decision{Outcome: Redirect, To: PathTickets}},
		{"employees employer", "employees", employer, Decision{Outcome: Allow}},
		{"employees anonymous", "/employees", anonymous, Decision{Outcome: Redirect, To: PathLogin, From: "/employees"}},
		{"employees while loading", "/employees", store.AuthState{Token: "tok"}, Decision{Outcome: Pending}},
		{"unknown path", "/nowhere", employer, Decision{Outcome: Redirect, To: PathTickets}},
		{"root", "/", anonymous, Decision{Outcome: Redirect, To: PathTickets}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, r.Resolve(tt.path, tt.st))
		})
	}
}
