package auth

import "expense_tracker/internal/models"

type Permission string

const (
	PermViewAllTickets  Permission = "view_all_tickets"
	PermManageEmployees Permission = "manage_employees"
	PermCreateTickets   Permission = "create_tickets"
	PermViewOwnTickets  Permission = "view_own_tickets"
)

// Permissions per role. Anything not listed is denied.
var Permissions = map[models.UserRole][]Permission{
	models.UserRoleEmployer: {
		PermViewAllTickets,
		PermManageEmployees,
		PermCreateTickets,
		PermViewOwnTickets,
	},
	models.UserRoleEmployee: {
		PermCreateTickets,
		PermViewOwnTickets,
	},
}

func HasPermission(role models.UserRole, permission Permission) bool {
	for _, p := range Permissions[role] {
		if p == permission {
			return true
		}
	}
	return false
}

// HasAll reports whether role holds every permission. An empty list is allowed.
func HasAll(role models.UserRole, permissions ...Permission) bool {
	for _, p := range permissions {
		if !HasPermission(role, p) {
			return false
		}
	}
	return true
}
