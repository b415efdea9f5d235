package guard

import (
	"expense_tracker/internal/auth"
	"expense_tracker/internal/models"
	"expense_tracker/internal/store"
)

type Outcome string

const (
	Allow    Outcome = "allow"
	Redirect Outcome = "redirect"
	// Pending means auth state is still loading and no decision can be made yet.
	Pending Outcome = "pending"
)

const (
	PathLogin     = "/login"
	PathRegister  = "/register"
	PathTickets   = "/tickets"
	PathEmployees = "/employees"
)

const SuspendedMessage = "your account has been suspended"

type Decision struct {
	Outcome Outcome
	To      string
	// From is the originally requested path, kept so login can return to it.
	From    string
	Message string
}

func allow() Decision { return Decision{Outcome: Allow} }

func redirect(to string) Decision { return Decision{Outcome: Redirect, To: to} }

// Protected gates a page on an authenticated, unsuspended session and,
// when requiredRole is set, on that role.
func Protected(st store.AuthState, requiredRole models.UserRole, from string) Decision {
	if st.Loading || (st.Token != "" && !st.Initialized) {
		return Decision{Outcome: Pending}
	}
	if !st.IsAuthenticated {
		d := redirect(PathLogin)
		d.From = from
		return d
	}
	if st.User != nil && st.User.IsSuspended {
		d := redirect(PathLogin)
		d.Message = SuspendedMessage
		return d
	}
	if requiredRole != "" && (st.User == nil || st.User.Role != requiredRole) {
		return redirect(PathTickets)
	}
	return allow()
}

// Public sends anyone holding a token away from the login and register pages.
func Public(st store.AuthState) Decision {
	if st.Token != "" {
		return redirect(PathTickets)
	}
	return allow()
}

// Permission is the fine-grained check. On a role or permission miss it
// falls back to fallback, or the role's home page.
func Permission(st store.AuthState, requiredRole models.UserRole, permissions []auth.Permission, fallback string) Decision {
	if !st.IsAuthenticated || st.User == nil {
		return redirect(PathLogin)
	}
	user := st.User
	if user.IsSuspended {
		d := redirect(PathLogin)
		d.Message = SuspendedMessage
		return d
	}

	if requiredRole != "" && user.Role != requiredRole {
		return redirect(fallbackFor(user.Role, fallback))
	}
	if !auth.HasAll(user.Role, permissions...) {
		return redirect(fallbackFor(user.Role, fallback))
	}
	return allow()
}

func fallbackFor(role models.UserRole, fallback string) string {
	if fallback != "" {
		return fallback
	}
	if role == models.UserRoleEmployee {
		return PathTickets
	}
	return PathEmployees
}
