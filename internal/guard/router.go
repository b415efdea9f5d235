package guard

import (
	"strings"

	"expense_tracker/internal/auth"
	"expense_tracker/internal/models"
	"expense_tracker/internal/store"
)

type Access int

const (
	AccessPublic Access = iota
	AccessProtected
)

type Route struct {
	Path        string
	Access      Access
	Role        models.UserRole
	Permissions []auth.Permission
}

type Router struct {
	routes map[string]Route
}

// DefaultRoutes is the page table of the application.
func DefaultRoutes() []Route {
	return []Route{
		{Path: PathLogin, Access: AccessPublic},
		{Path: PathRegister, Access: AccessPublic},
		{Path: PathTickets, Access: AccessProtected},
		{
			Path:        PathEmployees,
			Access:      AccessProtected,
			Role:        models.UserRoleEmployer,
			Permissions: []auth.Permission{auth.PermManageEmployees},
		},
	}
}

func NewRouter(routes ...Route) *Router {
	if len(routes) == 0 {
		routes = DefaultRoutes()
	}
	r := &Router{routes: make(map[string]Route, len(routes))}
	for _, route := range routes {
		r.routes[normalize(route.Path)] = route
	}
	return r
}

// Resolve decides what happens when path is opened with the given session.
// Unknown paths redirect to the tickets page.
func (r *Router) Resolve(path string, st store.AuthState) Decision {
	route, ok := r.routes[normalize(path)]
	if !ok {
		return redirect(PathTickets)
	}

	if route.Access == AccessPublic {
		return Public(st)
	}

	d := Protected(st, "", route.Path)
	if d.Outcome != Allow {
		return d
	}
	if route.Role == "" && len(route.Permissions) == 0 {
		return d
	}
	return Permission(st, route.Role, route.Permissions, "")
}

func normalize(path string) string {
	if path == "" {
		return "/"
	}
	if !strings.HasPrefix(path, "/") {
		path = "/" + path
	}
	if trimmed := strings.TrimRight(path, "/"); trimmed != "" {
		return trimmed
	}
	return "/"
}
