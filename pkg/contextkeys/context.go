package contextkeys

type contextKey string

// DBContextKey is the key under which the request-scoped *gorm.DB is stored.
const DBContextKey = contextKey("db")

// Keys set by the auth middleware on the gin context.
const (
	UserIDKey = "userID"
	RoleKey   = "role"
	UserKey   = "currentUser"
)
