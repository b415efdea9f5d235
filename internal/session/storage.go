package session

// Well-known keys written by the auth thunks.
const (
	KeyToken = "token"
	KeyRole  = "role"
	KeyUser  = "user"
)

// Storage is a small string key/value store that outlives a single CLI run.
type Storage interface {
	Get(key string) (string, bool)
	Set(key, value string) error
	Remove(key string) error
	Clear() error
}
