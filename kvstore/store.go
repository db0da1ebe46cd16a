package kvstore

import "context"

// Keys used by the member client. The names match the browser client so a
// storage dump from either side is readable by the other.
const (
	KeyAccessToken = "access_token" // bearer credential
	KeySimpleToken = "X-Token"      // secondary opaque credential
	KeyCurrentUser = "current_user" // JSON encoded users.Profile
	KeyGroupPrefix = "group_prefix" // tenant identifier
	KeyLanguage    = "lang"         // selected locale tag
)

// Store is durable, process-wide key/value storage. Implementations must
// treat removal of an absent key as success; readers treat a missing key as
// "value absent", never as an error.
type Store interface {
	// Get returns the value for key and whether it was present
	Get(ctx context.Context, key string) (value string, found bool, err error)

	// Set stores value under key, overwriting any previous value
	Set(ctx context.Context, key, value string) error

	// Remove deletes key if present
	Remove(ctx context.Context, key string) error

	// Clear deletes every key
	Clear(ctx context.Context) error
}

// GetString returns the value for key, or "" when it is absent or unreadable.
func GetString(ctx context.Context, s Store, key string) string {
	v, ok, err := s.Get(ctx, key)
	if err != nil || !ok {
		return ""
	}
	return v
}
