// Package cache provides a small cache abstraction for computed schedules,
// with Redis and in-memory implementations.
package cache

// Repository is the cache contract used by the HTTP layer. Implementations
// must be safe for concurrent use.
type Repository interface {
	Get(key string) (string, bool)
	Set(key string, value string) error
}
