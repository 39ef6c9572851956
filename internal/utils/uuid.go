package utils

import "github.com/google/uuid"

// NewID returns a time-ordered UUIDv7 string. Ids created later sort after
// earlier ones, which keeps trace and send ids in log order. When the v7
// clock source fails a random v4 id is returned instead.
func NewID() string {
	id, err := uuid.NewV7()
	if err != nil {
		return uuid.NewString()
	}
	return id.String()
}
