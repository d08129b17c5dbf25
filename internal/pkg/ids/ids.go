// Package ids generates opaque user identifiers.
package ids

import "github.com/google/uuid"

// New returns a time-ordered UUIDv7 string. It panics only if the OS random
// source is unavailable.
func New() string {
	id, err := uuid.NewV7()
	if err != nil {
		panic("ids: failed to generate UUID: " + err.Error())
	}
	return id.String()
}
