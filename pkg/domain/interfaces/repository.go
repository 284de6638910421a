package interfaces

import "github.com/m-mizutani/goerr/v2"

// ErrNotFound is returned by repositories when a record does not exist.
// Both backends wrap it so callers can match with errors.Is.
var ErrNotFound = goerr.New("record not found")

// Repository defines the interface for data persistence
type Repository interface {
	Grant() GrantRepository
	Org() OrgRepository

	Close() error
}
