// Package storage holds the data-access collaborators consumed by the
// controllers. Each store reports absence with ErrNotFound and unique-key
// violations with ErrConflict; anything else is a wrapped driver failure.
package storage

import "github.com/pkg/errors"

var (
	ErrNotFound = errors.New("record not found")
	ErrConflict = errors.New("record conflicts with an existing one")
)

// mysqlDuplicateEntry is the server error number for unique-key violations.
const mysqlDuplicateEntry = 1062
