package pgerr

import (
	"github.com/pkg/errors"
)

var (
	// ErrNotFound is returned when a query matched no rows.
	ErrNotFound = errors.New("resource not found with given parameters")
)
