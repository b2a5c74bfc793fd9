// Package apperr defines the sentinel error kinds shared by the
// service, API, and MCP layers.
package apperr

import "errors"

var (
	ErrInvalidArgument  = errors.New("invalid argument")
	ErrPartialReference = errors.New("partial reference pair")
	ErrReferenceNotSet  = errors.New("reference point not set")
	ErrNotFound         = errors.New("not found")
	ErrAlreadyExists    = errors.New("already exists")
)
