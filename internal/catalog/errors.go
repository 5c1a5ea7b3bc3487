package catalog

import "errors"

var (
	ErrUnknownOwner  = errors.New("catalog: owner not found")
	ErrUnknownAction = errors.New("catalog: unknown action")
)
