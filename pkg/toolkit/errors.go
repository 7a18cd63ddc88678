package toolkit

import "errors"

var (
	// ErrDuplicateTool is returned when a tool name is already registered.
	ErrDuplicateTool = errors.New("tool already registered")

	// ErrToolNotFound is returned when a lookup names an unknown tool.
	ErrToolNotFound = errors.New("tool not found")

	// ErrCatalogFrozen is returned when registering after Freeze.
	ErrCatalogFrozen = errors.New("catalog is frozen")
)

// SubtypedError is implemented by collaborator errors that carry an
// upstream failure subtype (not_found, forbidden, rate_limited, conflict).
// The dispatcher forwards the subtype in the result metadata.
type SubtypedError interface {
	error
	FailureSubtype() string
}
