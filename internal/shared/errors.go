package shared

import "fmt"

var (
	ErrNotImplemented = fmt.Errorf("not implemented")

	// Configuration errors
	ErrMissingConfig = fmt.Errorf("configuration not found")
	ErrInvalidConfig = fmt.Errorf("invalid configuration")

	// Browsing errors
	ErrMissingRenderTarget = fmt.Errorf("render target not provided")
	ErrInvalidPageSize     = fmt.Errorf("episodes per page must be positive")

	// Catalog errors
	ErrUnsupportedFormat = fmt.Errorf("unsupported format")
	ErrCatalogLocked     = fmt.Errorf("catalog is locked by another process")
	ErrEmptyCatalog      = fmt.Errorf("catalog has no episodes")

	// Web session errors
	ErrSessionNotFound = fmt.Errorf("session not found")
	ErrUnknownEvent    = fmt.Errorf("unknown event")

	// Input validation errors
	ErrInvalidInput    = fmt.Errorf("invalid input")
	ErrMissingArgument = fmt.Errorf("missing required argument")
	ErrInvalidArgument = fmt.Errorf("invalid argument")
)
