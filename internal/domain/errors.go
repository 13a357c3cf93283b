package domain

import "errors"

var (
	// ErrMissingProductColumn is returned when a CSV export has no
	// recognizable product column.
	ErrMissingProductColumn = errors.New(`csv is missing a "Producto" column`)

	// ErrNoCandidates is returned when a catalog search succeeds but
	// yields no results.
	ErrNoCandidates = errors.New("no candidates from catalog")

	// ErrCatalogUnavailable is returned when a catalog request fails at
	// the transport or HTTP level.
	ErrCatalogUnavailable = errors.New("catalog request failed")
)
