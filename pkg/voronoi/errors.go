package voronoi

import "errors"

var (
	// ErrNoSites indicates GenerateDiagram was called without any sites.
	ErrNoSites = errors.New("voronoi: at least one site is required")
	// ErrInternal indicates the sweep reached a state its invariants forbid.
	// This is either a genuine bug or an epsilon unsuited to the coordinate
	// range; the failed computation yields no diagram.
	ErrInternal = errors.New("voronoi: internal invariant violation")
)
