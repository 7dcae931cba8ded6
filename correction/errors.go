package correction

import "errors"

var (
	// ErrUnsupportedTopology marks a tag outside the set allowed for the requested dimensionality.
	ErrUnsupportedTopology = errors.New("correction: unsupported topology")
	// ErrGridTooSmall marks an axis cell count smaller than the stencil needs.
	ErrGridTooSmall = errors.New("correction: grid too small")
)
