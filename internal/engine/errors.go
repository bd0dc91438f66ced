package engine

import "errors"

var (
	// ErrInvalidMargin indicates price does not exceed variable cost, so no
	// finite break-even volume exists.
	ErrInvalidMargin = errors.New("engine: price must be greater than variable cost per unit")
	// ErrUnknownParameter indicates a sensitivity sweep was asked to vary a
	// parameter outside the supported set.
	ErrUnknownParameter = errors.New("engine: unknown sensitivity parameter")
)
