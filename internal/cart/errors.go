package cart

import "errors"

var (
	ErrInvalidQuantity  = errors.New("quantity must be between 1 and 99")
	ErrMutationInFlight = errors.New("a mutation for this item is already in flight")
)
