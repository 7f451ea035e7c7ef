package checkout

import (
	"errors"
	"fmt"
)

var (
	ErrNoAddress = errors.New("select a delivery address before placing the order")
	ErrEmptyCart = errors.New("cart is empty, nothing to checkout")

	// ErrCoordinatesUnavailable asks the caller to confirm before placing
	// an order without coordinates. Retrying with ConfirmWithoutCoordinates
	// submits with null latitude/longitude.
	ErrCoordinatesUnavailable = errors.New("location unavailable, continue anyway?")
)

// IncompleteServiceItemError names the first service line missing its
// date, time or professional. Raised before any network call.
type IncompleteServiceItemError struct {
	ItemID      string
	ServiceName string
}

func (e *IncompleteServiceItemError) Error() string {
	return fmt.Sprintf("assign a date, time and professional to %q before checkout", e.ServiceName)
}

// InsufficientBalanceError carries the exact shortfall so the caller can
// show how much to add.
type InsufficientBalanceError struct {
	Shortfall float64
}

func (e *InsufficientBalanceError) Error() string {
	return fmt.Sprintf("wallet balance is short by %.2f, add money to continue", e.Shortfall)
}

// PaymentIncompleteError means the order exists server-side but its
// payment did not complete. The client never retries this automatically;
// the user has to contact support.
type PaymentIncompleteError struct {
	OrderID string
	Err     error
}

func (e *PaymentIncompleteError) Error() string {
	return fmt.Sprintf("order %s was created but payment did not complete, please contact support: %v", e.OrderID, e.Err)
}

func (e *PaymentIncompleteError) Unwrap() error {
	return e.Err
}
