package payments

import "errors"

// ErrCancelled is the user dismissing the payment sheet. The message is
// shown to the user as-is.
var ErrCancelled = errors.New("Payment cancelled by user")
