package checkout

import (
	"github.com/salonhub/salonhub-go/internal/cart"
	"github.com/salonhub/salonhub-go/internal/domain"
)

// checkPreconditions validates the order before any network call, in a
// fixed sequence so the first failing check wins: address, service item
// scheduling, non-empty cart, wallet balance.
func checkPreconditions(state State, method domain.PaymentMethod, totals cart.Totals) error {
	if state.Selected == nil {
		return ErrNoAddress
	}

	for _, item := range state.ServiceItems {
		if !item.Scheduled() {
			return &IncompleteServiceItemError{ItemID: item.ID, ServiceName: item.ServiceName}
		}
	}

	if len(state.ServiceItems) == 0 && len(state.ProductItems) == 0 {
		return ErrEmptyCart
	}

	if method == domain.PaymentMethodWallet && state.WalletBalance < totals.Total {
		return &InsufficientBalanceError{Shortfall: totals.Total - state.WalletBalance}
	}

	return nil
}
