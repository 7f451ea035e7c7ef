package checkout

import (
	"context"
	"errors"
	"fmt"

	"github.com/salonhub/salonhub-go/internal/cart"
	"github.com/salonhub/salonhub-go/internal/domain"
	"github.com/salonhub/salonhub-go/internal/geo"
	"github.com/salonhub/salonhub-go/internal/payments"
)

// PlaceOptions tunes a single PlaceOrder attempt.
type PlaceOptions struct {
	// ConfirmWithoutCoordinates is the user's answer to the
	// "location unavailable, continue anyway?" prompt. The order is then
	// submitted with null coordinates and the server arranges delivery
	// manually.
	ConfirmWithoutCoordinates bool
}

// PlaceOrder runs the full submission sequence: preconditions, draft,
// order creation, payment branch, best-effort cart clearing. The returned
// Confirmation is a denormalized snapshot for the confirmation view.
func (f *Flow) PlaceOrder(ctx context.Context, method domain.PaymentMethod, opts PlaceOptions) (*Confirmation, error) {
	if f.resolver.Fetching() {
		return nil, geo.ErrResolveInFlight
	}

	state := f.snapshot()
	totals := f.Totals()

	if err := checkPreconditions(state, method, totals); err != nil {
		return nil, err
	}

	if state.Coordinates == nil && !opts.ConfirmWithoutCoordinates {
		return nil, ErrCoordinatesUnavailable
	}

	draft := buildDraft(state, method, totals)

	var created domain.Order
	if err := f.api.Post(ctx, "/orders", draft, &created); err != nil {
		return nil, fmt.Errorf("create order: %w", err)
	}

	if err := f.pay(ctx, created.ID, method, totals.Total); err != nil {
		return nil, err
	}

	// The order succeeded; cart clearing is best-effort and its failures
	// stay out of the user's way.
	f.cart.ClearAll(ctx)

	confirmation := newConfirmation(created, draft, totals)
	return &confirmation, nil
}

func (f *Flow) pay(ctx context.Context, orderID string, method domain.PaymentMethod, total float64) error {
	switch method {
	case domain.PaymentMethodCOD:
		return nil
	case domain.PaymentMethodWallet:
		if err := f.wallet.Deduct(ctx, orderID, total); err != nil {
			return &PaymentIncompleteError{OrderID: orderID, Err: err}
		}
		return nil
	case domain.PaymentMethodOnline:
		err := f.payments.PayOnline(ctx, orderID, total)
		if errors.Is(err, payments.ErrCancelled) {
			return payments.ErrCancelled
		}
		if err != nil {
			return &PaymentIncompleteError{OrderID: orderID, Err: err}
		}
		return nil
	default:
		return fmt.Errorf("unknown payment method %q", method)
	}
}

func buildDraft(state State, method domain.PaymentMethod, totals cart.Totals) domain.OrderDraft {
	serviceItems := make([]domain.OrderServiceItem, len(state.ServiceItems))
	for i, item := range state.ServiceItems {
		serviceItems[i] = domain.OrderServiceItem{
			ServiceID:        item.ServiceID,
			ServiceName:      item.ServiceName,
			Quantity:         item.Quantity,
			Price:            item.Price,
			SelectedDate:     item.SelectedDate,
			SelectedTime:     item.SelectedTime,
			ProfessionalID:   item.ProfessionalID,
			ProfessionalName: item.ProfessionalName,
		}
	}

	productItems := make([]domain.OrderProductItem, len(state.ProductItems))
	for i, item := range state.ProductItems {
		productItems[i] = domain.OrderProductItem{
			ProductID:   item.ProductID,
			ProductName: item.ProductName,
			Quantity:    item.Quantity,
			Price:       item.Price,
		}
	}

	addr := *state.Selected
	orderAddr := domain.OrderAddress{
		ID:       addr.ID,
		FullName: addr.FullName,
		Phone:    addr.Phone,
		Street:   addr.Street,
		City:     addr.City,
		State:    addr.State,
		Zip:      addr.Zip,
	}
	if state.Coordinates != nil {
		lat, lon := state.Coordinates.Latitude, state.Coordinates.Longitude
		orderAddr.Latitude = &lat
		orderAddr.Longitude = &lon
		orderAddr.Source = state.Coordinates.Source
	}

	return domain.OrderDraft{
		Address:       orderAddr,
		PaymentMethod: method,
		ServiceItems:  serviceItems,
		ProductItems:  productItems,
		Subtotal:      totals.Subtotal,
		DeliveryFee:   totals.DeliveryFee,
		ServiceFee:    totals.ServiceFee,
		Tax:           totals.Tax,
		TotalAmount:   totals.Total,
		Type:          orderType(serviceItems, productItems),
		Status:        "pending",
	}
}

func orderType(services []domain.OrderServiceItem, products []domain.OrderProductItem) domain.OrderType {
	switch {
	case len(services) > 0 && len(products) > 0:
		return domain.OrderTypeMixed
	case len(services) > 0:
		return domain.OrderTypeService
	default:
		return domain.OrderTypeProduct
	}
}
