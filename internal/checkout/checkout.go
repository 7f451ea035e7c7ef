// Package checkout converts the current carts into a submitted order:
// load everything the screen needs, resolve the delivery coordinates,
// check preconditions, submit, run the payment leg and clear the carts.
package checkout

import (
	"context"
	"fmt"
	"sync"

	"github.com/salonhub/salonhub-go/internal/addresses"
	"github.com/salonhub/salonhub-go/internal/api"
	"github.com/salonhub/salonhub-go/internal/cart"
	"github.com/salonhub/salonhub-go/internal/domain"
	"github.com/salonhub/salonhub-go/internal/geo"
	"github.com/salonhub/salonhub-go/internal/payments"
	"github.com/salonhub/salonhub-go/internal/wallet"
	"golang.org/x/sync/errgroup"
)

// Fees are the flat order fees added on top of the subtotal.
type Fees struct {
	Delivery float64
	Service  float64
}

type Flow struct {
	cart      *cart.Service
	addresses *addresses.Service
	wallet    *wallet.Service
	payments  *payments.Service
	resolver  *geo.Resolver
	api       *api.Client
	fees      Fees

	mu    sync.Mutex
	state State
}

// State mirrors what the checkout screen holds between user actions.
type State struct {
	ServiceItems     []domain.ServiceCartItem
	ProductItems     []domain.ProductCartItem
	Addresses        []domain.Address
	Selected         *domain.Address
	Coordinates      *domain.Coordinates
	CoordinatesError bool
	WalletBalance    float64
	PreviousOrders   []domain.Order
}

func NewFlow(
	client *api.Client,
	cartSvc *cart.Service,
	addrSvc *addresses.Service,
	walletSvc *wallet.Service,
	paymentSvc *payments.Service,
	resolver *geo.Resolver,
	fees Fees,
) *Flow {
	return &Flow{
		cart:      cartSvc,
		addresses: addrSvc,
		wallet:    walletSvc,
		payments:  paymentSvc,
		resolver:  resolver,
		api:       client,
		fees:      fees,
	}
}

// Load fetches everything checkout needs in one parallel batch, then
// selects the default address and resolves its coordinates.
func (f *Flow) Load(ctx context.Context) (State, error) {
	var (
		serviceCart *domain.ServiceCart
		productCart *domain.ProductCart
		addrs       []domain.Address
		balance     *domain.Wallet
		orders      []domain.Order
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() (err error) {
		serviceCart, err = f.cart.ServiceCart(gctx)
		return err
	})
	g.Go(func() (err error) {
		productCart, err = f.cart.ProductCart(gctx)
		return err
	})
	g.Go(func() (err error) {
		addrs, err = f.addresses.List(gctx)
		return err
	})
	g.Go(func() (err error) {
		balance, err = f.wallet.Balance(gctx)
		return err
	})
	g.Go(func() (err error) {
		orders, err = f.orders(gctx)
		return err
	})
	if err := g.Wait(); err != nil {
		return State{}, fmt.Errorf("load checkout: %w", err)
	}

	f.mu.Lock()
	f.state = State{
		ServiceItems:   serviceCart.Items,
		ProductItems:   productCart.Items,
		Addresses:      addrs,
		WalletBalance:  balance.Balance,
		PreviousOrders: orders,
	}
	f.mu.Unlock()

	if def := addresses.Default(addrs); def != nil {
		return f.SelectAddress(ctx, *def)
	}
	return f.snapshot(), nil
}

// SelectAddress makes addr the delivery address and re-resolves its
// coordinates. Called on the initial default-address load and every
// manual re-selection.
func (f *Flow) SelectAddress(ctx context.Context, addr domain.Address) (State, error) {
	resolution, err := f.resolver.Resolve(ctx, addr)
	if err != nil {
		// A resolution already in flight: keep the previous state, the
		// place-order action stays disabled until it finishes.
		return f.snapshot(), err
	}

	f.mu.Lock()
	f.state.Selected = &addr
	f.state.Coordinates = resolution.Coordinates
	f.state.CoordinatesError = resolution.Failed
	f.mu.Unlock()

	return f.snapshot(), nil
}

// Totals recomputes the order total from the current line items.
func (f *Flow) Totals() cart.Totals {
	f.mu.Lock()
	defer f.mu.Unlock()
	return cart.ComputeTotals(f.state.ServiceItems, f.state.ProductItems, f.fees.Delivery, f.fees.Service)
}

func (f *Flow) snapshot() State {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.state
}

func (f *Flow) orders(ctx context.Context) ([]domain.Order, error) {
	var orders []domain.Order
	if err := f.api.Get(ctx, "/orders", &orders); err != nil {
		return nil, fmt.Errorf("fetch previous orders: %w", err)
	}
	return orders, nil
}
