package checkout_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/salonhub/salonhub-go/internal/addresses"
	"github.com/salonhub/salonhub-go/internal/apitest"
	"github.com/salonhub/salonhub-go/internal/cart"
	"github.com/salonhub/salonhub-go/internal/checkout"
	"github.com/salonhub/salonhub-go/internal/domain"
	"github.com/salonhub/salonhub-go/internal/geo"
	"github.com/salonhub/salonhub-go/internal/payments"
	"github.com/salonhub/salonhub-go/internal/wallet"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeSheet implements payments.Sheet for testing
type fakeSheet struct {
	result *payments.SheetResult
	err    error
	opened int
}

func (f *fakeSheet) Open(context.Context, payments.SheetOptions) (*payments.SheetResult, error) {
	f.opened++
	return f.result, f.err
}

// grantedLocation always produces a fixed device position.
type grantedLocation struct{}

func (grantedLocation) RequestPermission(context.Context) (bool, error) { return true, nil }
func (grantedLocation) CurrentPosition(context.Context) (float64, float64, error) {
	return 12.93, 77.61, nil
}

type acceptedTerms struct{}

func (acceptedTerms) TermsAccepted(context.Context) (bool, error) { return true, nil }

func newTestFlow(t *testing.T, srv *apitest.Server, sheet payments.Sheet) *checkout.Flow {
	client := srv.Client()
	return checkout.NewFlow(
		client,
		cart.NewService(client),
		addresses.NewService(client),
		wallet.NewService(client, acceptedTerms{}, wallet.DefaultGatePolicy()),
		payments.NewService(client, sheet),
		geo.NewResolver(client, grantedLocation{}, time.Second),
		checkout.Fees{Delivery: 50, Service: 25},
	)
}

func seedCheckout(srv *apitest.Server) {
	srv.ServiceCart.Items = []domain.ServiceCartItem{
		{
			ID: "item-s1", ServiceID: "svc-1", ServiceName: "haircut",
			Quantity: 2, Price: 300,
			SelectedDate: "2026-09-05", SelectedTime: "14:00",
			ProfessionalID: "pro-1", ProfessionalName: "Asha",
		},
	}
	srv.ProductCart.Items = []domain.ProductCartItem{
		{ID: "item-p1", ProductID: "prod-1", ProductName: "argan oil", Quantity: 2, Price: 200},
	}
	srv.Addresses = []domain.Address{
		{ID: "addr-1", FullName: "Test User", Street: "12 MG Road", City: "Bengaluru", State: "KA", Zip: "560001", IsDefault: true},
	}
	srv.WalletBalance = 5000
	srv.GeocodeResult = &domain.Coordinates{Latitude: 12.9716, Longitude: 77.5946}
}

func TestLoad_SelectsDefaultAddressAndResolvesCoordinates(t *testing.T) {
	srv := apitest.New(t)
	seedCheckout(srv)
	flow := newTestFlow(t, srv, &fakeSheet{})

	state, err := flow.Load(context.Background())

	require.NoError(t, err)
	require.NotNil(t, state.Selected)
	assert.Equal(t, "addr-1", state.Selected.ID)
	require.NotNil(t, state.Coordinates)
	assert.Equal(t, domain.CoordinateSourceBackend, state.Coordinates.Source)
	assert.Equal(t, 5000.0, state.WalletBalance)
	assert.Len(t, state.ServiceItems, 1)
	assert.Len(t, state.ProductItems, 1)
}

func TestTotals_RecomputedFromLineItems(t *testing.T) {
	srv := apitest.New(t)
	seedCheckout(srv)
	flow := newTestFlow(t, srv, &fakeSheet{})
	_, err := flow.Load(context.Background())
	require.NoError(t, err)

	totals := flow.Totals()

	assert.Equal(t, 1000.0, totals.Subtotal)
	assert.Equal(t, 180.0, totals.Tax)
	assert.Equal(t, 1255.0, totals.Total)
}

func TestPlaceOrder_COD(t *testing.T) {
	srv := apitest.New(t)
	seedCheckout(srv)
	flow := newTestFlow(t, srv, &fakeSheet{})
	_, err := flow.Load(context.Background())
	require.NoError(t, err)

	conf, err := flow.PlaceOrder(context.Background(), domain.PaymentMethodCOD, checkout.PlaceOptions{})

	require.NoError(t, err)
	require.NotNil(t, conf)
	assert.Equal(t, "ord-1", conf.OrderID)
	assert.Equal(t, 1255.0, conf.Totals.Total)
	assert.True(t, srv.ClearedServiceCart)
	assert.True(t, srv.ClearedProductCart)

	require.Len(t, srv.CreatedDrafts, 1)
	draft := srv.CreatedDrafts[0]
	assert.Equal(t, domain.OrderTypeMixed, draft.Type)
	require.NotNil(t, draft.Address.Latitude)
	assert.Equal(t, 12.9716, *draft.Address.Latitude)
	assert.Equal(t, domain.CoordinateSourceBackend, draft.Address.Source)
	assert.Empty(t, srv.DeductCalls, "cod must not touch the wallet")
}

func TestPlaceOrder_RejectsIncompleteServiceItem(t *testing.T) {
	srv := apitest.New(t)
	seedCheckout(srv)
	srv.ServiceCart.Items[0].ProfessionalID = ""
	flow := newTestFlow(t, srv, &fakeSheet{})
	_, err := flow.Load(context.Background())
	require.NoError(t, err)

	_, err = flow.PlaceOrder(context.Background(), domain.PaymentMethodCOD, checkout.PlaceOptions{})

	var incomplete *checkout.IncompleteServiceItemError
	require.ErrorAs(t, err, &incomplete)
	assert.Equal(t, "item-s1", incomplete.ItemID)
	assert.Empty(t, srv.CreatedDrafts, "rejected before any network call")
}

func TestPlaceOrder_RejectsEmptyCart(t *testing.T) {
	srv := apitest.New(t)
	seedCheckout(srv)
	srv.ServiceCart.Items = nil
	srv.ProductCart.Items = nil
	flow := newTestFlow(t, srv, &fakeSheet{})
	_, err := flow.Load(context.Background())
	require.NoError(t, err)

	_, err = flow.PlaceOrder(context.Background(), domain.PaymentMethodCOD, checkout.PlaceOptions{})

	assert.ErrorIs(t, err, checkout.ErrEmptyCart)
	assert.Empty(t, srv.CreatedDrafts)
}

func TestPlaceOrder_RejectsMissingAddress(t *testing.T) {
	srv := apitest.New(t)
	seedCheckout(srv)
	srv.Addresses = nil
	flow := newTestFlow(t, srv, &fakeSheet{})
	_, err := flow.Load(context.Background())
	require.NoError(t, err)

	_, err = flow.PlaceOrder(context.Background(), domain.PaymentMethodCOD, checkout.PlaceOptions{})

	assert.ErrorIs(t, err, checkout.ErrNoAddress)
}

func TestPlaceOrder_WalletShortfall(t *testing.T) {
	srv := apitest.New(t)
	seedCheckout(srv)
	srv.WalletBalance = 1000
	flow := newTestFlow(t, srv, &fakeSheet{})
	_, err := flow.Load(context.Background())
	require.NoError(t, err)

	_, err = flow.PlaceOrder(context.Background(), domain.PaymentMethodWallet, checkout.PlaceOptions{})

	var short *checkout.InsufficientBalanceError
	require.ErrorAs(t, err, &short)
	assert.Equal(t, 255.0, short.Shortfall)
	assert.Empty(t, srv.CreatedDrafts)
	assert.Empty(t, srv.DeductCalls)
}

func TestPlaceOrder_WalletSuccess(t *testing.T) {
	srv := apitest.New(t)
	seedCheckout(srv)
	flow := newTestFlow(t, srv, &fakeSheet{})
	_, err := flow.Load(context.Background())
	require.NoError(t, err)

	conf, err := flow.PlaceOrder(context.Background(), domain.PaymentMethodWallet, checkout.PlaceOptions{})

	require.NoError(t, err)
	require.NotNil(t, conf)
	require.Len(t, srv.DeductCalls, 1)
	assert.Equal(t, "ord-1", srv.DeductCalls[0].OrderID)
	assert.Equal(t, 1255.0, srv.DeductCalls[0].Amount)
}

func TestPlaceOrder_WalletDeductionFailsAfterOrderCreated(t *testing.T) {
	srv := apitest.New(t)
	seedCheckout(srv)
	srv.FailDeduct = "wallet service unavailable"
	flow := newTestFlow(t, srv, &fakeSheet{})
	_, err := flow.Load(context.Background())
	require.NoError(t, err)

	conf, err := flow.PlaceOrder(context.Background(), domain.PaymentMethodWallet, checkout.PlaceOptions{})

	assert.Nil(t, conf)
	var incomplete *checkout.PaymentIncompleteError
	require.ErrorAs(t, err, &incomplete)
	assert.Equal(t, "ord-1", incomplete.OrderID)
	assert.Contains(t, incomplete.Error(), "contact support")
	assert.Len(t, srv.CreatedDrafts, 1, "the order already exists server-side")
	assert.False(t, srv.ClearedServiceCart, "cart must survive a failed payment")
}

func TestPlaceOrder_OnlineSuccess(t *testing.T) {
	srv := apitest.New(t)
	seedCheckout(srv)
	sheet := &fakeSheet{result: &payments.SheetResult{
		PaymentID: "pay-1", ProviderOrderID: "prov-ord-1", Signature: "sig",
	}}
	flow := newTestFlow(t, srv, sheet)
	_, err := flow.Load(context.Background())
	require.NoError(t, err)

	conf, err := flow.PlaceOrder(context.Background(), domain.PaymentMethodOnline, checkout.PlaceOptions{})

	require.NoError(t, err)
	require.NotNil(t, conf)
	assert.Equal(t, 1, sheet.opened)
	assert.Equal(t, 1, srv.VerifyCalls)
	assert.True(t, srv.ClearedServiceCart)
}

func TestPlaceOrder_OnlineCancelledByUser(t *testing.T) {
	srv := apitest.New(t)
	seedCheckout(srv)
	sheet := &fakeSheet{err: payments.ErrCancelled}
	flow := newTestFlow(t, srv, sheet)
	_, err := flow.Load(context.Background())
	require.NoError(t, err)

	conf, err := flow.PlaceOrder(context.Background(), domain.PaymentMethodOnline, checkout.PlaceOptions{})

	assert.Nil(t, conf, "no confirmation view after cancellation")
	require.ErrorIs(t, err, payments.ErrCancelled)
	assert.Equal(t, "Payment cancelled by user", err.Error())
	assert.Equal(t, 0, srv.VerifyCalls)
	assert.False(t, srv.ClearedServiceCart, "cart must not be cleared on cancellation")
	assert.False(t, srv.ClearedProductCart)
}

func TestPlaceOrder_OnlineProviderFailure(t *testing.T) {
	srv := apitest.New(t)
	seedCheckout(srv)
	sheet := &fakeSheet{err: errors.New("provider rejected the card")}
	flow := newTestFlow(t, srv, sheet)
	_, err := flow.Load(context.Background())
	require.NoError(t, err)

	_, err = flow.PlaceOrder(context.Background(), domain.PaymentMethodOnline, checkout.PlaceOptions{})

	var incomplete *checkout.PaymentIncompleteError
	require.ErrorAs(t, err, &incomplete)
	assert.NotErrorIs(t, err, payments.ErrCancelled, "provider failure is not a cancellation")
}

func TestPlaceOrder_MissingCoordinatesNeedsConfirmation(t *testing.T) {
	srv := apitest.New(t)
	seedCheckout(srv)
	srv.GeocodeResult = nil
	flow := checkout.NewFlow(
		srv.Client(),
		cart.NewService(srv.Client()),
		addresses.NewService(srv.Client()),
		wallet.NewService(srv.Client(), acceptedTerms{}, wallet.DefaultGatePolicy()),
		payments.NewService(srv.Client(), &fakeSheet{}),
		geo.NewResolver(srv.Client(), deniedLocation{}, time.Second),
		checkout.Fees{Delivery: 50, Service: 25},
	)
	state, err := flow.Load(context.Background())
	require.NoError(t, err)
	assert.Nil(t, state.Coordinates)
	assert.True(t, state.CoordinatesError)

	_, err = flow.PlaceOrder(context.Background(), domain.PaymentMethodCOD, checkout.PlaceOptions{})
	assert.ErrorIs(t, err, checkout.ErrCoordinatesUnavailable)
	assert.Empty(t, srv.CreatedDrafts)

	// The user confirms and the order goes out with null coordinates.
	conf, err := flow.PlaceOrder(context.Background(), domain.PaymentMethodCOD, checkout.PlaceOptions{ConfirmWithoutCoordinates: true})
	require.NoError(t, err)
	require.NotNil(t, conf)
	require.Len(t, srv.CreatedDrafts, 1)
	assert.Nil(t, srv.CreatedDrafts[0].Address.Latitude)
	assert.Nil(t, srv.CreatedDrafts[0].Address.Longitude)
}

type deniedLocation struct{}

func (deniedLocation) RequestPermission(context.Context) (bool, error) { return false, nil }
func (deniedLocation) CurrentPosition(context.Context) (float64, float64, error) {
	return 0, 0, errors.New("permission denied")
}

func TestPlaceOrder_FillsMissingNumbersLocally(t *testing.T) {
	srv := apitest.New(t)
	seedCheckout(srv)
	srv.CreatedOrder = &domain.Order{ID: "ord-9"} // server omits order/tracking numbers
	flow := newTestFlow(t, srv, &fakeSheet{})
	_, err := flow.Load(context.Background())
	require.NoError(t, err)

	conf, err := flow.PlaceOrder(context.Background(), domain.PaymentMethodCOD, checkout.PlaceOptions{})

	require.NoError(t, err)
	assert.Equal(t, "ord-9", conf.OrderID)
	assert.Regexp(t, `^SH-[0-9A-F]{10}$`, conf.OrderNumber)
	assert.Regexp(t, `^TRK-[0-9A-F]{10}$`, conf.TrackingNumber)
	assert.False(t, conf.PlacedAt.IsZero())
}
