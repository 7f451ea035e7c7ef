package payments_test

import (
	"context"
	"errors"
	"testing"

	"github.com/salonhub/salonhub-go/internal/apitest"
	"github.com/salonhub/salonhub-go/internal/payments"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// recordingSheet implements payments.Sheet for testing
type recordingSheet struct {
	opts   payments.SheetOptions
	result *payments.SheetResult
	err    error
	opened int
}

func (r *recordingSheet) Open(_ context.Context, opts payments.SheetOptions) (*payments.SheetResult, error) {
	r.opened++
	r.opts = opts
	return r.result, r.err
}

func TestPayOnline_Success(t *testing.T) {
	srv := apitest.New(t)
	sheet := &recordingSheet{result: &payments.SheetResult{
		PaymentID: "pay-1", ProviderOrderID: "prov-ord-7", Signature: "sig-abc",
	}}
	svc := payments.NewService(srv.Client(), sheet)

	err := svc.PayOnline(context.Background(), "ord-7", 1255)

	require.NoError(t, err)
	assert.Equal(t, 1, sheet.opened)
	assert.Equal(t, "prov-ord-7", sheet.opts.ProviderOrderID)
	assert.Equal(t, 1255.0, sheet.opts.Amount)
	assert.Equal(t, 1, srv.VerifyCalls)
}

func TestPayOnline_Cancelled(t *testing.T) {
	srv := apitest.New(t)
	sheet := &recordingSheet{err: payments.ErrCancelled}
	svc := payments.NewService(srv.Client(), sheet)

	err := svc.PayOnline(context.Background(), "ord-7", 1255)

	assert.ErrorIs(t, err, payments.ErrCancelled)
	assert.Equal(t, 0, srv.VerifyCalls, "cancellation must not reach verification")
}

func TestPayOnline_ProviderFailure(t *testing.T) {
	srv := apitest.New(t)
	sheet := &recordingSheet{err: errors.New("card declined")}
	svc := payments.NewService(srv.Client(), sheet)

	err := svc.PayOnline(context.Background(), "ord-7", 1255)

	require.Error(t, err)
	assert.NotErrorIs(t, err, payments.ErrCancelled)
	assert.Contains(t, err.Error(), "payment provider failed")
}

func TestPayOnline_VerificationFailure(t *testing.T) {
	srv := apitest.New(t)
	srv.FailVerify = "signature mismatch"
	sheet := &recordingSheet{result: &payments.SheetResult{PaymentID: "pay-1"}}
	svc := payments.NewService(srv.Client(), sheet)

	err := svc.PayOnline(context.Background(), "ord-7", 1255)

	require.Error(t, err)
	assert.Contains(t, err.Error(), "signature mismatch")
}
