// Package payments drives the online payment leg of checkout: create a
// provider order server-side, open the native payment sheet, then send
// the signed confirmation back for verification. The sheet itself is an
// external collaborator.
package payments

import (
	"context"
	"errors"
	"fmt"

	"github.com/salonhub/salonhub-go/internal/api"
)

// Sheet is the native payment-sheet collaborator. Open blocks until the
// user completes or dismisses the sheet and must return ErrCancelled on
// dismissal so cancellation can be told apart from provider failure.
type Sheet interface {
	Open(ctx context.Context, opts SheetOptions) (*SheetResult, error)
}

type SheetOptions struct {
	ProviderOrderID string
	Key             string
	Amount          float64
	Description     string
}

// SheetResult is the signed confirmation the provider hands back; it is
// forwarded verbatim for server-side verification.
type SheetResult struct {
	PaymentID       string
	ProviderOrderID string
	Signature       string
}

type Service struct {
	api   *api.Client
	sheet Sheet
}

func NewService(client *api.Client, sheet Sheet) *Service {
	return &Service{api: client, sheet: sheet}
}

type ProviderOrder struct {
	ProviderOrderID string  `json:"providerOrderId"`
	Key             string  `json:"key"`
	Amount          float64 `json:"amount"`
}

type createOrderRequest struct {
	OrderID string  `json:"orderId"`
	Amount  float64 `json:"amount"`
}

type verifyRequest struct {
	OrderID         string `json:"orderId"`
	PaymentID       string `json:"paymentId"`
	ProviderOrderID string `json:"providerOrderId"`
	Signature       string `json:"signature"`
}

// PayOnline runs create-order, sheet, verify in sequence for an already
// created platform order.
func (s *Service) PayOnline(ctx context.Context, orderID string, amount float64) error {
	if s.sheet == nil {
		return errors.New("no payment sheet configured")
	}

	var provider ProviderOrder
	if err := s.api.Post(ctx, "/payments/create-order", createOrderRequest{OrderID: orderID, Amount: amount}, &provider); err != nil {
		return fmt.Errorf("create provider order: %w", err)
	}

	result, err := s.sheet.Open(ctx, SheetOptions{
		ProviderOrderID: provider.ProviderOrderID,
		Key:             provider.Key,
		Amount:          provider.Amount,
		Description:     "SalonHub order " + orderID,
	})
	if err != nil {
		if errors.Is(err, ErrCancelled) {
			return ErrCancelled
		}
		return fmt.Errorf("payment provider failed: %w", err)
	}

	verify := verifyRequest{
		OrderID:         orderID,
		PaymentID:       result.PaymentID,
		ProviderOrderID: result.ProviderOrderID,
		Signature:       result.Signature,
	}
	if err := s.api.Post(ctx, "/payments/verify", verify, nil); err != nil {
		return fmt.Errorf("verify payment: %w", err)
	}
	return nil
}
