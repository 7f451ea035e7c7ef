package checkout

import (
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/salonhub/salonhub-go/internal/cart"
	"github.com/salonhub/salonhub-go/internal/domain"
)

// Confirmation is the denormalized order snapshot handed to the
// confirmation view after a successful checkout.
type Confirmation struct {
	OrderID        string
	OrderNumber    string
	TrackingNumber string
	PaymentMethod  domain.PaymentMethod
	Address        domain.OrderAddress
	Totals         cart.Totals
	PlacedAt       time.Time
}

// newConfirmation fills order and tracking numbers locally when the
// server omits them. This is a compatibility shim for older backends,
// not a correctness guarantee; the server should always populate both.
func newConfirmation(created domain.Order, draft domain.OrderDraft, totals cart.Totals) Confirmation {
	orderNumber := created.OrderNumber
	if orderNumber == "" {
		orderNumber = "SH-" + shortID()
	}
	trackingNumber := created.TrackingNumber
	if trackingNumber == "" {
		trackingNumber = "TRK-" + shortID()
	}

	placedAt := created.CreatedAt
	if placedAt.IsZero() {
		placedAt = time.Now()
	}

	return Confirmation{
		OrderID:        created.ID,
		OrderNumber:    orderNumber,
		TrackingNumber: trackingNumber,
		PaymentMethod:  draft.PaymentMethod,
		Address:        draft.Address,
		Totals:         totals,
		PlacedAt:       placedAt,
	}
}

func shortID() string {
	id := uuid.NewString()
	return strings.ToUpper(strings.ReplaceAll(id, "-", "")[:10])
}
