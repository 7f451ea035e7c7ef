package cart

import (
	"math"

	"github.com/salonhub/salonhub-go/internal/domain"
)

// TaxRate is applied to the subtotal and rounded to the nearest unit.
const TaxRate = 0.18

type Totals struct {
	Subtotal    float64
	DeliveryFee float64
	ServiceFee  float64
	Tax         float64
	Total       float64
}

// ComputeTotals recomputes the order total from the current line items.
// Totals are always derived fresh, never cached across renders.
func ComputeTotals(services []domain.ServiceCartItem, products []domain.ProductCartItem, deliveryFee, serviceFee float64) Totals {
	var subtotal float64
	for _, item := range services {
		subtotal += item.Price * float64(item.Quantity)
	}
	for _, item := range products {
		subtotal += item.Price * float64(item.Quantity)
	}

	tax := math.Round(subtotal * TaxRate)
	return Totals{
		Subtotal:    subtotal,
		DeliveryFee: deliveryFee,
		ServiceFee:  serviceFee,
		Tax:         tax,
		Total:       subtotal + deliveryFee + serviceFee + tax,
	}
}
