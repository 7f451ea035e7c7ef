package cart

import (
	"testing"

	"github.com/salonhub/salonhub-go/internal/domain"
	"github.com/stretchr/testify/assert"
)

func TestComputeTotals_TaxAndTotal(t *testing.T) {
	services := []domain.ServiceCartItem{
		{ID: "s1", Price: 300, Quantity: 2},
	}
	products := []domain.ProductCartItem{
		{ID: "p1", Price: 200, Quantity: 2},
	}

	totals := ComputeTotals(services, products, 50, 25)

	assert.Equal(t, 1000.0, totals.Subtotal)
	assert.Equal(t, 180.0, totals.Tax)
	assert.Equal(t, 1255.0, totals.Total)
}

func TestComputeTotals_EmptyCart(t *testing.T) {
	totals := ComputeTotals(nil, nil, 50, 25)

	assert.Equal(t, 0.0, totals.Subtotal)
	assert.Equal(t, 0.0, totals.Tax)
	assert.Equal(t, 75.0, totals.Total)
}

func TestComputeTotals_RoundsTax(t *testing.T) {
	services := []domain.ServiceCartItem{
		{ID: "s1", Price: 333, Quantity: 1},
	}

	totals := ComputeTotals(services, nil, 0, 0)

	// 333 * 0.18 = 59.94, rounded to 60.
	assert.Equal(t, 60.0, totals.Tax)
	assert.Equal(t, 393.0, totals.Total)
}
