package domain

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func cartTotal(c *Cart) float64 {
	var total float64
	for _, item := range c.Items {
		total += float64(item.Quantity) * item.PricePerUnit
	}
	return total
}

func TestCartAddMergesSameProduct(t *testing.T) {
	cart := &Cart{VendorID: "v1"}

	cart.Add(CartItem{ProductID: "p1", Quantity: 5, PricePerUnit: 3.50})
	require.Len(t, cart.Items, 1)
	assert.InDelta(t, 17.50, cart.TotalAmount, 1e-6)

	cart.Add(CartItem{ProductID: "p1", Quantity: 2, PricePerUnit: 3.50})
	require.Len(t, cart.Items, 1)
	assert.Equal(t, 7, cart.Items[0].Quantity)
	assert.InDelta(t, 24.50, cart.TotalAmount, 1e-6)
}

func TestCartAddKeepsFirstSeenPrice(t *testing.T) {
	cart := &Cart{}
	cart.Add(CartItem{ProductID: "p1", Quantity: 1, PricePerUnit: 2.00})
	cart.Add(CartItem{ProductID: "p1", Quantity: 1, PricePerUnit: 9.99})

	require.Len(t, cart.Items, 1)
	assert.InDelta(t, 2.00, cart.Items[0].PricePerUnit, 1e-6)
	assert.InDelta(t, 4.00, cart.TotalAmount, 1e-6)
}

func TestCartSetQuantity(t *testing.T) {
	cart := &Cart{}
	cart.Add(CartItem{ProductID: "p1", Quantity: 3, PricePerUnit: 1.25})

	assert.False(t, cart.SetQuantity("missing", 4))

	require.True(t, cart.SetQuantity("p1", 10))
	assert.Equal(t, 10, cart.Items[0].Quantity)
	assert.InDelta(t, 12.50, cart.TotalAmount, 1e-6)

	// same quantity twice is idempotent
	require.True(t, cart.SetQuantity("p1", 10))
	require.Len(t, cart.Items, 1)
	assert.Equal(t, 10, cart.Items[0].Quantity)

	// zero or negative removes the line
	require.True(t, cart.SetQuantity("p1", 0))
	assert.Empty(t, cart.Items)
	assert.Zero(t, cart.TotalAmount)
}

func TestCartRemove(t *testing.T) {
	cart := &Cart{}
	cart.Add(CartItem{ProductID: "p1", Quantity: 2, PricePerUnit: 3.00})
	cart.Add(CartItem{ProductID: "p2", Quantity: 1, PricePerUnit: 5.00})

	assert.False(t, cart.Remove("missing"))
	require.True(t, cart.Remove("p1"))
	require.Len(t, cart.Items, 1)
	assert.Equal(t, "p2", cart.Items[0].ProductID)
	assert.InDelta(t, 5.00, cart.TotalAmount, 1e-6)
}

// TestCartTotalInvariant drives a random mutation sequence and checks that
// the denormalized total always equals the recomputed sum.
func TestCartTotalInvariant(t *testing.T) {
	rng := rand.New(rand.NewSource(42))
	products := []string{"p1", "p2", "p3", "p4", "p5"}
	cart := &Cart{VendorID: "v1"}

	for i := 0; i < 500; i++ {
		id := products[rng.Intn(len(products))]
		switch rng.Intn(3) {
		case 0:
			cart.Add(CartItem{
				ProductID:    id,
				Quantity:     1 + rng.Intn(20),
				PricePerUnit: float64(rng.Intn(2000)) / 100,
			})
		case 1:
			cart.SetQuantity(id, rng.Intn(25)-2)
		case 2:
			cart.Remove(id)
		}
		assert.InDelta(t, cartTotal(cart), cart.TotalAmount, 1e-6)
	}
}
