package cart

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"printshop/internal/domain"
)

var (
	cards  = domain.Product{ID: "biz-001", Name: "Business Cards", Price: 199, ImageRef: "cards.jpg"}
	banner = domain.Product{ID: "ban-001", Name: "Vinyl Banner", Price: 599}
	poster = domain.Product{ID: "pos-001", Name: "Poster", Price: 149}
)

func productIDs(c *Cart) []string {
	items := c.Items()
	out := make([]string, len(items))
	for i, li := range items {
		out[i] = li.ProductID
	}
	return out
}

func TestAddMergesSameProduct(t *testing.T) {
	c := New()
	c.Add(cards, 2)
	c.Add(banner, 1)
	c.Add(cards, 3)

	require.Equal(t, 2, c.Len())
	items := c.Items()
	assert.Equal(t, "biz-001", items[0].ProductID)
	assert.Equal(t, 5, items[0].Quantity)
	assert.Equal(t, 6, c.ItemCount())
	assert.InDelta(t, 199*5+599, c.Total(), 1e-9)
}

func TestAddClampsQuantityToOne(t *testing.T) {
	c := New()
	c.Add(cards, 0)
	c.Add(banner, -4)
	assert.Equal(t, 2, c.ItemCount())
}

func TestAddCapturesSnapshot(t *testing.T) {
	c := New()
	p := cards
	c.Add(p, 1)

	// later catalog edits must not reach the captured line
	p.Price = 999
	p.Name = "renamed"

	li := c.Items()[0]
	assert.Equal(t, "Business Cards", li.Name)
	assert.InDelta(t, 199, li.Price, 1e-9)
	assert.Equal(t, "cards.jpg", li.ImageRef)
}

func TestSetQuantity(t *testing.T) {
	c := New()
	c.Add(cards, 2)
	c.Add(banner, 1)

	c.SetQuantity("biz-001", 7)
	assert.Equal(t, 7, c.Items()[0].Quantity)

	// qty < 1 removes the line
	c.SetQuantity("biz-001", 0)
	require.Equal(t, 1, c.Len())
	assert.Equal(t, "ban-001", c.Items()[0].ProductID)

	// unknown product is a no-op
	c.SetQuantity("nope", 3)
	assert.Equal(t, 1, c.Len())
}

func TestRemoveIsIdempotent(t *testing.T) {
	c := New()
	c.Add(cards, 1)
	c.Add(banner, 1)
	c.Add(poster, 1)

	c.Remove("ban-001")
	c.Remove("ban-001")
	c.Remove("never-added")

	assert.Equal(t, []string{"biz-001", "pos-001"}, productIDs(c))
}

func TestRemoveKeepsIndexConsistent(t *testing.T) {
	c := New()
	c.Add(cards, 1)
	c.Add(banner, 1)
	c.Add(poster, 1)

	// removing the head shifts positions; the index must follow
	c.Remove("biz-001")
	c.SetQuantity("pos-001", 4)

	items := c.Items()
	require.Len(t, items, 2)
	assert.Equal(t, "ban-001", items[0].ProductID)
	assert.Equal(t, 4, items[1].Quantity)
}

func TestInsertionOrderSurvivesUpdates(t *testing.T) {
	c := New()
	c.Add(poster, 1)
	c.Add(cards, 1)
	c.Add(banner, 1)
	c.Add(poster, 2) // merge must not move the line

	assert.Equal(t, []string{"pos-001", "biz-001", "ban-001"}, productIDs(c))
}

func TestSubtotalAndClear(t *testing.T) {
	c := New()
	c.Add(cards, 3)
	assert.InDelta(t, 597, c.Subtotal("biz-001"), 1e-9)
	assert.Zero(t, c.Subtotal("absent"))

	c.Clear()
	assert.Zero(t, c.Len())
	assert.Zero(t, c.Total())

	// cart stays usable after Clear
	c.Add(banner, 1)
	assert.Equal(t, 1, c.Len())
}

func TestItemsReturnsCopy(t *testing.T) {
	c := New()
	c.Add(cards, 1)
	items := c.Items()
	items[0].Quantity = 100
	assert.Equal(t, 1, c.Items()[0].Quantity)
}

// Total and ItemCount must equal the naive sum over a shadow model after any
// sequence of Add/SetQuantity/Remove calls.
func TestTotalMatchesModelUnderRandomOps(t *testing.T) {
	products := []domain.Product{cards, banner, poster,
		{ID: "inv-001", Name: "Wedding Invitation Cards", Price: 299}}
	prices := make(map[string]float64, len(products))
	for _, p := range products {
		prices[p.ID] = p.Price
	}

	rng := rand.New(rand.NewSource(42))
	c := New()
	model := map[string]int{} // product id -> quantity

	for i := 0; i < 1000; i++ {
		p := products[rng.Intn(len(products))]
		switch rng.Intn(3) {
		case 0:
			qty := rng.Intn(5) - 1 // includes the below-one values Add clamps
			c.Add(p, qty)
			if qty < 1 {
				qty = 1
			}
			model[p.ID] += qty
		case 1:
			qty := rng.Intn(7) - 2
			c.SetQuantity(p.ID, qty)
			if _, ok := model[p.ID]; ok {
				if qty < 1 {
					delete(model, p.ID)
				} else {
					model[p.ID] = qty
				}
			}
		case 2:
			c.Remove(p.ID)
			delete(model, p.ID)
		}

		wantTotal, wantCount := 0.0, 0
		for id, qty := range model {
			wantTotal += prices[id] * float64(qty)
			wantCount += qty
		}
		require.InDelta(t, wantTotal, c.Total(), 1e-9, "op %d", i)
		require.Equal(t, wantCount, c.ItemCount(), "op %d", i)
		require.Equal(t, len(model), c.Len(), "op %d", i)
	}
}

func TestRestoreDropsInvalidLines(t *testing.T) {
	c := Restore([]LineItem{
		{Snapshot: Snapshot{ProductID: "a", Name: "A", Price: 10}, Quantity: 2},
		{Snapshot: Snapshot{ProductID: "b", Name: "B", Price: 5}, Quantity: 0},
		{Snapshot: Snapshot{ProductID: "a", Name: "A", Price: 10}, Quantity: 3},
	})

	require.Equal(t, 1, c.Len())
	li := c.Items()[0]
	assert.Equal(t, "a", li.ProductID)
	assert.Equal(t, 5, li.Quantity)
}
