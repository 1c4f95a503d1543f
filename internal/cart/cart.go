// Package cart implements the in-memory cart aggregator: an
// insertion-ordered set of line items keyed by product id, with the invariant
// that every retained line has quantity >= 1 and no product appears twice.
package cart

import "printshop/internal/domain"

// Snapshot holds the display fields of a product captured at add time. Later
// catalog changes do not affect lines already in the cart.
type Snapshot struct {
	ProductID string  `json:"productId"`
	Name      string  `json:"name"`
	Price     float64 `json:"price"`
	ImageRef  string  `json:"image"`
}

type LineItem struct {
	Snapshot
	Quantity int `json:"quantity"`
}

func (li LineItem) Subtotal() float64 {
	return li.Price * float64(li.Quantity)
}

type Cart struct {
	lines []LineItem
	index map[string]int // product id -> position in lines
}

func New() *Cart {
	return &Cart{index: make(map[string]int)}
}

// Add merges qty into an existing line for p, or appends a new line capturing
// p's display fields now. A qty below 1 counts as 1.
func (c *Cart) Add(p domain.Product, qty int) {
	if qty < 1 {
		qty = 1
	}
	if i, ok := c.index[p.ID]; ok {
		c.lines[i].Quantity += qty
		return
	}
	c.index[p.ID] = len(c.lines)
	c.lines = append(c.lines, LineItem{
		Snapshot: Snapshot{ProductID: p.ID, Name: p.Name, Price: p.Price, ImageRef: p.ImageRef},
		Quantity: qty,
	})
}

// SetQuantity sets the quantity for productID exactly; qty < 1 removes the
// line. An absent productID is a no-op.
func (c *Cart) SetQuantity(productID string, qty int) {
	i, ok := c.index[productID]
	if !ok {
		return
	}
	if qty < 1 {
		c.removeAt(i)
		return
	}
	c.lines[i].Quantity = qty
}

// Remove deletes the line for productID if present. Idempotent.
func (c *Cart) Remove(productID string) {
	if i, ok := c.index[productID]; ok {
		c.removeAt(i)
	}
}

func (c *Cart) removeAt(i int) {
	delete(c.index, c.lines[i].ProductID)
	c.lines = append(c.lines[:i], c.lines[i+1:]...)
	for j := i; j < len(c.lines); j++ {
		c.index[c.lines[j].ProductID] = j
	}
}

// Items returns the line items in insertion order. The returned slice is a
// copy; mutating it does not affect the cart.
func (c *Cart) Items() []LineItem {
	out := make([]LineItem, len(c.lines))
	copy(out, c.lines)
	return out
}

func (c *Cart) Len() int { return len(c.lines) }

// ItemCount is the sum of quantities across all lines.
func (c *Cart) ItemCount() int {
	n := 0
	for _, li := range c.lines {
		n += li.Quantity
	}
	return n
}

// Subtotal returns price x quantity for one line, or 0 if absent.
func (c *Cart) Subtotal(productID string) float64 {
	if i, ok := c.index[productID]; ok {
		return c.lines[i].Subtotal()
	}
	return 0
}

func (c *Cart) Total() float64 {
	t := 0.0
	for _, li := range c.lines {
		t += li.Subtotal()
	}
	return t
}

func (c *Cart) Clear() {
	c.lines = nil
	c.index = make(map[string]int)
}

// Restore rebuilds a cart from previously persisted lines, dropping lines
// with quantity < 1 and merging duplicate product lines into one.
func Restore(lines []LineItem) *Cart {
	c := New()
	for _, li := range lines {
		if li.Quantity < 1 {
			continue
		}
		if _, dup := c.index[li.ProductID]; dup {
			c.lines[c.index[li.ProductID]].Quantity += li.Quantity
			continue
		}
		c.index[li.ProductID] = len(c.lines)
		c.lines = append(c.lines, li)
	}
	return c
}
