// Package cart holds an in-memory order draft: an ordered list of product
// lines keyed by product id. It carries no persistence; a cart lives only as
// long as the checkout that builds it.
package cart

import "kedai/model"

type Line struct {
	ProductID uint    `json:"product_id"`
	Name      string  `json:"name"`
	UnitPrice float64 `json:"unit_price"`
	Quantity  int     `json:"quantity"`
}

func (l Line) Subtotal() float64 {
	return float64(l.Quantity) * l.UnitPrice
}

type Cart struct {
	lines []Line
}

func New() *Cart {
	return &Cart{}
}

// Add merges with an existing line for the same product, summing quantities,
// or appends a new line. The unit price is snapshotted from the product's
// display price at the moment of adding. Non-positive quantities are ignored.
func (c *Cart) Add(p model.Product, qty int) {
	if qty <= 0 {
		return
	}
	for i := range c.lines {
		if c.lines[i].ProductID == p.ID {
			c.lines[i].Quantity += qty
			return
		}
	}
	c.lines = append(c.lines, Line{
		ProductID: p.ID,
		Name:      p.Name,
		UnitPrice: p.DisplayPrice(),
		Quantity:  qty,
	})
}

// UpdateQuantity sets the quantity of an existing line. A quantity of zero or
// less removes the line. Unknown product ids are ignored.
func (c *Cart) UpdateQuantity(productID uint, qty int) {
	if qty <= 0 {
		c.Remove(productID)
		return
	}
	for i := range c.lines {
		if c.lines[i].ProductID == productID {
			c.lines[i].Quantity = qty
			return
		}
	}
}

func (c *Cart) Remove(productID uint) {
	for i := range c.lines {
		if c.lines[i].ProductID == productID {
			c.lines = append(c.lines[:i], c.lines[i+1:]...)
			return
		}
	}
}

func (c *Cart) Clear() {
	c.lines = nil
}

// Lines returns the cart contents in insertion order.
func (c *Cart) Lines() []Line {
	return c.lines
}

func (c *Cart) Empty() bool {
	return len(c.lines) == 0
}

// Total is computed on read, never stored.
func (c *Cart) Total() float64 {
	var total float64
	for _, l := range c.lines {
		total += l.Subtotal()
	}
	return total
}
