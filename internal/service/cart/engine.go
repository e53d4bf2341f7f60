package cart

import (
	"jewelryshop/internal/domain"
)

// NoOption is the merge key for products without a variant axis. It is
// distinct from the empty string, which means "axis present, nothing chosen
// yet" and is rejected at the boundary, not here.
const NoOption = "default"

// Cart holds one shopper's line items. Items merge on (productID, option);
// a quantity at or below zero removes the line instead of being stored.
type Cart struct {
	items []domain.CartItem
}

// New returns an empty cart.
func New() *Cart {
	return &Cart{}
}

// OptionKey maps a shopper's selection to the merge key for the product.
func OptionKey(p domain.Product, selected string) string {
	if p.Options == nil {
		return NoOption
	}
	return selected
}

// CanAdd reports whether the selection is complete enough to add the product:
// products with a variant axis need a chosen value, products without one
// never do. Stock checks are the caller's contract, not the cart's.
func CanAdd(p domain.Product, selected string) bool {
	if p.Options == nil {
		return true
	}
	return p.Options.HasValue(selected)
}

// AddItem merges one unit of the product into the cart, snapshotting price
// and name at this instant. Later catalog edits do not touch existing lines.
func (c *Cart) AddItem(p domain.Product, selected string) {
	key := OptionKey(p, selected)
	for i := range c.items {
		if c.items[i].ProductID == p.ID && c.items[i].Option == key {
			c.items[i].Quantity++
			return
		}
	}
	c.items = append(c.items, domain.CartItem{
		ProductID: p.ID,
		Option:    key,
		Quantity:  1,
		Price:     p.Price,
		Name:      p.Name,
	})
}

// ChangeQuantity adjusts the matching line by delta. A resulting quantity at
// or below zero removes the line. Missing lines are a no-op.
func (c *Cart) ChangeQuantity(productID, option string, delta int) {
	kept := c.items[:0]
	for _, item := range c.items {
		if item.ProductID == productID && item.Option == option {
			item.Quantity += delta
		}
		if item.Quantity > 0 {
			kept = append(kept, item)
		}
	}
	c.items = kept
}

// Total is the sum of price times quantity over all lines.
func (c *Cart) Total() int64 {
	var total int64
	for _, item := range c.items {
		total += item.Subtotal()
	}
	return total
}

// ItemCount is the sum of all quantities, used for the cart badge.
func (c *Cart) ItemCount() int {
	count := 0
	for _, item := range c.items {
		count += item.Quantity
	}
	return count
}

// Items returns a copy of the current lines in insertion order.
func (c *Cart) Items() []domain.CartItem {
	out := make([]domain.CartItem, len(c.items))
	copy(out, c.items)
	return out
}

// Clear empties the cart. Called once at checkout confirmation.
func (c *Cart) Clear() {
	c.items = nil
}
