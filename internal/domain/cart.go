package domain

// CartItem is one line of a shopper's cart, keyed by (ProductID, Option).
// Price and Name are snapshotted from the product at add time and are
// intentionally never re-read from the catalog afterwards.
type CartItem struct {
	ProductID string `json:"productId"`
	Option    string `json:"selectedOption,omitempty"`
	Quantity  int    `json:"quantity"`
	Price     int64  `json:"price"`
	Name      string `json:"name"`
}

// Subtotal is the line total, Price times Quantity.
func (i CartItem) Subtotal() int64 {
	return i.Price * int64(i.Quantity)
}
