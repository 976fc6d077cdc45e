package models

// CartLine pairs a product with a quantity. The product is a shared
// reference into the catalog cache, not a copy the cart owns.
type CartLine struct {
	Product  *Product `json:"product"`
	Quantity int      `json:"quantity"`
}

// Subtotal is price times quantity, computed on read.
func (l CartLine) Subtotal() float64 {
	if l.Product == nil {
		return 0
	}
	return l.Product.Price * float64(l.Quantity)
}
