package models

// Product is the canonical catalog record as served by the remote API.
// Constructed once from a response body and never mutated client-side.
type Product struct {
	ID          int      `json:"id"`
	Title       string   `json:"title"`
	Price       float64  `json:"price"`
	Description string   `json:"description"`
	Category    string   `json:"category"`
	Images      []string `json:"images"`
	Reviews     []Review `json:"reviews,omitempty"`
}

// Review belongs to its parent product. Rating is 1-5 by convention.
type Review struct {
	Rating  int    `json:"rating"`
	Comment string `json:"comment,omitempty"`
}
