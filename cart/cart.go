// Package cart holds the shopping cart reducer: line items keyed by
// product identity, mutated only through its serialized event loop.
package cart

import (
	"github.com/shajib07/storefront/dispatch"
	"github.com/shajib07/storefront/models"
)

// State is an immutable cart snapshot. Err carries the most recent
// rejected event's reason and clears on the next accepted event.
type State struct {
	Lines []models.CartLine
	Err   string
}

// Total sums line subtotals. Recomputed on every read, never cached.
func (s State) Total() float64 {
	total := 0.0
	for _, line := range s.Lines {
		total += line.Subtotal()
	}
	return total
}

// Line returns the line for a product id, if present.
func (s State) Line(productID int) (models.CartLine, bool) {
	for _, line := range s.Lines {
		if line.Product != nil && line.Product.ID == productID {
			return line, true
		}
	}
	return models.CartLine{}, false
}

type Reducer struct {
	loop     *dispatch.Loop
	notifier dispatch.Notifier[State]

	// touched only on the loop goroutine
	lines []models.CartLine
	err   string

	last *dispatch.Latest[State]
}

func New() *Reducer {
	r := &Reducer{
		loop: dispatch.NewLoop(),
		last: dispatch.NewLatest(State{}),
	}
	return r
}

// Subscribe registers fn for snapshots after every transition.
func (r *Reducer) Subscribe(fn func(State)) func() {
	return r.notifier.Subscribe(fn)
}

// Snapshot returns the last published state.
func (r *Reducer) Snapshot() State {
	return r.last.Load()
}

func (r *Reducer) Close() {
	r.loop.Close()
}

// Add puts qty units of product in the cart. An existing line for the
// same product id is incremented rather than duplicated. Non-positive
// quantities are rejected and leave the lines untouched.
func (r *Reducer) Add(product *models.Product, qty int) {
	r.loop.Dispatch(func() {
		if product == nil {
			r.err = "invalid quantity: product is required"
			r.publish()
			return
		}
		if qty <= 0 {
			r.err = "invalid quantity: must be at least 1"
			r.publish()
			return
		}

		r.err = ""
		for i, line := range r.lines {
			if line.Product.ID == product.ID {
				r.lines[i].Quantity += qty
				r.publish()
				return
			}
		}
		r.lines = append(r.lines, models.CartLine{Product: product, Quantity: qty})
		r.publish()
	})
}

// Remove deletes the line for productID. An absent id is a no-op.
func (r *Reducer) Remove(productID int) {
	r.loop.Dispatch(func() {
		r.err = ""
		r.removeLine(productID)
		r.publish()
	})
}

// UpdateQuantity sets the line's quantity exactly. A quantity of zero
// or below removes the line, same as Remove.
func (r *Reducer) UpdateQuantity(productID, qty int) {
	r.loop.Dispatch(func() {
		r.err = ""
		if qty <= 0 {
			r.removeLine(productID)
			r.publish()
			return
		}
		for i, line := range r.lines {
			if line.Product.ID == productID {
				r.lines[i].Quantity = qty
				break
			}
		}
		r.publish()
	})
}

// Clear empties the cart unconditionally.
func (r *Reducer) Clear() {
	r.loop.Dispatch(func() {
		r.err = ""
		r.lines = nil
		r.publish()
	})
}

func (r *Reducer) removeLine(productID int) {
	kept := r.lines[:0]
	for _, line := range r.lines {
		if line.Product.ID != productID {
			kept = append(kept, line)
		}
	}
	r.lines = kept
}

func (r *Reducer) publish() {
	snapshot := State{
		Lines: append([]models.CartLine(nil), r.lines...),
		Err:   r.err,
	}
	r.last.Store(snapshot)
	r.notifier.Publish(snapshot)
}
