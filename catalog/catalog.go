// Package catalog caches the last-loaded query results from the remote
// product API. Every load re-fetches and replaces its slot; there is no
// TTL and no deduplication of repeated loads.
package catalog

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"

	"go.uber.org/zap"

	"github.com/shajib07/storefront/common/logger"
	"github.com/shajib07/storefront/dispatch"
	"github.com/shajib07/storefront/gateway"
	"github.com/shajib07/storefront/models"
)

type Status string

const (
	StatusInitial Status = "initial"
	StatusLoading Status = "loading"
	StatusLoaded  Status = "loaded"
	StatusError   Status = "error"
)

// Slot is one cached query result. On a failed load the previous value
// stays in place next to the error, so the UI can keep rendering it.
type Slot[T any] struct {
	Status Status
	Value  T
	Err    string
}

// State snapshots every query slot the client has asked for.
type State struct {
	Products   Slot[[]models.Product]
	Product    Slot[models.Product]
	Categories Slot[[]string]

	// CategoryName identifies which category CategoryItems holds.
	CategoryName  string
	CategoryItems Slot[[]models.Product]
}

type Reducer struct {
	loop     *dispatch.Loop
	notifier dispatch.Notifier[State]
	last     *dispatch.Latest[State]

	gw    gateway.Requester
	state State
}

func New(gw gateway.Requester) *Reducer {
	return &Reducer{
		loop: dispatch.NewLoop(),
		last: dispatch.NewLatest(State{}),
		gw:   gw,
	}
}

func (r *Reducer) Subscribe(fn func(State)) func() {
	return r.notifier.Subscribe(fn)
}

func (r *Reducer) Snapshot() State {
	return r.last.Load()
}

func (r *Reducer) Close() {
	r.loop.Close()
}

// LoadProducts fetches the full product list.
func (r *Reducer) LoadProducts(ctx context.Context) {
	r.loop.Dispatch(func() {
		r.state.Products.Status = StatusLoading
		r.publish()

		var products []models.Product
		if err := r.fetch(ctx, "/products", &products); err != nil {
			r.state.Products.Status = StatusError
			r.state.Products.Err = err.Error()
			r.publish()
			return
		}
		r.state.Products = Slot[[]models.Product]{Status: StatusLoaded, Value: products}
		r.publish()
	})
}

// LoadProduct fetches a single product by id.
func (r *Reducer) LoadProduct(ctx context.Context, id int) {
	r.loop.Dispatch(func() {
		r.state.Product.Status = StatusLoading
		r.publish()

		var product models.Product
		if err := r.fetch(ctx, fmt.Sprintf("/products/%d", id), &product); err != nil {
			r.state.Product.Status = StatusError
			r.state.Product.Err = err.Error()
			r.publish()
			return
		}
		r.state.Product = Slot[models.Product]{Status: StatusLoaded, Value: product}
		r.publish()
	})
}

// LoadCategories fetches the category name list.
func (r *Reducer) LoadCategories(ctx context.Context) {
	r.loop.Dispatch(func() {
		r.state.Categories.Status = StatusLoading
		r.publish()

		var categories []string
		if err := r.fetch(ctx, "/products/categories", &categories); err != nil {
			r.state.Categories.Status = StatusError
			r.state.Categories.Err = err.Error()
			r.publish()
			return
		}
		r.state.Categories = Slot[[]string]{Status: StatusLoaded, Value: categories}
		r.publish()
	})
}

// LoadByCategory fetches the products of one category.
func (r *Reducer) LoadByCategory(ctx context.Context, category string) {
	r.loop.Dispatch(func() {
		r.state.CategoryName = category
		r.state.CategoryItems.Status = StatusLoading
		r.publish()

		var products []models.Product
		path := "/products/category/" + url.PathEscape(category)
		if err := r.fetch(ctx, path, &products); err != nil {
			r.state.CategoryItems.Status = StatusError
			r.state.CategoryItems.Err = err.Error()
			r.publish()
			return
		}
		r.state.CategoryItems = Slot[[]models.Product]{Status: StatusLoaded, Value: products}
		r.publish()
	})
}

func (r *Reducer) fetch(ctx context.Context, path string, out any) error {
	raw, err := r.gw.Request(ctx, http.MethodGet, path, nil, false)
	if err != nil {
		logger.Warn(ctx, "Catalog load failed", zap.String("path", path), zap.Error(err))
		return err
	}
	if err := json.Unmarshal(raw, out); err != nil {
		logger.Warn(ctx, "Catalog response malformed", zap.String("path", path), zap.Error(err))
		return err
	}
	return nil
}

func (r *Reducer) publish() {
	snapshot := r.state
	snapshot.Products.Value = append([]models.Product(nil), r.state.Products.Value...)
	snapshot.Categories.Value = append([]string(nil), r.state.Categories.Value...)
	snapshot.CategoryItems.Value = append([]models.Product(nil), r.state.CategoryItems.Value...)

	r.last.Store(snapshot)
	r.notifier.Publish(snapshot)
}
