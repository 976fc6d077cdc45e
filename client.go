// Package storefront assembles the client kit: the HTTP gateway, the
// token store, and the auth, catalog, and cart reducers, wired through
// explicit constructor injection rather than ambient singletons.
package storefront

import (
	"context"

	"github.com/shajib07/storefront/auth"
	"github.com/shajib07/storefront/cart"
	"github.com/shajib07/storefront/catalog"
	"github.com/shajib07/storefront/config"
	"github.com/shajib07/storefront/gateway"
	"github.com/shajib07/storefront/store"
)

type Client struct {
	Gateway *gateway.Client
	Auth    *auth.Reducer
	Catalog *catalog.Reducer
	Cart    *cart.Reducer

	tokens store.TokenStore
}

// New builds a client from configuration, choosing the token store
// backend: Redis when REDIS_URL is set, else the token file.
func New(ctx context.Context, cfg config.Config) (*Client, error) {
	var (
		tokens store.TokenStore
		err    error
	)
	switch {
	case cfg.RedisURL != "":
		tokens, err = store.NewRedisStore(ctx, cfg.RedisURL)
		if err != nil {
			return nil, err
		}
	case cfg.TokenFile != "":
		tokens = store.NewFileStore(cfg.TokenFile)
	default:
		tokens = store.NewMemoryStore()
	}
	return NewWithStore(cfg, tokens), nil
}

// NewWithStore builds a client around an injected token store.
func NewWithStore(cfg config.Config, tokens store.TokenStore) *Client {
	gw := gateway.New(cfg, tokens)

	authReducer := auth.New(gw, tokens, cfg)
	gw.SetOnSessionExpired(authReducer.SessionExpired)

	return &Client{
		Gateway: gw,
		Auth:    authReducer,
		Catalog: catalog.New(gw),
		Cart:    cart.New(),
		tokens:  tokens,
	}
}

// Close drains every reducer's event loop and releases the token store
// if it holds a connection.
func (c *Client) Close() error {
	c.Auth.Close()
	c.Catalog.Close()
	c.Cart.Close()

	if closer, ok := c.tokens.(interface{ Close() error }); ok {
		return closer.Close()
	}
	return nil
}
