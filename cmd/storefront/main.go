// Command storefront runs a small scripted session against the catalog
// API: restore/login, browse products, fill a cart, print the total.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"time"

	"go.uber.org/zap"

	storefront "github.com/shajib07/storefront"
	"github.com/shajib07/storefront/auth"
	"github.com/shajib07/storefront/cart"
	"github.com/shajib07/storefront/catalog"
	"github.com/shajib07/storefront/common/logger"
	"github.com/shajib07/storefront/config"
)

func main() {
	email := flag.String("email", "demo@storefront.dev", "login email")
	password := flag.String("password", "demo1234", "login password")
	qty := flag.Int("qty", 2, "quantity of the first product to add")
	flag.Parse()

	cfg := config.Load()
	logger.Initialize(cfg.Env)
	defer logger.Log.Sync()

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	client, err := storefront.New(ctx, cfg)
	if err != nil {
		logger.Log.Fatal("Client construction failed", zap.Error(err))
	}
	defer client.Close()

	// Session: restore, then login if needed.
	state := waitAuth(client.Auth, func() { client.Auth.CheckStatus(ctx) })
	if state.Status != auth.StatusAuthenticated {
		state = waitAuth(client.Auth, func() {
			client.Auth.Login(ctx, auth.Credentials{Email: *email, Password: *password})
		})
		if state.Status != auth.StatusAuthenticated {
			fmt.Fprintf(os.Stderr, "login failed: %s\n", state.Err)
			os.Exit(1)
		}
	}
	fmt.Println("session established")

	// Catalog: full product list.
	catState := waitCatalog(client.Catalog, func() { client.Catalog.LoadProducts(ctx) })
	if catState.Products.Status != catalog.StatusLoaded {
		fmt.Fprintf(os.Stderr, "loading products failed: %s\n", catState.Products.Err)
		os.Exit(1)
	}
	for _, p := range catState.Products.Value {
		fmt.Printf("  #%d %-28s %8.2f  (%s)\n", p.ID, p.Title, p.Price, p.Category)
	}

	// Cart: add the first product and print the running total.
	cartState := client.Cart.Snapshot()
	if len(catState.Products.Value) > 0 {
		first := catState.Products.Value[0]
		cartState = waitCart(client.Cart, func() { client.Cart.Add(&first, *qty) })
	}
	fmt.Printf("cart: %d line(s), total %.2f\n", len(cartState.Lines), cartState.Total())
}

func waitAuth(r *auth.Reducer, op func()) auth.State {
	done := make(chan auth.State, 8)
	cancel := r.Subscribe(func(s auth.State) { done <- s })
	defer cancel()

	op()
	select {
	case s := <-done:
		return s
	case <-time.After(20 * time.Second):
		return auth.State{Status: auth.StatusUnknown, Err: "timed out waiting for auth state"}
	}
}

func waitCatalog(r *catalog.Reducer, op func()) catalog.State {
	done := make(chan catalog.State, 8)
	cancel := r.Subscribe(func(s catalog.State) { done <- s })
	defer cancel()

	op()
	deadline := time.After(20 * time.Second)
	for {
		select {
		case s := <-done:
			if s.Products.Status == catalog.StatusLoading {
				continue
			}
			return s
		case <-deadline:
			return catalog.State{}
		}
	}
}

func waitCart(r *cart.Reducer, op func()) cart.State {
	done := make(chan cart.State, 8)
	cancel := r.Subscribe(func(s cart.State) { done <- s })
	defer cancel()

	op()
	select {
	case s := <-done:
		return s
	case <-time.After(5 * time.Second):
		return r.Snapshot()
	}
}
