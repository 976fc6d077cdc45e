// Package store provides the local persistence collaborator used to
// hold bearer and refresh tokens under fixed keys.
package store

import "context"

// TokenStore is a small key/value surface. Get returns the empty string
// with a nil error when the key is absent.
type TokenStore interface {
	Get(ctx context.Context, key string) (string, error)
	Set(ctx context.Context, key, value string) error
	Remove(ctx context.Context, key string) error
}
