// Package store provides the persistent key/value store the storefront keeps
// its state in: user accounts, per-user carts, submitted reviews and theme
// preferences, each serialized as JSON under one key. Consumers must tolerate
// absent keys and treat them as empty collections.
package store

import (
	"context"
	"errors"
	"strconv"
)

// ErrKeyNotFound is returned by Get when no value exists for the key.
var ErrKeyNotFound = errors.New("key not found")

// Write is one key/value pair in a SetMulti batch.
type Write struct {
	Key   string
	Value []byte
}

// Store is the key/value contract all backends implement. SetMulti applies
// the writes as one transaction where the backend supports it; a backend
// that cannot must apply them in the given order, because callers rely on
// the order for crash safety.
type Store interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte) error
	Delete(ctx context.Context, key string) error
	SetMulti(ctx context.Context, writes []Write) error
}

// Key layout shared by every consumer of the store.

const (
	// UsersKey holds the full collection of registered users.
	UsersKey = "users"
	// StockKey holds the remaining-stock overlay used by the
	// decrement-on-order stock model.
	StockKey = "stock"
)

// CartKey is the per-user cart ledger key.
func CartKey(userID string) string { return "cart:" + userID }

// ReviewsKey holds the submitted reviews of one product.
func ReviewsKey(productID int) string { return "reviews:" + strconv.Itoa(productID) }

// ThemeKey is the per-user theme preference key.
func ThemeKey(userID string) string { return "theme:" + userID }
