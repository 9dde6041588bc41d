// Package order implements the order recorder: checkout snapshots the cart
// into an immutable order, appends it to the user's history and clears the
// cart, all persisted as one store transaction.
package order

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/google/uuid"

	"storefront/auth"
	"storefront/cart"
	"storefront/catalog"
	"storefront/models"
	"storefront/store"
)

// Recorder turns carts into order history entries.
type Recorder struct {
	store   store.Store
	catalog *catalog.Catalog
	ledger  *cart.Ledger
	users   *auth.Registry
}

// NewRecorder wires the recorder to its collaborators.
func NewRecorder(st store.Store, cat *catalog.Catalog, ledger *cart.Ledger, users *auth.Registry) *Recorder {
	return &Recorder{store: st, catalog: cat, ledger: ledger, users: users}
}

// PlaceOrder snapshots the user's cart into a new order. An empty cart
// aborts with ErrEmptyCart. Stock is re-checked per line before anything is
// persisted; a line over the available stock aborts with ErrStockExceeded.
// On success the updated user history, the cleared cart and, under the
// decrement-on-order stock model, the remaining-stock overlay land in one
// store transaction, so no crash can record a sale without consuming its
// stock.
func (r *Recorder) PlaceOrder(ctx context.Context, userID string) (models.Order, error) {
	lines, err := r.ledger.Lines(ctx, userID)
	if err != nil {
		return models.Order{}, err
	}
	if len(lines) == 0 {
		return models.Order{}, models.ErrEmptyCart
	}

	// Authoritative stock may have moved since the lines were added.
	for _, line := range lines {
		available, err := r.catalog.AvailableStock(line.ProductID)
		if err != nil {
			return models.Order{}, err
		}
		if line.Quantity > available {
			return models.Order{}, fmt.Errorf("%q: available %d, requested %d: %w",
				line.Name, available, line.Quantity, models.ErrStockExceeded)
		}
	}

	items := make([]models.OrderLine, len(lines))
	for i, line := range lines {
		items[i] = models.OrderLine{
			ProductID: line.ProductID,
			Name:      line.Name,
			Price:     line.Price,
			Quantity:  line.Quantity,
		}
	}
	placed := models.Order{
		ID:    uuid.NewString(),
		Date:  time.Now().UTC(),
		Items: items,
		Total: cart.ComputeTotal(lines),
	}

	clearCart := store.Write{Key: store.CartKey(userID), Value: cart.MarshalLines(nil)}
	err = r.catalog.DecrementStock(items, func(stock []store.Write) error {
		return r.users.AppendOrder(ctx, userID, placed, append([]store.Write{clearCart}, stock...))
	})
	if err != nil {
		return models.Order{}, err
	}
	return placed, nil
}

// Orders returns the user's order history, newest first.
func (r *Recorder) Orders(ctx context.Context, userID string) ([]models.Order, error) {
	user, err := r.users.ByID(ctx, userID)
	if err != nil {
		return nil, err
	}

	orders := append([]models.Order(nil), user.Orders...)
	sort.Slice(orders, func(i, j int) bool {
		return orders[i].Date.After(orders[j].Date)
	})
	return orders, nil
}

// OrderByID fetches one order from the user's history.
func (r *Recorder) OrderByID(ctx context.Context, userID, orderID string) (models.Order, error) {
	user, err := r.users.ByID(ctx, userID)
	if err != nil {
		return models.Order{}, err
	}
	for _, o := range user.Orders {
		if o.ID == orderID {
			return o, nil
		}
	}
	return models.Order{}, models.ErrOrderNotFound
}
