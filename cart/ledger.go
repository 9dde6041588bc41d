// Package cart implements the cart ledger: the authoritative record of a
// user's cart lines, reconciled against catalog stock on every mutation and
// persisted synchronously before any mutating call returns.
package cart

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/shopspring/decimal"

	"storefront/catalog"
	"storefront/models"
	"storefront/store"
)

// Ledger owns all cart state. Carts are keyed per user; a user with no
// persisted cart has an empty one.
type Ledger struct {
	store   store.Store
	catalog *catalog.Catalog
}

// NewLedger builds a ledger over the given store and catalog.
func NewLedger(st store.Store, cat *catalog.Catalog) *Ledger {
	return &Ledger{store: st, catalog: cat}
}

// Lines returns the user's current cart lines.
func (l *Ledger) Lines(ctx context.Context, userID string) ([]models.CartLine, error) {
	return l.load(ctx, userID)
}

// AddLine puts one unit of the product in the cart: it increments an
// existing line or inserts a new line with quantity 1. Adding past the
// available stock fails with ErrStockExceeded and leaves the ledger
// unchanged.
func (l *Ledger) AddLine(ctx context.Context, userID string, productID int) (models.CartLine, error) {
	product, err := l.catalog.ProductByID(productID)
	if err != nil {
		return models.CartLine{}, err
	}

	lines, err := l.load(ctx, userID)
	if err != nil {
		return models.CartLine{}, err
	}

	idx := indexOf(lines, productID)
	current := 0
	if idx >= 0 {
		current = lines[idx].Quantity
	}
	if current >= product.Stock {
		return models.CartLine{}, fmt.Errorf("%q: %w", product.Name, models.ErrStockExceeded)
	}

	if idx >= 0 {
		lines[idx].Quantity++
	} else {
		lines = append(lines, models.CartLine{
			ProductID: product.ID,
			Name:      product.Name,
			Price:     product.Price,
			Quantity:  1,
		})
		idx = len(lines) - 1
	}

	if err := l.save(ctx, userID, lines); err != nil {
		return models.CartLine{}, err
	}
	return lines[idx], nil
}

// AdjustQuantity changes an existing line's quantity by delta. Increasing
// past the available stock fails with ErrStockExceeded and leaves the ledger
// unchanged. A result of 0 or less removes the line entirely. Adjusting a
// product that is not in the cart is a no-op.
func (l *Ledger) AdjustQuantity(ctx context.Context, userID string, productID, delta int) error {
	product, err := l.catalog.ProductByID(productID)
	if err != nil {
		return err
	}

	lines, err := l.load(ctx, userID)
	if err != nil {
		return err
	}

	idx := indexOf(lines, productID)
	if idx < 0 {
		return nil
	}

	if delta > 0 && lines[idx].Quantity+delta > product.Stock {
		return fmt.Errorf("%q: %w", product.Name, models.ErrStockExceeded)
	}

	lines[idx].Quantity += delta
	if lines[idx].Quantity <= 0 {
		lines = append(lines[:idx], lines[idx+1:]...)
	}
	return l.save(ctx, userID, lines)
}

// RemoveLine deletes the product's line from the cart. Removing a line that
// does not exist is a no-op.
func (l *Ledger) RemoveLine(ctx context.Context, userID string, productID int) error {
	lines, err := l.load(ctx, userID)
	if err != nil {
		return err
	}

	idx := indexOf(lines, productID)
	if idx < 0 {
		return nil
	}
	lines = append(lines[:idx], lines[idx+1:]...)
	return l.save(ctx, userID, lines)
}

// Clear empties the cart and persists the empty ledger.
func (l *Ledger) Clear(ctx context.Context, userID string) error {
	return l.save(ctx, userID, nil)
}

// Summary returns the cart contents with line counts and the exact decimal
// total. Rounding to two places happens only at the presentation boundary.
func (l *Ledger) Summary(ctx context.Context, userID string) (models.CartSummary, error) {
	lines, err := l.load(ctx, userID)
	if err != nil {
		return models.CartSummary{}, err
	}

	summary := models.CartSummary{
		Items:       lines,
		ItemCount:   len(lines),
		TotalAmount: ComputeTotal(lines),
	}
	for _, line := range lines {
		summary.TotalItems += line.Quantity
	}
	if summary.Items == nil {
		summary.Items = []models.CartLine{}
	}
	return summary, nil
}

// ComputeTotal sums price times quantity over all lines.
func ComputeTotal(lines []models.CartLine) decimal.Decimal {
	total := decimal.Zero
	for _, line := range lines {
		total = total.Add(line.Subtotal())
	}
	return total
}

// MarshalLines serializes cart lines the way the ledger persists them.
// The order recorder uses it to clear the cart in the same transaction that
// records the order.
func MarshalLines(lines []models.CartLine) []byte {
	if lines == nil {
		lines = []models.CartLine{}
	}
	raw, _ := json.Marshal(lines)
	return raw
}

func (l *Ledger) load(ctx context.Context, userID string) ([]models.CartLine, error) {
	raw, err := l.store.Get(ctx, store.CartKey(userID))
	if errors.Is(err, store.ErrKeyNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	var lines []models.CartLine
	if err := json.Unmarshal(raw, &lines); err != nil {
		return nil, fmt.Errorf("parse cart: %w", err)
	}
	return lines, nil
}

func (l *Ledger) save(ctx context.Context, userID string, lines []models.CartLine) error {
	return l.store.Set(ctx, store.CartKey(userID), MarshalLines(lines))
}

func indexOf(lines []models.CartLine, productID int) int {
	for i, line := range lines {
		if line.ProductID == productID {
			return i
		}
	}
	return -1
}
