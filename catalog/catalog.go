// Package catalog holds the read-only product catalog. Products are loaded
// once at startup from a JSON document (file or URL) and never change, with
// one exception: under the decrement-on-order stock model a persisted
// remaining-stock overlay is applied on top of the seed stock numbers.
package catalog

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"strconv"
	"strings"
	"sync"

	"storefront/models"
	"storefront/store"
)

// Catalog answers product lookups for the whole application. All methods are
// safe for concurrent use.
type Catalog struct {
	mu       sync.RWMutex
	products []models.Product
	index    map[int]int
	overlay  map[int]int
	store    store.Store
	tracked  bool
}

// New builds a catalog from already loaded products. When trackStock is set,
// the persisted remaining-stock overlay is read from the store and applied.
func New(ctx context.Context, products []models.Product, st store.Store, trackStock bool) (*Catalog, error) {
	c := &Catalog{
		products: products,
		index:    make(map[int]int, len(products)),
		overlay:  make(map[int]int),
		store:    st,
		tracked:  trackStock,
	}
	for i, p := range products {
		c.index[p.ID] = i
	}
	if trackStock {
		if err := c.loadOverlay(ctx); err != nil {
			return nil, err
		}
	}
	return c, nil
}

// Load reads the catalog from source, which is either an http(s) URL or a
// local file path, and blocks until the document is resolved. The context
// bounds the fetch.
func Load(ctx context.Context, source string, st store.Store, trackStock bool) (*Catalog, error) {
	raw, err := fetch(ctx, source)
	if err != nil {
		return nil, fmt.Errorf("load catalog from %s: %w", source, err)
	}
	var products []models.Product
	if err := json.Unmarshal(raw, &products); err != nil {
		return nil, fmt.Errorf("parse catalog: %w", err)
	}
	return New(ctx, products, st, trackStock)
}

func fetch(ctx context.Context, source string) ([]byte, error) {
	if !strings.HasPrefix(source, "http://") && !strings.HasPrefix(source, "https://") {
		return os.ReadFile(source)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, source, nil)
	if err != nil {
		return nil, err
	}
	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("catalog source returned %s", resp.Status)
	}
	return io.ReadAll(resp.Body)
}

// All returns every product with overlay-adjusted stock.
func (c *Catalog) All() []models.Product {
	c.mu.RLock()
	defer c.mu.RUnlock()

	out := make([]models.Product, len(c.products))
	for i, p := range c.products {
		out[i] = c.adjusted(p)
	}
	return out
}

// ProductByID returns the product with overlay-adjusted stock, or
// ErrProductNotFound.
func (c *Catalog) ProductByID(id int) (models.Product, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	i, ok := c.index[id]
	if !ok {
		return models.Product{}, models.ErrProductNotFound
	}
	return c.adjusted(c.products[i]), nil
}

// AvailableStock is the authoritative stock number every quantity-changing
// cart operation clamps against.
func (c *Catalog) AvailableStock(id int) (int, error) {
	p, err := c.ProductByID(id)
	if err != nil {
		return 0, err
	}
	return p.Stock, nil
}

// Search filters by a case-insensitive substring of name or description and
// by category. An empty term matches everything; category "all" or "" does
// not filter.
func (c *Catalog) Search(term, category string) []models.Product {
	term = strings.ToLower(strings.TrimSpace(term))

	var out []models.Product
	for _, p := range c.All() {
		matchesSearch := term == "" ||
			strings.Contains(strings.ToLower(p.Name), term) ||
			strings.Contains(strings.ToLower(p.Description), term)
		matchesCategory := category == "" || category == "all" || p.Category == category
		if matchesSearch && matchesCategory {
			out = append(out, p)
		}
	}
	return out
}

// Categories returns the distinct categories in first-appearance order.
func (c *Catalog) Categories() []string {
	c.mu.RLock()
	defer c.mu.RUnlock()

	seen := make(map[string]bool)
	var out []string
	for _, p := range c.products {
		if !seen[p.Category] {
			seen[p.Category] = true
			out = append(out, p.Category)
		}
	}
	return out
}

// Related returns up to limit products sharing the category of the given
// product, excluding the product itself.
func (c *Catalog) Related(id, limit int) ([]models.Product, error) {
	p, err := c.ProductByID(id)
	if err != nil {
		return nil, err
	}

	var out []models.Product
	for _, other := range c.All() {
		if other.Category == p.Category && other.ID != p.ID {
			out = append(out, other)
			if len(out) == limit {
				break
			}
		}
	}
	return out, nil
}

// DecrementStock consumes stock for the given order lines. The updated
// remaining-stock overlay is handed to commit as a pending write, so callers
// can persist it in the same store transaction as whatever consumed the
// stock. The in-memory overlay changes only after commit returns nil; a
// failed commit leaves the catalog untouched. When stock tracking is
// disabled commit runs with no writes.
func (c *Catalog) DecrementStock(items []models.OrderLine, commit func(writes []store.Write) error) error {
	if !c.tracked {
		return commit(nil)
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	next := make(map[int]int, len(c.overlay)+len(items))
	for id, remaining := range c.overlay {
		next[id] = remaining
	}
	for _, item := range items {
		i, ok := c.index[item.ProductID]
		if !ok {
			continue
		}
		remaining, ok := next[item.ProductID]
		if !ok {
			remaining = c.products[i].Stock
		}
		remaining -= item.Quantity
		if remaining < 0 {
			remaining = 0
		}
		next[item.ProductID] = remaining
	}

	raw, err := marshalOverlay(next)
	if err != nil {
		return err
	}
	if err := commit([]store.Write{{Key: store.StockKey, Value: raw}}); err != nil {
		return err
	}
	c.overlay = next
	return nil
}

// adjusted applies the overlay to a product copy. Callers hold at least a
// read lock.
func (c *Catalog) adjusted(p models.Product) models.Product {
	if c.tracked {
		p.Stock = c.remaining(p)
	}
	return p
}

func (c *Catalog) remaining(p models.Product) int {
	if remaining, ok := c.overlay[p.ID]; ok {
		return remaining
	}
	return p.Stock
}

func (c *Catalog) loadOverlay(ctx context.Context) error {
	raw, err := c.store.Get(ctx, store.StockKey)
	if errors.Is(err, store.ErrKeyNotFound) {
		return nil
	}
	if err != nil {
		return err
	}

	stored := make(map[string]int)
	if err := json.Unmarshal(raw, &stored); err != nil {
		return fmt.Errorf("parse stock overlay: %w", err)
	}
	for key, remaining := range stored {
		id, err := strconv.Atoi(key)
		if err != nil {
			continue
		}
		c.overlay[id] = remaining
	}
	return nil
}

func marshalOverlay(overlay map[int]int) ([]byte, error) {
	stored := make(map[string]int, len(overlay))
	for id, remaining := range overlay {
		stored[strconv.Itoa(id)] = remaining
	}
	return json.Marshal(stored)
}
