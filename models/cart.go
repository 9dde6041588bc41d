package models

import (
	"github.com/shopspring/decimal"
)

// CartLine is one product's quantity entry within a cart. Quantity is always
// at least 1; a line that would drop to 0 is removed from the ledger instead.
// Name and price are captured from the catalog when the line is created.
type CartLine struct {
	ProductID int             `json:"product_id"`
	Name      string          `json:"name"`
	Price     decimal.Decimal `json:"price"`
	Quantity  int             `json:"quantity"`
}

// Subtotal is price multiplied by quantity, as an exact decimal.
func (l CartLine) Subtotal() decimal.Decimal {
	return l.Price.Mul(decimal.NewFromInt(int64(l.Quantity)))
}

// CartSummary provides the cart contents with totals.
type CartSummary struct {
	Items       []CartLine      `json:"items"`
	ItemCount   int             `json:"item_count"`
	TotalItems  int             `json:"total_items"`
	TotalAmount decimal.Decimal `json:"total_amount"`
}

// CartLineInput holds data for adding a product to the cart.
type CartLineInput struct {
	ProductID int `json:"product_id" binding:"required"`
}

// QuantityInput holds a signed quantity change for an existing cart line.
type QuantityInput struct {
	Delta int `json:"delta" binding:"required"`
}
