package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// OrderLine is an immutable snapshot of a cart line taken at checkout.
// It keeps the price that was charged even if the catalog changes later.
type OrderLine struct {
	ProductID int             `json:"product_id"`
	Name      string          `json:"name"`
	Price     decimal.Decimal `json:"price"`
	Quantity  int             `json:"quantity"`
}

// Order is one completed purchase appended to a user's history.
// Orders are never mutated after creation.
type Order struct {
	ID    string          `json:"id"`
	Date  time.Time       `json:"date"`
	Items []OrderLine     `json:"items"`
	Total decimal.Decimal `json:"total"`
}
