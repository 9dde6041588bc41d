package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Product represents one catalog entry. The catalog owns products; from the
// cart's perspective they are read-only.
type Product struct {
	ID          int             `json:"id"`
	Name        string          `json:"name"`
	Description string          `json:"description"`
	Price       decimal.Decimal `json:"price"`
	Stock       int             `json:"stock"`
	Category    string          `json:"category"`
	Image       string          `json:"image,omitempty"`
	Reviews     []Review        `json:"reviews,omitempty"`
}

// Review is one customer review of a product.
type Review struct {
	ID        string    `json:"id"`
	ProductID int       `json:"product_id"`
	UserID    string    `json:"user_id"`
	Username  string    `json:"username"`
	Rating    int       `json:"rating"`
	Comment   string    `json:"comment"`
	Date      time.Time `json:"date"`
}

// RatingSummary aggregates the reviews of one product.
type RatingSummary struct {
	Average float64 `json:"average"`
	Count   int     `json:"count"`
}

// ReviewInput holds data for submitting a review.
type ReviewInput struct {
	Rating  int    `json:"rating" binding:"required"`
	Comment string `json:"comment"`
}
