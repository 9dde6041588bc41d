// Package reviews manages product reviews. Seed reviews ship inside the
// catalog document; reviews submitted through the API are persisted in the
// store, keyed per product.
package reviews

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"

	"storefront/catalog"
	"storefront/models"
	"storefront/store"
)

// Service reads and writes reviews for catalog products.
type Service struct {
	store   store.Store
	catalog *catalog.Catalog
}

// NewService builds a review service over the given store and catalog.
func NewService(st store.Store, cat *catalog.Catalog) *Service {
	return &Service{store: st, catalog: cat}
}

// Add validates and persists a review for the product. Rating must be 1-5
// and the comment must not be empty.
func (s *Service) Add(ctx context.Context, userID, username string, productID int, input models.ReviewInput) (models.Review, error) {
	if _, err := s.catalog.ProductByID(productID); err != nil {
		return models.Review{}, err
	}
	if input.Rating < 1 || input.Rating > 5 {
		return models.Review{}, fmt.Errorf("%w: rating must be between 1 and 5", models.ErrValidation)
	}
	comment := strings.TrimSpace(input.Comment)
	if comment == "" {
		return models.Review{}, fmt.Errorf("%w: review comment is required", models.ErrValidation)
	}

	stored, err := s.stored(ctx, productID)
	if err != nil {
		return models.Review{}, err
	}

	review := models.Review{
		ID:        uuid.NewString(),
		ProductID: productID,
		UserID:    userID,
		Username:  username,
		Rating:    input.Rating,
		Comment:   comment,
		Date:      time.Now().UTC(),
	}
	stored = append(stored, review)

	raw, err := json.Marshal(stored)
	if err != nil {
		return models.Review{}, err
	}
	if err := s.store.Set(ctx, store.ReviewsKey(productID), raw); err != nil {
		return models.Review{}, err
	}
	return review, nil
}

// List returns the product's reviews, seed and submitted merged, newest
// first, with the rating summary.
func (s *Service) List(ctx context.Context, productID int) ([]models.Review, models.RatingSummary, error) {
	product, err := s.catalog.ProductByID(productID)
	if err != nil {
		return nil, models.RatingSummary{}, err
	}

	stored, err := s.stored(ctx, productID)
	if err != nil {
		return nil, models.RatingSummary{}, err
	}

	merged := append(append([]models.Review{}, product.Reviews...), stored...)
	sort.Slice(merged, func(i, j int) bool {
		return merged[i].Date.After(merged[j].Date)
	})

	return merged, Summarize(merged), nil
}

// Summarize computes the average rating over the given reviews.
func Summarize(reviews []models.Review) models.RatingSummary {
	if len(reviews) == 0 {
		return models.RatingSummary{}
	}
	total := 0
	for _, r := range reviews {
		total += r.Rating
	}
	return models.RatingSummary{
		Average: float64(total) / float64(len(reviews)),
		Count:   len(reviews),
	}
}

func (s *Service) stored(ctx context.Context, productID int) ([]models.Review, error) {
	raw, err := s.store.Get(ctx, store.ReviewsKey(productID))
	if errors.Is(err, store.ErrKeyNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	var reviews []models.Review
	if err := json.Unmarshal(raw, &reviews); err != nil {
		return nil, fmt.Errorf("parse reviews: %w", err)
	}
	return reviews, nil
}
