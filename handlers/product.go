package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
)

// GetAllProducts lists the catalog, optionally filtered by a search term and
// a category.
func (a *API) GetAllProducts(c *gin.Context) {
	term := c.Query("search")
	category := c.Query("category")

	products := a.Catalog.Search(term, category)
	c.JSON(http.StatusOK, gin.H{
		"products": products,
		"count":    len(products),
	})
}

// GetCategories lists the distinct catalog categories.
func (a *API) GetCategories(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"categories": a.Catalog.Categories()})
}

// GetProduct returns one product with its rating summary, reviews and up to
// four related products from the same category.
func (a *API) GetProduct(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid product ID"})
		return
	}

	product, err := a.Catalog.ProductByID(id)
	if err != nil {
		a.respondError(c, err)
		return
	}

	productReviews, rating, err := a.Reviews.List(c.Request.Context(), id)
	if err != nil {
		a.respondError(c, err)
		return
	}

	related, err := a.Catalog.Related(id, 4)
	if err != nil {
		a.respondError(c, err)
		return
	}

	// Reviews are served separately below the product itself.
	product.Reviews = nil

	c.JSON(http.StatusOK, gin.H{
		"product": product,
		"rating":  rating,
		"reviews": productReviews,
		"related": related,
	})
}
