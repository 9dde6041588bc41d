package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"storefront/models"
)

// GetReviews lists a product's reviews with the rating summary.
func (a *API) GetReviews(c *gin.Context) {
	productID, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid product ID"})
		return
	}

	productReviews, rating, err := a.Reviews.List(c.Request.Context(), productID)
	if err != nil {
		a.respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"reviews": productReviews,
		"rating":  rating,
	})
}

// AddReview submits a review for a product.
func (a *API) AddReview(c *gin.Context) {
	productID, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid product ID"})
		return
	}

	var input models.ReviewInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	userID, username, ok := currentUser(c)
	if !ok {
		return
	}

	review, err := a.Reviews.Add(c.Request.Context(), userID, username, productID, input)
	if err != nil {
		a.respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"title":   "Success!",
		"message": "Your review has been submitted.",
		"review":  review,
	})
}
