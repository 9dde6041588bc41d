package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"storefront/models"
)

// GetCart retrieves the user's current cart
func (a *API) GetCart(c *gin.Context) {
	userID, _, ok := currentUser(c)
	if !ok {
		return
	}

	summary, err := a.Ledger.Summary(c.Request.Context(), userID)
	if err != nil {
		a.respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"cart": gin.H{
			"items":        summary.Items,
			"item_count":   summary.ItemCount,
			"total_items":  summary.TotalItems,
			"total_amount": summary.TotalAmount.StringFixed(2),
		},
	})
}

// AddToCart puts one unit of a product in the cart
func (a *API) AddToCart(c *gin.Context) {
	var input models.CartLineInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	userID, _, ok := currentUser(c)
	if !ok {
		return
	}

	line, err := a.Ledger.AddLine(c.Request.Context(), userID, input.ProductID)
	if err != nil {
		a.respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"title":   "Added to Cart!",
		"message": "\"" + line.Name + "\" has been added to your cart.",
		"item":    line,
	})
}

// UpdateCartItem changes a cart line's quantity by a signed delta. A result
// of zero or less removes the line.
func (a *API) UpdateCartItem(c *gin.Context) {
	productID, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid product ID"})
		return
	}

	var input models.QuantityInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	userID, _, ok := currentUser(c)
	if !ok {
		return
	}

	if err := a.Ledger.AdjustQuantity(c.Request.Context(), userID, productID, input.Delta); err != nil {
		a.respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"title":   "Cart Updated",
		"message": "cart item updated successfully",
	})
}

// RemoveFromCart removes an item from the cart
func (a *API) RemoveFromCart(c *gin.Context) {
	productID, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid product ID"})
		return
	}

	userID, _, ok := currentUser(c)
	if !ok {
		return
	}

	if err := a.Ledger.RemoveLine(c.Request.Context(), userID, productID); err != nil {
		a.respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"title":   "Item Removed",
		"message": "the item has been removed from your cart",
	})
}

// ClearCart removes all items from the user's cart
func (a *API) ClearCart(c *gin.Context) {
	userID, _, ok := currentUser(c)
	if !ok {
		return
	}

	if err := a.Ledger.Clear(c.Request.Context(), userID); err != nil {
		a.respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"title":   "Cart Cleared",
		"message": "cart cleared successfully",
	})
}
