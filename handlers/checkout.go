package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// Checkout converts the cart into an order on the user's history. The cart
// is cleared in the same persisted operation that records the order.
func (a *API) Checkout(c *gin.Context) {
	userID, _, ok := currentUser(c)
	if !ok {
		return
	}

	placed, err := a.Recorder.PlaceOrder(c.Request.Context(), userID)
	if err != nil {
		a.respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"title":   "Order Placed!",
		"message": "Thank you for your purchase!",
		"order": gin.H{
			"id":    placed.ID,
			"date":  placed.Date,
			"items": placed.Items,
			"total": placed.Total.StringFixed(2),
		},
	})
}
