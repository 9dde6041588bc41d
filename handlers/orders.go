package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// GetOrders returns the user's order history, newest first.
func (a *API) GetOrders(c *gin.Context) {
	userID, _, ok := currentUser(c)
	if !ok {
		return
	}

	orders, err := a.Recorder.Orders(c.Request.Context(), userID)
	if err != nil {
		a.respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"orders": orders,
		"count":  len(orders),
	})
}

// GetOrderDetails returns one order from the user's history.
func (a *API) GetOrderDetails(c *gin.Context) {
	userID, _, ok := currentUser(c)
	if !ok {
		return
	}

	placed, err := a.Recorder.OrderByID(c.Request.Context(), userID, c.Param("id"))
	if err != nil {
		a.respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"order": gin.H{
			"id":    placed.ID,
			"date":  placed.Date,
			"items": placed.Items,
			"total": placed.Total.StringFixed(2),
		},
	})
}
