// Package handlers is the HTTP surface. Handlers translate cart, order,
// catalog and account operations into JSON responses; every outcome carries
// a title and message pair the storefront UI shows in its notification
// modal, and any follow-up action is the caller's choice.
package handlers

import (
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"storefront/auth"
	"storefront/cart"
	"storefront/catalog"
	"storefront/models"
	"storefront/order"
	"storefront/reviews"
	"storefront/store"
)

// API holds the handlers' collaborators. The application root constructs one
// and registers its methods as routes; nothing here is package-level state.
type API struct {
	Catalog   *catalog.Catalog
	Ledger    *cart.Ledger
	Recorder  *order.Recorder
	Users     *auth.Registry
	Reviews   *reviews.Service
	Store     store.Store
	JWTSecret []byte
	TokenTTL  time.Duration
	Logger    *slog.Logger
}

func (a *API) logger() *slog.Logger {
	if a.Logger != nil {
		return a.Logger
	}
	return slog.Default()
}

// currentUser reads the identity set by the auth middleware.
func currentUser(c *gin.Context) (string, string, bool) {
	id, ok := c.Get("userID")
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "user ID not found"})
		return "", "", false
	}
	username, _ := c.Get("username")
	name, _ := username.(string)
	return id.(string), name, true
}

// respondError recovers a domain error at the boundary and maps it to a
// status plus the title/message pair the UI modal expects. Nothing here is
// fatal to the process.
func (a *API) respondError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, models.ErrProductNotFound),
		errors.Is(err, models.ErrOrderNotFound),
		errors.Is(err, models.ErrUserNotFound):
		c.JSON(http.StatusNotFound, gin.H{"title": "Error", "error": err.Error()})
	case errors.Is(err, models.ErrStockExceeded):
		c.JSON(http.StatusConflict, gin.H{"title": "Quantity Limit", "error": err.Error()})
	case errors.Is(err, models.ErrEmptyCart):
		c.JSON(http.StatusBadRequest, gin.H{"title": "Cart Empty", "error": "your cart is empty, add some items before placing an order"})
	case errors.Is(err, models.ErrValidation):
		c.JSON(http.StatusBadRequest, gin.H{"title": "Error", "error": err.Error()})
	case errors.Is(err, models.ErrInvalidCredentials):
		c.JSON(http.StatusUnauthorized, gin.H{"title": "Error", "error": err.Error()})
	default:
		a.logger().Error("request failed", "path", c.FullPath(), "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"title": "Error", "error": "storage error"})
	}
}
