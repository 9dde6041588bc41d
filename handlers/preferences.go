package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"storefront/store"
)

// Theme values accepted by SetTheme.
const (
	themeLight = "light"
	themeDark  = "dark"
)

// GetTheme returns the user's saved theme preference, defaulting to light.
func (a *API) GetTheme(c *gin.Context) {
	userID, _, ok := currentUser(c)
	if !ok {
		return
	}

	theme := themeLight
	raw, err := a.Store.Get(c.Request.Context(), store.ThemeKey(userID))
	switch {
	case errors.Is(err, store.ErrKeyNotFound):
	case err != nil:
		a.respondError(c, err)
		return
	default:
		theme = string(raw)
	}

	c.JSON(http.StatusOK, gin.H{"theme": theme})
}

// SetTheme saves the user's theme preference.
func (a *API) SetTheme(c *gin.Context) {
	var input struct {
		Theme string `json:"theme" binding:"required"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if input.Theme != themeLight && input.Theme != themeDark {
		c.JSON(http.StatusBadRequest, gin.H{"title": "Error", "error": "theme must be light or dark"})
		return
	}

	userID, _, ok := currentUser(c)
	if !ok {
		return
	}

	if err := a.Store.Set(c.Request.Context(), store.ThemeKey(userID), []byte(input.Theme)); err != nil {
		a.respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"theme": input.Theme})
}
