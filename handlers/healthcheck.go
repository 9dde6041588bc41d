package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// CheckHealth reports that the service is up.
func (a *API) CheckHealth(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}
