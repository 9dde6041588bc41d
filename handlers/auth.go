package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"storefront/models"
	"storefront/utils"
)

// RegisterUser creates a new user account and logs it in immediately.
func (a *API) RegisterUser(c *gin.Context) {
	var input models.UserRegister
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	user, err := a.Users.Register(c.Request.Context(), input)
	if err != nil {
		a.respondError(c, err)
		return
	}

	token, err := utils.GenerateJWT(a.JWTSecret, user.ID, user.Username, a.TokenTTL)
	if err != nil {
		a.respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"title":   "Success!",
		"message": "Registration successful! You are now logged in.",
		"token":   token,
		"user": gin.H{
			"id":       user.ID,
			"username": user.Username,
		},
	})
}

// LoginUser authenticates a user and returns a token.
func (a *API) LoginUser(c *gin.Context) {
	var input models.UserLogin
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	user, err := a.Users.Authenticate(c.Request.Context(), input)
	if err != nil {
		a.respondError(c, err)
		return
	}

	token, err := utils.GenerateJWT(a.JWTSecret, user.ID, user.Username, a.TokenTTL)
	if err != nil {
		a.respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"title":   "Success!",
		"message": "Welcome back, " + user.Username + "!",
		"token":   token,
		"user": gin.H{
			"id":       user.ID,
			"username": user.Username,
		},
	})
}

// GetProfile returns the authenticated user with their order history,
// newest first.
func (a *API) GetProfile(c *gin.Context) {
	userID, _, ok := currentUser(c)
	if !ok {
		return
	}

	user, err := a.Users.ByID(c.Request.Context(), userID)
	if err != nil {
		a.respondError(c, err)
		return
	}

	orders, err := a.Recorder.Orders(c.Request.Context(), userID)
	if err != nil {
		a.respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"user": gin.H{
			"id":         user.ID,
			"username":   user.Username,
			"created_at": user.CreatedAt,
		},
		"orders": orders,
	})
}
