package api

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// The actual pages are rendered by the frontend, these endpoints only tell
// it what to show

func (a *API) Home(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"page": "home",
	})
}

func (a *API) LoginPage(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"page":   "login",
		"fields": []string{"email", "password"},
	})
}

func (a *API) RegisterPage(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"page":   "register",
		"fields": []string{"username", "email", "password"},
	})
}
