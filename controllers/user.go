package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"wellfit-garage/authentication"
	"wellfit-garage/environment"
	"wellfit-garage/models"
)

// GetUser returns a user's profile
func GetUser(c *gin.Context) {

	_, err := authentication.Authenticate(c.Request)
	if err != nil {
		c.Status(http.StatusUnauthorized)
		return
	}

	dbUser, err := environment.Env.UserModel.GetUserByID(c.Param("id"))
	if err != nil {
		if err == models.ErrInvalidUser {
			c.Status(http.StatusNoContent)
			return
		}
		status, apiError := HandleError(err)
		c.JSON(status, apiError)
		return
	}

	// do not expose the password hash
	dbUser.Password = ""

	c.JSON(http.StatusOK, &dbUser)
}
