package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"wellfit-garage/apperror"
	"wellfit-garage/authentication"
	"wellfit-garage/environment"
)

// ToggleFavorite flips the favorite status of a facility for the requesting
// user and returns the new state.
// anonymous requests operate on the default/global favorites only
func ToggleFavorite(c *gin.Context) {

	var apiError ErrorResponse

	// error maybe ignored here, an empty userID addresses the default user
	userID, _ := authentication.Authenticate(c.Request)

	// anonymous struct used to receive input (POST BODY)
	data := struct {
		FacilityID string `json:"facilityId" binding:"required"`
	}{}

	// use 'shouldBind' so we can send customized messages
	if err := c.ShouldBindJSON(&data); err != nil {
		apiError.Code = InvalidJSON
		apiError.Message = apiError.String(apiError.Code)
		c.JSON(http.StatusUnprocessableEntity, apiError)
		return
	}

	state, err := environment.Env.FavoriteModel.Toggle(userID, data.FacilityID)
	if err != nil {
		status, apiError := HandleError(err)
		c.JSON(status, apiError)
		return
	}

	c.JSON(http.StatusOK, Toggled{state})
}

// GetUserFavorites returns the catalog records the user has favorited
func GetUserFavorites(c *gin.Context) {

	// error maybe ignored here, an empty userID addresses the default user
	userID, _ := authentication.Authenticate(c.Request)

	facilities, err := environment.Env.FacilityModel.GetUserFavorites(userID)
	if err != nil {
		// nothing favorited yet (not an error to the client)
		if err == apperror.ErrNoData {
			c.Status(http.StatusNoContent)
			return
		}
		// technical errors
		status, apiError := HandleError(err)
		c.JSON(status, apiError)
		return
	}

	c.JSON(http.StatusOK, facilities)
}
