package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"wellfit-garage/apperror"
	"wellfit-garage/authentication"
	"wellfit-garage/environment"
	"wellfit-garage/models"
)

// AddReview creates a new review for a facility
func AddReview(c *gin.Context) {

	var (
		err      error
		data     models.Review
		apiError ErrorResponse
	)

	userID, err := authentication.Authenticate(c.Request)
	if err != nil {
		c.Status(http.StatusUnauthorized)
		return
	}

	// use "shouldBind" not all fields are required in this context
	if err = c.ShouldBindJSON(&data); err != nil {
		apiError.Code = InvalidJSON
		apiError.Message = apiError.String(apiError.Code)
		c.JSON(http.StatusUnprocessableEntity, apiError)
		return
	}

	// the facility comes from the route, the author from the token
	data.FacilityID = c.Param("id")
	data.CreatedID = models.ObjectID(userID)

	// validate request
	review, err := environment.Env.ReviewModel.Validate(data)
	if err != nil {
		status, apiError := HandleError(err)
		c.JSON(status, apiError)
		return
	}

	id, err := environment.Env.ReviewModel.Create(review)
	if err != nil {
		status, apiError := HandleError(err)
		c.JSON(status, apiError)
		return
	}

	c.JSON(http.StatusCreated, Created{id})
}

// ListReviews returns all reviews of a facility, newest first
func ListReviews(c *gin.Context) {

	reviews, err := environment.Env.ReviewModel.ListReviews(c.Param("id"))
	if err != nil {
		// nothing found (not an error to the client)
		if err == apperror.ErrNoData {
			c.Status(http.StatusNoContent)
			return
		}
		// technical errors
		status, apiError := HandleError(err)
		c.JSON(status, apiError)
		return
	}

	c.JSON(http.StatusOK, reviews)
}
