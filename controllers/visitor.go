package controllers

import (
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"wellfit-garage/apperror"
	"wellfit-garage/authentication"
	"wellfit-garage/environment"
	"wellfit-garage/models"
)

// ListVisitors returns the last visitors of a facility
// format => http://localhost:3000/stats/visitors?id=facility-123&startDT=2021-03-20
func ListVisitors(c *gin.Context) {

	var (
		err      error
		apiError ErrorResponse
	)

	userID, err := authentication.Authenticate(c.Request)
	if err != nil {
		c.Status(http.StatusUnauthorized)
		return
	}

	id := c.Query("id")
	if id == "" {
		apiError.Code = InvalidJSON
		apiError.Message = apiError.String(apiError.Code)
		c.JSON(http.StatusUnprocessableEntity, apiError)
		return
	}

	var startDT time.Time

	startStr := c.Query("startDT")
	if startStr == "" {
		// default: 7 days back (starting at 00:00:00)
		startDT = time.Now().AddDate(0, 0, -7)
		startDT = time.Date(startDT.Year(), startDT.Month(), startDT.Day(), 0, 0, 0, 0, startDT.UTC().Location())
	} else {
		startDT, err = time.Parse("2006-01-02", startStr) // seems magic date
		if err != nil {
			fmt.Println(err)
			apiError.Code = InvalidRequest
			apiError.Message = apiError.String(apiError.Code)
			c.JSON(http.StatusUnprocessableEntity, apiError)
			return
		}
	}

	visitors, err := environment.Env.Tracker.ListVisitors(models.SafeFacilityID(id), startDT, userID)
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

	c.JSON(http.StatusOK, visitors)
}
