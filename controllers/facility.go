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

// ListFacilities returns a list of welfare facilities
// format => http://localhost:3000/facilities?category=Elderly&search=seoul
func ListFacilities(c *gin.Context) {

	var apiError ErrorResponse

	// Error maybe ignored here - the service is public
	userID, _ := authentication.Authenticate(c.Request)

	var search *models.FacilitySearch
	search = new(models.FacilitySearch)

	search.UserID = userID
	search.CategoryText = c.Query("category")
	search.SearchTerm = c.Query("search")

	facilities, err := environment.Env.FacilityModel.SearchFacilities(search)
	if err != nil {
		// nothing found (not an error to the client)
		if err == apperror.ErrNoData {
			c.Status(http.StatusNoContent)
			return
		}
		// technical errors
		apiError.Code = SystemError
		apiError.Message = apiError.String(apiError.Code)
		c.JSON(http.StatusInternalServerError, apiError)
		return
	}

	c.JSON(http.StatusOK, facilities)
}

// GetFacility returns the specified facility with the requester's favorite flag
func GetFacility(c *gin.Context) {

	var (
		err  error
		data *models.Facility
	)

	// no error checking because anonymous visitors receive the default view
	userID, _ := authentication.Authenticate(c.Request)

	var id = c.Param("id")

	data, err = environment.Env.FacilityModel.GetFacility(id, userID)
	if err != nil {
		switch err {
		case apperror.ErrNoData:
			c.Status(http.StatusNoContent)
		default:
			status, apiError := HandleError(err)
			c.JSON(status, apiError)
		}
		return
	}

	// count the view unless this was a page refresh by the same client
	if environment.Env.Requests.Continue(c.ClientIP(), data.ID) {
		go environment.Env.Tracker.SaveVisitor("facility", data.ID, userID)
	}

	c.JSON(http.StatusOK, data)
}

// ImportCatalog seeds the facility collection from the catalog source document
// (request body = the raw catalog JSON)
func ImportCatalog(c *gin.Context) {

	var apiError ErrorResponse

	_, err := authentication.Authenticate(c.Request)
	if err != nil {
		c.Status(http.StatusUnauthorized)
		return
	}

	doc, err := c.GetRawData()
	if err != nil || len(doc) == 0 {
		apiError.Code = InvalidJSON
		apiError.Message = apiError.String(apiError.Code)
		c.JSON(http.StatusUnprocessableEntity, apiError)
		return
	}

	imported, err := environment.Env.FacilityModel.ImportCatalog(doc)
	if err != nil {
		status, apiError := HandleError(err)
		c.JSON(status, apiError)
		return
	}

	// wrap response into an object
	res := struct {
		Imported int `json:"imported"`
	}{imported}

	c.JSON(http.StatusOK, res)
}

// GetFacilityVisits returns the view counter of a facility
// format => http://localhost:3000/facilities/:id/visits?startDT=2021-03-20
func GetFacilityVisits(c *gin.Context) {

	var (
		err      error
		apiError ErrorResponse
	)

	id := c.Param("id")

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

	visits, err := environment.Env.Tracker.GetVisits("facility", models.SafeFacilityID(id), startDT)
	if err != nil {
		fmt.Println(err)
		apiError.Code = InvalidRequest
		apiError.Message = apiError.String(apiError.Code)
		c.JSON(http.StatusUnprocessableEntity, apiError)
		return
	}

	// wrap response into an object
	res := struct {
		Visits int64 `json:"visits"`
	}{visits}

	c.JSON(http.StatusOK, res)
}
