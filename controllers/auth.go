package controllers

import (
	"fmt"
	"net/http"
	"os"
	"strings"

	"github.com/gin-gonic/gin"

	"wellfit-garage/authentication"
	"wellfit-garage/environment"
	"wellfit-garage/helpers"
	"wellfit-garage/models"
)

// UserExists maybe used to validate new accounts while typing into the form
func UserExists(c *gin.Context) {

	var apiError ErrorResponse

	// anonymous struct used to receive input (POST BODY)
	data := struct {
		LoginName string `json:"loginName" binding:"required"`
	}{}

	// use 'shouldBind' so we can send customized messages
	if err := c.ShouldBindJSON(&data); err != nil {
		apiError.Code = InvalidJSON
		apiError.Message = apiError.String(apiError.Code)
		c.JSON(http.StatusUnprocessableEntity, apiError)
		return
	}

	exists := environment.Env.UserModel.UserExists(data.LoginName)

	// wrap response into an object
	res := struct {
		Exists bool `json:"exists"`
	}{exists}

	c.JSON(http.StatusOK, res)
}

// Register a new User
func Register(c *gin.Context) {

	var (
		err      error
		data     models.User
		apiError ErrorResponse
	)

	if err = c.ShouldBindJSON(&data); err != nil {
		apiError.Code = InvalidJSON
		apiError.Message = apiError.String(apiError.Code)
		c.JSON(http.StatusUnprocessableEntity, apiError)
		return
	}

	// only the fields needed for this request are checked here,
	// the model validates the rest
	data.LoginName = strings.TrimSpace(data.LoginName)
	data.Password = strings.TrimSpace(data.Password)
	data.Name = strings.TrimSpace(data.Name)

	// basically look for missing fields
	if len(data.LoginName) < 3 || len(data.Password) < 8 {
		apiError.Code = InvalidRequest
		apiError.Message = apiError.String(apiError.Code)
		c.JSON(http.StatusUnprocessableEntity, apiError)
		return
	}

	// this also validates the user name
	ID, err := environment.Env.UserModel.CreateUser(data)
	if err != nil {
		fmt.Println(err)
		status, apiError := HandleError(err)
		c.JSON(status, apiError)
		return
	}

	c.JSON(http.StatusOK, Created{ID})
}

// Login a user
func Login(c *gin.Context) {

	var (
		err       error
		givenUser models.User
		dbUser    *models.User
		apiError  ErrorResponse
	)

	// use std struct
	if err = c.ShouldBindJSON(&givenUser); err != nil {
		apiError.Code = InvalidJSON
		apiError.Message = apiError.String(apiError.Code)
		c.JSON(http.StatusUnprocessableEntity, apiError)
		return
	}

	// check for required fields
	givenUser.LoginName = strings.TrimSpace(givenUser.LoginName)
	givenUser.Password = strings.TrimSpace(givenUser.Password)
	if len(givenUser.LoginName) == 0 || len(givenUser.Password) == 0 {
		apiError.Code = InvalidRequest
		apiError.Message = apiError.String(apiError.Code)
		c.JSON(http.StatusUnauthorized, apiError)
		return
	}

	// look-up the account and load the profile
	dbUser, err = environment.Env.UserModel.GetUserByName(givenUser.LoginName)
	if err != nil {
		// user does not exist
		if err == models.ErrInvalidUser {
			// send custom error message
			apiError.Code = InvalidLogin
			apiError.Message = apiError.String(apiError.Code)
			c.JSON(http.StatusUnauthorized, apiError)
			return
		}
		// "real" error
		status, apiError := HandleError(err)
		c.JSON(status, apiError)
		return
	}

	// passes the clear-text password from the login and the hash from the DB
	granted := environment.Env.UserModel.CheckPassword(givenUser.Password, *dbUser)
	if !granted {
		// send custom error message
		apiError.Code = InvalidLogin
		apiError.Message = apiError.String(apiError.Code)
		c.JSON(http.StatusUnauthorized, apiError)
		return
	}

	// create, register & save pair of AT/RT
	err = authentication.CreateTokens(c, dbUser.ID.Hex())
	if err != nil {
		status, apiError := HandleError(err)
		c.JSON(status, apiError)
		return
	}

	environment.Env.UserModel.SetLastSeen(dbUser.ID)

	// do not send the password hash back
	dbUser.Password = ""

	c.JSON(http.StatusOK, &dbUser)
}

// Logout deletes the access token in the registry
// (no DB-access required; the API should always report ok so the
// client can clear its local state)
func Logout(c *gin.Context) {

	// in case of error the token might be expired already
	au, _ := authentication.ExtractTokenMetadata(authentication.AT, c.Request)
	if au != nil {
		_, _ = authentication.DeleteAuth(au.TokenUUID)
	}

	// "hard log-out" => also remove RT & cookie => logged out on all devices
	au, _ = authentication.ExtractTokenMetadata(authentication.RT, c.Request)
	if au != nil {
		_, _ = authentication.DeleteAuth(au.TokenUUID)
	}

	_ = helpers.DelCookie(c, os.Getenv("JWTCK_NAME"))

	c.Status(http.StatusOK)
}

// Refresh issues a new AT as long as a registered RT exists
func Refresh(c *gin.Context) {

	var apiError ErrorResponse

	au, err := authentication.ExtractTokenMetadata(authentication.RT, c.Request)
	if err != nil {
		_, apiError = HandleError(err)
		c.JSON(http.StatusUnauthorized, apiError)
		return
	}

	// is the RT still valid? (the middleware does that for the AT)
	err = authentication.TokenValid(authentication.RT, c.Request)
	if err != nil {
		_, apiError = HandleError(err)
		c.JSON(http.StatusUnauthorized, apiError)
		return
	}

	// userID to issue a new token pair
	userID, err := authentication.FetchAuth(au)
	if err != nil {
		status, apiError := HandleError(err)
		c.JSON(status, apiError)
		return
	}

	dbUser, err := environment.Env.UserModel.GetUserByID(userID)
	if err != nil {
		// user does not exist
		if err == models.ErrInvalidUser {
			status, apiError := HandleError(err)
			c.JSON(status, apiError)
			return
		}
		// "real" error
		c.Status(http.StatusInternalServerError) // make client say "please try again later"
		return
	}

	// if too many RTs (clients) are in circulation for the user, delete them all,
	// otherwise just the current one. ATs are left untouched, so those clients
	// keep working until the next refresh
	deleted, err := authentication.DeleteAuths(authentication.RT, userID, au.TokenUUID)
	if err != nil || deleted == 0 { // if anything goes wrong
		apiError.Code = InvalidRequest
		apiError.Message = apiError.String(apiError.Code)
		c.JSON(http.StatusUnprocessableEntity, apiError)
		return
	}

	// create, register & save pair of AT/RT
	err = authentication.CreateTokens(c, userID)
	if err != nil {
		_, apiError = HandleError(err)
		c.JSON(http.StatusUnauthorized, apiError)
		return
	}

	environment.Env.UserModel.SetLastSeen(dbUser.ID)

	// do not send the password hash back
	dbUser.Password = ""

	c.JSON(http.StatusOK, &dbUser)
}
