package controllers

import (
	"errors"
	"fmt"
	"net/http"

	"wellfit-garage/apperror"
	"wellfit-garage/models"
)

// generic custom error types
var (
	ErrInvalidRequest = errors.New("invalid json")
)

// ErrorResponse is the standardized error structure which may be returned by any API
type ErrorResponse struct {
	Code    int32  `json:"code"`
	Message string `json:"msg"`
}

// HandleError encodes the std ErrorResponse
func HandleError(err error) (httpStatus int, apiError ErrorResponse) {

	if err == nil {
		apiError.Code = 0
		apiError.Message = ""

		return 0, apiError
	}

	fmt.Println(err)
	switch err {
	// system
	case apperror.ErrMultipleRecords:
		apiError.Code = MultipleRecords
		apiError.Message = apiError.String(apiError.Code)
		httpStatus = http.StatusInternalServerError
	case apperror.ErrRecordChanged:
		apiError.Code = RecordChanged
		apiError.Message = apiError.String(apiError.Code)
		httpStatus = http.StatusInternalServerError
	// permissions
	case apperror.ErrGuest:
		apiError.Code = PermissionGuest
		apiError.Message = apiError.String(apiError.Code)
		httpStatus = http.StatusUnprocessableEntity
	case apperror.ErrDenied:
		apiError.Code = ActionDenied
		apiError.Message = apiError.String(apiError.Code)
		httpStatus = http.StatusUnprocessableEntity
	// user
	case models.ErrUserNameNotAvailable:
		apiError.Code = UserNameTaken
		apiError.Message = apiError.String(apiError.Code)
		httpStatus = http.StatusUnprocessableEntity
	case models.ErrInvalidUser:
		apiError.Code = InvalidRequest
		apiError.Message = apiError.String(apiError.Code)
		httpStatus = http.StatusUnprocessableEntity
	case models.ErrInvalidPassword:
		apiError.Code = InvalidPassword
		apiError.Message = apiError.String(apiError.Code)
		httpStatus = http.StatusUnprocessableEntity
	// review
	case models.ErrReviewEmpty:
		apiError.Code = ReviewEmpty
		apiError.Message = apiError.String(apiError.Code)
		httpStatus = http.StatusUnprocessableEntity
	case models.ErrRatingOutOfRange:
		apiError.Code = RatingOutOfRange
		apiError.Message = apiError.String(apiError.Code)
		httpStatus = http.StatusUnprocessableEntity
	// facility
	case models.ErrCatalogNotLoaded:
		apiError.Code = CatalogNotLoaded
		apiError.Message = apiError.String(apiError.Code)
		httpStatus = http.StatusInternalServerError
	default:
		apiError.Code = SystemError
		apiError.Message = apiError.String(apiError.Code)
		httpStatus = http.StatusInternalServerError
	}
	return httpStatus, apiError
}

// Application Error Codes (API Errors)
const (
	// client/api
	InvalidJSON int32 = (10000 + iota)
	InvalidRequest
	InvalidLogin
	// generic system
	MultipleRecords
	RecordChanged
	ActionDenied
	// permission
	PermissionGuest
	// user
	UserNameTaken
	InvalidPassword
	// review
	ReviewEmpty
	RatingOutOfRange
	// facility
	CatalogNotLoaded
	SystemError = 99999
)

func (er ErrorResponse) String(code int32) string {
	msg := ""
	switch code {
	// common (system)
	case InvalidJSON:
		msg = "Invalid JSON"
	case InvalidRequest:
		msg = "Invalid Request" // JSON was correct, data was not
	case InvalidLogin:
		msg = "invalid user name or password"
	case MultipleRecords:
		msg = "multiple records found"
	case RecordChanged:
		msg = "record changed by another user"
	case ActionDenied:
		msg = "update/delete action not allowed"
	// permission (item access)
	case PermissionGuest:
		msg = "user is guest"
	// user
	case UserNameTaken:
		msg = "user name is taken"
	case InvalidPassword:
		msg = "invalid password"
	// review
	case ReviewEmpty:
		msg = "review content is required"
	case RatingOutOfRange:
		msg = "rating must be between 1 and 5"
	// facility
	case CatalogNotLoaded:
		msg = "facility catalog not loaded"
	case SystemError:
		msg = "Server Problem"
	}

	return msg
}
