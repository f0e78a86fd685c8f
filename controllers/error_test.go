package controllers

import (
	"errors"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"

	"wellfit-garage/models"
)

func TestHandleErrorNil(t *testing.T) {
	status, apiError := HandleError(nil)
	assert.Equal(t, 0, status)
	assert.Equal(t, int32(0), apiError.Code)
	assert.Equal(t, "", apiError.Message)
}

func TestHandleErrorUserNameTaken(t *testing.T) {
	status, apiError := HandleError(models.ErrUserNameNotAvailable)
	assert.Equal(t, http.StatusUnprocessableEntity, status)
	assert.Equal(t, UserNameTaken, apiError.Code)
	assert.NotEqual(t, "", apiError.Message)
}

func TestHandleErrorReview(t *testing.T) {
	status, apiError := HandleError(models.ErrReviewEmpty)
	assert.Equal(t, http.StatusUnprocessableEntity, status)
	assert.Equal(t, ReviewEmpty, apiError.Code)

	status, apiError = HandleError(models.ErrRatingOutOfRange)
	assert.Equal(t, http.StatusUnprocessableEntity, status)
	assert.Equal(t, RatingOutOfRange, apiError.Code)
}

func TestHandleErrorUnknown(t *testing.T) {
	status, apiError := HandleError(errors.New("boom"))
	assert.Equal(t, http.StatusInternalServerError, status)
	assert.Equal(t, int32(SystemError), apiError.Code)
}
