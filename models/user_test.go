package models

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestUserNameAvailable(t *testing.T) {
	assert.Nil(t, userNameAvailable(false, nil))

	assert.Equal(t, ErrUserNameNotAvailable, userNameAvailable(true, nil))
}

func TestUserNameAvailableStoreError(t *testing.T) {
	// the exists-check reports "true" alongside errors; the store failure
	// must win over the conflict so an outage is not sold as a taken name
	storeErr := errors.New("connection reset")

	err := userNameAvailable(true, storeErr)
	assert.NotNil(t, err)
	assert.NotEqual(t, ErrUserNameNotAvailable, err)
	assert.Contains(t, err.Error(), "connection reset")
}
