package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

// the default/global user (empty userID) operates on the process-local set
// only, so these paths run without a store connection

func TestToggleDefaultUser(t *testing.T) {
	m := new(FavoriteModel)
	m.Initialize()

	state, err := m.Toggle("", "fac.1")
	assert.Nil(t, err)
	assert.True(t, state)

	// the path-safe form answers as well
	assert.True(t, m.IsFavorite("", "fac.1"))
	assert.True(t, m.IsFavorite("", "fac,1"))

	// toggling again removes the entry
	state, err = m.Toggle("", "fac.1")
	assert.Nil(t, err)
	assert.False(t, state)
	assert.False(t, m.IsFavorite("", "fac.1"))
}

func TestFavoriteIDsDefaultUser(t *testing.T) {
	m := new(FavoriteModel)
	m.Initialize()

	ids, err := m.FavoriteIDs("")
	assert.Nil(t, err)
	assert.Equal(t, 0, len(ids))

	_, _ = m.Toggle("", "fac.1")
	_, _ = m.Toggle("", "fac.2")

	ids, err = m.FavoriteIDs("")
	assert.Nil(t, err)
	assert.ElementsMatch(t, []string{"fac,1", "fac,2"}, ids)
}

func TestIsFavoriteUnknownFacility(t *testing.T) {
	m := new(FavoriteModel)
	m.Initialize()

	assert.False(t, m.IsFavorite("", "never-seen"))
}
