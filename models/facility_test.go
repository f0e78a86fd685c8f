package models

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"wellfit-garage/apperror"
)

func testCatalog() []Facility {
	return []Facility{
		{ID: "fac,1", Name: "Seoul Welfare Center", Address: "Jung-gu, Seoul"},
		{ID: "fac,2", Name: "Busan Welfare Center", Address: "Haeundae-gu, Busan"},
		{ID: "fac,3", Name: "Daegu Senior Center", Address: "Jung-gu, Daegu"},
	}
}

func newTestFacilityModel(favorites map[string]bool) *FacilityModel {
	m := new(FacilityModel)
	m.IsFavorite = func(userID string, facilityID string) bool {
		return favorites[facilityID]
	}
	m.FavoriteIDs = func(userID string) ([]string, error) {
		var ids []string
		for id, set := range favorites {
			if set {
				ids = append(ids, id)
			}
		}
		return ids, nil
	}
	m.SetCatalog(testCatalog())
	return m
}

func TestGetFacility(t *testing.T) {
	m := newTestFacilityModel(map[string]bool{"fac,2": true})

	facility, err := m.GetFacility("fac.1", "")
	assert.Nil(t, err)
	assert.Equal(t, "Seoul Welfare Center", facility.Name)
	assert.False(t, facility.IsFavorite)

	// the favorite flag is computed per request
	facility, err = m.GetFacility("fac.2", "")
	assert.Nil(t, err)
	assert.True(t, facility.IsFavorite)
}

func TestGetFacilityNotFound(t *testing.T) {
	m := newTestFacilityModel(nil)

	_, err := m.GetFacility("no-such-id", "")
	assert.Equal(t, apperror.ErrNoData, err)
}

func TestGetFacilityCatalogNotLoaded(t *testing.T) {
	m := new(FacilityModel)
	m.IsFavorite = func(userID string, facilityID string) bool { return false }

	_, err := m.GetFacility("fac.1", "")
	assert.Equal(t, ErrCatalogNotLoaded, err)
}

func TestGetFacilityFlagIsNotPersisted(t *testing.T) {
	m := newTestFacilityModel(map[string]bool{"fac,1": true})

	facility, err := m.GetFacility("fac.1", "")
	assert.Nil(t, err)
	assert.True(t, facility.IsFavorite)

	// the returned record is a copy, the cached one keeps the zero flag
	m.mu.RLock()
	defer m.mu.RUnlock()
	assert.False(t, m.catalog[0].IsFavorite)
}

func TestGetUserFavorites(t *testing.T) {
	m := newTestFacilityModel(map[string]bool{"fac,1": true, "fac,3": true})

	favorites, err := m.GetUserFavorites("")
	assert.Nil(t, err)
	assert.Equal(t, 2, len(favorites))

	// order follows the catalog
	assert.Equal(t, "fac,1", favorites[0].ID)
	assert.Equal(t, "fac,3", favorites[1].ID)
	assert.True(t, favorites[0].IsFavorite)
	assert.True(t, favorites[1].IsFavorite)
}

func TestGetUserFavoritesEmpty(t *testing.T) {
	m := newTestFacilityModel(nil)

	_, err := m.GetUserFavorites("")
	assert.Equal(t, apperror.ErrNoData, err)
}
