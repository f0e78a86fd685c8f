package models

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
)

// reduced sample of the provider's response document
const catalogSample = `{
	"response": {
		"result": {
			"featureCollection": {
				"features": [
					{
						"id": "WLFARE.10-1",
						"geometry": { "coordinates": [126.9780, 37.5665] },
						"properties": {
							"name": "Seoul Welfare Center",
							"phone": "02-123-4567",
							"addr_primary": "1 Sejong-daero",
							"addr_secondary": "Jung-gu, Seoul"
						}
					}
				]
			}
		}
	}
}`

func TestDecodeCatalogDocument(t *testing.T) {
	var response VWorldResponse

	err := json.Unmarshal([]byte(catalogSample), &response)
	assert.Nil(t, err)

	features := response.Response.Result.FeatureCollection.Features
	assert.Equal(t, 1, len(features))
	assert.Equal(t, "WLFARE.10-1", features[0].ID)
	assert.Equal(t, "Seoul Welfare Center", features[0].Properties.Name)
}

func TestToFacility(t *testing.T) {
	feature := FacilityFeature{
		ID:       "WLFARE.10-1",
		Geometry: Geometry{Coordinates: []float64{126.9780, 37.5665}},
		Properties: FacilityProperties{
			Name:           "Seoul Welfare Center",
			Phone:          "02-123-4567",
			AddressPrimary: "1 Sejong-daero",
		},
	}

	facility := feature.ToFacility()

	// the store ID is the path-safe form
	assert.Equal(t, "WLFARE,10-1", facility.ID)
	assert.Equal(t, "Seoul Welfare Center", facility.Name)
	assert.Equal(t, "02-123-4567", facility.PhoneNumber)
	assert.Equal(t, "1 Sejong-daero", facility.Address)

	// coordinates arrive as [lng, lat]
	assert.NotNil(t, facility.Latitude)
	assert.NotNil(t, facility.Longitude)
	assert.Equal(t, 37.5665, *facility.Latitude)
	assert.Equal(t, 126.9780, *facility.Longitude)
}

func TestToFacilityAddressFallback(t *testing.T) {
	feature := FacilityFeature{
		ID: "WLFARE.10-2",
		Properties: FacilityProperties{
			Name:             "Busan Welfare Center",
			AddressSecondary: "Haeundae-gu, Busan",
		},
	}

	facility := feature.ToFacility()
	assert.Equal(t, "Haeundae-gu, Busan", facility.Address)

	// no coordinates given - the location stays unknown rather than 0/0
	assert.Nil(t, facility.Latitude)
	assert.Nil(t, facility.Longitude)
}
