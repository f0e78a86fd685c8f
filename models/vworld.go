package models

// document shape of the facility catalog source (vworld feature service)
// the nesting mirrors the provider's response and is only used for decoding

type VWorldResponse struct {
	Response VWorldResult `json:"response"`
}

type VWorldResult struct {
	Result VWorldFeatureCollection `json:"result"`
}

type VWorldFeatureCollection struct {
	FeatureCollection FeatureCollection `json:"featureCollection"`
}

type FeatureCollection struct {
	Features []FacilityFeature `json:"features"`
}

type FacilityFeature struct {
	ID         string             `json:"id"`
	Geometry   Geometry           `json:"geometry"`
	Properties FacilityProperties `json:"properties"`
}

type Geometry struct {
	Coordinates []float64 `json:"coordinates"` // [lng, lat]
}

type FacilityProperties struct {
	Name             string `json:"name"`
	Phone            string `json:"phone"`
	AddressPrimary   string `json:"addr_primary"`
	AddressSecondary string `json:"addr_secondary"`
}

// ToFacility maps a catalog feature to the facility record.
// coordinates come as [lng, lat]; the primary address is preferred,
// the secondary is the fallback, otherwise empty
func (f FacilityFeature) ToFacility() Facility {

	facility := Facility{
		ID:          SafeFacilityID(f.ID),
		Name:        f.Properties.Name,
		PhoneNumber: f.Properties.Phone,
	}

	facility.Address = f.Properties.AddressPrimary
	if facility.Address == "" {
		facility.Address = f.Properties.AddressSecondary
	}

	if len(f.Geometry.Coordinates) >= 2 {
		lng := f.Geometry.Coordinates[0]
		lat := f.Geometry.Coordinates[1]
		facility.Latitude = &lat
		facility.Longitude = &lng
	}

	return facility
}
