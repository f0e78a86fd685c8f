package lookups

// Symbols of legal values
// (category of a welfare facility, taken from the catalog source)
const (
	FacilityCategoryGeneral = iota
	FacilityCategoryElderly
	FacilityCategoryDisabled
	FacilityCategoryChildcare
	FacilityCategoryHealth
)

// FacilityCategory returns a "generic" string for a given value
func FacilityCategory(value int) string {

	var str = ""

	switch {
	case value == FacilityCategoryGeneral:
		str = "general"
	case value == FacilityCategoryElderly:
		str = "elderly"
	case value == FacilityCategoryDisabled:
		str = "disabled"
	case value == FacilityCategoryChildcare:
		str = "childcare"
	case value == FacilityCategoryHealth:
		str = "health"
	}

	return str
}
