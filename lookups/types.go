package lookups

// since there are no joins in MongoDB, text descriptions of code values are fetched by the API

// Registry of Lookup/Code Types
const (
	LTuserRole = iota
	LTlang
	LTfacilityCategory
)

// LookupType returns names of the available code types
func LookupType(lt int) string {

	var str = ""

	switch {
	case lt == LTuserRole:
		str = "user role"
	case lt == LTlang:
		str = "user language"
	case lt == LTfacilityCategory:
		str = "facility category"
	}

	return str
}
