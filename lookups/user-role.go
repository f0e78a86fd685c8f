package lookups

// Symbols of legal values
const (
	UserRoleGuest = iota
	UserRoleMember
	UserRoleAdmin
)

// UserRole returns a "generic" string for a given value
func UserRole(value int) string {

	var str = ""

	switch {
	case value == UserRoleGuest:
		str = "guest"
	case value == UserRoleMember:
		str = "member"
	case value == UserRoleAdmin:
		str = "admin"
	}

	return str
}
