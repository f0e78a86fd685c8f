package lookups

// Symbols of legal values
const (
	LANGko = iota
	LANGen
)

// Language returns a "generic" string for a given value
func Language(value int) string {

	var str = ""

	switch {
	case value == LANGko:
		str = "ko"
	case value == LANGen:
		str = "en"
	}

	return str
}
