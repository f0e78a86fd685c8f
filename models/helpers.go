package models

import (
	"strings"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// ObjectID converts a string to a MongoDB ObjectID without the need of error checking
// (placed here so the database package is not required by the controllers package)
func ObjectID(ID string) primitive.ObjectID {
	id, err := primitive.ObjectIDFromHex(ID)
	if err != nil {
		return primitive.NilObjectID
	}
	return id
}

// catalog feature IDs may contain characters that are illegal in store
// path segments; they are replaced before a path is built.
// the same transform must be applied on write and read, otherwise data is orphaned
var pathSafe = strings.NewReplacer(
	".", ",",
	"#", ",",
	"$", ",",
	"[", ",",
	"]", ",")

// SafeFacilityID returns the path-safe form of a facility ID
func SafeFacilityID(facilityID string) string {
	return pathSafe.Replace(facilityID)
}
