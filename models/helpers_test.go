package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

func TestSafeFacilityID(t *testing.T) {
	// illegal path characters are replaced by commas
	assert.Equal(t, "fac,1", SafeFacilityID("fac.1"))
	assert.Equal(t, "a,b,c,d,e,", SafeFacilityID("a.b#c$d[e]"))

	// already safe IDs pass through unchanged
	assert.Equal(t, "WLFARE-12345", SafeFacilityID("WLFARE-12345"))

	// the transform is stable
	once := SafeFacilityID("fac.1#x")
	assert.Equal(t, once, SafeFacilityID(once))
}

func TestObjectID(t *testing.T) {
	id := primitive.NewObjectID()
	assert.Equal(t, id, ObjectID(id.Hex()))

	// invalid input maps to the nil ID instead of an error
	assert.Equal(t, primitive.NilObjectID, ObjectID("not-a-hex"))
}
