package database

import (
	"context"
	"os"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"wellfit-garage/apperror"
)

// LookupType represents the Code's Domain
type LookupType struct {
	ID     primitive.ObjectID `json:"-" bson:"_id"` // id may be omitted in json/response
	Name   string             `json:"lookupType" bson:"codeType"`
	Values []LookupValue      `json:"values" bson:"values"`
}

// LookupValue represents an Item of the Code's Domain
type LookupValue struct {
	Code      int32  `json:"code" bson:"code"`
	Disabled  bool   `json:"disabled" bson:"disabled"`
	Default   bool   `json:"default" bson:"default"`
	Indicator string `json:"indicator" bson:"indicator"`
	TextEN    string `json:"textEN" bson:"codeTextEN"`
	TextKO    string `json:"textKO" bson:"codeTextKO"`
}

// GetLookupText returns Text to Code (ToDO: Language)
func GetLookupText(lookupType string, code int32) string {
	str := ""

	for t := range lookups {
		if lookups[t].Name == lookupType {
			for v := range lookups[t].Values {
				if lookups[t].Values[v].Code == code {
					str = lookups[t].Values[v].TextEN
					return str
				}
			}
		}
	}

	return str
}

// GetLookupValue returns the Code to a given Text
// (clients pass readable text in URLs rather than codes)
func GetLookupValue(lookupType string, text string) (int32, error) {
	for t := range lookups {
		if lookups[t].Name == lookupType {
			for v := range lookups[t].Values {
				if lookups[t].Values[v].TextEN == text {
					return lookups[t].Values[v].Code, nil
				}
			}
		}
	}

	return 0, apperror.ErrNoData
}

// internal loader of the code-map, used only by "OpenConnection"
// (handlers retrieve the data via the singleton)
func getLookupMap() ([]LookupType, error) {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel() // abort after 10 seconds

	// get a collection to interact with (would be created as needed)
	collection := client.Database(os.Getenv("DB_NAME")).Collection("system")

	filter := bson.D{{Key: "codeType", Value: bson.D{{Key: "$exists", Value: "true"}}}}

	cursor, err := collection.Find(ctx, filter)
	if err != nil {
		return nil, err
	}

	var lookupTypes []LookupType
	if err = cursor.All(ctx, &lookupTypes); err != nil {
		return nil, err
	}

	return lookupTypes, nil
}
