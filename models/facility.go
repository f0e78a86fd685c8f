package models

import (
	"context"
	"encoding/json"
	"sync"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"wellfit-garage/apperror"
	"wellfit-garage/database"
	"wellfit-garage/helpers"
	"wellfit-garage/lookups"
)

// Facility is the "interface" used for client communication.
// records are immutable catalog entries except for the derived favorite flag
// and the aggregates maintained by the review model
type Facility struct {
	ID            string   `json:"id" bson:"_id"` // path-safe catalog feature ID
	Name          string   `json:"name" bson:"name"`
	CategoryCode  int32    `json:"categoryCode" bson:"categoryCD"`
	CategoryText  string   `json:"categoryText" bson:"-"`
	Address       string   `json:"address" bson:"address"`
	PhoneNumber   string   `json:"phoneNumber,omitempty" bson:"phoneNumber,omitempty"`
	Latitude      *float64 `json:"latitude,omitempty" bson:"latitude,omitempty"`
	Longitude     *float64 `json:"longitude,omitempty" bson:"longitude,omitempty"`
	AverageRating float32  `json:"averageRating" bson:"averageRating"`
	ReviewCount   int32    `json:"reviewCount" bson:"reviewCount"`
	ImageURL      string   `json:"imageUrl,omitempty" bson:"imageUrl,omitempty"`
	Visits        int64    `json:"visits" bson:"visits"` // total amount replicated from analytics
	IsFavorite    bool     `json:"isFavorite" bson:"-"`  // computed at the read boundary, never persisted
}

// FacilityListItem is the reduced/simplified model used for listings
type FacilityListItem struct {
	ID            string  `json:"id"`
	Name          string  `json:"name"`
	CategoryCode  int32   `json:"categoryCode"`
	CategoryText  string  `json:"categoryText"`
	Address       string  `json:"address"`
	AverageRating float32 `json:"averageRating"`
	ReviewCount   int32   `json:"reviewCount"`
}

// FacilitySearch is passed as the search params
type FacilitySearch struct {
	UserID       string
	CategoryText string // client should pass readable text in URL rather than codes
	SearchTerm   string
}

// FacilityModel provides the logic to the interface and access to the database.
// the catalog cache is owned by the model and guarded by a mutex
// (the original kept it in a lazily-initialized global)
type FacilityModel struct {
	Collection *mongo.Collection
	// favorite state is answered by the favorites model, these are "injected"
	// so the controller doesn't have to mediate
	IsFavorite  func(userID string, facilityID string) bool
	FavoriteIDs func(userID string) ([]string, error)

	mu      sync.RWMutex
	catalog []Facility
}

// SetCatalog replaces the in-memory catalog cache
func (m *FacilityModel) SetCatalog(facilities []Facility) {
	m.mu.Lock()
	m.catalog = make([]Facility, len(facilities))
	copy(m.catalog, facilities)
	m.mu.Unlock()
}

// LoadCatalog reads the full facility collection into the cache.
// called at start-up and after a catalog import
func (m *FacilityModel) LoadCatalog() error {

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel() // abort after 10 seconds

	cursor, err := m.Collection.Find(ctx, bson.D{})
	if err != nil {
		return helpers.WrapError(err, helpers.FuncName())
	}

	var facilities []Facility
	err = cursor.All(ctx, &facilities)
	if err != nil {
		return helpers.WrapError(err, helpers.FuncName())
	}

	m.SetCatalog(facilities)

	return nil
}

// GetFacility returns one catalog record with the favorite flag set for the
// requesting user (empty userID = default/anonymous user)
func (m *FacilityModel) GetFacility(facilityID string, userID string) (*Facility, error) {

	id := SafeFacilityID(facilityID)

	m.mu.RLock()
	defer m.mu.RUnlock()

	if m.catalog == nil {
		return nil, ErrCatalogNotLoaded
	}

	for i := range m.catalog {
		if m.catalog[i].ID == id {
			// work on a copy, the flag is per-request
			facility := m.catalog[i]
			facility.CategoryText = database.GetLookupText(lookups.LookupType(lookups.LTfacilityCategory), facility.CategoryCode)
			facility.IsFavorite = m.IsFavorite(userID, id)
			return &facility, nil
		}
	}

	return nil, apperror.ErrNoData
}

// GetUserFavorites returns every catalog record in the user's favorite set,
// each flagged as favorite. order follows the catalog
func (m *FacilityModel) GetUserFavorites(userID string) ([]Facility, error) {

	ids, err := m.FavoriteIDs(userID)
	if err != nil {
		return nil, err
	}

	wanted := make(map[string]bool, len(ids))
	for _, id := range ids {
		wanted[id] = true
	}

	m.mu.RLock()
	defer m.mu.RUnlock()

	var favorites []Facility
	for i := range m.catalog {
		if wanted[m.catalog[i].ID] {
			facility := m.catalog[i]
			facility.CategoryText = database.GetLookupText(lookups.LookupType(lookups.LTfacilityCategory), facility.CategoryCode)
			facility.IsFavorite = true
			favorites = append(favorites, facility)
		}
	}

	if favorites == nil {
		return nil, apperror.ErrNoData
	}

	return favorites, nil
}

// SearchFacilities lists or searches the catalog
func (m *FacilityModel) SearchFacilities(searchSpecs *FacilitySearch) ([]FacilityListItem, error) {

	// use original struct to receive selected fields
	fields := bson.D{
		{Key: "_id", Value: 1},
		{Key: "name", Value: 1},
		{Key: "categoryCD", Value: 1},
		{Key: "address", Value: 1},
		{Key: "averageRating", Value: 1},
		{Key: "reviewCount", Value: 1},
	}

	sort := bson.D{
		{Key: "averageRating", Value: -1},
		{Key: "reviewCount", Value: -1},
	}

	opts := options.Find().SetProjection(fields).SetLimit(20).SetSort(sort)

	filter := bson.D{}
	if searchSpecs.SearchTerm != "" {
		filter = append(filter,
			bson.E{Key: "$or", Value: bson.A{
				bson.D{{Key: "name", Value: primitive.Regex{Pattern: ".*" + searchSpecs.SearchTerm + ".*", Options: "i"}}}, // LIKE %searchTerm% (case-insensitive)
				bson.D{{Key: "address", Value: primitive.Regex{Pattern: ".*" + searchSpecs.SearchTerm + ".*", Options: "i"}}},
			}})
	}

	if searchSpecs.CategoryText != "" {
		categoryCode, err := database.GetLookupValue(lookups.LookupType(lookups.LTfacilityCategory), searchSpecs.CategoryText)
		if err == nil {
			filter = append(filter, bson.E{Key: "categoryCD", Value: categoryCode})
		}
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel() // abort after 10 seconds

	cursor, err := m.Collection.Find(ctx, filter, opts)
	if err != nil {
		return nil, helpers.WrapError(err, helpers.FuncName())
	}

	var facilities []Facility

	err = cursor.All(ctx, &facilities)
	if err != nil {
		return nil, helpers.WrapError(err, helpers.FuncName())
	}

	// check for empty result set (no error raised by find)
	if facilities == nil {
		return nil, apperror.ErrNoData
	}

	// copy data to reduced list-struct
	var facilityList []FacilityListItem
	var item FacilityListItem

	for _, v := range facilities {
		item.ID = v.ID
		item.Name = v.Name
		item.CategoryCode = v.CategoryCode
		item.CategoryText = database.GetLookupText(lookups.LookupType(lookups.LTfacilityCategory), v.CategoryCode)
		item.Address = v.Address
		item.AverageRating = v.AverageRating
		item.ReviewCount = v.ReviewCount

		facilityList = append(facilityList, item)
	}

	return facilityList, nil
}

// ImportCatalog seeds the facility collection from the catalog source document.
// records are only written when the collection is still empty, so the import
// may be re-triggered without duplicating the catalog
func (m *FacilityModel) ImportCatalog(doc []byte) (int, error) {

	var response VWorldResponse
	err := json.Unmarshal(doc, &response)
	if err != nil {
		return 0, helpers.WrapError(err, helpers.FuncName())
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel() // abort after 10 seconds

	cnt, err := m.Collection.CountDocuments(ctx, bson.D{})
	if err != nil {
		return 0, helpers.WrapError(err, helpers.FuncName())
	}

	imported := 0
	if cnt == 0 {
		features := response.Response.Result.FeatureCollection.Features

		docs := []interface{}{}
		for _, feature := range features {
			docs = append(docs, feature.ToFacility())
		}

		if len(docs) > 0 {
			_, err = m.Collection.InsertMany(ctx, docs)
			if err != nil {
				return 0, helpers.WrapError(err, helpers.FuncName())
			}
			imported = len(docs)
		}
	}

	// refresh the cache either way
	err = m.LoadCatalog()
	if err != nil {
		return imported, err
	}

	return imported, nil
}

// SetAggregates is called by the review model after a submission or
// re-notification; count and average are recomputed there from the full list
func (m *FacilityModel) SetAggregates(facilityID string, reviewCount int32, averageRating float32) error {

	id := SafeFacilityID(facilityID)

	fields := bson.D{
		{Key: "$set", Value: bson.D{
			{Key: "reviewCount", Value: reviewCount},
			{Key: "averageRating", Value: averageRating},
		}},
	}

	filter := bson.D{{Key: "_id", Value: id}}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel() // abort after 10 seconds

	result, err := m.Collection.UpdateOne(ctx, filter, fields)
	if err != nil {
		return helpers.WrapError(err, helpers.FuncName())
	}

	if result.MatchedCount == 0 {
		return apperror.ErrNoData // document might have been deleted
	}

	// keep the cache in sync
	m.mu.Lock()
	for i := range m.catalog {
		if m.catalog[i].ID == id {
			m.catalog[i].ReviewCount = reviewCount
			m.catalog[i].AverageRating = averageRating
			break
		}
	}
	m.mu.Unlock()

	return nil
}
