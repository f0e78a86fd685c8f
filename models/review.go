package models

import (
	"context"
	"math"
	"strings"
	"time"

	"github.com/twinj/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"wellfit-garage/apperror"
	"wellfit-garage/helpers"
)

// rating bounds
const (
	RatingMin int32 = 1
	RatingMax int32 = 5
)

// Review is the "interface" used for client communication.
// reviews are append-only; they are never edited or deleted
type Review struct {
	ID          string             `json:"id" bson:"_id"`               // uuid, generated on submission
	FacilityID  string             `json:"facilityId" bson:"facilityID"` // path-safe form
	CreatedTS   time.Time          `json:"createdTS" bson:"createdTS"`
	CreatedID   primitive.ObjectID `json:"createdID" bson:"createdID"`
	CreatedName string             `json:"createdName" bson:"createdName"`
	Content     string             `json:"content" bson:"content"`
	Rating      int32              `json:"rating" bson:"rating"`
}

// ReviewModel provides the logic to the interface and access to the database
type ReviewModel struct {
	Collection *mongo.Collection
	// some information comes from the user model, referenced here
	// so the controller doesn't have to mediate
	GetUserNameOID func(userID primitive.ObjectID) (string, error)
	// the facility document stores the derived aggregates; injected so the
	// models stay de-coupled
	SetAggregates func(facilityID string, reviewCount int32, averageRating float32) error
}

// Validate checks given values and sets defaults where applicable (immutable).
// callers are expected to pre-validate, the invariant is still guarded here
func (m ReviewModel) Validate(review Review) (*Review, error) {

	cleaned := review

	cleaned.Content = strings.TrimSpace(cleaned.Content)
	if cleaned.Content == "" {
		return nil, ErrReviewEmpty
	}

	if cleaned.Rating < RatingMin || cleaned.Rating > RatingMax {
		return nil, ErrRatingOutOfRange
	}

	return &cleaned, nil
}

// Create adds a new review to a facility's collection and recomputes the
// facility's aggregates from the full review list
func (m ReviewModel) Create(review *Review) (string, error) {

	// Validate called by controller

	userName, err := m.GetUserNameOID(review.CreatedID)
	if err != nil {
		// domain error or already wrapped
		return "", err
	}
	review.CreatedName = userName

	review.ID = uuid.NewV4().String()
	review.FacilityID = SafeFacilityID(review.FacilityID)
	review.CreatedTS = time.Now()

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel() // abort after 10 seconds

	_, err = m.Collection.InsertOne(ctx, review)
	if err != nil {
		return "", helpers.WrapError(err, helpers.FuncName())
	}

	// recompute count & average over the current list rather than
	// incrementing stored fields (avoids drift against the actual data)
	reviews, err := m.ListReviews(review.FacilityID)
	if err != nil {
		return "", err
	}

	count, average := ReviewAggregates(reviews)

	// error intentionally not escalated - the review itself is saved,
	// the aggregates catch up on the next submission
	_ = m.SetAggregates(review.FacilityID, count, average)

	return review.ID, nil
}

// ListReviews returns the current reviews of a facility, newest first
func (m ReviewModel) ListReviews(facilityID string) ([]Review, error) {

	id := SafeFacilityID(facilityID)

	filter := bson.D{{Key: "facilityID", Value: id}}

	sort := bson.D{
		{Key: "createdTS", Value: -1},
	}

	opts := options.Find().SetSort(sort)

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel() // abort after 10 seconds

	cursor, err := m.Collection.Find(ctx, filter, opts)
	if err != nil {
		return nil, helpers.WrapError(err, helpers.FuncName())
	}

	var reviews []Review

	err = cursor.All(ctx, &reviews)
	if err != nil {
		return nil, helpers.WrapError(err, helpers.FuncName())
	}

	// check for empty result set (no error raised by find)
	if reviews == nil {
		return nil, apperror.ErrNoData
	}

	return reviews, nil
}

// ReviewAggregates computes count and mean rating over a review list.
// the average is rounded to one decimal place
func ReviewAggregates(reviews []Review) (count int32, average float32) {

	count = int32(len(reviews))
	if count == 0 {
		return 0, 0
	}

	var sum int64
	for _, r := range reviews {
		sum += int64(r.Rating)
	}

	mean := float64(sum) / float64(count)
	average = float32(math.Round(mean*10) / 10)

	return count, average
}
