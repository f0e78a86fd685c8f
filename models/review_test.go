package models

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestValidateReview(t *testing.T) {
	var m ReviewModel

	review := Review{
		Content: "  great staff  ",
		Rating:  4,
	}

	cleaned, err := m.Validate(review)
	assert.Nil(t, err)
	assert.Equal(t, "great staff", cleaned.Content)
	assert.Equal(t, int32(4), cleaned.Rating)

	// the given struct is not touched
	assert.Equal(t, "  great staff  ", review.Content)
}

func TestValidateReviewEmptyContent(t *testing.T) {
	var m ReviewModel

	_, err := m.Validate(Review{Content: "", Rating: 3})
	assert.Equal(t, ErrReviewEmpty, err)

	// whitespace-only counts as empty
	_, err = m.Validate(Review{Content: "   \t ", Rating: 3})
	assert.Equal(t, ErrReviewEmpty, err)
}

func TestValidateReviewRatingBounds(t *testing.T) {
	var m ReviewModel

	_, err := m.Validate(Review{Content: "ok", Rating: 0})
	assert.Equal(t, ErrRatingOutOfRange, err)

	_, err = m.Validate(Review{Content: "ok", Rating: 6})
	assert.Equal(t, ErrRatingOutOfRange, err)

	_, err = m.Validate(Review{Content: "ok", Rating: RatingMin})
	assert.Nil(t, err)

	_, err = m.Validate(Review{Content: "ok", Rating: RatingMax})
	assert.Nil(t, err)
}

func TestReviewAggregates(t *testing.T) {
	count, average := ReviewAggregates(nil)
	assert.Equal(t, int32(0), count)
	assert.Equal(t, float32(0), average)

	reviews := []Review{
		{Rating: 4, CreatedTS: time.Now()},
		{Rating: 5, CreatedTS: time.Now()},
		{Rating: 5, CreatedTS: time.Now()},
	}

	count, average = ReviewAggregates(reviews)
	assert.Equal(t, int32(3), count)
	// 14/3 = 4.666... rounded to one decimal place
	assert.Equal(t, float32(4.7), average)
}

func TestReviewAggregatesExactMean(t *testing.T) {
	reviews := []Review{
		{Rating: 1},
		{Rating: 2},
	}

	count, average := ReviewAggregates(reviews)
	assert.Equal(t, int32(2), count)
	assert.Equal(t, float32(1.5), average)
}
