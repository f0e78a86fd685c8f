package helpers

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestGenerateAndCompareHash(t *testing.T) {
	hash, err := GenerateHash("correct horse battery staple")
	assert.Nil(t, err)
	assert.NotEqual(t, "", hash)

	match, err := CompareHash(hash, "correct horse battery staple")
	assert.Nil(t, err)
	assert.True(t, match)

	match, _ = CompareHash(hash, "wrong password")
	assert.False(t, match)
}
