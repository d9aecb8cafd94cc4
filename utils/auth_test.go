package utils

import (
	"regexp"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPasswordHashRoundTrip(t *testing.T) {
	hash, err := HashPassword("correct horse battery staple")

	require.NoError(t, err)
	assert.NotEqual(t, "correct horse battery staple", hash)
	assert.True(t, CheckPasswordHash("correct horse battery staple", hash))
	assert.False(t, CheckPasswordHash("wrong password", hash))
}

func TestGenerateOrderNumberFormat(t *testing.T) {
	pattern := regexp.MustCompile(`^ORD-\d{8}-[A-Z2-9]{6}$`)

	seen := make(map[string]bool)
	for i := 0; i < 50; i++ {
		n := GenerateOrderNumber()
		assert.Regexp(t, pattern, n)
		seen[n] = true
	}
	assert.Greater(t, len(seen), 1)
}

func TestGenerateRandomStringAvoidsAmbiguousCharacters(t *testing.T) {
	s := GenerateRandomString(200)

	assert.Len(t, s, 200)
	assert.NotRegexp(t, `[01IO]`, s)
}

func TestValidatePhone(t *testing.T) {
	valid := []string{"+919876543210", "+14155552671", "9876543210", "+44 20 7946 0958"}
	for _, phone := range valid {
		assert.True(t, ValidatePhone(phone), phone)
	}

	invalid := []string{"", "abc", "+", "7", "+0123456789", "98765abc10"}
	for _, phone := range invalid {
		assert.False(t, ValidatePhone(phone), phone)
	}
}
