package utils

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestBeginningOfDay(t *testing.T) {
	in := time.Date(2026, time.March, 15, 14, 30, 45, 123456789, time.UTC)

	got := BeginningOfDay(in)

	assert.Equal(t, time.Date(2026, time.March, 15, 0, 0, 0, 0, time.UTC), got)
}

func TestEndOfDayCoversTheWholeDay(t *testing.T) {
	in := time.Date(2026, time.March, 15, 0, 0, 0, 0, time.UTC)

	got := EndOfDay(in)

	assert.Equal(t, time.Date(2026, time.March, 15, 23, 59, 59, 999000000, time.UTC), got)
	lastOrder := time.Date(2026, time.March, 15, 23, 59, 59, 0, time.UTC)
	assert.False(t, lastOrder.After(got))
	nextDay := time.Date(2026, time.March, 16, 0, 0, 0, 0, time.UTC)
	assert.True(t, nextDay.After(got))
}

func TestEndOfDayKeepsLocation(t *testing.T) {
	loc := time.FixedZone("IST", 5*3600+1800)
	in := time.Date(2026, time.March, 15, 8, 0, 0, 0, loc)

	got := EndOfDay(in)

	assert.Equal(t, loc, got.Location())
}
